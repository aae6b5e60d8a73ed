package knowledge

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/tekkistudio/salesbot/internal/embeddings"
)

const collectionName = "fallback-entries"

// Index is an in-memory semantic index over fallback entries. It is used
// only to pick relevant entries for the remote-delegation prompt; the local
// deterministic matching never consults it.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex creates an empty semantic index using the given embedder.
func NewIndex(embedder embeddings.Embedder) (*Index, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, embeddings.ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Index{db: db, collection: col}, nil
}

// IndexBase embeds and stores every entry of the base.
func (i *Index) IndexBase(ctx context.Context, base *Base) error {
	entries := base.Entries()
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(entries))
	for n, e := range entries {
		docs[n] = chromem.Document{
			ID:      key(e.Name),
			Content: e.Name + "\n" + e.Description,
			Metadata: map[string]string{
				"name": e.Name,
			},
		}
	}
	return i.collection.AddDocuments(ctx, docs, 1)
}

// Search returns up to limit entries most relevant to the query.
func (i *Index) Search(ctx context.Context, base *Base, query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 3
	}

	// chromem-go requires nResults <= collection size.
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := i.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	var out []Entry
	for _, r := range results {
		if e, ok := base.Get(r.Metadata["name"]); ok {
			out = append(out, e)
		}
	}
	return out, nil
}
