package knowledge

// Entry is the descriptive fallback data for one business, used when no
// richer source is available. Keyed by business name, case-insensitive.
type Entry struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Price       int      `json:"price" yaml:"price"`
	ROINote     string   `json:"roi_note" yaml:"roi_note"`
}

// Base is an insertion-ordered collection of fallback entries. Order matters:
// the classifier breaks score ties by taking the first entry with the
// maximum score.
type Base struct {
	entries map[string]Entry
	order   []string
}

// NewBase returns an empty Base.
func NewBase() *Base {
	return &Base{entries: make(map[string]Entry)}
}

// key normalizes a name for case-insensitive lookups.
func key(name string) string {
	return normalize(name)
}

// Put inserts or replaces an entry, deduplicating and lower-casing keywords.
func (b *Base) Put(e Entry) {
	e.Keywords = dedupeKeywords(e.Keywords)
	k := key(e.Name)
	if _, ok := b.entries[k]; !ok {
		b.order = append(b.order, k)
	}
	b.entries[k] = e
}

// PutIfAbsent inserts the entry only when no entry with the same name exists.
// This is the merge precedence for catalog-synthesized entries: an existing
// key always wins.
func (b *Base) PutIfAbsent(e Entry) {
	if _, ok := b.entries[key(e.Name)]; ok {
		return
	}
	b.Put(e)
}

// Get returns the entry for the given name, case-insensitive.
func (b *Base) Get(name string) (Entry, bool) {
	e, ok := b.entries[key(name)]
	return e, ok
}

// Len returns the number of entries.
func (b *Base) Len() int {
	return len(b.order)
}

// Entries returns all entries in insertion order.
func (b *Base) Entries() []Entry {
	out := make([]Entry, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.entries[k])
	}
	return out
}

func dedupeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		n := normalize(kw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
