package knowledge

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/tekkistudio/salesbot/internal/catalog"
)

// minKeywordTokenLen filters short, low-signal name tokens (articles,
// prepositions) from synthesized keyword lists.
const minKeywordTokenLen = 4

// LoadBase loads the fallback knowledge base from the store. A non-empty
// stored result replaces the builtin defaults wholesale: the remote
// configuration is authoritative once present. On load failure or an empty
// result the builtin map is kept. Never returns nil.
func LoadBase(ctx context.Context, store *Store) *Base {
	if store == nil {
		return Builtin()
	}
	base, err := store.Load(ctx)
	if err != nil {
		log.Printf("knowledge: loading fallback entries: %v (using builtin defaults)", err)
		return Builtin()
	}
	if base.Len() == 0 {
		return Builtin()
	}
	return base
}

// SynthesizeFromCatalog merges one synthesized entry per listing into the
// base. Entries already present keep precedence; synthesis only fills gaps.
// The two loads are serialized by the caller (knowledge first, catalog
// second) so the final state does not depend on network timing.
func SynthesizeFromCatalog(base *Base, listings []catalog.Business) {
	for _, b := range listings {
		base.PutIfAbsent(synthesize(b))
	}
}

func synthesize(b catalog.Business) Entry {
	keywords := nameTokens(b.Name)
	if b.Category != "" {
		keywords = append(keywords, b.Category)
	}

	description := b.Description
	if description == "" {
		description = describeFromNumbers(b)
	}

	roiNote := ""
	if b.ROIMonths > 0 {
		roiNote = "rentabilisé en environ " + strconv.Itoa(b.ROIMonths) + " mois"
	}

	return Entry{
		Name:        b.Name,
		Description: description,
		Keywords:    keywords,
		Price:       b.Price,
		ROINote:     roiNote,
	}
}

// describeFromNumbers builds a short description from the numeric fields
// when the listing carries no prose description.
func describeFromNumbers(b catalog.Business) string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteString(" est un business e-commerce clé en main")
	if b.Category != "" {
		sb.WriteString(" dans la catégorie ")
		sb.WriteString(b.Category)
	}
	if b.MonthlyPotential > 0 {
		sb.WriteString(", avec un potentiel mensuel estimé de ")
		sb.WriteString(FormatFCFA(b.MonthlyPotential))
	}
	sb.WriteString(".")
	return sb.String()
}

// nameTokens returns the lower-cased tokens of a name longer than
// minKeywordTokenLen-1 runes.
func nameTokens(name string) []string {
	var out []string
	for _, tok := range strings.Fields(normalize(name)) {
		if len([]rune(tok)) >= minKeywordTokenLen {
			out = append(out, tok)
		}
	}
	return out
}

// FormatFCFA renders an integer amount with thin group separators,
// e.g. 2500000 -> "2 500 000 FCFA".
func FormatFCFA(amount int) string {
	s := strconv.Itoa(amount)
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	sb.WriteString(" FCFA")
	return sb.String()
}
