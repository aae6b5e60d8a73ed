package intent

import (
	"strings"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// maxShowAllEntities caps the listing returned for a generic "show me
// everything" utterance.
const maxShowAllEntities = 6

// Classifier decides which response strategy applies to an utterance. It is
// read-only over session-scoped data and safe for concurrent use.
type Classifier struct {
	listings     []catalog.Business
	base         *knowledge.Base
	humanPhrases []string
}

// NewClassifier creates a classifier over the session's catalog snapshot,
// fallback knowledge base, and configured human-handoff trigger phrases.
// An empty trigger list disables the configurable handoff detector.
func NewClassifier(listings []catalog.Business, base *knowledge.Base, humanPhrases []string) *Classifier {
	return &Classifier{
		listings:     listings,
		base:         base,
		humanPhrases: humanPhrases,
	}
}

// detector inspects an utterance and returns a strategy, or nil when it
// does not apply. raw preserves the original casing so that regex captures
// stay verbatim; lower is used for phrase containment.
type detector struct {
	name string
	fn   func(c *Classifier, raw, lower string) *Strategy
}

// detectors is the fixed priority order of the classifier. Only the first
// matching detector fires; later ones are skipped.
var detectors = []detector{
	{"list-request", (*Classifier).detectListRequest},
	{"contact-request", (*Classifier).detectContactRequest},
	{"explicit-interest", (*Classifier).detectExplicitInterest},
	{"aspect-query", (*Classifier).detectAspectQuery},
	{"entity-match", (*Classifier).detectEntityMatch},
	{"human-handoff", (*Classifier).detectHumanHandoff},
}

// Classify returns exactly one strategy for the utterance. When no detector
// fires, the utterance is delegated to the remote model.
func (c *Classifier) Classify(text string) Strategy {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)
	for _, d := range detectors {
		if s := d.fn(c, raw, lower); s != nil {
			return *s
		}
	}
	return Strategy{Kind: KindDelegateToRemote}
}

// IsListRequest reports whether the utterance asks for the full catalog.
// Exposed for the degraded path after a failed remote call.
func (c *Classifier) IsListRequest(text string) bool {
	return containsAny(strings.ToLower(text), listRequestPhrases)
}

// Listings returns the catalog snapshot the classifier operates on.
func (c *Classifier) Listings() []catalog.Business {
	return c.listings
}

// Base returns the fallback knowledge base the classifier operates on.
func (c *Classifier) Base() *knowledge.Base {
	return c.base
}

func (c *Classifier) detectListRequest(_, lower string) *Strategy {
	if containsAny(lower, listRequestPhrases) {
		return &Strategy{Kind: KindShowCatalogList}
	}
	return nil
}

func (c *Classifier) detectContactRequest(_, lower string) *Strategy {
	if containsAny(lower, contactRequestPhrases) {
		return &Strategy{Kind: KindHumanHandoff}
	}
	return nil
}

func (c *Classifier) detectExplicitInterest(raw, _ string) *Strategy {
	m := explicitInterestPattern.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	// The capture is kept verbatim; only the lookup is fuzzy.
	name := m[1]
	return &Strategy{
		Kind:       KindExplicitInterest,
		EntityName: name,
		Entity:     c.lookupEntity(name),
	}
}

func (c *Classifier) detectAspectQuery(raw, _ string) *Strategy {
	for _, tpl := range aspectTemplates {
		m := tpl.Pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		name := m[1]
		return &Strategy{
			Kind:       KindAspectQuery,
			Aspect:     tpl.Aspect,
			EntityName: name,
			Entity:     c.lookupEntity(name),
		}
	}
	return nil
}

// detectEntityMatch handles both the multi-entity and the scored
// single-entity paths. A generic "show everything" phrasing or more than one
// name/category hit yields a multi listing; otherwise the fallback entries
// are scored and the best one above the threshold yields a single match.
func (c *Classifier) detectEntityMatch(_, lower string) *Strategy {
	if containsAny(lower, showAllPhrases) {
		n := len(c.listings)
		if n == 0 {
			return nil
		}
		if n > maxShowAllEntities {
			n = maxShowAllEntities
		}
		return &Strategy{Kind: KindShowMultipleEntities, Entities: c.listings[:n]}
	}

	if matched := c.MatchListings(lower); len(matched) > 1 {
		return &Strategy{Kind: KindShowMultipleEntities, Entities: matched}
	}

	entry, score, ok := bestEntry(lower, c.base)
	if !ok {
		return nil
	}
	e := entry
	return &Strategy{
		Kind:     KindShowSingleEntity,
		Entity:   c.lookupEntity(entry.Name),
		Fallback: &e,
		Score:    score,
	}
}

func (c *Classifier) detectHumanHandoff(_, lower string) *Strategy {
	for _, phrase := range c.humanPhrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p != "" && strings.Contains(lower, p) {
			return &Strategy{Kind: KindHumanHandoff}
		}
	}
	return nil
}

// MatchListings returns every catalog listing whose name or category occurs
// in the utterance, in catalog order. Also consulted by the funnel tracker.
func (c *Classifier) MatchListings(utterance string) []catalog.Business {
	lower := strings.ToLower(utterance)
	var out []catalog.Business
	for _, b := range c.listings {
		name := strings.ToLower(b.Name)
		category := strings.ToLower(b.Category)
		if (name != "" && strings.Contains(lower, name)) ||
			(category != "" && strings.Contains(lower, category)) {
			out = append(out, b)
		}
	}
	return out
}

// lookupEntity resolves a captured name against the catalog: case-insensitive
// equality, or substring containment in either direction.
func (c *Classifier) lookupEntity(name string) *catalog.Business {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil
	}
	for i, b := range c.listings {
		bn := strings.ToLower(b.Name)
		if bn == n || strings.Contains(bn, n) || strings.Contains(n, bn) {
			return &c.listings[i]
		}
	}
	return nil
}

func containsAny(utterance string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(utterance, p) {
			return true
		}
	}
	return false
}
