package intent

import (
	"strings"

	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// Scoring weights for fallback-entry matching. Kept as named constants so
// the heuristic can be tuned without touching the matching code.
const (
	scoreExactName     = 10 // full business name appears in the utterance
	scoreNameToken     = 5  // any name token longer than minScoreTokenLen runes appears
	scoreKeyword       = 3  // any keyword appears
	scorePriceQuestion = 2  // utterance mentions "prix" and the entry has a price
	scoreProfitTerm    = 2  // utterance uses profitability/ROI vocabulary

	// minScore is the acceptance threshold for a single-entity match.
	minScore = 3

	// minScoreTokenLen is the exclusive lower bound on name-token length.
	minScoreTokenLen = 3
)

// scoreEntry computes the match score of one fallback entry against the
// normalized utterance.
func scoreEntry(utterance string, e knowledge.Entry) int {
	score := 0

	name := strings.ToLower(e.Name)
	if name != "" && strings.Contains(utterance, name) {
		score += scoreExactName
	}

	for _, tok := range strings.Fields(name) {
		if len([]rune(tok)) > minScoreTokenLen && strings.Contains(utterance, tok) {
			score += scoreNameToken
			break
		}
	}

	for _, kw := range e.Keywords {
		if strings.Contains(utterance, kw) {
			score += scoreKeyword
			break
		}
	}

	if e.Price > 0 && strings.Contains(utterance, "prix") {
		score += scorePriceQuestion
	}

	for _, term := range profitabilityTerms {
		if strings.Contains(utterance, term) {
			score += scoreProfitTerm
			break
		}
	}

	return score
}

// bestEntry returns the highest-scoring fallback entry for the utterance,
// or ok=false when no entry reaches the acceptance threshold. Ties are
// broken by definition order: the first entry with the maximum score wins.
func bestEntry(utterance string, base *knowledge.Base) (knowledge.Entry, int, bool) {
	var best knowledge.Entry
	bestScore := 0
	for _, e := range base.Entries() {
		if s := scoreEntry(utterance, e); s > bestScore {
			best = e
			bestScore = s
		}
	}
	if bestScore < minScore {
		return knowledge.Entry{}, bestScore, false
	}
	return best, bestScore, true
}
