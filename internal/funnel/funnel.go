package funnel

import "time"

// Stage is the coarse sales-readiness of a session. Stages only move
// forward; Update never regresses a funnel.
type Stage string

const (
	StageAwareness     Stage = "awareness"
	StageInterest      Stage = "interest"
	StageConsideration Stage = "consideration"
	StageDecision      Stage = "decision"
)

// stageRank orders stages for regression checks.
var stageRank = map[Stage]int{
	StageAwareness:     0,
	StageInterest:      1,
	StageConsideration: 2,
	StageDecision:      3,
}

// Rank returns the position of the stage in the awareness→decision order.
func (s Stage) Rank() int {
	return stageRank[s]
}

// Funnel is the per-session conversion state. The set-typed fields only
// grow within a session; ReadyToBuy flips to true once and never resets.
type Funnel struct {
	Stage            Stage     `json:"stage"`
	BusinessesViewed []string  `json:"businesses_viewed"`
	TopicsDiscussed  []string  `json:"topics_discussed"`
	Objections       []string  `json:"objections"`
	ReadyToBuy       bool      `json:"ready_to_buy"`
	LastActive       time.Time `json:"last_active"`
}

// New returns a fresh funnel at the awareness stage.
func New() Funnel {
	return Funnel{
		Stage:      StageAwareness,
		LastActive: time.Now().UTC(),
	}
}

// Clone returns a deep copy. Update works on copies so that callers can
// replace the session's snapshot atomically instead of mutating it.
func (f Funnel) Clone() Funnel {
	out := f
	out.BusinessesViewed = append([]string(nil), f.BusinessesViewed...)
	out.TopicsDiscussed = append([]string(nil), f.TopicsDiscussed...)
	out.Objections = append([]string(nil), f.Objections...)
	return out
}

// union appends value to set if not already present (case-insensitive),
// preserving insertion order.
func union(set []string, value string) []string {
	if value == "" {
		return set
	}
	for _, v := range set {
		if equalFold(v, value) {
			return set
		}
	}
	return append(set, value)
}
