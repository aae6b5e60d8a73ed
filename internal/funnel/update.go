package funnel

import (
	"time"

	"github.com/tekkistudio/salesbot/internal/intent"
)

// Update folds one message into the funnel and returns a new snapshot; the
// input funnel is never mutated. matchedBusinesses carries the catalog
// names the classifier matched for this message, so the funnel records
// entities even when the generic mention patterns miss them.
func Update(f Funnel, text string, isUser bool, matchedBusinesses []string) Funnel {
	out := f.Clone()

	// Topics are tracked on both sides of the conversation.
	for _, tp := range topicPatterns {
		if tp.Pattern.MatchString(text) {
			out.TopicsDiscussed = union(out.TopicsDiscussed, tp.Tag)
		}
	}

	if isUser {
		for _, op := range objectionPatterns {
			if op.Pattern.MatchString(text) {
				out.Objections = union(out.Objections, op.Tag)
			}
		}
	}

	// Entity mentions: generic patterns first, then classifier matches.
	for _, name := range intent.ExtractMentionedNames(text) {
		out.BusinessesViewed = union(out.BusinessesViewed, name)
	}
	for _, name := range matchedBusinesses {
		out.BusinessesViewed = union(out.BusinessesViewed, name)
	}

	// Stage and purchase readiness only react to what the visitor says.
	if isUser {
		out.Stage = nextStage(out.Stage, text)
		if !out.ReadyToBuy && readyPattern.MatchString(text) {
			out.ReadyToBuy = true
		}
	}

	out.LastActive = time.Now().UTC()
	return out
}

// nextStage applies the stage keywords in decision → consideration →
// interest order. The current stage is kept when no keyword fires or when
// the fired stage is weaker than the current one.
func nextStage(current Stage, text string) Stage {
	switch {
	case decisionPattern.MatchString(text):
		return StageDecision
	case considerationPattern.MatchString(text):
		if current == StageDecision {
			return current
		}
		return StageConsideration
	case interestPattern.MatchString(text):
		if current == StageDecision || current == StageConsideration {
			return current
		}
		return StageInterest
	default:
		return current
	}
}
