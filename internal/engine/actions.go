package engine

import (
	"github.com/tekkistudio/salesbot/internal/compose"
	"github.com/tekkistudio/salesbot/internal/handoff"
)

// ActionKind tells the widget what to do with a clicked suggestion.
type ActionKind string

const (
	// ActionResubmit sends the suggestion text back through the pipeline.
	ActionResubmit ActionKind = "resubmit"
	// ActionOpenURL opens an external link (WhatsApp).
	ActionOpenURL ActionKind = "open_url"
	// ActionNavigate moves the visitor to a site page.
	ActionNavigate ActionKind = "navigate"
	// ActionDismiss closes the suggestion list without a new message.
	ActionDismiss ActionKind = "dismiss"
)

// Action is the resolved behaviour of one suggestion click.
type Action struct {
	Kind ActionKind `json:"kind"`
	// URL is set for open_url, Path for navigate, Text for resubmit.
	URL  string `json:"url,omitempty"`
	Path string `json:"path,omitempty"`
	Text string `json:"text,omitempty"`
}

// ResolveSuggestion maps a clicked suggestion to its action. Reserved
// strings are navigation; everything else goes back through the classifier
// as a normal message.
func (e *Engine) ResolveSuggestion(text string) Action {
	switch text {
	case compose.WhatsAppSuggestion:
		link := handoff.WhatsAppLink(e.cfg.Chatbot.WhatsAppNumber)
		if link == "" {
			// No number configured: degrade to the contact request flow.
			return Action{Kind: ActionResubmit, Text: compose.ContactSuggestion}
		}
		return Action{Kind: ActionOpenURL, URL: link}
	case compose.HomeSuggestion:
		return Action{Kind: ActionNavigate, Path: "/"}
	case compose.CatalogSuggestion:
		return Action{Kind: ActionResubmit, Text: "Quels business sont disponibles ?"}
	case compose.ContinueSuggestion, compose.RetrySuggestion:
		return Action{Kind: ActionDismiss}
	default:
		return Action{Kind: ActionResubmit, Text: text}
	}
}
