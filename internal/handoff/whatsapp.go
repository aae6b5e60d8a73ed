// Package handoff builds the WhatsApp escalation link offered when a
// conversation moves to a human advisor.
package handoff

import (
	"net/url"
	"strings"
)

// defaultGreeting pre-fills the WhatsApp conversation so the advisor has
// context without asking the visitor to repeat themselves.
const defaultGreeting = "Bonjour, je viens du site TEKKI Studio et j'aimerais en savoir plus sur vos business en vente."

// WhatsAppLink returns a wa.me link for the given number with a pre-filled
// French greeting. The number may contain spaces, dashes, or a leading plus;
// an empty number yields an empty link, which the widget hides.
func WhatsAppLink(number string) string {
	digits := normalizeNumber(number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(defaultGreeting)
}

func normalizeNumber(number string) string {
	var sb strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
