package compose

import (
	"fmt"
	"strings"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/intent"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// maxSuggestions bounds every suggestion list for UI affordance reasons.
const maxSuggestions = 6

// Canonical and reserved suggestion strings. The widget treats reserved
// strings as navigation actions; everything else is resubmitted through the
// classifier pipeline.
const (
	ContactSuggestion  = "Contacter un conseiller"
	RetrySuggestion    = "Réessayer plus tard"
	WhatsAppSuggestion = "Discuter sur WhatsApp"
	ContinueSuggestion = "Continuer ici"
	CatalogSuggestion  = "Voir tous les business"
	HomeSuggestion     = "Retour à l'accueil"
)

// deprecatedContactSynonyms are older copy variants of the contact
// suggestion still emitted by the remote model; they are rewritten to the
// canonical phrase before display.
var deprecatedContactSynonyms = map[string]bool{
	"Parler à un conseiller":      true,
	"Parler au support":           true,
	"Joindre le service client":   true,
	"Contacter le service client": true,
}

// missingAmountPhrase substitutes absent numeric fields in canned answers;
// a literal zero or placeholder is never rendered.
const missingAmountPhrase = "plusieurs millions de FCFA"

// Response is a rendered reply: message text plus a bounded list of
// suggested follow-up actions.
type Response struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
	NeedsHuman  bool     `json:"needs_human"`
}

// Composer renders classifier strategies into user-facing responses.
type Composer struct {
	listings []catalog.Business
	base     *knowledge.Base
}

// NewComposer creates a composer over the session's catalog snapshot and
// fallback knowledge base.
func NewComposer(listings []catalog.Business, base *knowledge.Base) *Composer {
	return &Composer{listings: listings, base: base}
}

// Compose renders any locally-resolvable strategy. DelegateToRemote is the
// engine's business; passing it here yields the apology response.
func (c *Composer) Compose(s intent.Strategy) Response {
	switch s.Kind {
	case intent.KindShowCatalogList:
		return c.CatalogList()
	case intent.KindShowMultipleEntities:
		return c.MultipleEntities(s.Entities)
	case intent.KindShowSingleEntity:
		return c.SingleEntity(s.Entity, s.Fallback)
	case intent.KindAspectQuery:
		return c.AspectAnswer(s)
	case intent.KindExplicitInterest:
		return c.ExplicitInterest(s)
	case intent.KindHumanHandoff:
		return c.HumanHandoff()
	default:
		return c.Apology()
	}
}

// CatalogList renders the full available catalog.
func (c *Composer) CatalogList() Response {
	if len(c.listings) == 0 {
		return Response{
			Text:        "Aucun business n'est disponible à la vente pour le moment. Revenez bientôt, de nouvelles boutiques arrivent régulièrement !",
			Suggestions: []string{ContactSuggestion, HomeSuggestion},
		}
	}

	var sb strings.Builder
	sb.WriteString("Voici les business actuellement disponibles :\n\n")
	writeListing(&sb, c.listings)
	sb.WriteString("\nLequel vous intéresse ?")

	return Response{
		Text:        sb.String(),
		Suggestions: entitySuggestions(c.listings, true),
	}
}

// MultipleEntities renders a listing limited to the matched businesses.
func (c *Composer) MultipleEntities(entities []catalog.Business) Response {
	var sb strings.Builder
	sb.WriteString("Voici les business qui correspondent :\n\n")
	writeListing(&sb, entities)
	sb.WriteString("\nLequel voulez-vous explorer ?")

	return Response{
		Text:        sb.String(),
		Suggestions: entitySuggestions(entities, true),
	}
}

// SingleEntity acknowledges the match and invites the visitor to pick an
// aspect: 4 aspect suggestions plus the contact one, 5 total.
func (c *Composer) SingleEntity(entity *catalog.Business, fallback *knowledge.Entry) Response {
	name := ""
	description := ""
	if fallback != nil {
		name = fallback.Name
		description = fallback.Description
	}
	if entity != nil {
		name = entity.Name
		if description == "" {
			description = entity.Description
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Excellent choix ! **%s** est l'un de nos business en vente.", name)
	if description != "" {
		sb.WriteString(" ")
		sb.WriteString(description)
	}
	sb.WriteString("\n\nQue voulez-vous savoir ?")

	return Response{
		Text: sb.String(),
		Suggestions: capSuggestions([]string{
			"Quelle est la rentabilité de " + name + " ?",
			"Combien de temps pour gérer " + name + " ?",
			"Quelles compétences pour " + name + " ?",
			"Quel est le prix de " + name + " ?",
			ContactSuggestion,
		}),
	}
}

// ExplicitInterest renders a resolved "en savoir plus" the same way as a
// single-entity match; an unresolved name invites the visitor to the
// catalog instead of guessing.
func (c *Composer) ExplicitInterest(s intent.Strategy) Response {
	if s.Entity == nil {
		return c.unknownEntity(s.EntityName)
	}
	var fallback *knowledge.Entry
	if e, ok := c.base.Get(s.Entity.Name); ok {
		fallback = &e
	}
	return c.SingleEntity(s.Entity, fallback)
}

// HumanHandoff confirms the transfer with exactly two choices.
func (c *Composer) HumanHandoff() Response {
	return Response{
		Text: "Bien sûr ! Un conseiller TEKKI Studio peut prendre le relais sur WhatsApp " +
			"pour répondre à toutes vos questions. Vous pouvez aussi continuer avec moi ici.",
		Suggestions: []string{WhatsAppSuggestion, ContinueSuggestion},
		NeedsHuman:  true,
	}
}

// Apology is the terminal degraded response after a failed remote call.
func (c *Composer) Apology() Response {
	return Response{
		Text: "Désolée, je rencontre un souci technique pour vous répondre. " +
			"Un conseiller peut prendre le relais, ou vous pouvez réessayer dans quelques instants.",
		Suggestions: []string{ContactSuggestion, RetrySuggestion},
		NeedsHuman:  true,
	}
}

// SanitizeRemote normalizes a remote response before display: deprecated
// contact synonyms are rewritten to the canonical phrase and the suggestion
// list is capped.
func SanitizeRemote(text string, suggestions []string, needsHuman bool) Response {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if deprecatedContactSynonyms[s] {
			s = ContactSuggestion
		}
		out = append(out, s)
	}
	return Response{Text: text, Suggestions: capSuggestions(out), NeedsHuman: needsHuman}
}

func (c *Composer) unknownEntity(name string) Response {
	var sb strings.Builder
	if strings.TrimSpace(name) != "" {
		fmt.Fprintf(&sb, "Je ne trouve pas \"%s\" parmi nos business en vente. ", strings.TrimSpace(name))
	}
	sb.WriteString("Je vous invite à consulter la liste complète de nos business disponibles.")
	return Response{
		Text:        sb.String(),
		Suggestions: []string{CatalogSuggestion, ContactSuggestion},
	}
}

// writeListing renders a numbered listing with price, optional monthly
// potential, and optional ROI months.
func writeListing(sb *strings.Builder, entities []catalog.Business) {
	for i, b := range entities {
		fmt.Fprintf(sb, "%d. **%s** — %s", i+1, b.Name, knowledge.FormatFCFA(b.Price))
		if b.MonthlyPotential > 0 {
			fmt.Fprintf(sb, " · potentiel %s/mois", knowledge.FormatFCFA(b.MonthlyPotential))
		}
		if b.ROIMonths > 0 {
			fmt.Fprintf(sb, " · rentabilisé en %d mois", b.ROIMonths)
		}
		sb.WriteString("\n")
	}
}

// entitySuggestions builds "En savoir plus sur <name>" suggestions; these
// round-trip into ExplicitInterest when clicked. With the contact
// suggestion appended, at most 5 entity suggestions fit under the cap.
func entitySuggestions(entities []catalog.Business, withContact bool) []string {
	limit := maxSuggestions
	if withContact {
		limit--
	}
	var out []string
	for i, b := range entities {
		if i >= limit {
			break
		}
		out = append(out, "En savoir plus sur "+b.Name)
	}
	if withContact {
		out = append(out, ContactSuggestion)
	}
	return out
}

func capSuggestions(s []string) []string {
	if len(s) > maxSuggestions {
		return s[:maxSuggestions]
	}
	return s
}
