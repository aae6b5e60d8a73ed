package compose

import (
	"fmt"
	"strings"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/intent"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// AspectAnswer renders a canned paragraph for one facet of one business.
// When the named entity resolves to nothing in the catalog, the visitor is
// invited to the full listing instead of getting invented numbers.
func (c *Composer) AspectAnswer(s intent.Strategy) Response {
	if s.Entity == nil {
		return c.unknownEntity(s.EntityName)
	}

	b := *s.Entity
	var fallback knowledge.Entry
	if e, ok := c.base.Get(b.Name); ok {
		fallback = e
	}

	var text string
	switch s.Aspect {
	case intent.AspectProfitability:
		text = profitabilityAnswer(b, fallback)
	case intent.AspectTime:
		text = fmt.Sprintf("**%s** se gère en 2 à 3 heures par jour en moyenne. "+
			"Tout est déjà en place (fournisseurs, site, contenus marketing) : votre temps part dans le traitement "+
			"des commandes et l'animation des réseaux sociaux.", b.Name)
	case intent.AspectSkill:
		text = fmt.Sprintf("Aucune expérience e-commerce n'est requise pour **%s**. "+
			"L'accompagnement de 2 mois couvre la gestion de la boutique, le marketing et la relation fournisseurs. "+
			"Savoir utiliser un smartphone et être motivé suffisent pour démarrer.", b.Name)
	case intent.AspectAdvantage:
		text = fmt.Sprintf("Le gros avantage de **%s** : vous démarrez avec un business déjà construit et validé, "+
			"au lieu de partir de zéro. Fournisseurs négociés, boutique en ligne prête, stratégie marketing testée, "+
			"et une équipe qui vous accompagne pendant 2 mois.", b.Name)
	case intent.AspectCost:
		text = costAnswer(b)
	default:
		return c.unknownEntity(s.EntityName)
	}

	return Response{
		Text:        text,
		Suggestions: capSuggestions(append(aspectFollowUps(b.Name, s.Aspect), ContactSuggestion)),
	}
}

func profitabilityAnswer(b catalog.Business, fallback knowledge.Entry) string {
	potential := missingAmountPhrase
	if b.MonthlyPotential > 0 {
		potential = knowledge.FormatFCFA(b.MonthlyPotential) + " par mois"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** a un potentiel de revenus estimé à %s.", b.Name, potential)
	if b.ROIMonths > 0 {
		fmt.Fprintf(&sb, " L'investissement est généralement rentabilisé en %d mois.", b.ROIMonths)
	} else if fallback.ROINote != "" {
		sb.WriteString(" Il est ")
		sb.WriteString(fallback.ROINote)
		sb.WriteString(".")
	}
	return sb.String()
}

func costAnswer(b catalog.Business) string {
	price := missingAmountPhrase
	if b.Price > 0 {
		price = knowledge.FormatFCFA(b.Price)
	}
	return fmt.Sprintf("**%s** est proposé à %s, accompagnement de 2 mois inclus. "+
		"Le paiement peut se faire en 2 ou 3 fois.", b.Name, price)
}

// aspectFollowUps suggests two different facets of the same business,
// phrased so they re-enter the aspect detector when clicked.
func aspectFollowUps(name string, current intent.Aspect) []string {
	all := []struct {
		aspect intent.Aspect
		text   string
	}{
		{intent.AspectProfitability, "Quelle est la rentabilité de " + name + " ?"},
		{intent.AspectCost, "Quel est le prix de " + name + " ?"},
		{intent.AspectTime, "Combien de temps pour gérer " + name + " ?"},
		{intent.AspectSkill, "Quelles compétences pour " + name + " ?"},
	}

	var out []string
	for _, a := range all {
		if a.aspect == current {
			continue
		}
		out = append(out, a.text)
		if len(out) == 2 {
			break
		}
	}
	return out
}
