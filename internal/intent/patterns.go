package intent

import "regexp"

// listRequestPhrases trigger the full-catalog listing. Matched as
// case-insensitive substrings of the utterance.
var listRequestPhrases = []string{
	"liste des business",
	"quels business",
	"quels sont les business",
	"business disponibles",
	"business en vente",
	"voir les business",
	"vos business",
	"que vendez-vous",
}

// showAllPhrases trigger a capped multi-entity listing.
var showAllPhrases = []string{
	"montrez-moi tout",
	"montre-moi tout",
	"montrez-moi vos boutiques",
	"toutes les boutiques",
	"toutes vos offres",
}

// contactRequestPhrases are the built-in literals that immediately hand the
// conversation to a human, checked before any entity matching. The
// configurable trigger list from the remote chatbot config is checked later
// in the sequence.
var contactRequestPhrases = []string{
	"contacter un conseiller",
	"parler à un conseiller",
	"contacter le support",
	"joindre un conseiller",
}

// explicitInterestPattern captures the business name of an
// "en savoir plus sur <X>" utterance verbatim. This is also the shape of
// the suggestions the composer generates, so generated suggestions round-trip
// into ExplicitInterest.
var explicitInterestPattern = regexp.MustCompile(
	`(?i)^(?:je veux |je voudrais |j'aimerais )?en savoir plus sur (.+?)[\s?.!]*$`)

// aspectTemplates map question shapes to aspects. Evaluated in order; the
// first matching template wins and its capture group is the entity name.
var aspectTemplates = []struct {
	Aspect  Aspect
	Pattern *regexp.Regexp
}{
	{AspectProfitability, regexp.MustCompile(`(?i)^(?:quelle est la )?(?:rentabilité|combien rapporte|quels bénéfices pour)\s+(?:de |du |des |d'|pour )?(.+?)[\s?.!]*$`)},
	{AspectTime, regexp.MustCompile(`(?i)^(?:combien de temps|quel temps|combien d'heures)\s+(?:faut-il |par semaine )?(?:pour gérer |pour |demande )?(.+?)[\s?.!]*$`)},
	{AspectSkill, regexp.MustCompile(`(?i)^(?:quelles compétences|quelle expérience|faut-il de l'expérience)\s+(?:faut-il |requises? |nécessaires? )?(?:pour |sur )?(.+?)[\s?.!]*$`)},
	{AspectAdvantage, regexp.MustCompile(`(?i)^(?:quels? (?:sont les )?avantages?|pourquoi choisir|quels points forts pour)\s+(?:de |du |des |d')?(.+?)[\s?.!]*$`)},
	{AspectCost, regexp.MustCompile(`(?i)^(?:quel est le prix|combien coûte|quel coût pour)\s+(?:de |du |des |d')?(.+?)[\s?.!]*$`)},
}

// mentionEntityPatterns extract a business name mentioned in free text,
// independent of the catalog. Used by the funnel tracker.
var mentionEntityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)business\s+(?:de\s+|d')?([\p{L}0-9' -]{3,40})`),
	regexp.MustCompile(`(?i)e-commerce\s+de\s+([\p{L}0-9' -]{3,40})`),
	regexp.MustCompile(`(?i)boutique\s+(?:de\s+|d')?([\p{L}0-9' -]{3,40})`),
}

// profitabilityTerms feed the entity-scoring bonus for ROI-minded questions.
var profitabilityTerms = []string{
	"rentab", "bénéfice", "profit", "rapporte", "roi", "retour sur investissement",
}
