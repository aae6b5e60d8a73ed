package funnel

import (
	"regexp"
	"strings"
)

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Topic tags form a fixed vocabulary; Update never invents new ones.
const (
	TopicPrice         = "price"
	TopicTime          = "time"
	TopicSupport       = "support"
	TopicProfitability = "profitability"
	TopicExperience    = "experience"
)

// Objection tags form a fixed vocabulary.
const (
	ObjectionPrice      = "price"
	ObjectionTime       = "time"
	ObjectionComplexity = "complexity"
	ObjectionRisk       = "risk"
	ObjectionSkill      = "skill"
)

// topicPatterns detect discussed topics in any message, user or assistant.
var topicPatterns = []struct {
	Tag     string
	Pattern *regexp.Regexp
}{
	{TopicPrice, regexp.MustCompile(`(?i)prix|coût|budget|cher|fcfa|payer|paiement`)},
	{TopicTime, regexp.MustCompile(`(?i)temps|heures|durée|quand|rapidement|semaine`)},
	{TopicSupport, regexp.MustCompile(`(?i)accompagnement|formation|aide|support|assistance`)},
	{TopicProfitability, regexp.MustCompile(`(?i)rentab|bénéfice|profit|revenu|rapporte|roi`)},
	{TopicExperience, regexp.MustCompile(`(?i)expérience|compétence|débutant|connaissances|savoir`)},
}

// objectionPatterns detect hesitations in user messages only.
var objectionPatterns = []struct {
	Tag     string
	Pattern *regexp.Regexp
}{
	{ObjectionPrice, regexp.MustCompile(`(?i)trop cher|pas les moyens|budget limité|trop élevé`)},
	{ObjectionTime, regexp.MustCompile(`(?i)pas le temps|trop de temps|très occupé`)},
	{ObjectionComplexity, regexp.MustCompile(`(?i)compliqué|difficile|complexe|je ne sais pas comment`)},
	{ObjectionRisk, regexp.MustCompile(`(?i)risqu|peur|arnaque|garantie|perdre`)},
	{ObjectionSkill, regexp.MustCompile(`(?i)jamais fait|aucune expérience|pas de compétence|débutant`)},
}

// Stage keywords, checked in decision → consideration → interest order.
// A stronger stage always wins over the current one; a weaker one never
// overwrites a stronger one.
var (
	decisionPattern      = regexp.MustCompile(`(?i)je veux acheter|je suis prêt|je prends|comment payer|passer commande|acquérir ce`)
	considerationPattern = regexp.MustCompile(`(?i)comment (?:ça marche|fonctionne)|combien de temps|accompagnement|c'est quoi les étapes|modalités`)
	interestPattern      = regexp.MustCompile(`(?i)intéress|en savoir plus|plus de détails|plus d'infos|parlez-moi`)
)

// readyPattern flips ReadyToBuy; it never flips back.
var readyPattern = regexp.MustCompile(`(?i)je veux acheter|je veux l'acheter|prêt à acheter|je me lance|on y va|je le prends`)
