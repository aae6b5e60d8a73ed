package intent

import (
	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

// Kind discriminates the response strategies the classifier can pick.
type Kind string

const (
	KindShowCatalogList      Kind = "show_catalog_list"
	KindShowMultipleEntities Kind = "show_multiple_entities"
	KindShowSingleEntity     Kind = "show_single_entity"
	KindAspectQuery          Kind = "aspect_query"
	KindExplicitInterest     Kind = "explicit_interest"
	KindHumanHandoff         Kind = "human_handoff"
	KindDelegateToRemote     Kind = "delegate_to_remote"
)

// Aspect is one facet of a business a visitor can ask about.
type Aspect string

const (
	AspectProfitability Aspect = "profitability"
	AspectTime          Aspect = "time"
	AspectSkill         Aspect = "skill"
	AspectAdvantage     Aspect = "advantage"
	AspectCost          Aspect = "cost"
)

// Strategy is the classifier's decision for one utterance. Kind selects the
// variant; the payload fields are populated per variant:
//
//   - ShowMultipleEntities: Entities
//   - ShowSingleEntity: Entity, Fallback, Score
//   - AspectQuery: EntityName (verbatim capture), Aspect, Entity (nil when
//     the name resolves to nothing in the catalog)
//   - ExplicitInterest: EntityName (verbatim capture), Entity (may be nil)
//   - all others: no payload
type Strategy struct {
	Kind       Kind
	Entities   []catalog.Business
	Entity     *catalog.Business
	Fallback   *knowledge.Entry
	EntityName string
	Aspect     Aspect
	Score      int
}
