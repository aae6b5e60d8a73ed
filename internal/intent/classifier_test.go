package intent

import (
	"testing"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/knowledge"
)

func testListings() []catalog.Business {
	return []catalog.Business{
		{ID: "1", Name: "Boutique Chaussures", Slug: "boutique-chaussures", Category: "mode", Price: 2500000, MonthlyPotential: 800000, ROIMonths: 4},
		{ID: "2", Name: "Boutique Cosmétiques", Slug: "boutique-cosmetiques", Category: "beauté", Price: 3200000, ROIMonths: 6},
		{ID: "3", Name: "Boutique Montres", Slug: "boutique-montres", Category: "accessoires", Price: 1800000},
	}
}

func testBase() *knowledge.Base {
	base := knowledge.NewBase()
	base.Put(knowledge.Entry{Name: "Boutique Chaussures", Keywords: []string{"chaussures", "sneakers"}, Price: 2500000})
	base.Put(knowledge.Entry{Name: "Boutique Cosmétiques", Keywords: []string{"cosmétiques", "beauté"}, Price: 3200000})
	base.Put(knowledge.Entry{Name: "Boutique Montres", Keywords: []string{"montres"}, Price: 1800000})
	return base
}

func testClassifier() *Classifier {
	return NewClassifier(testListings(), testBase(), []string{"parler à un humain"})
}

func TestClassifyListRequest(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Quels sont les business disponibles ?")
	if s.Kind != KindShowCatalogList {
		t.Fatalf("expected ShowCatalogList, got %s", s.Kind)
	}
}

func TestClassifySingleEntityExactName(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Parlez-moi de Boutique Chaussures")
	if s.Kind != KindShowSingleEntity {
		t.Fatalf("expected ShowSingleEntity, got %s", s.Kind)
	}
	if s.Score < scoreExactName {
		t.Errorf("exact name match should score >= %d, got %d", scoreExactName, s.Score)
	}
	if s.Entity == nil || s.Entity.Name != "Boutique Chaussures" {
		t.Errorf("entity not resolved: %+v", s.Entity)
	}
	if s.Fallback == nil {
		t.Error("fallback entry should be attached")
	}
}

func TestClassifyKeywordOnlyMatch(t *testing.T) {
	c := testClassifier()

	// "sneakers" is a keyword (3 points): at the threshold, accepted.
	s := c.Classify("Je cherche des sneakers")
	if s.Kind != KindShowSingleEntity {
		t.Fatalf("expected ShowSingleEntity, got %s", s.Kind)
	}
	if s.Fallback.Name != "Boutique Chaussures" {
		t.Errorf("wrong entry: %s", s.Fallback.Name)
	}
}

func TestClassifyBelowThresholdDelegates(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Comment fonctionne la livraison ?")
	if s.Kind != KindDelegateToRemote {
		t.Fatalf("expected DelegateToRemote, got %s", s.Kind)
	}
}

func TestClassifyMultipleEntities(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Je compare Boutique Chaussures et Boutique Montres")
	if s.Kind != KindShowMultipleEntities {
		t.Fatalf("expected ShowMultipleEntities, got %s", s.Kind)
	}
	if len(s.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(s.Entities))
	}
	// Catalog order is preserved.
	if s.Entities[0].Name != "Boutique Chaussures" || s.Entities[1].Name != "Boutique Montres" {
		t.Errorf("wrong order: %s, %s", s.Entities[0].Name, s.Entities[1].Name)
	}
}

func TestClassifyShowAllCapped(t *testing.T) {
	var listings []catalog.Business
	base := knowledge.NewBase()
	names := []string{"A1", "B2", "C3", "D4", "E5", "F6", "G7", "H8"}
	for _, n := range names {
		listings = append(listings, catalog.Business{Name: "Boutique " + n, Slug: "b-" + n})
	}
	c := NewClassifier(listings, base, nil)

	s := c.Classify("Montrez-moi tout ce que vous avez")
	if s.Kind != KindShowMultipleEntities {
		t.Fatalf("expected ShowMultipleEntities, got %s", s.Kind)
	}
	if len(s.Entities) != maxShowAllEntities {
		t.Errorf("expected cap of %d entities, got %d", maxShowAllEntities, len(s.Entities))
	}
}

func TestClassifyAspectProfitability(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Rentabilité de Boutique Chaussures")
	if s.Kind != KindAspectQuery {
		t.Fatalf("expected AspectQuery, got %s", s.Kind)
	}
	if s.Aspect != AspectProfitability {
		t.Errorf("expected profitability aspect, got %s", s.Aspect)
	}
	if s.EntityName != "Boutique Chaussures" {
		t.Errorf("capture should stay verbatim, got %q", s.EntityName)
	}
	if s.Entity == nil {
		t.Error("entity should resolve against the catalog")
	}
}

func TestClassifyAspectSuggestionsRoundTrip(t *testing.T) {
	c := testClassifier()

	// The composer's aspect suggestions must re-enter the aspect detector
	// with the entity name captured cleanly.
	cases := []struct {
		utterance string
		aspect    Aspect
	}{
		{"Quelle est la rentabilité de Boutique Chaussures ?", AspectProfitability},
		{"Combien de temps pour gérer Boutique Chaussures ?", AspectTime},
		{"Quelles compétences pour Boutique Chaussures ?", AspectSkill},
		{"Quels sont les avantages de Boutique Chaussures ?", AspectAdvantage},
		{"Quel est le prix de Boutique Chaussures ?", AspectCost},
	}
	for _, tt := range cases {
		s := c.Classify(tt.utterance)
		if s.Kind != KindAspectQuery {
			t.Errorf("%q: expected AspectQuery, got %s", tt.utterance, s.Kind)
			continue
		}
		if s.Aspect != tt.aspect {
			t.Errorf("%q: aspect = %s, want %s", tt.utterance, s.Aspect, tt.aspect)
		}
		if s.EntityName != "Boutique Chaussures" {
			t.Errorf("%q: captured %q, want clean entity name", tt.utterance, s.EntityName)
		}
	}
}

func TestClassifyAspectUnknownEntity(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Quel est le prix de Boutique Licornes ?")
	if s.Kind != KindAspectQuery {
		t.Fatalf("expected AspectQuery, got %s", s.Kind)
	}
	if s.Aspect != AspectCost {
		t.Errorf("expected cost aspect, got %s", s.Aspect)
	}
	if s.Entity != nil {
		t.Errorf("unknown entity should not resolve, got %+v", s.Entity)
	}
}

func TestClassifyExplicitInterestRoundTrip(t *testing.T) {
	c := testClassifier()

	// The composer generates "En savoir plus sur <name>" suggestions; they
	// must come back as ExplicitInterest for every catalog entity.
	for _, b := range testListings() {
		s := c.Classify("En savoir plus sur " + b.Name)
		if s.Kind != KindExplicitInterest {
			t.Fatalf("%s: expected ExplicitInterest, got %s", b.Name, s.Kind)
		}
		if s.Entity == nil || s.Entity.Name != b.Name {
			t.Errorf("%s: entity not resolved", b.Name)
		}
	}
}

func TestClassifyContactRequestBeatsEntityMatch(t *testing.T) {
	c := testClassifier()

	// The utterance also names an entity, but the contact literal is checked
	// earlier in the sequence.
	s := c.Classify("Je veux contacter un conseiller pour Boutique Chaussures")
	if s.Kind != KindHumanHandoff {
		t.Fatalf("expected HumanHandoff, got %s", s.Kind)
	}
}

func TestClassifyConfiguredHandoffPhrase(t *testing.T) {
	c := testClassifier()

	s := c.Classify("Je préfère parler à un humain svp")
	if s.Kind != KindHumanHandoff {
		t.Fatalf("expected HumanHandoff, got %s", s.Kind)
	}
}

func TestClassifyEmptyHandoffListNeverTriggers(t *testing.T) {
	c := NewClassifier(testListings(), testBase(), nil)

	s := c.Classify("Je préfère parler à un humain svp")
	if s.Kind == KindHumanHandoff {
		t.Fatal("empty trigger list must never produce HumanHandoff")
	}
}

func TestClassifyDeterministicTieBreak(t *testing.T) {
	base := knowledge.NewBase()
	// Both entries match only via the same keyword and score identically.
	base.Put(knowledge.Entry{Name: "Boutique Alpha", Keywords: []string{"tendance"}})
	base.Put(knowledge.Entry{Name: "Boutique Beta", Keywords: []string{"tendance"}})
	c := NewClassifier(nil, base, nil)

	for i := 0; i < 10; i++ {
		s := c.Classify("je cherche un produit tendance")
		if s.Kind != KindShowSingleEntity {
			t.Fatalf("expected ShowSingleEntity, got %s", s.Kind)
		}
		if s.Fallback.Name != "Boutique Alpha" {
			t.Fatalf("tie must break to the first entry, got %s", s.Fallback.Name)
		}
	}
}

func TestClassifyAlwaysReturnsOneStrategy(t *testing.T) {
	c := testClassifier()
	inputs := []string{
		"", "   ", "bonjour", "?", "Quels sont les business disponibles ?",
		"En savoir plus sur Boutique Montres", "Rentabilité de Boutique Chaussures",
		"N'importe quoi d'aléatoire 12345",
	}
	for _, in := range inputs {
		s := c.Classify(in)
		if s.Kind == "" {
			t.Errorf("Classify(%q) returned an empty kind", in)
		}
	}
}

func TestExtractMentionedNames(t *testing.T) {
	names := ExtractMentionedNames("j'ai vu le business de vente de bougies sur votre site")
	if len(names) == 0 {
		t.Fatal("expected a mentioned name")
	}

	if got := ExtractMentionedNames("bonjour, comment ça va ?"); len(got) != 0 {
		t.Errorf("expected no names, got %v", got)
	}
}
