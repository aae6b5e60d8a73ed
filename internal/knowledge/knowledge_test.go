package knowledge

import (
	"context"
	"testing"

	"github.com/tekkistudio/salesbot/internal/catalog"
	"github.com/tekkistudio/salesbot/internal/db"
)

func TestBaseInsertionOrder(t *testing.T) {
	b := NewBase()
	b.Put(Entry{Name: "Beta"})
	b.Put(Entry{Name: "Alpha"})
	b.Put(Entry{Name: "Gamma"})

	entries := b.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"Beta", "Alpha", "Gamma"}
	for i, e := range entries {
		if e.Name != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Name, want[i])
		}
	}
}

func TestBaseCaseInsensitiveLookup(t *testing.T) {
	b := NewBase()
	b.Put(Entry{Name: "Boutique Chaussures"})

	if _, ok := b.Get("boutique chaussures"); !ok {
		t.Error("lowercase lookup should find the entry")
	}
	if _, ok := b.Get("BOUTIQUE CHAUSSURES"); !ok {
		t.Error("uppercase lookup should find the entry")
	}
}

func TestKeywordDeduplication(t *testing.T) {
	b := NewBase()
	b.Put(Entry{Name: "X", Keywords: []string{"Mode", "mode", " MODE ", "chaussures"}})

	e, _ := b.Get("X")
	if len(e.Keywords) != 2 {
		t.Fatalf("expected 2 deduplicated keywords, got %v", e.Keywords)
	}
}

func TestPutIfAbsentKeepsExisting(t *testing.T) {
	b := NewBase()
	b.Put(Entry{Name: "Boutique Chaussures", Description: "remote description"})
	b.PutIfAbsent(Entry{Name: "boutique chaussures", Description: "synthesized"})

	e, _ := b.Get("Boutique Chaussures")
	if e.Description != "remote description" {
		t.Errorf("existing entry should win, got %q", e.Description)
	}

	b.PutIfAbsent(Entry{Name: "Boutique Montres", Description: "new"})
	if b.Len() != 2 {
		t.Errorf("new key should be added, len = %d", b.Len())
	}
}

func TestLoadBaseFallsBackToBuiltin(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	// Empty table: builtin defaults are kept.
	base := LoadBase(context.Background(), NewStore(database))
	if base.Len() == 0 {
		t.Fatal("builtin base must have at least one entry")
	}
	if _, ok := base.Get("Boutique Chaussures"); !ok {
		t.Error("builtin base should contain Boutique Chaussures")
	}
}

func TestLoadBaseReplacesBuiltin(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	store := NewStore(database)
	remote := []Entry{
		{Name: "Boutique Sacs", Description: "desc", Keywords: []string{"sacs"}},
	}
	if err := store.SaveAll(context.Background(), remote); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	base := LoadBase(context.Background(), store)
	if base.Len() != 1 {
		t.Fatalf("remote result should replace builtin wholesale, len = %d", base.Len())
	}
	if _, ok := base.Get("Boutique Chaussures"); ok {
		t.Error("builtin entries must not survive a non-empty remote load")
	}
}

func TestSynthesizeFromCatalog(t *testing.T) {
	base := NewBase()
	base.Put(Entry{Name: "Boutique Chaussures", Description: "remote"})

	listings := []catalog.Business{
		{Name: "Boutique Chaussures", Category: "mode", Price: 2500000},
		{Name: "Boutique Bougies", Category: "maison", Price: 900000, MonthlyPotential: 350000, ROIMonths: 3},
	}
	SynthesizeFromCatalog(base, listings)

	// Existing key wins.
	e, _ := base.Get("Boutique Chaussures")
	if e.Description != "remote" {
		t.Errorf("existing entry should be kept, got %q", e.Description)
	}

	// New key is synthesized.
	e, ok := base.Get("Boutique Bougies")
	if !ok {
		t.Fatal("synthesized entry missing")
	}
	if e.Price != 900000 {
		t.Errorf("price not carried over: %d", e.Price)
	}
	if e.ROINote == "" {
		t.Error("expected a synthesized ROI note")
	}
	hasCategory := false
	for _, kw := range e.Keywords {
		if kw == "maison" {
			hasCategory = true
		}
		if kw == "de" || kw == "la" {
			t.Errorf("short token %q should be filtered", kw)
		}
	}
	if !hasCategory {
		t.Errorf("category keyword missing: %v", e.Keywords)
	}
}

func TestFormatFCFA(t *testing.T) {
	cases := map[int]string{
		0:       "0 FCFA",
		950:     "950 FCFA",
		2500000: "2 500 000 FCFA",
		1800:    "1 800 FCFA",
	}
	for amount, want := range cases {
		if got := FormatFCFA(amount); got != want {
			t.Errorf("FormatFCFA(%d) = %q, want %q", amount, got, want)
		}
	}
}
