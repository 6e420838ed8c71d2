package incidence

import (
	"errors"
	"testing"
)

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()

	cat, err := r.Resolve("MALARIA")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cat.Label != "Malaria" || len(cat.ConceptIDs) == 0 {
		t.Errorf("unexpected category: %+v", cat)
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("BOGUS")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestRegistry_DiagnosisAndDrugTablesAreSeparate(t *testing.T) {
	r := NewRegistry()

	if _, err := r.ResolveDrug("ANTIMALARIAL"); err != nil {
		t.Errorf("expected ANTIMALARIAL in drug table: %v", err)
	}
	if _, err := r.Resolve("ANTIMALARIAL"); err == nil {
		t.Error("did not expect ANTIMALARIAL in diagnosis table")
	}
	if _, err := r.ResolveDrug("MALARIA"); err == nil {
		t.Error("did not expect MALARIA in drug table")
	}
}

func TestRegistry_CategoriesSorted(t *testing.T) {
	r := NewRegistry()

	cats := r.Categories()
	if len(cats) == 0 {
		t.Fatal("expected non-empty category table")
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1].Key >= cats[i].Key {
			t.Fatalf("categories not sorted: %s before %s", cats[i-1].Key, cats[i].Key)
		}
	}

	for _, cat := range cats {
		if len(cat.ConceptIDs) == 0 {
			t.Errorf("category %s has no concept ids", cat.Key)
		}
		if cat.Label == "" {
			t.Errorf("category %s has no label", cat.Key)
		}
	}
}
