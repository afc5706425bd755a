package catalog_test

import (
	"testing"

	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/infra/catalog"
)

func TestCatalog_Size(t *testing.T) {
	if len(catalog.Items) != 19 {
		t.Errorf("expected 19 catalog entries, got %d", len(catalog.Items))
	}
}

func TestCatalog_UniqueIDsAndPalettes(t *testing.T) {
	seen := make(map[string]bool)
	for _, it := range catalog.Items {
		if seen[it.ItemID] {
			t.Errorf("duplicate item id %q", it.ItemID)
		}
		seen[it.ItemID] = true

		if len(it.Palette) == 0 {
			t.Errorf("item %q has an empty palette", it.ItemID)
		}
		colors := make(map[string]bool)
		for _, c := range it.Palette {
			if colors[c] {
				t.Errorf("item %q repeats color %q", it.ItemID, c)
			}
			colors[c] = true
		}
	}
}

func TestCatalog_RarityTiers(t *testing.T) {
	counts := make(map[domain.Rarity]int)
	for _, it := range catalog.Items {
		counts[it.Rarity]++
	}
	if counts[domain.RarityN] != 10 {
		t.Errorf("expected 10 N items, got %d", counts[domain.RarityN])
	}
	if counts[domain.RarityR] != 6 {
		t.Errorf("expected 6 R items, got %d", counts[domain.RarityR])
	}
	if counts[domain.RaritySR] != 3 {
		t.Errorf("expected 3 SR items, got %d", counts[domain.RaritySR])
	}
}

func TestCatalog_Weights(t *testing.T) {
	tests := []struct {
		rarity domain.Rarity
		want   int
	}{
		{domain.RaritySR, 2},
		{domain.RarityR, 18},
		{domain.RarityN, 80},
	}
	for _, tt := range tests {
		if got := catalog.Weight(tt.rarity); got != tt.want {
			t.Errorf("Weight(%s) = %d, want %d", tt.rarity, got, tt.want)
		}
	}

	// 10*80 + 6*18 + 3*2
	if got := catalog.TotalWeight(); got != 914 {
		t.Errorf("TotalWeight() = %d, want 914", got)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	it := catalog.Lookup("mascot_06")
	if it == nil {
		t.Fatal("expected mascot_06 in catalog")
	}
	if it.Rarity != domain.RaritySR {
		t.Errorf("mascot_06 rarity = %s, want SR", it.Rarity)
	}

	if catalog.Lookup("no_such_item") != nil {
		t.Error("expected nil for unknown item id")
	}
}
