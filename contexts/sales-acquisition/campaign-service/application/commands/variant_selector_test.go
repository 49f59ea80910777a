package commands

import (
	"math/rand"
	"testing"

	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
)

func TestVariantSelectorHonorsWeights(t *testing.T) {
	selector := VariantSelector{Rand: rand.New(rand.NewSource(42))}
	variants := []entities.Variant{
		{Name: "a", Weight: 50},
		{Name: "b", Weight: 50},
	}

	counts := map[string]int{}
	draws := 10000
	for i := 0; i < draws; i++ {
		variant, ok := selector.Pick(variants)
		if !ok {
			t.Fatalf("expected a pick on draw %d", i)
		}
		counts[variant.Name]++
	}

	for _, name := range []string{"a", "b"} {
		share := float64(counts[name]) / float64(draws)
		if share < 0.45 || share > 0.55 {
			t.Fatalf("expected %q share near 0.5, got %.3f", name, share)
		}
	}
}

func TestVariantSelectorUniformWhenAllWeightsZero(t *testing.T) {
	selector := VariantSelector{Rand: rand.New(rand.NewSource(7))}
	variants := []entities.Variant{
		{Name: "a", Weight: 0},
		{Name: "b", Weight: 0},
	}

	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		variant, ok := selector.Pick(variants)
		if !ok {
			t.Fatalf("expected zero-weight variants to still pick")
		}
		counts[variant.Name]++
	}
	if counts["a"] == 0 || counts["b"] == 0 {
		t.Fatalf("expected both zero-weight variants selected, got %v", counts)
	}
}

func TestVariantSelectorSkipsZeroWeightWhenOthersCarryWeight(t *testing.T) {
	selector := VariantSelector{Rand: rand.New(rand.NewSource(11))}
	variants := []entities.Variant{
		{Name: "never", Weight: 0},
		{Name: "always", Weight: 10},
	}

	for i := 0; i < 500; i++ {
		variant, ok := selector.Pick(variants)
		if !ok {
			t.Fatalf("expected a pick")
		}
		if variant.Name == "never" {
			t.Fatalf("expected zero-weight variant never selected alongside weighted ones")
		}
	}
}

func TestVariantSelectorEmptyListPicksNothing(t *testing.T) {
	selector := VariantSelector{Rand: rand.New(rand.NewSource(3))}
	if _, ok := selector.Pick(nil); ok {
		t.Fatalf("expected no pick for an empty variant list")
	}
}
