package commands

import (
	"prospector/contexts/sales-acquisition/campaign-service/domain/entities"
	"prospector/contexts/sales-acquisition/campaign-service/ports"
)

// VariantSelector picks a message variant proportionally to its weight.
// When every weight is zero the draw is uniform.
type VariantSelector struct {
	Rand ports.RandSource
}

func (s VariantSelector) Pick(variants []entities.Variant) (entities.Variant, bool) {
	if len(variants) == 0 {
		return entities.Variant{}, false
	}

	total := 0
	for _, variant := range variants {
		if variant.Weight > 0 {
			total += variant.Weight
		}
	}
	if total <= 0 {
		return variants[s.Rand.Intn(len(variants))], true
	}

	draw := s.Rand.Intn(total)
	for _, variant := range variants {
		if variant.Weight <= 0 {
			continue
		}
		if draw < variant.Weight {
			return variant, true
		}
		draw -= variant.Weight
	}
	return variants[len(variants)-1], true
}
