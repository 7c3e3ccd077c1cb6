package query

import (
	"github.com/eduardoceto/waste-logs-service/internal/model"
)

// SumWeight totals TotalWeight across the collection. Records measured in
// pieces are excluded: a count is not a weight, and every total the user
// sees must apply the same exclusion.
func SumWeight(logs []model.DisposalLog) float64 {
	total := 0.0
	for _, log := range logs {
		if log.Unit == model.UnitPieces {
			continue
		}
		total += log.TotalWeight
	}
	return total
}

// SumWeightByMaterial buckets the same summation by material type. Only
// materials present in the collection appear in the result.
func SumWeightByMaterial(logs []model.DisposalLog) map[model.MaterialType]float64 {
	totals := make(map[model.MaterialType]float64)
	for _, log := range logs {
		if log.Unit == model.UnitPieces {
			continue
		}
		totals[log.MaterialType] += log.TotalWeight
	}
	return totals
}
