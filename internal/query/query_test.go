package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

func logOn(date string, mt model.MaterialType, weight float64, unit string) model.DisposalLog {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.DisposalLog{
		Date:         parsed,
		MaterialType: mt,
		TotalWeight:  weight,
		Unit:         unit,
	}
}

func TestDateRangeFilterIsInclusive(t *testing.T) {
	logs := []model.DisposalLog{
		logOn("2025-03-01", model.MaterialLodos, 10, model.UnitKg),
		logOn("2025-03-15", model.MaterialLodos, 20, model.UnitKg),
		logOn("2025-03-31", model.MaterialLodos, 30, model.UnitKg),
		logOn("2025-04-01", model.MaterialLodos, 40, model.UnitKg),
	}

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	filtered := FilterByDateRange(logs, &from, &to)
	require.Len(t, filtered, 3, "records on both bounds are included")

	assert.Len(t, FilterByDateRange(logs, &from, nil), 4, "open upper bound passes everything")
	assert.Len(t, FilterByDateRange(logs, nil, nil), 4)
}

func TestMaterialFilterSentinel(t *testing.T) {
	logs := []model.DisposalLog{
		logOn("2025-03-01", model.MaterialLodos, 10, model.UnitKg),
		logOn("2025-03-02", model.MaterialMetal, 20, model.UnitKg),
	}

	assert.Len(t, FilterByMaterial(logs, "all"), 2)
	assert.Len(t, FilterByMaterial(logs, ""), 2)

	filtered := FilterByMaterial(logs, "metal")
	require.Len(t, filtered, 1)
	assert.Equal(t, model.MaterialMetal, filtered[0].MaterialType)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	log := logOn("2025-03-01", model.MaterialMetal, 12.5, model.UnitKg)
	log.Driver.Company = "ACME Transport"
	log.Folio = "48213"

	matched := Search([]model.DisposalLog{log}, "acme")
	require.Len(t, matched, 1)

	assert.Len(t, Search([]model.DisposalLog{log}, "482"), 1, "folio substring matches")
	assert.Empty(t, Search([]model.DisposalLog{log}, "nothing-here"))
}

func TestSearchFallsBackToVariantFields(t *testing.T) {
	log := logOn("2025-03-01", model.MaterialLodos, 120, model.UnitKg)
	log.Details.Lodos = &model.LodosDetails{
		ResidueName:    "Lodos de pintura",
		ManifestNumber: "MX-104",
	}

	assert.Len(t, Search([]model.DisposalLog{log}, "mx-104"), 1)
	assert.Len(t, Search([]model.DisposalLog{log}, "PINTURA"), 1)
}

func TestSumWeightExcludesPieces(t *testing.T) {
	logs := []model.DisposalLog{
		logOn("2025-03-01", model.MaterialMetal, 10, model.UnitKg),
		logOn("2025-03-02", model.MaterialMetal, 5, model.UnitPieces),
	}

	assert.Equal(t, 10.0, SumWeight(logs), "piece counts never contribute to weight totals")
}

func TestSumWeightByMaterial(t *testing.T) {
	logs := []model.DisposalLog{
		logOn("2025-03-01", model.MaterialLodos, 120, model.UnitKg),
		logOn("2025-03-02", model.MaterialLodos, 30, model.UnitKg),
		logOn("2025-03-03", model.MaterialMetal, 12.5, model.UnitKg),
		logOn("2025-03-04", model.MaterialOtros, 99, model.UnitPieces),
	}

	totals := SumWeightByMaterial(logs)
	assert.Equal(t, 150.0, totals[model.MaterialLodos])
	assert.Equal(t, 12.5, totals[model.MaterialMetal])
	assert.Zero(t, totals[model.MaterialOtros], "pza-only material sums to nothing")
}

func TestSortStateToggle(t *testing.T) {
	var state SortState

	state.Select(SortByFolio)
	assert.Equal(t, SortByFolio, state.Field)
	assert.True(t, state.Asc, "new field starts ascending")

	state.Select(SortByFolio)
	assert.False(t, state.Asc, "same field toggles to descending")

	state.Select(SortByDate)
	assert.Equal(t, SortByDate, state.Field)
	assert.True(t, state.Asc, "switching fields resets to ascending")
}

func TestSortByFields(t *testing.T) {
	a := logOn("2025-03-03", model.MaterialLodos, 30, model.UnitKg)
	a.Folio = "b-200"
	b := logOn("2025-03-01", model.MaterialMetal, 10, model.UnitKg)
	b.Folio = "A-100"
	c := logOn("2025-03-02", model.MaterialOtros, 20, model.UnitKg)
	c.Folio = "c-300"
	logs := []model.DisposalLog{a, b, c}

	byDate := SortBy(logs, SortByDate, true)
	assert.Equal(t, "A-100", byDate[0].Folio)

	byWeight := SortBy(logs, SortByWeight, false)
	assert.Equal(t, 30.0, byWeight[0].TotalWeight)

	byFolio := SortBy(logs, SortByFolio, true)
	assert.Equal(t, "A-100", byFolio[0].Folio, "string sort is case-folded")

	// Unknown field keeps input order and never mutates the input.
	same := SortBy(logs, "bogus", true)
	assert.Equal(t, logs, same)
}
