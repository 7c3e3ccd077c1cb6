package pdf

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardoceto/waste-logs-service/internal/model"
)

func TestGenerateProducesPDFBytes(t *testing.T) {
	generator := NewGenerator()

	log := model.DisposalLog{
		ID:                uuid.New(),
		Folio:             "48213",
		Date:              time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		DepartureTime:     "14:30",
		Department:        "EHS",
		Reason:            "Residuos",
		ContainerType:     "Contenedor metálico",
		AuthorizingPerson: "G. Morales",
		MaterialType:      model.MaterialLodos,
		TotalWeight:       120.5,
		Unit:              model.UnitKg,
		Driver: model.DriverSnapshot{
			Name:    "Juan Pérez",
			Company: "ACME Transport",
		},
		Details: model.MaterialDetails{Lodos: &model.LodosDetails{
			ResidueName:            "Lodos de pintura",
			ManifestNumber:         "MX-104",
			Area:                   "Pintura",
			TransportServiceNumber: "17",
			WeightKg:               120.5,
		}},
	}

	content, err := generator.Generate(log)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestGenerateToleratesMissingOptionalFields(t *testing.T) {
	generator := NewGenerator()

	// No driver, no details: placeholders render, generation succeeds.
	log := model.DisposalLog{
		Folio: "11111",
		Date:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	content, err := generator.Generate(log)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestGenerateEveryVariantBlock(t *testing.T) {
	generator := NewGenerator()
	hmmx := 7701.0

	variants := []model.MaterialDetails{
		{Lodos: &model.LodosDetails{ResidueName: "Lodos", WeightKg: 10}},
		{Metal: &model.MetalDetails{ResidueType: "Ferroso", Item: "Aluminio", Quantity: 12.5, Unit: "kg", RemisionHMMX: &hmmx}},
		{Otros: &model.OtrosDetails{WasteType: "Cartón", Item: "Empaque", Quantity: 5, Unit: "pza"}},
		{Destruidas: &model.DestruidasDetails{Residues: "Uretano", Area: "Ensamble", Weight: 42}},
	}

	for i, details := range variants {
		log := model.DisposalLog{
			Folio:   "22222",
			Date:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Details: details,
		}
		content, err := generator.Generate(log)
		require.NoError(t, err, "variant %d", i)
		assert.NotEmpty(t, content)
	}
}
