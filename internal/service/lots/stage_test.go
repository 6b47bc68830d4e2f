package lots

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sotramin/mineops/internal/domain/models"
)

func extraction(lot string) *models.ExtractionRecord {
	return &models.ExtractionRecord{
		Zone:     "Zona Norte",
		Material: models.MaterialGold,
		LotCode:  lot,
		Date:     "2024-06-01",
	}
}

func TestInferStage(t *testing.T) {
	t.Parallel()

	lab := []models.LabAnalysis{{LotCode: "O-123", SubmissionDate: "2024-06-05", Result: "Aprobado"}}
	plantRun := func(sold bool) models.PlantRun {
		return models.PlantRun{LotCode: "O-123", Date: "2024-06-10", Sold: sold}
	}
	shipment := func(sold bool) models.ShippingRecord {
		return models.ShippingRecord{LotCode: "O-123", ShipDate: "2024-06-15", Sold: sold}
	}

	tests := []struct {
		name      string
		agg       *models.LotAggregate
		wantStage models.Stage
		wantFlags models.StageFlags
	}{
		{
			name:      "nil aggregate",
			agg:       nil,
			wantStage: models.StagePending,
		},
		{
			name:      "no extraction record",
			agg:       &models.LotAggregate{LotCode: "O-123"},
			wantStage: models.StagePending,
		},
		{
			name:      "extraction only",
			agg:       &models.LotAggregate{LotCode: "O-123", Extraction: extraction("O-123")},
			wantStage: models.StageExtraction,
			wantFlags: models.StageFlags{Extraction: true},
		},
		{
			name: "extraction and lab",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
			},
			wantStage: models.StageLab,
			wantFlags: models.StageFlags{Extraction: true, Lab: true},
		},
		{
			name: "plant without lab stays at extraction",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"),
				Plant: []models.PlantRun{plantRun(false)},
			},
			wantStage: models.StageExtraction,
			wantFlags: models.StageFlags{Extraction: true},
		},
		{
			name: "plant present reads as ready to ship",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
				Plant: []models.PlantRun{plantRun(false)},
			},
			wantStage: models.StageShipping,
			wantFlags: models.StageFlags{Extraction: true, Lab: true, Plant: true},
		},
		{
			name: "plant sold without shipping takes the direct sale shortcut",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
				Plant: []models.PlantRun{plantRun(false), plantRun(true)},
			},
			wantStage: models.StageSold,
			wantFlags: models.StageFlags{Extraction: true, Lab: true, Plant: true, Sold: true},
		},
		{
			name: "plant sold suppresses the shipping check entirely",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
				Plant:    []models.PlantRun{plantRun(true)},
				Shipping: []models.ShippingRecord{shipment(false)},
			},
			wantStage: models.StageSold,
			wantFlags: models.StageFlags{Extraction: true, Lab: true, Plant: true, Sold: true},
		},
		{
			name: "shipped awaiting sale confirmation",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
				Plant:    []models.PlantRun{plantRun(false)},
				Shipping: []models.ShippingRecord{shipment(false)},
			},
			wantStage: models.StageShipping,
			wantFlags: models.StageFlags{Extraction: true, Lab: true, Plant: true, Shipping: true},
		},
		{
			name: "shipping record sold",
			agg: &models.LotAggregate{
				LotCode: "O-123", Extraction: extraction("O-123"), Lab: lab,
				Plant:    []models.PlantRun{plantRun(false)},
				Shipping: []models.ShippingRecord{shipment(false), shipment(true)},
			},
			wantStage: models.StageSold,
			wantFlags: models.StageFlags{Extraction: true, Lab: true, Plant: true, Shipping: true, Sold: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := InferStage(tt.agg)

			assert.Equal(t, tt.wantStage, got.CurrentStage)
			assert.Equal(t, tt.wantFlags, got.Stages)
			assert.NotEmpty(t, got.StatusMessage)
		})
	}
}

func TestInferStageNeverSetsLaterFlagWithoutEarlier(t *testing.T) {
	t.Parallel()

	// Shipping documents alone must not imply extraction, lab or plant.
	agg := &models.LotAggregate{
		LotCode:  "O-999",
		Shipping: []models.ShippingRecord{{LotCode: "O-999", Sold: true}},
	}

	got := InferStage(agg)

	assert.Equal(t, models.StagePending, got.CurrentStage)
	assert.Equal(t, models.StageFlags{}, got.Stages)
}
