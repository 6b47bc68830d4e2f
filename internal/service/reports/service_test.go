package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
)

func validExtraction() *models.ExtractionRecord {
	return &models.ExtractionRecord{
		Zone:      "Zona Norte",
		Material:  models.MaterialGold,
		LotCode:   "O-123",
		Date:      "2024-06-01",
		Tonnes:    12.5,
		Operator:  "J. Quispe",
		Condition: models.ConditionDry,
	}
}

func TestCreateExtractionValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(rec *models.ExtractionRecord)
		wantErr error
	}{
		{
			name:   "valid record",
			mutate: func(rec *models.ExtractionRecord) {},
		},
		{
			name:    "bad lot code",
			mutate:  func(rec *models.ExtractionRecord) { rec.LotCode = "LOTE123" },
			wantErr: models.ErrInvalidLotCode,
		},
		{
			name:    "unknown material",
			mutate:  func(rec *models.ExtractionRecord) { rec.Material = "plata" },
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "unknown condition",
			mutate:  func(rec *models.ExtractionRecord) { rec.Condition = "mojado" },
			wantErr: models.ErrInvalidInput,
		},
		{
			name: "no quantity",
			mutate: func(rec *models.ExtractionRecord) {
				rec.Tonnes = 0
				rec.Kilograms = 0
			},
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "malformed date",
			mutate:  func(rec *models.ExtractionRecord) { rec.Date = "01/06/2024" },
			wantErr: models.ErrInvalidInput,
		},
		{
			name:    "missing zone",
			mutate:  func(rec *models.ExtractionRecord) { rec.Zone = "  " },
			wantErr: models.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeRecordRepo{}
			svc := NewService(repo, nil, nil)

			rec := validExtraction()
			tt.mutate(rec)

			id, err := svc.CreateExtraction(context.Background(), rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.extractions)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, id)
			require.Len(t, repo.extractions, 1)
			assert.False(t, repo.extractions[0].CreatedAt.IsZero())
		})
	}
}

func TestCreateExtractionNormalizesLotCode(t *testing.T) {
	t.Parallel()

	repo := &fakeRecordRepo{}
	svc := NewService(repo, nil, nil)

	rec := validExtraction()
	rec.LotCode = " o-123 "

	_, err := svc.CreateExtraction(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "O-123", repo.extractions[0].LotCode)
}

func TestCreateLabAnalysisRangeChecks(t *testing.T) {
	t.Parallel()

	repo := &fakeRecordRepo{}
	svc := NewService(repo, nil, nil)

	rec := &models.LabAnalysis{
		LotCode:        "O-123",
		SubmissionDate: "2024-06-05",
		Result:         "Aprobado",
		Purity:         101,
		Humidity:       8,
	}

	_, err := svc.CreateLabAnalysis(context.Background(), rec)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	rec.Purity = 93.4
	_, err = svc.CreateLabAnalysis(context.Background(), rec)
	require.NoError(t, err)
	assert.Len(t, repo.lab, 1)
}

func TestCreatePlantRunResetsSaleFields(t *testing.T) {
	t.Parallel()

	repo := &fakeRecordRepo{}
	svc := NewService(repo, nil, nil)

	sale := time.Now().UTC()
	rec := &models.PlantRun{
		LotCode:     "O-123",
		Material:    models.MaterialGold,
		Shift:       models.ShiftMorning,
		Date:        "2024-06-10",
		Kilograms:   800,
		FinalPurity: 90,
		Sold:        true,
		SaleDate:    &sale,
	}

	_, err := svc.CreatePlantRun(context.Background(), rec)
	require.NoError(t, err)

	require.Len(t, repo.plant, 1)
	assert.False(t, repo.plant[0].Sold)
	assert.Nil(t, repo.plant[0].SaleDate)
}

func TestListFilterNormalization(t *testing.T) {
	t.Parallel()

	f := NormalizeFilter(mongodb.ListFilter{LotCode: " o-123 ", Limit: 9999})
	assert.Equal(t, "O-123", f.LotCode)
	assert.Equal(t, maxPageSize, f.Limit)
	assert.Equal(t, 1, f.Page)

	f = NormalizeFilter(mongodb.ListFilter{})
	assert.Equal(t, defaultPageSize, f.Limit)
}
