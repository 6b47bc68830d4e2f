package reports

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
)

// fakeRecordRepo is an in-memory RecordRepository for unit tests. Listings
// honor the lot/zone/material equality filters and the date range on each
// collection's own date field; pagination is ignored.
type fakeRecordRepo struct {
	extractions []models.ExtractionRecord
	lab         []models.LabAnalysis
	plant       []models.PlantRun
	shipping    []models.ShippingRecord
	failures    []models.PlantFailure
	supplies    []models.SupplyConsumption
	summaries   []models.DailySummary

	insertSummaryErr error
}

func matches(f mongodb.ListFilter, lot, zone, material, date string) bool {
	if f.LotCode != "" && f.LotCode != lot {
		return false
	}
	if f.Zone != "" && f.Zone != zone {
		return false
	}
	if f.Material != "" && f.Material != material {
		return false
	}
	if f.DateFrom != "" && date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && date > f.DateTo {
		return false
	}
	return true
}

func (r *fakeRecordRepo) InsertExtraction(_ context.Context, rec *models.ExtractionRecord) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.extractions = append(r.extractions, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListExtractions(_ context.Context, f mongodb.ListFilter) ([]models.ExtractionRecord, int64, error) {
	out := make([]models.ExtractionRecord, 0)
	for _, rec := range r.extractions {
		if matches(f, rec.LotCode, rec.Zone, rec.Material, rec.Date) {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertLabAnalysis(_ context.Context, rec *models.LabAnalysis) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.lab = append(r.lab, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListLabAnalyses(_ context.Context, f mongodb.ListFilter) ([]models.LabAnalysis, int64, error) {
	out := make([]models.LabAnalysis, 0)
	for _, rec := range r.lab {
		if matches(f, rec.LotCode, rec.Zone, rec.Material, rec.SubmissionDate) {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertPlantRun(_ context.Context, rec *models.PlantRun) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.plant = append(r.plant, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListPlantRuns(_ context.Context, f mongodb.ListFilter) ([]models.PlantRun, int64, error) {
	out := make([]models.PlantRun, 0)
	for _, rec := range r.plant {
		if matches(f, rec.LotCode, rec.Zone, rec.Material, rec.Date) {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertShippingRecord(_ context.Context, rec *models.ShippingRecord) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.shipping = append(r.shipping, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListShippingRecords(_ context.Context, f mongodb.ListFilter) ([]models.ShippingRecord, int64, error) {
	out := make([]models.ShippingRecord, 0)
	for _, rec := range r.shipping {
		if matches(f, rec.LotCode, "", "", rec.ShipDate) {
			out = append(out, rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertPlantFailure(_ context.Context, rec *models.PlantFailure) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.failures = append(r.failures, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListPlantFailures(_ context.Context, f mongodb.ListFilter) ([]models.PlantFailure, int64, error) {
	out := make([]models.PlantFailure, 0)
	for _, rec := range r.failures {
		if f.PlantRunID != "" && f.PlantRunID != rec.PlantRunID {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertSupplyConsumption(_ context.Context, rec *models.SupplyConsumption) (string, error) {
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	r.supplies = append(r.supplies, *rec)
	return rec.ID.Hex(), nil
}

func (r *fakeRecordRepo) ListSupplyConsumptions(_ context.Context, f mongodb.ListFilter) ([]models.SupplyConsumption, int64, error) {
	out := make([]models.SupplyConsumption, 0)
	for _, rec := range r.supplies {
		if f.PlantRunID != "" && f.PlantRunID != rec.PlantRunID {
			continue
		}
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRecordRepo) InsertDailySummary(_ context.Context, summary *models.DailySummary) error {
	if r.insertSummaryErr != nil {
		return r.insertSummaryErr
	}
	summary.CreatedAt = time.Now().UTC()
	r.summaries = append(r.summaries, *summary)
	return nil
}

type fakeExporter struct {
	appended []models.DailySummary
	err      error
}

func (e *fakeExporter) AppendDailySummary(_ context.Context, summary models.DailySummary) error {
	if e.err != nil {
		return e.err
	}
	e.appended = append(e.appended, summary)
	return nil
}

var errExporterDown = errors.New("sheets unavailable")
