package lots

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sotramin/mineops/internal/domain/models"
)

// fakeRepo is an in-memory LotRepository for unit tests. Per-lot queries
// return records latest-first like the real store; tests seed slices in that
// order.
type fakeRepo struct {
	extractions []models.ExtractionRecord
	lab         []models.LabAnalysis
	plant       []models.PlantRun
	shipping    []models.ShippingRecord

	extErr   error
	labErr   error
	plantErr error
	shipErr  error

	insertShippingErr error
	markPlantErr      error
	markShippingErr   error

	insertedShipping []models.ShippingRecord
	soldPlantIDs     []string
	soldShippingIDs  []string
}

func (f *fakeRepo) ExtractionsByLot(_ context.Context, lot string) ([]models.ExtractionRecord, error) {
	if f.extErr != nil {
		return nil, f.extErr
	}
	out := make([]models.ExtractionRecord, 0)
	for _, rec := range f.extractions {
		if rec.LotCode == lot {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) LabAnalysesByLot(_ context.Context, lot string) ([]models.LabAnalysis, error) {
	if f.labErr != nil {
		return nil, f.labErr
	}
	out := make([]models.LabAnalysis, 0)
	for _, rec := range f.lab {
		if rec.LotCode == lot {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) PlantRunsByLot(_ context.Context, lot string) ([]models.PlantRun, error) {
	if f.plantErr != nil {
		return nil, f.plantErr
	}
	out := make([]models.PlantRun, 0)
	for _, rec := range f.plant {
		if rec.LotCode == lot {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) ShippingByLot(_ context.Context, lot string) ([]models.ShippingRecord, error) {
	if f.shipErr != nil {
		return nil, f.shipErr
	}
	out := make([]models.ShippingRecord, 0)
	for _, rec := range f.shipping {
		if rec.LotCode == lot {
			out = append(out, rec)
		}
	}
	for _, rec := range f.insertedShipping {
		if rec.LotCode == lot {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeRepo) PlantRunByID(_ context.Context, id string) (*models.PlantRun, error) {
	for i := range f.plant {
		if f.plant[i].ID.Hex() == id {
			return &f.plant[i], nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeRepo) ShippingRecordByID(_ context.Context, id string) (*models.ShippingRecord, error) {
	for i := range f.shipping {
		if f.shipping[i].ID.Hex() == id {
			return &f.shipping[i], nil
		}
	}
	return nil, models.ErrRecordNotFound
}

func (f *fakeRepo) InsertShippingRecord(_ context.Context, rec *models.ShippingRecord) (string, error) {
	if f.insertShippingErr != nil {
		return "", f.insertShippingErr
	}
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = time.Now().UTC()
	f.insertedShipping = append(f.insertedShipping, *rec)
	return rec.ID.Hex(), nil
}

func (f *fakeRepo) MarkPlantRunSold(_ context.Context, id string, at time.Time) error {
	if f.markPlantErr != nil {
		return f.markPlantErr
	}
	for i := range f.plant {
		if f.plant[i].ID.Hex() == id {
			f.plant[i].Sold = true
			f.plant[i].SaleDate = &at
			f.soldPlantIDs = append(f.soldPlantIDs, id)
			return nil
		}
	}
	return models.ErrRecordNotFound
}

func (f *fakeRepo) MarkShippingRecordSold(_ context.Context, id string, at time.Time) error {
	if f.markShippingErr != nil {
		return f.markShippingErr
	}
	for i := range f.shipping {
		if f.shipping[i].ID.Hex() == id {
			f.shipping[i].Sold = true
			f.shipping[i].SaleDate = &at
			f.soldShippingIDs = append(f.soldShippingIDs, id)
			return nil
		}
	}
	return models.ErrRecordNotFound
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}
