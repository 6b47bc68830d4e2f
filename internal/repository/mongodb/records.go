package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sotramin/mineops/internal/domain/models"
)

// insert stamps the server-assigned creation timestamp and returns the new
// document id as a hex string.
func (s *Store) insert(ctx context.Context, collection string, doc any) (string, error) {
	res, err := s.coll(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insertar en %s: %w", collection, err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insertar en %s: id inesperado %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Store) find(ctx context.Context, collection string, f ListFilter, dateField string, out any) (int64, error) {
	filter := f.build(dateField)
	coll := s.coll(collection)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("contar %s: %w", collection, err)
	}

	opts := options.Find().SetSort(bson.D{{Key: dateField, Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip(int64((f.page() - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}

	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, fmt.Errorf("buscar %s: %w", collection, err)
	}
	if err := cur.All(ctx, out); err != nil {
		return 0, fmt.Errorf("decodificar %s: %w", collection, err)
	}
	return total, nil
}

func (s *Store) InsertExtraction(ctx context.Context, rec *models.ExtractionRecord) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collExtractions, rec)
}

func (s *Store) ListExtractions(ctx context.Context, f ListFilter) ([]models.ExtractionRecord, int64, error) {
	out := make([]models.ExtractionRecord, 0)
	total, err := s.find(ctx, collExtractions, f, "fecha", &out)
	return out, total, err
}

func (s *Store) InsertLabAnalysis(ctx context.Context, rec *models.LabAnalysis) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collLabAnalyses, rec)
}

func (s *Store) ListLabAnalyses(ctx context.Context, f ListFilter) ([]models.LabAnalysis, int64, error) {
	out := make([]models.LabAnalysis, 0)
	total, err := s.find(ctx, collLabAnalyses, f, "fecha_envio", &out)
	return out, total, err
}

func (s *Store) InsertPlantRun(ctx context.Context, rec *models.PlantRun) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collPlantRuns, rec)
}

func (s *Store) ListPlantRuns(ctx context.Context, f ListFilter) ([]models.PlantRun, int64, error) {
	out := make([]models.PlantRun, 0)
	total, err := s.find(ctx, collPlantRuns, f, "fecha", &out)
	return out, total, err
}

func (s *Store) InsertShippingRecord(ctx context.Context, rec *models.ShippingRecord) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collShipping, rec)
}

func (s *Store) ListShippingRecords(ctx context.Context, f ListFilter) ([]models.ShippingRecord, int64, error) {
	out := make([]models.ShippingRecord, 0)
	total, err := s.find(ctx, collShipping, f, "fecha_despacho", &out)
	return out, total, err
}

func (s *Store) InsertPlantFailure(ctx context.Context, rec *models.PlantFailure) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collPlantFailures, rec)
}

func (s *Store) ListPlantFailures(ctx context.Context, f ListFilter) ([]models.PlantFailure, int64, error) {
	out := make([]models.PlantFailure, 0)
	total, err := s.find(ctx, collPlantFailures, f, "fecha", &out)
	return out, total, err
}

func (s *Store) InsertSupplyConsumption(ctx context.Context, rec *models.SupplyConsumption) (string, error) {
	rec.CreatedAt = time.Now().UTC()
	return s.insert(ctx, collSupplies, rec)
}

func (s *Store) ListSupplyConsumptions(ctx context.Context, f ListFilter) ([]models.SupplyConsumption, int64, error) {
	out := make([]models.SupplyConsumption, 0)
	total, err := s.find(ctx, collSupplies, f, "fecha", &out)
	return out, total, err
}

func (s *Store) InsertDailySummary(ctx context.Context, summary *models.DailySummary) error {
	summary.CreatedAt = time.Now().UTC()
	if _, err := s.insert(ctx, collDailySummaries, summary); err != nil {
		return err
	}
	return nil
}
