package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sotramin/mineops/internal/domain/models"
)

// Collection names are the persisted wire contract and must not change while
// existing deployments hold data.
const (
	collExtractions    = "extraction_records"
	collLabAnalyses    = "lab_analyses"
	collPlantRuns      = "plant_runs"
	collShipping       = "shipping_records"
	collPlantFailures  = "plant_failures"
	collSupplies       = "supply_consumptions"
	collDailySummaries = "daily_summaries"
)

// LotRepository covers the per-lot reads and the sale-confirmation writes
// needed by the traceability service.
type LotRepository interface {
	ExtractionsByLot(ctx context.Context, lot string) ([]models.ExtractionRecord, error)
	LabAnalysesByLot(ctx context.Context, lot string) ([]models.LabAnalysis, error)
	PlantRunsByLot(ctx context.Context, lot string) ([]models.PlantRun, error)
	ShippingByLot(ctx context.Context, lot string) ([]models.ShippingRecord, error)

	PlantRunByID(ctx context.Context, id string) (*models.PlantRun, error)
	ShippingRecordByID(ctx context.Context, id string) (*models.ShippingRecord, error)
	InsertShippingRecord(ctx context.Context, rec *models.ShippingRecord) (string, error)
	MarkPlantRunSold(ctx context.Context, id string, at time.Time) error
	MarkShippingRecordSold(ctx context.Context, id string, at time.Time) error
}

// RecordRepository covers form-to-document writes and the paginated report
// listings.
type RecordRepository interface {
	InsertExtraction(ctx context.Context, rec *models.ExtractionRecord) (string, error)
	ListExtractions(ctx context.Context, f ListFilter) ([]models.ExtractionRecord, int64, error)
	InsertLabAnalysis(ctx context.Context, rec *models.LabAnalysis) (string, error)
	ListLabAnalyses(ctx context.Context, f ListFilter) ([]models.LabAnalysis, int64, error)
	InsertPlantRun(ctx context.Context, rec *models.PlantRun) (string, error)
	ListPlantRuns(ctx context.Context, f ListFilter) ([]models.PlantRun, int64, error)
	InsertShippingRecord(ctx context.Context, rec *models.ShippingRecord) (string, error)
	ListShippingRecords(ctx context.Context, f ListFilter) ([]models.ShippingRecord, int64, error)
	InsertPlantFailure(ctx context.Context, rec *models.PlantFailure) (string, error)
	ListPlantFailures(ctx context.Context, f ListFilter) ([]models.PlantFailure, int64, error)
	InsertSupplyConsumption(ctx context.Context, rec *models.SupplyConsumption) (string, error)
	ListSupplyConsumptions(ctx context.Context, f ListFilter) ([]models.SupplyConsumption, int64, error)
	InsertDailySummary(ctx context.Context, summary *models.DailySummary) error
}

// Repository is the full persistence surface backed by MongoDB.
type Repository interface {
	LotRepository
	RecordRepository
}

// ListFilter narrows report listings. Zero values mean "no filter"; Limit 0
// disables pagination.
type ListFilter struct {
	LotCode    string
	Zone       string
	Material   string
	PlantRunID string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

func (f ListFilter) build(dateField string) bson.M {
	filter := bson.M{}
	if f.LotCode != "" {
		filter["lote"] = f.LotCode
	}
	if f.Zone != "" {
		filter["zona"] = f.Zone
	}
	if f.Material != "" {
		filter["material"] = f.Material
	}
	if f.PlantRunID != "" {
		filter["planta_id"] = f.PlantRunID
	}
	if f.DateFrom != "" || f.DateTo != "" {
		rng := bson.M{}
		if f.DateFrom != "" {
			rng["$gte"] = f.DateFrom
		}
		if f.DateTo != "" {
			rng["$lte"] = f.DateTo
		}
		filter[dateField] = rng
	}
	return filter
}

func (f ListFilter) page() int {
	if f.Page < 1 {
		return 1
	}
	return f.Page
}

// Store implements Repository on a MongoDB database.
type Store struct {
	client *mongo.Client
	dbName string
}

var _ Repository = (*Store)(nil)

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}
