package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sotramin/mineops/internal/domain/models"
)

// Per-lot queries return documents latest-first on their own date field. The
// chronological ordering of the lot timeline is computed by the history
// builder, not here.

func (s *Store) ExtractionsByLot(ctx context.Context, lot string) ([]models.ExtractionRecord, error) {
	out := make([]models.ExtractionRecord, 0)
	cur, err := s.coll(collExtractions).Find(ctx, bson.M{"lote": lot},
		options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar extracciones del lote %s: %w", lot, err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decodificar extracciones del lote %s: %w", lot, err)
	}
	return out, nil
}

func (s *Store) LabAnalysesByLot(ctx context.Context, lot string) ([]models.LabAnalysis, error) {
	out := make([]models.LabAnalysis, 0)
	cur, err := s.coll(collLabAnalyses).Find(ctx, bson.M{"lote": lot},
		options.Find().SetSort(bson.D{{Key: "fecha_envio", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar analisis del lote %s: %w", lot, err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decodificar analisis del lote %s: %w", lot, err)
	}
	return out, nil
}

func (s *Store) PlantRunsByLot(ctx context.Context, lot string) ([]models.PlantRun, error) {
	out := make([]models.PlantRun, 0)
	cur, err := s.coll(collPlantRuns).Find(ctx, bson.M{"lote": lot},
		options.Find().SetSort(bson.D{{Key: "fecha", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar producciones del lote %s: %w", lot, err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decodificar producciones del lote %s: %w", lot, err)
	}
	return out, nil
}

func (s *Store) ShippingByLot(ctx context.Context, lot string) ([]models.ShippingRecord, error) {
	out := make([]models.ShippingRecord, 0)
	cur, err := s.coll(collShipping).Find(ctx, bson.M{"lote": lot},
		options.Find().SetSort(bson.D{{Key: "fecha_despacho", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar despachos del lote %s: %w", lot, err)
	}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decodificar despachos del lote %s: %w", lot, err)
	}
	return out, nil
}

func (s *Store) PlantRunByID(ctx context.Context, id string) (*models.PlantRun, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}
	var run models.PlantRun
	if err := s.coll(collPlantRuns).FindOne(ctx, bson.M{"_id": oid}).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("buscar produccion %s: %w", id, err)
	}
	return &run, nil
}

func (s *Store) ShippingRecordByID(ctx context.Context, id string) (*models.ShippingRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}
	var rec models.ShippingRecord
	if err := s.coll(collShipping).FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, fmt.Errorf("buscar despacho %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) MarkPlantRunSold(ctx context.Context, id string, at time.Time) error {
	return s.markSold(ctx, collPlantRuns, id, at)
}

func (s *Store) MarkShippingRecordSold(ctx context.Context, id string, at time.Time) error {
	return s.markSold(ctx, collShipping, id, at)
}

func (s *Store) markSold(ctx context.Context, collection, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrRecordNotFound
	}
	res, err := s.coll(collection).UpdateByID(ctx, oid,
		bson.M{"$set": bson.M{"vendido": true, "fecha_venta": at}})
	if err != nil {
		return fmt.Errorf("marcar vendido en %s: %w", collection, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrRecordNotFound
	}
	return nil
}
