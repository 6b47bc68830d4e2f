package lots

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
	"github.com/sotramin/mineops/pkg/clients/alerts"
)

// Service implements lot traceability: aggregation across the four process
// collections, stage inference, timeline reconstruction and the sale
// confirmation workflow.
type Service struct {
	repo     mongodb.LotRepository
	notifier alerts.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new traceability service. notifier may be nil when no
// alert webhook is configured.
func NewService(repo mongodb.LotRepository, notifier alerts.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Trace assembles the full traceability view for a lot: aggregate, inferred
// stage and chronological history.
func (s *Service) Trace(ctx context.Context, lotCode string) (*models.LotTrace, error) {
	agg, err := s.Aggregate(ctx, lotCode)
	if err != nil {
		return nil, err
	}

	return &models.LotTrace{
		LotAggregate: *agg,
		Status:       InferStage(agg),
		History:      BuildHistory(agg),
	}, nil
}

// Aggregate issues the four per-collection queries for a lot and assembles the
// read-time projection. The extraction query is fatal on failure or when it
// returns nothing; a failing secondary query degrades to an empty list and is
// reported in Degraded.
func (s *Service) Aggregate(ctx context.Context, lotCode string) (*models.LotAggregate, error) {
	lot := strings.TrimSpace(lotCode)
	if lot == "" {
		return nil, models.ErrLotNotFound
	}

	var (
		wg          sync.WaitGroup
		extractions []models.ExtractionRecord
		lab         []models.LabAnalysis
		plant       []models.PlantRun
		shipping    []models.ShippingRecord
		extErr      error
		labErr      error
		plantErr    error
		shipErr     error
	)

	// The four queries are read-only and independent, so they run in parallel.
	wg.Add(4)
	go func() {
		defer wg.Done()
		extractions, extErr = s.repo.ExtractionsByLot(ctx, lot)
	}()
	go func() {
		defer wg.Done()
		lab, labErr = s.repo.LabAnalysesByLot(ctx, lot)
	}()
	go func() {
		defer wg.Done()
		plant, plantErr = s.repo.PlantRunsByLot(ctx, lot)
	}()
	go func() {
		defer wg.Done()
		shipping, shipErr = s.repo.ShippingByLot(ctx, lot)
	}()
	wg.Wait()

	if extErr != nil {
		return nil, fmt.Errorf("consultar extracciones: %w", extErr)
	}
	if len(extractions) == 0 {
		return nil, models.ErrLotNotFound
	}

	agg := &models.LotAggregate{
		LotCode: lot,
		// Latest-first per query sort; the most recent extraction is the
		// canonical source for the lot header.
		Extraction: &extractions[0],
		Lab:        lab,
		Plant:      plant,
		Shipping:   shipping,
	}

	for _, failure := range []struct {
		name string
		err  error
	}{
		{"lab_analyses", labErr},
		{"plant_runs", plantErr},
		{"shipping_records", shipErr},
	} {
		if failure.err == nil {
			continue
		}
		s.logger.Warn("consulta parcial fallida, se continua con datos degradados",
			zap.String("lote", lot),
			zap.String("coleccion", failure.name),
			zap.Error(failure.err))
		agg.Degraded = append(agg.Degraded, failure.name)
	}
	if labErr != nil {
		agg.Lab = nil
	}
	if plantErr != nil {
		agg.Plant = nil
	}
	if shipErr != nil {
		agg.Shipping = nil
	}

	return agg, nil
}
