package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
)

// DailySummary computes the operating totals for one day across collections.
// Nothing is persisted; see PublishDailySummary for the scheduled variant.
func (s *Service) DailySummary(ctx context.Context, day time.Time) (*models.DailySummary, error) {
	date := day.Format(dateLayout)
	dayFilter := mongodb.ListFilter{DateFrom: date, DateTo: date}

	summary := &models.DailySummary{Date: date}

	extractions, _, err := s.repo.ListExtractions(ctx, dayFilter)
	if err != nil {
		return nil, fmt.Errorf("extracciones del dia %s: %w", date, err)
	}
	summary.ExtractionCount = len(extractions)
	for _, rec := range extractions {
		summary.ExtractedTonnes += rec.Tonnes
	}

	analyses, _, err := s.repo.ListLabAnalyses(ctx, dayFilter)
	if err != nil {
		return nil, fmt.Errorf("analisis del dia %s: %w", date, err)
	}
	summary.LabCount = len(analyses)
	for _, rec := range analyses {
		if strings.EqualFold(strings.TrimSpace(rec.Result), "aprobado") {
			summary.LabApproved++
		}
	}

	runs, _, err := s.repo.ListPlantRuns(ctx, dayFilter)
	if err != nil {
		return nil, fmt.Errorf("producciones del dia %s: %w", date, err)
	}
	summary.PlantRunCount = len(runs)
	for _, rec := range runs {
		summary.ProducedKilograms += rec.Kilograms
	}

	shipments, _, err := s.repo.ListShippingRecords(ctx, dayFilter)
	if err != nil {
		return nil, fmt.Errorf("despachos del dia %s: %w", date, err)
	}
	summary.ShipmentCount = len(shipments)
	soldLots := map[string]bool{}
	for _, rec := range shipments {
		summary.ShippedKilograms += rec.Kilograms
		if rec.Sold && rec.SaleDate != nil && rec.SaleDate.Format(dateLayout) == date {
			soldLots[rec.LotCode] = true
		}
	}
	summary.LotsSold = len(soldLots)

	return summary, nil
}

// PublishDailySummary computes the summary, persists it and mirrors it to the
// management spreadsheet when configured. The spreadsheet append is best
// effort: a failure is logged, the persisted summary stands.
func (s *Service) PublishDailySummary(ctx context.Context, day time.Time) (*models.DailySummary, error) {
	summary, err := s.DailySummary(ctx, day)
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertDailySummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("guardar resumen diario: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendDailySummary(ctx, *summary); err != nil {
			s.logger.Warn("no se pudo exportar el resumen a la hoja de calculo",
				zap.String("fecha", summary.Date), zap.Error(err))
		}
	}

	s.logger.Info("resumen diario publicado",
		zap.String("fecha", summary.Date),
		zap.Int("extracciones", summary.ExtractionCount),
		zap.Int("producciones", summary.PlantRunCount),
		zap.Int("despachos", summary.ShipmentCount))

	return summary, nil
}
