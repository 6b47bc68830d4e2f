package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
	"github.com/sotramin/mineops/internal/repository/sheets"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	dateLayout = "2006-01-02"
)

var (
	validMaterials  = map[string]bool{models.MaterialGold: true, models.MaterialCopper: true}
	validConditions = map[string]bool{models.ConditionWet: true, models.ConditionDry: true, models.ConditionRaw: true}
	validShifts     = map[string]bool{models.ShiftMorning: true, models.ShiftAfternoon: true, models.ShiftNight: true}
)

// Service handles field record entry and the paginated report listings.
type Service struct {
	repo     mongodb.RecordRepository
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reports service. exporter may be nil when the
// spreadsheet mirror is not configured.
func NewService(repo mongodb.RecordRepository, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) CreateExtraction(ctx context.Context, rec *models.ExtractionRecord) (string, error) {
	code, err := models.ParseLotCode(rec.LotCode)
	if err != nil {
		return "", err
	}
	rec.LotCode = code.String()

	switch {
	case strings.TrimSpace(rec.Zone) == "":
		return "", fmt.Errorf("%w: zona requerida", models.ErrInvalidInput)
	case !validMaterials[rec.Material]:
		return "", fmt.Errorf("%w: material %q", models.ErrInvalidInput, rec.Material)
	case !validConditions[rec.Condition]:
		return "", fmt.Errorf("%w: estado del material %q", models.ErrInvalidInput, rec.Condition)
	case rec.Tonnes <= 0 && rec.Kilograms <= 0:
		return "", fmt.Errorf("%w: cantidad requerida", models.ErrInvalidInput)
	}
	if err := requireDate(rec.Date, "fecha"); err != nil {
		return "", err
	}

	return s.repo.InsertExtraction(ctx, rec)
}

func (s *Service) ListExtractions(ctx context.Context, f mongodb.ListFilter) ([]models.ExtractionRecord, int64, error) {
	return s.repo.ListExtractions(ctx, NormalizeFilter(f))
}

func (s *Service) CreateLabAnalysis(ctx context.Context, rec *models.LabAnalysis) (string, error) {
	code, err := models.ParseLotCode(rec.LotCode)
	if err != nil {
		return "", err
	}
	rec.LotCode = code.String()

	switch {
	case strings.TrimSpace(rec.Result) == "":
		return "", fmt.Errorf("%w: resultado requerido", models.ErrInvalidInput)
	case rec.Purity < 1 || rec.Purity > 100:
		return "", fmt.Errorf("%w: pureza fuera de rango", models.ErrInvalidInput)
	case rec.Humidity < 1 || rec.Humidity > 100:
		return "", fmt.Errorf("%w: humedad fuera de rango", models.ErrInvalidInput)
	}
	if err := requireDate(rec.SubmissionDate, "fecha_envio"); err != nil {
		return "", err
	}

	return s.repo.InsertLabAnalysis(ctx, rec)
}

func (s *Service) ListLabAnalyses(ctx context.Context, f mongodb.ListFilter) ([]models.LabAnalysis, int64, error) {
	return s.repo.ListLabAnalyses(ctx, NormalizeFilter(f))
}

func (s *Service) CreatePlantRun(ctx context.Context, rec *models.PlantRun) (string, error) {
	code, err := models.ParseLotCode(rec.LotCode)
	if err != nil {
		return "", err
	}
	rec.LotCode = code.String()

	switch {
	case !validMaterials[rec.Material]:
		return "", fmt.Errorf("%w: material %q", models.ErrInvalidInput, rec.Material)
	case !validShifts[rec.Shift]:
		return "", fmt.Errorf("%w: turno %q", models.ErrInvalidInput, rec.Shift)
	case rec.FinalPurity < 1 || rec.FinalPurity > 100:
		return "", fmt.Errorf("%w: pureza final fuera de rango", models.ErrInvalidInput)
	case rec.Tonnes <= 0 && rec.Kilograms <= 0:
		return "", fmt.Errorf("%w: cantidad requerida", models.ErrInvalidInput)
	}
	if err := requireDate(rec.Date, "fecha"); err != nil {
		return "", err
	}

	// New plant entries are never born sold; the sale confirmation workflow
	// owns those fields.
	rec.Sold = false
	rec.SaleDate = nil

	return s.repo.InsertPlantRun(ctx, rec)
}

func (s *Service) ListPlantRuns(ctx context.Context, f mongodb.ListFilter) ([]models.PlantRun, int64, error) {
	return s.repo.ListPlantRuns(ctx, NormalizeFilter(f))
}

func (s *Service) CreateShippingRecord(ctx context.Context, rec *models.ShippingRecord) (string, error) {
	code, err := models.ParseLotCode(rec.LotCode)
	if err != nil {
		return "", err
	}
	rec.LotCode = code.String()

	switch {
	case rec.Kilograms <= 0:
		return "", fmt.Errorf("%w: cantidad_kg requerida", models.ErrInvalidInput)
	case strings.TrimSpace(rec.Client) == "":
		return "", fmt.Errorf("%w: cliente_destino requerido", models.ErrInvalidInput)
	}
	if err := requireDate(rec.ShipDate, "fecha_despacho"); err != nil {
		return "", err
	}

	rec.Sold = false
	rec.SaleDate = nil

	return s.repo.InsertShippingRecord(ctx, rec)
}

func (s *Service) ListShippingRecords(ctx context.Context, f mongodb.ListFilter) ([]models.ShippingRecord, int64, error) {
	return s.repo.ListShippingRecords(ctx, NormalizeFilter(f))
}

func (s *Service) CreatePlantFailure(ctx context.Context, rec *models.PlantFailure) (string, error) {
	switch {
	case strings.TrimSpace(rec.PlantRunID) == "":
		return "", fmt.Errorf("%w: planta_id requerido", models.ErrInvalidInput)
	case strings.TrimSpace(rec.Equipment) == "":
		return "", fmt.Errorf("%w: equipo requerido", models.ErrInvalidInput)
	}
	if err := requireDate(rec.Date, "fecha"); err != nil {
		return "", err
	}
	return s.repo.InsertPlantFailure(ctx, rec)
}

func (s *Service) ListPlantFailures(ctx context.Context, f mongodb.ListFilter) ([]models.PlantFailure, int64, error) {
	return s.repo.ListPlantFailures(ctx, NormalizeFilter(f))
}

func (s *Service) CreateSupplyConsumption(ctx context.Context, rec *models.SupplyConsumption) (string, error) {
	switch {
	case strings.TrimSpace(rec.PlantRunID) == "":
		return "", fmt.Errorf("%w: planta_id requerido", models.ErrInvalidInput)
	case strings.TrimSpace(rec.Supply) == "":
		return "", fmt.Errorf("%w: insumo requerido", models.ErrInvalidInput)
	case rec.Quantity <= 0:
		return "", fmt.Errorf("%w: cantidad requerida", models.ErrInvalidInput)
	}
	if err := requireDate(rec.Date, "fecha"); err != nil {
		return "", err
	}
	return s.repo.InsertSupplyConsumption(ctx, rec)
}

func (s *Service) ListSupplyConsumptions(ctx context.Context, f mongodb.ListFilter) ([]models.SupplyConsumption, int64, error) {
	return s.repo.ListSupplyConsumptions(ctx, NormalizeFilter(f))
}

// requireDate enforces the date-entry format on new records. Existing
// documents with odd dates remain readable; only new entries are gated.
func requireDate(value, field string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s debe tener formato %s", models.ErrInvalidInput, field, dateLayout)
	}
	return nil
}

// NormalizeFilter clamps paging to the allowed range, applies the default page
// size and upper-cases the lot code. Idempotent, so callers that need to echo
// the applied paging can normalize up front.
func NormalizeFilter(f mongodb.ListFilter) mongodb.ListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.LotCode != "" {
		f.LotCode = strings.ToUpper(strings.TrimSpace(f.LotCode))
	}
	return f
}
