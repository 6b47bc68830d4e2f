package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/sotramin/mineops/internal/config"
	"github.com/sotramin/mineops/internal/domain/models"
)

const summaryRange = "Resumen!A:K"

// Exporter mirrors daily summaries to an external spreadsheet for management.
type Exporter interface {
	AppendDailySummary(ctx context.Context, summary models.DailySummary) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailySummary appends one summary row to the report sheet.
func (e *GoogleSheetExporter) AppendDailySummary(ctx context.Context, summary models.DailySummary) error {
	row := []interface{}{
		summary.Date,
		summary.ExtractionCount,
		summary.ExtractedTonnes,
		summary.LabCount,
		summary.LabApproved,
		summary.PlantRunCount,
		summary.ProducedKilograms,
		summary.ShipmentCount,
		summary.ShippedKilograms,
		summary.LotsSold,
		summary.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row into range %s: %w", summaryRange, err)
	}

	e.logger.Debug("summary row appended to sheet", zap.String("fecha", summary.Date))
	return nil
}
