package lots

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sotramin/mineops/internal/domain/models"
)

const (
	dateLayout      = "2006-01-02"
	datePlaceholder = "—"
)

var recordDateLayouts = []string{
	dateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// BuildHistory reconstructs the chronological timeline of a lot from its
// aggregate. Pure function: recomputed from scratch on every call, never
// persisted. Output order is independent of input record order.
func BuildHistory(agg *models.LotAggregate) []models.Event {
	if agg == nil {
		return nil
	}

	type keyed struct {
		key string
		ev  models.Event
	}
	items := make([]keyed, 0, 1+len(agg.Lab)+2*len(agg.Plant)+len(agg.Shipping))
	add := func(key string, ev models.Event) {
		items = append(items, keyed{key: key, ev: ev})
	}

	if ext := agg.Extraction; ext != nil {
		add(eventKey(ext.Date, ext.CreatedAt), models.Event{
			Stage:     models.StageExtraction,
			Label:     "Extraccion registrada",
			Date:      displayDate(ext.Date),
			CreatedAt: timePtr(ext.CreatedAt),
			Details:   fmt.Sprintf("%s, %.2f t (%s)", ext.Material, ext.Tonnes, ext.Condition),
			Location:  ext.Zone,
		})
	}

	for _, lab := range agg.Lab {
		add(eventKey(lab.SubmissionDate, lab.CreatedAt), models.Event{
			Stage:     models.StageLab,
			Label:     "Analisis de laboratorio",
			Date:      displayDate(lab.SubmissionDate),
			CreatedAt: timePtr(lab.CreatedAt),
			Details:   fmt.Sprintf("%s, pureza %.1f%%, humedad %.1f%%", lab.Result, lab.Purity, lab.Humidity),
			Location:  lab.Zone,
		})
	}

	for _, run := range agg.Plant {
		add(eventKey(run.Date, run.CreatedAt), models.Event{
			Stage:     models.StagePlant,
			Label:     "Produccion en planta",
			Date:      displayDate(run.Date),
			CreatedAt: timePtr(run.CreatedAt),
			Details:   fmt.Sprintf("turno %s, %.0f kg, pureza final %.1f%%", run.Shift, run.Kilograms, run.FinalPurity),
			Location:  run.Zone,
		})
		if run.Sold {
			// A sold plant run contributes a second event, dated by the sale
			// timestamp when present and by the production date otherwise.
			key, date, at := saleMoment(run.SaleDate, run.Date, run.CreatedAt)
			add(key, models.Event{
				Stage:     models.StageSold,
				Label:     "Lote vendido",
				Date:      date,
				CreatedAt: at,
				Details:   "Venta directa desde planta",
				Location:  run.Zone,
			})
		}
	}

	for _, rec := range agg.Shipping {
		if rec.Sold {
			key, date, at := saleMoment(rec.SaleDate, rec.ShipDate, rec.CreatedAt)
			add(key, models.Event{
				Stage:     models.StageSold,
				Label:     "Lote vendido",
				Date:      date,
				CreatedAt: at,
				Details:   fmt.Sprintf("Cliente: %s", rec.Client),
			})
			continue
		}
		add(eventKey(rec.ShipDate, rec.CreatedAt), models.Event{
			Stage:     models.StageShipping,
			Label:     "Lote despachado",
			Date:      displayDate(rec.ShipDate),
			CreatedAt: timePtr(rec.CreatedAt),
			Details:   fmt.Sprintf("Cliente: %s, transportista: %s", rec.Client, rec.Carrier),
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })

	out := make([]models.Event, len(items))
	for i, it := range items {
		out[i] = it.ev
	}
	return out
}

// eventKey resolves the best available timestamp into a lexically sortable
// key: the precise creation timestamp wins over the coarser date-only field,
// and an unparseable date falls back to the original string. RFC3339 in UTC
// sorts chronologically as plain text, so mixed sources stay comparable.
func eventKey(date string, createdAt time.Time) string {
	if !createdAt.IsZero() {
		return createdAt.UTC().Format(time.RFC3339)
	}
	if t, ok := parseRecordDate(date); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return date
}

// saleMoment resolves when a sale event happened: the sale timestamp when
// present, otherwise the record's own date. The record creation timestamp
// breaks the tie so the sale event never sorts ahead of the record it came
// from.
func saleMoment(saleDate *time.Time, fallbackDate string, createdAt time.Time) (key, display string, at *time.Time) {
	if saleDate != nil && !saleDate.IsZero() {
		return saleDate.UTC().Format(time.RFC3339), saleDate.Format(dateLayout), saleDate
	}
	return eventKey(fallbackDate, createdAt), displayDate(fallbackDate), nil
}

func parseRecordDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// displayDate formats a record date for display; malformed values degrade to
// a placeholder instead of erroring.
func displayDate(raw string) string {
	if t, ok := parseRecordDate(raw); ok {
		return t.Format(dateLayout)
	}
	return datePlaceholder
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
