package lots

import "github.com/sotramin/mineops/internal/domain/models"

// User-facing status messages shown next to the inferred stage.
const (
	msgNotFound       = "Lote no encontrado"
	msgAwaitingLab    = "Material registrado, pendiente de analisis de laboratorio"
	msgAwaitingPlant  = "Analisis de laboratorio completado, pendiente de ingreso a planta"
	msgReadyToShip    = "Produccion de planta registrada, lista para despacho"
	msgAwaitingOutlet = "Produccion de planta registrada, pendiente de despacho o venta"
	msgAwaitingSale   = "Lote despachado, pendiente de confirmacion de venta"
	msgSold           = "Lote vendido, proceso completo"
)

// InferStage derives a lot's current lifecycle status from which collections
// hold documents for it. Pure function; nothing is persisted. The walk is
// strictly forward: each step is gated on the previous one, so a later-stage
// document can never set a flag while an earlier stage's documents are missing.
func InferStage(agg *models.LotAggregate) models.StageStatus {
	status := models.StageStatus{
		CurrentStage:  models.StagePending,
		StatusMessage: msgNotFound,
	}
	if agg == nil || agg.Extraction == nil {
		return status
	}

	status.Stages.Extraction = true
	status.CurrentStage = models.StageExtraction
	status.StatusMessage = msgAwaitingLab
	if len(agg.Lab) == 0 {
		return status
	}

	status.Stages.Lab = true
	status.CurrentStage = models.StageLab
	status.StatusMessage = msgAwaitingPlant
	if len(agg.Plant) == 0 {
		return status
	}

	// Plant completion immediately reads as "ready to ship".
	status.Stages.Plant = true
	status.CurrentStage = models.StageShipping
	status.StatusMessage = msgReadyToShip

	for _, run := range agg.Plant {
		if run.Sold {
			// Direct plant-to-sold shortcut: a lot sold straight from the
			// plant skips formal dispatch, so the shipping check is not
			// evaluated at all for this pass.
			status.Stages.Sold = true
			status.CurrentStage = models.StageSold
			status.StatusMessage = msgSold
			return status
		}
	}

	if len(agg.Shipping) == 0 {
		status.StatusMessage = msgAwaitingOutlet
		return status
	}

	status.Stages.Shipping = true
	status.StatusMessage = msgAwaitingSale
	for _, rec := range agg.Shipping {
		if rec.Sold {
			status.Stages.Sold = true
			status.CurrentStage = models.StageSold
			status.StatusMessage = msgSold
			break
		}
	}

	return status
}
