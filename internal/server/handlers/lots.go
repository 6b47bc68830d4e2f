package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/service/lots"
)

// LotsHandler exposes lot traceability and the sale confirmation workflow.
type LotsHandler struct {
	svc    *lots.Service
	logger *zap.Logger
}

// NewLotsHandler constructs the HTTP handler adapter.
func NewLotsHandler(svc *lots.Service, logger *zap.Logger) *LotsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LotsHandler{svc: svc, logger: logger}
}

// Trace returns the aggregate, inferred stage and history for one lot.
func (h *LotsHandler) Trace(c *gin.Context) {
	lot := c.Param("lote")

	trace, err := h.svc.Trace(c.Request.Context(), lot)
	if err != nil {
		if errors.Is(err, models.ErrLotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lote no encontrado"})
			return
		}
		h.logger.Error("fallo la consulta de trazabilidad", zap.String("lote", lot), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo consultar el lote"})
		return
	}

	c.JSON(http.StatusOK, trace)
}

type confirmSaleRequest struct {
	RecordID string `json:"record_id" binding:"required"`
	Type     string `json:"tipo" binding:"required,oneof=plant shipping"`
}

// ConfirmSale marks a plant or shipping record as sold. The caller is
// expected to re-fetch its record list afterwards; no aggregate is returned.
func (h *LotsHandler) ConfirmSale(c *gin.Context) {
	var req confirmSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solicitud invalida"})
		return
	}

	if err := h.svc.ConfirmSale(c.Request.Context(), req.RecordID, req.Type); err != nil {
		switch {
		case errors.Is(err, models.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registro no encontrado"})
		case errors.Is(err, lots.ErrUnknownRecordType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("fallo la confirmacion de venta",
				zap.String("record_id", req.RecordID),
				zap.String("tipo", req.Type),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "no se pudo confirmar la venta"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
