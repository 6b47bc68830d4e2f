package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/domain/models"
	"github.com/sotramin/mineops/internal/repository/mongodb"
	"github.com/sotramin/mineops/internal/service/reports"
)

// RecordsHandler exposes field record entry and the paginated report views.
type RecordsHandler struct {
	svc    *reports.Service
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewRecordsHandler constructs the HTTP handler adapter. loc is the timezone
// that defines "today" for the on-demand summary; nil falls back to the
// server's zone.
func NewRecordsHandler(svc *reports.Service, loc *time.Location, logger *zap.Logger) *RecordsHandler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, loc: loc, logger: logger, now: time.Now}
}

type pagedResponse struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func listFilter(c *gin.Context) mongodb.ListFilter {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return mongodb.ListFilter{
		LotCode:    c.Query("lote"),
		Zone:       c.Query("zona"),
		Material:   c.Query("material"),
		PlantRunID: c.Query("planta_id"),
		DateFrom:   c.Query("desde"),
		DateTo:     c.Query("hasta"),
		Page:       page,
		Limit:      limit,
	}
}

func (h *RecordsHandler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidLotCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "registro no encontrado"})
	default:
		h.logger.Error("operacion de registros fallida", zap.String("accion", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operacion fallida"})
	}
}

func (h *RecordsHandler) CreateExtraction(c *gin.Context) {
	var rec models.ExtractionRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreateExtraction(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear extraccion")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListExtractions(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListExtractions(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar extracciones")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *RecordsHandler) CreateLabAnalysis(c *gin.Context) {
	var rec models.LabAnalysis
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreateLabAnalysis(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear analisis")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListLabAnalyses(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListLabAnalyses(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar analisis")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *RecordsHandler) CreatePlantRun(c *gin.Context) {
	var rec models.PlantRun
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreatePlantRun(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear produccion")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListPlantRuns(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListPlantRuns(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar producciones")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *RecordsHandler) CreateShippingRecord(c *gin.Context) {
	var rec models.ShippingRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreateShippingRecord(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear despacho")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListShippingRecords(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListShippingRecords(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar despachos")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *RecordsHandler) CreatePlantFailure(c *gin.Context) {
	var rec models.PlantFailure
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreatePlantFailure(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear falla")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListPlantFailures(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListPlantFailures(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar fallas")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

func (h *RecordsHandler) CreateSupplyConsumption(c *gin.Context) {
	var rec models.SupplyConsumption
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo invalido"})
		return
	}
	id, err := h.svc.CreateSupplyConsumption(c.Request.Context(), &rec)
	if err != nil {
		h.fail(c, err, "crear consumo")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecordsHandler) ListSupplyConsumptions(c *gin.Context) {
	f := reports.NormalizeFilter(listFilter(c))
	recs, total, err := h.svc.ListSupplyConsumptions(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err, "listar consumos")
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: recs, Total: total, Page: f.Page, Limit: f.Limit})
}

// Summary serves the on-demand daily summary; fecha defaults to today in the
// configured timezone, matching the scheduled publication.
func (h *RecordsHandler) Summary(c *gin.Context) {
	day := h.now().In(h.loc)
	if raw := c.Query("fecha"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fecha debe tener formato YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary, err := h.svc.DailySummary(c.Request.Context(), day)
	if err != nil {
		h.fail(c, err, "calcular resumen")
		return
	}
	c.JSON(http.StatusOK, summary)
}
