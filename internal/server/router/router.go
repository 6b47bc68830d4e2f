package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(lotsHandler *handlers.LotsHandler, recordsHandler *handlers.RecordsHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/extracciones", recordsHandler.CreateExtraction)
		v1.GET("/extracciones", recordsHandler.ListExtractions)
		v1.POST("/laboratorio", recordsHandler.CreateLabAnalysis)
		v1.GET("/laboratorio", recordsHandler.ListLabAnalyses)
		v1.POST("/planta", recordsHandler.CreatePlantRun)
		v1.GET("/planta", recordsHandler.ListPlantRuns)
		v1.POST("/despachos", recordsHandler.CreateShippingRecord)
		v1.GET("/despachos", recordsHandler.ListShippingRecords)
		v1.POST("/fallas", recordsHandler.CreatePlantFailure)
		v1.GET("/fallas", recordsHandler.ListPlantFailures)
		v1.POST("/insumos", recordsHandler.CreateSupplyConsumption)
		v1.GET("/insumos", recordsHandler.ListSupplyConsumptions)

		v1.GET("/lotes/:lote", lotsHandler.Trace)
		v1.POST("/ventas/confirmar", lotsHandler.ConfirmSale)
		v1.GET("/resumen", recordsHandler.Summary)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
