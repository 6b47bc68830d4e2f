package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/config"
	"github.com/sotramin/mineops/internal/repository/mongodb"
	"github.com/sotramin/mineops/internal/repository/sheets"
	"github.com/sotramin/mineops/internal/scheduler"
	"github.com/sotramin/mineops/internal/server/handlers"
	"github.com/sotramin/mineops/internal/server/router"
	lotsvc "github.com/sotramin/mineops/internal/service/lots"
	reportsvc "github.com/sotramin/mineops/internal/service/reports"
	"github.com/sotramin/mineops/pkg/clients/alerts"
	"github.com/sotramin/mineops/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(os.Getenv("LOG_DEBUG") != ""))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("spreadsheet summary mirror enabled")
	}

	var notifier alerts.Notifier
	if cfg.Alerts.WebhookURL != "" {
		notifier = alerts.NewWebhookClient(cfg.Alerts)
		baseLogger.Info("alert webhook enabled")
	} else {
		baseLogger.Warn("alert webhook url missing, operational alerts disabled")
	}

	lotsSvc := lotsvc.NewService(store, notifier, baseLogger.Named("svc.lots"))
	reportsSvc := reportsvc.NewService(store, exporter, baseLogger.Named("svc.reports"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportsSvc, notifier, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	lotsHandler := handlers.NewLotsHandler(lotsSvc, baseLogger.Named("handlers.lots"))
	recordsHandler := handlers.NewRecordsHandler(reportsSvc, sched.Location(), baseLogger.Named("handlers.records"))
	engine := router.New(lotsHandler, recordsHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
