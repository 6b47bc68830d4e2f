package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sotramin/mineops/internal/config"
	"github.com/sotramin/mineops/internal/service/reports"
	"github.com/sotramin/mineops/pkg/clients/alerts"
)

// Scheduler publishes the daily production summary on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	reportsSvc *reports.Service
	notifier   alerts.Notifier
	cfg        config.ReportingConfig
	loc        *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance. The cron runs in the
// configured timezone so "20:00" means 20:00 at the mine site.
func NewScheduler(cfg config.ReportingConfig, reportsSvc *reports.Service, notifier alerts.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		reportsSvc: reportsSvc,
		notifier:   notifier,
		cfg:        cfg,
		loc:        loc,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Location returns the timezone the scheduler operates in.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Start registers the summary job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.publishDailySummary); err != nil {
		s.logger.Error("failed to schedule daily summary", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) publishDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The summarized day is the calendar day in the configured timezone, not
	// the server's. A 20:00 Lima trigger on a UTC host is already the next
	// day in server time.
	summary, err := s.reportsSvc.PublishDailySummary(ctx, s.now().In(s.loc))
	if err != nil {
		s.logger.Error("failed to publish daily summary", zap.Error(err))
		return
	}

	if s.notifier == nil {
		return
	}
	ev := alerts.Event{
		Kind: alerts.EventDailySummary,
		Message: fmt.Sprintf(
			"Resumen %s: %d extracciones (%.2f t), %d producciones (%.0f kg), %d despachos",
			summary.Date, summary.ExtractionCount, summary.ExtractedTonnes,
			summary.PlantRunCount, summary.ProducedKilograms, summary.ShipmentCount),
	}
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.Warn("failed to send summary alert", zap.Error(err))
	}
}
