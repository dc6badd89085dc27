package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"go.uber.org/zap"
)

// RegistrationsExporter - то, что планировщик выгружает по расписанию
type RegistrationsExporter interface {
	ExportRegistrations(ctx context.Context) (*service.ExportReport, error)
}

// Scheduler периодически выгружает регистрации в таблицу
type Scheduler struct {
	exporter RegistrationsExporter
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler создаёт новый планировщик
func NewScheduler(exporter RegistrationsExporter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		interval: interval,
		logger:   logger,
	}
}

// Run блокируется до отмены контекста. При нулевом интервале сразу возвращается.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("Periodic export disabled")
		return nil
	}

	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.export(ctx)
		case <-ctx.Done():
			s.logger.Info("Background scheduler stopped")
			return nil
		}
	}
}

func (s *Scheduler) export(ctx context.Context) {
	report, err := s.exporter.ExportRegistrations(ctx)
	if err != nil {
		s.logger.Error("Scheduled export failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled export completed", zap.Int("rows", report.Rows))
}
