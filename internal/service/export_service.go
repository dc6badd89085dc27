package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
	"go.uber.org/zap"
)

// Exporter записывает снимок участников во внешнюю таблицу
type Exporter interface {
	WriteRegistrations(ctx context.Context, participants []*model.Participant) error
	WriteConfirmations(ctx context.Context, confirmed, declined []*model.Participant) error
	URL() string
}

// ExportReport - итог выгрузки
type ExportReport struct {
	Rows int
	URL  string
}

// ExportService выгружает участников. Список участников при этом не меняется.
type ExportService struct {
	store    repository.Store
	exporter Exporter // nil - выгрузка не настроена
	logger   *zap.Logger
}

func NewExportService(store repository.Store, exporter Exporter, logger *zap.Logger) *ExportService {
	return &ExportService{
		store:    store,
		exporter: exporter,
		logger:   logger,
	}
}

// Enabled сообщает, настроена ли выгрузка
func (s *ExportService) Enabled() bool {
	return s.exporter != nil
}

// URL - ссылка на таблицу; пустая строка, если выгрузка не настроена
func (s *ExportService) URL() string {
	if !s.Enabled() {
		return ""
	}
	return s.exporter.URL()
}

// ExportRegistrations выгружает всех участников в порядке регистрации
func (s *ExportService) ExportRegistrations(ctx context.Context) (*ExportReport, error) {
	if !s.Enabled() {
		return nil, ErrExportDisabled
	}

	var participants []*model.Participant
	err := s.store.View(ctx, func(r repository.Roster) error {
		var err error
		participants, err = r.List(ctx, repository.ListFilter{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot participants: %w", err)
	}

	if err := s.exporter.WriteRegistrations(ctx, participants); err != nil {
		s.logger.Error("Failed to export registrations", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIntegration, err)
	}

	s.logger.Info("Registrations exported", zap.Int("rows", len(participants)))
	return &ExportReport{Rows: len(participants), URL: s.exporter.URL()}, nil
}

// ExportConfirmations выгружает подтвердивших и отказавшихся
func (s *ExportService) ExportConfirmations(ctx context.Context) (*ExportReport, error) {
	if !s.Enabled() {
		return nil, ErrExportDisabled
	}

	var confirmed, declined []*model.Participant
	err := s.store.View(ctx, func(r repository.Roster) error {
		var err error
		confirmed, err = r.List(ctx, repository.Statuses(model.StatusConfirmed))
		if err != nil {
			return err
		}
		declined, err = r.List(ctx, repository.Statuses(model.StatusDeclined))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot confirmations: %w", err)
	}

	if err := s.exporter.WriteConfirmations(ctx, confirmed, declined); err != nil {
		s.logger.Error("Failed to export confirmations", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrIntegration, err)
	}

	rows := len(confirmed) + len(declined)
	s.logger.Info("Confirmations exported", zap.Int("rows", rows))
	return &ExportReport{Rows: rows, URL: s.exporter.URL()}, nil
}
