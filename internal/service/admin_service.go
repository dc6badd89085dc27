package service

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"go.uber.org/zap"
)

// ParticipantListLimit - сколько участников показывается в одном сообщении
const ParticipantListLimit = 50

// ParticipantPage - усечённый список участников для админ-панели
type ParticipantPage struct {
	Items     []*model.Participant
	Total     int
	Remaining int // сколько не поместилось
}

// AdminService проверяет права администратора и делегирует действия сервисам
type AdminService struct {
	admins       map[int64]struct{}
	roster       *RosterService
	confirmation *ConfirmationService
	export       *ExportService
	logger       *zap.Logger
}

func NewAdminService(
	adminIDs []int64,
	roster *RosterService,
	confirmation *ConfirmationService,
	export *ExportService,
	logger *zap.Logger,
) *AdminService {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &AdminService{
		admins:       admins,
		roster:       roster,
		confirmation: confirmation,
		export:       export,
		logger:       logger,
	}
}

// IsAdmin проверяет, входит ли пользователь в список администраторов
func (s *AdminService) IsAdmin(telegramID int64) bool {
	_, ok := s.admins[telegramID]
	return ok
}

func (s *AdminService) authorize(callerID int64) error {
	if !s.IsAdmin(callerID) {
		s.logger.Warn("Unauthorized admin action", zap.Int64("telegram_id", callerID))
		return ErrUnauthorized
	}
	return nil
}

func (s *AdminService) Stats(ctx context.Context, callerID int64) (Stats, error) {
	if err := s.authorize(callerID); err != nil {
		return Stats{}, err
	}
	return s.roster.Stats(ctx)
}

func (s *AdminService) Settings(ctx context.Context, callerID int64) (model.Settings, error) {
	if err := s.authorize(callerID); err != nil {
		return model.Settings{}, err
	}
	return s.roster.Settings(ctx)
}

func (s *AdminService) ToggleRegistration(ctx context.Context, callerID int64) (bool, error) {
	if err := s.authorize(callerID); err != nil {
		return false, err
	}
	return s.roster.ToggleRegistration(ctx)
}

func (s *AdminService) SetLimit(ctx context.Context, callerID int64, limit int) (*LimitChange, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	return s.roster.SetLimit(ctx, limit)
}

// ListParticipants возвращает не более ParticipantListLimit участников в указанных статусах
func (s *AdminService) ListParticipants(ctx context.Context, callerID int64, statuses ...model.ParticipantStatus) (*ParticipantPage, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}

	participants, err := s.roster.List(ctx, statuses...)
	if err != nil {
		return nil, err
	}

	page := &ParticipantPage{Items: participants, Total: len(participants)}
	if len(participants) > ParticipantListLimit {
		page.Items = participants[:ParticipantListLimit]
		page.Remaining = len(participants) - ParticipantListLimit
	}
	return page, nil
}

func (s *AdminService) DeleteParticipant(ctx context.Context, callerID, participantID int64) (*Deletion, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}

	result, err := s.roster.Delete(ctx, participantID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin deleted participant",
		zap.Int64("admin_id", callerID),
		zap.Int64("participant_id", participantID))
	return result, nil
}

// ReserveQueue - первый шаг перевода из резерва: показать очередь
func (s *AdminService) ReserveQueue(ctx context.Context, callerID int64) ([]*model.Participant, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	return s.roster.ReserveQueue(ctx)
}

// ValidatePromotion проверяет введённое количество без изменений в списке
func (s *AdminService) ValidatePromotion(ctx context.Context, callerID int64, n int) error {
	if err := s.authorize(callerID); err != nil {
		return err
	}

	reserve, err := s.roster.ReserveQueue(ctx)
	if err != nil {
		return err
	}
	return checkPromotionCount(n, len(reserve))
}

// Promote - второй шаг: перевод после подтверждения администратором
func (s *AdminService) Promote(ctx context.Context, callerID int64, n int) (*Promotion, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}

	result, err := s.roster.Promote(ctx, n)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin promoted participants from reserve",
		zap.Int64("admin_id", callerID),
		zap.Int("count", len(result.Promoted)))
	return result, nil
}

// BroadcastPreview возвращает число адресатов до подтверждения рассылки
func (s *AdminService) BroadcastPreview(ctx context.Context, callerID int64, kind BroadcastKind) (int, error) {
	if err := s.authorize(callerID); err != nil {
		return 0, err
	}

	targets, err := s.confirmation.Targets(ctx, kind)
	if err != nil {
		return 0, err
	}
	return len(targets), nil
}

func (s *AdminService) Broadcast(ctx context.Context, callerID int64, kind BroadcastKind) (*BroadcastReport, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}

	s.logger.Info("Admin started broadcast",
		zap.Int64("admin_id", callerID),
		zap.String("kind", string(kind)))
	return s.confirmation.Broadcast(ctx, kind)
}

// SheetURL - ссылка на таблицу выгрузки для кнопки в панели экспорта
func (s *AdminService) SheetURL() string {
	return s.export.URL()
}

func (s *AdminService) ExportRegistrations(ctx context.Context, callerID int64) (*ExportReport, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	return s.export.ExportRegistrations(ctx)
}

func (s *AdminService) ExportConfirmations(ctx context.Context, callerID int64) (*ExportReport, error) {
	if err := s.authorize(callerID); err != nil {
		return nil, err
	}
	return s.export.ExportConfirmations(ctx)
}
