package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
	"go.uber.org/zap"
)

// RosterService владеет списком участников и политикой мест/резерва
type RosterService struct {
	store    repository.Store
	delivery *deliverer
	logger   *zap.Logger
}

func NewRosterService(store repository.Store, notifier Notifier, notifyTimeout time.Duration, logger *zap.Logger) *RosterService {
	return &RosterService{
		store:    store,
		delivery: newDeliverer(notifier, notifyTimeout, logger),
		logger:   logger,
	}
}

// Stats - агрегированная статистика по участникам
type Stats struct {
	Settings model.Settings
	Total    int
	ByStatus map[model.ParticipantStatus]int
}

// Count возвращает число участников в статусе
func (s Stats) Count(status model.ParticipantStatus) int {
	return s.ByStatus[status]
}

// LimitChange - результат изменения лимита
type LimitChange struct {
	Limit    int
	Demoted  []*model.Participant
	Notified int
	Failed   int
}

// Deletion - результат удаления участника
type Deletion struct {
	Deleted  *model.Participant
	Promoted *model.Participant // nil, если никто не переведён из резерва
	Notified bool
}

// Promotion - результат массового перевода из резерва
type Promotion struct {
	Promoted []*model.Participant
	Notified int
	Failed   int
}

// Register создаёт участника из заполненной анкеты.
// Решение о статусе и вставка выполняются в одной критической секции.
func (s *RosterService) Register(ctx context.Context, telegramID int64, username string, form model.RegistrationForm) (*model.Participant, error) {
	var participant *model.Participant

	err := s.store.Update(ctx, func(r repository.Roster) error {
		existing, err := r.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyRegistered
		}

		settings, err := r.GetSettings(ctx)
		if err != nil {
			return err
		}

		counts, err := r.CountByStatus(ctx)
		if err != nil {
			return err
		}

		status := model.StatusReserve
		if settings.HasFreeSlot(counts[model.StatusRegistered]) {
			status = model.StatusRegistered
		}

		participant = &model.Participant{
			TelegramID: telegramID,
			Username:   username,
			FullName:   form.FullName,
			StudyGroup: form.StudyGroup,
			Course:     form.Course,
			VKLink:     form.VKLink,
			TGLink:     form.TGLink,
			Phone:      form.Phone,
			Faculty:    form.Faculty,
			Source:     form.Source,
			Status:     status,
		}
		return r.Create(ctx, participant)
	})

	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyRegistered
		}
		if errors.Is(err, ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("register participant: %w", err)
	}

	s.logger.Info("Participant registered",
		zap.Int64("participant_id", participant.ID),
		zap.Int64("telegram_id", telegramID),
		zap.String("status", string(participant.Status)))

	return participant, nil
}

// Get получает участника по Telegram ID (nil, если не зарегистрирован)
func (s *RosterService) Get(ctx context.Context, telegramID int64) (*model.Participant, error) {
	var participant *model.Participant
	err := s.store.View(ctx, func(r repository.Roster) error {
		var err error
		participant, err = r.GetByTelegramID(ctx, telegramID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get participant: %w", err)
	}
	return participant, nil
}

// List возвращает участников в указанных статусах (все, если статусы не заданы)
func (s *RosterService) List(ctx context.Context, statuses ...model.ParticipantStatus) ([]*model.Participant, error) {
	for _, status := range statuses {
		if !status.Valid() {
			return nil, reject(FieldStatus, ReasonNotAnOption)
		}
	}

	var participants []*model.Participant
	err := s.store.View(ctx, func(r repository.Roster) error {
		var err error
		participants, err = r.List(ctx, repository.Statuses(statuses...))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// Settings возвращает текущие настройки регистрации
func (s *RosterService) Settings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := s.store.View(ctx, func(r repository.Roster) error {
		var err error
		settings, err = r.GetSettings(ctx)
		return err
	})
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Stats считает участников по статусам
func (s *RosterService) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.store.View(ctx, func(r repository.Roster) error {
		settings, err := r.GetSettings(ctx)
		if err != nil {
			return err
		}
		counts, err := r.CountByStatus(ctx)
		if err != nil {
			return err
		}

		stats.Settings = settings
		stats.ByStatus = counts
		for _, c := range counts {
			stats.Total += c
		}
		return nil
	})
	if err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// SetStatus меняет статус участника с проверкой допустимости перехода
func (s *RosterService) SetStatus(ctx context.Context, id int64, status model.ParticipantStatus) (*model.Participant, error) {
	var participant *model.Participant

	err := s.store.Update(ctx, func(r repository.Roster) error {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrNotFound
		}
		if err := transition(ctx, r, p, status); err != nil {
			return err
		}
		participant = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	return participant, nil
}

// SetRegistrationOpen открывает или закрывает регистрацию
func (s *RosterService) SetRegistrationOpen(ctx context.Context, open bool) error {
	err := s.store.Update(ctx, func(r repository.Roster) error {
		return r.SetRegistrationOpen(ctx, open)
	})
	if err != nil {
		return fmt.Errorf("set registration open: %w", err)
	}

	s.logger.Info("Registration state changed", zap.Bool("open", open))
	return nil
}

// ToggleRegistration переключает регистрацию и возвращает новое значение
func (s *RosterService) ToggleRegistration(ctx context.Context) (bool, error) {
	var open bool
	err := s.store.Update(ctx, func(r repository.Roster) error {
		settings, err := r.GetSettings(ctx)
		if err != nil {
			return err
		}
		open = !settings.RegistrationOpen
		return r.SetRegistrationOpen(ctx, open)
	})
	if err != nil {
		return false, fmt.Errorf("toggle registration: %w", err)
	}

	s.logger.Info("Registration state changed", zap.Bool("open", open))
	return open, nil
}

// SetLimit задаёт лимит мест. При положительном лимите все зарегистрированные
// сверх лимита (в порядке регистрации) переводятся в резерв.
// Повышение или снятие лимита никого не переводит из резерва.
func (s *RosterService) SetLimit(ctx context.Context, limit int) (*LimitChange, error) {
	if limit < 0 {
		return nil, reject(FieldLimit, ReasonNegative)
	}

	change := &LimitChange{Limit: limit}

	err := s.store.Update(ctx, func(r repository.Roster) error {
		change.Demoted = nil

		if err := r.SetMaxRegistrations(ctx, limit); err != nil {
			return err
		}
		if limit == 0 {
			return nil
		}

		registered, err := r.List(ctx, repository.Statuses(model.StatusRegistered))
		if err != nil {
			return err
		}

		for i, p := range registered {
			if i < limit {
				continue
			}
			if err := transition(ctx, r, p, model.StatusReserve); err != nil {
				return err
			}
			change.Demoted = append(change.Demoted, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("set limit: %w", err)
	}

	change.Notified, change.Failed = s.delivery.deliverAll(ctx, change.Demoted, NotificationDemoted)

	s.logger.Info("Registration limit changed",
		zap.Int("limit", limit),
		zap.Int("demoted", len(change.Demoted)),
		zap.Int("notify_failed", change.Failed))

	return change, nil
}

// Delete удаляет участника. Если он был зарегистрирован, первый по очереди
// участник из резерва занимает освободившееся место.
func (s *RosterService) Delete(ctx context.Context, id int64) (*Deletion, error) {
	result := &Deletion{}

	err := s.store.Update(ctx, func(r repository.Roster) error {
		result.Promoted = nil

		p, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrNotFound
		}
		if err := r.Delete(ctx, id); err != nil {
			return err
		}
		result.Deleted = p

		if p.Status != model.StatusRegistered {
			return nil
		}

		next, err := r.List(ctx, repository.ListFilter{
			Statuses: []model.ParticipantStatus{model.StatusReserve},
			Limit:    1,
		})
		if err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}

		if err := transition(ctx, r, next[0], model.StatusRegistered); err != nil {
			return err
		}
		result.Promoted = next[0]
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete participant: %w", err)
	}

	if result.Promoted != nil {
		result.Notified = s.delivery.deliver(ctx, result.Promoted, NotificationPromoted)
	}

	fields := []zap.Field{
		zap.Int64("participant_id", id),
		zap.String("status", string(result.Deleted.Status)),
	}
	if result.Promoted != nil {
		fields = append(fields, zap.Int64("promoted_id", result.Promoted.ID))
	}
	s.logger.Info("Participant deleted", fields...)

	return result, nil
}

// ReserveQueue возвращает резерв в порядке очереди
func (s *RosterService) ReserveQueue(ctx context.Context) ([]*model.Participant, error) {
	return s.List(ctx, model.StatusReserve)
}

// Promote переводит n первых участников резерва в зарегистрированные.
// n <= 0 или n больше размера резерва - ошибка без изменений.
func (s *RosterService) Promote(ctx context.Context, n int) (*Promotion, error) {
	result := &Promotion{}

	err := s.store.Update(ctx, func(r repository.Roster) error {
		result.Promoted = nil

		reserve, err := r.List(ctx, repository.Statuses(model.StatusReserve))
		if err != nil {
			return err
		}
		if err := checkPromotionCount(n, len(reserve)); err != nil {
			return err
		}

		for _, p := range reserve[:n] {
			if err := transition(ctx, r, p, model.StatusRegistered); err != nil {
				return err
			}
			result.Promoted = append(result.Promoted, p)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPromotionCount) {
			return nil, err
		}
		return nil, fmt.Errorf("promote from reserve: %w", err)
	}

	result.Notified, result.Failed = s.delivery.deliverAll(ctx, result.Promoted, NotificationPromoted)

	s.logger.Info("Participants promoted from reserve",
		zap.Int("count", len(result.Promoted)),
		zap.Int("notify_failed", result.Failed))

	return result, nil
}

// transition - единственная точка записи статуса: недопустимый переход отклоняется
// до обращения к хранилищу, p.Status обновляется после успешной записи
func transition(ctx context.Context, r repository.Roster, p *model.Participant, to model.ParticipantStatus) error {
	if !model.CanTransition(p.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	if err := r.UpdateStatus(ctx, p.ID, to); err != nil {
		return err
	}
	p.Status = to
	return nil
}

func checkPromotionCount(n, reserveSize int) error {
	if n <= 0 || n > reserveSize {
		return fmt.Errorf("%w: requested %d, reserve has %d", ErrInvalidPromotionCount, n, reserveSize)
	}
	return nil
}
