package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BroadcastKind - кому отправляется запрос подтверждения
type BroadcastKind string

const (
	BroadcastForConfirmation BroadcastKind = "for_confirmation" // Ещё не получали запрос
	BroadcastWithoutResponse BroadcastKind = "without_response" // Получили, но не ответили
	BroadcastAll             BroadcastKind = "all"              // Все, кто не ответил
)

// Valid проверяет, что тип рассылки известен
func (k BroadcastKind) Valid() bool {
	switch k {
	case BroadcastForConfirmation, BroadcastWithoutResponse, BroadcastAll:
		return true
	}
	return false
}

// BroadcastReport - итог рассылки
type BroadcastReport struct {
	ID     uuid.UUID
	Kind   BroadcastKind
	Total  int
	Sent   int
	Failed int
}

// ResponseOutcome - итог ответа участника на запрос подтверждения
type ResponseOutcome struct {
	Status  model.ParticipantStatus
	Changed bool // false - повторный такой же ответ
}

// ConfirmationService проводит цикл "запрос - ответ" о присутствии на мероприятии
type ConfirmationService struct {
	store    repository.Store
	delivery *deliverer
	logger   *zap.Logger
}

func NewConfirmationService(store repository.Store, notifier Notifier, notifyTimeout time.Duration, logger *zap.Logger) *ConfirmationService {
	return &ConfirmationService{
		store:    store,
		delivery: newDeliverer(notifier, notifyTimeout, logger),
		logger:   logger,
	}
}

func awaitingFilter(kind BroadcastKind) (repository.ListFilter, error) {
	filter := repository.Statuses(model.StatusRegistered, model.StatusReserve)

	switch kind {
	case BroadcastForConfirmation:
		sent := false
		filter.ConfirmationSent = &sent
	case BroadcastWithoutResponse:
		sent := true
		filter.ConfirmationSent = &sent
	case BroadcastAll:
	default:
		return repository.ListFilter{}, fmt.Errorf("unknown broadcast kind %q", kind)
	}
	return filter, nil
}

// Targets возвращает текущий список адресатов рассылки (для предпросмотра)
func (s *ConfirmationService) Targets(ctx context.Context, kind BroadcastKind) ([]*model.Participant, error) {
	filter, err := awaitingFilter(kind)
	if err != nil {
		return nil, err
	}

	var targets []*model.Participant
	err = s.store.View(ctx, func(r repository.Roster) error {
		var err error
		targets, err = r.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list broadcast targets: %w", err)
	}
	return targets, nil
}

// Broadcast отправляет запрос подтверждения по снимку адресатов.
// Ошибки доставки только считаются; флаг confirmation_sent выставляется
// тем, кто получил запрос впервые.
func (s *ConfirmationService) Broadcast(ctx context.Context, kind BroadcastKind) (*BroadcastReport, error) {
	targets, err := s.Targets(ctx, kind)
	if err != nil {
		return nil, err
	}

	report := &BroadcastReport{
		ID:    uuid.New(),
		Kind:  kind,
		Total: len(targets),
	}

	s.logger.Info("Confirmation broadcast started",
		zap.String("broadcast_id", report.ID.String()),
		zap.String("kind", string(kind)),
		zap.Int("total", report.Total))

	for _, p := range targets {
		if !s.delivery.deliver(ctx, p, NotificationConfirmationRequest) {
			report.Failed++
			continue
		}
		report.Sent++

		if p.ConfirmationSent {
			continue
		}
		if err := s.markSent(ctx, p.ID); err != nil {
			s.logger.Error("Failed to mark confirmation sent",
				zap.String("broadcast_id", report.ID.String()),
				zap.Int64("participant_id", p.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Confirmation broadcast finished",
		zap.String("broadcast_id", report.ID.String()),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed))

	return report, nil
}

// markSent ставит флаг по текущему состоянию, а не по снимку рассылки:
// удалённого или уже ответившего участника не трогаем
func (s *ConfirmationService) markSent(ctx context.Context, id int64) error {
	return s.store.Update(ctx, func(r repository.Roster) error {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || !p.Status.AwaitingResponse() {
			return nil
		}
		return r.MarkConfirmationSent(ctx, id)
	})
}

// Respond фиксирует ответ участника. Повторный одинаковый ответ ничего не меняет,
// противоположный - переключает Confirmed/Declined (последний ответ побеждает).
func (s *ConfirmationService) Respond(ctx context.Context, telegramID int64, attending bool) (*ResponseOutcome, error) {
	target := model.StatusDeclined
	if attending {
		target = model.StatusConfirmed
	}

	outcome := &ResponseOutcome{Status: target}

	err := s.store.Update(ctx, func(r repository.Roster) error {
		p, err := r.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrNotRegistered
		}
		if p.Status == target {
			outcome.Changed = false
			return nil
		}
		if err := transition(ctx, r, p, target); err != nil {
			return err
		}
		outcome.Changed = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record confirmation response: %w", err)
	}

	if outcome.Changed {
		s.logger.Info("Participant responded to confirmation",
			zap.Int64("telegram_id", telegramID),
			zap.String("status", string(target)))
	}

	return outcome, nil
}
