package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"go.uber.org/zap"
)

// NotificationKind - тип уведомления участнику
type NotificationKind string

const (
	NotificationPromoted            NotificationKind = "promoted"             // Переведён из резерва
	NotificationDemoted             NotificationKind = "demoted"              // Перемещён в резерв
	NotificationConfirmationRequest NotificationKind = "confirmation_request" // Вопрос о присутствии
)

// Notifier доставляет уведомление участнику через чат
type Notifier interface {
	Notify(ctx context.Context, telegramID int64, kind NotificationKind) error
}

const DefaultNotifyTimeout = 10 * time.Second

// deliverer отправляет уведомления "best effort": ошибка логируется и не пробрасывается
type deliverer struct {
	notifier Notifier
	timeout  time.Duration
	logger   *zap.Logger
}

func newDeliverer(notifier Notifier, timeout time.Duration, logger *zap.Logger) *deliverer {
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	return &deliverer{notifier: notifier, timeout: timeout, logger: logger}
}

// deliver возвращает true, если уведомление доставлено
func (d *deliverer) deliver(ctx context.Context, p *model.Participant, kind NotificationKind) bool {
	if d.notifier == nil {
		return false
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.notifier.Notify(sendCtx, p.TelegramID, kind); err != nil {
		d.logger.Warn("Failed to deliver notification",
			zap.Int64("participant_id", p.ID),
			zap.Int64("telegram_id", p.TelegramID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return false
	}
	return true
}

// deliverAll уведомляет всех и возвращает число успешных и неудачных отправок
func (d *deliverer) deliverAll(ctx context.Context, participants []*model.Participant, kind NotificationKind) (sent, failed int) {
	for _, p := range participants {
		if d.deliver(ctx, p, kind) {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}
