package controller

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	textPromoted = "🎉 <b>Отличные новости!</b>\n\n" +
		"Освободилось место, и ты теперь зарегистрирован на проект! Ждём тебя!"
	textDemoted = "📋 К сожалению, количество мест ограничено, " +
		"и ты был перемещён в резерв. Мы сообщим, если появится место!"
	textConfirmationRequest = "👋 <b>Привет!</b>\n\n" +
		"Завтра состоится проект. Подтверждаешь ли ты своё присутствие?"
)

// Notifier отправляет участникам уведомления через Telegram
type Notifier struct {
	bot *bot.Bot
}

func NewNotifier(b *bot.Bot) *Notifier {
	return &Notifier{bot: b}
}

// Notify отправляет сообщение нужного типа; таймаут задаёт вызывающий через ctx
func (n *Notifier) Notify(ctx context.Context, telegramID int64, kind service.NotificationKind) error {
	params := &bot.SendMessageParams{
		ChatID:    telegramID,
		ParseMode: models.ParseModeHTML,
	}

	switch kind {
	case service.NotificationPromoted:
		params.Text = textPromoted
	case service.NotificationDemoted:
		params.Text = textDemoted
	case service.NotificationConfirmationRequest:
		params.Text = textConfirmationRequest
		params.ReplyMarkup = keyboard.Confirmation()
	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	if _, err := n.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send %s notification: %w", kind, err)
	}
	return nil
}
