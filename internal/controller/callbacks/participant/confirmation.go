package participant

import (
	"context"
	"errors"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ConfirmationReply - текст сообщения и всплывающий ответ на нажатие
type ConfirmationReply struct {
	Text   string
	Answer string
	Alert  bool
}

// ReplyFor подбирает ответ участнику по результату Respond
func ReplyFor(attending bool, outcome *service.ResponseOutcome) ConfirmationReply {
	switch {
	case attending && outcome.Changed:
		return ConfirmationReply{
			Text:   "✅ <b>Отлично!</b>\n\nСпасибо за подтверждение! Ждём тебя на проекте! 🎉",
			Answer: "Участие подтверждено!",
		}
	case attending:
		return ConfirmationReply{
			Text:   "✅ <b>Ты уже подтвердил участие!</b>\n\nЖдём тебя на проекте! 🎉",
			Answer: "Ты уже подтвердил участие!",
			Alert:  true,
		}
	case outcome.Changed:
		return ConfirmationReply{
			Text:   "😔 <b>Очень жаль!</b>\n\nСпасибо, что предупредил. Надеемся увидеть тебя в следующий раз!",
			Answer: "Отказ зафиксирован",
		}
	default:
		return ConfirmationReply{
			Text:   "😔 <b>Ты уже отказался от участия.</b>\n\nСпасибо, что предупредил. Надеемся увидеть тебя в следующий раз!",
			Answer: "Ты уже отказался от участия!",
			Alert:  true,
		}
	}
}

// HandleConfirmYes - участник подтверждает присутствие
func HandleConfirmYes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleResponse(ctx, b, callback, h, true)
}

// HandleConfirmNo - участник отказывается
func HandleConfirmNo(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	handleResponse(ctx, b, callback, h, false)
}

func handleResponse(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, attending bool) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	outcome, err := h.ConfirmationService.Respond(hc.Ctx, hc.TelegramID, attending)
	if err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		common.HandleError(hc, err, "record confirmation response")
		return
	}

	reply := ReplyFor(attending, outcome)
	if reply.Alert {
		hc.AnswerAlert(reply.Answer)
	} else {
		hc.Answer(reply.Answer)
	}

	// Кнопки остаются, чтобы участник мог изменить ответ
	if err := hc.EditMessage(reply.Text, keyboard.Confirmation()); err != nil {
		h.Logger.Warn("Failed to update confirmation message",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}
