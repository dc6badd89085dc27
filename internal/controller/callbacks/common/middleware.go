package common

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithAdmin создаёт HandlerContext и проверяет права администратора
// При ошибке автоматически отвечает пользователю
func WithAdmin(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.RequireAdmin(); err != nil {
		h.Logger.Warn("Admin check failed",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", callback.Data))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// HandleError обрабатывает ошибку и отправляет ответ пользователю
func HandleError(hc *HandlerContext, err error, operation string) {
	hc.Handler.Logger.Error("Operation failed",
		zap.String("operation", operation),
		zap.Int64("telegram_id", hc.TelegramID),
		zap.Error(err))
	hc.AnswerAlert(ErrorMessage(err))
}

// LogAndAnswer логирует действие и отвечает на callback
func LogAndAnswer(hc *HandlerContext, message string, answer string) {
	hc.Handler.Logger.Info(message,
		zap.Int64("telegram_id", hc.TelegramID))
	hc.Answer(answer)
}
