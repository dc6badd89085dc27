package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireAdmin проверяет что автор сообщения - администратор.
// Для остальных сбрасывает диалог админа и отвечает отказом.
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	telegramID := update.Message.From.ID
	if h.adminService.IsAdmin(telegramID) {
		return true
	}

	h.logger.Warn("Admin command from non-admin", zap.Int64("telegram_id", telegramID))
	h.stateManager.ClearState(telegramID)
	h.sendError(ctx, b, update.Message.Chat.ID, "❌ У тебя нет доступа к админ-панели.", nil)
	return false
}

// messageSender возвращает автора сообщения; сообщения без автора (каналы) пропускаются
func messageSender(update *models.Update) (*models.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}
	return update.Message.From, true
}
