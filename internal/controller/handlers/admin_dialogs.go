package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleLimitInput обрабатывает ввод нового лимита мест
func (h *Handlers) handleLimitInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	limit, err := service.ParseLimit(update.Message.Text)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.sendError(ctx, b, chatID, ValidationMessage(verr), keyboard.CancelOnly())
		}
		return
	}

	change, err := h.adminService.SetLimit(ctx, telegramID, limit)
	h.stateManager.ClearState(telegramID)
	if err != nil {
		h.logger.Error("Failed to set limit", zap.Int("limit", limit), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err), keyboard.BackOnly())
		return
	}

	h.sendMessage(ctx, b, chatID, LimitResult(change), keyboard.BackOnly())
}

// LimitResult - итог изменения лимита
func LimitResult(change *service.LimitChange) string {
	limitText := "Без лимита"
	if change.Limit > 0 {
		limitText = strconv.Itoa(change.Limit)
	}

	text := "✅ Лимит установлен: " + limitText
	if len(change.Demoted) > 0 {
		text += fmt.Sprintf("\n\n📋 Перемещено в резерв: %d\n📨 Уведомлено: %d\n❌ Ошибок отправки: %d",
			len(change.Demoted), change.Notified, change.Failed)
	}
	return text
}

// handleDeleteIDInput обрабатывает ввод ID участника для удаления
func (h *Handlers) handleDeleteIDInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	participantID, err := service.ParseID(update.Message.Text)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.sendError(ctx, b, chatID, ValidationMessage(verr), keyboard.CancelOnly())
		}
		return
	}

	deletion, err := h.adminService.DeleteParticipant(ctx, telegramID, participantID)
	h.stateManager.ClearState(telegramID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.Error("Failed to delete participant", zap.Int64("participant_id", participantID), zap.Error(err))
		}
		h.sendError(ctx, b, chatID, common.ErrorMessage(err), keyboard.BackOnly())
		return
	}

	h.sendMessage(ctx, b, chatID, DeletionResult(deletion), keyboard.BackOnly())
}

// DeletionResult - итог удаления участника
func DeletionResult(deletion *service.Deletion) string {
	text := fmt.Sprintf("✅ Участник %s удалён.", html.EscapeString(deletion.Deleted.FullName))
	if deletion.Promoted != nil {
		text += fmt.Sprintf("\n\n⬆️ Из резерва переведён: %s", html.EscapeString(deletion.Promoted.FullName))
		if !deletion.Notified {
			text += "\n❌ Уведомление не доставлено"
		}
	}
	return text
}

// handlePromoteCountInput принимает количество для перевода и просит подтверждение
func (h *Handlers) handlePromoteCountInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	n, err := strconv.Atoi(strings.TrimSpace(update.Message.Text))
	if err == nil {
		err = h.adminService.ValidatePromotion(ctx, telegramID, n)
	} else {
		err = service.ErrInvalidPromotionCount
	}

	if err != nil {
		if !errors.Is(err, service.ErrInvalidPromotionCount) {
			h.stateManager.ClearState(telegramID)
			h.logger.Error("Failed to validate promotion", zap.Error(err))
			h.sendError(ctx, b, chatID, common.ErrorMessage(err), keyboard.BackOnly())
			return
		}

		queue, qerr := h.adminService.ReserveQueue(ctx, telegramID)
		if qerr != nil {
			h.logger.Error("Failed to load reserve queue", zap.Error(qerr))
			return
		}
		if len(queue) == 0 {
			h.stateManager.ClearState(telegramID)
			h.sendError(ctx, b, chatID, "📋 Резерв пуст.", keyboard.BackOnly())
			return
		}
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Введи число от 1 до %d\n(в резерве %d %s)",
				len(queue), len(queue), formatting.PluralizeParticipants(len(queue))),
			keyboard.CancelOnly())
		return
	}

	// Перевод выполняется только после подтверждения кнопкой
	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, admin.PromotionPreview(n), keyboard.ConfirmPromotion(n))
}
