package admin

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleReserve показывает очередь резерва
func HandleReserve(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		queue, err := h.AdminService.ReserveQueue(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "load reserve queue")
			return
		}

		if err := hc.EditMessage(formatting.ReserveQueue(queue), keyboard.ReservePanel(len(queue))); err != nil {
			h.Logger.Error("Failed to show reserve queue", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandlePromote запрашивает количество участников для перевода
func HandlePromote(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		queue, err := h.AdminService.ReserveQueue(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "load reserve queue")
			return
		}
		if len(queue) == 0 {
			hc.AnswerAlert("Резерв пуст")
			return
		}

		hc.SetState(callbacktypes.StateAdminPromoteCount)

		text := fmt.Sprintf("⬆️ <b>Перевод из резерва</b>\n\n"+
			"В резерве: <b>%d</b>\n"+
			"Сколько участников перевести в основной список?\n"+
			"(Переводятся в порядке регистрации)", len(queue))
		if err := hc.EditMessage(text, keyboard.CancelOnly()); err != nil {
			h.Logger.Error("Failed to show promote prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleConfirmPromote переводит подтверждённое количество участников
func HandleConfirmPromote(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		param, err := common.ParamFromCallback(callback.Data, callbacktypes.AdminConfirmPromote)
		if err != nil {
			common.HandleError(hc, err, "parse promotion count")
			return
		}
		n, err := strconv.Atoi(param)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "parse promotion count")
			return
		}

		result, err := h.AdminService.Promote(hc.Ctx, hc.TelegramID, n)
		if err != nil {
			// Очередь могла измениться между вводом и подтверждением
			common.HandleError(hc, err, "promote from reserve")
			return
		}

		hc.Answer("")
		if err := hc.EditMessage(PromotionResult(result), keyboard.BackOnly()); err != nil {
			h.Logger.Error("Failed to show promotion result", zap.Error(err))
		}
	})
}

// PromotionPreview - вопрос перед переводом n участников
func PromotionPreview(n int) string {
	return fmt.Sprintf("⬆️ <b>Перевод из резерва</b>\n\n"+
		"Будут переведены в основной список первые <b>%d</b> %s из резерва.\n\n"+
		"Подтвердить перевод?", n, formatting.PluralizeParticipants(n))
}

// PromotionResult - итог перевода из резерва
func PromotionResult(result *service.Promotion) string {
	return fmt.Sprintf("✅ <b>Перевод завершён</b>\n\n"+
		"⬆️ Переведено: %d\n"+
		"📨 Уведомлено: %d\n"+
		"❌ Ошибок отправки: %d",
		len(result.Promoted), result.Notified, result.Failed)
}
