package admin

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const PanelText = "🔧 <b>Админ-панель</b>\n\nВыбери действие:"

// HandleBack возвращает в главное меню и сбрасывает незавершённый диалог
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		if err := hc.EditMessage(PanelText, keyboard.AdminPanel()); err != nil {
			common.HandleError(hc, err, "show admin panel")
			return
		}
		hc.Answer("")
	})
}

// HandleStats показывает сводную статистику
func HandleStats(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		stats, err := h.AdminService.Stats(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "load stats")
			return
		}

		if err := hc.EditMessage(formatting.Stats(stats), keyboard.BackOnly()); err != nil {
			h.Logger.Error("Failed to show stats", zap.Error(err))
		}
		hc.Answer("")
	})
}
