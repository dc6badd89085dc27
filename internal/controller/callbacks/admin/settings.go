package admin

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSettings показывает настройки регистрации
func HandleSettings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		settings, err := h.AdminService.Settings(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "load settings")
			return
		}

		text := "⚙️ <b>Настройки регистрации</b>\n\nВыбери параметр для изменения:"
		if err := hc.EditMessage(text, keyboard.SettingsPanel(settings)); err != nil {
			h.Logger.Error("Failed to show settings", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleToggleRegistration открывает или закрывает регистрацию
func HandleToggleRegistration(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		open, err := h.AdminService.ToggleRegistration(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "toggle registration")
			return
		}

		answer := "Регистрация закрыта"
		if open {
			answer = "Регистрация открыта"
		}
		common.LogAndAnswer(hc, "Registration toggled", answer)

		settings, err := h.AdminService.Settings(hc.Ctx, hc.TelegramID)
		if err != nil {
			h.Logger.Error("Failed to reload settings", zap.Error(err))
			return
		}
		if err := hc.EditKeyboard(keyboard.SettingsPanel(settings)); err != nil {
			h.Logger.Error("Failed to refresh settings panel", zap.Error(err))
		}
	})
}

// HandleSetLimit запрашивает новый лимит мест
func HandleSetLimit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(callbacktypes.StateAdminLimit)

		text := "🔢 <b>Установка лимита регистраций</b>\n\n" +
			"Введи максимальное количество участников\n" +
			"(0 = без лимита):"
		if err := hc.EditMessage(text, keyboard.CancelOnly()); err != nil {
			h.Logger.Error("Failed to show limit prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}
