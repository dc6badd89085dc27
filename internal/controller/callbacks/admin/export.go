package admin

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleExport показывает панель экспорта
func HandleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text := "📋 <b>Экспорт в Google Sheets</b>\n\nВыбери тип экспорта:"
		if err := hc.EditMessage(text, keyboard.ExportPanel(h.AdminService.SheetURL())); err != nil {
			h.Logger.Error("Failed to show export panel", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleExportAll выгружает все регистрации
func HandleExportAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	runExport(ctx, b, callback, h, h.AdminService.ExportRegistrations)
}

// HandleExportConfirmations выгружает подтвердивших и отказавшихся
func HandleExportConfirmations(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	runExport(ctx, b, callback, h, h.AdminService.ExportConfirmations)
}

type exportFunc func(ctx context.Context, callerID int64) (*service.ExportReport, error)

func runExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, export exportFunc) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Answer("")
		if err := hc.EditMessageText("📤 Экспорт данных..."); err != nil {
			h.Logger.Warn("Failed to show export progress", zap.Error(err))
		}

		report, err := export(hc.Ctx, hc.TelegramID)
		if err != nil {
			h.Logger.Error("Export failed", zap.String("data", callback.Data), zap.Error(err))
			if err := hc.EditMessage(ExportFailure(err), keyboard.BackOnly()); err != nil {
				h.Logger.Error("Failed to show export error", zap.Error(err))
			}
			return
		}

		if err := hc.EditMessage(ExportSuccess(report), keyboard.ExportPanel(report.URL)); err != nil {
			h.Logger.Error("Failed to show export result", zap.Error(err))
		}
	})
}

// ExportSuccess - сообщение об успешной выгрузке
func ExportSuccess(report *service.ExportReport) string {
	return fmt.Sprintf("✅ <b>Экспорт завершён</b>\n\n"+
		"Экспортировано: %d %s", report.Rows, formatting.PluralizeRecords(report.Rows))
}

// ExportFailure - сообщение об ошибке выгрузки с причиной
func ExportFailure(err error) string {
	if errors.Is(err, service.ErrExportDisabled) {
		return "❌ <b>Экспорт недоступен</b>\n\n" +
			"Google Sheets не настроен: укажи GOOGLE_SPREADSHEET_ID и файл ключа сервисного аккаунта."
	}
	return "❌ <b>Ошибка экспорта</b>\n\n" +
		"Проверь настройки Google Sheets.\n" +
		"Ошибка: " + html.EscapeString(err.Error())
}
