package admin

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var broadcastTitles = map[service.BroadcastKind]string{
	service.BroadcastForConfirmation: "ещё не получавшим запрос",
	service.BroadcastWithoutResponse: "получившим запрос, но не ответившим",
	service.BroadcastAll:             "всем, кто ещё не ответил",
}

func parseKind(data, prefix string) (service.BroadcastKind, error) {
	param, err := common.ParamFromCallback(data, prefix)
	if err != nil {
		return "", err
	}
	kind := service.BroadcastKind(param)
	if !kind.Valid() {
		return "", common.ErrInvalidFormat
	}
	return kind, nil
}

// HandleBroadcastMenu предлагает выбрать аудиторию рассылки
func HandleBroadcastMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text := "📢 <b>Рассылка подтверждения присутствия</b>\n\nКому отправить запрос?"
		if err := hc.EditMessage(text, keyboard.BroadcastPanel()); err != nil {
			h.Logger.Error("Failed to show broadcast menu", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleBroadcastPreview показывает число адресатов и просит подтверждение
func HandleBroadcastPreview(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kind, err := parseKind(callback.Data, callbacktypes.AdminBroadcastPreview)
		if err != nil {
			common.HandleError(hc, err, "parse broadcast kind")
			return
		}

		count, err := h.AdminService.BroadcastPreview(hc.Ctx, hc.TelegramID, kind)
		if err != nil {
			common.HandleError(hc, err, "broadcast preview")
			return
		}

		if count == 0 {
			text := fmt.Sprintf("📢 <b>Рассылка подтверждения присутствия</b>\n\n"+
				"Нет участников, %s.", broadcastTitles[kind])
			if err := hc.EditMessage(text, keyboard.BackOnly()); err != nil {
				h.Logger.Error("Failed to show empty broadcast", zap.Error(err))
			}
			hc.Answer("")
			return
		}

		text := fmt.Sprintf("📢 <b>Рассылка подтверждения присутствия</b>\n\n"+
			"Будет отправлено сообщение с вопросом о присутствии\n"+
			"<b>%d %s</b> (%s)\n\n"+
			"Подтвердить рассылку?",
			count, formatting.PluralizeParticipantsDative(count), broadcastTitles[kind])
		if err := hc.EditMessage(text, keyboard.ConfirmBroadcast(string(kind))); err != nil {
			h.Logger.Error("Failed to show broadcast preview", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleBroadcastSend выполняет рассылку после подтверждения
func HandleBroadcastSend(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		kind, err := parseKind(callback.Data, callbacktypes.AdminBroadcastSend)
		if err != nil {
			common.HandleError(hc, err, "parse broadcast kind")
			return
		}

		hc.Answer("")
		if err := hc.EditMessageText("📤 Рассылка начата..."); err != nil {
			h.Logger.Warn("Failed to show broadcast progress", zap.Error(err))
		}

		report, err := h.AdminService.Broadcast(hc.Ctx, hc.TelegramID, kind)
		if err != nil {
			h.Logger.Error("Broadcast failed", zap.String("kind", string(kind)), zap.Error(err))
			if err := hc.EditMessage(common.ErrorMessage(err), keyboard.BackOnly()); err != nil {
				h.Logger.Error("Failed to show broadcast error", zap.Error(err))
			}
			return
		}

		text := fmt.Sprintf("✅ <b>Рассылка завершена</b>\n\n"+
			"✅ Отправлено: %d\n"+
			"❌ Ошибок: %d", report.Sent, report.Failed)
		if err := hc.EditMessage(text, keyboard.BackOnly()); err != nil {
			h.Logger.Error("Failed to show broadcast result", zap.Error(err))
		}
	})
}
