package admin

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// listFilters сопоставляет кнопки списков со статусами; пустой статус - все участники
var listFilters = map[string]model.ParticipantStatus{
	callbacktypes.AdminUsersAll:        "",
	callbacktypes.AdminUsersRegistered: model.StatusRegistered,
	callbacktypes.AdminUsersReserve:    model.StatusReserve,
	callbacktypes.AdminUsersConfirmed:  model.StatusConfirmed,
	callbacktypes.AdminUsersDeclined:   model.StatusDeclined,
}

// IsListCallback сообщает, что data - кнопка одного из списков участников
func IsListCallback(data string) bool {
	_, ok := listFilters[data]
	return ok
}

// HandleUsers показывает меню управления участниками
func HandleUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text := "👥 <b>Управление участниками</b>\n\nВыбери категорию:"
		if err := hc.EditMessage(text, keyboard.UsersPanel()); err != nil {
			h.Logger.Error("Failed to show users panel", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleList показывает список участников по выбранному статусу
func HandleList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		status, ok := listFilters[callback.Data]
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "list participants")
			return
		}

		var statuses []model.ParticipantStatus
		if status != "" {
			statuses = append(statuses, status)
		}

		page, err := h.AdminService.ListParticipants(hc.Ctx, hc.TelegramID, statuses...)
		if err != nil {
			common.HandleError(hc, err, "list participants")
			return
		}

		text := formatting.ParticipantList(formatting.ListTitle(status), page)
		if err := hc.EditMessage(text, keyboard.BackOnly()); err != nil {
			h.Logger.Error("Failed to show participant list", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleDeleteUser запрашивает ID участника для удаления
func HandleDeleteUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.SetState(callbacktypes.StateAdminDeleteID)

		text := "🗑 <b>Удаление участника</b>\n\n" +
			"Введи ID участника для удаления\n" +
			"(ID можно посмотреть в списке участников):"
		if err := hc.EditMessage(text, keyboard.CancelOnly()); err != nil {
			h.Logger.Error("Failed to show delete prompt", zap.Error(err))
		}
		hc.Answer("")
	})
}
