package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/participant"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Participant =====
	case data == callbacktypes.ConfirmYes:
		participant.HandleConfirmYes(ctx, b, callback, h)
	case data == callbacktypes.ConfirmNo:
		participant.HandleConfirmNo(ctx, b, callback, h)
	case data == callbacktypes.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Admin: navigation =====
	case data == callbacktypes.AdminBack, data == callbacktypes.AdminCancel:
		admin.HandleBack(ctx, b, callback, h)
	case data == callbacktypes.AdminStats:
		admin.HandleStats(ctx, b, callback, h)

	// ===== Admin: settings =====
	case data == callbacktypes.AdminSettings:
		admin.HandleSettings(ctx, b, callback, h)
	case data == callbacktypes.AdminToggleRegistration:
		admin.HandleToggleRegistration(ctx, b, callback, h)
	case data == callbacktypes.AdminSetLimit:
		admin.HandleSetLimit(ctx, b, callback, h)

	// ===== Admin: participants =====
	case data == callbacktypes.AdminUsers:
		admin.HandleUsers(ctx, b, callback, h)
	case admin.IsListCallback(data):
		admin.HandleList(ctx, b, callback, h)
	case data == callbacktypes.AdminDeleteUser:
		admin.HandleDeleteUser(ctx, b, callback, h)

	// ===== Admin: reserve =====
	case data == callbacktypes.AdminReserve:
		admin.HandleReserve(ctx, b, callback, h)
	case data == callbacktypes.AdminPromote:
		admin.HandlePromote(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.AdminConfirmPromote):
		admin.HandleConfirmPromote(ctx, b, callback, h)

	// ===== Admin: broadcast =====
	case data == callbacktypes.AdminBroadcastMenu:
		admin.HandleBroadcastMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.AdminBroadcastPreview):
		admin.HandleBroadcastPreview(ctx, b, callback, h)
	case strings.HasPrefix(data, callbacktypes.AdminBroadcastSend):
		admin.HandleBroadcastSend(ctx, b, callback, h)

	// ===== Admin: export =====
	case data == callbacktypes.AdminExport:
		admin.HandleExport(ctx, b, callback, h)
	case data == callbacktypes.AdminExportAll:
		admin.HandleExportAll(ctx, b, callback, h)
	case data == callbacktypes.AdminExportConfirmations:
		admin.HandleExportConfirmations(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
