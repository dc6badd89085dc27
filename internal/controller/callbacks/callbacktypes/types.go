package callbacktypes

import (
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// Состояния диалогов администратора (совпадают со state.UserState)
const (
	StateNone              UserState = ""
	StateAdminLimit        UserState = "admin_limit"
	StateAdminDeleteID     UserState = "admin_delete_id"
	StateAdminPromoteCount UserState = "admin_promote_count"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AdminService        *service.AdminService
	ConfirmationService *service.ConfirmationService
	StateManager        StateManager
	Logger              *zap.Logger
}
