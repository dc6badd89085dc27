package handlers

import (
	"github.com/Freeeeeet/event_registration_bot/internal/controller/state"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд и текстовых сообщений
type Handlers struct {
	flow         *service.RegistrationFlow
	roster       *service.RosterService
	adminService *service.AdminService
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	flow *service.RegistrationFlow,
	roster *service.RosterService,
	adminService *service.AdminService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		flow:         flow,
		roster:       roster,
		adminService: adminService,
		stateManager: stateManager,
		logger:       logger,
	}
}
