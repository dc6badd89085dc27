package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/state"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	// /start всегда начинает с чистого листа
	h.flow.Cancel(user.ID)
	h.stateManager.ClearState(user.ID)

	settings, err := h.roster.Settings(ctx)
	if err != nil {
		h.logger.Error("Failed to load settings", zap.Error(err))
		h.sendError(ctx, b, chatID, msgInternalError, nil)
		return
	}

	existing, err := h.roster.Get(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load participant", zap.Int64("telegram_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, msgInternalError, nil)
		return
	}

	if existing != nil {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf(
			"👋 <b>Привет, %s!</b>\n\n"+
				"Ты уже зарегистрирован на проект.\n"+
				"Статус: <b>%s</b>",
			html.EscapeString(existing.FullName),
			formatting.GetStatusDisplay(existing.Status),
		), keyboard.Remove())
		return
	}

	if !settings.RegistrationOpen {
		h.sendMessage(ctx, b, chatID, msgClosed, keyboard.Remove())
		return
	}

	h.sendMessage(ctx, b, chatID,
		"👋 <b>Привет!</b>\n\n"+
			"Добро пожаловать в бота регистрации на проект!\n\n"+
			"Нажми кнопку ниже, чтобы начать регистрацию.",
		keyboard.Start())
}

// HandleRegister начинает регистрацию (/register и кнопка "Зарегистрироваться")
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	session, err := h.flow.Begin(ctx, user.ID, user.Username)
	switch {
	case errors.Is(err, service.ErrRegistrationClosed):
		h.sendMessage(ctx, b, chatID, msgClosedShort, keyboard.Remove())
		return
	case errors.Is(err, service.ErrAlreadyRegistered):
		h.sendMessage(ctx, b, chatID, msgAlreadyRegistered, keyboard.Remove())
		return
	case err != nil:
		h.logger.Error("Failed to begin registration", zap.Int64("telegram_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, msgInternalError, nil)
		return
	}

	h.sendMessage(ctx, b, chatID, StepPrompt(session.Step, ""), keyboard.ForStep(session.Step))
}

// HandleCancel обрабатывает /cancel и кнопку "Отмена" - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	if h.stateManager.GetState(user.ID) != state.StateNone {
		h.stateManager.ClearState(user.ID)
		h.sendMessage(ctx, b, chatID, "✅ Операция отменена.", keyboard.BackOnly())
		return
	}

	if h.flow.Cancel(user.ID) {
		h.logger.Info("Registration cancelled", zap.Int64("telegram_id", user.ID))
		h.sendMessage(ctx, b, chatID, msgCancelled, keyboard.Remove())
		return
	}

	h.sendMessage(ctx, b, chatID, "❌ Нет активных операций для отмены.", keyboard.Remove())
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok {
		return
	}

	helpText := "📚 <b>Справка по командам</b>\n\n" +
		"/start - Начать работу с ботом\n" +
		"/register - Зарегистрироваться на проект\n" +
		"/status - Мой статус регистрации\n" +
		"/cancel - Отменить текущее действие\n" +
		"/help - Показать эту справку"

	if h.adminService.IsAdmin(user.ID) {
		helpText += "\n\nДля администраторов:\n/admin - Админ-панель"
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleStatus показывает участнику его данные и статус
func (h *Handlers) HandleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	participant, err := h.roster.Get(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to load participant", zap.Int64("telegram_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, msgInternalError, nil)
		return
	}

	if participant == nil {
		if step := h.flow.Current(user.ID); step.Collecting() {
			h.sendMessage(ctx, b, chatID, fmt.Sprintf(
				"📝 Регистрация в процессе: шаг %d из %d.\n\n%s",
				step.Number(), model.TotalSteps, StepPrompt(step, "")), keyboard.ForStep(step))
			return
		}
		h.sendMessage(ctx, b, chatID, "Ты ещё не зарегистрирован.\n\nНажми /start чтобы начать.", nil)
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.ParticipantCard(participant), nil)
}

// HandleAdmin открывает админ-панель
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := messageSender(update); !ok {
		return
	}
	if !h.requireAdmin(ctx, b, update) {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, admin.PanelText, keyboard.AdminPanel())
}

// IsDialogText отбирает обычный текст (не команды) для HandleTextMessage
func IsDialogText(update *models.Update) bool {
	return update.Message != nil &&
		update.Message.Text != "" &&
		!strings.HasPrefix(update.Message.Text, "/")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := messageSender(update)
	if !ok || !IsDialogText(update) {
		return
	}

	text := strings.TrimSpace(update.Message.Text)

	switch text {
	case model.RegisterToken:
		h.HandleRegister(ctx, b, update)
		return
	case model.CancelToken:
		h.HandleCancel(ctx, b, update)
		return
	}

	currentState := h.stateManager.GetState(user.ID)
	switch currentState {
	case state.StateAdminLimit:
		h.handleLimitInput(ctx, b, update)
		return
	case state.StateAdminDeleteID:
		h.handleDeleteIDInput(ctx, b, update)
		return
	case state.StateAdminPromoteCount:
		h.handlePromoteCountInput(ctx, b, update)
		return
	case state.StateNone:
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(user.ID)
		return
	}

	if h.flow.Current(user.ID).Collecting() {
		h.handleRegistrationStep(ctx, b, update)
		return
	}

	h.logger.Debug("No active dialog, ignoring message", zap.Int64("telegram_id", user.ID))
}
