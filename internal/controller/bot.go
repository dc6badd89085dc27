package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/handlers"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/state"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services - сервисы, которыми пользуется бот
type Services struct {
	Roster       *service.RosterService
	Confirmation *service.ConfirmationService
	Admin        *service.AdminService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *BotController {
	// Диалоги админов и сессии регистрации живут в одном менеджере
	stateManager := state.NewManager(sessionTTL)

	flow := service.NewRegistrationFlow(services.Roster, state.NewSessions(stateManager), logger)

	cmdHandlers := handlers.NewHandlers(
		flow,
		services.Roster,
		services.Admin,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Admin,
		services.Confirmation,
		state.NewAdapter(stateManager),
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, c.handlers.HandleStatus)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)

	// Обычный текст (ответы в диалогах и кнопки reply-клавиатур); команды сюда не попадают
	c.bot.RegisterHandlerMatchFunc(handlers.IsDialogText, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "register", Description: "📝 Зарегистрироваться"},
		{Command: "status", Description: "📊 Мой статус"},
		{Command: "cancel", Description: "❌ Отменить действие"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	c.logger.Info("Bot stopped", zap.Int("unfinished_registrations", c.stateManager.ActiveSessions()))
	return nil
}
