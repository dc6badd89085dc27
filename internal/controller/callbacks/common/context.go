package common

import (
	"context"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlerContext содержит общие данные для обработки callback
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	TelegramID int64
	ChatID     int64
}

// NewHandlerContext создаёт новый контекст обработчика
func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// RequireAdmin проверяет что пользователь входит в список администраторов
func (hc *HandlerContext) RequireAdmin() error {
	if !hc.Handler.AdminService.IsAdmin(hc.TelegramID) {
		return ErrNotAdmin
	}
	return nil
}

// Answer отвечает на callback query
func (hc *HandlerContext) Answer(text string) {
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback query с alert
func (hc *HandlerContext) AnswerAlert(text string) {
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)

	// "message is not modified" не считаем ошибкой
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// EditMessageText редактирует только текст сообщения
func (hc *HandlerContext) EditMessageText(text string) error {
	return hc.EditMessage(text, nil)
}

// EditKeyboard заменяет только клавиатуру сообщения
func (hc *HandlerContext) EditKeyboard(keyboard *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return ErrNoMessage
	}

	_, err := hc.Bot.EditMessageReplyMarkup(hc.Ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		ReplyMarkup: keyboard,
	})
	if IsMessageNotModifiedError(err) {
		return nil
	}

	return err
}

// ClearState очищает состояние пользователя
func (hc *HandlerContext) ClearState() {
	hc.Handler.StateManager.ClearState(hc.TelegramID)
}

// SetState устанавливает состояние пользователя
func (hc *HandlerContext) SetState(state callbacktypes.UserState) {
	hc.Handler.StateManager.SetState(hc.TelegramID, state)
}
