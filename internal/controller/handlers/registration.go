package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// handleRegistrationStep передаёт ответ в диалог регистрации и задаёт следующий вопрос
func (h *Handlers) handleRegistrationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	step := h.flow.Current(telegramID)

	result, err := h.flow.Handle(ctx, telegramID, update.Message.Text)
	if err != nil {
		h.handleRegistrationError(ctx, b, chatID, step, err)
		return
	}

	switch result.Outcome {
	case service.OutcomeCancelled:
		h.sendMessage(ctx, b, chatID, msgCancelled, keyboard.Remove())
	case service.OutcomeAdvanced:
		group := ""
		if result.Step == model.StepCourse {
			group = strings.ToUpper(strings.TrimSpace(update.Message.Text))
		}
		h.sendMessage(ctx, b, chatID, StepPrompt(result.Step, group), keyboard.ForStep(result.Step))
	case service.OutcomeCommitted:
		h.logger.Info("Participant registered",
			zap.Int64("telegram_id", telegramID),
			zap.Int64("participant_id", result.Participant.ID),
			zap.String("status", string(result.Participant.Status)))
		h.sendMessage(ctx, b, chatID, RegistrationSuccess(result.Participant), keyboard.Remove())
	}
}

func (h *Handlers) handleRegistrationError(ctx context.Context, b *bot.Bot, chatID int64, step model.RegistrationStep, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		// Шаг не меняется, повторяем клавиатуру текущего шага
		h.sendError(ctx, b, chatID, ValidationMessage(verr), keyboard.ForStep(step))
	case errors.Is(err, service.ErrAlreadyRegistered):
		h.sendMessage(ctx, b, chatID, msgAlreadyRegistered, keyboard.Remove())
	case errors.Is(err, service.ErrNoSession):
		h.logger.Debug("Registration session vanished", zap.Int64("chat_id", chatID))
	default:
		h.logger.Error("Registration step failed",
			zap.Int64("chat_id", chatID),
			zap.Stringer("step", step),
			zap.Error(err))
		h.sendError(ctx, b, chatID, msgRegistrationFailed, keyboard.ForStep(step))
	}
}

// RegistrationSuccess - итоговое сообщение после сохранения анкеты
func RegistrationSuccess(p *model.Participant) string {
	extra := ""
	if p.Status == model.StatusReserve {
		extra = msgReserveNotice
	}
	return "🎉 <b>Ты успешно зарегистрировался!</b>" + extra + "\n\n" + formatting.ParticipantCard(p)
}
