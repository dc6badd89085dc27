package keyboard

import (
	cb "github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Start - кнопка начала регистрации
func Start() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().Row(model.RegisterToken).Build()
}

// Cancel - только кнопка отмены
func Cancel() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().Row(model.CancelToken).Build()
}

// Course - курсы 1-4 в один ряд
func Course() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().
		Row(model.Courses...).
		Row(model.CancelToken).
		Build()
}

// Faculty - факультеты по 4 в ряд
func Faculty() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().
		Grid(4, model.Faculties...).
		Row(model.CancelToken).
		Build()
}

// Source - варианты "откуда узнал" по одному в ряд
func Source() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().
		Grid(1, model.Sources...).
		Row(model.CancelToken).
		Build()
}

// Consent - согласие на обработку данных
func Consent() *models.ReplyKeyboardMarkup {
	return NewReplyBuilder().
		Row(model.ConsentToken).
		Row(model.CancelToken).
		Build()
}

// Remove убирает reply-клавиатуру
func Remove() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}

// ForStep возвращает клавиатуру, подходящую для шага регистрации
func ForStep(step model.RegistrationStep) models.ReplyMarkup {
	switch step {
	case model.StepCourse:
		return Course()
	case model.StepFaculty:
		return Faculty()
	case model.StepSource:
		return Source()
	case model.StepConsent:
		return Consent()
	default:
		return Cancel()
	}
}

// Confirmation - inline-кнопки ответа на запрос присутствия
func Confirmation() *models.InlineKeyboardMarkup {
	return NewBuilder().Column(
		Button("✅ Да, приду", cb.ConfirmYes),
		Button("❌ Нет, не смогу", cb.ConfirmNo),
	).Build()
}
