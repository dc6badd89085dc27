package common

import (
	"errors"

	"github.com/Freeeeeet/event_registration_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotAdmin      = errors.New("user is not an admin")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotAdmin), errors.Is(err, service.ErrUnauthorized):
		return "Нет доступа"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrNotRegistered):
		return "Ты не зарегистрирован!"
	case errors.Is(err, service.ErrNotFound):
		return "❌ Участник с таким ID не найден."
	case errors.Is(err, service.ErrAlreadyRegistered):
		return "Ты уже зарегистрирован!"
	case errors.Is(err, service.ErrRegistrationClosed):
		return "❌ Регистрация закрыта"
	case errors.Is(err, service.ErrInvalidPromotionCount):
		return "❌ Некорректное количество участников"
	case errors.Is(err, service.ErrInvalidTransition):
		return "❌ Это действие сейчас недоступно"
	case errors.Is(err, service.ErrExportDisabled):
		return "❌ Google Sheets не настроен"
	default:
		return "❌ Произошла ошибка"
	}
}
