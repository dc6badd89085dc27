package keyboard

import (
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot/models"
)

// BackButton создаёт кнопку "Назад" в админ-панель
func BackButton() models.InlineKeyboardButton {
	return Button("⬅️ Назад", callbacktypes.AdminBack)
}

// CancelButton создаёт кнопку "Отмена" для диалогов админа
func CancelButton() models.InlineKeyboardButton {
	return Button("❌ Отмена", callbacktypes.AdminCancel)
}

// BackOnly - клавиатура из одной кнопки "Назад"
func BackOnly() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(BackButton()).Build()
}

// CancelOnly - клавиатура из одной кнопки "Отмена"
func CancelOnly() *models.InlineKeyboardMarkup {
	return NewBuilder().Row(CancelButton()).Build()
}

// ConfirmCancel - подтверждение действия с возвратом в панель
func ConfirmCancel(text, confirmCallback string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button(text, confirmCallback)).
		Row(Button("❌ Отмена", callbacktypes.AdminBack)).
		Build()
}
