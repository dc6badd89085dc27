package keyboard

import (
	"strconv"

	cb "github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// AdminPanel - главное меню администратора
func AdminPanel() *models.InlineKeyboardMarkup {
	return NewBuilder().Column(
		Button("📊 Статистика", cb.AdminStats),
		Button("⚙️ Настройки регистрации", cb.AdminSettings),
		Button("👥 Список участников", cb.AdminUsers),
		Button("📋 Резерв", cb.AdminReserve),
		Button("📢 Рассылка подтверждения", cb.AdminBroadcastMenu),
		Button("📋 Экспорт в Google Sheets", cb.AdminExport),
	).Build()
}

// SettingsPanel показывает текущие значения настроек на кнопках
func SettingsPanel(settings model.Settings) *models.InlineKeyboardMarkup {
	status := "🔴 Закрыта"
	if settings.RegistrationOpen {
		status = "🟢 Открыта"
	}

	limit := "Без лимита"
	if !settings.Unlimited() {
		limit = strconv.Itoa(settings.MaxRegistrations)
	}

	return NewBuilder().Column(
		Button("Регистрация: "+status, cb.AdminToggleRegistration),
		Button("Лимит: "+limit, cb.AdminSetLimit),
		BackButton(),
	).Build()
}

// UsersPanel - выбор категории участников
func UsersPanel() *models.InlineKeyboardMarkup {
	return NewBuilder().Column(
		Button("📋 Все участники", cb.AdminUsersAll),
		Button("✅ Зарегистрированные", cb.AdminUsersRegistered),
		Button("📋 В резерве", cb.AdminUsersReserve),
		Button("✅ Подтвердившие", cb.AdminUsersConfirmed),
		Button("❌ Отказавшиеся", cb.AdminUsersDeclined),
		Button("🗑 Удалить участника", cb.AdminDeleteUser),
		BackButton(),
	).Build()
}

// ReservePanel - очередь резерва с переводом в основной список
func ReservePanel(reserveSize int) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	if reserveSize > 0 {
		b.Row(Button("⬆️ Перевести из резерва", cb.AdminPromote))
	}
	return b.Row(BackButton()).Build()
}

// ConfirmPromotion подтверждает перевод n участников
func ConfirmPromotion(n int) *models.InlineKeyboardMarkup {
	return ConfirmCancel("✅ Подтвердить перевод", cb.AdminConfirmPromote+strconv.Itoa(n))
}

// BroadcastPanel - выбор аудитории рассылки
func BroadcastPanel() *models.InlineKeyboardMarkup {
	return NewBuilder().Column(
		Button("📨 Ещё не получали запрос", cb.AdminBroadcastPreview+"for_confirmation"),
		Button("🔁 Получили, но не ответили", cb.AdminBroadcastPreview+"without_response"),
		Button("📢 Все, кто не ответил", cb.AdminBroadcastPreview+"all"),
		BackButton(),
	).Build()
}

// ConfirmBroadcast подтверждает рассылку выбранного типа
func ConfirmBroadcast(kind string) *models.InlineKeyboardMarkup {
	return ConfirmCancel("✅ Подтвердить рассылку", cb.AdminBroadcastSend+kind)
}

// ExportPanel - выбор типа экспорта; ссылка на таблицу, если она известна
func ExportPanel(sheetURL string) *models.InlineKeyboardMarkup {
	b := NewBuilder().Column(
		Button("📋 Все регистрации", cb.AdminExportAll),
		Button("✅ Подтвердившие/Отказавшиеся", cb.AdminExportConfirmations),
	)
	if sheetURL != "" {
		b.Row(URLButton("🔗 Открыть таблицу", sheetURL))
	}
	return b.Row(BackButton()).Build()
}
