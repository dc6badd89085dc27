package formatting

import "github.com/Freeeeeet/event_registration_bot/internal/model"

// StatusDisplay представляет отображение статуса участника
type StatusDisplay struct {
	Emoji string
	Text  string
}

// String возвращает статус в виде "✅ Зарегистрирован"
func (d StatusDisplay) String() string {
	return d.Emoji + " " + d.Text
}

// GetStatusDisplay возвращает emoji и текст для статуса участника
func GetStatusDisplay(status model.ParticipantStatus) StatusDisplay {
	displays := map[model.ParticipantStatus]StatusDisplay{
		model.StatusRegistered: {"✅", "Зарегистрирован"},
		model.StatusReserve:    {"📋", "В резерве"},
		model.StatusConfirmed:  {"🎉", "Подтвердил участие"},
		model.StatusDeclined:   {"❌", "Отказался"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// RegistrationDisplay - отображение флага открытой регистрации
func RegistrationDisplay(open bool) string {
	if open {
		return "🟢 Открыта"
	}
	return "🔴 Закрыта"
}

// LimitDisplay - отображение лимита мест
func LimitDisplay(settings model.Settings) string {
	if settings.Unlimited() {
		return "Без лимита"
	}
	return itoa(settings.MaxRegistrations)
}
