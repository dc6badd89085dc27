package model

// Settings - единственная строка настроек регистрации
type Settings struct {
	RegistrationOpen bool `json:"registration_open"`
	MaxRegistrations int  `json:"max_registrations"` // 0 = без лимита
}

// DefaultSettings возвращает настройки по умолчанию
func DefaultSettings() Settings {
	return Settings{RegistrationOpen: true, MaxRegistrations: 0}
}

// Unlimited сообщает, что лимит мест не задан
func (s Settings) Unlimited() bool {
	return s.MaxRegistrations <= 0
}

// HasFreeSlot решает, попадает ли новый участник в основной список
func (s Settings) HasFreeSlot(registeredCount int) bool {
	return s.Unlimited() || registeredCount < s.MaxRegistrations
}
