package model

import "time"

type ParticipantStatus string

const (
	StatusRegistered ParticipantStatus = "registered" // Зарегистрирован (в пределах лимита)
	StatusReserve    ParticipantStatus = "reserve"    // В резерве
	StatusConfirmed  ParticipantStatus = "confirmed"  // Подтвердил участие
	StatusDeclined   ParticipantStatus = "declined"   // Отказался
)

// AllStatuses перечисляет статусы в порядке отображения
var AllStatuses = []ParticipantStatus{
	StatusRegistered,
	StatusReserve,
	StatusConfirmed,
	StatusDeclined,
}

// allowedTransitions - единственные допустимые переходы статуса
var allowedTransitions = map[ParticipantStatus][]ParticipantStatus{
	StatusRegistered: {StatusReserve, StatusConfirmed, StatusDeclined},
	StatusReserve:    {StatusRegistered, StatusConfirmed, StatusDeclined},
	StatusConfirmed:  {StatusDeclined},
	StatusDeclined:   {StatusConfirmed},
}

// Valid проверяет, что статус входит в перечисление
func (s ParticipantStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition сообщает, разрешён ли переход from -> to.
// Переход в тот же статус переходом не считается.
func CanTransition(from, to ParticipantStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AwaitingResponse - участник ещё не ответил на запрос подтверждения
func (s ParticipantStatus) AwaitingResponse() bool {
	return s == StatusRegistered || s == StatusReserve
}

type Participant struct {
	ID               int64             `json:"id"`
	TelegramID       int64             `json:"telegram_id"`
	Username         string            `json:"username"`
	FullName         string            `json:"full_name"`
	StudyGroup       string            `json:"study_group"`
	Course           int               `json:"course"`
	VKLink           string            `json:"vk_link"`
	TGLink           string            `json:"tg_link"`
	Phone            string            `json:"phone"`
	Faculty          string            `json:"faculty"`
	Source           string            `json:"source"`
	Status           ParticipantStatus `json:"status"`
	ConfirmationSent bool              `json:"confirmation_sent"` // Запрос подтверждения уже отправлялся
	CreatedAt        time.Time         `json:"created_at"`
}

// Before задаёт порядок очереди: по времени регистрации, затем по ID
func (p *Participant) Before(other *Participant) bool {
	if !p.CreatedAt.Equal(other.CreatedAt) {
		return p.CreatedAt.Before(other.CreatedAt)
	}
	return p.ID < other.ID
}
