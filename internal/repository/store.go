package repository

import (
	"context"
	"errors"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
)

// ErrConflict - у Telegram-аккаунта уже есть запись участника
var ErrConflict = errors.New("participant already exists")

// ListFilter ограничивает выборку участников. Пустой фильтр - все участники.
type ListFilter struct {
	Statuses         []model.ParticipantStatus
	ConfirmationSent *bool
	Limit            int
}

// Roster - операции над участниками и настройками внутри одной транзакции хранилища
type Roster interface {
	GetSettings(ctx context.Context) (model.Settings, error)
	SetRegistrationOpen(ctx context.Context, open bool) error
	SetMaxRegistrations(ctx context.Context, limit int) error

	// Create заполняет ID и CreatedAt; ErrConflict если telegram_id уже занят
	Create(ctx context.Context, p *model.Participant) error
	// GetByID и GetByTelegramID возвращают nil, nil если записи нет
	GetByID(ctx context.Context, id int64) (*model.Participant, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Participant, error)
	// List упорядочен по created_at, затем по id
	List(ctx context.Context, filter ListFilter) ([]*model.Participant, error)
	CountByStatus(ctx context.Context) (map[model.ParticipantStatus]int, error)
	UpdateStatus(ctx context.Context, id int64, status model.ParticipantStatus) error
	MarkConfirmationSent(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// Store - транзакционное хранилище участников.
// Update выполняется в единой сериализованной критической секции и применяется целиком или никак.
// View видит согласованный снимок данных.
type Store interface {
	Update(ctx context.Context, fn func(r Roster) error) error
	View(ctx context.Context, fn func(r Roster) error) error
}

// Statuses - удобный конструктор фильтра по статусам
func Statuses(statuses ...model.ParticipantStatus) ListFilter {
	return ListFilter{Statuses: statuses}
}
