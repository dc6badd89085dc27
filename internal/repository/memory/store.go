// Package memory - хранилище участников в памяти процесса.
// Используется для локального запуска (STORAGE_DRIVER=memory) и в тестах.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
)

// ErrReadOnly - попытка изменения внутри View
var ErrReadOnly = errors.New("read-only transaction")

type state struct {
	settings     model.Settings
	participants map[int64]*model.Participant
	nextID       int64
}

func (s *state) clone() *state {
	c := &state{
		settings:     s.settings,
		participants: make(map[int64]*model.Participant, len(s.participants)),
		nextID:       s.nextID,
	}
	for id, p := range s.participants {
		cp := *p
		c.participants[id] = &cp
	}
	return c
}

// Store реализует repository.Store
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

// Option настраивает Store
type Option func(*Store)

// WithClock подменяет источник времени для created_at
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state: &state{
			settings:     model.DefaultSettings(),
			participants: make(map[int64]*model.Participant),
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update применяет fn к копии состояния и публикует её только при успехе
func (s *Store) Update(ctx context.Context, fn func(r repository.Roster) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	if err := fn(&roster{state: draft, now: s.now}); err != nil {
		return err
	}
	s.state = draft
	return nil
}

// View выполняет fn над неизменяемым снимком
func (s *Store) View(ctx context.Context, fn func(r repository.Roster) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(&roster{state: snapshot, now: s.now, readOnly: true})
}

type roster struct {
	state    *state
	now      func() time.Time
	readOnly bool
}

func (r *roster) writable() error {
	if r.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (r *roster) GetSettings(ctx context.Context) (model.Settings, error) {
	return r.state.settings, nil
}

func (r *roster) SetRegistrationOpen(ctx context.Context, open bool) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.state.settings.RegistrationOpen = open
	return nil
}

func (r *roster) SetMaxRegistrations(ctx context.Context, limit int) error {
	if err := r.writable(); err != nil {
		return err
	}
	r.state.settings.MaxRegistrations = limit
	return nil
}

func (r *roster) Create(ctx context.Context, p *model.Participant) error {
	if err := r.writable(); err != nil {
		return err
	}
	for _, existing := range r.state.participants {
		if existing.TelegramID == p.TelegramID {
			return repository.ErrConflict
		}
	}

	r.state.nextID++
	p.ID = r.state.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.now()
	}

	stored := *p
	r.state.participants[p.ID] = &stored
	return nil
}

func (r *roster) GetByID(ctx context.Context, id int64) (*model.Participant, error) {
	p, ok := r.state.participants[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *roster) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Participant, error) {
	for _, p := range r.state.participants {
		if p.TelegramID == telegramID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *roster) List(ctx context.Context, filter repository.ListFilter) ([]*model.Participant, error) {
	out := make([]*model.Participant, 0, len(r.state.participants))
	for _, p := range r.state.participants {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, p.Status) {
			continue
		}
		if filter.ConfirmationSent != nil && p.ConfirmationSent != *filter.ConfirmationSent {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}

	slices.SortFunc(out, func(a, b *model.Participant) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *roster) CountByStatus(ctx context.Context) (map[model.ParticipantStatus]int, error) {
	counts := make(map[model.ParticipantStatus]int, len(model.AllStatuses))
	for _, p := range r.state.participants {
		counts[p.Status]++
	}
	return counts, nil
}

func (r *roster) UpdateStatus(ctx context.Context, id int64, status model.ParticipantStatus) error {
	if err := r.writable(); err != nil {
		return err
	}
	p, ok := r.state.participants[id]
	if !ok {
		return fmt.Errorf("participant %d not found", id)
	}
	p.Status = status
	return nil
}

func (r *roster) MarkConfirmationSent(ctx context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if p, ok := r.state.participants[id]; ok {
		p.ConfirmationSent = true
	}
	return nil
}

func (r *roster) Delete(ctx context.Context, id int64) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, ok := r.state.participants[id]; !ok {
		return fmt.Errorf("participant %d not found", id)
	}
	delete(r.state.participants, id)
	return nil
}
