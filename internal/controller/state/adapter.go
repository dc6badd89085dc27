package state

import (
	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
)

// Adapter адаптирует state.Manager к интерфейсу callbacktypes.StateManager
type Adapter struct {
	sm *Manager
}

// NewAdapter создает адаптер для Manager
func NewAdapter(sm *Manager) *Adapter {
	return &Adapter{sm: sm}
}

func (a *Adapter) GetState(telegramID int64) callbacktypes.UserState {
	return callbacktypes.UserState(a.sm.GetState(telegramID))
}

func (a *Adapter) SetState(telegramID int64, state callbacktypes.UserState) {
	a.sm.SetState(telegramID, UserState(state))
}

func (a *Adapter) ClearState(telegramID int64) {
	a.sm.ClearState(telegramID)
}

// Sessions адаптирует Manager к service.SessionStore
type Sessions struct {
	sm *Manager
}

func NewSessions(sm *Manager) *Sessions {
	return &Sessions{sm: sm}
}

func (s *Sessions) Load(telegramID int64) (*model.RegistrationSession, bool) {
	return s.sm.LoadSession(telegramID)
}

func (s *Sessions) Save(telegramID int64, session *model.RegistrationSession) {
	s.sm.SaveSession(telegramID, session)
}

func (s *Sessions) Delete(telegramID int64) bool {
	return s.sm.DeleteSession(telegramID)
}
