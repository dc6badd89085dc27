package state

import (
	"testing"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ callbacktypes.StateManager = (*Adapter)(nil)
	_ service.SessionStore       = (*Sessions)(nil)
)

func TestManager_DialogState(t *testing.T) {
	sm := NewManager(time.Hour)

	assert.Equal(t, StateNone, sm.GetState(1))

	sm.SetState(1, StateAdminLimit)
	assert.Equal(t, StateAdminLimit, sm.GetState(1))
	assert.Equal(t, StateNone, sm.GetState(2))

	sm.SetState(1, StateAdminDeleteID)
	assert.Equal(t, StateAdminDeleteID, sm.GetState(1))

	sm.SetState(1, StateNone)
	assert.Equal(t, StateNone, sm.GetState(1))
}

func TestManager_DialogAndSessionAreIndependent(t *testing.T) {
	sm := NewManager(time.Hour)
	sessions := NewSessions(sm)

	sessions.Save(1, model.NewRegistrationSession("user"))
	sm.SetState(1, StateAdminDeleteID)

	sm.ClearState(1)
	_, ok := sessions.Load(1)
	assert.True(t, ok)

	assert.True(t, sessions.Delete(1))
	assert.False(t, sessions.Delete(1))
	assert.Zero(t, sm.ActiveSessions())
}

func TestManager_SessionCopies(t *testing.T) {
	sm := NewManager(time.Hour)
	session := model.NewRegistrationSession("user")
	sm.SaveSession(1, session)

	session.Step = model.StepPhone
	loaded, ok := sm.LoadSession(1)
	require.True(t, ok)
	assert.Equal(t, model.StepFullName, loaded.Step)

	loaded.Form.FullName = "changed"
	again, _ := sm.LoadSession(1)
	assert.Empty(t, again.Form.FullName)
	assert.Equal(t, 1, sm.ActiveSessions())
}

func TestManager_SessionsExpire(t *testing.T) {
	sm := NewManager(20 * time.Millisecond)
	sm.SaveSession(1, model.NewRegistrationSession(""))
	sm.SetState(1, StateAdminLimit)

	require.Eventually(t, func() bool {
		_, ok := sm.LoadSession(1)
		return !ok && sm.GetState(1) == StateNone
	}, time.Second, 5*time.Millisecond)
}

func TestAdapter_RoundTrip(t *testing.T) {
	sm := NewManager(time.Hour)
	adapter := NewAdapter(sm)

	adapter.SetState(5, callbacktypes.UserState(StateAdminPromoteCount))
	assert.Equal(t, StateAdminPromoteCount, sm.GetState(5))
	assert.Equal(t, callbacktypes.UserState(StateAdminPromoteCount), adapter.GetState(5))

	adapter.ClearState(5)
	assert.Equal(t, StateNone, sm.GetState(5))
}

func TestStatesMatchCallbackStates(t *testing.T) {
	assert.Equal(t, string(callbacktypes.StateNone), string(StateNone))
	assert.Equal(t, string(callbacktypes.StateAdminLimit), string(StateAdminLimit))
	assert.Equal(t, string(callbacktypes.StateAdminDeleteID), string(StateAdminDeleteID))
	assert.Equal(t, string(callbacktypes.StateAdminPromoteCount), string(StateAdminPromoteCount))
}
