package state

import (
	"strconv"
	"sync"
	"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/patrickmn/go-cache"
)

const (
	DefaultTTL      = 24 * time.Hour
	cleanupInterval = 10 * time.Minute

	dialogPrefix  = "dialog:"
	sessionPrefix = "registration:"
)

// Manager хранит диалоги администраторов и сессии регистрации.
// Записи, к которым не обращались дольше ttl, удаляются.
type Manager struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

// NewManager создаёт новый менеджер состояний
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func dialogKey(telegramID int64) string {
	return dialogPrefix + strconv.FormatInt(telegramID, 10)
}

func sessionKey(telegramID int64) string {
	return sessionPrefix + strconv.FormatInt(telegramID, 10)
}

func (sm *Manager) dialog(telegramID int64) (*UserData, bool) {
	v, ok := sm.cache.Get(dialogKey(telegramID))
	if !ok {
		return nil, false
	}
	return v.(*UserData), true
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.dialog(telegramID); exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя; StateNone удаляет диалог
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		sm.cache.Delete(dialogKey(telegramID))
		return
	}

	sm.cache.Set(dialogKey(telegramID), &UserData{State: state}, sm.ttl)
}

// ClearState завершает диалог
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.cache.Delete(dialogKey(telegramID))
}

// LoadSession возвращает копию сессии регистрации
func (sm *Manager) LoadSession(telegramID int64) (*model.RegistrationSession, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v, ok := sm.cache.Get(sessionKey(telegramID))
	if !ok {
		return nil, false
	}
	session := *v.(*model.RegistrationSession)
	return &session, true
}

// SaveSession сохраняет сессию и продлевает её срок жизни
func (sm *Manager) SaveSession(telegramID int64, session *model.RegistrationSession) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	stored := *session
	sm.cache.Set(sessionKey(telegramID), &stored, sm.ttl)
}

// DeleteSession удаляет сессию; возвращает true, если она была
func (sm *Manager) DeleteSession(telegramID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	key := sessionKey(telegramID)
	if _, ok := sm.cache.Get(key); !ok {
		return false
	}
	sm.cache.Delete(key)
	return true
}

// ActiveSessions - число незавершённых регистраций (для логов)
func (sm *Manager) ActiveSessions() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	for key := range sm.cache.Items() {
		if len(key) > len(sessionPrefix) && key[:len(sessionPrefix)] == sessionPrefix {
			count++
		}
	}
	return count
}
