package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
		"time"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
	"github.com/Freeeeeet/event_registration_bot/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errSendFailed = errors.New("chat unavailable")

type notification struct {
	telegramID int64
	kind       NotificationKind
}

// testingT покрывает и *testing.T, и *rapid.T
type testingT interface {
	require.TestingT
	Helper()
}

// fakeNotifier запоминает уведомления и отказывает выбранным получателям
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notification
	failed map[int64]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failed: make(map[int64]bool)}
}

func (n *fakeNotifier) Notify(ctx context.Context, telegramID int64, kind NotificationKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failed[telegramID] {
		return errSendFailed
	}
	n.sent = append(n.sent, notification{telegramID: telegramID, kind: kind})
	return nil
}

func (n *fakeNotifier) failFor(telegramID int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed[telegramID] = true
}

func (n *fakeNotifier) received(kind NotificationKind) []int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	var ids []int64
	for _, s := range n.sent {
		if s.kind == kind {
			ids = append(ids, s.telegramID)
		}
	}
	return ids
}

// memSessions - простейшее хранилище сессий для тестов
type memSessions struct {
	mu       sync.Mutex
	sessions map[int64]*model.RegistrationSession
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[int64]*model.RegistrationSession)}
}

func (m *memSessions) Load(telegramID int64) (*model.RegistrationSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[telegramID]
	return s, ok
}

func (m *memSessions) Save(telegramID int64, session *model.RegistrationSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[telegramID] = session
}

func (m *memSessions) Delete(telegramID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[telegramID]
	delete(m.sessions, telegramID)
	return ok
}

// tickingClock выдаёт строго возрастающее время, чтобы порядок регистрации был детерминирован
func tickingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

type testEnv struct {
	store        *memory.Store
	notifier     *fakeNotifier
	roster       *RosterService
	confirmation *ConfirmationService
}

func newTestEnv(t testingT) *testEnv {
	t.Helper()

	store := memory.NewStore(memory.WithClock(tickingClock()))
	notifier := newFakeNotifier()
	logger := zap.NewNop()

	return &testEnv{
		store:        store,
		notifier:     notifier,
		roster:       NewRosterService(store, notifier, time.Second, logger),
		confirmation: NewConfirmationService(store, notifier, time.Second, logger),
	}
}

func testForm(n int) model.RegistrationForm {
	return model.RegistrationForm{
		FullName:   fmt.Sprintf("Иванов Иван %d", n),
		StudyGroup: "ПИ22-1",
		Course:     2,
		VKLink:     "https://vk.com/id1",
		TGLink:     "https://t.me/ivan",
		Phone:      "+79991234567",
		Faculty:    model.Faculties[0],
		Source:     model.Sources[0],
	}
}

// register регистрирует участника с telegram_id = id
func (e *testEnv) register(t testingT, id int64) *model.Participant {
	t.Helper()
	p, err := e.roster.Register(context.Background(), id, "", testForm(int(id)))
	require.NoError(t, err)
	return p
}

func (e *testEnv) statusOf(t testingT, telegramID int64) model.ParticipantStatus {
	t.Helper()
	p, err := e.roster.Get(context.Background(), telegramID)
	require.NoError(t, err)
	require.NotNil(t, p, "participant %d must exist", telegramID)
	return p.Status
}

func telegramIDs(participants []*model.Participant) []int64 {
	ids := make([]int64, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.TelegramID)
	}
	return ids
}

// failingStore отклоняет любые изменения
type failingStore struct {
	repository.Store
}

var errStoreDown = errors.New("connection refused")

func (s failingStore) Update(ctx context.Context, fn func(r repository.Roster) error) error {
	return errStoreDown
}
