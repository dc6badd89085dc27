package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"go.uber.org/zap"
)

// SessionStore хранит незавершённые сессии регистрации по Telegram ID
type SessionStore interface {
	Load(telegramID int64) (*model.RegistrationSession, bool)
	Save(telegramID int64, session *model.RegistrationSession)
	Delete(telegramID int64) bool
}

// FlowOutcome - результат обработки очередного сообщения
type FlowOutcome int

const (
	OutcomeAdvanced  FlowOutcome = iota // Поле принято, ждём следующее
	OutcomeCancelled                    // Пользователь отменил регистрацию
	OutcomeCommitted                    // Анкета сохранена
)

// FlowResult описывает, что произошло после ввода пользователя
type FlowResult struct {
	Outcome     FlowOutcome
	Step        model.RegistrationStep
	Participant *model.Participant // заполнен только для OutcomeCommitted
}

// RegistrationFlow ведёт пошаговый диалог регистрации
type RegistrationFlow struct {
	roster   *RosterService
	sessions SessionStore
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[int64]*accountLock
}

// accountLock сериализует ввод одного пользователя; запись живёт, пока её кто-то держит или ждёт
type accountLock struct {
	mu   sync.Mutex
	refs int
}

func NewRegistrationFlow(roster *RosterService, sessions SessionStore, logger *zap.Logger) *RegistrationFlow {
	return &RegistrationFlow{
		roster:   roster,
		sessions: sessions,
		logger:   logger,
		locks:    make(map[int64]*accountLock),
	}
}

func (f *RegistrationFlow) lock(telegramID int64) func() {
	f.mu.Lock()
	l, ok := f.locks[telegramID]
	if !ok {
		l = &accountLock{}
		f.locks[telegramID] = l
	}
	l.refs++
	f.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		f.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(f.locks, telegramID)
		}
		f.mu.Unlock()
	}
}

// heldLocks - сколько пользователей сейчас держат или ждут блокировку
func (f *RegistrationFlow) heldLocks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.locks)
}

// Begin начинает регистрацию. Предыдущая незавершённая сессия заменяется.
func (f *RegistrationFlow) Begin(ctx context.Context, telegramID int64, username string) (*model.RegistrationSession, error) {
	unlock := f.lock(telegramID)
	defer unlock()

	settings, err := f.roster.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	existing, err := f.roster.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	session := model.NewRegistrationSession(username)
	f.sessions.Save(telegramID, session)

	f.logger.Info("Registration started",
		zap.Int64("telegram_id", telegramID),
		zap.String("session_id", session.ID.String()))

	return session, nil
}

// Handle обрабатывает текст пользователя на текущем шаге.
// Неверный ввод возвращает *ValidationError, шаг при этом не меняется.
func (f *RegistrationFlow) Handle(ctx context.Context, telegramID int64, text string) (*FlowResult, error) {
	unlock := f.lock(telegramID)
	defer unlock()

	session, ok := f.sessions.Load(telegramID)
	if !ok || !session.Step.Collecting() {
		return nil, ErrNoSession
	}

	if strings.TrimSpace(text) == model.CancelToken {
		f.sessions.Delete(telegramID)
		f.logger.Info("Registration cancelled",
			zap.Int64("telegram_id", telegramID),
			zap.String("session_id", session.ID.String()),
			zap.Stringer("step", session.Step))
		return &FlowResult{Outcome: OutcomeCancelled, Step: model.StepIdle}, nil
	}

	// Работаем с копией: при ошибке сохранённая сессия не меняется
	next := *session
	if err := applyField(&next, text); err != nil {
		return nil, err
	}

	if next.Step != model.StepConsent {
		next.Step = next.Step.Next()
		f.sessions.Save(telegramID, &next)
		return &FlowResult{Outcome: OutcomeAdvanced, Step: next.Step}, nil
	}

	participant, err := f.roster.Register(ctx, telegramID, next.Username, next.Form)
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			f.sessions.Delete(telegramID)
			return nil, err
		}
		f.logger.Error("Failed to commit registration",
			zap.Int64("telegram_id", telegramID),
			zap.String("session_id", session.ID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("commit registration: %w", err)
	}

	f.sessions.Delete(telegramID)
	return &FlowResult{
		Outcome:     OutcomeCommitted,
		Step:        model.StepCommitted,
		Participant: participant,
	}, nil
}

// Cancel сбрасывает сессию; возвращает true, если она была
func (f *RegistrationFlow) Cancel(telegramID int64) bool {
	unlock := f.lock(telegramID)
	defer unlock()

	return f.sessions.Delete(telegramID)
}

// Current возвращает текущий шаг пользователя (StepIdle, если сессии нет)
func (f *RegistrationFlow) Current(telegramID int64) model.RegistrationStep {
	session, ok := f.sessions.Load(telegramID)
	if !ok {
		return model.StepIdle
	}
	return session.Step
}

// applyField валидирует ввод для текущего шага и записывает значение в анкету
func applyField(session *model.RegistrationSession, text string) error {
	form := &session.Form

	var err error
	switch session.Step {
	case model.StepFullName:
		form.FullName, err = ValidateFullName(text)
	case model.StepStudyGroup:
		form.StudyGroup, err = ValidateStudyGroup(text)
	case model.StepCourse:
		form.Course, err = ValidateCourse(text)
	case model.StepVKLink:
		form.VKLink, err = ValidateVKLink(text)
	case model.StepTGLink:
		form.TGLink, err = ValidateTGLink(text)
	case model.StepPhone:
		form.Phone, err = ValidatePhone(text)
	case model.StepFaculty:
		form.Faculty, err = ValidateFaculty(text)
	case model.StepSource:
		form.Source, err = ValidateSource(text)
	case model.StepConsent:
		err = ValidateConsent(text)
	default:
		return ErrNoSession
	}
	return err
}
