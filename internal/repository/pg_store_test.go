package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/event_registration_bot/internal/app"
	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository"
)

// setupPgStore подключается к TEST_DB_DSN, применяет миграции и очищает таблицы
func setupPgStore(t *testing.T) *repository.PgStore {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator, err := app.NewMigrator(pool, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	require.NoError(t, migrator.Close())

	_, err = pool.Exec(ctx, `TRUNCATE participants RESTART IDENTITY`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `UPDATE bot_settings SET registration_open = TRUE, max_registrations = 0 WHERE id = 1`)
	require.NoError(t, err)

	return repository.NewPgStore(pool)
}

func newParticipant(telegramID int64, status model.ParticipantStatus) *model.Participant {
	return &model.Participant{
		TelegramID: telegramID,
		FullName:   "Иванов Иван",
		StudyGroup: "ПИ22-1",
		Course:     1,
		VKLink:     "https://vk.com/id1",
		TGLink:     "https://t.me/ivan",
		Phone:      "+79991234567",
		Faculty:    "ФФ",
		Source:     "От Координатора",
		Status:     status,
	}
}

func TestPgStore_CreateAndGet(t *testing.T) {
	store := setupPgStore(t)
	ctx := context.Background()

	p := newParticipant(10, model.StatusRegistered)
	require.NoError(t, store.Update(ctx, func(r repository.Roster) error {
		return r.Create(ctx, p)
	}))
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	err := store.Update(ctx, func(r repository.Roster) error {
		return r.Create(ctx, newParticipant(10, model.StatusRegistered))
	})
	require.ErrorIs(t, err, repository.ErrConflict)

	require.NoError(t, store.View(ctx, func(r repository.Roster) error {
		got, err := r.GetByTelegramID(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, model.StatusRegistered, got.Status)

		missing, err := r.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	}))
}

func TestPgStore_ListFiltersAndOrder(t *testing.T) {
	store := setupPgStore(t)
	ctx := context.Background()

	require.NoError(t, store.Update(ctx, func(r repository.Roster) error {
		for i, status := range []model.ParticipantStatus{
			model.StatusRegistered, model.StatusReserve, model.StatusRegistered, model.StatusDeclined,
		} {
			if err := r.Create(ctx, newParticipant(int64(i+1), status)); err != nil {
				return err
			}
		}
		return r.MarkConfirmationSent(ctx, 1)
	}))

	require.NoError(t, store.View(ctx, func(r repository.Roster) error {
		registered, err := r.List(ctx, repository.Statuses(model.StatusRegistered))
		require.NoError(t, err)
		require.Len(t, registered, 2)
		assert.Equal(t, int64(1), registered[0].TelegramID)
		assert.Equal(t, int64(3), registered[1].TelegramID)

		sent := false
		filter := repository.Statuses(model.StatusRegistered, model.StatusReserve)
		filter.ConfirmationSent = &sent
		pending, err := r.List(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, pending, 2)

		first, err := r.List(ctx, repository.ListFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, int64(1), first[0].TelegramID)

		counts, err := r.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[model.StatusRegistered])
		assert.Equal(t, 1, counts[model.StatusDeclined])
		return nil
	}))
}

func TestPgStore_UpdateRollsBack(t *testing.T) {
	store := setupPgStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Update(ctx, func(r repository.Roster) error {
		if err := r.Create(ctx, newParticipant(1, model.StatusRegistered)); err != nil {
			return err
		}
		if err := r.SetMaxRegistrations(ctx, 5); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.View(ctx, func(r repository.Roster) error {
		p, err := r.GetByTelegramID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, p)

		settings, err := r.GetSettings(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), settings)
		return nil
	}))
}

func TestPgStore_StatusAndDelete(t *testing.T) {
	store := setupPgStore(t)
	ctx := context.Background()

	p := newParticipant(1, model.StatusRegistered)
	require.NoError(t, store.Update(ctx, func(r repository.Roster) error {
		if err := r.Create(ctx, p); err != nil {
			return err
		}
		return r.UpdateStatus(ctx, p.ID, model.StatusConfirmed)
	}))

	require.NoError(t, store.Update(ctx, func(r repository.Roster) error {
		got, err := r.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, got.Status)
		return r.Delete(ctx, p.ID)
	}))

	err := store.Update(ctx, func(r repository.Roster) error {
		return r.Delete(ctx, p.ID)
	})
	require.Error(t, err)
}
