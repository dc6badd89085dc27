package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore - Store поверх PostgreSQL
type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// pgRoster собирает репозитории, привязанные к одной транзакции
type pgRoster struct {
	*ParticipantRepository
	*SettingsRepository
}

func newPgRoster(db base.DBTX) *pgRoster {
	return &pgRoster{
		ParticipantRepository: NewParticipantRepository(db),
		SettingsRepository:    NewSettingsRepository(db),
	}
}

// Update выполняет fn в транзакции, удерживая блокировку строки настроек.
// Все изменения участников сериализуются через эту блокировку.
func (s *PgStore) Update(ctx context.Context, fn func(r Roster) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT id FROM bot_settings WHERE id = 1 FOR UPDATE`); err != nil {
		return fmt.Errorf("lock roster: %w", err)
	}

	if err := fn(newPgRoster(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// View выполняет fn в read-only транзакции с единым снимком
func (s *PgStore) View(ctx context.Context, fn func(r Roster) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newPgRoster(tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
