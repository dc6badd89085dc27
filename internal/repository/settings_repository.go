package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository/base"
)

type SettingsRepository struct {
	*base.Repository
}

func NewSettingsRepository(db base.DBTX) *SettingsRepository {
	return &SettingsRepository{Repository: base.NewRepository(db)}
}

// GetSettings читает строку настроек; если её нет - значения по умолчанию
func (r *SettingsRepository) GetSettings(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	err := r.QueryRow(ctx,
		`SELECT registration_open, max_registrations FROM bot_settings WHERE id = 1`,
	).Scan(&s.RegistrationOpen, &s.MaxRegistrations)

	if err != nil {
		if base.IsNotFound(err) {
			return model.DefaultSettings(), nil
		}
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return s, nil
}

// SetRegistrationOpen открывает или закрывает регистрацию
func (r *SettingsRepository) SetRegistrationOpen(ctx context.Context, open bool) error {
	_, err := r.ExecAffected(ctx, `UPDATE bot_settings SET registration_open = $1 WHERE id = 1`, open)
	if err != nil {
		return fmt.Errorf("set registration open: %w", err)
	}
	return nil
}

// SetMaxRegistrations задаёт лимит мест (0 = без лимита)
func (r *SettingsRepository) SetMaxRegistrations(ctx context.Context, limit int) error {
	_, err := r.ExecAffected(ctx, `UPDATE bot_settings SET max_registrations = $1 WHERE id = 1`, limit)
	if err != nil {
		return fmt.Errorf("set max registrations: %w", err)
	}
	return nil
}
