package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/event_registration_bot/internal/model"
	"github.com/Freeeeeet/event_registration_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const participantColumns = `id, telegram_id, username, full_name, study_group, course, vk_link, tg_link,
		phone, faculty, source, status, confirmation_sent, created_at`

type ParticipantRepository struct {
	*base.Repository
}

func NewParticipantRepository(db base.DBTX) *ParticipantRepository {
	return &ParticipantRepository{Repository: base.NewRepository(db)}
}

// Create создаёт участника
func (r *ParticipantRepository) Create(ctx context.Context, p *model.Participant) error {
	query := `
		INSERT INTO participants (telegram_id, username, full_name, study_group, course, vk_link, tg_link,
			phone, faculty, source, status, confirmation_sent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		p.TelegramID,
		p.Username,
		p.FullName,
		p.StudyGroup,
		p.Course,
		p.VKLink,
		p.TGLink,
		p.Phone,
		p.Faculty,
		p.Source,
		p.Status,
		p.ConfirmationSent,
	).Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create participant: %w", err)
	}

	return nil
}

// GetByID получает участника по внутреннему ID
func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*model.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	p, err := scanParticipant(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get participant by id: %w", err)
	}

	return p, nil
}

// GetByTelegramID получает участника по Telegram ID
func (r *ParticipantRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE telegram_id = $1`

	p, err := scanParticipant(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Участник не найден
		}
		return nil, fmt.Errorf("get participant by telegram id: %w", err)
	}

	return p, nil
}

// List получает участников по фильтру в порядке регистрации
func (r *ParticipantRepository) List(ctx context.Context, filter ListFilter) ([]*model.Participant, error) {
	var (
		conditions []string
		args       []any
	)

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	if filter.ConfirmationSent != nil {
		args = append(args, *filter.ConfirmationSent)
		conditions = append(conditions, fmt.Sprintf("confirmation_sent = $%d", len(args)))
	}

	query := `SELECT ` + participantColumns + ` FROM participants`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at ASC, id ASC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return participants, nil
}

// CountByStatus считает участников в каждом статусе
func (r *ParticipantRepository) CountByStatus(ctx context.Context) (map[model.ParticipantStatus]int, error) {
	rows, err := r.Query(ctx, `SELECT status, COUNT(*) FROM participants GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.ParticipantStatus]int, len(model.AllStatuses))
	for rows.Next() {
		var (
			status model.ParticipantStatus
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}

// UpdateStatus обновляет статус участника
func (r *ParticipantRepository) UpdateStatus(ctx context.Context, id int64, status model.ParticipantStatus) error {
	affected, err := r.ExecAffected(ctx, `UPDATE participants SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update participant status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("participant %d not found", id)
	}

	return nil
}

// MarkConfirmationSent отмечает, что участнику отправлен запрос подтверждения
func (r *ParticipantRepository) MarkConfirmationSent(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `UPDATE participants SET confirmation_sent = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark confirmation sent: %w", err)
	}
	return nil
}

// Delete удаляет участника
func (r *ParticipantRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("participant %d not found", id)
	}

	return nil
}

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	err := row.Scan(
		&p.ID,
		&p.TelegramID,
		&p.Username,
		&p.FullName,
		&p.StudyGroup,
		&p.Course,
		&p.VKLink,
		&p.TGLink,
		&p.Phone,
		&p.Faculty,
		&p.Source,
		&p.Status,
		&p.ConfirmationSent,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
