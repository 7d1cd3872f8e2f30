package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository keeps the current-teacher pointer of every Telegram user.
type SessionRepository struct {
	*base.Repository
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(pool)}
}

// GetCurrentTeacher returns the teacher signed in for the session, or nil.
func (r *SessionRepository) GetCurrentTeacher(ctx context.Context, sessionID int64) (*model.Teacher, error) {
	query := `
		SELECT t.id, t.name, t.email, t.disciplina, t.phone, t.created_at
		FROM sessions s
		JOIN teachers t ON t.id = s.teacher_id
		WHERE s.telegram_id = $1
	`

	teacher, err := scanTeacher(r.QueryRow(ctx, query, sessionID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current teacher: %w", err)
	}
	return teacher, nil
}

// SetCurrentTeacher points the session at teacherID, replacing any previous one.
func (r *SessionRepository) SetCurrentTeacher(ctx context.Context, sessionID int64, teacherID string) error {
	query := `
		INSERT INTO sessions (telegram_id, teacher_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (telegram_id) DO UPDATE SET
			teacher_id = EXCLUDED.teacher_id,
			updated_at = now()
	`

	if _, err := r.ExecAffected(ctx, query, sessionID, teacherID); err != nil {
		return fmt.Errorf("set current teacher: %w", err)
	}
	return nil
}

// Clear signs the session out. Clearing an empty session is a no-op.
func (r *SessionRepository) Clear(ctx context.Context, sessionID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM sessions WHERE telegram_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
