package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teacherColumns = `id, name, email, disciplina, phone, created_at`

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

// Save upserts by email. An existing teacher keeps its id and creation time
// and takes the new name, disciplina and phone.
func (r *TeacherRepository) Save(ctx context.Context, teacher *model.Teacher) (*model.Teacher, error) {
	query := `
		INSERT INTO teachers (` + teacherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			disciplina = EXCLUDED.disciplina,
			phone = EXCLUDED.phone
		RETURNING ` + teacherColumns

	id := teacher.ID
	if id == "" {
		id = uuid.NewString()
	}

	saved, err := scanTeacher(r.QueryRow(
		ctx, query,
		id,
		teacher.Name,
		strings.ToLower(strings.TrimSpace(teacher.Email)),
		teacher.Disciplina,
		teacher.Phone,
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("save teacher: %w", err)
	}

	return saved, nil
}

// GetByID returns the teacher or nil when it does not exist.
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	teacher, err := scanTeacher(r.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}
	return teacher, nil
}

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Email,
		&teacher.Disciplina,
		&teacher.Phone,
		&teacher.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}
