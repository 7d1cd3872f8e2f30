package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	bookingColumns = `id, teacher_id, teacher_name, teacher_email, disciplina, class_name, activity,
		num_students, date, start_time, end_time, status, created_at`

	// bookingsSlotIndex is the partial unique index over active (date, start_time).
	bookingsSlotIndex = "bookings_active_slot_idx"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// GetAll returns every stored booking. Order is not guaranteed.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*model.Booking, error) {
	rows, err := r.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// GetByID returns the booking or nil when it does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	row := r.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	booking, err := scanBooking(row)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// Save replaces the booking with the same id wholesale, or inserts it under a
// fresh id when ID is empty. Saving the same record twice stores it once.
func (r *BookingRepository) Save(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	saved := booking.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			teacher_id = EXCLUDED.teacher_id,
			teacher_name = EXCLUDED.teacher_name,
			teacher_email = EXCLUDED.teacher_email,
			disciplina = EXCLUDED.disciplina,
			class_name = EXCLUDED.class_name,
			activity = EXCLUDED.activity,
			num_students = EXCLUDED.num_students,
			date = EXCLUDED.date,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at
	`

	_, err := r.Pool().Exec(
		ctx, query,
		saved.ID,
		saved.TeacherID,
		saved.TeacherName,
		saved.TeacherEmail,
		saved.Disciplina,
		saved.ClassName,
		saved.Activity,
		saved.NumStudents,
		saved.Date.Format("2006-01-02"),
		saved.StartTime,
		saved.EndTime,
		saved.Status,
		saved.CreatedAt,
	)
	if err != nil {
		if base.IsUniqueViolation(err, bookingsSlotIndex) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("save booking: %w", err)
	}

	return saved, nil
}

// Delete removes the booking. Deleting a missing id is a no-op.
func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// CompleteBefore marks confirmed bookings dated before day as completed.
func (r *BookingRepository) CompleteBefore(ctx context.Context, day time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE status = $2 AND date < $3::date
	`

	n, err := r.ExecAffected(ctx, query, model.BookingStatusCompleted, model.BookingStatusConfirmed, day.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	return n, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.TeacherName,
		&booking.TeacherEmail,
		&booking.Disciplina,
		&booking.ClassName,
		&booking.Activity,
		&booking.NumStudents,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
