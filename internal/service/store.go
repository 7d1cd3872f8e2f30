package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
)

// BookingStore persists bookings. Implemented by repository.BookingRepository
// and memory.BookingStore.
type BookingStore interface {
	GetAll(ctx context.Context) ([]*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Save(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	CompleteBefore(ctx context.Context, day time.Time) (int64, error)
}

// TeacherStore persists registered teachers, keyed by email.
type TeacherStore interface {
	Save(ctx context.Context, teacher *model.Teacher) (*model.Teacher, error)
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
}

// SessionStore keeps the signed-in teacher of every chat session.
type SessionStore interface {
	GetCurrentTeacher(ctx context.Context, sessionID int64) (*model.Teacher, error)
	SetCurrentTeacher(ctx context.Context, sessionID int64, teacherID string) error
	Clear(ctx context.Context, sessionID int64) error
}
