// Package memory holds in-process record stores used by tests and by the
// bot when STORAGE=memory. Contents are lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository"
	"github.com/google/uuid"
)

type BookingStore struct {
	mu       sync.RWMutex
	bookings []*model.Booking // insertion order
}

func NewBookingStore() *BookingStore {
	return &BookingStore{}
}

func (s *BookingStore) GetAll(_ context.Context) ([]*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b.Clone())
	}
	return out, nil
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.bookings[i].Clone(), nil
	}
	return nil, nil
}

// Save mirrors the Postgres repository: upsert by id, fresh id when empty,
// and at most one active booking per (date, start time).
func (s *BookingStore) Save(_ context.Context, booking *model.Booking) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := booking.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}

	if saved.IsActive() {
		key := saved.Date.Format("2006-01-02")
		for _, b := range s.bookings {
			if b.ID != saved.ID && b.IsActive() && b.StartTime == saved.StartTime && b.Date.Format("2006-01-02") == key {
				return nil, repository.ErrSlotTaken
			}
		}
	}

	if i := s.indexOf(saved.ID); i >= 0 {
		s.bookings[i] = saved
	} else {
		s.bookings = append(s.bookings, saved)
	}

	return saved.Clone(), nil
}

func (s *BookingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
	}
	return nil
}

func (s *BookingStore) CompleteBefore(_ context.Context, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := day.Format("2006-01-02")
	var n int64
	for _, b := range s.bookings {
		if b.Status == model.BookingStatusConfirmed && b.Date.Format("2006-01-02") < cutoff {
			b.Status = model.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (s *BookingStore) indexOf(id string) int {
	for i, b := range s.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}
