package memory

import (
	"context"
	"sync"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
)

type SessionStore struct {
	mu       sync.RWMutex
	teachers *TeacherStore
	current  map[int64]string // session -> teacher id
}

func NewSessionStore(teachers *TeacherStore) *SessionStore {
	return &SessionStore{
		teachers: teachers,
		current:  make(map[int64]string),
	}
}

func (s *SessionStore) GetCurrentTeacher(ctx context.Context, sessionID int64) (*model.Teacher, error) {
	s.mu.RLock()
	id, ok := s.current[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return s.teachers.GetByID(ctx, id)
}

func (s *SessionStore) SetCurrentTeacher(_ context.Context, sessionID int64, teacherID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current[sessionID] = teacherID
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.current, sessionID)
	return nil
}
