package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/google/uuid"
)

type TeacherStore struct {
	mu       sync.RWMutex
	teachers map[string]*model.Teacher // id -> teacher
}

func NewTeacherStore() *TeacherStore {
	return &TeacherStore{teachers: make(map[string]*model.Teacher)}
}

// Save upserts by email, keeping the id and creation time of an existing teacher.
func (s *TeacherStore) Save(_ context.Context, teacher *model.Teacher) (*model.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(teacher.Email))
	for _, t := range s.teachers {
		if t.Email == email {
			t.Name = teacher.Name
			t.Disciplina = teacher.Disciplina
			t.Phone = teacher.Phone
			out := *t
			return &out, nil
		}
	}

	saved := *teacher
	saved.Email = email
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.CreatedAt = time.Now()
	s.teachers[saved.ID] = &saved

	out := saved
	return &out, nil
}

func (s *TeacherStore) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.teachers[id]; ok {
		out := *t
		return &out, nil
	}
	return nil, nil
}
