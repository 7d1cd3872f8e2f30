package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"go.uber.org/zap"
)

// Registration form fields.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldDisciplina = "disciplina"
)

// Registration is what a teacher fills in on first contact.
type Registration struct {
	Name       string
	Email      string
	Disciplina string
	Phone      string
}

type TeacherService struct {
	teachers TeacherStore
	sessions SessionStore
	logger   *zap.Logger
}

func NewTeacherService(teachers TeacherStore, sessions SessionStore, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teachers: teachers,
		sessions: sessions,
		logger:   logger,
	}
}

// Register validates the form, upserts the teacher by email and makes it the
// session's current teacher.
func (s *TeacherService) Register(ctx context.Context, sessionID int64, reg Registration) (*model.Teacher, error) {
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}

	teacher, err := s.teachers.Save(ctx, &model.Teacher{
		Name:       strings.TrimSpace(reg.Name),
		Email:      strings.ToLower(strings.TrimSpace(reg.Email)),
		Disciplina: strings.TrimSpace(reg.Disciplina),
		Phone:      strings.TrimSpace(reg.Phone),
	})
	if err != nil {
		return nil, storeErr("save teacher", err)
	}

	if err := s.sessions.SetCurrentTeacher(ctx, sessionID, teacher.ID); err != nil {
		return nil, storeErr("set current teacher", err)
	}

	s.logger.Info("Teacher registered",
		zap.String("teacher_id", teacher.ID),
		zap.String("email", teacher.Email),
		zap.Int64("session_id", sessionID),
	)

	return teacher, nil
}

// CurrentTeacher returns the session's teacher, or nil when nobody signed in.
func (s *TeacherService) CurrentTeacher(ctx context.Context, sessionID int64) (*model.Teacher, error) {
	teacher, err := s.sessions.GetCurrentTeacher(ctx, sessionID)
	if err != nil {
		return nil, storeErr("get current teacher", err)
	}
	return teacher, nil
}

// RequireTeacher is CurrentTeacher that fails with ErrNotRegistered.
func (s *TeacherService) RequireTeacher(ctx context.Context, sessionID int64) (*model.Teacher, error) {
	teacher, err := s.CurrentTeacher(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, ErrNotRegistered
	}
	return teacher, nil
}

// SignOut forgets the session's current teacher. The teacher record stays.
func (s *TeacherService) SignOut(ctx context.Context, sessionID int64) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return storeErr("clear session", err)
	}

	s.logger.Info("Teacher signed out", zap.Int64("session_id", sessionID))
	return nil
}

// ValidateRegistration reports every invalid field at once.
func ValidateRegistration(reg Registration) error {
	verr := &schedule.ValidationError{}

	if strings.TrimSpace(reg.Name) == "" {
		verr.Add(FieldName, "nome é obrigatório")
	}
	if err := ValidateEmail(reg.Email); err != nil {
		verr.Add(FieldEmail, err.Error())
	}
	if strings.TrimSpace(reg.Disciplina) == "" {
		verr.Add(FieldDisciplina, "disciplina é obrigatória")
	}

	return verr.Err()
}

// ValidateEmail accepts a bare address with a dotted domain.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("e-mail é obrigatório")
	}
	addr, err := mail.ParseAddress(email)
	// ParseAddress also accepts "Name <addr>"; only a bare address is valid here.
	if err != nil || addr.Address != email || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		return errors.New("e-mail inválido")
	}
	return nil
}
