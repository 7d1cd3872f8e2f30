package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
)

const (
	MinStudents = 1
	MaxStudents = 20
	// WeeklyQuota is the maximum number of bookings a teacher may hold in the
	// current calendar week.
	WeeklyQuota = 2
)

// Candidate is a proposed booking as collected from the booking form.
type Candidate struct {
	ClassName   string
	Activity    string
	NumStudents int
	Date        time.Time
	StartTime   string
}

// Engine decides whether bookings may be made or cancelled. It is a pure
// function of its inputs and the calendar's clock.
type Engine struct {
	cal *Calendar
}

func NewEngine(cal *Calendar) *Engine {
	return &Engine{cal: cal}
}

// Calendar returns the calendar rules are evaluated against.
func (e *Engine) Calendar() *Calendar {
	return e.cal
}

// Validate checks a candidate against the existing bookings. Checks run in a
// fixed order and stop at the first failing one: fields, booking window
// (new bookings and date changes), weekly quota (new bookings only), slot
// conflict. editingID is empty for new bookings.
func (e *Engine) Validate(c Candidate, existing []*model.Booking, teacherID, editingID string) error {
	if err := validateFields(c); err != nil {
		return err
	}

	if e.windowApplies(c, existing, editingID) && !e.cal.IsWithinBookingWindow(c.Date) {
		return fmt.Errorf("%w: %s", ErrOutOfWindow, FormatKey(e.cal.Date(c.Date)))
	}

	// The quota always looks at the week containing today, not the week of
	// the candidate date.
	if editingID == "" {
		if n := e.cal.CountBookingsInCurrentWeek(teacherID, active(existing)); n >= WeeklyQuota {
			return fmt.Errorf("%w: %d of %d", ErrQuotaExceeded, n, WeeklyQuota)
		}
	}

	if conflict := e.FindConflict(c.Date, c.StartTime, existing, editingID); conflict != nil {
		return &ConflictError{
			Date:      FormatKey(e.cal.Date(c.Date)),
			StartTime: c.StartTime,
			BookingID: conflict.ID,
			Teacher:   conflict.TeacherName,
		}
	}

	return nil
}

// windowApplies is false only for edits that keep the booking's original date.
func (e *Engine) windowApplies(c Candidate, existing []*model.Booking, editingID string) bool {
	if editingID == "" {
		return true
	}
	for _, b := range existing {
		if b.ID == editingID {
			return FormatKey(e.cal.Date(b.Date)) != FormatKey(e.cal.Date(c.Date))
		}
	}
	return true
}

// FindConflict returns the active booking occupying date/startTime, ignoring
// the booking with id excludeID.
func (e *Engine) FindConflict(date time.Time, startTime string, bookings []*model.Booking, excludeID string) *model.Booking {
	key := FormatKey(e.cal.Date(date))
	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.StartTime == startTime && FormatKey(e.cal.Date(b.Date)) == key {
			return b
		}
	}
	return nil
}

// IsSlotAvailable reports whether no active booking holds date/startTime.
func (e *Engine) IsSlotAvailable(date time.Time, startTime string, bookings []*model.Booking) bool {
	return e.FindConflict(date, startTime, bookings, "") == nil
}

// CheckCancellation allows cancelling only with at least 24 hours left before
// the booked day begins. The slot's start time is not taken into account.
func (e *Engine) CheckCancellation(b *model.Booking) error {
	day := e.cal.Date(b.Date)
	if !e.cal.CanCancel(day) {
		return fmt.Errorf("%w: %.1fh left", ErrCancellationWindow, e.cal.HoursUntil(day))
	}
	return nil
}

func validateFields(c Candidate) error {
	verr := &ValidationError{}

	if strings.TrimSpace(c.ClassName) == "" {
		verr.Add(FieldClassName, "turma é obrigatória")
	}
	if strings.TrimSpace(c.Activity) == "" {
		verr.Add(FieldActivity, "atividade é obrigatória")
	}
	switch {
	case c.NumStudents < MinStudents:
		verr.Add(FieldNumStudents, fmt.Sprintf("deve haver pelo menos %d aluno", MinStudents))
	case c.NumStudents > MaxStudents:
		verr.Add(FieldNumStudents, fmt.Sprintf("máximo de %d alunos permitido", MaxStudents))
	}
	if c.Date.IsZero() {
		verr.Add(FieldDate, "data é obrigatória")
	}
	if c.StartTime == "" {
		verr.Add(FieldStartTime, "horário de início é obrigatório")
	} else if _, ok := FindSlot(c.StartTime); !ok {
		verr.Add(FieldStartTime, "horário inexistente na grade")
	}

	return verr.Err()
}

func active(bookings []*model.Booking) []*model.Booking {
	out := make([]*model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}
