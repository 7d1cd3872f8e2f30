package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// Rule outcomes. All of them are expected, user-facing rejections.
var (
	ErrValidation         = errors.New("invalid booking fields")
	ErrOutOfWindow        = errors.New("date is outside the booking window")
	ErrQuotaExceeded      = errors.New("weekly booking quota reached")
	ErrSlotConflict       = errors.New("time slot already booked")
	ErrCancellationWindow = errors.New("cancellation requires 24 hours notice")
)

// Booking form fields, as reported in FieldError.Field.
const (
	FieldClassName   = "className"
	FieldActivity    = "activity"
	FieldNumStudents = "numStudents"
	FieldDate        = "date"
	FieldStartTime   = "startTime"
)

// FieldError is one failing form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every failing field of a form at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add records a failing field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Has reports whether field failed.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when no field failed.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// ConflictError names the slot that is already taken and by which booking.
type ConflictError struct {
	Date      string // "YYYY-MM-DD"
	StartTime string
	BookingID string
	Teacher   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrSlotConflict, e.Date, e.StartTime)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
