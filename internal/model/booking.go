package model

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed" // Reserved and upcoming
	BookingStatusCompleted BookingStatus = "completed" // Date already passed
	BookingStatusCanceled  BookingStatus = "canceled"
)

// Booking reserves one timetable slot of the lab on one calendar date.
// Date carries the calendar day only; its time of day is always midnight.
type Booking struct {
	ID           string        `json:"id"`
	TeacherID    string        `json:"teacher_id"`
	TeacherName  string        `json:"teacher_name"`
	TeacherEmail string        `json:"teacher_email"`
	Disciplina   string        `json:"disciplina"`
	ClassName    string        `json:"class_name"`
	Activity     string        `json:"activity"`
	NumStudents  int           `json:"num_students"`
	Date         time.Time     `json:"date"`
	StartTime    string        `json:"start_time"` // "HH:MM"
	EndTime      string        `json:"end_time"`   // "HH:MM"
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != BookingStatusCanceled
}

// Clone returns a shallow copy safe to mutate.
func (b *Booking) Clone() *Booking {
	c := *b
	return &c
}
