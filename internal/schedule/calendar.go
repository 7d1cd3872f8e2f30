package schedule

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
)

const (
	// BookingWindowDays is how far ahead, in calendar days, a booking may be made.
	BookingWindowDays = 7
	// CancellationNotice is the minimum lead time required to cancel.
	CancellationNotice = 24 * time.Hour

	keyLayout     = "2006-01-02"
	displayLayout = "02/01/2006"
)

// Clock abstracts the wall clock so date rules can be tested.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Calendar answers date questions relative to "today" in the school's time zone.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

// NewCalendar creates a calendar. A nil location means UTC.
func NewCalendar(clock Clock, loc *time.Location) *Calendar {
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc}
}

// Location returns the school's time zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the school's time zone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the start of the current day.
func (c *Calendar) Today() time.Time {
	return c.Date(c.Now())
}

// Date reinterprets the year, month and day of t as midnight in the school's
// time zone. Calendar dates coming from storage carry their day in these
// fields regardless of the location they were decoded in.
func (c *Calendar) Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// ParseKey parses a "YYYY-MM-DD" key into a calendar date.
func (c *Calendar) ParseKey(key string) (time.Time, error) {
	d, err := time.ParseInLocation(keyLayout, key, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", key, err)
	}
	return d, nil
}

// SlotStart returns the instant a slot starting at startTime ("HH:MM") begins on date.
func (c *Calendar) SlotStart(date time.Time, startTime string) (time.Time, error) {
	var h, m int
	if _, err := fmt.Sscanf(startTime, "%d:%d", &h, &m); err != nil {
		return time.Time{}, fmt.Errorf("parse start time %q: %w", startTime, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("parse start time %q: out of range", startTime)
	}
	d := c.Date(date)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, c.loc), nil
}

// IsPastDate reports whether the whole day of date lies before today.
// Today itself is never past.
func (c *Calendar) IsPastDate(date time.Time) bool {
	endOfDay := c.Date(date).AddDate(0, 0, 1).Add(-time.Millisecond)
	return endOfDay.Before(c.Today())
}

// IsWithinBookingWindow reports whether date falls in [today, today+7 days].
func (c *Calendar) IsWithinBookingWindow(date time.Time) bool {
	today := c.Today()
	d := c.Date(date)
	last := today.AddDate(0, 0, BookingWindowDays)
	return !d.Before(today) && !d.After(last)
}

// WindowDays lists every date of the booking window, today first.
func (c *Calendar) WindowDays() []time.Time {
	today := c.Today()
	days := make([]time.Time, 0, BookingWindowDays+1)
	for i := 0; i <= BookingWindowDays; i++ {
		days = append(days, today.AddDate(0, 0, i))
	}
	return days
}

// HoursUntil returns the fractional hours from now until t; negative when t is past.
func (c *Calendar) HoursUntil(t time.Time) float64 {
	return t.Sub(c.clock.Now()).Hours()
}

// CanCancel reports whether t is at least CancellationNotice away.
func (c *Calendar) CanCancel(t time.Time) bool {
	return c.HoursUntil(t) >= CancellationNotice.Hours()
}

// CurrentWeek returns the Sunday at or before today (00:00) and the following
// Saturday (23:59:59.999).
func (c *Calendar) CurrentWeek() (start, end time.Time) {
	today := c.Today()
	start = today.AddDate(0, 0, -int(today.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// CountBookingsInCurrentWeek counts the teacher's bookings dated inside the
// current week, bounds inclusive.
func (c *Calendar) CountBookingsInCurrentWeek(teacherID string, bookings []*model.Booking) int {
	start, end := c.CurrentWeek()
	count := 0
	for _, b := range bookings {
		if b.TeacherID != teacherID {
			continue
		}
		d := c.Date(b.Date)
		if !d.Before(start) && !d.After(end) {
			count++
		}
	}
	return count
}

// FormatDisplay formats a date as "DD/MM/YYYY".
func FormatDisplay(date time.Time) string {
	return date.Format(displayLayout)
}

// FormatKey formats a date as "YYYY-MM-DD". Two dates are the same calendar
// day iff their keys match.
func FormatKey(date time.Time) string {
	return date.Format(keyLayout)
}

var weekdayNames = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

var weekdayShortNames = [...]string{
	time.Sunday:    "dom",
	time.Monday:    "seg",
	time.Tuesday:   "ter",
	time.Wednesday: "qua",
	time.Thursday:  "qui",
	time.Friday:    "sex",
	time.Saturday:  "sáb",
}

// FormatDisplayWithWeekday formats a date the way pt-BR long dates read,
// e.g. "terça-feira, 10/06/2025".
func FormatDisplayWithWeekday(date time.Time) string {
	return weekdayNames[date.Weekday()] + ", " + FormatDisplay(date)
}

// WeekdayShort returns the abbreviated pt-BR weekday name.
func WeekdayShort(day time.Weekday) string {
	return weekdayShortNames[day]
}
