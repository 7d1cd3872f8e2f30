package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func fixedCalendar(now time.Time) *Calendar {
	return NewCalendar(ClockFunc(func() time.Time { return now }), saoPaulo)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, saoPaulo)
}

func TestFormatting(t *testing.T) {
	d := time.Date(2025, time.June, 10, 15, 30, 0, 0, saoPaulo)

	assert.Equal(t, "10/06/2025", FormatDisplay(d))
	assert.Equal(t, "2025-06-10", FormatKey(d))
	assert.Equal(t, "terça-feira, 10/06/2025", FormatDisplayWithWeekday(d))
	assert.Equal(t, FormatKey(day(2025, time.June, 10)), FormatKey(d), "time of day must not change the key")
}

func TestCalendar_DateReinterpretsDay(t *testing.T) {
	cal := fixedCalendar(time.Date(2025, time.June, 10, 12, 0, 0, 0, saoPaulo))

	// A DATE column decodes as UTC midnight; its day must survive.
	fromDB := time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-11", FormatKey(cal.Date(fromDB)))
}

func TestCalendar_IsPastDate(t *testing.T) {
	cal := fixedCalendar(time.Date(2025, time.June, 10, 0, 0, 1, 0, saoPaulo))

	assert.False(t, cal.IsPastDate(day(2025, time.June, 10)), "today is never past")
	assert.False(t, cal.IsPastDate(time.Date(2025, time.June, 10, 23, 59, 0, 0, saoPaulo)))
	assert.True(t, cal.IsPastDate(day(2025, time.June, 9)))
	assert.True(t, cal.IsPastDate(time.Date(2025, time.June, 9, 23, 59, 59, 0, saoPaulo)))
	assert.False(t, cal.IsPastDate(day(2025, time.June, 11)))
}

func TestCalendar_IsWithinBookingWindow(t *testing.T) {
	cal := fixedCalendar(time.Date(2025, time.June, 10, 18, 45, 0, 0, saoPaulo))
	today := day(2025, time.June, 10)

	for offset := -3; offset <= 10; offset++ {
		d := today.AddDate(0, 0, offset)
		want := offset >= 0 && offset <= 7
		assert.Equal(t, want, cal.IsWithinBookingWindow(d), "offset %d", offset)
		// time of day is irrelevant
		assert.Equal(t, want, cal.IsWithinBookingWindow(d.Add(23*time.Hour)), "offset %d late", offset)
	}
}

func TestCalendar_WindowDays(t *testing.T) {
	cal := fixedCalendar(time.Date(2025, time.June, 10, 9, 0, 0, 0, saoPaulo))

	days := cal.WindowDays()
	require.Len(t, days, BookingWindowDays+1)
	assert.Equal(t, "2025-06-10", FormatKey(days[0]))
	assert.Equal(t, "2025-06-17", FormatKey(days[len(days)-1]))
	for _, d := range days {
		assert.True(t, cal.IsWithinBookingWindow(d))
	}
}

func TestCalendar_HoursUntilAndCanCancel(t *testing.T) {
	now := time.Date(2025, time.June, 10, 10, 0, 0, 0, saoPaulo)
	cal := fixedCalendar(now)

	assert.InDelta(t, 20.0, cal.HoursUntil(now.Add(20*time.Hour)), 1e-9)
	assert.InDelta(t, -2.5, cal.HoursUntil(now.Add(-150*time.Minute)), 1e-9)

	assert.False(t, cal.CanCancel(now.Add(20*time.Hour)))
	assert.False(t, cal.CanCancel(now.Add(24*time.Hour-time.Second)))
	assert.True(t, cal.CanCancel(now.Add(24*time.Hour)))
	assert.True(t, cal.CanCancel(now.Add(25*time.Hour)))

	// monotonic in lead time
	prev := false
	for h := 0; h <= 48; h++ {
		cur := cal.CanCancel(now.Add(time.Duration(h) * time.Hour))
		if prev {
			assert.True(t, cur, "lead time %dh", h)
		}
		prev = cur
	}
}

func TestCalendar_CurrentWeek(t *testing.T) {
	// Tuesday
	cal := fixedCalendar(time.Date(2025, time.June, 10, 9, 0, 0, 0, saoPaulo))
	start, end := cal.CurrentWeek()
	assert.Equal(t, day(2025, time.June, 8), start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.WithinDuration(t, time.Date(2025, time.June, 14, 23, 59, 59, 999_000_000, saoPaulo), end, 0)

	// Sunday is the first day of its own week
	cal = fixedCalendar(time.Date(2025, time.June, 8, 9, 0, 0, 0, saoPaulo))
	start, _ = cal.CurrentWeek()
	assert.Equal(t, day(2025, time.June, 8), start)
}

func TestCalendar_CountBookingsInCurrentWeek(t *testing.T) {
	cal := fixedCalendar(time.Date(2025, time.June, 10, 9, 0, 0, 0, saoPaulo))
	bookings := []*model.Booking{
		{ID: "1", TeacherID: "t1", Date: day(2025, time.June, 8)},  // Sunday, inclusive
		{ID: "2", TeacherID: "t1", Date: day(2025, time.June, 14)}, // Saturday, inclusive
		{ID: "3", TeacherID: "t1", Date: day(2025, time.June, 7)},  // previous week
		{ID: "4", TeacherID: "t1", Date: day(2025, time.June, 15)}, // next week
		{ID: "5", TeacherID: "t2", Date: day(2025, time.June, 10)},
	}

	assert.Equal(t, 2, cal.CountBookingsInCurrentWeek("t1", bookings))
	assert.Equal(t, 1, cal.CountBookingsInCurrentWeek("t2", bookings))
	assert.Equal(t, 0, cal.CountBookingsInCurrentWeek("t3", bookings))
}

func TestCalendar_SlotStart(t *testing.T) {
	cal := fixedCalendar(time.Now())

	at, err := cal.SlotStart(day(2025, time.June, 10), "07:10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 10, 7, 10, 0, 0, saoPaulo), at)

	_, err = cal.SlotStart(day(2025, time.June, 10), "25:00")
	assert.Error(t, err)
	_, err = cal.SlotStart(day(2025, time.June, 10), "")
	assert.Error(t, err)
}

func TestCalendar_ParseKey(t *testing.T) {
	cal := fixedCalendar(time.Now())

	d, err := cal.ParseKey("2025-06-10")
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.June, 10), d)

	_, err = cal.ParseKey("10/06/2025")
	assert.Error(t, err)
}
