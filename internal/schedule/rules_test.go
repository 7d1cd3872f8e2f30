package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-10 is a Tuesday.
var tuesdayMorning = time.Date(2025, time.June, 10, 9, 0, 0, 0, saoPaulo)

func validCandidate(date time.Time, start string) Candidate {
	return Candidate{
		ClassName:   "2º Ano A",
		Activity:    "Titulação ácido-base",
		NumStudents: 18,
		Date:        date,
		StartTime:   start,
	}
}

func booking(id, teacherID string, date time.Time, start string) *model.Booking {
	slot, _ := FindSlot(start)
	return &model.Booking{
		ID:          id,
		TeacherID:   teacherID,
		TeacherName: "Prof. " + teacherID,
		ClassName:   "1º Ano B",
		Activity:    "Microscopia",
		NumStudents: 10,
		Date:        date,
		StartTime:   start,
		EndTime:     slot.EndTime,
		Status:      model.BookingStatusConfirmed,
	}
}

func TestValidate_OK(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))

	err := engine.Validate(validCandidate(day(2025, time.June, 12), "08:00"), nil, "t1", "")
	assert.NoError(t, err)
}

func TestValidate_FieldErrorsReportedTogether(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))

	err := engine.Validate(Candidate{ClassName: "  ", NumStudents: 21}, nil, "t1", "")
	require.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, f := range []string{FieldClassName, FieldActivity, FieldNumStudents, FieldDate, FieldStartTime} {
		assert.True(t, verr.Has(f), "expected %s to fail", f)
	}
}

func TestValidate_NumStudentsBounds(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	date := day(2025, time.June, 11)

	cases := []struct {
		n  int
		ok bool
	}{
		{0, false}, {1, true}, {20, true}, {21, false}, {-4, false},
	}
	for _, tc := range cases {
		c := validCandidate(date, "07:10")
		c.NumStudents = tc.n
		err := engine.Validate(c, nil, "t1", "")
		if tc.ok {
			assert.NoError(t, err, "n=%d", tc.n)
		} else {
			assert.ErrorIs(t, err, ErrValidation, "n=%d", tc.n)
		}
	}
}

func TestValidate_UnknownStartTime(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))

	err := engine.Validate(validCandidate(day(2025, time.June, 11), "08:15"), nil, "t1", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Field: FieldStartTime, Message: "horário inexistente na grade"}}, verr.Fields)
}

// Scenario A
func TestValidate_SlotConflict(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{booking("b1", "T1", day(2025, time.June, 10), "08:00")}

	// same calendar day, different time of day on the candidate date
	candidate := validCandidate(time.Date(2025, time.June, 10, 16, 20, 0, 0, saoPaulo), "08:00")
	err := engine.Validate(candidate, existing, "T2", "")
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "2025-06-10", conflict.Date)
	assert.Equal(t, "08:00", conflict.StartTime)
	assert.Equal(t, "b1", conflict.BookingID)

	// neighbouring slot and neighbouring day are free
	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 10), "08:50"), existing, "T2", ""))
	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 11), "08:00"), existing, "T2", ""))
}

func TestValidate_CanceledBookingDoesNotConflict(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	old := booking("b1", "T1", day(2025, time.June, 11), "08:00")
	old.Status = model.BookingStatusCanceled

	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 11), "08:00"), []*model.Booking{old}, "T2", ""))
}

// Scenario B
func TestValidate_OutOfWindow(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))

	err := engine.Validate(validCandidate(day(2025, time.June, 18), "08:00"), nil, "t1", "")
	assert.ErrorIs(t, err, ErrOutOfWindow)

	err = engine.Validate(validCandidate(day(2025, time.June, 9), "08:00"), nil, "t1", "")
	assert.ErrorIs(t, err, ErrOutOfWindow)

	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 17), "08:00"), nil, "t1", ""))
}

// Scenario C
func TestValidate_Quota(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{
		booking("b1", "T1", day(2025, time.June, 9), "07:10"),
		booking("b2", "T1", day(2025, time.June, 11), "07:10"),
	}

	err := engine.Validate(validCandidate(day(2025, time.June, 12), "10:00"), existing, "T1", "")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// the quota is per week of today: a date in next week is rejected too
	err = engine.Validate(validCandidate(day(2025, time.June, 16), "10:00"), existing, "T1", "")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// editing either existing booking never hits the quota
	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 9), "10:00"), existing, "T1", "b1"))
	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 13), "10:00"), existing, "T1", "b2"))

	// other teachers are unaffected
	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 12), "10:00"), existing, "T2", ""))
}

func TestValidate_EditMovingIntoPastIsOutOfWindow(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{booking("b1", "T1", day(2025, time.June, 11), "07:10")}

	err := engine.Validate(validCandidate(day(2025, time.June, 9), "07:10"), existing, "T1", "b1")
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

func TestValidate_EditIgnoresItselfForConflicts(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{
		booking("b1", "T1", day(2025, time.June, 11), "07:10"),
		booking("b2", "T2", day(2025, time.June, 11), "08:00"),
	}

	assert.NoError(t, engine.Validate(validCandidate(day(2025, time.June, 11), "07:10"), existing, "T1", "b1"))
	assert.ErrorIs(t, engine.Validate(validCandidate(day(2025, time.June, 11), "08:00"), existing, "T1", "b1"), ErrSlotConflict)
}

func TestValidate_FailFastOrder(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{
		booking("b1", "T1", day(2025, time.June, 9), "07:10"),
		booking("b2", "T1", day(2025, time.June, 11), "07:10"),
	}

	// quota is reported before the conflict on b2's slot
	err := engine.Validate(validCandidate(day(2025, time.June, 11), "07:10"), existing, "T1", "")
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.NotErrorIs(t, err, ErrSlotConflict)

	// window is reported before the quota
	err = engine.Validate(validCandidate(day(2025, time.June, 30), "07:10"), existing, "T1", "")
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

// Scenario D. The notice runs up to the start of the booked day.
func TestCheckCancellation(t *testing.T) {
	b := booking("b1", "T1", day(2025, time.June, 11), "07:10")

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "20 hours before", now: time.Date(2025, time.June, 10, 4, 0, 0, 0, saoPaulo), wantErr: true},
		{name: "25 hours before", now: time.Date(2025, time.June, 9, 23, 0, 0, 0, saoPaulo)},
		{name: "exactly 24 hours before", now: time.Date(2025, time.June, 10, 0, 0, 0, 0, saoPaulo)},
		{name: "one second short", now: time.Date(2025, time.June, 10, 0, 0, 1, 0, saoPaulo), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(fixedCalendar(tt.now))
			err := engine.CheckCancellation(b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCancellationWindow)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckCancellation_IgnoresSlotStart(t *testing.T) {
	// 29 hours before the 15:00 slot but only 14 before the day begins.
	b := booking("b1", "T1", day(2025, time.June, 11), "15:00")
	cal := fixedCalendar(time.Date(2025, time.June, 10, 10, 0, 0, 0, saoPaulo))
	engine := NewEngine(cal)

	assert.False(t, cal.CanCancel(b.Date))
	assert.ErrorIs(t, engine.CheckCancellation(b), ErrCancellationWindow)
}

func TestIsSlotAvailable(t *testing.T) {
	engine := NewEngine(fixedCalendar(tuesdayMorning))
	existing := []*model.Booking{booking("b1", "T1", day(2025, time.June, 11), "13:00")}

	assert.False(t, engine.IsSlotAvailable(day(2025, time.June, 11), "13:00", existing))
	assert.True(t, engine.IsSlotAvailable(day(2025, time.June, 11), "13:50", existing))
}
