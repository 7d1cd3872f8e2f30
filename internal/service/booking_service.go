package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"go.uber.org/zap"
)

const (
	// HomeUpcomingLimit is how many upcoming bookings the home screen lists.
	HomeUpcomingLimit = 3
	// HomeAvailableDays is how many bookable weekdays the home screen offers.
	HomeAvailableDays = 5
)

// BookingInput is the booking form.
type BookingInput struct {
	ClassName   string
	Activity    string
	NumStudents int
	Date        time.Time
	StartTime   string
}

func (in BookingInput) candidate() schedule.Candidate {
	return schedule.Candidate{
		ClassName:   in.ClassName,
		Activity:    in.Activity,
		NumStudents: in.NumStudents,
		Date:        in.Date,
		StartTime:   in.StartTime,
	}
}

// SlotAvailability is one timetable slot of a day and the booking holding it.
type SlotAvailability struct {
	Slot    model.TimeSlot
	Booking *model.Booking // nil when free
}

func (a SlotAvailability) Free() bool {
	return a.Booking == nil
}

// DayAvailability is a bookable day with its free slots.
type DayAvailability struct {
	Date      time.Time
	FreeSlots []model.TimeSlot
}

type BookingService struct {
	bookings BookingStore
	engine   *schedule.Engine
	cal      *schedule.Calendar
	logger   *zap.Logger

	// mu serializes read-validate-write so two concurrent requests cannot
	// both pass the conflict check for the same slot.
	mu sync.Mutex
}

func NewBookingService(bookings BookingStore, engine *schedule.Engine, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		engine:   engine,
		cal:      engine.Calendar(),
		logger:   logger,
	}
}

// Calendar returns the calendar bookings are evaluated against.
func (s *BookingService) Calendar() *schedule.Calendar {
	return s.cal
}

// Create validates and stores a new confirmed booking for teacher.
func (s *BookingService) Create(ctx context.Context, teacher *model.Teacher, in BookingInput) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Validate(in.candidate(), existing, teacher.ID, ""); err != nil {
		return nil, err
	}

	slot, _ := schedule.FindSlot(in.StartTime)
	booking := &model.Booking{
		TeacherID:    teacher.ID,
		TeacherName:  teacher.Name,
		TeacherEmail: teacher.Email,
		Disciplina:   teacher.Disciplina,
		ClassName:    in.ClassName,
		Activity:     in.Activity,
		NumStudents:  in.NumStudents,
		Date:         s.cal.Date(in.Date),
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Status:       model.BookingStatusConfirmed,
	}

	saved, err := s.save(ctx, booking)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", saved.ID),
		zap.String("teacher_id", teacher.ID),
		zap.String("date", schedule.FormatKey(saved.Date)),
		zap.String("start_time", saved.StartTime),
	)

	return saved, nil
}

// Update replaces the fields and slot of one of teacher's bookings.
func (s *BookingService) Update(ctx context.Context, teacher *model.Teacher, id string, in BookingInput) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.owned(ctx, teacher, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Validate(in.candidate(), existing, teacher.ID, id); err != nil {
		return nil, err
	}

	slot, _ := schedule.FindSlot(in.StartTime)
	updated := current.Clone()
	updated.TeacherName = teacher.Name
	updated.TeacherEmail = teacher.Email
	updated.Disciplina = teacher.Disciplina
	updated.ClassName = in.ClassName
	updated.Activity = in.Activity
	updated.NumStudents = in.NumStudents
	updated.Date = s.cal.Date(in.Date)
	updated.StartTime = slot.StartTime
	updated.EndTime = slot.EndTime

	saved, err := s.save(ctx, updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking updated",
		zap.String("booking_id", saved.ID),
		zap.String("teacher_id", teacher.ID),
		zap.String("date", schedule.FormatKey(saved.Date)),
		zap.String("start_time", saved.StartTime),
	)

	return saved, nil
}

// Cancel removes one of teacher's bookings, if its day begins at least 24 hours from now.
func (s *BookingService) Cancel(ctx context.Context, teacher *model.Teacher, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.owned(ctx, teacher, id)
	if err != nil {
		return err
	}

	if err := s.engine.CheckCancellation(booking); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return storeErr("delete booking", err)
	}

	s.logger.Info("Booking canceled",
		zap.String("booking_id", id),
		zap.String("teacher_id", teacher.ID),
		zap.String("date", schedule.FormatKey(booking.Date)),
		zap.String("start_time", booking.StartTime),
	)

	return nil
}

// CanCancel reports whether b is still far enough ahead to be cancelled.
func (s *BookingService) CanCancel(b *model.Booking) bool {
	return s.engine.CheckCancellation(b) == nil
}

// Get returns one of teacher's bookings.
func (s *BookingService) Get(ctx context.Context, teacher *model.Teacher, id string) (*model.Booking, error) {
	return s.owned(ctx, teacher, id)
}

// TeacherBookings lists the teacher's active bookings: upcoming ones first,
// soonest first, then past ones, most recent first.
func (s *BookingService) TeacherBookings(ctx context.Context, teacherID string) ([]*model.Booking, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var upcoming, past []*model.Booking
	for _, b := range all {
		if b.TeacherID != teacherID || !b.IsActive() {
			continue
		}
		if s.cal.IsPastDate(b.Date) {
			past = append(past, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return s.before(upcoming[i], upcoming[j]) })
	sort.SliceStable(past, func(i, j int) bool { return s.before(past[j], past[i]) })

	return append(upcoming, past...), nil
}

// UpcomingBookings returns at most limit of the teacher's bookings that are
// not in the past, soonest first.
func (s *BookingService) UpcomingBookings(ctx context.Context, teacherID string, limit int) ([]*model.Booking, error) {
	all, err := s.TeacherBookings(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Booking, 0, limit)
	for _, b := range all {
		if len(out) == limit || s.cal.IsPastDate(b.Date) {
			break
		}
		out = append(out, b)
	}
	return out, nil
}

// DaySchedule returns every timetable slot of date with its booking, if any.
// Only dates inside the booking window can be shown.
func (s *BookingService) DaySchedule(ctx context.Context, date time.Time) ([]SlotAvailability, error) {
	if !s.cal.IsWithinBookingWindow(date) {
		return nil, fmt.Errorf("%w: %s", schedule.ErrOutOfWindow, schedule.FormatKey(s.cal.Date(date)))
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	return s.daySlots(date, all), nil
}

// NextAvailableDays returns up to limit weekdays of the booking window, from
// today on, that still have a free slot.
func (s *BookingService) NextAvailableDays(ctx context.Context, limit int) ([]DayAvailability, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var days []DayAvailability
	for _, day := range s.cal.WindowDays() {
		if len(days) == limit {
			break
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}

		var free []model.TimeSlot
		for _, a := range s.daySlots(day, all) {
			if a.Free() {
				free = append(free, a.Slot)
			}
		}
		if len(free) == 0 {
			continue
		}
		days = append(days, DayAvailability{Date: day, FreeSlots: free})
	}
	return days, nil
}

// WeekBookings returns the start of the current week and the active bookings
// dated inside it.
func (s *BookingService) WeekBookings(ctx context.Context) (time.Time, []*model.Booking, error) {
	start, end := s.cal.CurrentWeek()

	all, err := s.loadAll(ctx)
	if err != nil {
		return time.Time{}, nil, err
	}

	var week []*model.Booking
	for _, b := range all {
		if !b.IsActive() || b.Date.Before(start) || b.Date.After(end) {
			continue
		}
		week = append(week, b)
	}
	sort.SliceStable(week, func(i, j int) bool { return s.before(week[i], week[j]) })

	return start, week, nil
}

// CompletePastBookings marks confirmed bookings dated before today as completed.
func (s *BookingService) CompletePastBookings(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.bookings.CompleteBefore(ctx, s.cal.Today())
	if err != nil {
		return 0, storeErr("complete past bookings", err)
	}

	if n > 0 {
		s.logger.Info("Past bookings completed", zap.Int64("count", n))
	}
	return n, nil
}

func (s *BookingService) daySlots(date time.Time, bookings []*model.Booking) []SlotAvailability {
	slots := schedule.DailySlots()
	out := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotAvailability{
			Slot:    slot,
			Booking: s.engine.FindConflict(date, slot.StartTime, bookings, ""),
		})
	}
	return out
}

// owned loads a booking and checks that teacher holds it.
func (s *BookingService) owned(ctx context.Context, teacher *model.Teacher, id string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.TeacherID != teacher.ID {
		return nil, ErrNotOwner
	}
	booking.Date = s.cal.Date(booking.Date)
	return booking, nil
}

// loadAll reads every booking with its date moved to the school's time zone.
func (s *BookingService) loadAll(ctx context.Context) ([]*model.Booking, error) {
	all, err := s.bookings.GetAll(ctx)
	if err != nil {
		return nil, storeErr("get bookings", err)
	}
	for _, b := range all {
		b.Date = s.cal.Date(b.Date)
	}
	return all, nil
}

// save stores a booking, reporting a lost race for the slot as a conflict.
func (s *BookingService) save(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	saved, err := s.bookings.Save(ctx, booking)
	if errors.Is(err, repository.ErrSlotTaken) {
		return nil, &schedule.ConflictError{
			Date:      schedule.FormatKey(booking.Date),
			StartTime: booking.StartTime,
		}
	}
	if err != nil {
		return nil, storeErr("save booking", err)
	}
	saved.Date = s.cal.Date(saved.Date)
	return saved, nil
}

// before orders bookings by date, then start time.
func (s *BookingService) before(a, b *model.Booking) bool {
	ka, kb := schedule.FormatKey(a.Date), schedule.FormatKey(b.Date)
	if ka != kb {
		return ka < kb
	}
	return a.StartTime < b.StartTime
}
