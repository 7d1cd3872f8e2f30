package common

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// Screen is a message text with its inline keyboard.
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// Screens builds the bot's screens from service data. Shared by command
// handlers and callback handlers.
type Screens struct {
	bookings *service.BookingService
}

func NewScreens(bookings *service.BookingService) *Screens {
	return &Screens{bookings: bookings}
}

// Home greets the teacher with the next bookings and the next bookable days.
func (s *Screens) Home(ctx context.Context, teacher *model.Teacher) (*Screen, error) {
	upcoming, err := s.bookings.UpcomingBookings(ctx, teacher.ID, service.HomeUpcomingLimit)
	if err != nil {
		return nil, err
	}
	days, err := s.bookings.NextAvailableDays(ctx, service.HomeAvailableDays)
	if err != nil {
		return nil, err
	}

	kb := keyboard.NewBuilder()
	dayButtons := make([]models.InlineKeyboardButton, 0, len(days))
	for _, d := range days {
		dayButtons = append(dayButtons, keyboard.Button("🗓 "+formatting.ShortDate(d.Date), DayData(d.Date)))
	}
	kb.Grid(3, dayButtons...)
	kb.Row(keyboard.CalendarButton(), keyboard.Button("📋 Meus agendamentos", MyBookingsData))
	kb.Row(keyboard.Button("🖼 Semana do laboratório", WeekData))

	return &Screen{
		Text:     formatting.Home(teacher, upcoming, days),
		Keyboard: kb.Build(),
	}, nil
}

// Calendar lists every day of the booking window.
func (s *Screens) Calendar() *Screen {
	cal := s.bookings.Calendar()

	buttons := make([]models.InlineKeyboardButton, 0, schedule.BookingWindowDays+1)
	for _, day := range cal.WindowDays() {
		label := formatting.ShortDate(day)
		if day.Equal(cal.Today()) {
			label = "Hoje " + day.Format("02/01")
		}
		buttons = append(buttons, keyboard.Button(label, DayData(day)))
	}

	return &Screen{
		Text: fmt.Sprintf("📅 Escolha uma data\n\nAgendamentos de hoje até %s.",
			schedule.FormatDisplay(cal.Today().AddDate(0, 0, schedule.BookingWindowDays))),
		Keyboard: keyboard.NewBuilder().Grid(4, buttons...).AddHomeButton().Build(),
	}
}

// Day shows every slot of the date stored under dateKey, with a button per free
// slot. The slot held by editingID, when set, is offered too.
func (s *Screens) Day(ctx context.Context, teacher *model.Teacher, dateKey, editingID string) (*Screen, error) {
	date, err := s.bookings.Calendar().ParseKey(dateKey)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	slots, err := s.bookings.DaySchedule(ctx, date)
	if err != nil {
		return nil, err
	}

	now := s.bookings.Calendar().Now()
	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, a := range slots {
		if !a.Free() && (editingID == "" || a.Booking.ID != editingID) {
			continue
		}
		// Slots that already started today are not offered.
		if start, err := s.bookings.Calendar().SlotStart(date, a.Slot.StartTime); err == nil && !start.After(now) {
			continue
		}
		buttons = append(buttons, keyboard.Button(a.Slot.StartTime, BookData(date, a.Slot.StartTime)))
	}

	kb := keyboard.NewBuilder().
		Grid(4, buttons...).
		Row(keyboard.BackButton(keyboard.CalendarData), keyboard.HomeButton())

	return &Screen{
		Text:     formatting.DaySchedule(date, slots, teacher.ID),
		Keyboard: kb.Build(),
	}, nil
}

// MyBookings lists the teacher's bookings with a button per booking.
func (s *Screens) MyBookings(ctx context.Context, teacher *model.Teacher) (*Screen, error) {
	bookings, err := s.bookings.TeacherBookings(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	kb := keyboard.NewBuilder()
	for _, b := range bookings {
		kb.Row(keyboard.Button(formatting.BookingButton(b), BookingData(b.ID)))
	}
	kb.Row(keyboard.CalendarButton(), keyboard.HomeButton())

	return &Screen{
		Text:     formatting.BookingList(bookings, s.bookings.Calendar().IsPastDate),
		Keyboard: kb.Build(),
	}, nil
}

// BookingDetails shows one booking. Edit and cancel are offered while the
// booking is confirmed.
func (s *Screens) BookingDetails(ctx context.Context, teacher *model.Teacher, id string) (*Screen, error) {
	b, err := s.bookings.Get(ctx, teacher, id)
	if err != nil {
		return nil, err
	}

	kb := keyboard.NewBuilder()
	if b.Status == model.BookingStatusConfirmed {
		kb.Row(
			keyboard.Button("✏️ Editar", EditData(b.ID)),
			keyboard.Button("🗑 Cancelar agendamento", CancelData(b.ID)),
		)
	}
	kb.Row(keyboard.BackButton(MyBookingsData), keyboard.HomeButton())

	return &Screen{
		Text:     formatting.BookingDetails(b),
		Keyboard: kb.Build(),
	}, nil
}

// CancelPrompt asks to confirm a cancellation, or explains why it is no
// longer possible.
func (s *Screens) CancelPrompt(ctx context.Context, teacher *model.Teacher, id string) (*Screen, error) {
	b, err := s.bookings.Get(ctx, teacher, id)
	if err != nil {
		return nil, err
	}

	if !s.bookings.CanCancel(b) {
		return &Screen{
			Text:     formatting.BookingDetails(b) + "\n\n" + ErrorMessage(schedule.ErrCancellationWindow),
			Keyboard: keyboard.NewBuilder().Row(keyboard.BackButton(BookingData(b.ID)), keyboard.HomeButton()).Build(),
		}, nil
	}

	text := formatting.BookingDetails(b) + "\n\nDeseja realmente cancelar este agendamento?"
	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmCancelRow(ConfirmCancelData(b.ID), BookingData(b.ID))...)

	return &Screen{Text: text, Keyboard: kb.Build()}, nil
}

// Week renders the current week's lab occupancy as a PNG.
func (s *Screens) Week(ctx context.Context, teacher *model.Teacher) ([]byte, error) {
	start, bookings, err := s.bookings.WeekBookings(ctx)
	if err != nil {
		return nil, err
	}

	return GenerateWeekImage(WeekView{
		Start:     start,
		Now:       s.bookings.Calendar().Now(),
		Bookings:  bookings,
		TeacherID: teacher.ID,
	})
}
