package callbacks

import (
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"go.uber.org/zap"
)

func HandleMyBookings(hc *HandlerContext) {
	screen, err := hc.Handler.Screens.MyBookings(hc.Ctx, hc.Teacher)
	if err != nil {
		hc.Fail("my bookings", err)
		return
	}
	hc.ShowScreen(screen)
}

func HandleBookingDetails(hc *HandlerContext) {
	id, err := common.ParseID(hc.Callback.Data, common.BookingPrefix)
	if err != nil {
		hc.Fail("parse booking", err)
		return
	}

	screen, err := hc.Handler.Screens.BookingDetails(hc.Ctx, hc.Teacher, id)
	if err != nil {
		hc.Fail("booking details", err)
		return
	}
	hc.ShowScreen(screen)
}

// HandleEdit starts editing a booking: the teacher picks a new date and slot,
// then goes through the booking form with the current values as defaults.
func HandleEdit(hc *HandlerContext) {
	id, err := common.ParseID(hc.Callback.Data, common.EditPrefix)
	if err != nil {
		hc.Fail("parse edit", err)
		return
	}

	booking, err := hc.Handler.BookingService.Get(hc.Ctx, hc.Teacher, id)
	if err != nil {
		hc.Fail("edit booking", err)
		return
	}
	if booking.Status != model.BookingStatusConfirmed {
		hc.Fail("edit booking", service.ErrBookingNotFound)
		return
	}

	hc.Handler.StateManager.Start(hc.TelegramID, state.StateBookingPickSlot, map[string]any{
		state.KeyEditingID:   booking.ID,
		state.KeyClassName:   booking.ClassName,
		state.KeyActivity:    booking.Activity,
		state.KeyNumStudents: booking.NumStudents,
	})

	hc.Handler.Logger.Info("Booking edit started",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("booking_id", booking.ID),
	)

	HandleCalendar(hc)
}

func HandleCancelPrompt(hc *HandlerContext) {
	id, err := common.ParseID(hc.Callback.Data, common.CancelPrefix)
	if err != nil {
		hc.Fail("parse cancel", err)
		return
	}

	screen, err := hc.Handler.Screens.CancelPrompt(hc.Ctx, hc.Teacher, id)
	if err != nil {
		hc.Fail("cancel prompt", err)
		return
	}
	hc.ShowScreen(screen)
}

func HandleConfirmCancel(hc *HandlerContext) {
	id, err := common.ParseID(hc.Callback.Data, common.ConfirmCancelPrefix)
	if err != nil {
		hc.Fail("parse cancel", err)
		return
	}

	if err := hc.Handler.BookingService.Cancel(hc.Ctx, hc.Teacher, id); err != nil {
		hc.Fail("cancel booking", err)
		return
	}

	screen, err := hc.Handler.Screens.MyBookings(hc.Ctx, hc.Teacher)
	if err != nil {
		hc.Fail("my bookings", err)
		return
	}
	screen.Text = "✅ Agendamento cancelado.\n\n" + screen.Text
	hc.ShowScreen(screen)
}
