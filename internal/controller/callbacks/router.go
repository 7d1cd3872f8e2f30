package callbacks

import (
	"strings"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/keyboard"
	"go.uber.org/zap"
)

// Route dispatches a callback by its data.
func Route(hc *HandlerContext) {
	data := hc.Callback.Data

	if data == keyboard.NoopData {
		hc.Answer("")
		return
	}

	// Every other button needs a registered teacher.
	if err := hc.RequireTeacher(); err != nil {
		hc.Fail("require teacher", err)
		return
	}

	switch {
	// Navigation
	case data == keyboard.HomeData:
		HandleHome(hc)
	case data == keyboard.CalendarData:
		HandleCalendar(hc)
	case strings.HasPrefix(data, common.DayPrefix):
		HandleDay(hc)
	case data == common.WeekData:
		HandleWeek(hc)

	// Booking form
	case strings.HasPrefix(data, common.BookPrefix):
		HandleBook(hc)
	case data == common.BookingConfirmData:
		HandleBookingConfirm(hc)
	case data == common.BookingAbortData:
		HandleBookingAbort(hc)

	// Managing own bookings
	case data == common.MyBookingsData:
		HandleMyBookings(hc)
	case strings.HasPrefix(data, common.BookingPrefix):
		HandleBookingDetails(hc)
	case strings.HasPrefix(data, common.EditPrefix):
		HandleEdit(hc)
	case strings.HasPrefix(data, common.ConfirmCancelPrefix):
		HandleConfirmCancel(hc)
	case strings.HasPrefix(data, common.CancelPrefix):
		HandleCancelPrompt(hc)

	default:
		hc.Handler.Logger.Warn("Unknown callback", zap.String("data", data))
		hc.Answer("")
	}
}
