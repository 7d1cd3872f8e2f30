package callbacks

import (
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"go.uber.org/zap"
)

// editCarryKeys survive from the edit request into the booking form.
var editCarryKeys = []string{state.KeyEditingID, state.KeyClassName, state.KeyActivity, state.KeyNumStudents}

// HandleBook opens the booking form for a free slot.
func HandleBook(hc *HandlerContext) {
	dateKey, startTime, err := common.ParseBook(hc.Callback.Data)
	if err != nil {
		hc.Fail("parse book", err)
		return
	}

	sm := hc.Handler.StateManager
	data := map[string]any{state.KeyDate: dateKey, state.KeyStartTime: startTime}
	if sm.GetState(hc.TelegramID) == state.StateBookingPickSlot {
		prev := sm.GetAllData(hc.TelegramID)
		for _, k := range editCarryKeys {
			if v, ok := prev[k]; ok {
				data[k] = v
			}
		}
	}
	editingID, _ := data[state.KeyEditingID].(string)

	cal := hc.Handler.BookingService.Calendar()
	date, err := cal.ParseKey(dateKey)
	if err != nil {
		hc.Fail("parse book", common.ErrInvalidFormat)
		return
	}

	// Catch a slot taken since the day screen was drawn before asking for the form.
	slots, err := hc.Handler.BookingService.DaySchedule(hc.Ctx, date)
	if err != nil {
		hc.Fail("day schedule", err)
		return
	}
	var slot model.TimeSlot
	for _, a := range slots {
		if a.Slot.StartTime != startTime {
			continue
		}
		if !a.Free() && a.Booking.ID != editingID {
			hc.Fail("book", &schedule.ConflictError{
				Date:      dateKey,
				StartTime: startTime,
				BookingID: a.Booking.ID,
				Teacher:   a.Booking.TeacherName,
			})
			return
		}
		slot = a.Slot
	}

	sm.Start(hc.TelegramID, state.StateBookingClassName, data)

	hc.Handler.Logger.Info("Booking form started",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("date", dateKey),
		zap.String("start_time", startTime),
		zap.String("editing_id", editingID),
	)

	hc.Answer("")
	if err := hc.SendMessage(formatting.PromptClassName(date, slot, sm.GetString(hc.TelegramID, state.KeyClassName)), nil); err != nil {
		hc.Handler.Logger.Error("Failed to send prompt", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}

// HandleBookingConfirm submits the filled booking form.
func HandleBookingConfirm(hc *HandlerContext) {
	sm := hc.Handler.StateManager
	if sm.GetState(hc.TelegramID) != state.StateBookingConfirm {
		hc.Fail("confirm booking", common.ErrNoDialog)
		return
	}

	svc := hc.Handler.BookingService
	date, err := svc.Calendar().ParseKey(sm.GetString(hc.TelegramID, state.KeyDate))
	if err != nil {
		sm.ClearState(hc.TelegramID)
		hc.Fail("confirm booking", common.ErrNoDialog)
		return
	}

	in := service.BookingInput{
		ClassName:   sm.GetString(hc.TelegramID, state.KeyClassName),
		Activity:    sm.GetString(hc.TelegramID, state.KeyActivity),
		NumStudents: sm.GetInt(hc.TelegramID, state.KeyNumStudents),
		Date:        date,
		StartTime:   sm.GetString(hc.TelegramID, state.KeyStartTime),
	}
	editingID := sm.GetString(hc.TelegramID, state.KeyEditingID)

	var booking *model.Booking
	if editingID == "" {
		booking, err = svc.Create(hc.Ctx, hc.Teacher, in)
	} else {
		booking, err = svc.Update(hc.Ctx, hc.Teacher, editingID, in)
	}

	if err != nil {
		if common.Retryable(err) {
			// Keep the form so the same submission can be retried.
			hc.Handler.Logger.Error("Failed to save booking", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
			kb := keyboard.NewBuilder().
				Row(keyboard.Button("🔄 Tentar novamente", common.BookingConfirmData), keyboard.CancelButton(common.BookingAbortData)).
				Build()
			hc.ShowScreen(&common.Screen{Text: common.ErrorMessage(err), Keyboard: kb})
			return
		}

		sm.ClearState(hc.TelegramID)
		kb := keyboard.NewBuilder().Row(keyboard.CalendarButton(), keyboard.HomeButton()).Build()
		hc.ShowScreen(&common.Screen{Text: "Não é possível agendar\n\n" + common.ErrorMessage(err), Keyboard: kb})
		return
	}

	sm.ClearState(hc.TelegramID)

	title := "✅ Agendamento confirmado!"
	if editingID != "" {
		title = "✅ Agendamento atualizado!"
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📋 Meus agendamentos", common.MyBookingsData), keyboard.HomeButton()).
		Build()
	hc.ShowScreen(&common.Screen{Text: title + "\n\n" + formatting.BookingDetails(booking), Keyboard: kb})
}

func HandleBookingAbort(hc *HandlerContext) {
	hc.Handler.StateManager.ClearState(hc.TelegramID)

	kb := keyboard.NewBuilder().Row(keyboard.CalendarButton(), keyboard.HomeButton()).Build()
	hc.ShowScreen(&common.Screen{Text: "Agendamento descartado.", Keyboard: kb})
}
