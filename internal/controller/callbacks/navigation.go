package callbacks

import (
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"go.uber.org/zap"
)

func HandleHome(hc *HandlerContext) {
	hc.Handler.StateManager.ClearState(hc.TelegramID)

	screen, err := hc.Handler.Screens.Home(hc.Ctx, hc.Teacher)
	if err != nil {
		hc.Fail("home", err)
		return
	}
	hc.ShowScreen(screen)
}

// HandleCalendar shows the booking window. An edit in progress stays active
// so the chosen slot becomes the booking's new slot.
func HandleCalendar(hc *HandlerContext) {
	screen := hc.Handler.Screens.Calendar()
	if hc.Handler.StateManager.GetState(hc.TelegramID) == state.StateBookingPickSlot {
		screen.Text = "✏️ Alterando agendamento\n\n" + screen.Text
	}
	hc.ShowScreen(screen)
}

func HandleDay(hc *HandlerContext) {
	dateKey, err := common.ParseDay(hc.Callback.Data)
	if err != nil {
		hc.Fail("parse day", err)
		return
	}

	var editingID string
	if hc.Handler.StateManager.GetState(hc.TelegramID) == state.StateBookingPickSlot {
		editingID = hc.Handler.StateManager.GetString(hc.TelegramID, state.KeyEditingID)
	}

	screen, err := hc.Handler.Screens.Day(hc.Ctx, hc.Teacher, dateKey, editingID)
	if err != nil {
		hc.Fail("day schedule", err)
		return
	}
	hc.ShowScreen(screen)
}

// HandleWeek sends the current week's occupancy image as a new photo.
func HandleWeek(hc *HandlerContext) {
	hc.Answer("Gerando imagem...")

	data, err := hc.Handler.Screens.Week(hc.Ctx, hc.Teacher)
	if err != nil {
		hc.Handler.Logger.Error("Failed to render week image", zap.Error(err))
		if sendErr := hc.SendMessage(common.ErrorMessage(err), nil); sendErr != nil {
			hc.Handler.Logger.Error("Failed to send message", zap.Int64("chat_id", hc.ChatID), zap.Error(sendErr))
		}
		return
	}

	if err := hc.SendPhoto("semana.png", data, "🧪 Ocupação do laboratório nesta semana"); err != nil {
		hc.Handler.Logger.Error("Failed to send week image", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
	}
}
