package keyboard

import "github.com/go-telegram/bot/models"

// Navigation callback data shared by every screen.
const (
	HomeData     = "home"
	CalendarData = "calendar"
	NoopData     = "noop"
)

func BackButton(callbackData string) models.InlineKeyboardButton {
	return Button("⬅️ Voltar", callbackData)
}

func HomeButton() models.InlineKeyboardButton {
	return Button("🏠 Início", HomeData)
}

func CalendarButton() models.InlineKeyboardButton {
	return Button("📅 Calendário", CalendarData)
}

func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancelar", callbackData)
}

func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirmar", callbackData)
}

// ConfirmCancelRow is a single row with confirm and cancel buttons.
func ConfirmCancelRow(confirmCallback, cancelCallback string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{
		ConfirmButton(confirmCallback),
		CancelButton(cancelCallback),
	}
}

func (b *Builder) AddBackButton(callbackData string) *Builder {
	return b.Row(BackButton(callbackData))
}

func (b *Builder) AddHomeButton() *Builder {
	return b.Row(HomeButton())
}
