package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart shows the home screen, or starts registration for unknown users.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	teacher, err := h.teacherService.CurrentTeacher(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get current teacher", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}

	if teacher == nil {
		h.stateManager.Start(telegramID, state.StateRegisterName, nil)
		h.sendMessage(ctx, b, chatID,
			"👋 Bem-vindo ao AgendaLEI, o agendamento do laboratório!\n\n"+
				"Antes de agendar, faça seu cadastro.\n\n"+
				"Passo 1 de 4: Qual é o seu nome completo?")
		return
	}

	h.stateManager.ClearState(telegramID)

	screen, err := h.screens.Home(ctx, teacher)
	if err != nil {
		h.logger.Error("Failed to build home screen", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, err)
		return
	}
	h.sendScreen(ctx, b, chatID, screen)
}

func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "🧪 AgendaLEI: agendamento do laboratório\n\n" +
		"Comandos:\n" +
		"/start - Início e cadastro\n" +
		"/calendar - Escolher data e horário\n" +
		"/mybookings - Meus agendamentos\n" +
		"/week - Ocupação do laboratório na semana\n" +
		"/cancel - Desistir do diálogo atual\n" +
		"/signout - Sair da conta\n" +
		"/help - Esta ajuda\n\n" +
		formatting.Rules()

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireTeacher(ctx, b, update); !ok {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, h.screens.Calendar())
}

func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	teacher, ok := h.requireTeacher(ctx, b, update)
	if !ok {
		return
	}

	screen, err := h.screens.MyBookings(ctx, teacher)
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.String("teacher_id", teacher.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, screen)
}

func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	teacher, ok := h.requireTeacher(ctx, b, update)
	if !ok {
		return
	}

	data, err := h.screens.Week(ctx, teacher)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}
	h.sendPhoto(ctx, b, update.Message.Chat.ID, "semana.png", data, "🧪 Ocupação do laboratório nesta semana")
}

// HandleSignOut forgets the chat's teacher. The next /start registers again.
func (h *Handlers) HandleSignOut(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.ClearState(telegramID)

	if err := h.teacherService.SignOut(ctx, telegramID); err != nil {
		h.logger.Error("Failed to sign out", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Você saiu. Use /start para entrar novamente.")
}

// HandleCancel drops the dialog in progress.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nada para cancelar.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Operação cancelada.")
}

// HandleTextMessage feeds plain text into the dialog the user is in.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Commands have their own handlers.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Dialog message",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Use /start para ver o início ou /help para a lista de comandos.")
	case state.StateRegisterName:
		h.handleRegisterNameStep(ctx, b, update)
	case state.StateRegisterEmail:
		h.handleRegisterEmailStep(ctx, b, update)
	case state.StateRegisterDisciplina:
		h.handleRegisterDisciplinaStep(ctx, b, update)
	case state.StateRegisterPhone:
		h.handleRegisterPhoneStep(ctx, b, update)
	case state.StateBookingPickSlot:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Escolha a nova data e horário nos botões acima ou use /cancel.")
	case state.StateBookingClassName:
		h.handleBookingClassNameStep(ctx, b, update)
	case state.StateBookingActivity:
		h.handleBookingActivityStep(ctx, b, update)
	case state.StateBookingNumStudents:
		h.handleBookingNumStudentsStep(ctx, b, update)
	case state.StateBookingConfirm:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Confirme ou cancele o agendamento nos botões acima.")
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
