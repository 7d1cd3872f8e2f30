package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var errNumStudents = fmt.Errorf("informe um número de %d a %d", schedule.MinStudents, schedule.MaxStudents)

// parseNumStudents reads the head count reply. KeepValue returns current when
// there is one.
func parseNumStudents(text string, current int) (int, error) {
	text = strings.TrimSpace(text)
	if text == formatting.KeepValue && current > 0 {
		return current, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < schedule.MinStudents || n > schedule.MaxStudents {
		return 0, errNumStudents
	}
	return n, nil
}

// keepOrText resolves a text reply against the field's current value.
// The second result is false when the reply leaves the field empty.
func keepOrText(text, current string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == formatting.KeepValue {
		return current, current != ""
	}
	return text, text != ""
}

// Registration

func (h *Handlers) handleRegisterNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	name := strings.TrimSpace(update.Message.Text)
	if name == "" {
		h.sendMessage(ctx, b, chatID, "❌ O nome não pode ficar vazio. Qual é o seu nome completo?")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyName, name)
	h.stateManager.SetState(telegramID, state.StateRegisterEmail)
	h.sendMessage(ctx, b, chatID, "Passo 2 de 4: Qual é o seu e-mail institucional?")
}

func (h *Handlers) handleRegisterEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	email := strings.TrimSpace(update.Message.Text)
	if err := service.ValidateEmail(email); err != nil {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("❌ %s. Envie o e-mail novamente.", err.Error()))
		return
	}

	h.stateManager.SetData(telegramID, state.KeyEmail, email)
	h.stateManager.SetState(telegramID, state.StateRegisterDisciplina)
	h.sendMessage(ctx, b, chatID, "Passo 3 de 4: Qual disciplina você leciona?\nExemplo: Química")
}

func (h *Handlers) handleRegisterDisciplinaStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	disciplina := strings.TrimSpace(update.Message.Text)
	if disciplina == "" {
		h.sendMessage(ctx, b, chatID, "❌ A disciplina não pode ficar vazia. Qual disciplina você leciona?")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyDisciplina, disciplina)
	h.stateManager.SetState(telegramID, state.StateRegisterPhone)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("Passo 4 de 4: Qual é o seu telefone? Envie %s para pular.", formatting.KeepValue))
}

func (h *Handlers) handleRegisterPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	phone := strings.TrimSpace(update.Message.Text)
	if phone == formatting.KeepValue {
		phone = ""
	}

	reg := service.Registration{
		Name:       h.stateManager.GetString(telegramID, state.KeyName),
		Email:      h.stateManager.GetString(telegramID, state.KeyEmail),
		Disciplina: h.stateManager.GetString(telegramID, state.KeyDisciplina),
		Phone:      phone,
	}

	teacher, err := h.teacherService.Register(ctx, telegramID, reg)
	if err != nil {
		if common.Retryable(err) {
			// The collected answers stay; sending the phone again retries.
			h.logger.Error("Failed to register teacher", zap.Int64("telegram_id", telegramID), zap.Error(err))
			h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nEnvie o telefone novamente para tentar de novo.")
			return
		}

		h.stateManager.ClearState(telegramID)
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nUse /start para recomeçar o cadastro.")
		return
	}

	h.stateManager.ClearState(telegramID)

	screen, err := h.screens.Home(ctx, teacher)
	if err != nil {
		h.logger.Error("Failed to build home screen", zap.String("teacher_id", teacher.ID), zap.Error(err))
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Cadastro concluído, %s! Use /calendar para agendar.", teacher.Name))
		return
	}
	screen.Text = "✅ Cadastro concluído!\n\n" + screen.Text
	h.sendScreen(ctx, b, chatID, screen)
}

// Booking form

func (h *Handlers) handleBookingClassNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	className, ok := keepOrText(update.Message.Text, h.stateManager.GetString(telegramID, state.KeyClassName))
	if !ok {
		h.sendMessage(ctx, b, chatID, "❌ Informe a turma.")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyClassName, className)
	h.stateManager.SetState(telegramID, state.StateBookingActivity)
	h.sendMessage(ctx, b, chatID, formatting.PromptActivity(h.stateManager.GetString(telegramID, state.KeyActivity)))
}

func (h *Handlers) handleBookingActivityStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	activity, ok := keepOrText(update.Message.Text, h.stateManager.GetString(telegramID, state.KeyActivity))
	if !ok {
		h.sendMessage(ctx, b, chatID, "❌ Informe a atividade.")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyActivity, activity)
	h.stateManager.SetState(telegramID, state.StateBookingNumStudents)
	h.sendMessage(ctx, b, chatID, formatting.PromptNumStudents(h.stateManager.GetInt(telegramID, state.KeyNumStudents)))
}

func (h *Handlers) handleBookingNumStudentsStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	n, err := parseNumStudents(update.Message.Text, h.stateManager.GetInt(telegramID, state.KeyNumStudents))
	if err != nil {
		h.sendMessage(ctx, b, chatID, "❌ "+err.Error()+".")
		return
	}
	h.stateManager.SetData(telegramID, state.KeyNumStudents, n)

	summary, err := h.formSummary(telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, err)
		return
	}

	h.stateManager.SetState(telegramID, state.StateBookingConfirm)
	h.sendScreen(ctx, b, chatID, &common.Screen{
		Text:     summary,
		Keyboard: keyboard.NewBuilder().Row(keyboard.ConfirmCancelRow(common.BookingConfirmData, common.BookingAbortData)...).Build(),
	})
}

// formSummary renders the filled form from the user's dialog data.
func (h *Handlers) formSummary(telegramID int64) (string, error) {
	sm := h.stateManager

	date, err := h.bookingService.Calendar().ParseKey(sm.GetString(telegramID, state.KeyDate))
	if err != nil {
		return "", errors.Join(common.ErrNoDialog, err)
	}
	slot, ok := schedule.FindSlot(sm.GetString(telegramID, state.KeyStartTime))
	if !ok {
		return "", common.ErrNoDialog
	}

	return formatting.FormSummary(
		date,
		slot,
		sm.GetString(telegramID, state.KeyClassName),
		sm.GetString(telegramID, state.KeyActivity),
		sm.GetInt(telegramID, state.KeyNumStudents),
		sm.GetString(telegramID, state.KeyEditingID) != "",
	), nil
}
