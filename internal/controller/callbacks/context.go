package callbacks

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandlerContext carries what every callback handler needs.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *Handler
	Message    *models.Message
	Teacher    *model.Teacher
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) *HandlerContext {
	msg := common.GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// RequireTeacher loads the signed-in teacher of the pressing user.
func (hc *HandlerContext) RequireTeacher() error {
	if hc.Teacher != nil {
		return nil
	}
	teacher, err := hc.Handler.TeacherService.RequireTeacher(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}
	hc.Teacher = teacher
	return nil
}

func (hc *HandlerContext) Answer(text string) {
	common.AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

func (hc *HandlerContext) AnswerAlert(text string) {
	common.AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// Fail logs unexpected errors and shows err's message as an alert.
func (hc *HandlerContext) Fail(action string, err error) {
	if common.Retryable(err) {
		hc.Handler.Logger.Error("Callback failed",
			zap.String("action", action),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err),
		)
	} else {
		hc.Handler.Logger.Debug("Callback rejected",
			zap.String("action", action),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err),
		)
	}
	hc.AnswerAlert(common.ErrorMessage(err))
}

// EditMessage replaces the pressed message's text and keyboard.
func (hc *HandlerContext) EditMessage(text string, kb *models.InlineKeyboardMarkup) error {
	if hc.Message == nil {
		return common.ErrNoMessage
	}

	params := &bot.EditMessageTextParams{
		ChatID:    hc.ChatID,
		MessageID: hc.Message.ID,
		Text:      text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := hc.Bot.EditMessageText(hc.Ctx, params)
	if common.IsMessageNotModifiedError(err) {
		return nil
	}
	return err
}

// ShowScreen edits the pressed message into screen and acknowledges the press.
func (hc *HandlerContext) ShowScreen(screen *common.Screen) {
	if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
		hc.Handler.Logger.Error("Failed to edit message", zap.Int64("chat_id", hc.ChatID), zap.Error(err))
		// Fall back to a new message, e.g. when the old one is too old to edit.
		if sendErr := hc.SendMessage(screen.Text, screen.Keyboard); sendErr != nil {
			hc.Fail("show screen", sendErr)
			return
		}
	}
	hc.Answer("")
}

func (hc *HandlerContext) SendMessage(text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID: hc.ChatID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := hc.Bot.SendMessage(hc.Ctx, params)
	return err
}

func (hc *HandlerContext) SendPhoto(filename string, data []byte, caption string) error {
	_, err := hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
		ChatID:  hc.ChatID,
		Photo:   &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption: caption,
	})
	return err
}
