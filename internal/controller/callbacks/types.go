package callbacks

import (
	"context"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler answers inline keyboard presses.
type Handler struct {
	TeacherService *service.TeacherService
	BookingService *service.BookingService
	Screens        *common.Screens
	StateManager   *state.Manager
	Logger         *zap.Logger
}

func NewHandler(
	teacherService *service.TeacherService,
	bookingService *service.BookingService,
	screens *common.Screens,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		TeacherService: teacherService,
		BookingService: bookingService,
		Screens:        screens,
		StateManager:   stateManager,
		Logger:         logger,
	}
}

// HandleCallbackQuery is the entry point registered with the bot.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	h.Logger.Debug("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(NewHandlerContext(ctx, b, callback, h))
}
