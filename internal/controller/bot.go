package controller

import (
	"context"

	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/handlers"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	teacherService *service.TeacherService,
	bookingService *service.BookingService,
	logger *zap.Logger,
) *BotController {
	// Dialog state is shared by commands and buttons.
	stateManager := state.NewManager()
	screens := common.NewScreens(bookingService)

	cmdHandlers := handlers.NewHandlers(
		teacherService,
		bookingService,
		screens,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		teacherService,
		bookingService,
		screens,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// command is a slash command with its menu entry.
type command struct {
	name        string
	description string
	handler     bot.HandlerFunc
}

func (c *BotController) commands() []command {
	return []command{
		{"start", "🏠 Início e cadastro", c.handlers.HandleStart},
		{"calendar", "📅 Agendar o laboratório", c.handlers.HandleCalendar},
		{"mybookings", "📋 Meus agendamentos", c.handlers.HandleMyBookings},
		{"week", "🗓 Ocupação da semana", c.handlers.HandleWeek},
		{"help", "❓ Ajuda e regras", c.handlers.HandleHelp},
		{"cancel", "❌ Desistir do diálogo atual", c.handlers.HandleCancel},
		{"signout", "👋 Sair da conta", c.handlers.HandleSignOut},
	}
}

// RegisterHandlers wires commands, dialog text and buttons, then publishes the
// command menu.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	cmds := c.commands()
	for _, cmd := range cmds {
		c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/"+cmd.name, bot.MatchTypeExact, cmd.handler)
	}

	// Dialog answers. Registered after the commands, which match exactly.
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx, cmds)
}

func (c *BotController) setCommands(ctx context.Context, cmds []command) error {
	menu := make([]models.BotCommand, 0, len(cmds))
	for _, cmd := range cmds {
		menu = append(menu, models.BotCommand{Command: cmd.name, Description: cmd.description})
	}

	if _, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: menu}); err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set", zap.Int("commands", len(menu)))
	return nil
}

// Start polls for updates until ctx is done.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
