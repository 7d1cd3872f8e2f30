package handlers

import (
	"github.com/Freeeeeet/labbooking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/labbooking_bot/internal/controller/state"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers answers slash commands and dialog text messages.
type Handlers struct {
	teacherService *service.TeacherService
	bookingService *service.BookingService
	screens        *common.Screens
	stateManager   *state.Manager
	logger         *zap.Logger
}

func NewHandlers(
	teacherService *service.TeacherService,
	bookingService *service.BookingService,
	screens *common.Screens,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		teacherService: teacherService,
		bookingService: bookingService,
		screens:        screens,
		stateManager:   stateManager,
		logger:         logger,
	}
}
