package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/labbooking_bot/internal/app"
	"github.com/Freeeeeet/labbooking_bot/internal/config"
	"github.com/Freeeeeet/labbooking_bot/internal/controller"
	"github.com/Freeeeeet/labbooking_bot/internal/repository"
	"github.com/Freeeeeet/labbooking_bot/internal/repository/memory"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type stores struct {
	bookings service.BookingStore
	teachers service.TeacherStore
	sessions service.SessionStore
	close    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Sugar().Infow("Starting AgendaLEI bot",
		"environment", cfg.Environment,
		"storage", cfg.Storage,
		"timezone", cfg.Location.String(),
		"token_length", len(cfg.TelegramToken))

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	cal := schedule.NewCalendar(schedule.RealClock{}, cfg.Location)
	engine := schedule.NewEngine(cal)

	teacherService := service.NewTeacherService(st.teachers, st.sessions, logger)
	bookingService := service.NewBookingService(st.bookings, engine, logger)

	scheduler := app.NewScheduler(bookingService, cfg.CompletionInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	botController := controller.NewBotController(b, teacherService, bookingService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// The menu is cosmetic; the bot works without it.
		logger.Warn("Continuing without command menu", zap.Error(err))
	}

	return botController.Start(ctx)
}

// openStores builds the record stores selected by cfg.Storage.
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		teachers := memory.NewTeacherStore()
		return &stores{
			bookings: memory.NewBookingStore(),
			teachers: teachers,
			sessions: memory.NewSessionStore(teachers),
			close:    func() {},
		}, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
		if err != nil {
			return nil, fmt.Errorf("create db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		logger.Info("✅ Connected to database")

		if err := migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}

		return &stores{
			bookings: repository.NewBookingRepository(pool),
			teachers: repository.NewTeacherRepository(pool),
			sessions: repository.NewSessionRepository(pool),
			close:    pool.Close,
		}, nil
	}

	return nil, errors.New("unknown storage: " + cfg.Storage)
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	if err := migrator.Run(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
