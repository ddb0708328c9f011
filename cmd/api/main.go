package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"go.uber.org/zap"

	httptransport "github.com/americanreliabletech/support-portal/internal/api/http"
	"github.com/americanreliabletech/support-portal/internal/api/http/handlers"
	"github.com/americanreliabletech/support-portal/internal/auth"
	"github.com/americanreliabletech/support-portal/internal/chat"
	"github.com/americanreliabletech/support-portal/internal/config"
	"github.com/americanreliabletech/support-portal/internal/events"
	"github.com/americanreliabletech/support-portal/internal/mail"
	"github.com/americanreliabletech/support-portal/internal/observability"
	"github.com/americanreliabletech/support-portal/internal/otp"
	"github.com/americanreliabletech/support-portal/internal/persistence"
	"github.com/americanreliabletech/support-portal/internal/repository"
	"github.com/americanreliabletech/support-portal/internal/service"
	"github.com/americanreliabletech/support-portal/internal/storage"
	"github.com/americanreliabletech/support-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	replyRepo := repository.NewReplyRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	mailer := mail.NewResendClient(cfg.Mail, logger)
	notificationService := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail, cfg.App.SiteURL)
	worker.StartNotificationWorker(notificationService)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		ReplyRepo:   replyRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
	})
	intakeService := service.NewIntakeService(dispatcher)
	authService := service.NewAuthService(cfg.Auth, profileRepo)
	otpService := service.NewOTPService(otp.NewStore(redis.Client, cfg.OTP.TTL()), dispatcher)

	avatarStore, err := storage.NewAvatarStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init avatar storage", zap.Error(err))
	}
	if avatarStore == nil {
		logger.Warn("avatar storage disabled, AVATAR_BUCKET not set")
	}
	profileService := service.NewProfileService(profileRepo, avatarStore, logger)

	var llm gollem.LLMClient
	if cfg.Chat.OpenAIAPIKey != "" {
		llm, err = openai.New(ctx, cfg.Chat.OpenAIAPIKey, openai.WithModel(cfg.Chat.Model))
		if err != nil {
			logger.Fatal("failed to init llm client", zap.Error(err))
		}
	} else {
		logger.Warn("chat assistant disabled, OPENAI_API_KEY not set")
	}
	chatService := chat.NewService(llm, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokenManager, profileRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, cfg.App.Version),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService),
		UserTickets:    handlers.NewUserTicketsHandler(ticketService),
		Chat:           handlers.NewChatHandler(chatService, ticketService, otpService, logger),
		Intake:         handlers.NewIntakeHandler(intakeService),
		Users:          handlers.NewUsersHandler(authService),
		Profile:        handlers.NewProfileHandler(profileService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
