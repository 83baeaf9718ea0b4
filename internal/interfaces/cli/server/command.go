package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	notificationUC "fieldops/internal/application/notification/usecases"
	"fieldops/internal/application/ticket/services"
	ticketUC "fieldops/internal/application/ticket/usecases"
	userUC "fieldops/internal/application/user/usecases"
	"fieldops/internal/domain/notification"
	"fieldops/internal/domain/shared/events"
	"fieldops/internal/domain/ticket"
	ticketVO "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/domain/user"
	"fieldops/internal/infrastructure/auth"
	"fieldops/internal/infrastructure/config"
	"fieldops/internal/infrastructure/database"
	"fieldops/internal/infrastructure/email"
	"fieldops/internal/infrastructure/localstore"
	"fieldops/internal/infrastructure/migration"
	"fieldops/internal/infrastructure/permission"
	"fieldops/internal/infrastructure/persistence/seeds"
	"fieldops/internal/infrastructure/pubsub"
	"fieldops/internal/infrastructure/repository"
	notificationHandlers "fieldops/internal/interfaces/http/handlers/notification"
	ticketHandlers "fieldops/internal/interfaces/http/handlers/ticket"
	userHandlers "fieldops/internal/interfaces/http/handlers/user"
	"fieldops/internal/interfaces/http/middleware"
	"fieldops/internal/interfaces/http/routes"
	shareddb "fieldops/internal/shared/db"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/services/markdown"
)

var (
	env         string
	autoMigrate bool
	seedDemo    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the fieldops HTTP server with the configured storage driver.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (mysql driver only)")
	cmd.Flags().BoolVar(&seedDemo, "seed", false, "Seed demo profiles and tickets on startup (mysql driver only)")

	return cmd
}

// changeBus is both an event handler on the in-process dispatcher and the
// invalidation source the ticket feeds subscribe to.
type changeBus interface {
	events.EventHandler
	services.InvalidationSource
}

// stores groups the persistence ports the rest of the wiring consumes, so
// the storage driver switch stays in one place.
type stores struct {
	tickets       ticket.TicketRepository
	activities    ticket.ActivityRepository
	profiles      user.ProfileRepository
	notifications notification.NotificationRepository
	txManager     ticketUC.TransactionManager
	enforcer      *permission.Enforcer
	close         func()
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = ginMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "storage_driver", cfg.Storage.Driver)

	gin.DefaultWriter = io.Discard

	st, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	if err := permission.InitTicketPermissions(st.enforcer, log); err != nil {
		return fmt.Errorf("failed to bootstrap permissions: %w", err)
	}

	dispatcher := events.NewInMemoryEventDispatcher(100)
	if err := dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := dispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	bus, err := buildChangeBus(cfg, log)
	if err != nil {
		return err
	}

	var alerts notificationUC.CriticalAlertSender = email.NoopAlertSender{}
	if cfg.Email.Enabled {
		alerts = email.NewSMTPAlertSender(&cfg.Email, log)
	}
	notifier := notificationUC.NewTicketEventNotifier(st.notifications, st.tickets, alerts, log)

	ticketEventTypes := []string{
		ticket.EventTypeTicketCreated,
		ticket.EventTypeTicketUpdated,
		ticket.EventTypeTicketStatusChanged,
		ticket.EventTypeTicketAssigned,
		ticket.EventTypeTicketUnassigned,
		ticket.EventTypeTicketDeleted,
		ticket.EventTypeCommentAdded,
		ticket.EventTypeMediaUploaded,
	}
	for _, eventType := range ticketEventTypes {
		if err := dispatcher.Subscribe(eventType, bus); err != nil {
			return fmt.Errorf("failed to subscribe change bus to %s: %w", eventType, err)
		}
		if notifier.CanHandle(eventType) {
			if err := dispatcher.Subscribe(eventType, notifier); err != nil {
				return fmt.Errorf("failed to subscribe notifier to %s: %w", eventType, err)
			}
		}
	}

	policy := ticketVO.NewTransitionPolicy(cfg.Tickets.StrictTransitions)
	numberGen := ticket.NewDefaultNumberGenerator()
	markdownSvc := markdown.NewService()

	ticketHandler := ticketHandlers.NewTicketHandler(
		ticketUC.NewCreateTicketUseCase(st.tickets, st.activities, numberGen, st.txManager, dispatcher, log),
		ticketUC.NewUpdateTicketUseCase(st.tickets, st.activities, st.txManager, policy, dispatcher, log),
		ticketUC.NewChangeStatusUseCase(st.tickets, st.activities, st.txManager, policy, dispatcher, log),
		ticketUC.NewAssignTicketUseCase(st.tickets, st.activities, st.profiles, st.txManager, dispatcher, log),
		ticketUC.NewAddCommentUseCase(st.tickets, st.activities, markdownSvc, dispatcher, log),
		ticketUC.NewAddMediaUseCase(st.tickets, st.activities, st.txManager, dispatcher, log),
		ticketUC.NewDeleteTicketUseCase(st.tickets, st.activities, st.txManager, dispatcher, log),
		ticketUC.NewGetTicketUseCase(st.tickets, st.activities, log),
		ticketUC.NewGetTicketActivitiesUseCase(st.tickets, st.activities, log),
		ticketUC.NewListTicketsUseCase(st.tickets, log),
		ticketUC.NewGetTicketStatsUseCase(st.tickets, log),
		log,
	)

	feedDebounce := time.Duration(cfg.Tickets.FeedDebounceMS) * time.Millisecond
	feedHandler := ticketHandlers.NewFeedHandler(st.tickets, bus, feedDebounce, log)

	notificationHandler := notificationHandlers.NewNotificationHandler(
		notificationUC.NewListNotificationsUseCase(st.notifications, log),
		notificationUC.NewMarkReadUseCase(st.notifications, log),
		log,
	)

	userHandler := userHandlers.NewUserHandler(
		userUC.NewGetProfileUseCase(st.profiles, log),
		userUC.NewListAssignableUseCase(st.profiles, log),
		log,
	)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, st.profiles, log)
	permissionMiddleware := middleware.NewPermissionMiddleware(st.enforcer, log)

	engine := routes.NewRouter(&routes.RouterConfig{
		Mode:           cfg.Server.Mode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
		Ticket: &routes.TicketRouteConfig{
			TicketHandler:        ticketHandler,
			FeedHandler:          feedHandler,
			AuthMiddleware:       authMiddleware,
			PermissionMiddleware: permissionMiddleware,
		},
		Notification: &routes.NotificationRouteConfig{
			NotificationHandler:  notificationHandler,
			AuthMiddleware:       authMiddleware,
			PermissionMiddleware: permissionMiddleware,
		},
		User: &routes.UserRouteConfig{
			UserHandler:          userHandler,
			AuthMiddleware:       authMiddleware,
			PermissionMiddleware: permissionMiddleware,
		},
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // the feed endpoint streams indefinitely
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func ginMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func buildStores(cfg *config.Config, log logger.Interface) (*stores, error) {
	if cfg.Storage.Driver == "local" {
		return buildLocalStores(cfg, log)
	}
	return buildMySQLStores(cfg, log)
}

func buildMySQLStores(cfg *config.Config, log logger.Interface) (*stores, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb := database.Get()

	if autoMigrate {
		if err := migration.Run(gdb, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	if seedDemo {
		if err := seeds.SeedProfiles(gdb); err != nil {
			return nil, fmt.Errorf("failed to seed profiles: %w", err)
		}
		if err := seeds.SeedTickets(gdb); err != nil {
			return nil, fmt.Errorf("failed to seed tickets: %w", err)
		}
	}

	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	return &stores{
		tickets:       repository.NewTicketRepository(gdb),
		activities:    repository.NewActivityRepository(gdb),
		profiles:      repository.NewProfileRepository(gdb),
		notifications: repository.NewNotificationRepository(gdb),
		txManager:     shareddb.NewTransactionManager(gdb),
		enforcer:      enforcer,
		close: func() {
			if err := database.Close(); err != nil {
				log.Errorw("failed to close database", "error", err)
			}
		},
	}, nil
}

func buildLocalStores(cfg *config.Config, log logger.Interface) (*stores, error) {
	fixture := seeds.NewFixture()

	store, err := localstore.NewStore(cfg.Storage.LocalPath, fixture, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	profiles, err := fixture.Profiles()
	if err != nil {
		return nil, fmt.Errorf("failed to build fixture profiles: %w", err)
	}

	enforcer, err := permission.NewMemoryEnforcer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	return &stores{
		tickets:       store,
		activities:    store.Activities(),
		profiles:      localstore.NewProfileStore(profiles),
		notifications: localstore.NewNotificationStore(),
		txManager:     shareddb.NewPassthroughTransactionManager(),
		enforcer:      enforcer,
		close:         func() {},
	}, nil
}

func buildChangeBus(cfg *config.Config, log logger.Interface) (changeBus, error) {
	if !cfg.Redis.Enabled {
		log.Info("redis disabled, using in-process ticket change bus")
		return pubsub.NewLocalTicketChangeBus(log), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return pubsub.NewRedisTicketChangeBus(client, log), nil
}
