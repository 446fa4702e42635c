package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/absence-request/internal"
	"github.com/frahmantamala/absence-request/internal/absence"
	absencePostgres "github.com/frahmantamala/absence-request/internal/absence/postgres"
	"github.com/frahmantamala/absence-request/internal/activity"
	activityPostgres "github.com/frahmantamala/absence-request/internal/activity/postgres"
	"github.com/frahmantamala/absence-request/internal/auth"
	"github.com/frahmantamala/absence-request/internal/core/events"
	"github.com/frahmantamala/absence-request/internal/transport"
	"github.com/frahmantamala/absence-request/internal/transport/rest"
	"github.com/frahmantamala/absence-request/internal/user"
	userPostgres "github.com/frahmantamala/absence-request/internal/user/postgres"
	"github.com/frahmantamala/absence-request/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "strict_transitions", deps.Config.Absence.StrictTransitions)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.EventBus.Drain(ctx); err != nil {
			deps.Logger.Warn("event handlers still running at shutdown", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.DB.Close()
			os.Exit(1)
		}
	}

	if err := deps.DB.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	cfg := deps.Config

	hasher := auth.NewBcryptHasher(cfg.Security.BCryptCost)
	userRepo := userPostgres.NewUserRepository(deps.Gorm)
	userService := user.NewService(userRepo, hasher, lg)
	authService := auth.NewService(userRepo, hasher, lg)

	absence.NewNotifier(lg).RegisterEventHandlers(deps.EventBus)
	absenceRepo := absencePostgres.NewRequestRepository(deps.Gorm, deps.DB)
	absenceService := absence.NewService(absenceRepo, deps.EventBus, absence.Options{
		StrictTransitions: cfg.Absence.StrictTransitions,
		WindowMonths:      cfg.Absence.WindowMonths,
	}, lg)

	activityService := activity.NewService(activityPostgres.NewActivityRepository(deps.Gorm), lg)

	baseHandler := transport.NewBaseHandler(lg)
	rest.RegisterAllRoutes(deps.Router, deps.DB.DB,
		auth.NewHandler(baseHandler, authService),
		user.NewHandler(baseHandler, userService),
		absence.NewHandler(baseHandler, absenceService),
		activity.NewHandler(baseHandler, activityService),
		lg,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.L()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gormDB,
		EventBus: events.NewEventBus(lg),
		Router:   chi.NewRouter(),
		Logger:   lg,
	}, nil
}
