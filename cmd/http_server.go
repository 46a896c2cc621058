package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"expensehub/internal"
	"expensehub/internal/auth"
	authPostgres "expensehub/internal/auth/postgres"
	"expensehub/internal/company"
	companyPostgres "expensehub/internal/company/postgres"
	"expensehub/internal/core/events"
	"expensehub/internal/expense"
	expensePostgres "expensehub/internal/expense/postgres"
	"expensehub/internal/transport/rest"
	"expensehub/internal/user"
	userPostgres "expensehub/internal/user/postgres"
	"expensehub/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler    *auth.Handler
	UserHandler    *user.Handler
	CompanyHandler *company.Handler
	ExpenseHandler *expense.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.UserHandler, deps.CompanyHandler, deps.ExpenseHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerAuditSubscribers(bus, lg)

	policy := auth.NewPolicy()

	accountRepo := authPostgres.NewAccountRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	companyRepo := companyPostgres.NewCompanyRepository(gormDB)
	expenseRepo := expensePostgres.NewExpenseRepository(gormDB)

	codec := auth.NewJWTCodec(config.Security.JWTSecret, config.Security.TokenTTL)

	authService := auth.NewService(accountRepo, codec, bus, lg, config.Security.BCryptCost)
	userService := user.NewService(userRepo, policy, bus, lg, config.Security.BCryptCost)
	companyService := company.NewService(companyRepo, policy, lg)
	expenseService := expense.NewService(expenseRepo, userRepo, policy, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Logger: lg,

		AuthHandler:    auth.NewHandler(authService),
		UserHandler:    user.NewHandler(userService),
		CompanyHandler: company.NewHandler(companyService),
		ExpenseHandler: expense.NewHandler(expenseService),
	}, nil
}

// registerAuditSubscribers logs directory changes as they happen. The bus
// delivers asynchronously so a slow sink never blocks a request.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeUserCreated, audit)
	bus.Subscribe(events.EventTypeUserDeleted, audit)
	bus.Subscribe(events.EventTypeLoginSucceeded, audit)
	bus.Subscribe(events.EventTypePasswordChanged, audit)
}

// initDB opens one pgx connection pool and hands it to both sqlx (health
// checks, raw queries) and gorm (repositories).
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	return dbConn, gormDB, nil
}
