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

	"github.com/frahmantamala/helpdesk/internal"
	"github.com/frahmantamala/helpdesk/internal/article"
	articlepg "github.com/frahmantamala/helpdesk/internal/article/postgres"
	"github.com/frahmantamala/helpdesk/internal/assistant"
	"github.com/frahmantamala/helpdesk/internal/auth"
	authpg "github.com/frahmantamala/helpdesk/internal/auth/postgres"
	"github.com/frahmantamala/helpdesk/internal/filestore"
	"github.com/frahmantamala/helpdesk/internal/genai"
	"github.com/frahmantamala/helpdesk/internal/ticket"
	ticketpg "github.com/frahmantamala/helpdesk/internal/ticket/postgres"
	"github.com/frahmantamala/helpdesk/internal/transport/rest"
	"github.com/frahmantamala/helpdesk/internal/transport/swagger"
	"github.com/frahmantamala/helpdesk/internal/user"
	userpg "github.com/frahmantamala/helpdesk/internal/user/postgres"
	"github.com/frahmantamala/helpdesk/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const openAPISpecPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config           *internal.Config
	DB               *sqlx.DB
	Router           *chi.Mux
	Logger           *slog.Logger
	AuthHandler      *auth.Handler
	UserHandler      *user.Handler
	ArticleHandler   *article.Handler
	TicketHandler    *ticket.Handler
	AssistantHandler *assistant.Handler
	UploadsDir       string
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.UserHandler,
		deps.ArticleHandler, deps.TicketHandler, deps.AssistantHandler, deps.UploadsDir,
		deps.Config.Server.Origins(), deps.Logger)

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
	log := logger.LoggerWrapper()

	if err := swagger.ValidateSpec(context.Background(), openAPISpecPath); err != nil {
		// a missing or broken contract should not keep the API down,
		// only the Swagger UI suffers
		log.Warn("openapi spec validation failed", "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	files, err := filestore.NewLocal(config.Storage.UploadDir, config.Storage.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// repositories
	userRepo := userpg.NewUserRepository(gormDB)
	authRepo := authpg.NewRepository(gormDB)
	articleRepo := articlepg.NewArticleRepository(gormDB, db)
	ticketRepo := ticketpg.NewTicketRepository(gormDB)

	// services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen)
	userService := user.NewService(userRepo, config.Security.BCryptCost, log)
	articleService := article.NewService(articleRepo, log)
	ticketService := ticket.NewService(ticketRepo, files, log)

	generator := genai.NewGeneratorFromConfig(config.Assistant, log)
	assistantService := assistant.NewService(articleService, generator,
		config.Assistant.MockMode(), config.Assistant.Temperature, log)

	return &Dependencies{
		Config:           config,
		Logger:           log,
		DB:               db,
		Router:           chi.NewRouter(),
		AuthHandler:      auth.NewHandler(authService),
		UserHandler:      user.NewHandler(userService),
		ArticleHandler:   article.NewHandler(articleService),
		TicketHandler:    ticket.NewHandler(ticketService),
		AssistantHandler: assistant.NewHandler(assistantService),
		UploadsDir:       files.Dir(),
	}, nil
}

// initDB opens the connection pool through the pgx stdlib driver
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
