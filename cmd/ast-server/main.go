package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/viacotur/ast/internal/config"
	"github.com/viacotur/ast/internal/domain/contract"
	"github.com/viacotur/ast/internal/domain/employee"
	"github.com/viacotur/ast/internal/domain/safety"
	"github.com/viacotur/ast/internal/domain/telegram"
	"github.com/viacotur/ast/internal/platform/db"
	"github.com/viacotur/ast/internal/platform/middleware"
	"github.com/viacotur/ast/internal/platform/upstream"
	"github.com/viacotur/ast/internal/platform/web"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ast-server",
		Short: "Análisis Seguro de Trabajo form server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations for the database submission backend",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			migrator, schema, closeFn, err := openMigrator(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			fmt.Printf("Running migrations on schema: %s\n", schema)
			count, err := migrator.Up(ctx, schema)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			migrator, schema, closeFn, err := openMigrator(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			statuses, err := migrator.Status(ctx, schema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("Migration status for schema: %s\n", schema)
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}

	for _, c := range []*cobra.Command{upCmd, statusCmd} {
		c.Flags().String("schema", "", "Target schema (defaults to DB_SCHEMA)")
		c.Flags().String("dir", "./migrations", "Path to migrations directory")
		cmd.AddCommand(c)
	}

	return cmd
}

func openMigrator(ctx context.Context, cmd *cobra.Command) (*db.Migrator, string, func(), error) {
	schema, _ := cmd.Flags().GetString("schema")
	dir, _ := cmd.Flags().GetString("dir")

	cfg, err := config.Load()
	if err != nil {
		return nil, "", nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, "", nil, errors.New("DATABASE_URL is required to run migrations")
	}
	if schema == "" {
		schema = cfg.DBSchema
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, "", nil, err
	}
	return db.NewMigrator(pool, dir), schema, pool.Close, nil
}

// newLogger writes JSON to stdout, or console output when dev is set.
// Unknown levels fall back to info.
func newLogger(dev bool, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if dev {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(lvl)
}

// newSubmitter wires the configured backend. lazy is only used by the
// database backend.
func newSubmitter(cfg *config.Config, erp *upstream.Client, lazy *db.LazyPool, logger zerolog.Logger) safety.Submitter {
	if cfg.UsesDatabase() {
		return safety.NewStoreSubmitter(safety.NewRepo(lazy))
	}
	return safety.NewERPSubmitter(erp, logger.With().Str("component", "erp").Logger())
}

// newServer builds the echo instance. The returned pool is nil unless the
// database backend is configured; it connects on first use.
func newServer(cfg *config.Config, logger zerolog.Logger) (*echo.Echo, *db.LazyPool, error) {
	directoryClient, err := upstream.New("directory", cfg.DirectoryURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		return nil, nil, err
	}
	botClient, err := upstream.New("telegram", cfg.TelegramBotURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		return nil, nil, err
	}
	erpClient, err := upstream.New("erp", cfg.ERPURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		return nil, nil, err
	}

	var lazy *db.LazyPool
	if cfg.UsesDatabase() {
		lazy = db.NewLazyPool(cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	if lazy != nil {
		e.GET("/health/db", db.HealthHandler(lazy))
	}

	web.RegisterRoutes(e)

	api := e.Group("/api")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	employee.NewHandler(employee.NewDirectory(directoryClient), logger).RegisterRoutes(api)
	telegram.NewHandler(telegram.NewBot(botClient), logger).RegisterRoutes(api)
	safety.NewHandler(newSubmitter(cfg, erpClient, lazy, logger), logger).RegisterRoutes(api)
	contract.NewHandler(contract.NewFileSnapshot(cfg.SnapshotPath), logger).RegisterRoutes(api)

	return e, lazy, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.IsDev(), cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}

	e, lazy, err := newServer(cfg, logger)
	if err != nil {
		return err
	}
	if lazy != nil {
		defer lazy.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		addr := ":" + cfg.Port
		logger.Info().
			Str("addr", addr).
			Str("submission_backend", cfg.SubmissionBackend).
			Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
