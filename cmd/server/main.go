package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	flag "github.com/spf13/pflag"

	"github.com/ahmadalnaib/project-board/internal/config"
	"github.com/ahmadalnaib/project-board/internal/db"
	"github.com/ahmadalnaib/project-board/internal/export"
	"github.com/ahmadalnaib/project-board/internal/factory"
	"github.com/ahmadalnaib/project-board/internal/httpapi"
	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/middleware"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, logOut io.Writer) error {
	flagSet := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := flagSet.String("config", ".", "Directory containing config.yaml")
	driver := flagSet.String("store", "", "Store driver override (postgres|memory)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("store") {
		cfg.Store.Driver = *driver
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := newLogger(cfg.Log, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Seed.Projects > 0 {
		f := factory.New(cfg.Seed.RandomSeed, time.Now())
		counts := factory.Counts{
			Users:           cfg.Seed.Users,
			Projects:        cfg.Seed.Projects,
			TasksPerProject: cfg.Seed.TasksPerProject,
		}
		if _, err := factory.Seed(ctx, store, f, counts, logger); err != nil {
			return err
		}
	}

	executor := listing.NewExecutor(
		listing.WithPerPage(cfg.Listing.PerPage),
		listing.WithOnEachSide(cfg.Listing.OnEachSide),
		listing.WithLogger(logger),
	)
	exports := export.NewHTTPHandler(export.NewService(export.WithLogger(logger)), store)
	api := httpapi.NewHandler(store, executor,
		httpapi.WithLogger(logger),
		httpapi.WithExports(exports),
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	handler := corsHandler.Handler(
		middleware.LoggingMiddleware(logger)(
			middleware.UserMiddleware(
				middleware.DataLoaderMiddleware(store)(api),
			),
		),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func newLogger(cfg config.LogConfig, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.Store, func(), error) {
	if cfg.Store.Driver == config.DriverMemory {
		logger.Info("using in-memory store")
		return repository.NewMemoryStore().Store(), func() {}, nil
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return repository.Store{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.RunMigrations(cfg.Database, logger); err != nil {
		conn.Close()
		return repository.Store{}, nil, err
	}
	return repository.NewPostgresStore(conn.Pool), conn.Close, nil
}
