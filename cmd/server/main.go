package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"notes-server/internal/config"
	"notes-server/internal/handler"
	"notes-server/internal/logger"
	"notes-server/internal/repository"
	"notes-server/internal/service"
	"notes-server/internal/websocket"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	envFile  string
	host     string
	port     string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "notes-server",
		Short:        "HTTP service for user-owned text notes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	flags.StringVar(&opts.host, "host", "", "listen host (overrides HOST)")
	flags.StringVar(&opts.port, "port", "", "listen port (overrides PORT)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, opts)

	if err := logger.InitLogger(cfg.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer logger.Log.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokenRepo := repository.NewTokenRepository()
	noteRepo := repository.NewNoteRepository()

	wsManager := websocket.NewManager(
		cfg.WebSocket.MaxConnPerUser,
		cfg.WebSocket.WriteWait,
		cfg.WebSocket.PongWait,
		cfg.WebSocket.PingPeriod,
	)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go wsManager.Run(hubCtx)

	authService := service.NewAuthService(tokenRepo)
	noteService := service.NewNoteService(noteRepo, wsManager)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(cfg, authService, noteService, wsManager),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("starting notes server",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	stopHub()

	logger.Log.Info("server stopped gracefully")
	return nil
}

func applyOverrides(cfg *config.Config, opts *options) {
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != "" {
		cfg.Server.Port = opts.port
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
}
