package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/di"
)

const shutdownTimeout = 30 * time.Second

// ServeOptions are flags that override loaded configuration.
type ServeOptions struct {
	Address       string
	DataDir       string
	NoPersistence bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(load configLoader) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "listen address (overrides SERVER_ADDRESS)")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "snapshot directory (overrides DATA_DIR)")
	cmd.Flags().BoolVar(&opts.NoPersistence, "no-persistence", false, "keep the workspace in memory only")

	return cmd
}

func (o *ServeOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.ServerAddress = o.Address
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = o.DataDir
	}
	if flags.Changed("no-persistence") && o.NoPersistence {
		cfg.EnablePersistence = false
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing container: %w", err)
	}
	defer cleanup()
	logger := container.Logger
	defer func() { _ = logger.Sync() }()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		watcher, err := config.NewWatcher(path, cfg, config.LoadConfig, logger)
		if err != nil {
			logger.Warn("Configuration hot reloading unavailable", zap.Error(err))
		} else {
			watcher.OnChange(container.ApplyConfig)
			defer watcher.Stop()
		}
	}

	// Streams derive their context from baseCtx so they end as soon as
	// shutdown starts instead of holding Shutdown open until the timeout.
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           container.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Bool("persistent", container.Store.Persistent()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	cancelStreams()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("Server stopped")
	return nil
}
