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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/todolist/internal/api"
	"github.com/mesh-intelligence/todolist/internal/logging"
	"github.com/mesh-intelligence/todolist/internal/ratelimit"
	"github.com/mesh-intelligence/todolist/pkg/sqlite"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Attach the store and serve the teams and items API until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, s)
		},
	}
}

func runServe(ctx context.Context, s *settings) error {
	logger, err := logging.New(s.LogLevel, s.LogDevelopment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(s.Mode)

	store := sqlite.NewBackend()
	if err := store.Attach(s.storeConfig()); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer func() {
		if err := store.Detach(); err != nil {
			logger.Warn("detach store", zap.Error(err))
		}
	}()

	opts := api.Options{Logger: logger}
	if s.RedisURL != "" {
		limiter, err := ratelimit.NewRateLimiter(ctx, s.RedisURL)
		if err != nil {
			return err
		}
		defer limiter.Close()
		opts.RateLimit = api.RateLimit(limiter, s.RateLimit, s.RateWindow, logger)
		logger.Info("rate limiting enabled", zap.Int("limit", s.RateLimit), zap.Duration("window", s.RateWindow))
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Addr, err)
	}
	logger.Info("serving",
		zap.String("addr", ln.Addr().String()),
		zap.String("backend", s.Backend),
		zap.String("data_dir", s.DataDir))

	srv := &http.Server{
		Handler:           api.NewRouter(store, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, ln, logger)
}

// serve runs srv on ln until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *zap.Logger) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
