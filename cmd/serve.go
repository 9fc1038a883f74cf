// ABOUTME: Serve command running the capacity planner HTTP API
// ABOUTME: Wires config, session storage, middleware, and graceful shutdown

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/capacity-planner/cache"
	"github.com/markalston/capacity-planner/config"
	"github.com/markalston/capacity-planner/handlers"
	"github.com/markalston/capacity-planner/logger"
	"github.com/markalston/capacity-planner/middleware"
	"github.com/markalston/capacity-planner/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	servePort string
	envFile   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the capacity planner HTTP API.

Configuration comes from environment variables, optionally loaded from a .env file.

Environment Variables:
  PORT                   Listen port (default: 8080)
  CACHE_TTL              Seconds to memoize calculations (default: 300)
  SESSION_BACKEND        memory, file, bolt, or redis (default: memory)
  SESSION_TTL            Session lifetime in seconds for memory and redis (default: 86400)
  SESSION_DIR            Directory for the file backend
  SESSION_BOLT_PATH      Database file for the bolt backend (default: capacity-planner.db)
  REDIS_ADDR             Redis address (default: localhost:6379)
  REDIS_PASSWORD         Redis password
  REDIS_DB               Redis database number
  CORS_ALLOWED_ORIGINS   Comma-separated origins allowed to call the API
  RATE_LIMIT_ENABLED     Enable per-client rate limits (default: true)
  RATE_LIMIT_WRITE       Write requests per minute (default: 30)
  RATE_LIMIT_DEFAULT     Other requests per minute (default: 100)
  DEFAULT_PROVIDER_MODE  neutral or aws-equivalent (default: neutral)
  LOG_LEVEL, LOG_FORMAT  debug|info|warn|error and text|json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(envFile); err != nil {
			return err
		}
		logger.Init()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if servePort != "" {
			cfg.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", ":"+cfg.Port)
		if err != nil {
			return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
		}
		return runServer(ctx, cfg, ln)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides PORT)")
	serveCmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
}

// openSessionBackend opens the configured session store and the func that releases it
func openSessionBackend(cfg *config.Config) (storage.Store, func() error, error) {
	ttl := time.Duration(cfg.SessionTTL) * time.Second

	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		m := storage.NewMemory(ttl)
		return m, m.Close, nil
	case config.SessionBackendFile:
		dir := cfg.SessionDir
		if dir == "" {
			dir = storage.DefaultDir()
		}
		if dir == "" {
			return nil, nil, errors.New("cannot resolve session directory; set SESSION_DIR")
		}
		return storage.NewFile(dir), func() error { return nil }, nil
	case config.SessionBackendBolt:
		b, err := storage.NewBolt(cfg.SessionBoltPath)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case config.SessionBackendRedis:
		r, err := storage.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, ttl)
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown session backend: %s", cfg.SessionBackend)
}

// newRouter registers every API route with logging, CORS, and rate limiting,
// plus a preflight route per path
func newRouter(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	var writeLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		writeLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	cors := middleware.CORSWithConfig(cfg.CORSAllowedOrigins)
	mux := http.NewServeMux()
	preflight := make(map[string]bool)

	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.IsWrite() {
			limiter = writeLimiter
		}
		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientKey),
		))

		if !preflight[route.Path] {
			preflight[route.Path] = true
			mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(noContent, cors))
		}
	}
	return mux
}

// noContent is the terminal handler for preflight requests CORS lets through
func noContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// runServer serves the API on ln until ctx is cancelled, then shuts down gracefully
func runServer(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	store, closeStore, err := openSessionBackend(cfg)
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to open session storage: %w", err)
	}
	defer closeStore()
	slog.Info("Session storage initialized", "backend", cfg.SessionBackend)

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, c, store)
	srv := &http.Server{
		Handler:           newRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
