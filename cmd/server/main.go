// Command registrar-server starts the university registration HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusware/registrar/internal/authz"
	"github.com/campusware/registrar/internal/config"
	"github.com/campusware/registrar/internal/limiter"
	"github.com/campusware/registrar/internal/migrate"
	"github.com/campusware/registrar/internal/repository/postgres"
	httpserver "github.com/campusware/registrar/internal/server/http"
	"github.com/campusware/registrar/internal/service"
	"github.com/campusware/registrar/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the REST API until
// the process receives SIGINT or SIGTERM.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.HTTP.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	// Session store
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}
	sessions := session.NewRedisStore(rdb)

	// Repositories
	db := &postgres.DB{Pool: pool}
	members := postgres.NewMemberRepo(db)
	ownership := postgres.NewOwnershipRepo(db)
	procs := postgres.NewProcedures(db)

	lim := limiter.NewPG(pool, cfg.Limiter.Window, cfg.Limiter.MaxFails, cfg.Limiter.BlockFor)

	// Services
	authSvc := service.NewAuthService(members, procs, sessions, lim, []byte(cfg.Session.Secret), cfg.Session.TTL)
	registrar := service.NewRegistrar(procs)
	guard := authz.NewGuard(ownership)

	router := httpserver.NewRouter(httpserver.Deps{
		Auth:      authSvc,
		Registrar: registrar,
		Guard:     guard,
		Ownership: ownership,
		Log:       logger,
		Cookies:   session.CookieOptions{Secure: cfg.Session.SecureCookies},
	})
	srv := httpserver.New(cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
