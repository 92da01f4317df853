package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/cache"
	"github.com/kosarinj/lilys-dogboarding-app/internal/config"
	"github.com/kosarinj/lilys-dogboarding-app/internal/db"
	httpdelivery "github.com/kosarinj/lilys-dogboarding-app/internal/delivery/http"
	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
	"github.com/kosarinj/lilys-dogboarding-app/internal/logger"
	"github.com/kosarinj/lilys-dogboarding-app/internal/metrics"
)

type closer interface {
	Close() error
}

type App struct {
	f        *fiber.App
	cfg      config.Config
	log      *zap.Logger
	pool     *pgxpool.Pool
	denylist closer
}

func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(cfg.DatabaseURL, log); err != nil {
			return nil, err
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	denylist, err := newDenylist(cfg, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	f := fiber.New(fiber.Config{
		AppName:      "lilys-dogboarding-app",
		ErrorHandler: middleware.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	f.Use(recover.New())
	f.Use(fiberlogger.New())
	f.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
	}))
	f.Use(metrics.Middleware())

	httpdelivery.RegisterRoutes(f, httpdelivery.Deps{
		Config:   cfg,
		DB:       pool,
		Denylist: denylist,
		Log:      log,
	})

	return &App{f: f, cfg: cfg, log: log, pool: pool, denylist: denylist}, nil
}

type denylist interface {
	httpdelivery.Denylist
	closer
}

// newDenylist uses Redis when configured so revocations survive restarts and
// are shared between instances. Without it tokens are revoked in memory.
func newDenylist(cfg config.Config, log *zap.Logger) (denylist, error) {
	if cfg.RedisURL == "" {
		log.Warn("REDIS_URL not set; token revocations are kept in memory")
		return cache.NewMemoryDenylist(), nil
	}
	d, err := cache.NewRedisDenylist(cfg.RedisURL, log)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (a *App) Run() error {
	a.log.Info("http server starting", zap.String("port", a.cfg.Port), zap.String("env", a.cfg.AppEnv))
	return a.f.Listen(":" + a.cfg.Port)
}

// Shutdown stops accepting requests and releases the database and cache.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.f.ShutdownWithContext(ctx)
	if cerr := a.denylist.Close(); cerr != nil && err == nil {
		err = cerr
	}
	a.pool.Close()
	a.log.Info("http server stopped")
	_ = a.log.Sync()
	return err
}
