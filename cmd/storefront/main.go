package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/mail"
	"storefront/internal/repos"
	"storefront/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := applog.New(cfg.Env, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	applog.Set(zl)

	// Snapshot persistence
	var store repos.SnapshotStore
	switch cfg.PersistDriver {
	case "sqlite":
		db, err := repos.OpenDB(cfg.SnapshotDSN)
		if err != nil {
			log.Fatalf("open snapshot db: %v", err)
		}
		defer db.Close()
		store = repos.NewSQLiteSnapshotStore(db)
	default:
		store = repos.NewFileSnapshotStore(cfg.ProductsPath, cfg.HistoryPath)
	}

	sender := mail.New(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		UseTLS:   cfg.SMTP.UseTLS,
	})

	deps, err := handlers.NewDeps(cfg, store, sender)
	if err != nil {
		log.Fatalf("wiring: %v", err)
	}
	// Unreadable snapshots start the catalog empty.
	if err := deps.Catalog.Load(); err != nil {
		applog.Warn(nil, "persist.load.fail", err, nil)
	}
	if cfg.SeedDemoOnEmpty {
		if n, err := deps.Catalog.SeedIfEmpty(services.DemoProducts()); err != nil {
			applog.Warn(nil, "seed.fail", err, nil)
		} else if n > 0 {
			applog.Info(nil, "seed.demo", map[string]any{"products": n})
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendOrigin,
		AllowCredentials: cfg.FrontendOrigin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/webhooks/payoneer"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate_limited", "detail": "rate limit exceeded, retry soon"})
		},
	}))

	handlers.Register(app, deps, handlers.RouteOptions{AuthLimit: 5, AuthWindow: 10 * time.Minute})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		applog.Info(nil, "server.shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "persist": cfg.PersistDriver})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
