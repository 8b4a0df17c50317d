package api

import (
	"context"
	"net/http"
	"time"

	"feiyi/internal/api/handlers"
	"feiyi/pkg/metrics"
	"feiyi/pkg/middleware"
	"feiyi/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Pinger is satisfied by the content store handle.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Catalog *handlers.CatalogHandler
	Chat    *handlers.ChatHandler
	Pages   *handlers.PageHandler
}

type Options struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func SetupRouter(
	h Handlers,
	views fiber.Views,
	db Pinger,
	m *metrics.Metrics,
	opts Options,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(middleware.RequestLogger(appLogger, m))

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.StaticFS()),
		MaxAge: 3600,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			appLogger.Error("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Pages
	app.Get("/", h.Pages.Index)
	app.Get("/categories", h.Pages.Categories)
	app.Get("/category/:id", h.Pages.CategoryDetail)
	app.Get("/item/:id", h.Pages.ItemDetail)
	app.Get("/knowledge", h.Pages.Knowledge)
	app.Get("/search", h.Pages.Search)
	app.Get("/ai-chat", h.Pages.AIChat)

	// JSON API
	api := app.Group("/api")
	api.Get("/categories", h.Catalog.ListCategories)
	api.Get("/category/:id", h.Catalog.GetCategory)
	api.Get("/items", h.Catalog.ListItems)
	api.Get("/item/:id", h.Catalog.GetItem)
	api.Get("/knowledge", h.Catalog.ListKnowledge)
	api.Get("/search", h.Catalog.Search)

	ai := api.Group("/ai")
	ai.Post("/chat", h.Chat.Chat)
	ai.Get("/status", h.Chat.Status)
	ai.Get("/history", h.Chat.History)

	return app
}
