package server

import (
	"log"
	"net/http"

	"ai-code-debugger/internal/bootstrap"
	"ai-code-debugger/internal/config"
	"ai-code-debugger/internal/pkg/serverutils"
	ws "ai-code-debugger/internal/websocket"
	"ai-code-debugger/web"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/websocket/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, cfg, container)

	// Embedded frontend, registered last so API routes win
	app.Use("/", filesystem.New(filesystem.Config{
		Root:       http.FS(web.StaticFS),
		PathPrefix: "static",
		Index:      "index.html",
	}))

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	auth := serverutils.ClientTokenMiddleware(cfg.App.JWTSecret)

	c.ClientController.RegisterRoutes(api)
	c.AnalysisController.RegisterRoutes(api, auth)
	c.ChatController.RegisterRoutes(api, auth)

	registerWebsocket(app, cfg, c)
}

func registerWebsocket(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	// Browsers cannot set headers on websocket handshakes, so the token
	// rides the query string.
	app.Use("/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		clientID, err := serverutils.ParseClientToken(cfg.App.JWTSecret, ctx.Query("token"))
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}
		ctx.Locals("client_id", clientID)
		return ctx.Next()
	})

	app.Get("/ws/v1/events", websocket.New(func(conn *websocket.Conn) {
		clientID := conn.Locals("client_id").(string)
		ws.ServeWs(c.WebSocketHub, conn, clientID)
	}))
}
