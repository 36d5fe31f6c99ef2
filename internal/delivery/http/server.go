package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/matjib/matjib-backend/internal/config"
	"github.com/matjib/matjib-backend/internal/delivery/http/handler"
	"github.com/matjib/matjib-backend/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	searchHandler     *handler.SearchHandler
	blogSearchHandler *handler.BlogSearchHandler
	authHandler       *handler.AuthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	searchHandler *handler.SearchHandler,
	blogSearchHandler *handler.BlogSearchHandler,
	authHandler *handler.AuthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Matjib Backend",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		searchHandler:     searchHandler,
		blogSearchHandler: blogSearchHandler,
		authHandler:       authHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public data portal routes
	public := api.Group("/public")
	public.Get("/search", s.searchHandler.Search)
	public.Get("/baroApi", s.searchHandler.LookupRegions)

	// Naver Blog search
	api.Get("/search", s.blogSearchHandler.Search)

	// OAuth brokering
	api.Get("/naver/auth-url", s.authHandler.NaverAuthURL)
	api.Get("/naver/callback", s.authHandler.NaverCallback)
	api.Get("/kakao/auth-url", s.authHandler.KakaoAuthURL)
	api.Get("/kakao/callback", s.authHandler.KakaoCallback)

	// Email auth
	auth := api.Group("/auth")
	auth.Post("/login", s.authHandler.Login)
	auth.Post("/register", s.authHandler.Register)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error":   "INTERNAL_SERVER_ERROR",
			"message": err.Error(),
		})
	}
}
