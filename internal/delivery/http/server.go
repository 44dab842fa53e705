package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/findbus/internal/config"
	"github.com/findbus/internal/delivery/http/handler"
	"github.com/findbus/internal/delivery/http/middleware"
	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	pageHandler *handler.PageHandler
	busHandler  *handler.BusHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pageHandler *handler.PageHandler,
	busHandler *handler.BusHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "FindBus",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:         app,
		config:      cfg,
		logger:      logger,
		pageHandler: pageHandler,
		busHandler:  busHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.UI.CORSAllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Pages
	s.app.Get("/", s.pageHandler.Home)
	s.app.Get("/buses", s.pageHandler.SelectBus)
	s.app.Get("/static/bus.jpg", s.pageHandler.BusImage)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.busHandler.Health)
	api.Get("/filters", s.busHandler.GetFilters)
	api.Get("/buses", s.busHandler.SearchBuses)
}

// App - доступ к fiber.App (для тестов через app.Test)
func (s *Server) App() *fiber.App {
	return s.app
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
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			switch {
			case code == fiber.StatusNotFound:
				errCode = "NOT_FOUND"
			case code == fiber.StatusMethodNotAllowed:
				errCode = "METHOD_NOT_ALLOWED"
			case code < fiber.StatusInternalServerError:
				errCode = "BAD_REQUEST"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
