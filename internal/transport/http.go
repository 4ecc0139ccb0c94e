package transport

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/config"
	"github.com/ixome/troubleshooter/internal/handlers"
	"github.com/ixome/troubleshooter/internal/models"
)

// HTTPServer serves the process contract over HTTP for browser-facing
// callers (e.g. the support widget embedded on the storefront).
type HTTPServer struct {
	app     *fiber.App
	config  *config.Config
	handler *handlers.ProcessHandler
	log     *zap.Logger
}

func NewHTTPServer(cfg *config.Config, handler *handlers.ProcessHandler, log *zap.Logger) *HTTPServer {
	app := fiber.New(fiber.Config{
		AppName:   cfg.ServiceName,
		BodyLimit: 10 * 1024 * 1024, // 10MB, audio/image payloads arrive inline
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	s := &HTTPServer{
		app:     app,
		config:  cfg,
		handler: handler,
		log:     log.Named("http"),
	}

	app.Get("/healthz", s.handleHealth)
	app.Post("/process", s.handleProcess)
	app.Get("/history/:session_id", s.handleHistory)
	app.Delete("/history/:session_id", s.handleClearHistory)

	return s
}

func (s *HTTPServer) handleHealth(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *HTTPServer) handleProcess(c *fiber.Ctx) error {
	var request models.ProcessRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ProcessResponse{
			Error: "Invalid input data",
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.config.ProcessTimeout)
	defer cancel()

	response, err := s.handler.Process(ctx, &request)
	if err != nil {
		if errors.Is(err, handlers.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ProcessResponse{
				Error: err.Error(),
			})
		}
		s.log.Error("error processing request",
			zap.String("input_type", request.InputType),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ProcessResponse{
			Error: "Server error",
		})
	}

	return c.JSON(response)
}

func (s *HTTPServer) handleHistory(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	history, err := s.handler.History(c.UserContext(), sessionID)
	if err != nil {
		return s.historyError(c, sessionID, err)
	}

	return c.JSON(models.HistoryResponse{
		SessionID: sessionID,
		History:   history,
	})
}

func (s *HTTPServer) handleClearHistory(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	if err := s.handler.ClearSession(c.UserContext(), sessionID); err != nil {
		return s.historyError(c, sessionID, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *HTTPServer) historyError(c *fiber.Ctx, sessionID string, err error) error {
	if errors.Is(err, handlers.ErrSessionsDisabled) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ProcessResponse{
			Error: err.Error(),
		})
	}
	if errors.Is(err, handlers.ErrInvalidRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ProcessResponse{
			Error: err.Error(),
		})
	}
	s.log.Error("error serving session history",
		zap.String("session_id", sessionID),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ProcessResponse{
		Error: "Server error",
	})
}

func (s *HTTPServer) Listen() error {
	s.log.Info("HTTP server listening", zap.String("port", s.config.HTTPPort))
	return s.app.Listen(":" + s.config.HTTPPort)
}

func (s *HTTPServer) Shutdown() error {
	return s.app.Shutdown()
}
