package http_handler

import (
	"context"
	"errors"
	"strings"

	"github.com/anthanhphan/go-disk-register/internal/node/domain"
	"github.com/anthanhphan/go-disk-register/internal/node/port"
	"github.com/anthanhphan/go-disk-register/pkg/membership"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const maxMessageBytes = 1 << 20

// Server is the optional admin HTTP surface of a node.
type Server struct {
	app     *fiber.App
	addr    string
	role    domain.Role
	service port.NodeService
}

func NewServer(addr string, role domain.Role, service port.NodeService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             maxMessageBytes,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		addr:    addr,
		role:    role,
		service: service,
	}

	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/family", s.handleFamily)
	s.app.Get("/status", s.handleStatus)

	if s.role.IsLeader() {
		s.app.Get("/messages/:id", s.handleGetMessage)
		s.app.Put("/messages/:id", s.handlePutMessage)
	}
}

func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

type familyResponse struct {
	Self    membership.Node   `json:"self"`
	Members []membership.Node `json:"members"`
}

func (s *Server) handleFamily(c *fiber.Ctx) error {
	st := s.service.Status(c.UserContext())
	return c.JSON(familyResponse{Self: st.Self, Members: st.Members})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.service.Status(c.UserContext()))
}

func (s *Server) handleGetMessage(c *fiber.Ctx) error {
	id, err := domain.ParseMessageID(c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	text, err := s.service.HandleGet(c.UserContext(), id)
	if err != nil {
		if !errors.Is(err, port.ErrMessageNotFound) {
			sdklogger.Warnw("Admin GET failed", "id", id, "error", err.Error())
		}
		return s.sendJSONError(c, fiber.StatusNotFound, "message not found")
	}

	return c.JSON(domain.Message{ID: id, Text: text})
}

func (s *Server) handlePutMessage(c *fiber.Ctx) error {
	id, err := domain.ParseMessageID(c.Params("id"))
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
	}

	text := strings.TrimSpace(string(c.Body()))
	if text == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "message text is required")
	}
	if strings.ContainsAny(text, "\r\n") {
		return s.sendJSONError(c, fiber.StatusBadRequest, "message text must be a single line")
	}

	if err := s.service.HandleSet(c.UserContext(), id, text); err != nil {
		if errors.Is(err, port.ErrReplicationFailed) {
			return s.sendJSONError(c, fiber.StatusServiceUnavailable, err.Error())
		}
		sdklogger.Errorw("Admin PUT failed", "id", id, "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(domain.Message{ID: id, Text: text})
}
