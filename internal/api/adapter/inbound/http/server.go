package http_handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anthanhphan/go-files-manager/internal/api/config"
	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/lo"
)

// tokenHeader carries the opaque session token on every request.
const tokenHeader = "X-Token"

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	service port.FileService
}

func NewServer(cfg *config.Config, service port.FileService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitBytes,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:     app,
		cfg:     cfg,
		service: service,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/status", s.handleStatus)
	s.app.Get("/stats", s.handleStats)

	s.app.Post("/files", s.handleUpload)
	s.app.Get("/files", s.handleIndex)
	s.app.Get("/files/:id", s.handleShow)
	s.app.Put("/files/:id/publish", s.handlePublish)
	s.app.Put("/files/:id/unpublish", s.handleUnpublish)
	s.app.Get("/files/:id/data", s.handleDownload)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown()
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// fileResponse is the JSON shape of a record on the wire. LocalPath is
// deliberately absent; disk layout is not part of the API. ParentID is
// the number 0 for root-level records and an id string otherwise, the
// shape existing clients already parse.
type fileResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID any    `json:"parentId"`
}

func toFileResponse(rec *domain.FileRecord) fileResponse {
	var parentID any = rec.ParentID
	if rec.ParentID == domain.RootParentID {
		parentID = 0
	}

	return fileResponse{
		ID:       rec.ID.Hex(),
		UserID:   rec.UserID.Hex(),
		Name:     rec.Name,
		Type:     string(rec.Type),
		IsPublic: rec.IsPublic,
		ParentID: parentID,
	}
}

// sendError maps the service error taxonomy onto HTTP statuses with the
// messages the API has always used.
func (s *Server) sendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrUnauthorized):
		return s.sendJSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, port.ErrMissingName):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing name")
	case errors.Is(err, port.ErrInvalidType):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing type")
	case errors.Is(err, port.ErrMissingData):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing data")
	case errors.Is(err, port.ErrInvalidData):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid data")
	case errors.Is(err, port.ErrParentNotFound):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Parent not found")
	case errors.Is(err, port.ErrParentNotFolder):
		return s.sendJSONError(c, fiber.StatusBadRequest, "Parent is not a folder")
	case errors.Is(err, port.ErrFolderHasNoContent):
		return s.sendJSONError(c, fiber.StatusBadRequest, "A folder doesn't have content")
	case errors.Is(err, port.ErrNotFound):
		return s.sendJSONError(c, fiber.StatusNotFound, "Not found")
	default:
		sdklogger.Errorw("Request failed", "path", c.Path(), "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Internal error")
	}
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Data     string `json:"data"`
	IsPublic bool   `json:"isPublic"`
	// ParentID stays raw because clients send both the number 0 and id
	// strings; a typed field would reject one of the two.
	ParentID json.RawMessage `json:"parentId"`
}

// parentIDString flattens the two accepted wire forms of parentId to the
// string the service layer normalizes.
func parentIDString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rec, err := s.service.Upload(c.Context(), c.Get(tokenHeader), port.UploadInput{
		Name:     req.Name,
		Type:     req.Type,
		Data:     req.Data,
		IsPublic: req.IsPublic,
		ParentID: parentIDString(req.ParentID),
	})
	if err != nil {
		return s.sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toFileResponse(rec))
}

func (s *Server) handleShow(c *fiber.Ctx) error {
	rec, err := s.service.Show(c.Context(), c.Get(tokenHeader), c.Params("id"))
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(toFileResponse(rec))
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	parentID := c.Query("parentId")

	// Non-numeric or absent page falls back to the first page.
	page := int64(c.QueryInt("page", 0))

	records, err := s.service.List(c.Context(), c.Get(tokenHeader), parentID, page)
	if err != nil {
		return s.sendError(c, err)
	}

	return c.JSON(lo.Map(records, func(rec domain.FileRecord, _ int) fileResponse {
		return toFileResponse(&rec)
	}))
}

func (s *Server) handlePublish(c *fiber.Ctx) error {
	return s.setVisibility(c, true)
}

func (s *Server) handleUnpublish(c *fiber.Ctx) error {
	return s.setVisibility(c, false)
}

func (s *Server) setVisibility(c *fiber.Ctx, public bool) error {
	rec, err := s.service.SetVisibility(c.Context(), c.Get(tokenHeader), c.Params("id"), public)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(toFileResponse(rec))
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	res, err := s.service.Download(c.Context(), c.Get(tokenHeader), c.Params("id"), c.Query("size"))
	if err != nil {
		return s.sendError(c, err)
	}

	c.Set(fiber.HeaderContentType, res.MIMEType)
	return c.Send(res.Data)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.service.Status(c.Context()))
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.service.Stats(c.Context())
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(stats)
}
