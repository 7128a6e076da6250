package http

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/resumedoc"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// parseFailure is the user-facing message for undecodable uploads.
const parseFailure = "failed to parse file, check the format"

type Handler struct {
	processor *usecase.Processor
	logger    *slog.Logger
}

func NewHandler(p *usecase.Processor) *Handler {
	return &Handler{processor: p, logger: slog.Default().With("component", "http")}
}

// RequestContext tags each request with an id, taken from X-Request-ID when
// the caller sends one, and stores it on the user context for logging.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		return c.Next()
	}
}

// Register mounts the resume routes on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/health", h.Health)
	r := app.Group("/resume")
	r.Post("/parse", h.Parse)
	r.Post("/export", h.Export)
	r.Post("/generate", h.Generate)
	r.Post("/preview", h.Preview)
	r.Post("/drafts", h.SaveDraft)
	r.Get("/drafts/:id", h.GetDraft)
	r.Delete("/drafts/:id", h.DeleteDraft)
}

// requestFormat picks the upload format from ?format=, falling back to the
// content type.
func requestFormat(c *fiber.Ctx) string {
	if f := c.Query("format"); f != "" {
		return f
	}
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		return usecase.FormatJSON
	}
	return usecase.FormatText
}

func (h *Handler) decode(c *fiber.Ctx) (*domain.ResumeRecord, string, error) {
	format := requestFormat(c)
	rec, err := h.processor.Decode(format, c.Body())
	if err != nil {
		return nil, format, err
	}
	f, _ := usecase.NormalizeFormat(format)
	return rec, f, nil
}

func decodeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, usecase.ErrUnknownFormat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": parseFailure, "detail": err.Error()})
}

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	generator := "ok"
	if err := h.processor.GeneratorHealth(ctx); err != nil {
		generator = "unavailable"
		h.logger.DebugContext(ctx, "generator health check failed", "error", err)
	}
	return c.JSON(fiber.Map{"status": "ok", "generator": generator})
}

// Parse decodes an uploaded document and answers with the transport JSON.
func (h *Handler) Parse(c *fiber.Ctx) error {
	rec, _, err := h.decode(c)
	if err != nil {
		return decodeError(c, err)
	}
	return c.JSON(resumedoc.ToTransport(rec))
}

// Export reads transport JSON and re-serializes it to ?to=text|json.
func (h *Handler) Export(c *fiber.Ctx) error {
	rec, err := h.processor.Decode(usecase.FormatJSON, c.Body())
	if err != nil {
		return decodeError(c, err)
	}
	body, contentType, err := h.processor.Export(rec, c.Query("to", usecase.FormatText))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}

func sendPDF(c *fiber.Ctx, pdf []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resume.pdf"`)
	return c.Send(pdf)
}

// Generate forwards the document to the remote generation service.
func (h *Handler) Generate(c *fiber.Ctx) error {
	rec, _, err := h.decode(c)
	if err != nil {
		return decodeError(c, err)
	}
	pdf, err := h.processor.Generate(c.UserContext(), rec)
	switch {
	case errors.Is(err, model.ErrInvalidPayload):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		h.logger.ErrorContext(c.UserContext(), "generate failed", "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "resume generation failed", "detail": err.Error()})
	}
	return sendPDF(c, pdf)
}

// Preview renders the document locally with headless Chrome.
func (h *Handler) Preview(c *fiber.Ctx) error {
	rec, _, err := h.decode(c)
	if err != nil {
		return decodeError(c, err)
	}
	pdf, err := h.processor.Preview(c.UserContext(), rec)
	if err != nil {
		h.logger.ErrorContext(c.UserContext(), "preview failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "preview failed", "detail": err.Error()})
	}
	return sendPDF(c, pdf)
}

func draftError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDraftStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrDraftNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func (h *Handler) SaveDraft(c *fiber.Ctx) error {
	rec, format, err := h.decode(c)
	if err != nil {
		return decodeError(c, err)
	}
	d, err := h.processor.SaveDraft(c.UserContext(), format, c.Body(), rec)
	if err != nil {
		return draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": d.ID.String(), "name": d.Name})
}

func invalidDraftID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid draft id"})
}

func (h *Handler) GetDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidDraftID(c)
	}
	d, rec, err := h.processor.LoadDraft(c.UserContext(), id)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":         d.ID.String(),
		"format":     d.Format,
		"updated_at": d.UpdatedAt,
		"resume":     resumedoc.ToTransport(rec),
	})
}

func (h *Handler) DeleteDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidDraftID(c)
	}
	if err := h.processor.DeleteDraft(c.UserContext(), id); err != nil {
		return draftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
