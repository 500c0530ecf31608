package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/services"
)

type applicationLifecycleService interface {
	Apply(ctx context.Context, actorID int64, role string, jobID int64, coverNote *string) (*models.Application, error)
	ListForJob(ctx context.Context, actorID int64, role string, jobID int64) ([]models.ApplicationDetail, error)
	ListForStudent(ctx context.Context, actorID int64, role string) ([]models.ApplicationDetail, error)
	Accept(ctx context.Context, actorID int64, role string, applicationID int64) (*models.Application, error)
	Reject(ctx context.Context, actorID int64, role string, applicationID int64) (*models.Application, error)
	Withdraw(ctx context.Context, actorID int64, role string, applicationID int64) (*models.Application, error)
}

type ApplicationHandler struct {
	service applicationLifecycleService
}

func NewApplicationHandler(service applicationLifecycleService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applyRequest struct {
	CoverNote *string `json:"cover_note"`
}

func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	application, err := h.service.Apply(c.Context(), actorID, role, jobID, req.CoverNote)
	if err != nil {
		return mapApplicationError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": application})
}

func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	applications, err := h.service.ListForJob(c.Context(), actorID, role, jobID)
	if err != nil {
		return mapApplicationError(c, err)
	}

	return c.JSON(fiber.Map{"applications": applications})
}

func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	applications, err := h.service.ListForStudent(c.Context(), actorID, role)
	if err != nil {
		return mapApplicationError(c, err)
	}

	return c.JSON(fiber.Map{"applications": applications})
}

func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	return h.decide(c, h.service.Accept)
}

func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, h.service.Reject)
}

func (h *ApplicationHandler) Withdraw(c *fiber.Ctx) error {
	return h.decide(c, h.service.Withdraw)
}

func (h *ApplicationHandler) decide(
	c *fiber.Ctx,
	action func(ctx context.Context, actorID int64, role string, applicationID int64) (*models.Application, error),
) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	applicationID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || applicationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid application id"})
	}

	application, err := action(c.Context(), actorID, role, applicationID)
	if err != nil {
		return mapApplicationError(c, err)
	}

	return c.JSON(fiber.Map{"application": application})
}

func mapApplicationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Application is not in a valid state for this action"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already applied to this job"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process application request"})
	}
}
