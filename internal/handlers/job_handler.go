package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
	"github.com/victordupreez0/studentgigs-backend/internal/services"
)

type jobApplicationService interface {
	CreateJob(ctx context.Context, actorID int64, role string, input services.CreateJobInput) (*models.Job, error)
	ListJobs(ctx context.Context, filter repository.JobListFilter, page, limit int) ([]models.JobDetail, int, error)
	GetJob(ctx context.Context, jobID int64) (*models.Job, error)
	UpdateJob(ctx context.Context, actorID int64, role string, jobID int64, input repository.UpdateJobInput) (*models.Job, error)
	CancelJob(ctx context.Context, actorID int64, role string, jobID int64) (*models.Job, error)
	RequestCompletion(ctx context.Context, actorID int64, role string, jobID int64) (*services.CompletionUpdate, error)
	AcceptCompletion(ctx context.Context, actorID int64, role string, jobID int64) (*services.CompletionUpdate, error)
	DenyCompletion(ctx context.Context, actorID int64, role string, jobID int64, reason string) (*services.CompletionUpdate, error)
}

type JobHandler struct {
	service jobApplicationService
}

func NewJobHandler(service jobApplicationService) *JobHandler {
	return &JobHandler{service: service}
}

type createJobRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    *string `json:"location"`
	PayAmount   float64 `json:"pay_amount"`
}

type updateJobRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Location    *string  `json:"location"`
	PayAmount   *float64 `json:"pay_amount"`
}

type denyCompletionRequest struct {
	Reason string `json:"reason"`
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	job, err := h.service.CreateJob(c.Context(), actorID, role, services.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		PayAmount:   req.PayAmount,
	})
	if err != nil {
		return mapJobError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := repository.JobListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("employer_id"); raw != "" {
		employerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || employerID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employer id"})
		}
		filter.EmployerID = employerID
	}

	jobs, total, err := h.service.ListJobs(c.Context(), filter, page, limit)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(fiber.Map{
		"jobs":       jobs,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	job, err := h.service.GetJob(c.Context(), jobID)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req updateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	job, err := h.service.UpdateJob(c.Context(), actorID, role, jobID, repository.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		PayAmount:   req.PayAmount,
	})
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) CancelJob(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	job, err := h.service.CancelJob(c.Context(), actorID, role, jobID)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) RequestCompletion(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	update, err := h.service.RequestCompletion(c.Context(), actorID, role, jobID)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(update)
}

func (h *JobHandler) AcceptCompletion(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	update, err := h.service.AcceptCompletion(c.Context(), actorID, role, jobID)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(update)
}

func (h *JobHandler) DenyCompletion(c *fiber.Ctx) error {
	actorID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || jobID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid job id"})
	}

	var req denyCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	update, err := h.service.DenyCompletion(c.Context(), actorID, role, jobID, req.Reason)
	if err != nil {
		return mapJobError(c, err)
	}

	return c.JSON(update)
}

func mapJobError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
	case errors.Is(err, services.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Job is not in a valid state for this action"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Conflict"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process job request"})
	}
}
