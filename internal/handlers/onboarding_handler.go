package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

type studentOnboardingProfileStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.StudentOnboardingInput) (*models.StudentProfile, error)
}

type employerOnboardingProfileStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.EmployerOnboardingInput) (*models.EmployerProfile, error)
}

type OnboardingHandler struct {
	studentProfileRepo  studentOnboardingProfileStore
	employerProfileRepo employerOnboardingProfileStore
}

func NewOnboardingHandler(
	studentProfileRepo studentOnboardingProfileStore,
	employerProfileRepo employerOnboardingProfileStore,
) *OnboardingHandler {
	return &OnboardingHandler{
		studentProfileRepo:  studentProfileRepo,
		employerProfileRepo: employerProfileRepo,
	}
}

type studentOnboardingRequest struct {
	Bio        string   `json:"bio"`
	University string   `json:"university"`
	Degree     string   `json:"degree"`
	Skills     []string `json:"skills"`
	HourlyRate *float64 `json:"hourly_rate"`
}

type employerOnboardingRequest struct {
	CompanyName string `json:"company_name"`
	Bio         string `json:"bio"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

func (h *OnboardingHandler) StudentOnboarding(c *fiber.Ctx) error {
	userID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role != models.RoleStudent {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req studentOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateStudentOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.studentProfileRepo.UpdateOnboarding(c.Context(), userID, repository.StudentOnboardingInput{
		Bio:        req.Bio,
		University: req.University,
		Degree:     req.Degree,
		Skills:     req.Skills,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *OnboardingHandler) EmployerOnboarding(c *fiber.Ctx) error {
	userID, role, ok := actorFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if role != models.RoleEmployer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req employerOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateEmployerOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.employerProfileRepo.UpdateOnboarding(c.Context(), userID, repository.EmployerOnboardingInput{
		CompanyName: req.CompanyName,
		Bio:         req.Bio,
		Website:     req.Website,
		Location:    req.Location,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}
