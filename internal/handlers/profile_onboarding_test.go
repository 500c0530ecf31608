package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
	"github.com/victordupreez0/studentgigs-backend/internal/services"
)

type stubStudentProfileRepo struct {
	profile             *models.StudentProfile
	lastOnboardingInput repository.StudentOnboardingInput
	lastUpdatePartial   repository.UpdateStudentProfileInput
}

func (s *stubStudentProfileRepo) GetByUserID(_ context.Context, _ int64) (*models.StudentProfile, error) {
	return s.profile, nil
}

func (s *stubStudentProfileRepo) UpdateOnboarding(_ context.Context, _ int64, req repository.StudentOnboardingInput) (*models.StudentProfile, error) {
	s.lastOnboardingInput = req
	if s.profile == nil {
		s.profile = &models.StudentProfile{}
	}
	s.profile.Bio = &req.Bio
	s.profile.University = &req.University
	s.profile.Degree = &req.Degree
	s.profile.Skills = &req.Skills
	s.profile.HourlyRate = req.HourlyRate
	s.profile.OnboardingComplete = true
	return s.profile, nil
}

func (s *stubStudentProfileRepo) UpdatePartial(_ context.Context, _ int64, req repository.UpdateStudentProfileInput) (*models.StudentProfile, error) {
	s.lastUpdatePartial = req
	if s.profile == nil {
		s.profile = &models.StudentProfile{}
	}
	if req.AvatarURL != nil {
		s.profile.AvatarURL = req.AvatarURL
	}
	if req.Skills != nil {
		s.profile.Skills = req.Skills
	}
	if req.HourlyRate != nil {
		s.profile.HourlyRate = req.HourlyRate
	}
	return s.profile, nil
}

type stubEmployerProfileRepo struct {
	profile             *models.EmployerProfile
	lastOnboardingInput repository.EmployerOnboardingInput
	lastUpdatePartial   repository.UpdateEmployerProfileInput
}

func (s *stubEmployerProfileRepo) GetByUserID(_ context.Context, _ int64) (*models.EmployerProfile, error) {
	return s.profile, nil
}

func (s *stubEmployerProfileRepo) UpdateOnboarding(_ context.Context, _ int64, req repository.EmployerOnboardingInput) (*models.EmployerProfile, error) {
	s.lastOnboardingInput = req
	if s.profile == nil {
		s.profile = &models.EmployerProfile{}
	}
	s.profile.CompanyName = &req.CompanyName
	s.profile.Bio = &req.Bio
	s.profile.Website = &req.Website
	s.profile.Location = &req.Location
	s.profile.OnboardingComplete = true
	return s.profile, nil
}

func (s *stubEmployerProfileRepo) UpdatePartial(_ context.Context, _ int64, req repository.UpdateEmployerProfileInput) (*models.EmployerProfile, error) {
	s.lastUpdatePartial = req
	if s.profile == nil {
		s.profile = &models.EmployerProfile{}
	}
	if req.AvatarURL != nil {
		s.profile.AvatarURL = req.AvatarURL
	}
	if req.CompanyName != nil {
		s.profile.CompanyName = req.CompanyName
	}
	return s.profile, nil
}

type stubStorageService struct {
	uploadedFolder   string
	uploadedFilename string
	uploadedContent  []byte
	uploadedURL      string
	deletedURL       string
}

func (s *stubStorageService) UploadFile(_ context.Context, file multipart.File, filename string, folder string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.uploadedFilename = filename
	s.uploadedFolder = folder
	s.uploadedContent = content
	if s.uploadedURL == "" {
		s.uploadedURL = "https://storage.example/avatar.png"
	}
	return s.uploadedURL, nil
}

func (s *stubStorageService) DeleteFile(_ context.Context, fileURL string) error {
	s.deletedURL = fileURL
	return nil
}

func TestStudentOnboardingForwardsSkillsAndRate(t *testing.T) {
	studentRepo := &stubStudentProfileRepo{profile: &models.StudentProfile{}}
	employerRepo := &stubEmployerProfileRepo{}
	handler := NewOnboardingHandler(studentRepo, employerRepo)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "student")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/students/onboarding", handler.StudentOnboarding)

	body := `{"bio":"CS undergrad","university":"UCT","degree":"BSc Computer Science","skills":["go","sql"],"hourly_rate":18.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := studentRepo.lastOnboardingInput.Skills; len(got) != 2 {
		t.Fatalf("expected 2 skills forwarded, got %v", got)
	}
	if studentRepo.lastOnboardingInput.HourlyRate == nil || *studentRepo.lastOnboardingInput.HourlyRate != 18.5 {
		t.Fatalf("expected hourly_rate 18.5, got %+v", studentRepo.lastOnboardingInput.HourlyRate)
	}
}

func TestStudentOnboardingRejectsEmptySkills(t *testing.T) {
	handler := NewOnboardingHandler(&stubStudentProfileRepo{}, &stubEmployerProfileRepo{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "student")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/students/onboarding", handler.StudentOnboarding)

	body := `{"bio":"CS undergrad","university":"UCT","degree":"BSc","skills":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestEmployerOnboardingForbiddenForStudents(t *testing.T) {
	handler := NewOnboardingHandler(&stubStudentProfileRepo{}, &stubEmployerProfileRepo{})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "student")
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/employers/onboarding", handler.EmployerOnboarding)

	body := `{"company_name":"Acme Media","bio":"Small agency","location":"Cape Town"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employers/onboarding", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestEmployerProfileUpdateForwardsCompanyName(t *testing.T) {
	studentRepo := &stubStudentProfileRepo{}
	employerRepo := &stubEmployerProfileRepo{profile: &models.EmployerProfile{}}
	profileService := services.NewProfileService(studentRepo, employerRepo)
	handler := NewProfileHandler(profileService, studentRepo, employerRepo, nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "employer")
		c.Locals("user_id", "77")
		return c.Next()
	})
	app.Put("/api/v1/employers/profile", handler.UpdateEmployerProfile)

	body := `{"company_name":"Acme Media","website":"https://acme.example"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/employers/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if employerRepo.lastUpdatePartial.CompanyName == nil || *employerRepo.lastUpdatePartial.CompanyName != "Acme Media" {
		t.Fatalf("expected company_name forwarded, got %+v", employerRepo.lastUpdatePartial.CompanyName)
	}
}

func TestStudentAvatarUploadUpdatesAvatarURL(t *testing.T) {
	oldURL := "https://storage.example/old.png"
	studentRepo := &stubStudentProfileRepo{
		profile: &models.StudentProfile{
			AvatarURL: &oldURL,
		},
	}
	employerRepo := &stubEmployerProfileRepo{}
	storage := &stubStorageService{
		uploadedURL: "https://storage.example/new.png",
	}
	profileService := services.NewProfileService(studentRepo, employerRepo)
	handler := NewProfileHandler(profileService, studentRepo, employerRepo, storage)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", "student")
		c.Locals("user_id", "15")
		return c.Next()
	})
	app.Post("/api/v1/students/profile/avatar", handler.UploadStudentAvatar)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	part, err := writer.CreateFormFile("avatar", "avatar.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/students/profile/avatar", &requestBody)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if storage.uploadedFolder != "students/avatars" {
		t.Fatalf("expected students/avatars folder, got %q", storage.uploadedFolder)
	}
	if storage.deletedURL != oldURL {
		t.Fatalf("expected previous avatar to be deleted, got %q", storage.deletedURL)
	}
	if studentRepo.lastUpdatePartial.AvatarURL == nil || *studentRepo.lastUpdatePartial.AvatarURL != storage.uploadedURL {
		t.Fatal("expected avatar_url update to be persisted")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["avatar_url"] != storage.uploadedURL {
		t.Fatalf("expected avatar_url %q, got %#v", storage.uploadedURL, payload["avatar_url"])
	}
}
