package services

import (
	"context"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

type StudentProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateStudentProfileInput) (*models.StudentProfile, error)
}

type EmployerProfileUpdater interface {
	UpdatePartial(ctx context.Context, userID int64, req repository.UpdateEmployerProfileInput) (*models.EmployerProfile, error)
}

type ProfileService struct {
	studentProfileRepo  StudentProfileUpdater
	employerProfileRepo EmployerProfileUpdater
}

func NewProfileService(studentProfileRepo StudentProfileUpdater, employerProfileRepo EmployerProfileUpdater) *ProfileService {
	return &ProfileService{
		studentProfileRepo:  studentProfileRepo,
		employerProfileRepo: employerProfileRepo,
	}
}

func (s *ProfileService) UpdateStudentProfile(ctx context.Context, userID int64, req repository.UpdateStudentProfileInput) (*models.StudentProfile, error) {
	return s.studentProfileRepo.UpdatePartial(ctx, userID, req)
}

func (s *ProfileService) UpdateEmployerProfile(ctx context.Context, userID int64, req repository.UpdateEmployerProfileInput) (*models.EmployerProfile, error) {
	return s.employerProfileRepo.UpdatePartial(ctx, userID, req)
}
