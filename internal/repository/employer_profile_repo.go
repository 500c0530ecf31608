package repository

import (
	"context"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

type EmployerProfileRepository struct {
	db DBTX
}

func NewEmployerProfileRepository(db DBTX) *EmployerProfileRepository {
	return &EmployerProfileRepository{db: db}
}

func (r *EmployerProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO employer_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *EmployerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.EmployerProfile, error) {
	query := `
		SELECT id, user_id, company_name, bio, website, location, avatar_url,
			   onboarding_complete, created_at, updated_at
		FROM employer_profiles
		WHERE user_id = $1
	`
	var profile models.EmployerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.Bio,
		&profile.Website,
		&profile.Location,
		&profile.AvatarURL,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *EmployerProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req EmployerOnboardingInput) (*models.EmployerProfile, error) {
	query := `
		UPDATE employer_profiles
		SET company_name = $1,
			bio = $2,
			website = $3,
			location = $4,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $5
		RETURNING id, user_id, company_name, bio, website, location, avatar_url,
				  onboarding_complete, created_at, updated_at
	`
	var profile models.EmployerProfile
	err := r.db.QueryRow(ctx, query,
		req.CompanyName,
		req.Bio,
		req.Website,
		req.Location,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.Bio,
		&profile.Website,
		&profile.Location,
		&profile.AvatarURL,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *EmployerProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateEmployerProfileInput) (*models.EmployerProfile, error) {
	query := `
		UPDATE employer_profiles
		SET company_name = COALESCE($1, company_name),
			bio = COALESCE($2, bio),
			website = COALESCE($3, website),
			location = COALESCE($4, location),
			avatar_url = COALESCE($5, avatar_url),
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING id, user_id, company_name, bio, website, location, avatar_url,
				  onboarding_complete, created_at, updated_at
	`
	var profile models.EmployerProfile
	err := r.db.QueryRow(ctx, query,
		req.CompanyName,
		req.Bio,
		req.Website,
		req.Location,
		req.AvatarURL,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CompanyName,
		&profile.Bio,
		&profile.Website,
		&profile.Location,
		&profile.AvatarURL,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type EmployerOnboardingInput struct {
	CompanyName string
	Bio         string
	Website     string
	Location    string
}

type UpdateEmployerProfileInput struct {
	CompanyName *string
	Bio         *string
	Website     *string
	Location    *string
	AvatarURL   *string
}
