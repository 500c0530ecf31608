package repository

import (
	"context"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

type StudentProfileRepository struct {
	db DBTX
}

func NewStudentProfileRepository(db DBTX) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO student_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	query := `
		SELECT id, user_id, bio, university, degree, skills, hourly_rate, avatar_url,
			   onboarding_complete, created_at, updated_at
		FROM student_profiles
		WHERE user_id = $1
	`
	var profile models.StudentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.University,
		&profile.Degree,
		&profile.Skills,
		&profile.HourlyRate,
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

func (r *StudentProfileRepository) UpdateOnboarding(ctx context.Context, userID int64, req StudentOnboardingInput) (*models.StudentProfile, error) {
	query := `
		UPDATE student_profiles
		SET bio = $1,
			university = $2,
			degree = $3,
			skills = $4,
			hourly_rate = $5,
			onboarding_complete = TRUE,
			updated_at = NOW()
		WHERE user_id = $6
		RETURNING id, user_id, bio, university, degree, skills, hourly_rate, avatar_url,
				  onboarding_complete, created_at, updated_at
	`
	var profile models.StudentProfile
	err := r.db.QueryRow(ctx, query,
		req.Bio,
		req.University,
		req.Degree,
		req.Skills,
		req.HourlyRate,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.University,
		&profile.Degree,
		&profile.Skills,
		&profile.HourlyRate,
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

func (r *StudentProfileRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateStudentProfileInput) (*models.StudentProfile, error) {
	query := `
		UPDATE student_profiles
		SET bio = COALESCE($1, bio),
			university = COALESCE($2, university),
			degree = COALESCE($3, degree),
			skills = COALESCE($4, skills),
			hourly_rate = COALESCE($5, hourly_rate),
			avatar_url = COALESCE($6, avatar_url),
			updated_at = NOW()
		WHERE user_id = $7
		RETURNING id, user_id, bio, university, degree, skills, hourly_rate, avatar_url,
				  onboarding_complete, created_at, updated_at
	`
	var profile models.StudentProfile
	err := r.db.QueryRow(ctx, query,
		req.Bio,
		req.University,
		req.Degree,
		req.Skills,
		req.HourlyRate,
		req.AvatarURL,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.University,
		&profile.Degree,
		&profile.Skills,
		&profile.HourlyRate,
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

type StudentOnboardingInput struct {
	Bio        string
	University string
	Degree     string
	Skills     []string
	HourlyRate *float64
}

type UpdateStudentProfileInput struct {
	Bio        *string
	University *string
	Degree     *string
	Skills     *[]string
	HourlyRate *float64
	AvatarURL  *string
}
