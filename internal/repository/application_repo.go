package repository

import (
	"context"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

type CreateApplicationInput struct {
	JobID     int64
	StudentID int64
	CoverNote *string
}

type ApplicationRepository struct {
	db DBTX
}

func NewApplicationRepository(db DBTX) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, input CreateApplicationInput) (*models.Application, error) {
	query := `
		INSERT INTO applications (job_id, student_id, cover_note, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, job_id, student_id, cover_note, status, created_at, updated_at
	`

	var application models.Application
	err := r.db.QueryRow(ctx, query, input.JobID, input.StudentID, input.CoverNote).Scan(
		&application.ID,
		&application.JobID,
		&application.StudentID,
		&application.CoverNote,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, applicationID int64) (*models.Application, error) {
	query := `
		SELECT id, job_id, student_id, cover_note, status, created_at, updated_at
		FROM applications
		WHERE id = $1
	`
	var application models.Application
	err := r.db.QueryRow(ctx, query, applicationID).Scan(
		&application.ID,
		&application.JobID,
		&application.StudentID,
		&application.CoverNote,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.ApplicationDetail, error) {
	query := `
		SELECT a.id, a.job_id, a.student_id, a.cover_note, a.status, a.created_at, a.updated_at,
			   j.title, j.status, u.full_name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.student_id
		WHERE a.job_id = $1
		ORDER BY a.created_at ASC, a.id ASC
	`
	return r.listDetails(ctx, query, jobID)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.ApplicationDetail, error) {
	query := `
		SELECT a.id, a.job_id, a.student_id, a.cover_note, a.status, a.created_at, a.updated_at,
			   j.title, j.status, u.full_name
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.student_id
		WHERE a.student_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`
	return r.listDetails(ctx, query, studentID)
}

func (r *ApplicationRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	applicationID int64,
	currentStatus string,
	nextStatus string,
) (*models.Application, error) {
	query := `
		UPDATE applications
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, job_id, student_id, cover_note, status, created_at, updated_at
	`
	var application models.Application
	err := r.db.QueryRow(ctx, query, applicationID, currentStatus, nextStatus).Scan(
		&application.ID,
		&application.JobID,
		&application.StudentID,
		&application.CoverNote,
		&application.Status,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// RejectOtherPending closes out every pending application on the job except
// the accepted one. Returns the ids of the rejected applications so callers
// can notify the affected students.
func (r *ApplicationRepository) RejectOtherPending(
	ctx context.Context,
	jobID int64,
	acceptedApplicationID int64,
) ([]int64, error) {
	query := `
		UPDATE applications
		SET status = 'rejected', updated_at = NOW()
		WHERE job_id = $1
		  AND id <> $2
		  AND status = 'pending'
		RETURNING student_id
	`
	rows, err := r.db.Query(ctx, query, jobID, acceptedApplicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	studentIDs := make([]int64, 0)
	for rows.Next() {
		var studentID int64
		if err := rows.Scan(&studentID); err != nil {
			return nil, err
		}
		studentIDs = append(studentIDs, studentID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return studentIDs, nil
}

func (r *ApplicationRepository) listDetails(ctx context.Context, query string, arg any) ([]models.ApplicationDetail, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.ApplicationDetail, 0)
	for rows.Next() {
		var detail models.ApplicationDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.JobID,
			&detail.StudentID,
			&detail.CoverNote,
			&detail.Status,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.JobTitle,
			&detail.JobStatus,
			&detail.StudentName,
		); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
