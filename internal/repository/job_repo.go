package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

type CreateJobInput struct {
	EmployerID  int64
	Title       string
	Description string
	Category    string
	Location    *string
	PayAmount   float64
}

type UpdateJobInput struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	PayAmount   *float64
}

type JobListFilter struct {
	Status     string
	Category   string
	Search     string
	EmployerID int64
}

type JobRepository struct {
	db DBTX
}

func NewJobRepository(db DBTX) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, input CreateJobInput) (*models.Job, error) {
	query := `
		INSERT INTO jobs (employer_id, title, description, category, location, pay_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
		RETURNING id, employer_id, title, description, category, location, pay_amount, status,
				  assigned_student_id, created_at, updated_at
	`

	var job models.Job
	err := r.db.QueryRow(
		ctx,
		query,
		input.EmployerID,
		input.Title,
		input.Description,
		input.Category,
		input.Location,
		input.PayAmount,
	).Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Location,
		&job.PayAmount,
		&job.Status,
		&job.AssignedStudentID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) GetByID(ctx context.Context, jobID int64) (*models.Job, error) {
	query := `
		SELECT id, employer_id, title, description, category, location, pay_amount, status,
			   assigned_student_id, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`
	return r.scanJobRow(r.db.QueryRow(ctx, query, jobID))
}

func (r *JobRepository) GetByIDForUpdate(ctx context.Context, jobID int64) (*models.Job, error) {
	query := `
		SELECT id, employer_id, title, description, category, location, pay_amount, status,
			   assigned_student_id, created_at, updated_at
		FROM jobs
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanJobRow(r.db.QueryRow(ctx, query, jobID))
}

func (r *JobRepository) List(
	ctx context.Context,
	filter JobListFilter,
	limit int,
	offset int,
) ([]models.JobDetail, int, error) {
	args := []any{}
	whereParts := []string{}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("j.status = $%d", len(args)))
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		args = append(args, category)
		whereParts = append(whereParts, fmt.Sprintf("j.category = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		whereParts = append(
			whereParts,
			fmt.Sprintf("(j.title ILIKE $%d OR j.description ILIKE $%d)", len(args), len(args)),
		)
	}
	if filter.EmployerID > 0 {
		args = append(args, filter.EmployerID)
		whereParts = append(whereParts, fmt.Sprintf("j.employer_id = $%d", len(args)))
	}

	whereClause := ""
	if len(whereParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereParts, " AND ")
	}

	totalQuery := fmt.Sprintf(`SELECT COUNT(*) FROM jobs j %s`, whereClause)
	var total int
	if err := r.db.QueryRow(ctx, totalQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT j.id, j.employer_id, j.title, j.description, j.category, j.location, j.pay_amount,
			   j.status, j.assigned_student_id, j.created_at, j.updated_at,
			   u.full_name,
			   COALESCE(ac.application_count, 0)
		FROM jobs j
		JOIN users u ON u.id = j.employer_id
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS application_count
			FROM applications
			WHERE job_id = j.id AND status <> 'withdrawn'
		) ac ON TRUE
		%s
		ORDER BY j.created_at DESC, j.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := make([]models.JobDetail, 0)
	for rows.Next() {
		var detail models.JobDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.EmployerID,
			&detail.Title,
			&detail.Description,
			&detail.Category,
			&detail.Location,
			&detail.PayAmount,
			&detail.Status,
			&detail.AssignedStudentID,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.EmployerName,
			&detail.ApplicationCount,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepository) Update(ctx context.Context, jobID int64, input UpdateJobInput) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			location = COALESCE($5, location),
			pay_amount = COALESCE($6, pay_amount),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, employer_id, title, description, category, location, pay_amount, status,
				  assigned_student_id, created_at, updated_at
	`
	return r.scanJobRow(r.db.QueryRow(
		ctx,
		query,
		jobID,
		input.Title,
		input.Description,
		input.Category,
		input.Location,
		input.PayAmount,
	))
}

func (r *JobRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	jobID int64,
	currentStatus string,
	nextStatus string,
) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, employer_id, title, description, category, location, pay_amount, status,
				  assigned_student_id, created_at, updated_at
	`
	return r.scanJobRow(r.db.QueryRow(ctx, query, jobID, currentStatus, nextStatus))
}

func (r *JobRepository) AssignStudentIfCurrent(
	ctx context.Context,
	jobID int64,
	studentID int64,
	currentStatus string,
	nextStatus string,
) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = $4, assigned_student_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING id, employer_id, title, description, category, location, pay_amount, status,
				  assigned_student_id, created_at, updated_at
	`
	return r.scanJobRow(r.db.QueryRow(ctx, query, jobID, studentID, currentStatus, nextStatus))
}

type jobRow interface {
	Scan(dest ...any) error
}

func (r *JobRepository) scanJobRow(row jobRow) (*models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Location,
		&job.PayAmount,
		&job.Status,
		&job.AssignedStudentID,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
