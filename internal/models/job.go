package models

import "time"

const (
	JobStatusOpen              = "open"
	JobStatusInProgress        = "in_progress"
	JobStatusPendingCompletion = "pending_completion"
	JobStatusCompleted         = "completed"
	JobStatusCancelled         = "cancelled"
)

type Job struct {
	ID                int64     `json:"id"`
	EmployerID        int64     `json:"employer_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Location          *string   `json:"location"`
	PayAmount         float64   `json:"pay_amount"`
	Status            string    `json:"status"`
	AssignedStudentID *int64    `json:"assigned_student_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type JobDetail struct {
	Job
	EmployerName     string `json:"employer_name"`
	ApplicationCount int    `json:"application_count"`
}
