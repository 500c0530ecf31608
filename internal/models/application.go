package models

import "time"

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

type Application struct {
	ID        int64     `json:"id"`
	JobID     int64     `json:"job_id"`
	StudentID int64     `json:"student_id"`
	CoverNote *string   `json:"cover_note"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ApplicationDetail struct {
	Application
	JobTitle    string `json:"job_title"`
	JobStatus   string `json:"job_status"`
	StudentName string `json:"student_name"`
}
