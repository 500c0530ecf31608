package models

import "time"

const (
	NotificationTypeNewMessage          = "new_message"
	NotificationTypeApplicationReceived = "application_received"
	NotificationTypeApplicationAccepted = "application_accepted"
	NotificationTypeApplicationRejected = "application_rejected"
	NotificationTypeCompletionRequested = "completion_requested"
	NotificationTypeCompletionAccepted  = "completion_accepted"
	NotificationTypeCompletionDenied    = "completion_denied"
)

type Notification struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	JobID          *int64    `json:"job_id,omitempty"`
	ConversationID *int64    `json:"conversation_id,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
