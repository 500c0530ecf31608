package models

import "time"

type Conversation struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	EmployerID int64     `json:"employer_id"`
	JobID      *int64    `json:"job_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationSummary struct {
	Conversation
	OtherUserID   int64    `json:"other_user_id"`
	OtherUserName string   `json:"other_user_name"`
	OtherUserRole string   `json:"other_user_role"`
	JobTitle      *string  `json:"job_title,omitempty"`
	LastMessage   *Message `json:"last_message,omitempty"`
	UnreadCount   int      `json:"unread_count"`
}

// MessageView is a message as seen by one participant: the raw row plus the
// classification the client uses to pick a card or a plain bubble.
type MessageView struct {
	Message
	Kind       string `json:"kind"`
	Actionable bool   `json:"actionable"`
}
