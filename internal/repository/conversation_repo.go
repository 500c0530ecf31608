package repository

import (
	"context"
	"database/sql"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

type ConversationRepository struct {
	db DBTX
}

func NewConversationRepository(db DBTX) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateOrGet inserts a conversation for the (student, employer, job) triple
// or returns the existing row. The unique index treats a NULL job_id as the
// sentinel 0, so the general "no job" conversation is deduplicated too, and
// two concurrent creators always converge on the same row.
func (r *ConversationRepository) CreateOrGet(
	ctx context.Context,
	studentID int64,
	employerID int64,
	jobID *int64,
) (*models.Conversation, error) {
	query := `
		INSERT INTO conversations (student_id, employer_id, job_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, employer_id, (COALESCE(job_id, 0)))
		DO UPDATE SET updated_at = conversations.updated_at
		RETURNING id, student_id, employer_id, job_id, created_at, updated_at
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, studentID, employerID, jobID).Scan(
		&conversation.ID,
		&conversation.StudentID,
		&conversation.EmployerID,
		&conversation.JobID,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &conversation, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, conversationID int64) (*models.Conversation, error) {
	query := `
		SELECT id, student_id, employer_id, job_id, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, conversationID).Scan(
		&conversation.ID,
		&conversation.StudentID,
		&conversation.EmployerID,
		&conversation.JobID,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &conversation, nil
}

func (r *ConversationRepository) ListForParticipant(
	ctx context.Context,
	participantID int64,
) ([]models.ConversationSummary, error) {
	query := `
		SELECT
			c.id,
			c.student_id,
			c.employer_id,
			c.job_id,
			c.created_at,
			c.updated_at,
			CASE WHEN c.student_id = $1 THEN c.employer_id ELSE c.student_id END,
			CASE WHEN c.student_id = $1 THEN ue.full_name ELSE us.full_name END,
			CASE WHEN c.student_id = $1 THEN ue.role ELSE us.role END,
			j.title,
			lm.id,
			lm.conversation_id,
			lm.sender_id,
			lm.content,
			lm.is_read,
			lm.created_at,
			COALESCE(uc.unread_count, 0)
		FROM conversations c
		JOIN users us ON us.id = c.student_id
		JOIN users ue ON ue.id = c.employer_id
		LEFT JOIN jobs j ON j.id = c.job_id
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, content, is_read, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE conversation_id = c.id
			  AND sender_id <> $1
			  AND is_read = FALSE
		) uc ON TRUE
		WHERE c.student_id = $1 OR c.employer_id = $1
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC, c.id DESC
	`

	rows, err := r.db.Query(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var summary models.ConversationSummary
		var messageID sql.NullInt64
		var messageConversationID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageContent sql.NullString
		var messageIsRead sql.NullBool
		var messageCreatedAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.StudentID,
			&summary.EmployerID,
			&summary.JobID,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.OtherUserID,
			&summary.OtherUserName,
			&summary.OtherUserRole,
			&summary.JobTitle,
			&messageID,
			&messageConversationID,
			&messageSenderID,
			&messageContent,
			&messageIsRead,
			&messageCreatedAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}

		if messageID.Valid {
			summary.LastMessage = &models.Message{
				ID:             messageID.Int64,
				ConversationID: messageConversationID.Int64,
				SenderID:       messageSenderID.Int64,
				Content:        messageContent.String,
				IsRead:         messageIsRead.Bool,
				CreatedAt:      messageCreatedAt.Time,
			}
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *ConversationRepository) Touch(ctx context.Context, conversationID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE conversations
		SET updated_at = NOW()
		WHERE id = $1
	`, conversationID)
	return err
}
