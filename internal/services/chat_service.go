package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type jobReader interface {
	GetByID(ctx context.Context, jobID int64) (*models.Job, error)
}

type notifier interface {
	Emit(ctx context.Context, input repository.CreateNotificationInput)
}

type ChatService struct {
	db               *pgxpool.Pool
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
	userRepo         userReader
	jobRepo          jobReader
	notifications    notifier
}

type ChatDelivery struct {
	Conversation *models.Conversation
	Message      *models.Message
	RecipientID  int64
}

func NewChatService(
	db *pgxpool.Pool,
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	userRepo userReader,
	jobRepo jobReader,
	notifications notifier,
) *ChatService {
	return &ChatService{
		db:               db,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		notifications:    notifications,
	}
}

// CreateOrGetConversation finds or creates the conversation between the actor
// and the other user, optionally scoped to a job. The call is idempotent and
// order-independent: the student and employer sides are resolved from each
// user's role, not from who asked.
func (s *ChatService) CreateOrGetConversation(
	ctx context.Context,
	actorID int64,
	role string,
	otherUserID int64,
	jobID *int64,
) (*models.Conversation, error) {
	if !models.ValidRole(role) {
		return nil, ErrForbidden
	}
	if actorID <= 0 || otherUserID <= 0 || otherUserID == actorID {
		return nil, ErrInvalidInput
	}

	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if other.Role == role || !models.ValidRole(other.Role) {
		return nil, ErrInvalidInput
	}

	studentID, employerID := actorID, otherUserID
	if role == models.RoleEmployer {
		studentID, employerID = otherUserID, actorID
	}

	if jobID != nil {
		if _, err := s.jobRepo.GetByID(ctx, *jobID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	return s.conversationRepo.CreateOrGet(ctx, studentID, employerID, jobID)
}

func (s *ChatService) ListConversations(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.ConversationSummary, error) {
	if !models.ValidRole(role) {
		return nil, ErrForbidden
	}

	return s.conversationRepo.ListForParticipant(ctx, actorID)
}

// ListMessages returns the thread oldest first, each message classified for
// the requesting viewer. Reading does not mark anything read; that is a
// separate operation.
func (s *ChatService) ListMessages(
	ctx context.Context,
	actorID int64,
	role string,
	conversationID int64,
	page int,
	limit int,
) ([]models.MessageView, int, error) {
	if !models.ValidRole(role) {
		return nil, 0, ErrForbidden
	}
	if conversationID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}
	if !isParticipant(conversation, actorID) {
		return nil, 0, ErrForbidden
	}

	messages, total, err := s.messageRepo.ListByConversation(
		ctx,
		conversationID,
		limit,
		(page-1)*limit,
	)
	if err != nil {
		return nil, 0, err
	}

	views := make([]models.MessageView, 0, len(messages))
	for _, message := range messages {
		kind := ClassifyMessage(message.Content)
		views = append(views, models.MessageView{
			Message:    message,
			Kind:       kind,
			Actionable: RenderAsActionable(kind, role, message.SenderID == actorID),
		})
	}

	return views, total, nil
}

func (s *ChatService) SendMessage(
	ctx context.Context,
	actorID int64,
	role string,
	conversationID int64,
	content string,
) (*ChatDelivery, error) {
	if !models.ValidRole(role) {
		return nil, ErrForbidden
	}
	if conversationID <= 0 {
		return nil, ErrInvalidInput
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !isParticipant(conversation, actorID) {
		return nil, ErrForbidden
	}

	recipientID := conversation.StudentID
	if actorID == conversation.StudentID {
		recipientID = conversation.EmployerID
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txMessageRepo := repository.NewMessageRepository(tx)
	txConversationRepo := repository.NewConversationRepository(tx)

	message, err := txMessageRepo.Create(ctx, conversationID, actorID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := txConversationRepo.Touch(ctx, conversationID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		sender, err := s.userRepo.GetByID(ctx, actorID)
		senderName := "Someone"
		if err == nil {
			senderName = sender.FullName
		}
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID:         recipientID,
			Type:           models.NotificationTypeNewMessage,
			Title:          "New message",
			Body:           senderName + " sent you a message",
			ConversationID: &conversation.ID,
		})
	}

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  recipientID,
	}, nil
}

// MarkConversationRead flips the unread flag on every message addressed to
// the reader and reports how many rows changed. Safe to repeat.
func (s *ChatService) MarkConversationRead(
	ctx context.Context,
	actorID int64,
	role string,
	conversationID int64,
) (int64, error) {
	if !models.ValidRole(role) {
		return 0, ErrForbidden
	}
	if conversationID <= 0 {
		return 0, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !isParticipant(conversation, actorID) {
		return 0, ErrForbidden
	}

	return s.messageRepo.MarkConversationRead(ctx, conversationID, actorID)
}

func isParticipant(conversation *models.Conversation, userID int64) bool {
	return conversation.StudentID == userID || conversation.EmployerID == userID
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
