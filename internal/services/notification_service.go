package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

// NotificationService is a best-effort collaborator: the operations that
// trigger notifications never fail because one could not be written.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	log              *logrus.Logger
}

func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	log *logrus.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		log:              log,
	}
}

// Emit writes a notification row; failures are logged and swallowed.
func (s *NotificationService) Emit(ctx context.Context, input repository.CreateNotificationInput) {
	if _, err := s.notificationRepo.Create(ctx, input); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id": input.UserID,
			"type":    input.Type,
		}).WithError(err).Warn("failed to write notification")
	}
}

func (s *NotificationService) List(
	ctx context.Context,
	actorID int64,
	page int,
	limit int,
) ([]models.Notification, int, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, 0, ErrInvalidInput
	}

	notifications, total, err := s.notificationRepo.ListForUser(ctx, actorID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, actorID)
	if err != nil {
		return nil, 0, 0, err
	}

	return notifications, total, unread, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actorID int64, notificationID int64) (int64, error) {
	if notificationID <= 0 {
		return 0, ErrInvalidInput
	}
	return s.notificationRepo.MarkRead(ctx, notificationID, actorID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actorID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, actorID)
}
