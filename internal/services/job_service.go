package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

type JobService struct {
	db            *pgxpool.Pool
	jobRepo       *repository.JobRepository
	userRepo      userReader
	notifications notifier
}

func NewJobService(
	db *pgxpool.Pool,
	jobRepo *repository.JobRepository,
	userRepo userReader,
	notifications notifier,
) *JobService {
	return &JobService{
		db:            db,
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

type CreateJobInput struct {
	Title       string
	Description string
	Category    string
	Location    *string
	PayAmount   float64
}

// CompletionUpdate is the result of a completion handshake step: the job in
// its new status plus the chat message that records the step.
type CompletionUpdate struct {
	Job          *models.Job          `json:"job"`
	Conversation *models.Conversation `json:"conversation"`
	Message      *models.Message      `json:"message"`
}

func (s *JobService) CreateJob(
	ctx context.Context,
	actorID int64,
	role string,
	input CreateJobInput,
) (*models.Job, error) {
	if role != models.RoleEmployer {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)
	if title == "" || description == "" || category == "" || input.PayAmount <= 0 {
		return nil, ErrInvalidInput
	}

	return s.jobRepo.Create(ctx, repository.CreateJobInput{
		EmployerID:  actorID,
		Title:       title,
		Description: description,
		Category:    category,
		Location:    input.Location,
		PayAmount:   input.PayAmount,
	})
}

func (s *JobService) ListJobs(
	ctx context.Context,
	filter repository.JobListFilter,
	page int,
	limit int,
) ([]models.JobDetail, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.jobRepo.List(ctx, filter, limit, (page-1)*limit)
}

func (s *JobService) GetJob(ctx context.Context, jobID int64) (*models.Job, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) UpdateJob(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
	input repository.UpdateJobInput,
) (*models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleEmployer || job.EmployerID != actorID {
		return nil, ErrForbidden
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrInvalidStateTransition
	}
	if input.PayAmount != nil && *input.PayAmount <= 0 {
		return nil, ErrInvalidInput
	}

	return s.jobRepo.Update(ctx, jobID, input)
}

func (s *JobService) CancelJob(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
) (*models.Job, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleEmployer || job.EmployerID != actorID {
		return nil, ErrForbidden
	}
	switch job.Status {
	case models.JobStatusOpen, models.JobStatusInProgress:
	default:
		return nil, ErrInvalidStateTransition
	}

	cancelled, err := s.jobRepo.UpdateStatusIfCurrent(ctx, jobID, job.Status, models.JobStatusCancelled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}
	return cancelled, nil
}

// RequestCompletion is the employer's half of the handshake: the job moves to
// pending_completion and the canonical signal message lands in the pair's
// job conversation. The student answers through AcceptCompletion or
// DenyCompletion.
func (s *JobService) RequestCompletion(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
) (*CompletionUpdate, error) {
	if role != models.RoleEmployer {
		return nil, ErrForbidden
	}

	employer, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	update, err := s.runCompletionStep(ctx, jobID, completionStep{
		currentStatus: models.JobStatusInProgress,
		nextStatus:    models.JobStatusPendingCompletion,
		authorize: func(job *models.Job) error {
			if job.EmployerID != actorID {
				return ErrForbidden
			}
			if job.AssignedStudentID == nil {
				return ErrInvalidStateTransition
			}
			return nil
		},
		messageContent: func(job *models.Job) string {
			return CompletionRequestContent(employer.FullName, job.Title)
		},
		senderID: actorID,
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil && update.Job.AssignedStudentID != nil {
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID:         *update.Job.AssignedStudentID,
			Type:           models.NotificationTypeCompletionRequested,
			Title:          "Completion requested",
			Body:           employer.FullName + " marked \"" + update.Job.Title + "\" as completed. Please confirm.",
			JobID:          &update.Job.ID,
			ConversationID: &update.Conversation.ID,
		})
	}

	return update, nil
}

// AcceptCompletion confirms the employer's request: the job completes and the
// outcome is recorded as a new plain message. The original request message is
// never touched.
func (s *JobService) AcceptCompletion(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
) (*CompletionUpdate, error) {
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}

	student, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	update, err := s.runCompletionStep(ctx, jobID, completionStep{
		currentStatus: models.JobStatusPendingCompletion,
		nextStatus:    models.JobStatusCompleted,
		authorize: func(job *models.Job) error {
			if job.AssignedStudentID == nil || *job.AssignedStudentID != actorID {
				return ErrForbidden
			}
			return nil
		},
		messageContent: func(job *models.Job) string {
			return CompletionConfirmedContent(student.FullName, job.Title)
		},
		senderID: actorID,
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID:         update.Job.EmployerID,
			Type:           models.NotificationTypeCompletionAccepted,
			Title:          "Completion confirmed",
			Body:           student.FullName + " confirmed completion of \"" + update.Job.Title + "\".",
			JobID:          &update.Job.ID,
			ConversationID: &update.Conversation.ID,
		})
	}

	return update, nil
}

// DenyCompletion rejects the request and puts the job back in progress. The
// optional reason is folded into the outcome message text.
func (s *JobService) DenyCompletion(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
	reason string,
) (*CompletionUpdate, error) {
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}

	student, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	update, err := s.runCompletionStep(ctx, jobID, completionStep{
		currentStatus: models.JobStatusPendingCompletion,
		nextStatus:    models.JobStatusInProgress,
		authorize: func(job *models.Job) error {
			if job.AssignedStudentID == nil || *job.AssignedStudentID != actorID {
				return ErrForbidden
			}
			return nil
		},
		messageContent: func(job *models.Job) string {
			return CompletionDeniedContent(student.FullName, job.Title, reason)
		},
		senderID: actorID,
	})
	if err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID:         update.Job.EmployerID,
			Type:           models.NotificationTypeCompletionDenied,
			Title:          "Completion denied",
			Body:           student.FullName + " denied completion of \"" + update.Job.Title + "\".",
			JobID:          &update.Job.ID,
			ConversationID: &update.Conversation.ID,
		})
	}

	return update, nil
}

type completionStep struct {
	currentStatus  string
	nextStatus     string
	authorize      func(job *models.Job) error
	messageContent func(job *models.Job) string
	senderID       int64
}

// runCompletionStep performs one handshake transition atomically: lock the
// job row, compare-and-set its status, and record the step as a chat message
// in the pair's job conversation.
func (s *JobService) runCompletionStep(
	ctx context.Context,
	jobID int64,
	step completionStep,
) (*CompletionUpdate, error) {
	if jobID <= 0 {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txJobRepo := repository.NewJobRepository(tx)
	txConversationRepo := repository.NewConversationRepository(tx)
	txMessageRepo := repository.NewMessageRepository(tx)

	job, err := txJobRepo.GetByIDForUpdate(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := step.authorize(job); err != nil {
		return nil, err
	}
	if job.Status != step.currentStatus {
		return nil, ErrInvalidStateTransition
	}

	updated, err := txJobRepo.UpdateStatusIfCurrent(ctx, jobID, step.currentStatus, step.nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	conversation, err := txConversationRepo.CreateOrGet(
		ctx,
		*updated.AssignedStudentID,
		updated.EmployerID,
		&updated.ID,
	)
	if err != nil {
		return nil, err
	}

	message, err := txMessageRepo.Create(ctx, conversation.ID, step.senderID, step.messageContent(updated))
	if err != nil {
		return nil, err
	}

	if err := txConversationRepo.Touch(ctx, conversation.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CompletionUpdate{
		Job:          updated,
		Conversation: conversation,
		Message:      message,
	}, nil
}
