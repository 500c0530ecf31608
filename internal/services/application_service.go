package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

type ApplicationService struct {
	db              *pgxpool.Pool
	applicationRepo *repository.ApplicationRepository
	jobRepo         *repository.JobRepository
	userRepo        userReader
	notifications   notifier
}

func NewApplicationService(
	db *pgxpool.Pool,
	applicationRepo *repository.ApplicationRepository,
	jobRepo *repository.JobRepository,
	userRepo userReader,
	notifications notifier,
) *ApplicationService {
	return &ApplicationService{
		db:              db,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

func (s *ApplicationService) Apply(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
	coverNote *string,
) (*models.Application, error) {
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}
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
	if job.Status != models.JobStatusOpen {
		return nil, ErrInvalidStateTransition
	}

	application, err := s.applicationRepo.Create(ctx, repository.CreateApplicationInput{
		JobID:     jobID,
		StudentID: actorID,
		CoverNote: coverNote,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrConflict
		}
		return nil, err
	}

	if s.notifications != nil {
		student, err := s.userRepo.GetByID(ctx, actorID)
		studentName := "A student"
		if err == nil {
			studentName = student.FullName
		}
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID: job.EmployerID,
			Type:   models.NotificationTypeApplicationReceived,
			Title:  "New application",
			Body:   studentName + " applied to \"" + job.Title + "\".",
			JobID:  &job.ID,
		})
	}

	return application, nil
}

func (s *ApplicationService) ListForJob(
	ctx context.Context,
	actorID int64,
	role string,
	jobID int64,
) ([]models.ApplicationDetail, error) {
	if role != models.RoleEmployer {
		return nil, ErrForbidden
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if job.EmployerID != actorID {
		return nil, ErrForbidden
	}

	return s.applicationRepo.ListByJob(ctx, jobID)
}

func (s *ApplicationService) ListForStudent(
	ctx context.Context,
	actorID int64,
	role string,
) ([]models.ApplicationDetail, error) {
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}
	return s.applicationRepo.ListByStudent(ctx, actorID)
}

// Accept hires the applicant: the application is accepted, the job moves to
// in_progress with the student assigned, every other pending application is
// rejected, and a job-scoped conversation is opened so the two sides can
// talk. All of it commits or none of it does.
func (s *ApplicationService) Accept(
	ctx context.Context,
	actorID int64,
	role string,
	applicationID int64,
) (*models.Application, error) {
	if role != models.RoleEmployer {
		return nil, ErrForbidden
	}

	_, job, err := s.loadForDecision(ctx, actorID, applicationID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusOpen {
		return nil, ErrInvalidStateTransition
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txApplicationRepo := repository.NewApplicationRepository(tx)
	txJobRepo := repository.NewJobRepository(tx)
	txConversationRepo := repository.NewConversationRepository(tx)

	if _, err := txJobRepo.GetByIDForUpdate(ctx, job.ID); err != nil {
		return nil, err
	}

	accepted, err := txApplicationRepo.UpdateStatusIfCurrent(
		ctx,
		applicationID,
		models.ApplicationStatusPending,
		models.ApplicationStatusAccepted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	if _, err := txJobRepo.AssignStudentIfCurrent(
		ctx,
		job.ID,
		accepted.StudentID,
		models.JobStatusOpen,
		models.JobStatusInProgress,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	rejectedStudentIDs, err := txApplicationRepo.RejectOtherPending(ctx, job.ID, applicationID)
	if err != nil {
		return nil, err
	}

	conversation, err := txConversationRepo.CreateOrGet(ctx, accepted.StudentID, actorID, &job.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID:         accepted.StudentID,
			Type:           models.NotificationTypeApplicationAccepted,
			Title:          "Application accepted",
			Body:           "You were hired for \"" + job.Title + "\".",
			JobID:          &job.ID,
			ConversationID: &conversation.ID,
		})
		for _, studentID := range rejectedStudentIDs {
			s.notifications.Emit(ctx, repository.CreateNotificationInput{
				UserID: studentID,
				Type:   models.NotificationTypeApplicationRejected,
				Title:  "Application closed",
				Body:   "The position for \"" + job.Title + "\" has been filled.",
				JobID:  &job.ID,
			})
		}
	}

	return accepted, nil
}

func (s *ApplicationService) Reject(
	ctx context.Context,
	actorID int64,
	role string,
	applicationID int64,
) (*models.Application, error) {
	if role != models.RoleEmployer {
		return nil, ErrForbidden
	}

	application, job, err := s.loadForDecision(ctx, actorID, applicationID)
	if err != nil {
		return nil, err
	}

	rejected, err := s.applicationRepo.UpdateStatusIfCurrent(
		ctx,
		application.ID,
		models.ApplicationStatusPending,
		models.ApplicationStatusRejected,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.Emit(ctx, repository.CreateNotificationInput{
			UserID: rejected.StudentID,
			Type:   models.NotificationTypeApplicationRejected,
			Title:  "Application update",
			Body:   "Your application for \"" + job.Title + "\" was not selected.",
			JobID:  &job.ID,
		})
	}

	return rejected, nil
}

func (s *ApplicationService) Withdraw(
	ctx context.Context,
	actorID int64,
	role string,
	applicationID int64,
) (*models.Application, error) {
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if application.StudentID != actorID {
		return nil, ErrForbidden
	}

	withdrawn, err := s.applicationRepo.UpdateStatusIfCurrent(
		ctx,
		applicationID,
		models.ApplicationStatusPending,
		models.ApplicationStatusWithdrawn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}
	return withdrawn, nil
}

func (s *ApplicationService) loadForDecision(
	ctx context.Context,
	employerID int64,
	applicationID int64,
) (*models.Application, *models.Job, error) {
	if applicationID <= 0 {
		return nil, nil, ErrInvalidInput
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	job, err := s.jobRepo.GetByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if job.EmployerID != employerID {
		return nil, nil, ErrForbidden
	}

	return application, job, nil
}
