package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/repository"
)

func TestJobCompletionHandshakeFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	jobService := newIntegrationJobService(pool)
	applicationService := newIntegrationApplicationService(pool)
	chatService := newIntegrationChatService(pool)

	studentID := createTestAccount(t, ctx, pool, models.RoleStudent)
	employerID := createTestAccount(t, ctx, pool, models.RoleEmployer)
	t.Cleanup(func() { cleanupTestJobs(t, ctx, pool, studentID, employerID) })

	job, err := jobService.CreateJob(ctx, employerID, models.RoleEmployer, CreateJobInput{
		Title:       "Logo Design",
		Description: "Design a logo for our student society",
		Category:    "design",
		PayAmount:   120,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.Status != models.JobStatusOpen {
		t.Fatalf("expected open job, got %q", job.Status)
	}

	application, err := applicationService.Apply(ctx, studentID, models.RoleStudent, job.ID, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := applicationService.Accept(ctx, employerID, models.RoleEmployer, application.ID); err != nil {
		t.Fatalf("Accept application: %v", err)
	}

	assigned, err := jobService.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob after accept: %v", err)
	}
	if assigned.Status != models.JobStatusInProgress {
		t.Fatalf("expected in_progress, got %q", assigned.Status)
	}
	if assigned.AssignedStudentID == nil || *assigned.AssignedStudentID != studentID {
		t.Fatalf("expected assigned student %d, got %v", studentID, assigned.AssignedStudentID)
	}

	// Only the assigned student may answer the handshake, and only the
	// employer may open it.
	if _, err := jobService.RequestCompletion(ctx, studentID, models.RoleStudent, job.ID); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for student request, got %v", err)
	}

	update, err := jobService.RequestCompletion(ctx, employerID, models.RoleEmployer, job.ID)
	if err != nil {
		t.Fatalf("RequestCompletion: %v", err)
	}
	if update.Job.Status != models.JobStatusPendingCompletion {
		t.Fatalf("expected pending_completion, got %q", update.Job.Status)
	}
	if !IsCompletionRequest(update.Message.Content) {
		t.Fatalf("handshake message not recognized: %q", update.Message.Content)
	}
	if title, ok := ExtractJobTitle(update.Message.Content); !ok || title != "Logo Design" {
		t.Fatalf("expected quoted title in message, got %q ok=%v", title, ok)
	}

	// A second request while one is pending must not stack.
	if _, err := jobService.RequestCompletion(ctx, employerID, models.RoleEmployer, job.ID); err != ErrInvalidStateTransition {
		t.Fatalf("expected ErrInvalidStateTransition on repeat request, got %v", err)
	}

	denied, err := jobService.DenyCompletion(ctx, studentID, models.RoleStudent, job.ID, "files missing")
	if err != nil {
		t.Fatalf("DenyCompletion: %v", err)
	}
	if denied.Job.Status != models.JobStatusInProgress {
		t.Fatalf("expected in_progress after deny, got %q", denied.Job.Status)
	}
	if ClassifyMessage(denied.Message.Content) != MessageKindCompletionResolved {
		t.Fatalf("deny outcome misclassified: %q", denied.Message.Content)
	}

	if _, err := jobService.RequestCompletion(ctx, employerID, models.RoleEmployer, job.ID); err != nil {
		t.Fatalf("second RequestCompletion: %v", err)
	}
	accepted, err := jobService.AcceptCompletion(ctx, studentID, models.RoleStudent, job.ID)
	if err != nil {
		t.Fatalf("AcceptCompletion: %v", err)
	}
	if accepted.Job.Status != models.JobStatusCompleted {
		t.Fatalf("expected completed, got %q", accepted.Job.Status)
	}

	// The whole handshake lives in the pair's conversation as ordinary
	// messages; the student sees the request rendered actionable only while
	// it is someone else's request.
	views, _, err := chatService.ListMessages(ctx, studentID, models.RoleStudent, update.Conversation.ID, 1, 50)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	var requests, resolved int
	for _, view := range views {
		switch view.Kind {
		case MessageKindCompletionRequest:
			requests++
			if !view.Actionable {
				t.Fatalf("employer request not actionable for student: %+v", view)
			}
		case MessageKindCompletionResolved:
			resolved++
			if view.Actionable {
				t.Fatalf("resolved outcome must not be actionable: %+v", view)
			}
		}
	}
	if requests != 2 || resolved != 2 {
		t.Fatalf("expected 2 requests and 2 outcomes in thread, got %d and %d", requests, resolved)
	}
}

func TestAcceptCompletionRequiresPendingState(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	jobService := newIntegrationJobService(pool)

	studentID := createTestAccount(t, ctx, pool, models.RoleStudent)
	employerID := createTestAccount(t, ctx, pool, models.RoleEmployer)
	t.Cleanup(func() { cleanupTestJobs(t, ctx, pool, studentID, employerID) })

	job, err := jobService.CreateJob(ctx, employerID, models.RoleEmployer, CreateJobInput{
		Title:       "Flyer Run",
		Description: "Hand out flyers on campus",
		Category:    "promo",
		PayAmount:   40,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	// No request pending and no assigned student yet.
	if _, err := jobService.AcceptCompletion(ctx, studentID, models.RoleStudent, job.ID); err != ErrInvalidStateTransition && err != ErrForbidden {
		t.Fatalf("expected state or authorization error, got %v", err)
	}
	if _, err := jobService.RequestCompletion(ctx, employerID, models.RoleEmployer, job.ID); err != ErrInvalidStateTransition {
		t.Fatalf("expected ErrInvalidStateTransition for open job, got %v", err)
	}
}

func newIntegrationJobService(pool *pgxpool.Pool) *JobService {
	return NewJobService(
		pool,
		repository.NewJobRepository(pool),
		repository.NewUserRepository(pool),
		newIntegrationNotifier(pool),
	)
}

func newIntegrationApplicationService(pool *pgxpool.Pool) *ApplicationService {
	return NewApplicationService(
		pool,
		repository.NewApplicationRepository(pool),
		repository.NewJobRepository(pool),
		repository.NewUserRepository(pool),
		newIntegrationNotifier(pool),
	)
}

func newIntegrationNotifier(pool *pgxpool.Pool) *NotificationService {
	return NewNotificationService(repository.NewNotificationRepository(pool), logrus.New())
}

func cleanupTestJobs(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if _, err := pool.Exec(ctx, "DELETE FROM applications WHERE student_id = ANY($1) OR job_id IN (SELECT id FROM jobs WHERE employer_id = ANY($1))", userIDs); err != nil {
		t.Fatalf("cleanup applications: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM jobs WHERE employer_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup jobs: %v", err)
	}
	cleanupTestUsers(t, ctx, pool, userIDs...)
}
