package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/victordupreez0/studentgigs-backend/internal/models"
	"github.com/victordupreez0/studentgigs-backend/internal/services"
)

type stubChatService struct {
	conversationsResult []models.ConversationSummary
	conversationsErr    error
	createResult        *models.Conversation
	createErr           error
	messagesResult      []models.MessageView
	messagesTotal       int
	messagesErr         error
	sendResult          *services.ChatDelivery
	sendErr             error
	markReadResult      int64
	markReadErr         error
	lastActorID         int64
	lastRole            string
	lastOtherUserID     int64
	lastJobID           *int64
	lastConversationID  int64
	lastContent         string
	lastPage            int
	lastLimit           int
}

func (s *stubChatService) ListConversations(_ context.Context, actorID int64, role string) ([]models.ConversationSummary, error) {
	s.lastActorID = actorID
	s.lastRole = role
	return s.conversationsResult, s.conversationsErr
}

func (s *stubChatService) CreateOrGetConversation(_ context.Context, actorID int64, role string, otherUserID int64, jobID *int64) (*models.Conversation, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastOtherUserID = otherUserID
	s.lastJobID = jobID
	return s.createResult, s.createErr
}

func (s *stubChatService) ListMessages(_ context.Context, actorID int64, role string, conversationID int64, page int, limit int) ([]models.MessageView, int, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastConversationID = conversationID
	s.lastPage = page
	s.lastLimit = limit
	return s.messagesResult, s.messagesTotal, s.messagesErr
}

func (s *stubChatService) SendMessage(_ context.Context, actorID int64, role string, conversationID int64, content string) (*services.ChatDelivery, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastConversationID = conversationID
	s.lastContent = content
	return s.sendResult, s.sendErr
}

func (s *stubChatService) MarkConversationRead(_ context.Context, actorID int64, role string, conversationID int64) (int64, error) {
	s.lastActorID = actorID
	s.lastRole = role
	s.lastConversationID = conversationID
	return s.markReadResult, s.markReadErr
}

func newChatTestApp(handler *ChatHandler, role, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/v1/conversations", handler.ListConversations)
	app.Post("/api/v1/conversations", handler.CreateConversation)
	app.Get("/api/v1/conversations/:id/messages", handler.GetMessages)
	app.Post("/api/v1/conversations/:id/messages", handler.SendMessage)
	app.Post("/api/v1/conversations/:id/read", handler.MarkConversationRead)
	return app
}

func TestListConversationsReturnsConversationSummaries(t *testing.T) {
	service := &stubChatService{
		conversationsResult: []models.ConversationSummary{
			{
				Conversation:  models.Conversation{ID: 17, StudentID: 42, EmployerID: 8},
				OtherUserID:   8,
				OtherUserName: "Acme Media",
				OtherUserRole: "employer",
				LastMessage: &models.Message{
					ID:             3,
					ConversationID: 17,
					SenderID:       8,
					Content:        "Can you start Monday?",
					CreatedAt:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				},
				UnreadCount: 2,
			},
		},
	}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 || service.lastRole != "student" {
		t.Fatalf("unexpected actor context: %d %q", service.lastActorID, service.lastRole)
	}

	var body struct {
		Conversations []models.ConversationSummary `json:"conversations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Conversations) != 1 || body.Conversations[0].UnreadCount != 2 {
		t.Fatalf("unexpected response: %+v", body.Conversations)
	}
}

func TestCreateConversationForwardsJobID(t *testing.T) {
	service := &stubChatService{
		createResult: &models.Conversation{ID: 9, StudentID: 42, EmployerID: 7},
	}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(`{"other_user_id":7,"job_id":3}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastOtherUserID != 7 {
		t.Fatalf("expected other user id 7, got %d", service.lastOtherUserID)
	}
	if service.lastJobID == nil || *service.lastJobID != 3 {
		t.Fatalf("expected job id 3, got %v", service.lastJobID)
	}
}

func TestCreateConversationReturnsExistingWithoutConflict(t *testing.T) {
	// Re-posting the same participant pair must still answer 201 with the
	// existing conversation, never a conflict.
	service := &stubChatService{
		createResult: &models.Conversation{ID: 9, StudentID: 42, EmployerID: 7},
	}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", strings.NewReader(`{"other_user_id":7}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
	}
	if service.lastJobID != nil {
		t.Fatalf("expected nil job id, got %v", service.lastJobID)
	}
}

func TestGetMessagesReturnsPaginationAndKinds(t *testing.T) {
	service := &stubChatService{
		messagesResult: []models.MessageView{
			{
				Message:    models.Message{ID: 5, ConversationID: 11, SenderID: 7, Content: "Hi", CreatedAt: time.Now().UTC()},
				Kind:       services.MessageKindPlain,
				Actionable: false,
			},
			{
				Message:    models.Message{ID: 6, ConversationID: 11, SenderID: 8, Content: "\U0001F389 Dana requested to mark the job \"Logo Design\" as completed. Please confirm.", CreatedAt: time.Now().UTC()},
				Kind:       services.MessageKindCompletionRequest,
				Actionable: true,
			},
		},
		messagesTotal: 12,
	}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/11/messages?page=2&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastConversationID != 11 || service.lastPage != 2 || service.lastLimit != 5 {
		t.Fatalf("unexpected forwarded pagination: conversation=%d page=%d limit=%d", service.lastConversationID, service.lastPage, service.lastLimit)
	}

	var body struct {
		Messages   []models.MessageView  `json:"messages"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Messages) != 2 || body.Pagination.Total != 12 || body.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected response body: %+v %+v", body.Messages, body.Pagination)
	}
	if body.Messages[1].Kind != services.MessageKindCompletionRequest || !body.Messages[1].Actionable {
		t.Fatalf("expected actionable completion request, got %+v", body.Messages[1])
	}
}

func TestGetMessagesReturnsNotFound(t *testing.T) {
	service := &stubChatService{messagesErr: services.ErrNotFound}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "employer", "7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/99/messages", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetMessagesForbiddenForNonParticipant(t *testing.T) {
	service := &stubChatService{messagesErr: services.ErrForbidden}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/11/messages", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSendMessageReturnsCreatedMessage(t *testing.T) {
	service := &stubChatService{
		sendResult: &services.ChatDelivery{
			Conversation: &models.Conversation{ID: 11, StudentID: 42, EmployerID: 7},
			Message:      &models.Message{ID: 21, ConversationID: 11, SenderID: 42, Content: "On my way"},
			RecipientID:  7,
		},
	}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/11/messages", strings.NewReader(`{"content":"On my way"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastContent != "On my way" {
		t.Fatalf("expected forwarded content, got %q", service.lastContent)
	}

	var body struct {
		Message models.Message `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Message.ID != 21 {
		t.Fatalf("unexpected message: %+v", body.Message)
	}
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	service := &stubChatService{sendErr: services.ErrInvalidInput}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "student", "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/11/messages", strings.NewReader(`{"content":"   "}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMarkConversationReadReturnsUpdatedCount(t *testing.T) {
	service := &stubChatService{markReadResult: 3}
	handler := NewChatHandler(service)
	app := newChatTestApp(handler, "employer", "7")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/11/read", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastConversationID != 11 || service.lastActorID != 7 {
		t.Fatalf("unexpected forwarded args: conversation=%d actor=%d", service.lastConversationID, service.lastActorID)
	}

	var body struct {
		Updated int64 `json:"updated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Updated != 3 {
		t.Fatalf("expected 3 updated, got %d", body.Updated)
	}
}

func TestChatEndpointsRejectMissingAuthContext(t *testing.T) {
	handler := NewChatHandler(&stubChatService{})

	app := fiber.New()
	app.Get("/api/v1/conversations", handler.ListConversations)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
