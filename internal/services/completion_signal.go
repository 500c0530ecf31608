package services

import (
	"fmt"
	"strings"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

// Completion requests travel inside ordinary chat messages as a textual
// convention rather than a typed field. The matching below is deliberately
// loose and must stay in sync with the builder functions that produce the
// canonical texts; existing message history depends on it.

const (
	MessageKindPlain              = "plain"
	MessageKindCompletionRequest  = "completion_request"
	MessageKindCompletionResolved = "completion_resolved"

	completionMarker = "\U0001F389" // 🎉
)

// IsCompletionRequest reports whether the content matches the completion
// request convention: a request phrase, the word "completed", and the
// celebratory marker glyph. All three must be present.
func IsCompletionRequest(content string) bool {
	if !strings.Contains(content, completionMarker) {
		return false
	}
	if !strings.Contains(content, "completed") {
		return false
	}
	return strings.Contains(content, "requested to mark the job") ||
		strings.Contains(content, "marked the job")
}

// ClassifyMessage maps raw content onto the card-vs-bubble tagged union the
// client renders from.
func ClassifyMessage(content string) string {
	switch {
	case IsCompletionRequest(content):
		return MessageKindCompletionRequest
	case strings.Contains(content, "confirmed completion") ||
		strings.Contains(content, "denied completion"):
		return MessageKindCompletionResolved
	default:
		return MessageKindPlain
	}
}

// ExtractJobTitle pulls the quoted job title out of a signal message: the
// text between the first pair of double quotes after the word "job". The job
// id itself always comes from the conversation, never from the text.
func ExtractJobTitle(content string) (string, bool) {
	idx := strings.Index(content, "job")
	if idx < 0 {
		return "", false
	}
	rest := content[idx+len("job"):]

	open := strings.Index(rest, `"`)
	if open < 0 {
		return "", false
	}
	rest = rest[open+1:]

	closing := strings.Index(rest, `"`)
	if closing < 0 {
		return "", false
	}
	return rest[:closing], true
}

// RenderAsActionable decides whether a message shows as an actionable
// confirmation card. All three conditions are required: the viewer is the
// student, the message came from the other side, and the content matches the
// request convention.
func RenderAsActionable(kind string, viewerRole string, isOwnMessage bool) bool {
	return viewerRole == models.RoleStudent &&
		!isOwnMessage &&
		kind == MessageKindCompletionRequest
}

func CompletionRequestContent(employerName, jobTitle string) string {
	return fmt.Sprintf(
		"%s %s requested to mark the job %q as completed. Please confirm.",
		completionMarker, employerName, jobTitle,
	)
}

func CompletionConfirmedContent(studentName, jobTitle string) string {
	return fmt.Sprintf("%s confirmed completion of the job %q.", studentName, jobTitle)
}

func CompletionDeniedContent(studentName, jobTitle, reason string) string {
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		return fmt.Sprintf("%s denied completion of the job %q, reason: %s", studentName, jobTitle, trimmed)
	}
	return fmt.Sprintf("%s denied completion of the job %q.", studentName, jobTitle)
}
