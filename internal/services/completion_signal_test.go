package services

import (
	"testing"

	"github.com/victordupreez0/studentgigs-backend/internal/models"
)

func TestIsCompletionRequest(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "canonical request",
			content: "\U0001F389 The employer requested to mark the job \"Logo Design\" as completed. Please confirm.",
			want:    true,
		},
		{
			name:    "marked the job variant",
			content: "\U0001F389 Dana marked the job \"Flyer Run\" as completed.",
			want:    true,
		},
		{
			name:    "ordinary chat mentioning completion",
			content: "The job is going well, almost completed!",
			want:    false,
		},
		{
			name:    "request phrase without marker",
			content: "The employer requested to mark the job \"Logo Design\" as completed. Please confirm.",
			want:    false,
		},
		{
			name:    "marker without request phrase",
			content: "\U0001F389 congrats on finishing!",
			want:    false,
		},
		{
			name:    "marker and phrase without completed",
			content: "\U0001F389 Dana requested to mark the job \"Logo Design\" as done.",
			want:    false,
		},
		{
			name:    "empty content",
			content: "",
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCompletionRequest(tc.content); got != tc.want {
				t.Fatalf("IsCompletionRequest(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}

func TestClassifyMessage(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "request",
			content: CompletionRequestContent("Dana", "Logo Design"),
			want:    MessageKindCompletionRequest,
		},
		{
			name:    "confirmed outcome",
			content: CompletionConfirmedContent("Sam", "Logo Design"),
			want:    MessageKindCompletionResolved,
		},
		{
			name:    "denied outcome",
			content: CompletionDeniedContent("Sam", "Logo Design", "missing files"),
			want:    MessageKindCompletionResolved,
		},
		{
			name:    "plain chat",
			content: "see you at 9",
			want:    MessageKindPlain,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyMessage(tc.content); got != tc.want {
				t.Fatalf("ClassifyMessage(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestBuildersRoundTripThroughClassifier(t *testing.T) {
	request := CompletionRequestContent("Dana", "Poster \"Design\"")
	if !IsCompletionRequest(request) {
		t.Fatalf("builder output not recognized as request: %q", request)
	}
	if ClassifyMessage(request) != MessageKindCompletionRequest {
		t.Fatalf("builder output misclassified: %q", request)
	}
}

func TestExtractJobTitle(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		wantTitle string
		wantOK    bool
	}{
		{
			name:      "canonical request",
			content:   CompletionRequestContent("Dana", "Logo Design"),
			wantTitle: "Logo Design",
			wantOK:    true,
		},
		{
			name:      "denied outcome",
			content:   CompletionDeniedContent("Sam", "Flyer Run", ""),
			wantTitle: "Flyer Run",
			wantOK:    true,
		},
		{
			name:    "no quotes",
			content: "requested to mark the job as completed",
			wantOK:  false,
		},
		{
			name:    "no job keyword",
			content: `the "Logo Design" work is done`,
			wantOK:  false,
		},
		{
			name:    "unterminated quote",
			content: `requested to mark the job "Logo Design as completed`,
			wantOK:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			title, ok := ExtractJobTitle(tc.content)
			if ok != tc.wantOK {
				t.Fatalf("ExtractJobTitle(%q) ok = %v, want %v", tc.content, ok, tc.wantOK)
			}
			if ok && title != tc.wantTitle {
				t.Fatalf("ExtractJobTitle(%q) = %q, want %q", tc.content, title, tc.wantTitle)
			}
		})
	}
}

func TestRenderAsActionable(t *testing.T) {
	cases := []struct {
		name         string
		kind         string
		viewerRole   string
		isOwnMessage bool
		want         bool
	}{
		{"student viewing employer request", MessageKindCompletionRequest, models.RoleStudent, false, true},
		{"employer viewing own request", MessageKindCompletionRequest, models.RoleEmployer, true, false},
		{"employer viewing request", MessageKindCompletionRequest, models.RoleEmployer, false, false},
		{"student viewing own message", MessageKindCompletionRequest, models.RoleStudent, true, false},
		{"student viewing plain message", MessageKindPlain, models.RoleStudent, false, false},
		{"student viewing resolved outcome", MessageKindCompletionResolved, models.RoleStudent, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RenderAsActionable(tc.kind, tc.viewerRole, tc.isOwnMessage)
			if got != tc.want {
				t.Fatalf("RenderAsActionable(%q, %q, %v) = %v, want %v", tc.kind, tc.viewerRole, tc.isOwnMessage, got, tc.want)
			}
		})
	}
}

func TestCompletionDeniedContentReason(t *testing.T) {
	withReason := CompletionDeniedContent("Sam", "Logo Design", "files missing")
	if withReason != `Sam denied completion of the job "Logo Design", reason: files missing` {
		t.Fatalf("unexpected denied content: %q", withReason)
	}

	withoutReason := CompletionDeniedContent("Sam", "Logo Design", "   ")
	if withoutReason != `Sam denied completion of the job "Logo Design".` {
		t.Fatalf("unexpected denied content: %q", withoutReason)
	}
}
