package usecase

import (
	"context"

	emaildomain "internmail-backend/internal/email/domain"
	internshipdomain "internmail-backend/internal/internship/domain"
)

// SyncResult is what one ingestion cycle hands back to the caller
type SyncResult struct {
	Emails           []*emaildomain.EmailSnapshot `json:"emails"`
	NewEmailsCount   int                          `json:"newEmailsCount"`
	TotalEmailsCount int                          `json:"totalEmailsCount"`
	FailedIDs        []string                     `json:"failedIds,omitempty"`
}

// ClassificationResult is the outcome of classifying one email. Warning is
// set when a deterministic fallback stood in for the model.
type ClassificationResult struct {
	Category     string                               `json:"category"`
	Sentiment    string                               `json:"sentiment"`
	Confidence   string                               `json:"confidence"`
	IsInternship bool                                 `json:"isInternship"`
	Internship   *internshipdomain.InternshipRecord   `json:"internship,omitempty"`
	Warning      string                               `json:"warning,omitempty"`
}

// BatchClassificationResult aggregates a classify-all run. Per-item failures
// never abort sibling items; they land in FailedIDs.
type BatchClassificationResult struct {
	Processed        int      `json:"processed"`
	InternshipsFound int      `json:"internshipsFound"`
	Warnings         int      `json:"warnings"`
	FailedIDs        []string `json:"failedIds,omitempty"`
}

// AssistResult is the shared response shape for the assist features
type AssistResult struct {
	Output  []string `json:"output"`
	Warning string   `json:"warning,omitempty"`
}

// EmailUsecase orchestrates ingestion, classification and the assist
// features on top of the mail provider, the AI completer and the store
type EmailUsecase interface {
	// SyncInbox runs one ingestion cycle: delta of unseen messages since
	// the watermark, metadata snapshots, watermark advance
	SyncInbox(ctx context.Context, userID string) (*SyncResult, error)
	// ListEmails returns stored snapshots sorted by date descending
	ListEmails(userID string) ([]*emaildomain.EmailSnapshot, error)
	// GetEmail returns one snapshot, fetching and caching its body on
	// first access
	GetEmail(ctx context.Context, userID, id string) (*emaildomain.EmailSnapshot, error)
	// ClassifyEmail runs the classification workflow for one email and,
	// for internship mail, the structured extraction
	ClassifyEmail(ctx context.Context, userID, emailID string) (*ClassificationResult, error)
	// ClassifyAll classifies every unprocessed snapshot on a bounded
	// worker pool; cancellation is honored between items
	ClassifyAll(ctx context.Context, userID string) (*BatchClassificationResult, error)

	// DigestInbox summarizes the last 24 hours of inbox traffic
	DigestInbox(ctx context.Context, userID string) (string, error)
	// SummarizeEmail produces a short summary of one email body
	SummarizeEmail(ctx context.Context, userID, emailID string) (string, error)
	// SuggestReplies generates short reply suggestions for a message
	SuggestReplies(ctx context.Context, subject, body string) (*AssistResult, error)
	// RewriteTone rewrites a draft reply in the requested tone
	RewriteTone(ctx context.Context, text, draft, tone string) (*AssistResult, error)
	// AnalyzeSentiment classifies a text's sentiment as one word
	AnalyzeSentiment(ctx context.Context, text string) (*AssistResult, error)
	// ExtractActions pulls action items out of an email text
	ExtractActions(ctx context.Context, text string) (*AssistResult, error)

	// Stats returns the per-user system state (watermark and counters)
	Stats(userID string) (*emaildomain.SystemState, error)
}
