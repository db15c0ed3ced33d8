package domain

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Category values assigned by classification. The set is closed; anything the
// model returns outside of it is coerced to CategoryOther.
const (
	CategoryInternship  = "internship"
	CategorySpam        = "spam"
	CategoryPersonal    = "personal"
	CategoryPromotional = "promotional"
	CategoryWork        = "work"
	CategoryOther       = "other"
)

const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentUrgent   = "urgent"
	SentimentNegative = "negative"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// AIResult holds the classification verdict for one email
type AIResult struct {
	Category   string `json:"category"`
	Sentiment  string `json:"sentiment"`
	Confidence string `json:"confidence"`
}

// DefaultAIResult is the deterministic fallback used when the model output
// cannot be parsed. Classification must always produce a usable result.
func DefaultAIResult() AIResult {
	return AIResult{
		Category:   CategoryOther,
		Sentiment:  SentimentNeutral,
		Confidence: ConfidenceMedium,
	}
}

// ValidCategory reports whether c belongs to the closed category set
func ValidCategory(c string) bool {
	switch c {
	case CategoryInternship, CategorySpam, CategoryPersonal, CategoryPromotional, CategoryWork, CategoryOther:
		return true
	}
	return false
}

// ValidSentiment reports whether s belongs to the closed sentiment set
func ValidSentiment(s string) bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentUrgent, SentimentNegative:
		return true
	}
	return false
}

// ValidConfidence reports whether c belongs to the closed confidence set
func ValidConfidence(c string) bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// EmailSnapshot is the stored representation of a remote message at last
// sync. The ID is the provider-assigned message id and is unique per user;
// ingestion is idempotent on it. Bodies are fetched lazily and cached.
type EmailSnapshot struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"-" gorm:"index;not null"`
	Subject      string    `json:"subject"`
	From         string    `json:"from"`
	Date         string    `json:"date"`
	ReceivedAt   time.Time `json:"-" gorm:"index"`
	Snippet      string    `json:"snippet"`
	TextBody     string    `json:"textBody,omitempty" gorm:"type:text"`
	HTMLBody     string    `json:"htmlBody,omitempty" gorm:"type:text"`
	Processed    bool      `json:"processed"`
	IsInternship bool      `json:"isInternship"`
	AIResults    *AIResult `json:"aiResults,omitempty" gorm:"embedded;embeddedPrefix:ai_"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

func (EmailSnapshot) TableName() string {
	return "email_snapshots"
}

// MessageRef is the minimal metadata returned by a message list/metadata call
type MessageRef struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	Date       string    `json:"date"`
	ReceivedAt time.Time `json:"-"`
}

// Message is a fully fetched email with decoded bodies
type Message struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	Date       string    `json:"date"`
	ReceivedAt time.Time `json:"-"`
	TextBody   string    `json:"textBody"`
	HTMLBody   string    `json:"htmlBody"`
}

// PlainText returns the best plain-text rendering of the message body:
// text/plain when present, otherwise the HTML body with tags stripped.
func (m *Message) PlainText() string {
	if m.TextBody != "" {
		return m.TextBody
	}
	return StripHTML(m.HTMLBody)
}

// TokenUpdateFunc is called when the mail provider rotates the access token
type TokenUpdateFunc func(token *oauth2.Token) error

// Credentials carries the OAuth tokens used for mailbox access
type Credentials struct {
	AccessToken  string
	RefreshToken string
	OnRefresh    TokenUpdateFunc
}

// MailProvider is the read-only mailbox contract consumed by the ingestion
// and classification workflows
type MailProvider interface {
	// ListMessageIDs returns refs for messages newer than since, capped at
	// max. A nil since means first run: the most recent max messages.
	ListMessageIDs(ctx context.Context, creds Credentials, since *time.Time, max int) ([]MessageRef, error)
	// GetMetadata fetches headers only (no body download)
	GetMetadata(ctx context.Context, creds Credentials, id string) (*MessageRef, error)
	// GetMessage fetches the full message and decodes its MIME parts
	GetMessage(ctx context.Context, creds Credentials, id string) (*Message, error)
}
