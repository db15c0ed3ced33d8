package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"internmail-backend/pkg/ai"
)

const digestWindow = 24 * time.Hour
const digestMaxEmails = 50

// Canned responses used when the AI stack reports a retriable failure. The
// caller sees a warning alongside them instead of an error.
var (
	fallbackReplies = []string{
		"Thank you for your email. I'll review and get back to you soon.",
		"I appreciate you reaching out. Let me look into this.",
		"Thanks for the information. I'll follow up shortly.",
	}
	fallbackActions = []string{
		"Review the email content carefully",
		"Consider the sender's request",
		"Respond within a reasonable timeframe",
	}
	fallbackRewrite = []string{
		"I apologize, but I'm currently experiencing high demand. Please try again later or compose your reply manually.",
	}
	fallbackSentiment = []string{"neutral"}
)

// DigestInbox summarizes the inbox traffic of the last 24 hours into a
// markdown briefing
func (u *emailUsecase) DigestInbox(ctx context.Context, userID string) (string, error) {
	creds, err := u.credentialsFor(userID)
	if err != nil {
		return "", err
	}

	since := time.Now().Add(-digestWindow)
	listCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
	refs, err := u.mailProvider.ListMessageIDs(listCtx, creds, &since, digestMaxEmails)
	cancel()
	if err != nil {
		return "", err
	}

	if len(refs) == 0 {
		return "* No emails received in the last 24 hours.", nil
	}

	var snippets []string
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fetchCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
		meta, err := u.mailProvider.GetMetadata(fetchCtx, creds, ref.ID)
		cancel()
		if err != nil {
			log.Printf("[DIGEST] Failed to fetch metadata for %s: %v", ref.ID, err)
			continue
		}
		snippets = append(snippets, fmt.Sprintf("From: %s\nSubject: %s", meta.From, meta.Subject))
	}
	if len(snippets) == 0 {
		return "* No emails received in the last 24 hours.", nil
	}

	aiCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()
	return u.completer.Complete(aiCtx, digestPrompt(snippets))
}

// SummarizeEmail produces a short summary of one email body
func (u *emailUsecase) SummarizeEmail(ctx context.Context, userID, emailID string) (string, error) {
	snapshot, err := u.emailRepo.GetByID(userID, emailID)
	if err != nil {
		return "", err
	}

	content, err := u.bodyText(ctx, userID, snapshot)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		content = snapshot.Subject
	}

	aiCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()
	raw, err := u.completer.Complete(aiCtx, summarizePrompt(content))
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(raw)
	summary = strings.TrimPrefix(summary, "TL;DR:")
	return strings.TrimSpace(summary), nil
}

func (u *emailUsecase) SuggestReplies(ctx context.Context, subject, body string) (*AssistResult, error) {
	raw, err := u.assistCall(ctx, repliesPrompt(subject, body))
	if err != nil {
		if ai.IsRetriable(err) {
			return &AssistResult{Output: fallbackReplies, Warning: fallbackWarning}, nil
		}
		return nil, err
	}

	replies := ai.ParseBullets(raw)
	if len(replies) == 0 {
		return &AssistResult{Output: fallbackReplies, Warning: fallbackWarning}, nil
	}
	return &AssistResult{Output: replies}, nil
}

func (u *emailUsecase) RewriteTone(ctx context.Context, text, draft, tone string) (*AssistResult, error) {
	raw, err := u.assistCall(ctx, rewritePrompt(text, draft, tone))
	if err != nil {
		if ai.IsRetriable(err) {
			return &AssistResult{Output: fallbackRewrite, Warning: fallbackWarning}, nil
		}
		return nil, err
	}
	return &AssistResult{Output: []string{strings.TrimSpace(raw)}}, nil
}

func (u *emailUsecase) AnalyzeSentiment(ctx context.Context, text string) (*AssistResult, error) {
	raw, err := u.assistCall(ctx, sentimentPrompt(text))
	if err != nil {
		if ai.IsRetriable(err) {
			return &AssistResult{Output: fallbackSentiment, Warning: fallbackWarning}, nil
		}
		return nil, err
	}

	word := strings.ToLower(strings.TrimSpace(raw))
	word = strings.Trim(word, ".\"'")
	switch word {
	case "positive", "negative", "neutral", "urgent":
	default:
		word = "neutral"
	}
	return &AssistResult{Output: []string{word}}, nil
}

func (u *emailUsecase) ExtractActions(ctx context.Context, text string) (*AssistResult, error) {
	raw, err := u.assistCall(ctx, actionsPrompt(text))
	if err != nil {
		if ai.IsRetriable(err) {
			return &AssistResult{Output: fallbackActions, Warning: fallbackWarning}, nil
		}
		return nil, err
	}

	actions := ai.ParseBullets(raw)
	if len(actions) == 0 {
		actions = []string{strings.TrimSpace(raw)}
	}
	return &AssistResult{Output: actions}, nil
}

func (u *emailUsecase) assistCall(ctx context.Context, prompt string) (string, error) {
	aiCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()
	return u.completer.Complete(aiCtx, prompt)
}
