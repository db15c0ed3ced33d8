package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	authdomain "internmail-backend/internal/auth/domain"
	authrepo "internmail-backend/internal/auth/repository"
	emaildomain "internmail-backend/internal/email/domain"
	emailrepo "internmail-backend/internal/email/repository"
	"internmail-backend/internal/email/usecase"
	internshiprepo "internmail-backend/internal/internship/repository"
	internshipusecase "internmail-backend/internal/internship/usecase"
	"internmail-backend/pkg/ai"
	"internmail-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements emaildomain.MailProvider with function fields
type mockProvider struct {
	ListFunc func(ctx context.Context, creds emaildomain.Credentials, since *time.Time, max int) ([]emaildomain.MessageRef, error)
	MetaFunc func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.MessageRef, error)
	MsgFunc  func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error)
}

func (m *mockProvider) ListMessageIDs(ctx context.Context, creds emaildomain.Credentials, since *time.Time, max int) ([]emaildomain.MessageRef, error) {
	if m.ListFunc == nil {
		return nil, nil
	}
	return m.ListFunc(ctx, creds, since, max)
}

func (m *mockProvider) GetMetadata(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.MessageRef, error) {
	if m.MetaFunc == nil {
		return nil, emaildomain.ErrNotFound
	}
	return m.MetaFunc(ctx, creds, id)
}

func (m *mockProvider) GetMessage(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
	if m.MsgFunc == nil {
		return nil, emaildomain.ErrNotFound
	}
	return m.MsgFunc(ctx, creds, id)
}

type fixture struct {
	emailRepo    emailrepo.EmailRepository
	stateRepo    emailrepo.SystemStateRepository
	userRepo     authrepo.UserRepository
	internshipUc internshipusecase.InternshipUsecase
	provider     *mockProvider
	uc           usecase.EmailUsecase
}

func newFixture(t *testing.T, provider *mockProvider, completer ai.Completer) *fixture {
	t.Helper()

	f := &fixture{
		emailRepo:    emailrepo.NewMemoryEmailRepository(),
		stateRepo:    emailrepo.NewMemorySystemStateRepository(),
		userRepo:     authrepo.NewMemoryUserRepository(),
		internshipUc: internshipusecase.NewInternshipUsecase(internshiprepo.NewMemoryInternshipRepository(), false),
		provider:     provider,
	}

	require.NoError(t, f.userRepo.Create(&authdomain.User{
		ID:          "u1",
		Email:       "user@example.com",
		AccessToken: "access-token",
	}))

	cfg := &config.Config{
		FirstRunMaxResults: 100,
		ClassifyWorkers:    2,
	}
	f.uc = usecase.NewEmailUsecase(f.emailRepo, f.stateRepo, f.userRepo, f.internshipUc, provider, completer, cfg)
	return f
}

func staticCompleter(response string) ai.Completer {
	return ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return response, nil
	})
}

func refsProvider(ids ...string) *mockProvider {
	return &mockProvider{
		ListFunc: func(ctx context.Context, creds emaildomain.Credentials, since *time.Time, max int) ([]emaildomain.MessageRef, error) {
			refs := make([]emaildomain.MessageRef, 0, len(ids))
			for _, id := range ids {
				refs = append(refs, emaildomain.MessageRef{ID: id})
			}
			return refs, nil
		},
		MetaFunc: func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.MessageRef, error) {
			return &emaildomain.MessageRef{
				ID:         id,
				Subject:    "Subject " + id,
				From:       "sender@example.com",
				Date:       "Mon, 2 Jun 2025 10:00:00 +0000",
				ReceivedAt: time.Now(),
			}, nil
		},
	}
}

func TestSyncInbox_FirstRun(t *testing.T) {
	f := newFixture(t, refsProvider("m1", "m2", "m3"), staticCompleter(""))

	result, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.NewEmailsCount)
	assert.Equal(t, 3, result.TotalEmailsCount)
	assert.Len(t, result.Emails, 3)
	assert.Empty(t, result.FailedIDs)

	state, err := f.stateRepo.Get("u1")
	require.NoError(t, err)
	assert.NotNil(t, state.LastFetchTime)
}

func TestSyncInbox_Idempotent(t *testing.T) {
	f := newFixture(t, refsProvider("m1", "m2"), staticCompleter(""))

	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.NewEmailsCount)
	assert.Equal(t, 2, result.TotalEmailsCount)
}

func TestSyncInbox_PartialFailure(t *testing.T) {
	provider := refsProvider("m1", "m2", "m3")
	baseMeta := provider.MetaFunc
	provider.MetaFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.MessageRef, error) {
		if id == "m2" {
			return nil, &emaildomain.UpstreamError{Op: "get metadata", Err: errors.New("boom")}
		}
		return baseMeta(ctx, creds, id)
	}

	f := newFixture(t, provider, staticCompleter(""))

	result, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewEmailsCount)
	assert.Equal(t, []string{"m2"}, result.FailedIDs)
}

func TestSyncInbox_NoCredentials(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter(""))

	user, err := f.userRepo.FindByID("u1")
	require.NoError(t, err)
	user.AccessToken = ""
	require.NoError(t, f.userRepo.Update(user))

	_, err = f.uc.SyncInbox(context.Background(), "u1")
	assert.ErrorIs(t, err, emaildomain.ErrAuth)
}

func TestGetEmail_LazyBodyFetch(t *testing.T) {
	provider := refsProvider("m1")
	fetched := 0
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		fetched++
		return &emaildomain.Message{ID: id, TextBody: "full body"}, nil
	}

	f := newFixture(t, provider, staticCompleter(""))
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	email, err := f.uc.GetEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "full body", email.TextBody)
	assert.Equal(t, 1, fetched)

	// Second read comes from the cache
	email, err = f.uc.GetEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "full body", email.TextBody)
	assert.Equal(t, 1, fetched)
}

func internshipScenarioCompleter() ai.Completer {
	return ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "isInternship") {
			return `{
  "isInternship": true,
  "internship": {
    "company": "Meta",
    "position": "Software Engineering Intern",
    "status": "Interviewing",
    "date": "2025-06-02",
    "notes": "Technical interview scheduled"
  }
}`, nil
		}
		return "```json\n{\"category\": \"internship\", \"sentiment\": \"positive\", \"confidence\": \"high\"}\n```", nil
	})
}

func TestClassifyEmail_InternshipEndToEnd(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "Your interview with Meta is scheduled"}, nil
	}

	f := newFixture(t, provider, internshipScenarioCompleter())
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)

	assert.Equal(t, "internship", result.Category)
	assert.Equal(t, "positive", result.Sentiment)
	assert.Equal(t, "high", result.Confidence)
	assert.True(t, result.IsInternship)
	assert.Empty(t, result.Warning)

	require.NotNil(t, result.Internship)
	assert.Equal(t, "Meta", result.Internship.Company)
	assert.Equal(t, "Software Engineering Intern", result.Internship.Position)
	assert.Equal(t, "m1", result.Internship.EmailID)

	// Snapshot merged and counters bumped
	email, err := f.emailRepo.GetByID("u1", "m1")
	require.NoError(t, err)
	assert.True(t, email.Processed)
	assert.True(t, email.IsInternship)

	state, err := f.stateRepo.Get("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.TotalEmailsProcessed)
	assert.Equal(t, int64(1), state.TotalInternshipsFound)

	records, err := f.internshipUc.List("u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Meta", records[0].Company)
}

func TestClassifyEmail_RetriableFallsBackWithWarning(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "some content"}, nil
	}

	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: true, Err: errors.New("gemini API error (429): quota exceeded")}
	})

	f := newFixture(t, provider, completer)
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)

	assert.Equal(t, "other", result.Category)
	assert.Equal(t, "neutral", result.Sentiment)
	assert.Equal(t, "medium", result.Confidence)
	assert.NotEmpty(t, result.Warning)

	// Fallback verdict is still persisted
	email, err := f.emailRepo.GetByID("u1", "m1")
	require.NoError(t, err)
	assert.True(t, email.Processed)
}

func TestClassifyEmail_NonRetriableSurfaces(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "some content"}, nil
	}

	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: false, Err: errors.New("gemini API error (400): bad request")}
	})

	f := newFixture(t, provider, completer)
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	_, err = f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	assert.Error(t, err)
}

func TestClassifyEmail_GarbageOutputUsesDefaults(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "some content"}, nil
	}

	f := newFixture(t, provider, staticCompleter("I cannot classify this email, sorry!"))
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)

	assert.Equal(t, "other", result.Category)
	assert.Equal(t, "neutral", result.Sentiment)
	assert.Equal(t, "medium", result.Confidence)
	assert.Empty(t, result.Warning)
}

func TestClassifyEmail_InvalidEnumsCoerced(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "some content"}, nil
	}

	f := newFixture(t, provider, staticCompleter(`{"category": "newsletter", "sentiment": "positive", "confidence": "very high"}`))
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)

	assert.Equal(t, "other", result.Category)
	assert.Equal(t, "positive", result.Sentiment)
	assert.Equal(t, "medium", result.Confidence)
}

func TestClassifyEmail_NotFound(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter(""))

	_, err := f.uc.ClassifyEmail(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, emaildomain.ErrNotFound)
}

func TestClassifyAll(t *testing.T) {
	provider := refsProvider("m1", "m2", "m3")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "content of " + id}, nil
	}

	f := newFixture(t, provider, staticCompleter(`{"category": "work", "sentiment": "neutral", "confidence": "medium"}`))
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	result, err := f.uc.ClassifyAll(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 0, result.InternshipsFound)
	assert.Empty(t, result.FailedIDs)

	// A second pass finds nothing unprocessed
	result, err = f.uc.ClassifyAll(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Processed)
}

func TestAnalyzeSentiment_RetriableFallback(t *testing.T) {
	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: true, Err: errors.New("gemini API error (429): quota exceeded")}
	})

	f := newFixture(t, refsProvider(), completer)

	result, err := f.uc.AnalyzeSentiment(context.Background(), "please respond asap")
	require.NoError(t, err)

	assert.Equal(t, []string{"neutral"}, result.Output)
	assert.NotEmpty(t, result.Warning)
}

func TestAnalyzeSentiment_NormalizesWord(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter("Urgent."))

	result, err := f.uc.AnalyzeSentiment(context.Background(), "need this now")
	require.NoError(t, err)

	assert.Equal(t, []string{"urgent"}, result.Output)
	assert.Empty(t, result.Warning)
}

func TestSuggestReplies_ParsesBullets(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter("- Sounds good, see you then.\n- Thanks, I will confirm by Friday.\n- Could we move it to next week?"))

	result, err := f.uc.SuggestReplies(context.Background(), "Meeting", "Can we meet Tuesday?")
	require.NoError(t, err)

	require.Len(t, result.Output, 3)
	assert.Equal(t, "Sounds good, see you then.", result.Output[0])
	assert.Empty(t, result.Warning)
}

func TestSuggestReplies_RetriableFallback(t *testing.T) {
	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &ai.ServiceError{Provider: ai.ProviderOllama, Retriable: true, Err: errors.New("connection refused")}
	})

	f := newFixture(t, refsProvider(), completer)

	result, err := f.uc.SuggestReplies(context.Background(), "Meeting", "Can we meet Tuesday?")
	require.NoError(t, err)

	assert.Len(t, result.Output, 3)
	assert.NotEmpty(t, result.Warning)
}

func TestExtractActions_RetriableFallback(t *testing.T) {
	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: true, Err: errors.New("gemini API error (503): overloaded")}
	})

	f := newFixture(t, refsProvider(), completer)

	result, err := f.uc.ExtractActions(context.Background(), "please send the report")
	require.NoError(t, err)

	assert.Len(t, result.Output, 3)
	assert.NotEmpty(t, result.Warning)
}

func TestDigestInbox_EmptyInbox(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter("should not be used"))

	summary, err := f.uc.DigestInbox(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "* No emails received in the last 24 hours.", summary)
}

func TestDigestInbox_RecentEmails(t *testing.T) {
	var gotPrompt string
	completer := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "Your inbox was quiet today. See the details below:", nil
	})

	f := newFixture(t, refsProvider("m1", "m2"), completer)

	summary, err := f.uc.DigestInbox(context.Background(), "u1")
	require.NoError(t, err)

	assert.Contains(t, summary, "See the details below")
	assert.Contains(t, gotPrompt, "From: sender@example.com")
	assert.Contains(t, gotPrompt, "Subject: Subject m1")
}

func TestSummarizeEmail_StripsTLDRPrefix(t *testing.T) {
	provider := refsProvider("m1")
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "long body text"}, nil
	}

	f := newFixture(t, provider, staticCompleter("TL;DR: the sender wants a meeting."))
	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	summary, err := f.uc.SummarizeEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "the sender wants a meeting.", summary)
}

func TestStats(t *testing.T) {
	f := newFixture(t, refsProvider("m1"), staticCompleter(`{"category": "work", "sentiment": "neutral", "confidence": "high"}`))

	_, err := f.uc.SyncInbox(context.Background(), "u1")
	require.NoError(t, err)

	provider := f.provider
	provider.MsgFunc = func(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
		return &emaildomain.Message{ID: id, TextBody: "content"}, nil
	}

	_, err = f.uc.ClassifyEmail(context.Background(), "u1", "m1")
	require.NoError(t, err)

	stats, err := f.uc.Stats("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalEmailsProcessed)
	assert.NotNil(t, stats.LastFetchTime)
}

func TestListEmails_SortedByDateDesc(t *testing.T) {
	f := newFixture(t, refsProvider(), staticCompleter(""))

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		_, err := f.emailRepo.CreateIfAbsent(&emaildomain.EmailSnapshot{
			ID:         id,
			UserID:     "u1",
			Subject:    fmt.Sprintf("Subject %s", id),
			ReceivedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	emails, err := f.uc.ListEmails("u1")
	require.NoError(t, err)
	require.Len(t, emails, 3)
	assert.Equal(t, "new", emails[0].ID)
	assert.Equal(t, "old", emails[2].ID)
}
