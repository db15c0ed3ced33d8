package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	authrepo "internmail-backend/internal/auth/repository"
	emaildomain "internmail-backend/internal/email/domain"
	"internmail-backend/internal/email/repository"
	internshipusecase "internmail-backend/internal/internship/usecase"
	"internmail-backend/pkg/ai"
	"internmail-backend/pkg/config"

	"golang.org/x/oauth2"
)

// Every external call gets a bounded wait; a timeout counts as a retriable
// failure for that single item only.
const (
	mailFetchTimeout = 30 * time.Second
	aiCallTimeout    = 60 * time.Second
)

// emailUsecase implements EmailUsecase
type emailUsecase struct {
	emailRepo    repository.EmailRepository
	stateRepo    repository.SystemStateRepository
	userRepo     authrepo.UserRepository
	internshipUc internshipusecase.InternshipUsecase
	mailProvider emaildomain.MailProvider
	completer    ai.Completer
	config       *config.Config
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(
	emailRepo repository.EmailRepository,
	stateRepo repository.SystemStateRepository,
	userRepo authrepo.UserRepository,
	internshipUc internshipusecase.InternshipUsecase,
	mailProvider emaildomain.MailProvider,
	completer ai.Completer,
	cfg *config.Config,
) EmailUsecase {
	return &emailUsecase{
		emailRepo:    emailRepo,
		stateRepo:    stateRepo,
		userRepo:     userRepo,
		internshipUc: internshipUc,
		mailProvider: mailProvider,
		completer:    completer,
		config:       cfg,
	}
}

// credentialsFor builds mailbox credentials from the stored user tokens.
// Absent tokens mean the session provider never delivered a credential:
// surface ErrAuth before any per-item work begins.
func (u *emailUsecase) credentialsFor(userID string) (emaildomain.Credentials, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return emaildomain.Credentials{}, err
	}
	if user == nil || user.AccessToken == "" {
		return emaildomain.Credentials{}, emaildomain.ErrAuth
	}

	return emaildomain.Credentials{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		OnRefresh:    u.makeTokenUpdateCallback(userID),
	}, nil
}

func (u *emailUsecase) makeTokenUpdateCallback(userID string) emaildomain.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		user, err := u.userRepo.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}

		user.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			user.RefreshToken = token.RefreshToken
		}
		user.TokenExpiry = token.Expiry

		return u.userRepo.Update(user)
	}
}

func (u *emailUsecase) ListEmails(userID string) ([]*emaildomain.EmailSnapshot, error) {
	snapshots, err := u.emailRepo.GetAll(userID)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(snapshots)
	return snapshots, nil
}

// GetEmail returns the snapshot, fetching the full body from the provider
// on first access and caching it on the snapshot
func (u *emailUsecase) GetEmail(ctx context.Context, userID, id string) (*emaildomain.EmailSnapshot, error) {
	snapshot, err := u.emailRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}

	if snapshot.TextBody != "" || snapshot.HTMLBody != "" {
		return snapshot, nil
	}

	creds, err := u.credentialsFor(userID)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
	defer cancel()

	msg, err := u.mailProvider.GetMessage(fetchCtx, creds, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch email body: %w", err)
	}

	snapshot.TextBody = msg.TextBody
	snapshot.HTMLBody = msg.HTMLBody
	if err := u.emailRepo.UpdateBodies(userID, id, msg.TextBody, msg.HTMLBody); err != nil {
		// Body cache write failure is not fatal; the caller still gets the
		// fetched content
		log.Printf("[EMAIL] Failed to cache body for %s: %v", id, err)
	}

	return snapshot, nil
}

func (u *emailUsecase) Stats(userID string) (*emaildomain.SystemState, error) {
	return u.stateRepo.Get(userID)
}

// bodyText returns the plain-text content for classification, fetching it
// lazily when the snapshot has no cached body yet
func (u *emailUsecase) bodyText(ctx context.Context, userID string, snapshot *emaildomain.EmailSnapshot) (string, error) {
	if snapshot.TextBody != "" {
		return snapshot.TextBody, nil
	}
	if snapshot.HTMLBody != "" {
		return emaildomain.StripHTML(snapshot.HTMLBody), nil
	}

	creds, err := u.credentialsFor(userID)
	if err != nil {
		return "", err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, mailFetchTimeout)
	defer cancel()

	msg, err := u.mailProvider.GetMessage(fetchCtx, creds, snapshot.ID)
	if err != nil {
		return "", err
	}

	if err := u.emailRepo.UpdateBodies(userID, snapshot.ID, msg.TextBody, msg.HTMLBody); err != nil {
		log.Printf("[EMAIL] Failed to cache body for %s: %v", snapshot.ID, err)
	}

	return msg.PlainText(), nil
}

func sortByDateDesc(snapshots []*emaildomain.EmailSnapshot) {
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ReceivedAt.After(snapshots[j].ReceivedAt)
	})
}
