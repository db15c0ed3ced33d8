package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"time"

	emaildomain "internmail-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Service wraps the Gmail read API behind the MailProvider contract.
// All calls are reads; nothing here mutates the remote mailbox.
type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback emaildomain.TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[GMAIL] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getGmailService creates a Gmail client with the user's tokens
func (s *Service) getGmailService(ctx context.Context, creds emaildomain.Credentials) (*gmail.Service, error) {
	if creds.AccessToken == "" {
		return nil, emaildomain.ErrAuth
	}

	token := &oauth2.Token{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if creds.RefreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: creds.OnRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %v", err)
	}

	return srv, nil
}

// mapError converts Gmail API failures to the domain taxonomy
func mapError(op string, err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return emaildomain.ErrAuth
		}
	}
	return &emaildomain.UpstreamError{Op: op, Err: err}
}

// ListMessageIDs lists INBOX message ids newer than since, capped at max.
// A nil since is a first run: the most recent max messages, no date filter.
func (s *Service) ListMessageIDs(ctx context.Context, creds emaildomain.Credentials, since *time.Time, max int) ([]emaildomain.MessageRef, error) {
	srv, err := s.getGmailService(ctx, creds)
	if err != nil {
		return nil, err
	}

	if max <= 0 {
		max = 100
	}
	if max > 500 {
		max = 500 // Gmail API maximum
	}

	call := srv.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(int64(max)).
		Context(ctx)
	if since != nil {
		call = call.Q(fmt.Sprintf("after:%d", since.Unix()))
	}

	resp, err := call.Do()
	if err != nil {
		return nil, mapError("list messages", err)
	}

	refs := make([]emaildomain.MessageRef, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		refs = append(refs, emaildomain.MessageRef{ID: msg.Id})
	}

	return refs, nil
}

// GetMetadata fetches headers only; the body is left for a later lazy fetch
func (s *Service) GetMetadata(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.MessageRef, error) {
	srv, err := s.getGmailService(ctx, creds)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders("Subject", "From", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapError("get metadata", err)
	}

	ref := &emaildomain.MessageRef{
		ID:         msg.Id,
		Subject:    getHeader(msg.Payload, "Subject"),
		From:       getHeader(msg.Payload, "From"),
		Date:       getHeader(msg.Payload, "Date"),
		ReceivedAt: time.Unix(msg.InternalDate/1000, 0),
	}

	return ref, nil
}

// GetMessage fetches the full message and decodes its MIME parts
func (s *Service) GetMessage(ctx context.Context, creds emaildomain.Credentials, id string) (*emaildomain.Message, error) {
	srv, err := s.getGmailService(ctx, creds)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, mapError("get message", err)
	}

	textBody, htmlBody := ExtractBodies(msg.Payload)

	return &emaildomain.Message{
		ID:         msg.Id,
		Subject:    getHeader(msg.Payload, "Subject"),
		From:       getHeader(msg.Payload, "From"),
		Date:       getHeader(msg.Payload, "Date"),
		ReceivedAt: time.Unix(msg.InternalDate/1000, 0),
		TextBody:   textBody,
		HTMLBody:   htmlBody,
	}, nil
}

// ValidateToken validates the access token by making a simple API call
func (s *Service) ValidateToken(ctx context.Context, creds emaildomain.Credentials) error {
	srv, err := s.getGmailService(ctx, creds)
	if err != nil {
		return err
	}

	if _, err := srv.Users.GetProfile("me").Context(ctx).Do(); err != nil {
		return emaildomain.ErrAuth
	}

	return nil
}

// Helper functions

func getHeader(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, header := range payload.Headers {
		if header.Name == name {
			return header.Value
		}
	}
	return ""
}

// ExtractBodies walks the MIME tree and returns the decoded text/plain and
// text/html bodies. Messages nest parts inside parts, so the search recurses;
// a message with no parts at all decodes its top-level body directly. Missing
// parts are never an error, just empty strings.
func ExtractBodies(payload *gmail.MessagePart) (textBody, htmlBody string) {
	if payload == nil {
		return "", ""
	}

	var walk func(parts []*gmail.MessagePart)
	walk = func(parts []*gmail.MessagePart) {
		for _, part := range parts {
			switch part.MimeType {
			case "text/plain":
				if textBody == "" {
					textBody = decodeBody(part)
				}
			case "text/html":
				if htmlBody == "" {
					htmlBody = decodeBody(part)
				}
			}
			if len(part.Parts) > 0 {
				walk(part.Parts)
			}
		}
	}
	walk(payload.Parts)

	// No parts: the payload itself carries the body
	if textBody == "" && htmlBody == "" {
		data := decodeBody(payload)
		if payload.MimeType == "text/html" {
			htmlBody = data
		} else {
			textBody = data
		}
	}

	return textBody, htmlBody
}

func decodeBody(part *gmail.MessagePart) string {
	if part == nil || part.Body == nil || part.Body.Data == "" {
		return ""
	}
	// Gmail serves base64url, sometimes without padding
	data, err := base64.URLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return string(data)
}
