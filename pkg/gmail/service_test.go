package gmail_test

import (
	"encoding/base64"
	"testing"

	gmailpkg "internmail-backend/pkg/gmail"

	"github.com/stretchr/testify/assert"
	gmail "google.golang.org/api/gmail/v1"
)

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestExtractBodies_FlatMultipart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("plain body")}},
			{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<p>html body</p>")}},
		},
	}

	text, html := gmailpkg.ExtractBodies(payload)
	assert.Equal(t, "plain body", text)
	assert.Equal(t, "<p>html body</p>", html)
}

func TestExtractBodies_NestedMultipart(t *testing.T) {
	// multipart/mixed wrapping multipart/alternative, the common shape for
	// messages with attachments
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("nested plain")}},
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<b>nested html</b>")}},
				},
			},
			{MimeType: "application/pdf", Body: &gmail.MessagePartBody{AttachmentId: "att-1"}},
		},
	}

	text, html := gmailpkg.ExtractBodies(payload)
	assert.Equal(t, "nested plain", text)
	assert.Equal(t, "<b>nested html</b>", html)
}

func TestExtractBodies_TopLevelBodyOnly(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: encode("single part body")},
	}

	text, html := gmailpkg.ExtractBodies(payload)
	assert.Equal(t, "single part body", text)
	assert.Empty(t, html)
}

func TestExtractBodies_TopLevelHTML(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/html",
		Body:     &gmail.MessagePartBody{Data: encode("<p>only html</p>")},
	}

	text, html := gmailpkg.ExtractBodies(payload)
	assert.Empty(t, text)
	assert.Equal(t, "<p>only html</p>", html)
}

func TestExtractBodies_FirstMatchWins(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("first")}},
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("second")}},
		},
	}

	text, _ := gmailpkg.ExtractBodies(payload)
	assert.Equal(t, "first", text)
}

func TestExtractBodies_UnpaddedBase64(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("unpadded"))},
	}

	text, _ := gmailpkg.ExtractBodies(payload)
	assert.Equal(t, "unpadded", text)
}

func TestExtractBodies_Nil(t *testing.T) {
	text, html := gmailpkg.ExtractBodies(nil)
	assert.Empty(t, text)
	assert.Empty(t, html)
}
