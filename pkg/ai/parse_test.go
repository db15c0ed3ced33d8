package ai_test

import (
	"testing"

	"internmail-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantOK  bool
	}{
		{
			name:   "bare object",
			raw:    `{"category": "work"}`,
			want:   `{"category": "work"}`,
			wantOK: true,
		},
		{
			name:   "fenced object",
			raw:    "```json\n{\"category\": \"work\"}\n```",
			want:   `{"category": "work"}`,
			wantOK: true,
		},
		{
			name:   "object surrounded by prose",
			raw:    "Sure! Here is the result:\n{\"category\": \"spam\"}\nHope that helps.",
			want:   `{"category": "spam"}`,
			wantOK: true,
		},
		{
			name:   "nested object",
			raw:    `{"isInternship": true, "internship": {"company": "Acme"}}`,
			want:   `{"isInternship": true, "internship": {"company": "Acme"}}`,
			wantOK: true,
		},
		{
			name:   "braces inside string values",
			raw:    `{"notes": "use {curly} braces"}`,
			want:   `{"notes": "use {curly} braces"}`,
			wantOK: true,
		},
		{
			name:   "escaped quote inside string",
			raw:    `{"notes": "she said \"hi\" {"}`,
			want:   `{"notes": "she said \"hi\" {"}`,
			wantOK: true,
		},
		{
			name:   "no object at all",
			raw:    "I could not classify this email.",
			wantOK: false,
		},
		{
			name:   "unbalanced braces",
			raw:    `{"category": "work"`,
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ai.ExtractJSONObject(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeObject_FencedEqualsRaw(t *testing.T) {
	type verdict struct {
		Category   string `json:"category"`
		Sentiment  string `json:"sentiment"`
		Confidence string `json:"confidence"`
	}

	raw := `{"category": "internship", "sentiment": "positive", "confidence": "high"}`
	fenced := "```json\n" + raw + "\n```"

	var fromRaw, fromFenced verdict
	require.NoError(t, ai.DecodeObject(raw, &fromRaw))
	require.NoError(t, ai.DecodeObject(fenced, &fromFenced))

	assert.Equal(t, fromRaw, fromFenced)
	assert.Equal(t, "internship", fromRaw.Category)
	assert.Equal(t, "positive", fromRaw.Sentiment)
	assert.Equal(t, "high", fromRaw.Confidence)
}

func TestDecodeObject_Garbage(t *testing.T) {
	var out map[string]interface{}
	err := ai.DecodeObject("the model refused to answer", &out)
	assert.Error(t, err)
}

func TestParseBullets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "dash bullets",
			raw:  "- Thanks, will do.\n- On it.\n- Received, reviewing now.",
			want: []string{"Thanks, will do.", "On it.", "Received, reviewing now."},
		},
		{
			name: "mixed markers with prose",
			raw:  "Here are some replies:\n* First option\n• Second option\n\nLet me know!",
			want: []string{"First option", "Second option"},
		},
		{
			name: "no bullets",
			raw:  "Just a paragraph of text.",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ai.ParseBullets(tt.raw))
		})
	}
}
