package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model output is untrusted text: it may wrap JSON in markdown fences,
// surround it with prose, or be garbage. All parsing of it funnels through
// this file so the tolerance lives in one place.

// StripCodeFences removes markdown code-fence markers from a response
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ExtractJSONObject locates the first balanced {...} span in raw, after
// stripping code fences. Returns false when no balanced object exists.
func ExtractJSONObject(raw string) (string, bool) {
	s := StripCodeFences(raw)

	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}

// DecodeObject extracts the first JSON object from raw and unmarshals it
// into v. An error means raw held no parseable object; callers fall back to
// their deterministic defaults.
func DecodeObject(raw string, v interface{}) error {
	obj, ok := ExtractJSONObject(raw)
	if !ok {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return nil
}

// ParseBullets collects markdown bullet lines from a response, with the
// bullet markers removed
func ParseBullets(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "•") {
			continue
		}
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
