package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Outcome records which path NormalizeResponse took. Only OutcomeOK can
// carry items; every other outcome yields an empty list.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeNoText        Outcome = "no_text"
	OutcomeUnparseable   Outcome = "unparseable"
	OutcomeInvalidSchema Outcome = "invalid_schema"
)

var codeFence = regexp.MustCompile("(?is)^```(?:json)?\n(.*?)\n```$")

// generateContent response, only the fields we read
type envelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       json.RawMessage `json:"text"`
				InlineData *struct {
					Data json.RawMessage `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NormalizeResponse turns a raw generateContent response body into a
// validated, deduplicated item list. Malformed model output is not an error:
// it produces an empty list and a non-OK outcome. An error is returned only
// when body itself is not JSON.
func NormalizeResponse(body []byte) ([]MenuItem, Outcome, error) {
	text, ok, err := responseText(body)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return []MenuItem{}, OutcomeNoText, nil
	}

	parsed, ok := RecoverJSON(StripCodeFence(text))
	if !ok {
		return []MenuItem{}, OutcomeUnparseable, nil
	}

	result := ValidateExtraction(parsed)
	if !result.OK {
		return []MenuItem{}, OutcomeInvalidSchema, nil
	}

	return Dedupe(result.Extraction.MenuItems), OutcomeOK, nil
}

// responseText reads candidates[0].content.parts[0].text, falling back to
// inlineData.data only when text is absent or null. ok is false when the
// chosen value is not a non-empty string.
func responseText(body []byte) (string, bool, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		// a mistyped sibling field leaves the rest of env decoded
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			if json.Valid(body) {
				return "", false, nil
			}
			return "", false, fmt.Errorf("decode gemini response: %w", err)
		}
	}

	if len(env.Candidates) == 0 || len(env.Candidates[0].Content.Parts) == 0 {
		return "", false, nil
	}

	part := env.Candidates[0].Content.Parts[0]
	if present(part.Text) {
		return rawString(part.Text)
	}
	if part.InlineData != nil && present(part.InlineData.Data) {
		return rawString(part.InlineData.Data)
	}
	return "", false, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

func rawString(raw json.RawMessage) (string, bool, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// StripCodeFence trims text and removes a surrounding ``` or ```json fence.
// Text without a complete fence is returned trimmed but otherwise unchanged.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}
	return cleaned
}

// RecoverJSON parses text strictly, then retries on the span from the first
// '{' to the last '}'. ok is false when neither attempt yields JSON.
func RecoverJSON(text string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return v, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, false
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &v); err != nil {
		return nil, false
	}
	return v, true
}

// NormalizedKey is the in-memory dedup key for a dish name.
func NormalizedKey(dishName string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(dishName))
}

// Dedupe keeps the first item per NormalizedKey, preserving order.
// Stored names keep their original casing and whitespace.
func Dedupe(items []MenuItem) []MenuItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]MenuItem, 0, len(items))

	for _, item := range items {
		key := NormalizedKey(item.DishName)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
