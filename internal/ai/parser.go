package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"rizzlet-backend/internal/models"
)

// Confidence constants are fixed provenance signals tied to the extraction
// path, not statistical estimates.
const (
	confidenceParsed        = 0.8
	confidenceRawFallback   = 0.5
	confidenceSyntheticHint = 0.3
)

// fallbackReply is synthesized when the batched path yields zero replies.
const fallbackReply = "Hey! Thanks for reaching out 😊"

var (
	numberPrefixRe = regexp.MustCompile(`^\d+[\.\)\:\-]\s*`)
	optionPrefixRe = regexp.MustCompile(`(?i)^Option\s+\d+[\:\-]\s*`)
	replyPrefixRe  = regexp.MustCompile(`(?i)^Reply\s+\d+[\:\-]\s*`)
)

// ParseReplyOptions extracts up to count reply options from a raw model
// response, one per usable line. It never returns an empty slice: when no
// line survives filtering, a single degraded option is built from the
// first 200 characters of the raw response at lower confidence.
func ParseReplyOptions(responseText string, tone Tone, count int) []models.ReplyOption {
	lines := strings.Split(responseText, "\n")

	replies := make([]models.ReplyOption, 0, count)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cleaned := numberPrefixRe.ReplaceAllString(line, "")
		cleaned = optionPrefixRe.ReplaceAllString(cleaned, "")
		cleaned = replyPrefixRe.ReplaceAllString(cleaned, "")
		cleaned = strings.TrimSpace(cleaned)

		// Skip meta lines and fragments too short to be real replies.
		if len(cleaned) < 10 || strings.HasPrefix(cleaned, "Here are") {
			continue
		}

		// Strip a single layer of wrapping quotes.
		if len(cleaned) >= 2 {
			if (strings.HasPrefix(cleaned, `"`) && strings.HasSuffix(cleaned, `"`)) ||
				(strings.HasPrefix(cleaned, "'") && strings.HasSuffix(cleaned, "'")) {
				cleaned = cleaned[1 : len(cleaned)-1]
			}
		}

		replies = append(replies, models.ReplyOption{
			Text:       cleaned,
			Tone:       string(tone),
			Confidence: confidenceParsed,
		})

		if len(replies) >= count {
			break
		}
	}

	if len(replies) == 0 {
		raw := responseText
		if len(raw) > 200 {
			raw = raw[:200]
		}
		replies = append(replies, models.ReplyOption{
			Text:       raw,
			Tone:       string(tone),
			Confidence: confidenceRawFallback,
		})
	}

	return replies
}

// ExtractJSONObject locates the first brace-delimited span in the response
// and unmarshals it into out. Models often wrap JSON in prose despite
// instructions, so the search is greedy and non-anchored: first '{' to
// last '}'. Returns ErrInvalidModelOutput when no span exists or the span
// does not parse.
func ExtractJSONObject(responseText string, out any) error {
	start := strings.Index(responseText, "{")
	end := strings.LastIndex(responseText, "}")
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("%w: no JSON object found in response", ErrInvalidModelOutput)
	}

	if err := json.Unmarshal([]byte(responseText[start:end+1]), out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}

	return nil
}

// batchedResult is the JSON shape the batched parse+reply prompt demands.
type batchedResult struct {
	ParsedConversation struct {
		Messages []models.Message `json:"messages"`
	} `json:"parsed_conversation"`
	Replies []string `json:"replies"`
}

// ParseBatchedResponse validates the batched parse+reply output. Zero
// parsed replies degrade to one synthetic acknowledgement at low
// confidence, preserving the invariant that reply generation always
// yields at least one option.
func ParseBatchedResponse(responseText string, tone Tone, count int) ([]models.ReplyOption, []models.Message, error) {
	var parsed batchedResult
	if err := ExtractJSONObject(responseText, &parsed); err != nil {
		return nil, nil, err
	}

	replies := make([]models.ReplyOption, 0, len(parsed.Replies))
	for _, text := range parsed.Replies {
		replies = append(replies, models.ReplyOption{
			Text:       text,
			Tone:       string(tone),
			Confidence: confidenceParsed,
		})
	}

	if len(replies) == 0 {
		replies = append(replies, models.ReplyOption{
			Text:       fallbackReply,
			Tone:       string(tone),
			Confidence: confidenceSyntheticHint,
		})
	}

	if len(replies) > count {
		replies = replies[:count]
	}

	return replies, parsed.ParsedConversation.Messages, nil
}

// visionResult is the JSON shape the vision OCR prompt demands.
type visionResult struct {
	Platform   string           `json:"platform"`
	Messages   []models.Message `json:"messages"`
	Confidence *float64         `json:"confidence"`
}

// VisionExtraction is a validated structured conversation pulled from a
// chat screenshot.
type VisionExtraction struct {
	Platform   string
	Messages   []models.Message
	Confidence float64
}

// ParseVisionResponse validates the vision OCR output. The messages key is
// required; platform defaults to "unknown" and confidence to 0.8 when the
// model omits them.
func ParseVisionResponse(responseText string) (*VisionExtraction, error) {
	var parsed visionResult
	if err := ExtractJSONObject(responseText, &parsed); err != nil {
		return nil, err
	}

	if parsed.Messages == nil {
		return nil, fmt.Errorf("%w: vision response missing messages", ErrInvalidModelOutput)
	}

	result := &VisionExtraction{
		Platform:   parsed.Platform,
		Messages:   parsed.Messages,
		Confidence: confidenceParsed,
	}
	if result.Platform == "" {
		result.Platform = "unknown"
	}
	if parsed.Confidence != nil {
		result.Confidence = *parsed.Confidence
	}

	return result, nil
}
