package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyOptions_NumberedLines(t *testing.T) {
	input := "1. Hey there!\n2. What's up?\n3. Nice to meet you"

	replies := ParseReplyOptions(input, TonePlayful, 3)

	require.Len(t, replies, 3)
	assert.Equal(t, "Hey there!", replies[0].Text)
	assert.Equal(t, "What's up?", replies[1].Text)
	assert.Equal(t, "Nice to meet you", replies[2].Text)
	for _, r := range replies {
		assert.Equal(t, 0.8, r.Confidence)
		assert.Equal(t, "playful", r.Tone)
	}
}

func TestParseReplyOptions_PrefixVariants(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  string
	}{
		{"dot prefix", "1. Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"paren prefix", "2) Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"colon prefix", "3: Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"dash prefix", "4- Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"option prefix", "Option 2: Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"reply prefix", "Reply 3- Sounds like a plan to me!", "Sounds like a plan to me!"},
		{"double quotes", `"Sounds like a plan to me!"`, "Sounds like a plan to me!"},
		{"single quotes", "'Sounds like a plan to me!'", "Sounds like a plan to me!"},
		{"numbered and quoted", `1. "Sounds like a plan to me!"`, "Sounds like a plan to me!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replies := ParseReplyOptions(tt.line, ToneSafe, 3)
			require.Len(t, replies, 1)
			assert.Equal(t, tt.want, replies[0].Text)
			assert.Equal(t, 0.8, replies[0].Confidence)
		})
	}
}

func TestParseReplyOptions_SkipsMetaAndShortLines(t *testing.T) {
	input := "Here are some great replies:\nok\n\nThat concert sounds amazing, tell me more!"

	replies := ParseReplyOptions(input, ToneFlirty, 3)

	require.Len(t, replies, 1)
	assert.Equal(t, "That concert sounds amazing, tell me more!", replies[0].Text)
}

func TestParseReplyOptions_FallbackWhenNothingUsable(t *testing.T) {
	input := "Here are some replies:"

	replies := ParseReplyOptions(input, ToneBold, 3)

	require.Len(t, replies, 1)
	assert.Equal(t, 0.5, replies[0].Confidence)
	assert.Equal(t, input, replies[0].Text)
}

func TestParseReplyOptions_FallbackTruncatesTo200Chars(t *testing.T) {
	// A single long line starting with the meta phrase is skipped, which
	// forces the degraded fallback over the raw response.
	input := strings.Repeat("Here are ", 40)

	replies := ParseReplyOptions(input, ToneSafe, 3)

	require.Len(t, replies, 1)
	assert.Equal(t, 0.5, replies[0].Confidence)
	assert.Len(t, replies[0].Text, 200)
}

func TestParseReplyOptions_NeverPadsToCount(t *testing.T) {
	input := "1. First reply option here\n2. Second reply option here\n3. Third reply option here"

	replies := ParseReplyOptions(input, ToneSafe, 5)

	assert.Len(t, replies, 3)
}

func TestParseReplyOptions_CapsAtCount(t *testing.T) {
	input := "1. First reply option here\n2. Second reply option here\n3. Third reply option here\n4. Fourth reply option here"

	replies := ParseReplyOptions(input, ToneSafe, 2)

	require.Len(t, replies, 2)
	assert.Equal(t, "First reply option here", replies[0].Text)
	assert.Equal(t, "Second reply option here", replies[1].Text)
}

func TestExtractJSONObject_AmidProse(t *testing.T) {
	response := `Sure! Here is the result you asked for:
{"replies":["a","b"],"parsed_conversation":{"messages":[]}}
Hope that helps!`

	var out struct {
		Replies []string `json:"replies"`
	}
	err := ExtractJSONObject(response, &out)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Replies)
}

func TestExtractJSONObject_NoBraceSpan(t *testing.T) {
	var out map[string]any
	err := ExtractJSONObject("no json here at all", &out)

	assert.ErrorIs(t, err, ErrInvalidModelOutput)
}

func TestExtractJSONObject_MalformedSpan(t *testing.T) {
	var out map[string]any
	err := ExtractJSONObject("prefix {not valid json} suffix", &out)

	assert.ErrorIs(t, err, ErrInvalidModelOutput)
}

func TestParseBatchedResponse_ValidPayload(t *testing.T) {
	response := `Here you go:
{"parsed_conversation":{"messages":[{"sender":"other","text":"hey"},{"sender":"user","text":"hi"}]},"replies":["a","b"]}`

	replies, messages, err := ParseBatchedResponse(response, TonePlayful, 3)

	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "a", replies[0].Text)
	assert.Equal(t, 0.8, replies[0].Confidence)
	require.Len(t, messages, 2)
	assert.Equal(t, "hey", messages[0].Text)
}

func TestParseBatchedResponse_ZeroRepliesSynthesizesOne(t *testing.T) {
	response := `{"parsed_conversation":{"messages":[]},"replies":[]}`

	replies, _, err := ParseBatchedResponse(response, ToneSafe, 3)

	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, 0.3, replies[0].Confidence)
	assert.NotEmpty(t, replies[0].Text)
}

func TestParseBatchedResponse_CapsAtCount(t *testing.T) {
	response := `{"replies":["a","b","c","d","e"]}`

	replies, _, err := ParseBatchedResponse(response, ToneSafe, 3)

	require.NoError(t, err)
	assert.Len(t, replies, 3)
}

func TestParseVisionResponse_FullPayload(t *testing.T) {
	response := `{"platform":"whatsapp","messages":[{"sender":"other","text":"Hey!"},{"sender":"user","text":"Hi!"}],"confidence":0.95}`

	result, err := ParseVisionResponse(response)

	require.NoError(t, err)
	assert.Equal(t, "whatsapp", result.Platform)
	assert.Equal(t, 0.95, result.Confidence)
	require.Len(t, result.Messages, 2)
}

func TestParseVisionResponse_Defaults(t *testing.T) {
	response := `{"messages":[{"sender":"user","text":"Hello"}]}`

	result, err := ParseVisionResponse(response)

	require.NoError(t, err)
	assert.Equal(t, "unknown", result.Platform)
	assert.Equal(t, 0.8, result.Confidence)
}

func TestParseVisionResponse_MissingMessages(t *testing.T) {
	_, err := ParseVisionResponse(`{"platform":"discord"}`)

	assert.ErrorIs(t, err, ErrInvalidModelOutput)
}
