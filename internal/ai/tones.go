package ai

import "fmt"

// Tone is the closed set of reply styles. Each value maps to a fixed
// natural-language description used verbatim in prompts.
type Tone string

const (
	ToneSafe    Tone = "safe"
	TonePlayful Tone = "playful"
	ToneFlirty  Tone = "flirty"
	ToneBold    Tone = "bold"
)

// toneDescriptions are embedded verbatim in generated system prompts.
var toneDescriptions = map[Tone]string{
	ToneSafe:    "Friendly, respectful, and low-risk. Good for early conversations.",
	TonePlayful: "Light-hearted, fun, with subtle humor. Shows personality without heavy flirting.",
	ToneFlirty:  "Confident, charming, with clear romantic interest. Bold but not aggressive.",
	ToneBold:    "Direct, assertive, high-risk high-reward. For confident moves and escalation.",
}

// toneGuidance is the tone-specific instruction appended to the reply
// generation guidelines.
var toneGuidance = map[Tone]string{
	ToneSafe:    "be friendly and respectful. Avoid anything that could be misinterpreted. Keep it light and engaging.",
	TonePlayful: "add subtle humor and personality. Be fun but not overly forward. Show interest through lighthearted banter.",
	ToneFlirty:  "be confident and show clear romantic interest. Use charm and compliments naturally. Be bold but not aggressive.",
	ToneBold:    "be direct and assertive. Make your intentions clear. Take confident risks. This is for decisive moves.",
}

// ParseTone validates a raw tone string against the closed set.
func ParseTone(s string) (Tone, error) {
	t := Tone(s)
	if _, ok := toneDescriptions[t]; !ok {
		return "", fmt.Errorf("%w: unknown tone %q (expected safe, playful, flirty, or bold)", ErrMissingInput, s)
	}
	return t, nil
}

// Description returns the fixed natural-language description for the tone.
func (t Tone) Description() string {
	return toneDescriptions[t]
}
