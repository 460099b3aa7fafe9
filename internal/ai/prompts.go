package ai

import (
	"fmt"
	"strings"

	"rizzlet-backend/internal/models"
)

// Prompt builders are pure: no I/O, no errors on valid typed input.

// ReplyGenerationPrompt builds the system prompt for reply generation,
// embedding the tone's fixed description and guidance verbatim.
func ReplyGenerationPrompt(tone Tone, conversation *models.Conversation) string {
	platformContext := ""
	if conversation.Platform != "" {
		platformContext = fmt.Sprintf("This conversation is from %s.", conversation.Platform)
	}

	return fmt.Sprintf(`You are Rizzlet, an AI texting copilot specialized in dating and social conversations.

Your task is to analyze the conversation and generate %[1]s replies.

Tone: %[1]s - %[2]s

%[3]s

Guidelines:
- Generate short, natural replies that someone would actually send
- Match the conversation's vibe and energy level
- Keep replies under 2-3 sentences maximum
- Avoid generic responses - be specific and contextual
- Sound human, not robotic
- Consider the flow and timing of messages
- For %[1]s tone, %[4]s

Analyze the conversation and provide 3 distinct reply options, each slightly different in approach but all matching the %[1]s tone.`,
		tone, toneDescriptions[tone], platformContext, toneGuidance[tone])
}

// FormatConversation serializes a conversation as the user message for
// reply generation, labeling sides "You"/"Them" with optional timestamps.
func FormatConversation(conversation *models.Conversation) string {
	var b strings.Builder
	b.WriteString("Conversation:\n")
	for _, msg := range conversation.Messages {
		label := "Them"
		if msg.Sender == models.SenderUser {
			label = "You"
		}
		if msg.Timestamp != "" {
			fmt.Fprintf(&b, "%s (%s): %s\n", label, msg.Timestamp, msg.Text)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", label, msg.Text)
		}
	}
	b.WriteString("\nNow generate 3 reply options:")
	return b.String()
}

// ContextAnalysisPrompt builds the system prompt for conversation analysis.
func ContextAnalysisPrompt() string {
	return `You are an expert at analyzing dating and social conversations.

Analyze this conversation and provide insights:

1. Engagement Level (high/medium/low)
2. Detected Tone and Mood
3. Interest Signals (positive indicators from them)
4. Recommended Response Tone (safe/playful/flirty/bold)
5. Key Notes or Warnings

Be concise and actionable. Focus on helping the user respond effectively.`
}

// FormatConversationForAnalysis serializes a conversation as the user
// message for context analysis.
func FormatConversationForAnalysis(conversation *models.Conversation) string {
	var b strings.Builder
	b.WriteString("Conversation:")
	if conversation.Platform != "" {
		fmt.Fprintf(&b, "\nPlatform: %s", conversation.Platform)
	}
	b.WriteString("\n")
	for _, msg := range conversation.Messages {
		label := "Other Person"
		if msg.Sender == models.SenderUser {
			label = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Text)
	}
	b.WriteString("\nProvide your analysis in JSON format with keys: engagement_level, tone_detected, interest_signals (array), recommended_tone, notes")
	return b.String()
}

// Perspective instruction variants for the batched parse+reply prompt.
// Swapping these silently would produce replies that contradict the
// conversational direction, so the prompt builder owns the decision.
const (
	followUpInstruction = "The LAST MESSAGE was sent by the USER. Generate follow-up messages to CONTINUE the conversation from the user's side."
	responseInstruction = "The LAST MESSAGE was sent by the OTHER PERSON. Generate replies for the user to RESPOND to them."
)

// BatchedParseAndReplyPrompt builds the single-call prompt that parses a
// raw chat export and generates replies, halving provider cost versus
// separate parse and generate calls.
func BatchedParseAndReplyPrompt(conversationText string, tone Tone, lastMessageWasUser bool, userIdentifier string) string {
	perspective := responseInstruction
	replyFraming := "These should be RESPONSES to what the other person just said."
	if lastMessageWasUser {
		perspective = followUpInstruction
		replyFraming = "These should be FOLLOW-UP messages that continue what the user just said."
	}

	identification := "Identify who is the user based on context."
	if userIdentifier != "" {
		identification = fmt.Sprintf("The user is: %q", userIdentifier)
	}

	return fmt.Sprintf(`You are a dating coach AI assistant. Perform TWO tasks:

TASK 1: PARSE CONVERSATION
Parse this chat export and identify messages. Skip <Media omitted> and system messages.
%s

CRITICAL: %s

TASK 2: GENERATE REPLIES
Based on the parsed conversation, generate 3 distinct reply suggestions in %s tone.
%s

Tone descriptions:
- safe: Friendly, respectful, low-risk
- playful: Light-hearted, fun, subtle humor
- flirty: Confident, charming, romantic interest
- bold: Direct, assertive, high-risk high-reward

RESPOND WITH THIS EXACT JSON FORMAT:
{
  "parsed_conversation": {
    "messages": [
      {"sender": "user", "text": "..."},
      {"sender": "other", "text": "..."}
    ]
  },
  "replies": [
    "First reply suggestion",
    "Second reply suggestion",
    "Third reply suggestion"
  ]
}

RAW CONVERSATION:
%s

Return ONLY the JSON, no explanatory text.`,
		identification, perspective, tone, replyFraming, conversationText)
}

// VisionOCRPrompt builds the prompt for extracting a structured
// conversation from a chat screenshot via a vision-capable model.
func VisionOCRPrompt() string {
	return `You are analyzing a chat screenshot. Your task is to extract the conversation and identify who sent each message based on visual cues.

CRITICAL RULES FOR SPEAKER IDENTIFICATION:
1. **Left-aligned bubbles** = "other" person
2. **Right-aligned bubbles** = "user" (the phone owner)
3. **Different colors often indicate different senders:**
   - WhatsApp: Grey/white bubbles (left) = other, Green bubbles (right) = user
   - iMessage: Grey bubbles (left) = other, Blue bubbles (right) = user
   - Discord: Messages with different user avatars/names
4. **Handle consecutive messages:**
   - Multiple messages in a row from the same side = same sender
   - Example: 3 right-aligned messages = 3 "user" messages
5. **Ignore:**
   - <Media omitted>
   - System messages (e.g., "Messages are end-to-end encrypted")
   - Timestamps (but use them to understand message order)
   - Empty messages

PLATFORM DETECTION:
Try to identify the chat platform: whatsapp, imessage, discord, telegram, or other

OUTPUT FORMAT (JSON ONLY):
{
  "platform": "whatsapp",
  "messages": [
    {"sender": "other", "text": "Hey! How are you?"},
    {"sender": "user", "text": "Hey! I'm good!"}
  ],
  "confidence": 0.95
}

IMPORTANT:
- Return ONLY valid JSON, no explanatory text
- Preserve message order (top to bottom)
- Group consecutive messages correctly
- Use "sender": "user" for right-aligned (phone owner)
- Use "sender": "other" for left-aligned (other person)`
}

// ConversationStarterPrompt builds the prompt for generating openers.
func ConversationStarterPrompt(platform, profileInfo string, tone Tone) string {
	if platform == "" {
		platform = "a dating app"
	}
	profileSection := ""
	if profileInfo != "" {
		profileSection = fmt.Sprintf("\n\nProfile Information:\n%s", profileInfo)
	}

	return fmt.Sprintf(`You are Rizzlet, an AI texting copilot.

Generate 5 conversation starter messages for %s.%s

Requirements:
- Tone: %s
- Short and punchy (1-2 sentences max)
- Specific and personalized (avoid generic "hey" or "hi")
- High chance of getting a response
- Natural and authentic

Provide 5 distinct openers, each using a different approach (question, observation, playful tease, shared interest, creative).`,
		platform, profileSection, tone)
}
