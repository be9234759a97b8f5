package chat

import (
	"fmt"

	"github.com/mindhaven/backend/internal/ai/openai"
	"github.com/mindhaven/backend/internal/types"
)

// historyWindow is the number of stored messages sent as completion context.
const historyWindow = 5

// systemPromptFormat embeds the classified emotion, its confidence and the
// requested language into the assistant's role instruction.
const systemPromptFormat = `You are a compassionate AI mental health support assistant. Your role is to:
1. Provide empathetic, non-judgmental support
2. Help users process their emotions
3. Suggest healthy coping strategies
4. Recognize crisis situations and recommend professional help
5. Maintain a warm, understanding tone

Current user emotional state: %s (confidence: %.2f)
Language: %s

Guidelines:
- Always validate the user's feelings
- Ask open-ended questions to encourage reflection
- Provide practical, actionable advice
- If detecting severe distress, gently suggest professional resources
- Keep responses concise but meaningful
- Adapt language complexity to user's communication style`

// BuildPrompt constructs the completion message sequence: the system
// instruction followed by the last messages of the conversation, oldest
// first, mapped to user/assistant roles. Pure function.
func BuildPrompt(history []types.Message, emotion Emotion, language string) []openai.Message {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	msgs := make([]openai.Message, 0, len(history)+1)
	msgs = append(msgs, openai.Message{
		Role:    "system",
		Content: fmt.Sprintf(systemPromptFormat, emotion.Label, emotion.Confidence, language),
	})

	for _, m := range history {
		role := "assistant"
		if m.Role == types.RoleUser {
			role = "user"
		}
		msgs = append(msgs, openai.Message{Role: role, Content: m.Content})
	}
	return msgs
}
