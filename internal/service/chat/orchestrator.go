package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mindhaven/backend/internal/ai/openai"
	"github.com/mindhaven/backend/internal/types"
)

// FallbackReply is appended whenever the completion service fails or
// returns nothing usable. The user always receives a reply.
const FallbackReply = "I'm here to listen and support you. Could you tell me more about how you're feeling right now?"

const (
	completionTemperature = 0.7
	completionMaxTokens   = 500
)

// fallbackEmotion tags fallback replies.
var fallbackEmotion = Emotion{Label: EmotionNeutral, Confidence: 0.5}

// GenerateReply produces an assistant reply for a conversation and appends
// it durably. Exactly one message is appended per invocation: the generated
// reply on success, the fixed fallback on any upstream failure. Upstream
// failures are logged but never returned; the only errors surfaced are a
// missing conversation and a failed append.
func (s *Service) GenerateReply(ctx context.Context, convID uuid.UUID, userMessage, language string) (string, error) {
	if _, err := s.convStore.GetByID(ctx, convID); err != nil {
		return "", fmt.Errorf("get conversation: %w", err)
	}

	if language == "" {
		language = defaultLanguage
	}
	emotion := Classify(userMessage)

	reply := s.complete(ctx, convID, emotion, language)
	tag := emotion
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
		tag = fallbackEmotion
	}

	aiMsg := &types.Message{
		ConversationID: convID,
		Role:           types.RoleAssistant,
		Content:        reply,
		Mood:           &tag.Label,
		MoodConfidence: &tag.Confidence,
		Language:       &language,
	}
	if err := s.msgStore.Create(ctx, aiMsg); err != nil {
		return "", fmt.Errorf("store assistant message: %w", err)
	}

	return reply, nil
}

// complete runs the completion call and returns the generated text, or ""
// when anything upstream fails.
func (s *Service) complete(ctx context.Context, convID uuid.UUID, emotion Emotion, language string) string {
	history, err := s.msgStore.GetRecent(ctx, convID, historyWindow)
	if err != nil {
		s.logger.WithError(err).WithField("conversation_id", convID).Error("failed to load conversation history")
		return ""
	}

	resp, err := s.completions.CreateChatCompletion(ctx, &openai.Request{
		Messages:    BuildPrompt(history, emotion, language),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		N:           1,
	})
	if err != nil {
		s.logger.WithError(err).WithField("conversation_id", convID).Error("completion request failed")
		return ""
	}

	text := resp.FirstContent()
	if strings.TrimSpace(text) == "" {
		s.logger.WithField("conversation_id", convID).Error("completion returned no usable text")
		return ""
	}
	return text
}
