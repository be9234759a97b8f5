package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/backend/internal/types"
)

func seedConversation(t *testing.T, convs *fakeConvStore, msgs *fakeMsgStore, userMessage string) *types.Conversation {
	t.Helper()
	conv, err := convs.Create(context.Background(), uuid.New(), "session_1")
	require.NoError(t, err)
	require.NoError(t, msgs.Create(context.Background(), &types.Message{
		ConversationID: conv.ID,
		Role:           types.RoleUser,
		Content:        userMessage,
	}))
	return conv
}

func TestGenerateReply(t *testing.T) {
	completions := &fakeCompletion{text: "That sounds really hard. What is weighing on you most?"}
	svc, convs, msgs, _ := newTestService(completions)
	conv := seedConversation(t, convs, msgs, "I feel anxious and scared about tomorrow")

	reply, err := svc.GenerateReply(context.Background(), conv.ID, "I feel anxious and scared about tomorrow", "en")
	require.NoError(t, err)
	assert.Equal(t, completions.text, reply)

	// exactly one assistant message appended, tagged with the classified emotion
	stored := msgs.get(conv.ID)
	require.Len(t, stored, 2)
	ai := stored[1]
	assert.Equal(t, types.RoleAssistant, ai.Role)
	assert.Equal(t, completions.text, ai.Content)
	require.NotNil(t, ai.Mood)
	assert.Equal(t, EmotionAnxiety, *ai.Mood)
	require.NotNil(t, ai.MoodConfidence)
	assert.InDelta(t, 2.0/3.0, *ai.MoodConfidence, 1e-9)
}

func TestGenerateReplyCompletionRequest(t *testing.T) {
	completions := &fakeCompletion{text: "ok"}
	svc, convs, msgs, _ := newTestService(completions)
	conv := seedConversation(t, convs, msgs, "first")
	for i := 0; i < 6; i++ {
		require.NoError(t, msgs.Create(context.Background(), &types.Message{
			ConversationID: conv.ID,
			Role:           types.RoleUser,
			Content:        "more",
		}))
	}

	_, err := svc.GenerateReply(context.Background(), conv.ID, "more", "en")
	require.NoError(t, err)

	require.NotNil(t, completions.lastReq)
	assert.InDelta(t, 0.7, completions.lastReq.Temperature, 1e-9)
	assert.Equal(t, 500, completions.lastReq.MaxTokens)
	// system instruction plus the five-message window
	assert.Len(t, completions.lastReq.Messages, 6)
	assert.Equal(t, "system", completions.lastReq.Messages[0].Role)
}

func TestGenerateReplyUpstreamFailure(t *testing.T) {
	completions := &fakeCompletion{err: errors.New("connection refused")}
	svc, convs, msgs, _ := newTestService(completions)
	conv := seedConversation(t, convs, msgs, "I feel sad")

	reply, err := svc.GenerateReply(context.Background(), conv.ID, "I feel sad", "en")

	// the failure is swallowed; the caller gets the fallback
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)

	stored := msgs.get(conv.ID)
	require.Len(t, stored, 2)
	ai := stored[1]
	assert.Equal(t, FallbackReply, ai.Content)
	require.NotNil(t, ai.Mood)
	assert.Equal(t, EmotionNeutral, *ai.Mood)
	require.NotNil(t, ai.MoodConfidence)
	assert.Equal(t, 0.5, *ai.MoodConfidence)
}

func TestGenerateReplyEmptyCompletion(t *testing.T) {
	completions := &fakeCompletion{text: "   "}
	svc, convs, msgs, _ := newTestService(completions)
	conv := seedConversation(t, convs, msgs, "hello")

	reply, err := svc.GenerateReply(context.Background(), conv.ID, "hello", "en")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
	assert.Len(t, msgs.get(conv.ID), 2)
}

func TestGenerateReplyMissingConversation(t *testing.T) {
	completions := &fakeCompletion{text: "ok"}
	svc, _, msgs, _ := newTestService(completions)

	_, err := svc.GenerateReply(context.Background(), uuid.New(), "hello", "en")
	require.Error(t, err)

	// nothing appended, no completion attempted
	assert.Empty(t, msgs.msgs)
	assert.Zero(t, completions.calls)
}
