package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/backend/internal/types"
)

func TestBuildPromptWindowsHistory(t *testing.T) {
	var history []types.Message
	for i := 0; i < 8; i++ {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		history = append(history, types.Message{Role: role, Content: fmt.Sprintf("message %d", i)})
	}

	msgs := BuildPrompt(history, Emotion{Label: EmotionStress, Confidence: 0.5}, "en")

	// system instruction plus the last 5 messages, oldest of the 5 first
	require.Len(t, msgs, 6)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "message 3", msgs[1].Content)
	assert.Equal(t, "message 7", msgs[5].Content)
}

func TestBuildPromptRoleMapping(t *testing.T) {
	history := []types.Message{
		{Role: types.RoleUser, Content: "hi"},
		{Role: types.RoleAssistant, Content: "hello"},
	}

	msgs := BuildPrompt(history, Emotion{Label: EmotionNeutral}, "en")

	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[1].Role)
	assert.Equal(t, "assistant", msgs[2].Role)
}

func TestBuildPromptSystemInstruction(t *testing.T) {
	msgs := BuildPrompt(nil, Emotion{Label: EmotionAnxiety, Confidence: 0.67}, "es")

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "anxiety")
	assert.Contains(t, msgs[0].Content, "Language: es")
	assert.Contains(t, msgs[0].Content, "mental health support assistant")
}
