package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantLabel      string
		wantConfidence float64
	}{
		{
			name:           "two anxiety keywords",
			input:          "I feel anxious and scared about tomorrow",
			wantLabel:      EmotionAnxiety,
			wantConfidence: 2.0 / 3.0,
		},
		{
			name:           "three keywords saturate confidence",
			input:          "so anxious and worried, full of fear",
			wantLabel:      EmotionAnxiety,
			wantConfidence: 1.0,
		},
		{
			name:           "no keyword matches",
			input:          "the weather report said rain",
			wantLabel:      EmotionNeutral,
			wantConfidence: 0,
		},
		{
			name:           "empty input",
			input:          "",
			wantLabel:      EmotionNeutral,
			wantConfidence: 0,
		},
		{
			name:           "whitespace only",
			input:          "   \t\n",
			wantLabel:      EmotionNeutral,
			wantConfidence: 0,
		},
		{
			name:           "single depression keyword",
			input:          "I have been feeling sad lately",
			wantLabel:      EmotionDepression,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "joy keywords",
			input:          "today was great, really wonderful and amazing",
			wantLabel:      EmotionJoy,
			wantConfidence: 1.0,
		},
		{
			name: "tie broken by category order",
			// one anxiety keyword and one anger keyword; anxiety is
			// enumerated first so it keeps the maximum
			input:          "scared and furious at the same time",
			wantLabel:      EmotionAnxiety,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "keyword repetition counts once",
			input:          "sad sad sad sad",
			wantLabel:      EmotionDepression,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "case insensitive",
			input:          "I am SO STRESSED and OVERWHELMED",
			wantLabel:      EmotionStress,
			wantConfidence: 2.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestClassifyConfidenceCapped(t *testing.T) {
	// more than three matches still yields confidence 1.0
	got := Classify("anxious, worried, nervous, panic, fear, scared")
	assert.Equal(t, EmotionAnxiety, got.Label)
	assert.Equal(t, 1.0, got.Confidence)
}
