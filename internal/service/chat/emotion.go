package chat

import (
	"math"
	"strings"
)

// Emotion labels recognized by the classifier.
const (
	EmotionAnxiety    = "anxiety"
	EmotionDepression = "depression"
	EmotionStress     = "stress"
	EmotionAnger      = "anger"
	EmotionJoy        = "joy"
	EmotionNeutral    = "neutral"
)

// Emotion is a coarse emotion label with a confidence in [0,1].
type Emotion struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// emotionLexicon maps each category to its keyword list. Category order
// matters: on equal scores the earlier category wins.
var emotionLexicon = []struct {
	label    string
	keywords []string
}{
	{EmotionAnxiety, []string{"anxious", "worried", "nervous", "panic", "fear", "scared"}},
	{EmotionDepression, []string{"sad", "depressed", "hopeless", "empty", "worthless", "down"}},
	{EmotionStress, []string{"stressed", "overwhelmed", "pressure", "burden", "exhausted"}},
	{EmotionAnger, []string{"angry", "frustrated", "mad", "irritated", "furious"}},
	{EmotionJoy, []string{"happy", "excited", "great", "wonderful", "amazing", "good"}},
	{EmotionNeutral, []string{"okay", "fine", "normal", "alright"}},
}

// Classify maps free text to an emotion label with a confidence score.
//
// Each keyword contributes at most 1 regardless of repetition (substring
// presence, not frequency). The category with the strictly greatest count
// wins; on ties the first category to reach the maximum is kept. Zero
// matches yield neutral with confidence 0. Confidence ramps linearly and
// saturates at 3 matched keywords.
//
// Knowingly crude: no negation handling, no stemming, single-language
// lexicon.
func Classify(text string) Emotion {
	lower := strings.ToLower(text)

	maxScore := 0
	label := EmotionNeutral
	for _, entry := range emotionLexicon {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			label = entry.label
		}
	}

	if maxScore == 0 {
		return Emotion{Label: EmotionNeutral, Confidence: 0}
	}
	return Emotion{
		Label:      label,
		Confidence: math.Min(float64(maxScore)/3, 1),
	}
}
