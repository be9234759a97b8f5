package types

import (
	"time"

	"github.com/google/uuid"
)

// EmotionScore is one detected emotion with a confidence in [0,1].
type EmotionScore struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// SpeechPattern describes coarse speech characteristics of a recording.
type SpeechPattern struct {
	Pace    string  `json:"pace"`
	Tone    string  `json:"tone"`
	Clarity float64 `json:"clarity"`
}

// VoiceAnalysis is the stored result of analyzing one uploaded recording.
// Created once per analysis request, immutable.
type VoiceAnalysis struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"user_id"`
	AudioObject   string         `json:"audio_object"`
	Transcription string         `json:"transcription"`
	Language      string         `json:"language"`
	Emotions      []EmotionScore `json:"emotions"`
	StressLevel   float64        `json:"stress_level"`
	SpeechPattern SpeechPattern  `json:"speech_pattern"`
	CreatedAt     time.Time      `json:"created_at"`
}
