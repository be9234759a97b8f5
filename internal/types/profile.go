package types

import (
	"time"

	"github.com/google/uuid"
)

// Theme is a UI theme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences holds per-user product preferences.
type Preferences struct {
	Language      string `json:"language"`
	Theme         Theme  `json:"theme"`
	VoiceEnabled  bool   `json:"voice_enabled"`
	Notifications bool   `json:"notifications"`
}

// MoodEntry is one entry in a user's mood history. Entries are append-only
// and never mutated.
type MoodEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Mood      string    `json:"mood"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is a user's wellness profile: preferences plus mental-health
// tracking data. Exactly one profile per user.
type Profile struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Preferences Preferences `json:"preferences"`
	CurrentMood *string     `json:"current_mood,omitempty"`
	MoodHistory []MoodEntry `json:"mood_history"`
	Goals       []string    `json:"goals"`
	Triggers    []string    `json:"triggers"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
