// Package wellness implements profile and mood-history operations.
package wellness

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/types"
)

// ProfileStore persists wellness profiles and mood entries.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	Upsert(ctx context.Context, p *types.Profile) error
	AppendMood(ctx context.Context, userID uuid.UUID, mood string, notes *string) (*types.MoodEntry, error)
}

// MentalHealthUpdate is the optional mental-health portion of a profile
// update. Current mood, goals and triggers replace the prior values
// wholesale; an update that omits the mood clears it. The mood history is
// never replaced by this path.
type MentalHealthUpdate struct {
	CurrentMood *string  `json:"current_mood,omitempty"`
	Goals       []string `json:"goals"`
	Triggers    []string `json:"triggers"`
}

// Service handles profile and mood operations.
type Service struct {
	profiles ProfileStore
	logger   *logrus.Logger
}

// NewService creates a new wellness Service.
func NewService(profiles ProfileStore, logger *logrus.Logger) *Service {
	return &Service{profiles: profiles, logger: logger}
}

// GetProfile returns a user's profile, or storage.ErrNotFound when none
// exists yet.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateProfile creates the profile on first call, otherwise replaces the
// preferences and mental-health fields wholesale. Returns the stored
// profile including its mood history.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, prefs types.Preferences, update *MentalHealthUpdate) (*types.Profile, error) {
	if prefs.Theme == "" {
		prefs.Theme = types.ThemeSystem
	}
	if prefs.Language == "" {
		prefs.Language = "en"
	}

	p := &types.Profile{
		UserID:      userID,
		Preferences: prefs,
		Goals:       []string{},
		Triggers:    []string{},
	}
	if update != nil {
		p.CurrentMood = update.CurrentMood
		if update.Goals != nil {
			p.Goals = update.Goals
		}
		if update.Triggers != nil {
			p.Triggers = update.Triggers
		}
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	stored, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	return stored, nil
}

// RecordMood appends a mood entry and sets the profile's current mood.
// Fails with storage.ErrNotFound when the user has no profile yet.
func (s *Service) RecordMood(ctx context.Context, userID uuid.UUID, mood string, notes *string) (*types.MoodEntry, error) {
	entry, err := s.profiles.AppendMood(ctx, userID, mood, notes)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"mood":    mood,
	}).Debug("mood recorded")
	return entry, nil
}
