package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindhaven/backend/internal/types"
)

// ProfileRepository handles database operations for wellness profiles and
// their mood history.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetByUserID returns a user's profile including its full mood history.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	p := &types.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, language, theme, voice_enabled, notifications,
		        current_mood, goals, triggers, created_at, updated_at
		 FROM profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &p.Preferences.Language, &p.Preferences.Theme,
		&p.Preferences.VoiceEnabled, &p.Preferences.Notifications,
		&p.CurrentMood, &p.Goals, &p.Triggers, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	history, err := r.listMoodEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.MoodHistory = history
	if p.Goals == nil {
		p.Goals = []string{}
	}
	if p.Triggers == nil {
		p.Triggers = []string{}
	}
	return p, nil
}

// Upsert creates the profile on first call, otherwise replaces preferences,
// current_mood, goals and triggers wholesale; an update that omits the mood
// clears it. Mood history is never touched by this path.
func (r *ProfileRepository) Upsert(ctx context.Context, p *types.Profile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, language, theme, voice_enabled, notifications, current_mood, goals, triggers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
		     language      = EXCLUDED.language,
		     theme         = EXCLUDED.theme,
		     voice_enabled = EXCLUDED.voice_enabled,
		     notifications = EXCLUDED.notifications,
		     current_mood  = EXCLUDED.current_mood,
		     goals         = EXCLUDED.goals,
		     triggers      = EXCLUDED.triggers,
		     updated_at    = now()
		 RETURNING id, created_at, updated_at`,
		p.UserID, p.Preferences.Language, p.Preferences.Theme,
		p.Preferences.VoiceEnabled, p.Preferences.Notifications,
		p.CurrentMood, p.Goals, p.Triggers,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// AppendMood appends a mood entry and sets the profile's current mood.
// Returns ErrNotFound when the user has no profile yet.
func (r *ProfileRepository) AppendMood(ctx context.Context, userID uuid.UUID, mood string, notes *string) (*types.MoodEntry, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE profiles SET current_mood = $2, updated_at = now() WHERE user_id = $1`,
		userID, mood,
	)
	if err != nil {
		return nil, fmt.Errorf("set current mood: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	entry := &types.MoodEntry{UserID: userID, Mood: mood, Notes: notes}
	err = tx.QueryRow(ctx,
		`INSERT INTO mood_entries (user_id, mood, notes)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		userID, mood, notes,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append mood entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return entry, nil
}

func (r *ProfileRepository) listMoodEntries(ctx context.Context, userID uuid.UUID) ([]types.MoodEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, mood, notes, created_at
		 FROM mood_entries
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	entries := []types.MoodEntry{}
	for rows.Next() {
		var e types.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read mood entries: %w", err)
	}
	return entries, nil
}
