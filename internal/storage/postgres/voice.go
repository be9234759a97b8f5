package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindhaven/backend/internal/types"
)

// VoiceRepository handles database operations for voice analyses.
type VoiceRepository struct {
	pool *pgxpool.Pool
}

// NewVoiceRepository creates a new VoiceRepository.
func NewVoiceRepository(pool *pgxpool.Pool) *VoiceRepository {
	return &VoiceRepository{pool: pool}
}

// Create persists a voice analysis. The input is updated with generated values.
func (r *VoiceRepository) Create(ctx context.Context, va *types.VoiceAnalysis) error {
	emotions, err := json.Marshal(va.Emotions)
	if err != nil {
		return fmt.Errorf("marshal emotions: %w", err)
	}
	pattern, err := json.Marshal(va.SpeechPattern)
	if err != nil {
		return fmt.Errorf("marshal speech pattern: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO voice_analyses (user_id, audio_object, transcription, language, emotions, stress_level, speech_pattern)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		va.UserID, va.AudioObject, va.Transcription, va.Language, emotions, va.StressLevel, pattern,
	).Scan(&va.ID, &va.CreatedAt)
	if err != nil {
		return fmt.Errorf("create voice analysis: %w", err)
	}
	return nil
}

// ListByUserID returns a user's analyses, newest first.
func (r *VoiceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]types.VoiceAnalysis, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, audio_object, transcription, language, emotions, stress_level, speech_pattern, created_at
		 FROM voice_analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list voice analyses: %w", err)
	}
	defer rows.Close()

	var analyses []types.VoiceAnalysis
	for rows.Next() {
		var va types.VoiceAnalysis
		var emotions, pattern []byte
		if err := rows.Scan(&va.ID, &va.UserID, &va.AudioObject, &va.Transcription,
			&va.Language, &emotions, &va.StressLevel, &pattern, &va.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan voice analysis: %w", err)
		}
		if err := json.Unmarshal(emotions, &va.Emotions); err != nil {
			return nil, fmt.Errorf("unmarshal emotions: %w", err)
		}
		if err := json.Unmarshal(pattern, &va.SpeechPattern); err != nil {
			return nil, fmt.Errorf("unmarshal speech pattern: %w", err)
		}
		analyses = append(analyses, va)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read voice analyses: %w", err)
	}
	return analyses, nil
}
