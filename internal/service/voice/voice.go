// Package voice implements the voice upload and analysis pipeline.
//
// Analysis is a stub: it returns a fixed payload and persists it. The
// contract (inputs, output shape, persistence) is the integration point for
// a future real speech/emotion analysis service; callers must not change
// when the body is replaced with genuine analysis.
package voice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/types"
)

// ErrForbidden is returned when a recording belongs to another user.
var ErrForbidden = errors.New("forbidden")

const defaultLanguage = "en"

const (
	recordingURLKeyPrefix = "mindhaven:recording_url:"
	recordingURLTTL       = 5 * time.Minute
)

// AnalysisStore persists voice analyses.
type AnalysisStore interface {
	Create(ctx context.Context, va *types.VoiceAnalysis) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]types.VoiceAnalysis, error)
}

// BlobURLSigner hands out presigned URLs for audio objects.
type BlobURLSigner interface {
	PresignedUpload(ctx context.Context, object string) (string, error)
	PresignedDownload(ctx context.Context, object string) (string, error)
}

// URLCache caches presigned playback URLs. A Get miss is "" with a nil
// error; satisfied by the redis client.
type URLCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Service handles voice uploads, playback and analyses.
type Service struct {
	analyses AnalysisStore
	blobs    BlobURLSigner
	urls     URLCache
	logger   *logrus.Logger
}

// NewService creates a new voice Service.
func NewService(analyses AnalysisStore, blobs BlobURLSigner, urls URLCache, logger *logrus.Logger) *Service {
	return &Service{analyses: analyses, blobs: blobs, urls: urls, logger: logger}
}

// GenerateUploadURL returns a fresh object key under the user's prefix and
// a presigned PUT URL for it. The client uploads recording bytes directly.
func (s *Service) GenerateUploadURL(ctx context.Context, userID uuid.UUID) (object, uploadURL string, err error) {
	object = fmt.Sprintf("voice/%s/%s.webm", userID, uuid.New())
	uploadURL, err = s.blobs.PresignedUpload(ctx, object)
	if err != nil {
		return "", "", fmt.Errorf("presign upload: %w", err)
	}
	return object, uploadURL, nil
}

// GetRecordingURL returns a presigned playback URL for one of the user's
// recordings. Objects outside the user's prefix are rejected with
// ErrForbidden. URLs are cached briefly so repeated playback of the same
// recording does not re-sign; cache failures only cost the caching.
func (s *Service) GetRecordingURL(ctx context.Context, userID uuid.UUID, object string) (string, error) {
	if !strings.HasPrefix(object, "voice/"+userID.String()+"/") {
		return "", ErrForbidden
	}

	cacheKey := recordingURLKeyPrefix + object
	cached, err := s.urls.Get(ctx, cacheKey)
	if err != nil {
		s.logger.WithError(err).Warn("recording url cache read failed")
	} else if cached != "" {
		return cached, nil
	}

	downloadURL, err := s.blobs.PresignedDownload(ctx, object)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	if err := s.urls.Set(ctx, cacheKey, downloadURL, recordingURLTTL); err != nil {
		s.logger.WithError(err).Warn("recording url cache write failed")
	}
	return downloadURL, nil
}

// ProcessAnalysis analyzes an uploaded recording and persists the result.
func (s *Service) ProcessAnalysis(ctx context.Context, userID uuid.UUID, audioObject, language string) (*types.VoiceAnalysis, error) {
	if language == "" {
		language = defaultLanguage
	}

	va := mockAnalysis(userID, audioObject, language)
	if err := s.analyses.Create(ctx, va); err != nil {
		return nil, fmt.Errorf("store voice analysis: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"audio_object": audioObject,
	}).Info("voice analysis stored")
	return va, nil
}

// ListAnalyses returns the user's past analyses, newest first.
func (s *Service) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]types.VoiceAnalysis, error) {
	analyses, err := s.analyses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if analyses == nil {
		analyses = []types.VoiceAnalysis{}
	}
	return analyses, nil
}

// mockAnalysis is the placeholder analysis payload. A real analyzer slots
// in here without touching the service contract.
func mockAnalysis(userID uuid.UUID, audioObject, language string) *types.VoiceAnalysis {
	return &types.VoiceAnalysis{
		UserID:        userID,
		AudioObject:   audioObject,
		Transcription: "I'm feeling a bit overwhelmed today...",
		Language:      language,
		Emotions: []types.EmotionScore{
			{Emotion: "stress", Confidence: 0.75},
			{Emotion: "anxiety", Confidence: 0.60},
		},
		StressLevel: 0.7,
		SpeechPattern: types.SpeechPattern{
			Pace:    "fast",
			Tone:    "tense",
			Clarity: 0.8,
		},
	}
}
