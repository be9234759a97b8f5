package voice

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindhaven/backend/internal/types"
)

type fakeAnalyses struct {
	stored []types.VoiceAnalysis
}

func (f *fakeAnalyses) Create(_ context.Context, va *types.VoiceAnalysis) error {
	va.ID = uuid.New()
	va.CreatedAt = time.Now()
	f.stored = append(f.stored, *va)
	return nil
}

func (f *fakeAnalyses) ListByUserID(_ context.Context, userID uuid.UUID) ([]types.VoiceAnalysis, error) {
	var out []types.VoiceAnalysis
	for i := len(f.stored) - 1; i >= 0; i-- {
		if f.stored[i].UserID == userID {
			out = append(out, f.stored[i])
		}
	}
	return out, nil
}

// fakeBlobs signs URLs and counts download signatures.
type fakeBlobs struct {
	downloads int
}

func (f *fakeBlobs) PresignedUpload(_ context.Context, object string) (string, error) {
	return "https://storage.example.com/" + object + "?signature=abc", nil
}

func (f *fakeBlobs) PresignedDownload(_ context.Context, object string) (string, error) {
	f.downloads++
	return "https://storage.example.com/" + object + "?signature=dl", nil
}

// fakeCache is an in-memory URLCache.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.values[key] = value
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService() (*Service, *fakeAnalyses, *fakeBlobs) {
	store := &fakeAnalyses{}
	blobs := &fakeBlobs{}
	return NewService(store, blobs, newFakeCache(), testLogger()), store, blobs
}

func TestGenerateUploadURL(t *testing.T) {
	svc, _, _ := newTestService()
	userID := uuid.New()

	object, uploadURL, err := svc.GenerateUploadURL(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(object, "voice/"+userID.String()+"/"))
	assert.Contains(t, uploadURL, object)
}

func TestGetRecordingURL(t *testing.T) {
	svc, _, blobs := newTestService()
	userID := uuid.New()
	object := "voice/" + userID.String() + "/rec.webm"

	downloadURL, err := svc.GetRecordingURL(context.Background(), userID, object)
	require.NoError(t, err)
	assert.Contains(t, downloadURL, object)

	// the second request is served from the cache
	again, err := svc.GetRecordingURL(context.Background(), userID, object)
	require.NoError(t, err)
	assert.Equal(t, downloadURL, again)
	assert.Equal(t, 1, blobs.downloads)
}

func TestGetRecordingURLForeignObject(t *testing.T) {
	svc, _, blobs := newTestService()
	object := "voice/" + uuid.New().String() + "/rec.webm"

	_, err := svc.GetRecordingURL(context.Background(), uuid.New(), object)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, blobs.downloads)
}

func TestProcessAnalysis(t *testing.T) {
	svc, store, _ := newTestService()
	userID := uuid.New()

	va, err := svc.ProcessAnalysis(context.Background(), userID, "voice/obj.webm", "")
	require.NoError(t, err)

	// fixed placeholder payload, persisted once
	assert.Equal(t, "I'm feeling a bit overwhelmed today...", va.Transcription)
	assert.Equal(t, "en", va.Language)
	require.Len(t, va.Emotions, 2)
	assert.Equal(t, types.EmotionScore{Emotion: "stress", Confidence: 0.75}, va.Emotions[0])
	assert.Equal(t, types.EmotionScore{Emotion: "anxiety", Confidence: 0.60}, va.Emotions[1])
	assert.Equal(t, 0.7, va.StressLevel)
	assert.Equal(t, types.SpeechPattern{Pace: "fast", Tone: "tense", Clarity: 0.8}, va.SpeechPattern)
	require.Len(t, store.stored, 1)
	assert.Equal(t, userID, store.stored[0].UserID)
}

func TestProcessAnalysisKeepsRequestedLanguage(t *testing.T) {
	svc, _, _ := newTestService()

	va, err := svc.ProcessAnalysis(context.Background(), uuid.New(), "voice/obj.webm", "de")
	require.NoError(t, err)
	assert.Equal(t, "de", va.Language)
}

func TestListAnalysesEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	analyses, err := svc.ListAnalyses(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, analyses)
	assert.Empty(t, analyses)
}
