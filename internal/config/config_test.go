package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			UploadExpiry:   15 * time.Minute,
			DownloadExpiry: time.Hour,
		},
		Worker: WorkerConfig{JobTimeout: 90 * time.Second},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsNonPositiveDurations(t *testing.T) {
	cfg := validConfig()
	cfg.Worker.JobTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Storage.UploadExpiry = -time.Minute
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Storage.DownloadExpiry = 0
	assert.Error(t, cfg.Validate())
}
