package config

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ":8000", cfg.Address())
	assert.Equal(t, "audio", cfg.AudioDir)
	assert.Equal(t, "web", cfg.StaticDir)
	assert.Equal(t, 50, cfg.MaxArtifacts)
	assert.Equal(t, time.Hour, cfg.MaxArtifactAge)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBackoff)
	assert.Equal(t, 1.0, cfg.DefaultRate)
	assert.Equal(t, 1.0, cfg.DefaultVolume)
	assert.Equal(t, 5000, cfg.MaxTextLength)
	assert.Equal(t, "edge", cfg.Backend)
	assert.Equal(t, "speechsuite", cfg.MongoDatabase)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := parse(map[string]string{
		"PORT":                    "9090",
		"MAX_ARTIFACTS":           "3",
		"MAX_ARTIFACT_AGE":        "0",
		"REQUEST_TIMEOUT_SECONDS": "2",
		"TTS_BACKEND":             "Mock",
		"DEFAULT_VOLUME":          "0.8",
		"API_SECRET":              "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.MaxArtifacts)
	assert.Zero(t, cfg.MaxArtifactAge)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "mock", cfg.Backend)
	assert.Equal(t, 0.8, cfg.DefaultVolume)
	assert.Equal(t, "s3cret", cfg.APISecret)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"MAX_ARTIFACTS":           "0",
		"DEFAULT_RATE":            "3",
		"DEFAULT_VOLUME":          "abc",
		"REQUEST_TIMEOUT_SECONDS": "0",
		"TTS_BACKEND":             "polly",
		"MAX_ARTIFACT_AGE":        "soon",
		"PORT":                    "http",
		"MAX_TEXT_LENGTH":         "many",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			_, err := parse(map[string]string{key: value})
			assert.Error(t, err)
		})
	}
}

func TestValidate_RejectsNaNDefaults(t *testing.T) {
	cfg, err := parse(map[string]string{})
	require.NoError(t, err)

	cfg.DefaultRate = math.NaN()
	assert.Error(t, cfg.Validate())
}
