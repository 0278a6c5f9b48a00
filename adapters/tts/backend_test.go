package tts

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewBackend(t *testing.T) {
	logger := zaptest.NewLogger(t)
	t.Setenv("ELEVEN_LABS_API_KEY", "test-api-key")

	for _, name := range []string{"edge", "elevenlabs", "mock"} {
		backend, err := NewBackend(name, "", logger)
		if err != nil {
			t.Fatalf("Failed to create %s backend: %v", name, err)
		}
		if backend.Name() != name {
			t.Errorf("Expected backend '%s', got '%s'", name, backend.Name())
		}
	}

	if _, err := NewBackend("polly", "", logger); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
