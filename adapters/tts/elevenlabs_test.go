package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

func TestNewElevenLabsTTS(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Test without API key
	os.Unsetenv("ELEVEN_LABS_API_KEY")
	config := NewElevenLabsConfigFromEnv()
	_, err := NewElevenLabsTTS(config, logger)
	if err == nil {
		t.Error("Expected error when API key is not set")
	}

	// Test with API key
	t.Setenv("ELEVEN_LABS_API_KEY", "test-api-key")

	config = NewElevenLabsConfigFromEnv()
	tts, err := NewElevenLabsTTS(config, logger)
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	if tts.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", tts.apiKey)
	}

	if tts.voiceID != defaultVoiceID {
		t.Errorf("Expected default voice ID '%s', got '%s'", defaultVoiceID, tts.voiceID)
	}

	if tts.outputFormat != defaultOutputFormat {
		t.Errorf("Expected default output format '%s', got '%s'", defaultOutputFormat, tts.outputFormat)
	}
}

func TestValidateElevenLabsConfig_Ranges(t *testing.T) {
	if err := ValidateElevenLabsConfig(ElevenLabsConfig{APIKey: "k", Stability: 1.5}); err == nil {
		t.Error("Expected error for stability above 1")
	}

	if err := ValidateElevenLabsConfig(ElevenLabsConfig{APIKey: "k", Clarity: -0.1}); err == nil {
		t.Error("Expected error for negative clarity")
	}
}

func TestElevenLabsTTS_Synthesize(t *testing.T) {
	var got ElevenLabsRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-123/stream" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "test-api-key" {
			t.Errorf("Missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{
		APIKey:     "test-api-key",
		APIBaseURL: server.URL,
		VoiceID:    "voice-123",
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	audio, err := tts.Synthesize(context.Background(), repositories.SynthesisParams{
		Text:        "Hello",
		LanguageTag: "en-GB",
		Rate:        2.0,
		Volume:      1.0,
	})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if string(audio) != "ID3-fake-mp3" {
		t.Errorf("Unexpected audio payload %q", audio)
	}

	if got.LanguageCode != "en" {
		t.Errorf("Expected language code 'en', got '%s'", got.LanguageCode)
	}

	if got.VoiceSettings.Speed != maxElevenLabsSpeed {
		t.Errorf("Expected speed clamped to %f, got %f", maxElevenLabsSpeed, got.VoiceSettings.Speed)
	}
}

func TestElevenLabsTTS_SynthesizeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"detail":{"status":"quota_exceeded"}}`))
	}))
	defer server.Close()

	tts, err := NewElevenLabsTTS(ElevenLabsConfig{APIKey: "k", APIBaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Failed to create ElevenLabsTTS: %v", err)
	}

	_, err = tts.Synthesize(context.Background(), repositories.SynthesisParams{Text: "Hello", Rate: 1, Volume: 1})

	var synthErr *entities.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("Expected SynthesisError, got %v", err)
	}

	if synthErr.Reason != entities.ReasonBackendRejected {
		t.Errorf("Expected backend-rejected, got %s", synthErr.Reason)
	}
}

func TestClampSpeed(t *testing.T) {
	cases := map[float64]float64{0: 1.0, 0.5: 0.7, 1.0: 1.0, 1.1: 1.1, 2.0: 1.2}
	for in, want := range cases {
		if got := clampSpeed(in); got != want {
			t.Errorf("clampSpeed(%v) = %v, want %v", in, got, want)
		}
	}
}
