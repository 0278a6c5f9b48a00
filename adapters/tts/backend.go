package tts

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/adapters/speech"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

// NewBackend builds the synthesis backend selected by name: edge, elevenlabs or mock
func NewBackend(name, edgeEndpoint string, logger *zap.Logger) (repositories.TextToSpeech, error) {
	switch name {
	case "", "edge":
		return NewEdgeTTS(EdgeConfig{Endpoint: edgeEndpoint}, logger)
	case "elevenlabs":
		return NewElevenLabsTTS(NewElevenLabsConfigFromEnv(), logger)
	case "mock":
		return speech.NewMockTextToSpeech(logger), nil
	}
	return nil, fmt.Errorf("unknown tts backend %q", name)
}
