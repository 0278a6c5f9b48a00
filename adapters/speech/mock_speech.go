package speech

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/repositories"
)

// MockTextToSpeech is an offline stand-in for the remote synthesis backend
type MockTextToSpeech struct {
	logger *zap.Logger
}

// Ensure MockTextToSpeech implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a new mock text-to-speech backend
func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{
		logger: logger,
	}
}

func (t *MockTextToSpeech) Name() string {
	return "mock"
}

// Synthesize returns a deterministic payload sized by the text length
func (t *MockTextToSpeech) Synthesize(ctx context.Context, params repositories.SynthesisParams) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t.logger.Info("Processing text-to-speech",
		zap.Int("textLength", len(params.Text)),
		zap.String("voice", params.BackendCode))

	// ID3 tag header so players and content sniffers treat it as mp3
	header := []byte(fmt.Sprintf("ID3\x04\x00\x00\x00\x00\x00\x00|%s|%.2f|%.2f|", params.BackendCode, params.Rate, params.Volume))
	mockAudio := make([]byte, len(header)+len(params.Text)*100)
	copy(mockAudio, header)

	// Fill with some pattern to simulate audio data
	for i := len(header); i < len(mockAudio); i++ {
		mockAudio[i] = byte(i % 256)
	}

	return mockAudio, nil
}
