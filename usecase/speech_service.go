package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

// Synthesizer turns a validated request into raw audio
type Synthesizer interface {
	Synthesize(ctx context.Context, req entities.SynthesisRequest) ([]byte, error)
}

// SpeechService orchestrates the synthesize -> persist -> record flow
type SpeechService struct {
	synthesizer Synthesizer
	store       repositories.ArtifactStore
	history     repositories.HistoryRepository
	retry       RetryPolicy
	logger      *zap.Logger
	now         func() time.Time
}

// NewSpeechService creates a new speech service
func NewSpeechService(
	synthesizer Synthesizer,
	store repositories.ArtifactStore,
	history repositories.HistoryRepository,
	retry RetryPolicy,
	logger *zap.Logger,
) *SpeechService {
	return &SpeechService{
		synthesizer: synthesizer,
		store:       store,
		history:     history,
		retry:       retry,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate synthesizes the request and stores the audio as a new artifact
func (s *SpeechService) Generate(ctx context.Context, req entities.SynthesisRequest) (entities.AudioArtifact, error) {
	s.logger.Info("Processing TTS request",
		zap.Int("textLength", len(req.Text)),
		zap.String("voice", req.VoiceIdentifier),
		zap.Float64("rate", req.Rate),
		zap.Float64("volume", req.Volume))

	audio, err := Retry(ctx, s.retry, s.logger, func(ctx context.Context) ([]byte, error) {
		return s.synthesizer.Synthesize(ctx, req)
	})
	if err != nil {
		return entities.AudioArtifact{}, err
	}

	artifact, err := s.store.Store(audio, s.artifactName())
	if err != nil {
		return entities.AudioArtifact{}, err
	}

	if s.history != nil {
		entry := entities.NewHistoryEntry(uuid.NewString(), req, artifact)
		if err := s.history.Record(ctx, entry); err != nil {
			// the artifact exists already; losing a history line must not fail the request
			s.logger.Warn("Failed to record synthesis history",
				zap.String("artifact", artifact.Name),
				zap.Error(err))
		}
	}

	return artifact, nil
}

// History returns the most recent syntheses, newest first
func (s *SpeechService) History(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if s.history == nil {
		return []entities.HistoryEntry{}, nil
	}
	return s.history.Recent(ctx, limit)
}

func (s *SpeechService) artifactName() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("tts_%d_%s.mp3", s.now().Unix(), suffix)
}
