package usecase

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const defaultRequestTimeout = 10 * time.Second

// SynthesisService validates a request, resolves its voice and makes exactly
// one call to the remote backend. Retrying is left to the caller.
type SynthesisService struct {
	catalog       repositories.VoiceCatalog
	backend       repositories.TextToSpeech
	timeout       time.Duration
	maxTextLength int
	logger        *zap.Logger
}

// NewSynthesisService creates a new synthesis service
func NewSynthesisService(
	catalog repositories.VoiceCatalog,
	backend repositories.TextToSpeech,
	timeout time.Duration,
	maxTextLength int,
	logger *zap.Logger,
) *SynthesisService {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &SynthesisService{
		catalog:       catalog,
		backend:       backend,
		timeout:       timeout,
		maxTextLength: maxTextLength,
		logger:        logger,
	}
}

// Backend returns the name of the remote backend in use
func (s *SynthesisService) Backend() string {
	return s.backend.Name()
}

// Synthesize returns the raw audio payload, or a ValidationError, NotFoundError or SynthesisError
func (s *SynthesisService) Synthesize(ctx context.Context, req entities.SynthesisRequest) ([]byte, error) {
	if err := req.Validate(s.maxTextLength); err != nil {
		return nil, err
	}

	voice, err := s.catalog.Resolve(req.VoiceIdentifier)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	audio, err := s.backend.Synthesize(ctx, repositories.SynthesisParams{
		Text:        req.Text,
		BackendCode: voice.BackendCode,
		LanguageTag: voice.LanguageTag,
		Rate:        req.Rate,
		Volume:      req.Volume,
	})
	if err != nil {
		synthErr := classifyBackendError(ctx, err)
		s.logger.Warn("Synthesis failed",
			zap.String("backend", s.backend.Name()),
			zap.String("voice", voice.Identifier),
			zap.String("reason", string(synthErr.Reason)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, synthErr
	}

	if len(audio) == 0 {
		return nil, entities.NewSynthesisError(entities.ReasonBackendRejected, errors.New("backend returned an empty payload"))
	}

	s.logger.Info("Synthesis completed",
		zap.String("backend", s.backend.Name()),
		zap.String("voice", voice.Identifier),
		zap.String("size", humanize.Bytes(uint64(len(audio)))),
		zap.Duration("elapsed", time.Since(start)))

	return audio, nil
}

// classifyBackendError maps a backend failure onto the synthesis reason codes.
// Errors the backend already classified are kept as they are.
func classifyBackendError(ctx context.Context, err error) *entities.SynthesisError {
	var synthErr *entities.SynthesisError
	if errors.As(err, &synthErr) {
		return synthErr
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return entities.NewSynthesisError(entities.ReasonTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entities.NewSynthesisError(entities.ReasonTimeout, err)
	}

	return entities.NewSynthesisError(entities.ReasonNetwork, err)
}
