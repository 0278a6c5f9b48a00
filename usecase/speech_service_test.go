package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/speechsuite/adapters"
	"github.com/satriahrh/speechsuite/adapters/storage"
	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

type failingHistory struct{}

func (failingHistory) Record(context.Context, entities.HistoryEntry) error {
	return errors.New("history unavailable")
}

func (failingHistory) Recent(context.Context, int) ([]entities.HistoryEntry, error) {
	return nil, errors.New("history unavailable")
}

func newTestSpeech(t *testing.T, backend *fakeBackend, history repositories.HistoryRepository, retry RetryPolicy) (*SpeechService, *storage.FileStore) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	store, err := storage.NewFileStore(t.TempDir(), 10, logger)
	require.NoError(t, err)

	synthesis := newTestSynthesis(t, backend, time.Second)
	return NewSpeechService(synthesis, store, history, retry, logger), store
}

func TestSpeechService_Generate(t *testing.T) {
	history := adapters.NewMemoryHistoryRepository(10)
	svc, store := newTestSpeech(t, &fakeBackend{}, history, RetryPolicy{})

	artifact, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^tts_\d+_[0-9a-f]{12}\.mp3$`), artifact.Name)
	assert.Equal(t, int64(len("ID3-audio")), artifact.ByteSize)
	assert.Len(t, store.List(), 1)

	recent, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, artifact.Name, recent[0].ArtifactName)
	assert.Equal(t, "en-US-JennyNeural", recent[0].VoiceIdentifier)
}

func TestSpeechService_FailedSynthesisStoresNothing(t *testing.T) {
	backend := &fakeBackend{synthesize: func(context.Context, repositories.SynthesisParams) ([]byte, error) {
		return nil, entities.NewSynthesisError(entities.ReasonBackendRejected, errors.New("quota"))
	}}
	svc, store := newTestSpeech(t, backend, nil, RetryPolicy{Retries: 3})

	_, err := svc.Generate(context.Background(), validRequest())

	var synthErr *entities.SynthesisError
	require.True(t, errors.As(err, &synthErr))
	assert.Empty(t, store.List())
	assert.Equal(t, int32(1), backend.calls.Load())
}

func TestSpeechService_RetriesNetworkFailures(t *testing.T) {
	backend := &fakeBackend{}
	backend.synthesize = func(context.Context, repositories.SynthesisParams) ([]byte, error) {
		if backend.calls.Load() < 2 {
			return nil, errors.New("connection reset")
		}
		return []byte("ID3-audio"), nil
	}
	svc, store := newTestSpeech(t, backend, nil, RetryPolicy{Retries: 2, Backoff: time.Millisecond})

	_, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int32(2), backend.calls.Load())
	assert.Len(t, store.List(), 1)
}

func TestSpeechService_HistoryFailureDoesNotFailRequest(t *testing.T) {
	svc, store := newTestSpeech(t, &fakeBackend{}, failingHistory{}, RetryPolicy{})

	artifact, err := svc.Generate(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.Name)
	assert.Len(t, store.List(), 1)
}

func TestSpeechService_HistoryWithoutRepository(t *testing.T) {
	svc, _ := newTestSpeech(t, &fakeBackend{}, nil, RetryPolicy{})

	recent, err := svc.History(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
