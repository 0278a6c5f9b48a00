package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCleanupService_RunOnce(t *testing.T) {
	store := newTestStore(t, t.TempDir(), 10)

	clock := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	_, err := store.Store([]byte("old"), "old.mp3")
	require.NoError(t, err)

	cleanup := NewCleanupService(store, time.Hour, time.Minute, zaptest.NewLogger(t))
	cleanup.now = func() time.Time { return clock.Add(30 * time.Minute) }
	assert.Equal(t, 0, cleanup.RunOnce())

	cleanup.now = func() time.Time { return clock.Add(90 * time.Minute) }
	assert.Equal(t, 1, cleanup.RunOnce())
	assert.Empty(t, store.List())
}

func TestCleanupService_StartRemovesExpiredImmediately(t *testing.T) {
	store := newTestStore(t, t.TempDir(), 10)
	store.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	_, err := store.Store([]byte("old"), "old.mp3")
	require.NoError(t, err)

	cleanup := NewCleanupService(store, time.Hour, time.Hour, zaptest.NewLogger(t))
	cleanup.Start()

	assert.Eventually(t, func() bool { return len(store.List()) == 0 }, time.Second, 10*time.Millisecond)

	cleanup.Stop()
	cleanup.Stop()
}

func TestCleanupService_DisabledWithZeroAge(t *testing.T) {
	store := newTestStore(t, t.TempDir(), 10)
	_, err := store.Store([]byte("audio"), "a.mp3")
	require.NoError(t, err)

	cleanup := NewCleanupService(store, 0, time.Millisecond, zaptest.NewLogger(t))
	cleanup.Start()
	assert.Equal(t, 0, cleanup.RunOnce())
	cleanup.Stop()

	assert.Len(t, store.List(), 1)
}

func TestCleanupService_StopWithoutStart(t *testing.T) {
	store := newTestStore(t, t.TempDir(), 10)
	cleanup := NewCleanupService(store, time.Hour, time.Minute, zaptest.NewLogger(t))

	stopped := make(chan struct{})
	go func() {
		cleanup.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a service that was never started")
	}

	// Start after Stop must not launch the loop
	cleanup.Start()
	cleanup.Stop()
}
