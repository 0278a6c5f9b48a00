package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// TestHistoryRepository_Integration requires a running MongoDB instance
// (skipped if MONGODB_URI is not set)
func TestHistoryRepository_Integration(t *testing.T) {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		t.Skip("Skipping MongoDB integration test - MONGODB_URI not set")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	client, err := NewClient(ctx, mongoURI, "speechsuite_test", logger)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Close(ctx)
	defer client.Database.Drop(ctx)

	repo := NewHistoryRepository(client.Database, logger)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		err := repo.Record(ctx, entities.HistoryEntry{
			ID:              fmt.Sprintf("entry-%d", i),
			ArtifactName:    fmt.Sprintf("tts_%d.mp3", i),
			VoiceIdentifier: "en-US-JennyNeural",
			TextPreview:     "Hello",
			Rate:            1.0,
			Volume:          1.0,
			ByteSize:        1024,
			CreatedAt:       base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Failed to record entry: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to get recent history: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(recent))
	}
	if recent[0].ID != "entry-2" {
		t.Errorf("Expected newest entry first, got %s", recent[0].ID)
	}
	if recent[0].VoiceIdentifier != "en-US-JennyNeural" {
		t.Errorf("Expected voice en-US-JennyNeural, got %s", recent[0].VoiceIdentifier)
	}
}

func TestNewClient_RequiresURI(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "", zap.NewNop()); err == nil {
		t.Error("Expected error for empty URI")
	}
}
