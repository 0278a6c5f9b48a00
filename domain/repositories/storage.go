package repositories

import (
	"context"
	"os"
	"time"

	"github.com/satriahrh/speechsuite/domain/entities"
)

// ArtifactStore persists synthesized audio in a managed directory
type ArtifactStore interface {
	Store(payload []byte, suggestedName string) (entities.AudioArtifact, error)
	// Open returns the artifact file for reading; the caller closes it
	Open(name string) (*os.File, entities.AudioArtifact, error)
	List() []entities.AudioArtifact
	RemoveOlderThan(cutoff time.Time) int
	Purge() (int, error)
}

// HistoryRepository records completed syntheses
type HistoryRepository interface {
	Record(ctx context.Context, entry entities.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error)
}
