package adapters

import (
	"context"
	"errors"
	"sync"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const defaultHistoryCapacity = 500

// MemoryHistoryRepository keeps the most recent syntheses in memory.
// Used when no MongoDB is configured; entries are lost on restart.
type MemoryHistoryRepository struct {
	mu       sync.RWMutex
	entries  []entities.HistoryEntry // oldest first
	capacity int
}

// Ensure MemoryHistoryRepository implements the HistoryRepository interface
var _ repositories.HistoryRepository = (*MemoryHistoryRepository)(nil)

// NewMemoryHistoryRepository creates a new in-memory history repository
func NewMemoryHistoryRepository(capacity int) *MemoryHistoryRepository {
	if capacity <= 0 {
		capacity = defaultHistoryCapacity
	}
	return &MemoryHistoryRepository{capacity: capacity}
}

// Record implements HistoryRepository interface
func (m *MemoryHistoryRepository) Record(ctx context.Context, entry entities.HistoryEntry) error {
	if entry.ID == "" {
		return errors.New("history entry ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append([]entities.HistoryEntry(nil), m.entries[over:]...)
	}

	return nil
}

// Recent implements HistoryRepository interface, newest first
func (m *MemoryHistoryRepository) Recent(ctx context.Context, limit int) ([]entities.HistoryEntry, error) {
	if limit <= 0 {
		return []entities.HistoryEntry{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit > len(m.entries) {
		limit = len(m.entries)
	}

	// Return copies to prevent external modifications
	result := make([]entities.HistoryEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.entries[i])
	}

	return result, nil
}
