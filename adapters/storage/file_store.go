package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/entities"
	"github.com/satriahrh/speechsuite/domain/repositories"
)

const (
	tempPrefix          = ".tmp-"
	DefaultMaxArtifacts = 50
)

var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".webm": "audio/webm",
}

// FileStore keeps synthesized audio in a single managed directory.
// Artifacts are evicted oldest-first once MaxArtifacts is exceeded.
type FileStore struct {
	dir          string
	maxArtifacts int
	logger       *zap.Logger
	now          func() time.Time

	mu    sync.Mutex
	order []entities.AudioArtifact // creation order, oldest first
}

// Ensure FileStore implements the ArtifactStore interface
var _ repositories.ArtifactStore = (*FileStore)(nil)

// NewFileStore creates the directory if needed and indexes the artifacts already in it
func NewFileStore(dir string, maxArtifacts int, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if maxArtifacts <= 0 {
		maxArtifacts = DefaultMaxArtifacts
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	s := &FileStore{
		dir:          dir,
		maxArtifacts: maxArtifacts,
		logger:       logger,
		now:          time.Now,
	}

	if err := s.loadIndex(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.evictLocked()
	s.mu.Unlock()

	logger.Info("Artifact store ready",
		zap.String("dir", dir),
		zap.Int("artifacts", len(s.order)),
		zap.Int("maxArtifacts", maxArtifacts))

	return s, nil
}

func (s *FileStore) loadIndex() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read artifact directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(s.dir, name)

		if strings.HasPrefix(name, tempPrefix) {
			if err := os.Remove(path); err != nil {
				s.logger.Warn("Failed to remove stale temp file", zap.String("file", name), zap.Error(err))
			}
			continue
		}
		if !safeName(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		s.order = append(s.order, entities.AudioArtifact{
			Name:        name,
			FilePath:    path,
			ByteSize:    info.Size(),
			CreatedAt:   info.ModTime(),
			ContentType: contentTypeFor(name),
		})
	}

	sort.SliceStable(s.order, func(i, j int) bool {
		a, b := s.order[i], s.order[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Name < b.Name
	})

	return nil
}

// Store writes payload under suggestedName without a partially written file
// ever appearing at the final path, then evicts down to capacity.
func (s *FileStore) Store(payload []byte, suggestedName string) (entities.AudioArtifact, error) {
	name := filepath.Base(suggestedName)
	if !safeName(name) {
		name = fmt.Sprintf("tts_%s.mp3", uuid.NewString())
	}
	finalPath := filepath.Join(s.dir, name)

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return entities.AudioArtifact{}, classifyStorageError(err)
	}
	tmpPath := tmp.Name()

	if err := writeAndSync(tmp, payload); err != nil {
		s.removeTemp(tmpPath)
		return entities.AudioArtifact{}, classifyStorageError(err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		s.removeTemp(tmpPath)
		return entities.AudioArtifact{}, classifyStorageError(err)
	}

	artifact := entities.AudioArtifact{
		Name:        name,
		FilePath:    finalPath,
		ByteSize:    int64(len(payload)),
		CreatedAt:   s.now(),
		ContentType: contentTypeFor(name),
	}

	s.dropLocked(name)
	s.order = append(s.order, artifact)
	evicted := s.evictLocked()

	s.logger.Info("Stored audio artifact",
		zap.String("artifact", name),
		zap.String("size", humanize.Bytes(uint64(artifact.ByteSize))),
		zap.Int("evicted", evicted))

	return artifact, nil
}

func writeAndSync(f *os.File, payload []byte) error {
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *FileStore) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Failed to remove temp file", zap.String("file", path), zap.Error(err))
	}
}

// Open returns the artifact file for reading. The caller closes it.
func (s *FileStore) Open(name string) (*os.File, entities.AudioArtifact, error) {
	if !safeName(name) {
		return nil, entities.AudioArtifact{}, entities.NewNotFoundError("artifact", name)
	}

	s.mu.Lock()
	artifact, ok := s.findLocked(name)
	s.mu.Unlock()
	if !ok {
		return nil, entities.AudioArtifact{}, entities.NewNotFoundError("artifact", name)
	}

	f, err := os.Open(artifact.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, entities.AudioArtifact{}, entities.NewNotFoundError("artifact", name)
		}
		return nil, entities.AudioArtifact{}, fmt.Errorf("failed to open artifact %s: %w", name, err)
	}

	return f, artifact, nil
}

// List returns the artifacts in creation order
func (s *FileStore) List() []entities.AudioArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.AudioArtifact, len(s.order))
	copy(out, s.order)
	return out
}

// RemoveOlderThan deletes artifacts created before cutoff and returns how many went
func (s *FileStore) RemoveOlderThan(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, artifact := range s.order {
		if artifact.CreatedAt.Before(cutoff) && s.removeFile(artifact) == nil {
			removed++
			continue
		}
		kept = append(kept, artifact)
	}
	s.order = kept

	if removed > 0 {
		s.logger.Info("Removed expired artifacts", zap.Int("removed", removed), zap.Time("cutoff", cutoff))
	}
	return removed
}

// Purge deletes every artifact. Files that could not be removed stay indexed.
func (s *FileStore) Purge() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		kept     []entities.AudioArtifact
		removed  int
		firstErr error
	)
	for _, artifact := range s.order {
		if err := s.removeFile(artifact); err != nil {
			kept = append(kept, artifact)
			if firstErr == nil {
				firstErr = classifyStorageError(err)
			}
			continue
		}
		removed++
	}
	s.order = kept

	s.logger.Info("Purged artifacts", zap.Int("removed", removed))
	return removed, firstErr
}

// evictLocked drops the oldest artifacts until the store is within capacity
func (s *FileStore) evictLocked() int {
	evicted := 0
	for len(s.order) > s.maxArtifacts {
		oldest := s.order[0]
		s.order = s.order[1:]
		if err := s.removeFile(oldest); err != nil {
			s.logger.Warn("Failed to evict artifact", zap.String("artifact", oldest.Name), zap.Error(err))
		}
		evicted++
	}
	return evicted
}

func (s *FileStore) removeFile(artifact entities.AudioArtifact) error {
	err := os.Remove(artifact.FilePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) findLocked(name string) (entities.AudioArtifact, bool) {
	for _, artifact := range s.order {
		if artifact.Name == name {
			return artifact, true
		}
	}
	return entities.AudioArtifact{}, false
}

func (s *FileStore) dropLocked(name string) {
	for i, artifact := range s.order {
		if artifact.Name == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// safeName rejects anything that could escape the managed directory or hide in it
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return !strings.HasPrefix(name, ".")
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

func classifyStorageError(err error) *entities.StorageError {
	switch {
	case errors.Is(err, syscall.ENOSPC):
		return entities.NewStorageError(entities.ReasonDiskFull, err)
	case errors.Is(err, fs.ErrPermission):
		return entities.NewStorageError(entities.ReasonPermissionDenied, err)
	default:
		return entities.NewStorageError(entities.ReasonIO, err)
	}
}
