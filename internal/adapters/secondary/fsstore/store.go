package fsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

const manifestName = "manifest.json"

// Store keeps model artifacts as files under one directory, with a manifest
// listing them in write order. Writes are atomic: payload and manifest both
// land via temp-file-and-rename, so a crash mid-write never corrupts an
// already-published artifact. Safe for concurrent use within one process.
type Store struct {
	dir string
	mu  sync.Mutex
}

type manifest struct {
	Artifacts []domain.ArtifactRef `json:"artifacts"`
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create model dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// GetLatestRef returns the most recently written artifact.
func (s *Store) GetLatestRef(ctx context.Context) (*domain.ArtifactRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readManifest()
	if err != nil {
		return nil, err
	}
	if len(m.Artifacts) == 0 {
		return nil, domain.ErrArtifactNotFound
	}
	ref := m.Artifacts[len(m.Artifacts)-1]
	return &ref, nil
}

// Write persists a new artifact and appends it to the manifest. Versions are
// assigned sequentially: v1, v2, ...
func (s *Store) Write(ctx context.Context, format domain.ArtifactFormat, data []byte) (*domain.ArtifactRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readManifest()
	if err != nil {
		return nil, err
	}

	ref := domain.ArtifactRef{
		ModelArtifact: domain.ModelArtifact{
			ID:        uuid.New(),
			Version:   fmt.Sprintf("v%d", len(m.Artifacts)+1),
			CreatedAt: time.Now().UTC(),
			Format:    format,
			Checksum:  domain.Checksum(data),
		},
	}
	ref.URI = filepath.Join(s.dir, ref.ID.String()+".model")

	if err := writeAtomic(ref.URI, data); err != nil {
		return nil, fmt.Errorf("write artifact %s: %w", ref.Version, err)
	}

	m.Artifacts = append(m.Artifacts, ref)
	if err := s.writeManifest(m); err != nil {
		return nil, fmt.Errorf("update manifest: %w", err)
	}

	return &ref, nil
}

// ReadBytes returns the raw payload for the given ref.
func (s *Store) ReadBytes(ctx context.Context, ref *domain.ArtifactRef) ([]byte, error) {
	data, err := os.ReadFile(ref.URI)
	if os.IsNotExist(err) {
		return nil, domain.ErrArtifactNotFound
	}
	return data, err
}

func (s *Store) readManifest() (*manifest, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, manifestName))
	if os.IsNotExist(err) {
		return &manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

func (s *Store) writeManifest(m *manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(s.dir, manifestName), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
