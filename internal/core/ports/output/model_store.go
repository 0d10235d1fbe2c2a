package ports

import (
	"context"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

// ModelStore is the durable home of versioned model artifacts. Read by the
// loader, written by the training coordinator.
type ModelStore interface {
	// GetLatestRef returns the most recently written artifact or
	// domain.ErrArtifactNotFound when the store is empty.
	GetLatestRef(ctx context.Context) (*domain.ArtifactRef, error)

	// Write persists a new artifact atomically and assigns its identity
	// (id, version, checksum). Existing artifacts are never touched.
	Write(ctx context.Context, format domain.ArtifactFormat, data []byte) (*domain.ArtifactRef, error)

	// ReadBytes returns the raw artifact payload for the given ref.
	ReadBytes(ctx context.Context, ref *domain.ArtifactRef) ([]byte, error)
}
