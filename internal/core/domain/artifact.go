package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type ArtifactFormat string

const (
	// ArtifactFormatIntentsJSON is the serialized IntentModel produced by the
	// intent trainer. The only format the current loader understands.
	ArtifactFormatIntentsJSON ArtifactFormat = "intents-json"
)

// ModelArtifact identifies one trained model in the store. Immutable once
// written; the store never rewrites an artifact in place.
type ModelArtifact struct {
	ID        uuid.UUID      `json:"id"`
	Version   string         `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	Format    ArtifactFormat `json:"format"`
	Checksum  string         `json:"checksum"`
}

// ArtifactRef locates an artifact in the store. Handed between the store, the
// loader and the training coordinator; none of them own the artifact itself.
type ArtifactRef struct {
	ModelArtifact
	URI string `json:"uri"`
}

// Checksum is the integrity hash over raw artifact bytes, computed by the
// store on write and verified by the loader before deserializing.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
