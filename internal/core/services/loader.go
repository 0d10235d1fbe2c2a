package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
	ports "github.com/TheRealHZL/MentalHealth-sub001/internal/core/ports/output"
)

// DefaultLoadTimeout bounds how long a single load attempt may take before it
// is converted into domain.ErrLoadTimeout. Tune via ENGINE_LOAD_TIMEOUT.
const DefaultLoadTimeout = 30 * time.Second

// Loader deserializes a store artifact into an inference-ready Session.
// A hung store read must not wedge engine initialization, so the whole
// read+decode runs under a timeout.
type Loader struct {
	store   ports.ModelStore
	timeout time.Duration
}

func NewLoader(store ports.ModelStore, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Loader{store: store, timeout: timeout}
}

// Load reads the artifact, verifies its checksum and decodes the model.
// A checksum mismatch yields domain.ErrCorruptArtifact; exceeding the
// configured timeout yields domain.ErrLoadTimeout.
func (l *Loader) Load(ctx context.Context, ref *domain.ArtifactRef) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	type outcome struct {
		sess *Session
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		sess, err := l.load(ctx, ref)
		done <- outcome{sess: sess, err: err}
	}()

	select {
	case out := <-done:
		return out.sess, out.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s (artifact %s)", domain.ErrLoadTimeout, l.timeout, ref.Version)
		}
		return nil, ctx.Err()
	}
}

func (l *Loader) load(ctx context.Context, ref *domain.ArtifactRef) (*Session, error) {
	data, err := l.store.ReadBytes(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", ref.Version, err)
	}

	if sum := domain.Checksum(data); sum != ref.Checksum {
		return nil, fmt.Errorf("%w: artifact %s has %s, manifest says %s",
			domain.ErrCorruptArtifact, ref.Version, sum, ref.Checksum)
	}

	var model domain.IntentModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", ref.Version, err)
	}
	if model.Version == "" {
		model.Version = ref.Version
	}

	return NewSession(ref.ModelArtifact, &model), nil
}
