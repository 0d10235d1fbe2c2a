package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

// Session wraps one loaded model and serves concurrent predict calls against
// it. The model is immutable after construction; the only mutable state is
// the closed flag. Close drains: it waits for in-flight predicts to return
// before releasing, so a swapped-out session is never pulled from under a
// caller.
type Session struct {
	artifact domain.ModelArtifact
	model    *domain.IntentModel

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewSession(artifact domain.ModelArtifact, model *domain.IntentModel) *Session {
	return &Session{artifact: artifact, model: model}
}

// Artifact returns the artifact metadata this session serves.
func (s *Session) Artifact() domain.ModelArtifact {
	return s.artifact
}

// Predict runs one inference call. Side-effect-free with respect to engine
// state; safe for many concurrent callers.
func (s *Session) Predict(req domain.InferenceRequest) (*domain.InferenceResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, domain.ErrSessionClosed
	}

	start := time.Now()
	pred := s.model.Respond(req.Input)

	return &domain.InferenceResult{
		PredictionID: uuid.New(),
		Output:       pred.Output,
		Intent:       pred.Intent,
		Confidence:   pred.Confidence,
		ModelVersion: s.artifact.Version,
		Latency:      time.Since(start),
	}, nil
}

// Close releases the session exactly once. The write lock is only granted
// after all in-flight predicts have returned, which gives drain-then-close
// for free. Double close is a no-op.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	})
	return nil
}
