package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

func newTestSession(version string) *Session {
	model := testModel(version)
	return NewSession(domain.ModelArtifact{Version: version}, model)
}

func TestSession_Predict(t *testing.T) {
	s := newTestSession("v1")

	res, err := s.Predict(domain.InferenceRequest{Input: "I feel anxious and worried all the time"})
	assert.NoError(t, err)
	assert.Equal(t, "anxiety", res.Intent)
	assert.Equal(t, "v1", res.ModelVersion)
	assert.Greater(t, res.Confidence, 0.0)
}

func TestSession_PredictFallback(t *testing.T) {
	s := newTestSession("v1")

	res, err := s.Predict(domain.InferenceRequest{Input: "completely unrelated gibberish"})
	assert.NoError(t, err)
	assert.Empty(t, res.Intent)
	assert.Equal(t, "I'm here to listen.", res.Output)
	assert.Zero(t, res.Confidence)
}

func TestSession_ConcurrentPredict(t *testing.T) {
	s := newTestSession("v1")

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Predict(domain.InferenceRequest{Input: "worried and anxious"})
			assert.NoError(t, err)
			assert.Equal(t, "v1", res.ModelVersion)
		}()
	}
	wg.Wait()
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := newTestSession("v1")

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	_, err := s.Predict(domain.InferenceRequest{Input: "hello"})
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestSession_CloseDuringPredicts(t *testing.T) {
	s := newTestSession("v1")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Either a full result or a clean typed error; never a panic.
			res, err := s.Predict(domain.InferenceRequest{Input: "anxious"})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrSessionClosed)
				return
			}
			assert.Equal(t, "v1", res.ModelVersion)
		}()
	}

	assert.NoError(t, s.Close())
	wg.Wait()
}
