package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
	"github.com/TheRealHZL/MentalHealth-sub001/internal/testutil"
)

func TestLoader_Load(t *testing.T) {
	store := new(testutil.MockModelStore)
	ref, data := testArtifact(t, "v3")
	store.On("ReadBytes", mock.Anything, ref).Return(data, nil).Once()

	loader := NewLoader(store, time.Second)
	sess, err := loader.Load(context.Background(), ref)
	assert.NoError(t, err)
	assert.Equal(t, "v3", sess.Artifact().Version)

	res, err := sess.Predict(domain.InferenceRequest{Input: "anxious"})
	assert.NoError(t, err)
	assert.Equal(t, "v3", res.ModelVersion)
}

func TestLoader_ChecksumMismatch(t *testing.T) {
	store := new(testutil.MockModelStore)
	ref, data := testArtifact(t, "v1")
	store.On("ReadBytes", mock.Anything, ref).Return(append(data, ' '), nil).Once()

	loader := NewLoader(store, time.Second)
	_, err := loader.Load(context.Background(), ref)
	assert.ErrorIs(t, err, domain.ErrCorruptArtifact)
}

func TestLoader_DecodeFailure(t *testing.T) {
	store := new(testutil.MockModelStore)
	garbage := []byte("not json at all")
	ref := &domain.ArtifactRef{
		ModelArtifact: domain.ModelArtifact{Version: "v1", Checksum: domain.Checksum(garbage)},
	}
	store.On("ReadBytes", mock.Anything, ref).Return(garbage, nil).Once()

	loader := NewLoader(store, time.Second)
	_, err := loader.Load(context.Background(), ref)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode artifact")
}

func TestLoader_Timeout(t *testing.T) {
	store := new(testutil.MockModelStore)
	ref, data := testArtifact(t, "v1")
	store.On("ReadBytes", mock.Anything, ref).Run(func(mock.Arguments) {
		time.Sleep(300 * time.Millisecond)
	}).Return(data, nil).Once()

	loader := NewLoader(store, 50*time.Millisecond)

	start := time.Now()
	_, err := loader.Load(context.Background(), ref)
	assert.ErrorIs(t, err, domain.ErrLoadTimeout)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestLoader_StoreError(t *testing.T) {
	store := new(testutil.MockModelStore)
	ref, _ := testArtifact(t, "v1")
	store.On("ReadBytes", mock.Anything, ref).Return(nil, assert.AnError).Once()

	loader := NewLoader(store, time.Second)
	_, err := loader.Load(context.Background(), ref)
	assert.ErrorIs(t, err, assert.AnError)
}
