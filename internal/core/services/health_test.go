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

func TestHealthService_Report(t *testing.T) {
	store := new(testutil.MockModelStore)
	ref, data := testArtifact(t, "v1")
	store.On("GetLatestRef", mock.Anything).Return(ref, nil).Once()
	store.On("ReadBytes", mock.Anything, ref).Return(data, nil).Once()

	e := newTestEngine(store, new(testutil.MockTrainer), nil)
	e.Initialize(context.Background())

	pinger := new(testutil.MockPinger)
	pinger.On("Ping", mock.Anything).Return(nil).Once()

	svc := NewHealthService(e, pinger, time.Second)
	snap := svc.Report(context.Background())

	assert.Equal(t, domain.EngineStateReady, snap.EngineState)
	assert.True(t, snap.ModelLoaded)
	assert.Equal(t, "v1", snap.ModelVersion)
	assert.True(t, snap.DatabaseOK)
	assert.Empty(t, snap.LastError)
}

func TestHealthService_DegradedEngine(t *testing.T) {
	store := new(testutil.MockModelStore)
	store.On("GetLatestRef", mock.Anything).Return(nil, domain.ErrArtifactNotFound).Once()

	e := newTestEngine(store, new(testutil.MockTrainer), nil)
	e.Initialize(context.Background())

	pinger := new(testutil.MockPinger)
	pinger.On("Ping", mock.Anything).Return(nil).Once()

	svc := NewHealthService(e, pinger, time.Second)
	snap := svc.Report(context.Background())

	// Operators can tell "AI feature unavailable" apart from "system down".
	assert.Equal(t, domain.EngineStateDegraded, snap.EngineState)
	assert.False(t, snap.ModelLoaded)
	assert.True(t, snap.DatabaseOK)
	assert.NotEmpty(t, snap.LastError)
}

func TestHealthService_PingFailure(t *testing.T) {
	store := new(testutil.MockModelStore)
	store.On("GetLatestRef", mock.Anything).Return(nil, domain.ErrArtifactNotFound).Once()

	e := newTestEngine(store, new(testutil.MockTrainer), nil)
	e.Initialize(context.Background())

	pinger := new(testutil.MockPinger)
	pinger.On("Ping", mock.Anything).Return(assert.AnError).Once()

	svc := NewHealthService(e, pinger, time.Second)
	assert.False(t, svc.Report(context.Background()).DatabaseOK)
}

func TestHealthService_PingTimeoutIsBounded(t *testing.T) {
	store := new(testutil.MockModelStore)
	store.On("GetLatestRef", mock.Anything).Return(nil, domain.ErrArtifactNotFound).Once()

	e := newTestEngine(store, new(testutil.MockTrainer), nil)
	e.Initialize(context.Background())

	pinger := new(testutil.MockPinger)
	pinger.On("Ping", mock.Anything).Run(func(mock.Arguments) {
		time.Sleep(500 * time.Millisecond)
	}).Return(nil).Once()

	svc := NewHealthService(e, pinger, 50*time.Millisecond)

	start := time.Now()
	snap := svc.Report(context.Background())
	assert.False(t, snap.DatabaseOK)
	assert.Less(t, time.Since(start), 300*time.Millisecond)
}

func TestHealthService_NoPinger(t *testing.T) {
	store := new(testutil.MockModelStore)
	store.On("GetLatestRef", mock.Anything).Return(nil, domain.ErrArtifactNotFound).Once()

	e := newTestEngine(store, new(testutil.MockTrainer), nil)
	e.Initialize(context.Background())

	svc := NewHealthService(e, nil, time.Second)
	snap := svc.Report(context.Background())
	assert.Equal(t, domain.EngineStateDegraded, snap.EngineState)
	// A disabled database never marks the system unhealthy.
	assert.True(t, snap.DatabaseOK)
}
