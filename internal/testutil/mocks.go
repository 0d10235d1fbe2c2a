package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

// MockModelStore is a mock of ports.ModelStore.
type MockModelStore struct {
	mock.Mock
}

func (m *MockModelStore) GetLatestRef(ctx context.Context) (*domain.ArtifactRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactRef), args.Error(1)
}

func (m *MockModelStore) Write(ctx context.Context, format domain.ArtifactFormat, data []byte) (*domain.ArtifactRef, error) {
	args := m.Called(ctx, format, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactRef), args.Error(1)
}

func (m *MockModelStore) ReadBytes(ctx context.Context, ref *domain.ArtifactRef) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockTrainer is a mock of ports.Trainer.
type MockTrainer struct {
	mock.Mock
}

func (m *MockTrainer) Train(ctx context.Context, datasetRef string) (*domain.IntentModel, error) {
	args := m.Called(ctx, datasetRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IntentModel), args.Error(1)
}

// MockPinger is a mock of ports.Pinger.
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockFeedbackSink is a mock of ports.FeedbackSink.
type MockFeedbackSink struct {
	mock.Mock
}

func (m *MockFeedbackSink) Record(ctx context.Context, predictionID uuid.UUID, feedback string) error {
	args := m.Called(ctx, predictionID, feedback)
	return args.Error(0)
}
