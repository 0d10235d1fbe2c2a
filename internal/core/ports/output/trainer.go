package ports

import (
	"context"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
)

// Trainer is the opaque training capability. Implementations must honor ctx
// cancellation at their own checkpoints; a cancelled run returns ctx.Err()
// and any partial result is discarded by the coordinator, never promoted.
type Trainer interface {
	Train(ctx context.Context, datasetRef string) (*domain.IntentModel, error)
}
