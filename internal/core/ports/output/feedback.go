package ports

import (
	"context"

	"github.com/google/uuid"
)

// FeedbackSink receives user feedback on predictions. Fire-and-forget from
// the engine's point of view: failures are logged by the caller, never
// surfaced to the user.
type FeedbackSink interface {
	Record(ctx context.Context, predictionID uuid.UUID, feedback string) error
}
