package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeedbackSink persists prediction feedback. The engine calls it
// fire-and-forget; errors returned here end up in a log line, never in an
// API response.
type FeedbackSink struct {
	pool *pgxpool.Pool
}

func NewFeedbackSink(pool *pgxpool.Pool) *FeedbackSink {
	return &FeedbackSink{pool: pool}
}

func (s *FeedbackSink) Record(ctx context.Context, predictionID uuid.UUID, feedback string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO prediction_feedback (id, prediction_id, feedback, created_at) VALUES ($1, $2, $3, $4)`,
		uuid.New(), predictionID, feedback, time.Now().UTC(),
	)
	return err
}
