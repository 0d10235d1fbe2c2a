package services

import (
	"context"
	"time"

	"github.com/TheRealHZL/MentalHealth-sub001/internal/core/domain"
	ports "github.com/TheRealHZL/MentalHealth-sub001/internal/core/ports/output"
)

// DefaultHealthTimeout bounds every sub-check of a health report. Tune via
// ENGINE_HEALTH_TIMEOUT.
const DefaultHealthTimeout = 2 * time.Second

// HealthService composes the engine snapshot with database reachability into
// one report for external health checks. A slow or unreachable database maps
// to DatabaseOK=false within the configured bound; the report itself never
// hangs.
type HealthService struct {
	engine  *Engine
	pinger  ports.Pinger
	timeout time.Duration
}

func NewHealthService(engine *Engine, pinger ports.Pinger, timeout time.Duration) *HealthService {
	if timeout <= 0 {
		timeout = DefaultHealthTimeout
	}
	return &HealthService{engine: engine, pinger: pinger, timeout: timeout}
}

// Report derives the current health snapshot. Pure read; recomputed on every
// call.
func (s *HealthService) Report(ctx context.Context) domain.HealthSnapshot {
	snap := s.engine.Snapshot()

	if s.pinger == nil {
		// No database configured; nothing to be down.
		snap.DatabaseOK = true
		return snap
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.pinger.Ping(ctx) }()

	select {
	case err := <-done:
		snap.DatabaseOK = err == nil
	case <-ctx.Done():
		snap.DatabaseOK = false
	}

	return snap
}
