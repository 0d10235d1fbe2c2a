package ports

import "context"

// Pinger reports reachability of the backing database. Consumed by the
// health reporter; implementations must respect ctx deadlines.
type Pinger interface {
	Ping(ctx context.Context) error
}
