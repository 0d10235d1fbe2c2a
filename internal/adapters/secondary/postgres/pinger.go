package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pinger adapts the connection pool to the health reporter's Pinger port.
type Pinger struct {
	pool *pgxpool.Pool
}

func NewPinger(pool *pgxpool.Pool) *Pinger {
	return &Pinger{pool: pool}
}

func (p *Pinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
