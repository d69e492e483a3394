package db

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"typedrill/internal/config"
)

// NewPostgresConnection builds the pgx pool and verifies it with a
// ping before anything else starts.
func NewPostgresConnection(cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	if maxConns, err := strconv.ParseInt(cfg.DbMaxConns, 10, 32); err == nil && maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
