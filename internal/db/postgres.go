package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"backend-snapfeed/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

var newPoolFn = pgxpool.New
var pingPoolFn = func(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

func ConnectPostgres(cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := newPoolFn(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	if err := pingPoolFn(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Migrate applies the schema file at path. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS), so re-running on boot is safe.
func Migrate(ctx context.Context, q Querier, path string) error {
	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := q.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply migration %s: %w", path, err)
	}
	return nil
}
