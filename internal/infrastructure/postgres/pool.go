package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jhoicas/mrp-api/pkg/config"
)

const (
	defaultMaxConns = 25
	// conexiones fuera de los workers: cabecera de la corrida, lecturas de la API y health check
	reservedConns = 3
)

// NewPool crea el pool de PostgreSQL. workers es MRP_WORKERS: cada worker de una corrida
// mantiene abierta una transacción por material, así que el pool conserva al menos workers
// conexiones calientes y nunca limita por debajo de workers + reservedConns.
func NewPool(ctx context.Context, cfg config.DBConfig, workers int) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns, poolConfig.MinConns = poolSizes(cfg.MaxConns, workers)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "mrp-api"

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// poolSizes devuelve (MaxConns, MinConns) para maxConns configurado y los workers MRP.
func poolSizes(maxConns, workers int) (int32, int32) {
	if workers < 1 {
		workers = 1
	}
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	if floor := workers + reservedConns; maxConns < floor {
		maxConns = floor
	}
	return int32(maxConns), int32(workers)
}
