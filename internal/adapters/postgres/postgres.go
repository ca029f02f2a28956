// Package postgres connects the service to its PostgreSQL database through a
// pgx connection pool and exposes a reachability probe for it.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen11/sales-master/internal/platform/config"
)

// ErrNoURI is returned by Connect when the database URI is empty.
var ErrNoURI = errors.New("database uri is empty")

// DB owns the connection pool. It is registered as the Database capability.
type DB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Connect parses cfg, opens the pool and pings once. There is no retry: an
// unreachable database fails startup. The URI never appears in returned
// errors or logs.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database %s on %s: %w",
			poolCfg.ConnConfig.Database, poolCfg.ConnConfig.Host, err)
	}

	logger.Info("connected to database",
		slog.String("host", poolCfg.ConnConfig.Host),
		slog.Int("port", int(poolCfg.ConnConfig.Port)),
		slog.String("database", poolCfg.ConnConfig.Database),
		slog.Int("max_conns", int(poolCfg.MaxConns)),
	)

	return &DB{pool: pool, logger: logger}, nil
}

// poolConfig maps DatabaseConfig onto a pgxpool config. Zero values keep the
// pgx defaults.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg.URI == "" {
		return nil, ErrNoURI
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URI)
	if err != nil {
		// pgx errors can quote the connection string.
		return nil, errors.New("parsing database uri: malformed connection string")
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}

	return poolCfg, nil
}

// Ping acquires a connection and checks it is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Close waits for acquired connections to be released and closes the pool.
func (db *DB) Close() {
	db.logger.Info("closing database pool")
	db.pool.Close()
}
