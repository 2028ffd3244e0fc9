package database

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, enableDBCheck bool) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close() // Close the pool if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if enableDBCheck {
		if err := checkMigrationsTable(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	log.Println("Successfully connected to PostgreSQL database.")
	return pool, nil
}

// checkMigrationsTable verifies the schema_migrations table exists, which
// guards against pointing the app at an unmigrated database.
func checkMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'schema_migrations')`
	if err := pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check for schema_migrations table: %w", err)
	}
	if !exists {
		return fmt.Errorf("schema_migrations table not found: run migrations before starting the server")
	}
	return nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		log.Println("PostgreSQL connection pool closed.")
	}
}
