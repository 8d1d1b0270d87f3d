package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Khaja2988/AI-Driven-WAF/pkg/postgres"
)

// Postgres is a throwaway database for integration tests.
type Postgres struct {
	Pool *pgxpool.Pool
	DSN  string
}

// StartPostgres runs postgres:16-alpine, applies the migrations in
// migrationsDir (skipped when empty) and returns a connected pool. The
// container and pool are released when the test ends.
func StartPostgres(ctx context.Context, t *testing.T, migrationsDir string) *Postgres {
	t.Helper()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sentinel"),
		tcpostgres.WithUsername("sentinel"),
		tcpostgres.WithPassword("sentinel"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	terminateOnCleanup(t, "postgres", container)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	if migrationsDir != "" {
		abs, err := filepath.Abs(migrationsDir)
		if err != nil {
			t.Fatalf("resolve migrations dir %s: %v", migrationsDir, err)
		}
		if err := postgres.RunMigrations(dsn, "file://"+abs); err != nil {
			t.Fatalf("apply migrations: %v", err)
		}
	}

	pool, err := postgres.NewPool(ctx, postgres.Config{URL: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	return &Postgres{Pool: pool, DSN: dsn}
}
