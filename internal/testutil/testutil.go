// Package testutil starts throwaway PostgreSQL and Redis containers for
// repository, cache and end-to-end tests. Tests are skipped when no Docker
// provider is reachable.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"protest-tracker/config"
	"protest-tracker/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	pgOnce         sync.Once
	pgPool         *pgxpool.Pool
	pgMigrationURL string
	pgInitErr      error

	redisOnce    sync.Once
	redisClient  *redis.Client
	redisInitErr error
)

// SetupPostgres returns a pool on a migrated database with both tables emptied.
func SetupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	pgOnce.Do(func() {
		pgPool, pgInitErr = startPostgres()
	})
	require.NoError(t, pgInitErr)

	TruncateAll(t, pgPool)
	return pgPool
}

func startPostgres() (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("protest_tracker"),
		postgres.WithUsername("protest"),
		postgres.WithPassword("protest"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	cfg := config.DatabaseConfig{URL: dsn, MaxConns: 10, ConnectTimeout: 10 * time.Second}
	pool, err := database.InitDatabase(&cfg)
	if err != nil {
		return nil, fmt.Errorf("init pool: %w", err)
	}

	migrationURL, err := cfg.MigrationURL()
	if err != nil {
		pool.Close()
		return nil, err
	}
	schema := database.NewSchemaInitializer(database.MigrateUp(migrationURL), time.Minute)
	if err := schema.EnsureReady(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	pgMigrationURL = migrationURL
	return pool, nil
}

// PostgresMigrationURL returns the pgx5:// URL of the migrated test database.
func PostgresMigrationURL(t *testing.T) string {
	t.Helper()
	SetupPostgres(t)
	return pgMigrationURL
}

func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE protests, organizers RESTART IDENTITY CASCADE")
	require.NoError(t, err, "truncate tables")
}

// CreateOrganizer inserts an organizer directly and returns its id.
func CreateOrganizer(t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO organizers (name, email, password_hash) VALUES ($1, $2, 'x') RETURNING id`,
		name, email,
	).Scan(&id)
	require.NoError(t, err, "create organizer")
	return id
}

// CreateProtest inserts a protest directly and returns its id.
func CreateProtest(t *testing.T, pool *pgxpool.Pool, organizerID int64, name, date, clock string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO protests (organizer_id, name, date, time) VALUES ($1, $2, $3::date, $4::time) RETURNING id`,
		organizerID, name, date, clock,
	).Scan(&id)
	require.NoError(t, err, "create protest")
	return id
}

// SetupRedis returns a client on a flushed Redis database.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	redisOnce.Do(func() {
		redisClient, redisInitErr = startRedis()
	})
	require.NoError(t, redisInitErr)

	require.NoError(t, redisClient.FlushDB(context.Background()).Err())
	return redisClient
}

func startRedis() (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start redis container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return nil, err
	}

	return database.InitRedis(&config.RedisConfig{
		Enabled: true,
		Host:    host,
		Port:    port.Port(),
	})
}
