package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	apperrors "protest-tracker/pkg/app_errors"
	"protest-tracker/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyFunc performs the schema work guarded by a SchemaInitializer.
type ApplyFunc func(ctx context.Context) error

type SchemaInitializer interface {
	// EnsureReady blocks until the schema work has finished and returns its outcome.
	// The work runs at most once per initializer; failures are cached, not retried.
	EnsureReady(ctx context.Context) error
}

type SchemaInitializerImpl struct {
	apply   ApplyFunc
	timeout time.Duration

	once sync.Once
	done chan struct{}
	err  error
}

func NewSchemaInitializer(apply ApplyFunc, timeout time.Duration) SchemaInitializer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SchemaInitializerImpl{
		apply:   apply,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (s *SchemaInitializerImpl) EnsureReady(ctx context.Context) error {
	s.once.Do(func() { go s.run() })

	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is detached from any caller's context so one impatient request cannot fail the shared work.
func (s *SchemaInitializerImpl) run() {
	defer close(s.done)

	log := logger.WithComponent("database")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.apply(ctx); err != nil {
		s.err = fmt.Errorf("%w: %w", apperrors.ErrSchemaNotReady, err)
		log.Error("Schema initialization failed", zap.Error(err))
		return
	}
	log.Info("Schema ready", zap.Duration("took", time.Since(start)))
}

// MigrateUp returns an ApplyFunc running the embedded migrations against migrationURL (pgx5:// scheme).
// A ctx that ends mid-run stops golang-migrate between migrations; the run only fails on
// ctx when that actually left migrations unapplied.
func MigrateUp(migrationURL string) ApplyFunc {
	return func(ctx context.Context) error {
		m, err := newMigrator(migrationURL)
		if err != nil {
			return err
		}
		defer m.Close()

		stop := context.AfterFunc(ctx, func() { m.GracefulStop <- true })
		defer stop()

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		if stop() {
			return nil
		}

		// GracefulStop was sent; Up may have returned early
		complete, err := upToDate(m)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		if !complete {
			return fmt.Errorf("migrate up: %w", ctx.Err())
		}
		return nil
	}
}

func upToDate(m *migrate.Migrate) (bool, error) {
	latest, err := latestVersion()
	if err != nil {
		return false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !dirty && version >= latest, nil
}

// latestVersion is the highest version among the embedded migration files.
func latestVersion() (uint, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return 0, err
	}
	var latest uint
	for _, entry := range entries {
		migration, err := source.Parse(entry.Name())
		if err != nil {
			continue
		}
		if migration.Version > latest {
			latest = migration.Version
		}
	}
	return latest, nil
}

func MigrateDown(migrationURL string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migrate down: steps must be > 0")
	}
	m, err := newMigrator(migrationURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func newMigrator(migrationURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, migrationURL)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}
