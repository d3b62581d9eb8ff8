package database

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "protest-tracker/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaInitializer_RunsOnceUnderConcurrency(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	si := NewSchemaInitializer(func(ctx context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, time.Second)

	const callers = 50
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- si.EnsureReady(context.Background())
		}()
	}

	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, si.EnsureReady(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestSchemaInitializer_CachesFailure(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("connection refused")
	si := NewSchemaInitializer(func(ctx context.Context) error {
		calls.Add(1)
		return boom
	}, time.Second)

	for i := 0; i < 3; i++ {
		err := si.EnsureReady(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, apperrors.ErrSchemaNotReady)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestSchemaInitializer_CallerContext(t *testing.T) {
	release := make(chan struct{})
	si := NewSchemaInitializer(func(ctx context.Context) error {
		<-release
		return nil
	}, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, si.EnsureReady(ctx), context.DeadlineExceeded)

	// the shared work is unaffected by the impatient caller
	close(release)
	assert.NoError(t, si.EnsureReady(context.Background()))
}

func TestSchemaInitializer_WorkTimeout(t *testing.T) {
	si := NewSchemaInitializer(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)

	err := si.EnsureReady(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/000001_create_organizers.up.sql",
		"migrations/000002_create_protests.up.sql",
	}, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "IF NOT EXISTS")
	}
}

func TestLatestVersion(t *testing.T) {
	latest, err := latestVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), latest)
}
