package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookvault/bookvault/pkg/config"
	"github.com/bookvault/bookvault/pkg/migrations"
	"github.com/bookvault/bookvault/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// newTestDB opens a migrated database backed by a temp file, so that lock
// contention would surface the way it does in production.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	cfg := config.NewForTest()
	cfg.DatabaseFilePath = filepath.Join(t.TempDir(), "test.db")
	cfg.DatabaseBusyTimeout = time.Millisecond

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	return db
}

// TestConcurrentBookWrites verifies that concurrent inserts complete without
// "database is locked" errors.
func TestConcurrentBookWrites(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	const numWorkers = 20
	const writesPerWorker = 25

	var wg sync.WaitGroup
	var successCount atomic.Int32
	errs := make(chan error, numWorkers*writesPerWorker)

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := 0; i < writesPerWorker; i++ {
				now := time.Now()
				book := &models.Book{
					CreatedAt:   now,
					UpdatedAt:   now,
					Title:       fmt.Sprintf("Worker %d Book %d", workerID, i),
					Author:      "Anonymous",
					PublishedAt: "2000-01-01",
					IsActive:    true,
				}
				if _, err := db.NewInsert().Model(book).Exec(ctx); err != nil {
					errs <- fmt.Errorf("worker %d write %d: %w", workerID, i, err)
					continue
				}
				successCount.Add(1)
			}
		}(w)
	}

	wg.Wait()
	close(errs)

	var allErrors []error
	for err := range errs {
		allErrors = append(allErrors, err)
	}

	assert.Empty(t, allErrors, "concurrent writes should not produce errors")
	assert.Equal(t, int32(numWorkers*writesPerWorker), successCount.Load())

	count, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, numWorkers*writesPerWorker, count)
}

// TestConcurrentSoftDeletesAndReads verifies that soft deletes and scoped
// reads can interleave.
func TestConcurrentSoftDeletesAndReads(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	ctx := context.Background()

	const numBooks = 100
	for i := 0; i < numBooks; i++ {
		now := time.Now()
		book := &models.Book{
			CreatedAt:   now,
			UpdatedAt:   now,
			Title:       fmt.Sprintf("Book %d", i),
			Author:      "Anonymous",
			PublishedAt: "2000-01-01",
			IsActive:    true,
		}
		_, err := db.NewInsert().Model(book).Exec(ctx)
		require.NoError(t, err)
	}

	const numWorkers = 4
	var wg sync.WaitGroup
	var writeErrors atomic.Int32
	var readErrors atomic.Int32

	for w := 0; w < numWorkers; w++ {
		// Each writer trashes its own slice of ids.
		wg.Add(2)
		go func(workerID int) {
			defer wg.Done()
			for id := workerID + 1; id <= numBooks; id += numWorkers {
				_, err := db.NewUpdate().
					Model((*models.Book)(nil)).
					Set("deleted_at = ?", time.Now()).
					Where("id = ?", id).
					Where("deleted_at IS NULL").
					Exec(ctx)
				if err != nil {
					writeErrors.Add(1)
				}
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < numBooks/numWorkers; i++ {
				_, err := db.NewSelect().Model((*models.Book)(nil)).Where("deleted_at IS NULL").Count(ctx)
				if err != nil {
					readErrors.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(0), writeErrors.Load(), "no write errors should occur")
	assert.Equal(t, int32(0), readErrors.Load(), "no read errors should occur")

	trashed, err := db.NewSelect().Model((*models.Book)(nil)).Where("deleted_at IS NOT NULL").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, numBooks, trashed)
}

func TestWithLogging(t *testing.T) {
	t.Parallel()

	ctx := WithLogging(context.Background())
	enabled, _ := ctx.Value(ctxKey).(bool)
	assert.True(t, enabled)

	enabled, _ = context.Background().Value(ctxKey).(bool)
	assert.False(t, enabled)
}
