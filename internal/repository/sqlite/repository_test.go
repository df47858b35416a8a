package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktime/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPeekPending_Empty(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.PeekPending(context.Background())
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "pending clock-in not found")
}

func TestSetPending_ThenPeek(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	recordedAt := time.Date(2026, 10, 17, 8, 5, 0, 0, time.UTC)

	replaced, err := repo.SetPending(ctx, &PendingClockIn{ClockIn: "08:05", WorkDate: "2026-10-17", RecordedAt: recordedAt})
	require.NoError(t, err)
	assert.Nil(t, replaced)

	p, err := repo.PeekPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "08:05", p.ClockIn)
	assert.Equal(t, "2026-10-17", p.WorkDate)
	assert.True(t, recordedAt.Equal(p.RecordedAt))
}

func TestSetPending_ReturnsReplacedRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.SetPending(ctx, &PendingClockIn{ClockIn: "08:05", WorkDate: "2026-10-17", RecordedAt: time.Now()})
	require.NoError(t, err)

	replaced, err := repo.SetPending(ctx, &PendingClockIn{ClockIn: "08:40", WorkDate: "2026-10-17", RecordedAt: time.Now()})
	require.NoError(t, err)
	require.NotNil(t, replaced)
	assert.Equal(t, "08:05", replaced.ClockIn)

	p, err := repo.PeekPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, "08:40", p.ClockIn)
}

func TestClearPending(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// Clearing an empty slot is fine
	require.NoError(t, repo.ClearPending(ctx))

	_, err := repo.SetPending(ctx, &PendingClockIn{ClockIn: "08:05", WorkDate: "2026-10-17", RecordedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.ClearPending(ctx))
	require.NoError(t, repo.ClearPending(ctx))

	_, err = repo.PeekPending(ctx)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestPendingSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "wt.db")
	ctx := context.Background()

	repo, err := New(dbPath, WithQueryTimeout(time.Second))
	require.NoError(t, err)
	_, err = repo.SetPending(ctx, &PendingClockIn{ClockIn: "09:15", WorkDate: "2026-10-16", RecordedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	p, err := reopened.PeekPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:15", p.ClockIn)
	assert.Equal(t, "2026-10-16", p.WorkDate)
}

func TestWithQueryTimeout(t *testing.T) {
	r := &SQLiteRepository{queryTimeout: DefaultQueryTimeout}
	WithQueryTimeout(0)(r)
	assert.Equal(t, DefaultQueryTimeout, r.queryTimeout)

	WithQueryTimeout(2 * time.Second)(r)
	assert.Equal(t, 2*time.Second, r.queryTimeout)
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "dir", "wt.db"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
}
