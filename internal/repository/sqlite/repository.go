package sqlite

import (
	"context"
	"database/sql"
	"time"

	"worktime/internal/errors"
	"worktime/internal/logging"
	"worktime/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DefaultQueryTimeout bounds each statement when no timeout is configured.
const DefaultQueryTimeout = 10 * time.Second

// Repository defines the interface for the pending clock-in slot
type Repository interface {
	// PeekPending returns the open clock-in, or a not_found error when there is none.
	PeekPending(ctx context.Context) (*PendingClockIn, error)
	// SetPending stores p and returns the record it replaced, if any.
	SetPending(ctx context.Context, p *PendingClockIn) (*PendingClockIn, error)
	// ClearPending removes the open clock-in. Clearing an empty slot is not an error.
	ClearPending(ctx context.Context) error

	Close() error
}

// Option configures a SQLiteRepository.
type Option func(*SQLiteRepository)

// WithQueryTimeout sets the per-statement timeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) {
		if d > 0 {
			r.queryTimeout = d
		}
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// New creates a new SQLite repository instance. dbPath may be ":memory:".
func New(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// One connection keeps an in-memory database alive and shared.
	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{db: db, queryTimeout: DefaultQueryTimeout}
	for _, opt := range opts {
		opt(r)
	}

	ctx, cancel := r.withTimeout(context.Background())
	defer cancel()
	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	logging.Debugf("opened pending clock-in store at %s", dbPath)
	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

const selectPending = `
	SELECT id, clock_in, work_date, recorded_at
	FROM pending_clock_in
	WHERE id = ?`

// PeekPending retrieves the pending clock-in
func (r *SQLiteRepository) PeekPending(ctx context.Context) (*PendingClockIn, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return QuerySingle(ctx, r.db, selectPending, ScanPendingClockIn, "pending clock-in", "", pendingSlotID)
}

// SetPending upserts the pending clock-in
func (r *SQLiteRepository) SetPending(ctx context.Context, p *PendingClockIn) (*PendingClockIn, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	replaced, err := QuerySingle(ctx, tx, selectPending, ScanPendingClockIn, "pending clock-in", "", pendingSlotID)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}
		replaced = nil
	}

	query := `
	INSERT INTO pending_clock_in (id, clock_in, work_date, recorded_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		clock_in = excluded.clock_in,
		work_date = excluded.work_date,
		recorded_at = excluded.recorded_at`

	err = Execute(ctx, tx, "store pending clock-in", query, pendingSlotID, p.ClockIn, p.WorkDate, FormatTimeForDB(p.RecordedAt))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, HandleDatabaseError("commit pending clock-in", err)
	}

	p.ID = pendingSlotID
	return replaced, nil
}

// ClearPending deletes the pending clock-in
func (r *SQLiteRepository) ClearPending(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return Execute(ctx, r.db, "clear pending clock-in", `DELETE FROM pending_clock_in WHERE id = ?`, pendingSlotID)
}
