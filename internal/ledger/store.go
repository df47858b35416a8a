package ledger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"worktime/internal/domain"
	"worktime/internal/errors"
	"worktime/internal/logging"
	"worktime/internal/worktime"
)

const (
	fileExtension   = ".md"
	defaultDirPerm  = 0o755
	defaultFilePerm = 0o644
)

// Option configures a Store.
type Option func(*Store)

// WithDirPermissions sets the mode used when creating the ledger directory.
func WithDirPermissions(perm os.FileMode) Option {
	return func(s *Store) {
		if perm != 0 {
			s.dirPerm = perm
		}
	}
}

// Store reads and rewrites the per-month documents under one directory.
// It does not lock: concurrent writers to the same month race and the last
// rename wins.
type Store struct {
	dir     string
	dirPerm os.FileMode
	logger  *slog.Logger
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{
		dir:     dir,
		dirPerm: defaultDirPerm,
		logger:  logging.Logger().With("component", "ledger"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the ledger directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the document path for month.
func (s *Store) Path(month domain.Month) string {
	return filepath.Join(s.dir, month.String()+fileExtension)
}

// Load reads the month's document. A missing document is an empty ledger.
// Rows dated outside the month are dropped and counted as skipped.
func (s *Store) Load(ctx context.Context, month domain.Month) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError("load ledger "+month.String(), err)
	}

	ledger := New(month)

	f, err := os.Open(s.Path(month))
	if err != nil {
		if os.IsNotExist(err) {
			return ledger, nil
		}
		return nil, errors.NewStorageError("open ledger "+s.Path(month), err)
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, errors.NewStorageError("read ledger "+s.Path(month), err)
	}

	ledger.Skipped = parsed.Skipped
	for date, record := range parsed.Records {
		if !month.Contains(date) {
			ledger.Skipped++
			continue
		}
		ledger.Records[date] = record
	}

	if ledger.Skipped > 0 {
		s.logger.Debug("dropped unparseable ledger lines", "month", month.String(), "skipped", ledger.Skipped)
	}
	return ledger, nil
}

// Upsert records the calculation for date in its month's document and
// returns the document path. The whole document is rebuilt from the parsed
// records on every call.
func (s *Store) Upsert(ctx context.Context, date domain.Date, clockIn, clockOut domain.TimeOfDay, result worktime.Result) (string, error) {
	return s.UpsertRecord(ctx, result.Record(date, clockIn, clockOut))
}

// UpsertRecord stores an already computed record.
func (s *Store) UpsertRecord(ctx context.Context, record domain.DayRecord) (string, error) {
	if err := os.MkdirAll(s.dir, s.dirPerm); err != nil {
		return "", errors.NewStorageError("create ledger directory "+s.dir, err)
	}

	month := record.Date.Month()
	ledger, err := s.Load(ctx, month)
	if err != nil {
		return "", err
	}
	ledger.Upsert(record)

	path := s.Path(month)
	if err := writeFileAtomic(path, []byte(Render(month, ledger.Records)), defaultFilePerm); err != nil {
		return "", errors.NewStorageError("write ledger "+path, err)
	}

	s.logger.Debug("ledger written", "path", path, "date", record.Date.String(), "days", len(ledger.Records))
	return path, nil
}

// writeFileAtomic writes to a temporary file in the target directory and
// renames it over path, so readers never observe a partial document.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir, name := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
