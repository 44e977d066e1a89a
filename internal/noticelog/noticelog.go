package noticelog

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/tallyledger/tally/pkg/events"
	"github.com/tallyledger/tally/pkg/loggers"
)

// Store is an append-only audit log of emitted notices, kept in a local
// sqlite database beside the ledger.
type Store struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

// emitted is stored as unix milliseconds to keep reads driver-agnostic
const schema = `
CREATE TABLE IF NOT EXISTS notices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	emitted INTEGER NOT NULL,
	caller TEXT NOT NULL,
	text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notices_caller ON notices(caller);
`

func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create audit dir %s", dir)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audit db")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate audit db")
	}
	return &Store{
		db:     db,
		logger: loggers.Logger(loggers.Audit),
	}, nil
}

// Append records one notice. Auditing is best effort: a write failure is
// logged and swallowed so it can never fail the operation that emitted the
// notice.
func (s *Store) Append(n events.Notice) {
	_, err := s.db.Exec(
		`INSERT INTO notices (emitted, caller, text) VALUES (?, ?, ?)`,
		n.Emitted.UnixMilli(), n.Caller.String(), n.Text,
	)
	if err != nil {
		s.logger.WithError(err).Warn("failed to append notice")
	}
}

// Record is one persisted notice.
type Record struct {
	ID      int64
	Emitted time.Time
	Caller  string
	Text    string
}

// List returns the most recent notices, newest first.
func (s *Store) List(limit int) ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, emitted, caller, text FROM notices ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query notices")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			r  Record
			ms int64
		)
		if err := rows.Scan(&r.ID, &ms, &r.Caller, &r.Text); err != nil {
			return nil, errors.Wrap(err, "failed to scan notice")
		}
		r.Emitted = time.UnixMilli(ms).UTC()
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
