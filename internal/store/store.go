package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the SQLite handle behind the row and event repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open connects to the SQLite database at dsn, applies pragmas and
// migrates the schema. dsn is a file path or any modernc sqlite URI.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	drv := entsql.OpenDB(dialect.SQLite, db)

	fail := func(step string, err error) (*Store, error) {
		drv.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}
	if err := applyPragmas(ctx, db); err != nil {
		return fail("apply pragmas", err)
	}
	if err := migrate(ctx, drv); err != nil {
		return fail("auto-migrate", err)
	}
	seq, err := newSequenceCounter(ctx, db)
	if err != nil {
		return fail("sequence", err)
	}
	return &Store{db: db, drv: drv, seq: seq}, nil
}

// MemoryDSN names a shared in-memory database. Stores opened with the
// same name see the same data until the last one closes.
func MemoryDSN(name string) string {
	return "file:" + url.PathEscape(name) + "?mode=memory&cache=shared"
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// DB exposes the handle for ad-hoc queries in tests and tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// RowRepo returns a RowRepo backed by this store.
func (s *Store) RowRepo() RowRepo {
	return &rowRepo{db: s.db, seq: s.seq}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath returns $SEMESTRA_DB, else semestra.db under
// $XDG_DATA_HOME/semestra (~/.local/share/semestra when unset). The
// parent directory is created.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SEMESTRA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "semestra", "semestra.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
