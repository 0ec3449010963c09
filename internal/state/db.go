// Package state keeps what cawebenv remembers between runs in a small
// sqlite database under the wp-env home.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	hostappconfig "github.com/CA-CODE-Works/cawebenv/internal/apps/cawebenv/config"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	_ "modernc.org/sqlite"
)

type Config struct {
	// Path of the sqlite file, e.g. ~/.wp-env/cawebenv/state.db.
	Path string
	// BusyTimeout is how long a writer waits on a locked database.
	// Defaults to 5s.
	BusyTimeout time.Duration
}

// migrations are applied in order; PRAGMA user_version records how many
// already ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entries (
	namespace  TEXT    NOT NULL,
	name       TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	last_used  INTEGER NOT NULL,
	PRIMARY KEY (namespace, name)
)`,
	`CREATE INDEX IF NOT EXISTS entries_last_used ON entries (last_used)`,
}

type DB struct {
	sql *sql.DB
}

var (
	defaultMu sync.Mutex
	defaultDB *DB
)

// OpenDefault opens the state database of this host once per process.
func OpenDefault(ctx context.Context) (*DB, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultDB != nil {
		return defaultDB, nil
	}
	path := hostappconfig.StateDBFile()
	logs.Debugf("opening state database %s", path)
	db, err := Open(ctx, Config{Path: path})
	if err != nil {
		return nil, err
	}
	defaultDB = db
	return db, nil
}

// Open opens or creates the database in WAL mode and brings its schema up to
// date. The database is closed when ctx ends.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("state: database path is required")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("state: create dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		url.PathEscape(cfg.Path), cfg.BusyTimeout.Milliseconds())
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("state: open %s: %w", cfg.Path, err)
	}
	// one connection: sqlite serializes writers anyway
	sqlDB.SetMaxOpenConns(1)

	db := &DB{sql: sqlDB}
	if err := db.migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := sqlDB.Close(); err != nil {
			logs.Errorf("state: close: %v", err)
		}
	}()
	return db, nil
}

func (d *DB) migrate(ctx context.Context) error {
	var version int
	if err := d.sql.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("state: read schema version: %w", err)
	}
	if version >= len(migrations) {
		return nil
	}

	return d.WithTx(ctx, func(tx *sql.Tx) error {
		for i := version; i < len(migrations); i++ {
			if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
				return fmt.Errorf("state: migration %d: %w", i+1, err)
			}
		}
		// PRAGMA takes no bind parameters
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, len(migrations))); err != nil {
			return fmt.Errorf("state: store schema version: %w", err)
		}
		logs.Debugf("state schema migrated from v%d to v%d", version, len(migrations))
		return nil
	})
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// WithTx runs fn in a transaction, committing when it returns nil.
func (d *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("state: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("state: commit: %w", err)
	}
	return nil
}
