package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Namespace groups the entries of one concern.
type Namespace string

const (
	// NamespaceChecksum holds the config checksum of each wp-env work
	// directory.
	NamespaceChecksum Namespace = "checksum"
	// NamespaceRelease caches latest-release lookups per repository.
	NamespaceRelease Namespace = "release"
)

// Retention is how long an entry survives PruneUnused without being read or
// written.
const Retention = 30 * 24 * time.Hour

// KVStoreKey is "<namespace>:<name>".
type KVStoreKey string

func NewKey(ns Namespace, name string) KVStoreKey {
	return KVStoreKey(string(ns) + ":" + name)
}

// ChecksumKey names the stored config checksum of a work directory.
func ChecksumKey(workDir string) KVStoreKey {
	return NewKey(NamespaceChecksum, workDir)
}

// ReleaseKey names the cached latest release of owner/repo.
func ReleaseKey(owner, repo string) KVStoreKey {
	return NewKey(NamespaceRelease, owner+"/"+repo)
}

func (k KVStoreKey) split() (Namespace, string) {
	ns, name, ok := strings.Cut(string(k), ":")
	if !ok {
		return "", string(k)
	}
	return Namespace(ns), name
}

type Entry struct {
	Key       KVStoreKey
	Value     string
	CreatedAt time.Time
	LastUsed  time.Time
}

// KVStore is the namespaced key/value table of the state database. Reads and
// writes refresh last_used; PruneUnused drops what Retention left behind.
type KVStore struct {
	db  *DB
	now func() time.Time
}

type kvStoreOption func(*KVStore)

// WithClock replaces time.Now for last_used bookkeeping.
func WithClock(now func() time.Time) kvStoreOption {
	return func(s *KVStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewKVStore(database *DB, opts ...kvStoreOption) (*KVStore, error) {
	if database == nil {
		return nil, fmt.Errorf("state: nil database")
	}
	s := &KVStore{db: database, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var (
	defaultStoreMu sync.Mutex
	defaultStore   *KVStore
)

// DefaultKVStore returns the store of the host state database.
func DefaultKVStore(ctx context.Context) (*KVStore, error) {
	defaultStoreMu.Lock()
	defer defaultStoreMu.Unlock()

	if defaultStore != nil {
		return defaultStore, nil
	}
	db, err := OpenDefault(ctx)
	if err != nil {
		return nil, err
	}
	s, err := NewKVStore(db)
	if err != nil {
		return nil, err
	}
	defaultStore = s
	return s, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get returns the entry under key and marks it used.
func (s *KVStore) Get(ctx context.Context, key KVStoreKey) (Entry, bool, error) {
	return s.get(ctx, s.db.sql, key)
}

func (s *KVStore) get(ctx context.Context, q querier, key KVStoreKey) (Entry, bool, error) {
	const stmt = `
UPDATE entries SET last_used = ?
WHERE namespace = ? AND name = ?
RETURNING value, created_at, last_used`

	ns, name := key.split()
	var created, used int64
	entry := Entry{Key: key}
	err := q.QueryRowContext(ctx, stmt, s.now().Unix(), ns, name).Scan(&entry.Value, &created, &used)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("state: get %s: %w", key, err)
	}
	entry.CreatedAt = time.Unix(created, 0).UTC()
	entry.LastUsed = time.Unix(used, 0).UTC()
	return entry, true, nil
}

// Upsert stores value under key.
func (s *KVStore) Upsert(ctx context.Context, key KVStoreKey, value string) error {
	return s.upsert(ctx, s.db.sql, key, value)
}

func (s *KVStore) upsert(ctx context.Context, q querier, key KVStoreKey, value string) error {
	const stmt = `
INSERT INTO entries (namespace, name, value, created_at, last_used)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (namespace, name) DO UPDATE SET
	value = excluded.value,
	last_used = excluded.last_used`

	ns, name := key.split()
	now := s.now().Unix()
	if _, err := q.ExecContext(ctx, stmt, ns, name, value, now, now); err != nil {
		return fmt.Errorf("state: store %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key KVStoreKey) error {
	ns, name := key.split()
	if _, err := s.db.sql.ExecContext(ctx, `DELETE FROM entries WHERE namespace = ? AND name = ?`, ns, name); err != nil {
		return fmt.Errorf("state: delete %s: %w", key, err)
	}
	return nil
}

// ChecksumChanged stores checksum under key and reports whether it differs
// from the stored one. A key seen for the first time counts as changed.
func (s *KVStore) ChecksumChanged(ctx context.Context, key KVStoreKey, checksum string) (bool, error) {
	changed := false
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		entry, found, err := s.get(ctx, tx, key)
		if err != nil {
			return err
		}
		if found && entry.Value == checksum {
			return nil
		}
		changed = true
		return s.upsert(ctx, tx, key, checksum)
	})
	return changed, err
}

// PruneUnused removes entries unused for longer than Retention and returns
// how many went, per namespace.
func (s *KVStore) PruneUnused(ctx context.Context) (map[Namespace]int64, error) {
	const stmt = `DELETE FROM entries WHERE last_used < ? RETURNING namespace`

	rows, err := s.db.sql.QueryContext(ctx, stmt, s.now().Add(-Retention).Unix())
	if err != nil {
		return nil, fmt.Errorf("state: prune: %w", err)
	}
	defer rows.Close()

	removed := map[Namespace]int64{}
	for rows.Next() {
		var ns Namespace
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("state: prune: %w", err)
		}
		removed[ns]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("state: prune: %w", err)
	}
	return removed, nil
}
