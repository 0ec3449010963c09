package state

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func openTestStore(t *testing.T, clock *fakeClock) *KVStore {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db, err := Open(ctx, Config{Path: filepath.Join(t.TempDir(), "state.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var opts []kvStoreOption
	if clock != nil {
		opts = append(opts, WithClock(clock.Now))
	}
	kv, err := NewKVStore(db, opts...)
	if err != nil {
		t.Fatalf("NewKVStore: %v", err)
	}
	return kv
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenMigratesOnce(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := Open(ctx, Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	kv, _ := NewKVStore(db)
	if err := kv.Upsert(ctx, ChecksumKey("/work"), "aaa"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = Open(ctx, Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var version int
	if err := db.sql.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		t.Fatalf("user_version: %v", err)
	}
	if version != len(migrations) {
		t.Fatalf("user_version = %d, want %d", version, len(migrations))
	}
	kv, _ = NewKVStore(db)
	if _, found, err := kv.Get(ctx, ChecksumKey("/work")); err != nil || !found {
		t.Fatalf("entry lost across reopen: found %v, err %v", found, err)
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	cases := map[KVStoreKey]struct {
		ns   Namespace
		name string
	}{
		ChecksumKey("/home/dev/.wp-env/abc"): {NamespaceChecksum, "/home/dev/.wp-env/abc"},
		ReleaseKey("CA-CODE-Works", "CAWeb"): {NamespaceRelease, "CA-CODE-Works/CAWeb"},
		NewKey(NamespaceRelease, "a:b"):      {NamespaceRelease, "a:b"},
		KVStoreKey("no-namespace"):           {"", "no-namespace"},
	}
	for key, want := range cases {
		ns, name := key.split()
		if ns != want.ns || name != want.name {
			t.Fatalf("%s split to (%s, %s), want (%s, %s)", key, ns, name, want.ns, want.name)
		}
	}
}

func TestKVStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := openTestStore(t, nil)
	key := ReleaseKey("CA-CODE-Works", "CAWeb")

	if _, found, err := kv.Get(ctx, key); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}

	if err := kv.Upsert(ctx, key, "v1"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := kv.Upsert(ctx, key, "v2"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	entry, found, err := kv.Get(ctx, key)
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if entry.Value != "v2" || entry.Key != key {
		t.Fatalf("entry = %+v, want v2 under %s", entry, key)
	}

	// same name in another namespace is another entry
	if _, found, _ := kv.Get(ctx, NewKey(NamespaceChecksum, "CA-CODE-Works/CAWeb")); found {
		t.Fatal("namespaces must not share entries")
	}

	if err := kv.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := kv.Get(ctx, key); found {
		t.Fatal("entry still present after Delete")
	}
}

func TestKVStorePruneUnused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	kv := openTestStore(t, clock)

	for _, key := range []KVStoreKey{ChecksumKey("/old"), ChecksumKey("/used"), ReleaseKey("o", "r")} {
		if err := kv.Upsert(ctx, key, "x"); err != nil {
			t.Fatalf("Upsert %s: %v", key, err)
		}
	}

	clock.Advance(Retention - time.Hour)
	if _, _, err := kv.Get(ctx, ChecksumKey("/used")); err != nil {
		t.Fatalf("Get: %v", err)
	}
	clock.Advance(2 * time.Hour)

	removed, err := kv.PruneUnused(ctx)
	if err != nil {
		t.Fatalf("PruneUnused: %v", err)
	}
	if removed[NamespaceChecksum] != 1 || removed[NamespaceRelease] != 1 {
		t.Fatalf("removed = %v, want one checksum and one release", removed)
	}
	if _, found, _ := kv.Get(ctx, ChecksumKey("/used")); !found {
		t.Fatal("recently read entry must survive")
	}
}

func TestChecksumChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := openTestStore(t, nil)
	key := ChecksumKey("/home/dev/.wp-env/abc")

	steps := []struct {
		sum  string
		want bool
	}{
		{"aaa", true},
		{"aaa", false},
		{"bbb", true},
		{"bbb", false},
	}
	for i, step := range steps {
		changed, err := kv.ChecksumChanged(ctx, key, step.sum)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if changed != step.want {
			t.Fatalf("step %d: changed = %v, want %v", i, changed, step.want)
		}
	}

	if err := kv.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if changed, _ := kv.ChecksumChanged(ctx, key, "bbb"); !changed {
		t.Fatal("a reset checksum must count as changed")
	}
}
