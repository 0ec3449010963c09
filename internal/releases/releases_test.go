package releases

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CA-CODE-Works/cawebenv/internal/state"
)

type memCache struct {
	mu      sync.Mutex
	entries map[state.KVStoreKey]string
}

func newMemCache() *memCache {
	return &memCache{entries: map[state.KVStoreKey]string{}}
}

func (m *memCache) Get(_ context.Context, key state.KVStoreKey) (state.Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return state.Entry{Key: key, Value: v}, ok, nil
}

func (m *memCache) Upsert(_ context.Context, key state.KVStoreKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func releaseServer(t *testing.T, status int, body string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if r.URL.Path != "/repos/CA-CODE-Works/CAWeb/releases/latest" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLatestZipball(t *testing.T) {
	t.Parallel()

	srv := releaseServer(t, http.StatusOK,
		`{"tag_name":"1.9.3","zipball_url":"https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/1.9.3"}`, nil)
	c := NewClient(WithBaseURL(srv.URL))

	url, ok, err := c.LatestZipball(context.Background(), "CA-CODE-Works", "CAWeb")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/1.9.3", url)
}

func TestLatestZipballMissing(t *testing.T) {
	t.Parallel()

	srv := releaseServer(t, http.StatusOK, `{"tag_name":"1.9.3"}`, nil)
	c := NewClient(WithBaseURL(srv.URL))

	url, ok, err := c.LatestZipball(context.Background(), "CA-CODE-Works", "CAWeb")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, url)
}

func TestLatestZipballHTTPError(t *testing.T) {
	t.Parallel()

	srv := releaseServer(t, http.StatusForbidden, `{"message":"API rate limit exceeded"}`, nil)
	c := NewClient(WithBaseURL(srv.URL))

	_, _, err := c.LatestZipball(context.Background(), "CA-CODE-Works", "CAWeb")
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}

func TestLatestUsesFreshCache(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"2.0.0","zipball_url":"z"}`, &hits)
	c := NewClient(WithBaseURL(srv.URL), WithCache(newMemCache()))

	for i := 0; i < 3; i++ {
		rel, err := c.Latest(context.Background(), "CA-CODE-Works", "CAWeb")
		require.NoError(t, err)
		require.Equal(t, "2.0.0", rel.TagName)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLatestFallsBackToStaleCache(t *testing.T) {
	t.Parallel()

	cache := newMemCache()
	ok := releaseServer(t, http.StatusOK, `{"tag_name":"2.0.0","zipball_url":"z"}`, nil)
	c := NewClient(WithBaseURL(ok.URL), WithCache(cache))
	_, err := c.Latest(context.Background(), "CA-CODE-Works", "CAWeb")
	require.NoError(t, err)

	failing := releaseServer(t, http.StatusBadGateway, ``, nil)
	c = NewClient(WithBaseURL(failing.URL), WithCache(cache))
	c.now = func() time.Time { return time.Now().Add(2 * CacheTTL) }

	rel, err := c.Latest(context.Background(), "CA-CODE-Works", "CAWeb")
	require.NoError(t, err)
	require.Equal(t, "2.0.0", rel.TagName)
}

func TestCheckUpdate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/CA-CODE-Works/cawebenv/releases/latest", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0","html_url":"https://github.com/CA-CODE-Works/cawebenv/releases/v1.4.0"}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(WithBaseURL(srv.URL))

	require.Nil(t, c.CheckUpdate(context.Background(), "local"))
	require.Nil(t, c.CheckUpdate(context.Background(), "compiled-abc1234"))

	u := c.CheckUpdate(context.Background(), "v1.3.2")
	require.NotNil(t, u)
	require.True(t, u.UpdateAvailable)

	var buf bytes.Buffer
	PrintUpdateBanner(&buf, u)
	require.Contains(t, buf.String(), "v1.3.2 -> v1.4.0")

	u = c.CheckUpdate(context.Background(), "v1.4.0")
	require.False(t, u.UpdateAvailable)
	buf.Reset()
	PrintUpdateBanner(&buf, u)
	require.Empty(t, buf.String())
}
