// Package releases looks up GitHub releases: the latest CAWeb theme
// zipball for enrichment, and newer cawebenv builds for the update banner.
package releases

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/state"
)

const (
	DefaultBaseURL = "https://api.github.com"

	// CacheTTL is how long a looked-up release is reused without asking GitHub.
	CacheTTL = time.Hour
	// RequestTimeout is the timeout for a single GitHub API request.
	RequestTimeout = 5 * time.Second
)

// Release is the part of the GitHub release payload cawebenv uses.
type Release struct {
	TagName    string `json:"tag_name"`
	HTMLURL    string `json:"html_url"`
	ZipballURL string `json:"zipball_url"`
}

// Cache stores looked-up releases between runs. *state.KVStore satisfies it.
type Cache interface {
	Get(ctx context.Context, key state.KVStoreKey) (state.Entry, bool, error)
	Upsert(ctx context.Context, key state.KVStoreKey, value string) error
}

type Client struct {
	http  *resty.Client
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithCache enables the release cache. A nil cache leaves it disabled.
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

func WithToken(token string) ClientOption {
	return func(c *Client) {
		if token != "" {
			c.http.SetAuthToken(token)
		}
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(RequestTimeout).
			SetHeader("Accept", "application/vnd.github+json"),
		ttl: CacheTTL,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cacheData is what gets stored per repository.
type cacheData struct {
	Release   Release   `json:"release"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Latest returns the latest release of owner/repo. A fresh cached release is
// returned without a request; a stale one is returned when the request fails.
func (c *Client) Latest(ctx context.Context, owner, repo string) (Release, error) {
	key := state.ReleaseKey(owner, repo)
	cached, age, cacheErr := c.load(ctx, key)
	if cacheErr == nil && age < c.ttl {
		logs.Debugf("using cached release %s of %s/%s", cached.TagName, owner, repo)
		return *cached, nil
	}

	release, err := c.fetchLatest(ctx, owner, repo)
	if err != nil {
		if cached != nil {
			logs.Debugf("release lookup of %s/%s failed, using cached %s: %v", owner, repo, cached.TagName, err)
			return *cached, nil
		}
		return Release{}, err
	}

	c.save(ctx, key, release)
	return release, nil
}

// LatestZipball resolves the zipball URL of the latest release. ok is false
// when the release carries none.
func (c *Client) LatestZipball(ctx context.Context, owner, repo string) (string, bool, error) {
	release, err := c.Latest(ctx, owner, repo)
	if err != nil {
		return "", false, err
	}
	if release.ZipballURL == "" {
		return "", false, nil
	}
	return release.ZipballURL, true, nil
}

func (c *Client) fetchLatest(ctx context.Context, owner, repo string) (Release, error) {
	var release Release
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"owner": owner, "repo": repo}).
		SetResult(&release).
		Get("/repos/{owner}/{repo}/releases/latest")
	if err != nil {
		return Release{}, fmt.Errorf("failed to fetch latest release of %s/%s: %w", owner, repo, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Release{}, fmt.Errorf("github API returned status %d for %s/%s", resp.StatusCode(), owner, repo)
	}
	return release, nil
}

// load returns the cached release and its age.
func (c *Client) load(ctx context.Context, key state.KVStoreKey) (*Release, time.Duration, error) {
	if c.cache == nil {
		return nil, 0, fmt.Errorf("cache disabled")
	}

	entry, found, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	if !found {
		return nil, 0, fmt.Errorf("cache not found")
	}

	var data cacheData
	if err := json.Unmarshal([]byte(entry.Value), &data); err != nil {
		return nil, 0, err
	}
	return &data.Release, c.now().Sub(data.FetchedAt), nil
}

func (c *Client) save(ctx context.Context, key state.KVStoreKey, release Release) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(cacheData{Release: release, FetchedAt: c.now()})
	if err != nil {
		return
	}
	if err := c.cache.Upsert(ctx, key, string(data)); err != nil {
		logs.Debugf("cannot cache release %s: %v", key, err)
	}
}
