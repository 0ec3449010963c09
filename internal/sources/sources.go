// Package sources fetches the theme sources enrichment attached to each
// environment into the wp-env work directory.
package sources

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/guardrails"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/shell"
)

// KeyAccessToken authenticates downloads and clones of private repositories.
const KeyAccessToken = "CAWEB_ACCESS_TOKEN"

const DownloadTimeout = 5 * time.Minute

type Downloader struct {
	// root bounds every destination when set.
	root string
	http *resty.Client
	fs   afero.Fs
	git  shell.Runner
}

type downloaderOption func(*Downloader)

func WithFs(fs afero.Fs) downloaderOption {
	return func(d *Downloader) {
		if fs != nil {
			d.fs = fs
		}
	}
}

func WithHTTPClient(c *resty.Client) downloaderOption {
	return func(d *Downloader) {
		if c != nil {
			d.http = c
		}
	}
}

// WithRoot refuses destinations outside dir, the wp-env work directory.
func WithRoot(dir string) downloaderOption {
	return func(d *Downloader) {
		d.root = dir
	}
}

func NewDownloader(git shell.Runner, opts ...downloaderOption) *Downloader {
	d := &Downloader{
		http: resty.New().SetTimeout(DownloadTimeout),
		fs:   afero.NewOsFs(),
		git:  git,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DownloadAll fetches every theme source of every environment concurrently.
func (d *Downloader) DownloadAll(ctx context.Context, cfg *envconfig.RootConfig) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range envconfig.EnvNames {
		ec := cfg.Env(name)
		token, _ := ec.Settings.String(KeyAccessToken)
		for _, src := range ec.ThemeSources {
			g.Go(func() error {
				if err := d.Download(gctx, src, token); err != nil {
					return fmt.Errorf("%s: %s: %w", name, src.Basename, err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

// Download fetches one source. Local sources are already in place.
func (d *Downloader) Download(ctx context.Context, src envconfig.ThemeSource, token string) error {
	switch src.Kind {
	case envconfig.SourceZip:
		return d.downloadZip(ctx, src, token)
	case envconfig.SourceGit:
		return d.clone(ctx, src, token)
	case envconfig.SourceLocal:
		return nil
	default:
		return fmt.Errorf("unknown source type %q", src.Kind)
	}
}

func (d *Downloader) downloadZip(ctx context.Context, src envconfig.ThemeSource, token string) error {
	if src.Path == "" {
		return fmt.Errorf("zip source has no path")
	}
	logs.Debugf("downloading %s into %s", src.Basename, src.Path)

	req := d.http.R().SetContext(ctx)
	if token != "" && isGitHub(src.URL) {
		req.SetAuthToken(token)
	}
	resp, err := req.Get(src.URL)
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	if err := guardrails.CheckDestination(d.root, src.Path); err != nil {
		return err
	}
	if err := d.fs.RemoveAll(src.Path); err != nil {
		return fmt.Errorf("clear %s: %w", src.Path, err)
	}
	return extract(d.fs, zr, src.Path)
}

// extract unpacks zr into dest, dropping the single top-level directory
// GitHub zipballs and theme archives wrap their content in.
func extract(fs afero.Fs, zr *zip.Reader, dest string) error {
	root := commonRoot(zr.File)

	for _, f := range zr.File {
		name := strings.TrimPrefix(f.Name, root)
		if name == "" {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(name))
		if !guardrails.IsUnderPrefix(dest, target) {
			return fmt.Errorf("archive entry %q escapes %s", f.Name, dest)
		}

		if f.FileInfo().IsDir() {
			if err := fs.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := writeEntry(fs, f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(fs afero.Fs, f *zip.File, target string) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return out.Close()
}

// commonRoot returns "dir/" when every entry lives under the same
// top-level directory, "" otherwise.
func commonRoot(files []*zip.File) string {
	root := ""
	for _, f := range files {
		first, _, found := strings.Cut(f.Name, "/")
		if !found {
			return ""
		}
		switch root {
		case "":
			root = first + "/"
		case first + "/":
		default:
			return ""
		}
	}
	return root
}

func (d *Downloader) clone(ctx context.Context, src envconfig.ThemeSource, token string) error {
	if src.ClonePath == "" || src.Ref == "" {
		return fmt.Errorf("git source needs a clone path and a ref")
	}
	if strings.HasPrefix(src.Ref, "-") {
		return fmt.Errorf("git ref %q: must not start with '-'", src.Ref)
	}
	if err := guardrails.CheckDestination(d.root, src.ClonePath); err != nil {
		return err
	}
	repo, err := cloneURL(src.URL, token)
	if err != nil {
		return err
	}

	exists, _ := afero.DirExists(d.fs, filepath.Join(src.ClonePath, ".git"))
	var cmds []shell.Command
	if exists {
		logs.Debugf("updating %s at %s", src.Basename, src.Ref)
		cmds = []shell.Command{
			{Name: "git", Args: []string{"-C", src.ClonePath, "fetch", "--depth", "1", "--end-of-options", repo, src.Ref}},
			{Name: "git", Args: []string{"-C", src.ClonePath, "checkout", "--force", "FETCH_HEAD"}},
		}
	} else {
		logs.Debugf("cloning %s at %s", src.Basename, src.Ref)
		if err := d.fs.RemoveAll(src.ClonePath); err != nil {
			return fmt.Errorf("clear %s: %w", src.ClonePath, err)
		}
		cmds = []shell.Command{
			{Name: "git", Args: []string{"clone", "--depth", "1", "--branch=" + src.Ref, "--end-of-options", repo, src.ClonePath}},
		}
	}

	for _, cmd := range cmds {
		if token != "" {
			cmd.Sensitive = []string{token}
		}
		if _, err := d.git.Run(ctx, cmd); err != nil {
			return fmt.Errorf("git: %w", err)
		}
	}
	return nil
}

// cloneURL drops the query enrichment appends and embeds token when given.
func cloneURL(raw, token string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", raw, err)
	}
	u.RawQuery = ""
	u.Path = strings.TrimSuffix(path.Clean(u.Path), "/") + ".git"
	if token != "" {
		u.User = url.UserPassword("x-access-token", token)
	}
	return u.String(), nil
}

func isGitHub(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host == "github.com" || strings.HasSuffix(u.Host, ".github.com")
}
