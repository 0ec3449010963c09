package envconfig

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/versions"
)

const (
	CAWebTheme = "CAWeb"

	diviAPIURL       = "https://www.elegantthemes.com/api/api_downloads.php?api_update=1&theme=Divi&api_key=%s&username=%s&env=%s"
	cawebZipballURL  = "https://api.github.com/repos/%s/CAWeb/zipball/%s"
	cawebRepoURL     = "https://github.com/%s/CAWeb/"
	defaultGitHubOrg = "CA-CODE-Works"
)

//go:generate mockgen -source=themes.go -destination=mocks/release_fetcher_mock.go -package=mocks

// ReleaseFetcher resolves the zipball URL of a repository's latest release.
// ok is false when the release carries no zipball URL.
type ReleaseFetcher interface {
	LatestZipball(ctx context.Context, owner, repo string) (zipURL string, ok bool, err error)
}

// themePath is where the theme lands inside the environment's WordPress copy.
func themePath(workDir string, name EnvName, theme string) string {
	return filepath.Join(workDir, name.Prefix()+"WordPress", "wp-content", "themes", theme)
}

// DiviSource returns the Divi source of an environment when both
// ElegantThemes credentials are set.
func DiviSource(workDir string, name EnvName, s Settings) (ThemeSource, bool) {
	user, userOK := s[KeyETUsername]
	key, keyOK := s[KeyETAPIKey]
	if !userOK || !keyOK {
		return ThemeSource{}, false
	}

	return ThemeSource{
		Kind: SourceZip,
		URL: fmt.Sprintf(diviAPIURL,
			url.QueryEscape(FormatValue(key)),
			url.QueryEscape(FormatValue(user)),
			name),
		Basename: name.Prefix() + DiviTheme,
		Path:     themePath(workDir, name, DiviTheme),
	}, true
}

// CAWebSource returns the CAWeb source of an environment when CAWEB_VER is
// set. "latest" is resolved through fetcher; lookup failures fall back to
// the zipball-by-tag URL. Version-like values are release tags, anything
// else is a branch to clone.
func CAWebSource(ctx context.Context, fetcher ReleaseFetcher, workDir string, name EnvName, s Settings) (ThemeSource, bool, error) {
	ver, ok, err := stringSetting(s, name, KeyCAWebVersion)
	if err != nil || !ok {
		return ThemeSource{}, false, err
	}
	ver = strings.TrimSpace(ver)
	if ver == "" {
		return ThemeSource{}, false, &SettingError{Env: name, Key: KeyCAWebVersion, Reason: "empty version"}
	}

	owner, _ := s.String(KeyCAWebGitUser)
	if owner == "" {
		owner = defaultGitHubOrg
	}

	path := themePath(workDir, name, CAWebTheme)
	src := ThemeSource{
		Kind:     SourceZip,
		URL:      fmt.Sprintf(cawebZipballURL, owner, ver),
		Basename: name.Prefix() + CAWebTheme,
		Path:     path,
	}

	switch {
	case ver == LatestVersion:
		if fetcher == nil {
			logs.Infof("%s: no release lookup configured, using %s", name, src.URL)
			break
		}
		zipURL, found, err := fetcher.LatestZipball(ctx, owner, CAWebTheme)
		switch {
		case err != nil:
			logs.Infof("%s: latest %s release lookup failed, using %s: %v", name, CAWebTheme, src.URL, err)
		case !found || zipURL == "":
			logs.Infof("%s: latest %s release has no zipball, using %s", name, CAWebTheme, src.URL)
		default:
			src.URL = zipURL
		}
	case versions.IsReleaseTag(ver):
		// zipball by tag, already set
	default:
		src.Kind = SourceGit
		src.URL = fmt.Sprintf(cawebRepoURL, owner)
		src.Ref = ver
		src.ClonePath = path
		src.Path = ""
	}

	src.URL = withEnvSuffix(src.URL, name)
	return src, true, nil
}

func withEnvSuffix(rawURL string, name EnvName) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "env=" + string(name)
}

// EnrichThemes appends Divi and CAWeb sources to each environment whose
// settings ask for them. Environments are enriched concurrently; each
// goroutine only touches its own environment. timeout bounds the release
// lookups, zero means no extra bound.
func EnrichThemes(ctx context.Context, cfg *RootConfig, fetcher ReleaseFetcher, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, name := range EnvNames {
		ec := cfg.Env(name)
		workDir := cfg.WorkDirectoryPath
		g.Go(func() error {
			var sources []ThemeSource

			if divi, ok := DiviSource(workDir, name, ec.Settings); ok {
				sources = append(sources, divi)
			}

			lookupCtx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				lookupCtx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}
			caweb, ok, err := CAWebSource(lookupCtx, fetcher, workDir, name, ec.Settings)
			if err != nil {
				return err
			}
			if ok {
				sources = append(sources, caweb)
			}

			for _, src := range sources {
				logs.Debugf("%s: theme source %s (%s) %s", name, src.Basename, src.Kind, src.URL)
			}
			ec.ThemeSources = append(ec.ThemeSources, sources...)
			return nil
		})
	}

	return g.Wait()
}
