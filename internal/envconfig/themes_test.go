package envconfig_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/envconfig/mocks"
)

const workDir = "/home/dev/.wp-env/abc123"

func TestDiviSource(t *testing.T) {
	t.Parallel()

	_, ok := envconfig.DiviSource(workDir, envconfig.Development, envconfig.Settings{envconfig.KeyETUsername: "alice"})
	require.False(t, ok)

	src, ok := envconfig.DiviSource(workDir, envconfig.Tests, envconfig.Settings{
		envconfig.KeyETUsername: "alice@example.com",
		envconfig.KeyETAPIKey:   "k 123",
	})
	require.True(t, ok)
	require.Equal(t, envconfig.SourceZip, src.Kind)
	require.Equal(t, "tests-Divi", src.Basename)
	require.Equal(t, filepath.Join(workDir, "tests-WordPress", "wp-content", "themes", "Divi"), src.Path)
	require.Contains(t, src.URL, "api_key=k+123&username=alice%40example.com&env=tests")
}

func TestCAWebSourceReleaseTag(t *testing.T) {
	t.Parallel()

	src, ok, err := envconfig.CAWebSource(context.Background(), nil, workDir, envconfig.Development,
		envconfig.Settings{envconfig.KeyCAWebVersion: "2.1.0", envconfig.KeyCAWebGitUser: "CA-CODE-Works"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, envconfig.SourceZip, src.Kind)
	require.Equal(t, "https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/2.1.0?env=development", src.URL)
	require.Equal(t, "CAWeb", src.Basename)
	require.Equal(t, filepath.Join(workDir, "WordPress", "wp-content", "themes", "CAWeb"), src.Path)
	require.Empty(t, src.ClonePath)
}

func TestCAWebSourceBranch(t *testing.T) {
	t.Parallel()

	src, ok, err := envconfig.CAWebSource(context.Background(), nil, workDir, envconfig.Tests,
		envconfig.Settings{envconfig.KeyCAWebVersion: "feature/nav", envconfig.KeyCAWebGitUser: "someone"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, envconfig.SourceGit, src.Kind)
	require.Equal(t, "https://github.com/someone/CAWeb/?env=tests", src.URL)
	require.Equal(t, "feature/nav", src.Ref)
	require.Empty(t, src.Path)
	require.Equal(t, filepath.Join(workDir, "tests-WordPress", "wp-content", "themes", "CAWeb"), src.ClonePath)
	require.Equal(t, "tests-CAWeb", src.Basename)
}

func TestCAWebSourceLatest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockReleaseFetcher(ctrl)
	fetcher.EXPECT().
		LatestZipball(gomock.Any(), "CA-CODE-Works", "CAWeb").
		Return("https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/1.9.3", true, nil)

	src, ok, err := envconfig.CAWebSource(context.Background(), fetcher, workDir, envconfig.Development,
		envconfig.Settings{envconfig.KeyCAWebVersion: "latest"})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/1.9.3?env=development", src.URL)
}

func TestCAWebSourceLatestFallsBack(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		url   string
		found bool
		err   error
	}{
		"lookup error": {err: errors.New("rate limited")},
		"no zipball":   {found: false},
		"empty url":    {found: true},
	}

	for name, tc := range cases {
		ctrl := gomock.NewController(t)
		fetcher := mocks.NewMockReleaseFetcher(ctrl)
		fetcher.EXPECT().LatestZipball(gomock.Any(), gomock.Any(), gomock.Any()).Return(tc.url, tc.found, tc.err)

		src, ok, err := envconfig.CAWebSource(context.Background(), fetcher, workDir, envconfig.Development,
			envconfig.Settings{envconfig.KeyCAWebVersion: "latest"})
		require.NoError(t, err, name)
		require.True(t, ok, name)
		require.Equal(t, "https://api.github.com/repos/CA-CODE-Works/CAWeb/zipball/latest?env=development", src.URL, name)
	}
}

func TestCAWebSourceAbsentOrInvalid(t *testing.T) {
	t.Parallel()

	_, ok, err := envconfig.CAWebSource(context.Background(), nil, workDir, envconfig.Development, envconfig.Settings{})
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = envconfig.CAWebSource(context.Background(), nil, workDir, envconfig.Development,
		envconfig.Settings{envconfig.KeyCAWebVersion: 2})
	require.ErrorIs(t, err, envconfig.ErrInvalidSetting)

	_, _, err = envconfig.CAWebSource(context.Background(), nil, workDir, envconfig.Development,
		envconfig.Settings{envconfig.KeyCAWebVersion: " "})
	require.ErrorIs(t, err, envconfig.ErrInvalidSetting)
}

func TestEnrichThemesPerEnvironment(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockReleaseFetcher(ctrl)
	fetcher.EXPECT().
		LatestZipball(gomock.Any(), "CA-CODE-Works", "CAWeb").
		Return("", false, context.DeadlineExceeded).
		Times(2)

	cfg := envconfig.Defaults()
	cfg.WorkDirectoryPath = workDir
	cfg.Env(envconfig.Development).Settings[envconfig.KeyETUsername] = "alice"
	cfg.Env(envconfig.Development).Settings[envconfig.KeyETAPIKey] = "k123"

	require.NoError(t, envconfig.EnrichThemes(context.Background(), cfg, fetcher, time.Second))

	dev := cfg.Env(envconfig.Development).ThemeSources
	require.Len(t, dev, 2)
	require.Equal(t, "Divi", dev[0].Basename)
	require.True(t, strings.HasSuffix(dev[0].URL, "api_key=k123&username=alice&env=development"))
	require.Equal(t, "CAWeb", dev[1].Basename)

	tests := cfg.Env(envconfig.Tests).ThemeSources
	require.Len(t, tests, 1)
	require.Equal(t, "tests-CAWeb", tests[0].Basename)
	require.True(t, strings.HasSuffix(tests[0].URL, "?env=tests"))
}
