package cawebenv

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
)

func TestTestsFlagName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"CAWEB_VER":   "CAWEB_TESTS_VER",
		"ET_API_KEY":  "ET_TESTS_API_KEY",
		"PHP_VER":     "PHP_TESTS_VER",
		"WP_ENV_PORT": "WP_TESTS_ENV_PORT",
		"DEBUG":       "TESTS_DEBUG",
	}
	for in, want := range cases {
		require.Equal(t, want, testsFlagName(in), in)
	}
}

func TestTwinFlagsRouteToTests(t *testing.T) {
	t.Parallel()

	for _, opt := range environmentOptions {
		target, name := envconfig.Classify(testsFlagName(opt.key))
		if opt.key == envconfig.KeyDevPort {
			// ports go to wp-env, not to settings
			require.Equal(t, envconfig.TargetSkip, target)
			continue
		}
		require.Equal(t, envconfig.TargetTests, target, opt.key)
		require.Equal(t, opt.key, name)
	}
}

func TestUserConfigOnlyHoldsChangedFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "start", RunE: func(*cobra.Command, []string) error { return nil }}
	of := attachOverrideFlags(cmd)

	err := cmd.ParseFlags([]string{
		"--CAWEB_VER", "1.2.3",
		"--WP_TESTS_MULTI_SITE",
		"--ET_CLASSIC_EDITOR=false",
	})
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"CAWEB_VER":           "1.2.3",
		"WP_TESTS_MULTI_SITE": true,
		"ET_CLASSIC_EDITOR":   false,
	}, of.UserConfig(cmd))
}

func TestUserConfigEmptyWithoutFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	of := attachOverrideFlags(cmd)
	require.NoError(t, cmd.ParseFlags(nil))
	require.Empty(t, of.UserConfig(cmd))
}
