package envconfig

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		target Target
		name   string
	}{
		"WP_SITEURL":        {TargetDevelopment, "WP_SITEURL"},
		"TESTS_WP_SITEURL":  {TargetTests, "WP_SITEURL"},
		"CAWEB_TESTS_VER":   {TargetTests, "CAWEB_VER"},
		"WP_TESTS_SUBTITLE": {TargetTests, "WP_SUBTITLE"},
		"TESTS_TESTS_X":     {TargetTests, "TESTS_X"},
		"WP_ENV_PORT":       {TargetSkip, "WP_ENV_PORT"},
		"WP_TESTS_ENV_PORT": {TargetSkip, "WP_TESTS_ENV_PORT"},
		"WP_ENV_TESTS_PORT": {TargetSkip, "WP_ENV_TESTS_PORT"},
		"WP_ENV_DESTROY":    {TargetSkip, "WP_ENV_DESTROY"},
	}

	for key, want := range cases {
		target, name := Classify(key)
		if target != want.target || name != want.name {
			t.Fatalf("Classify(%q) = (%s, %q), want (%s, %q)", key, target, name, want.target, want.name)
		}
	}
}

func TestPartitionRoutesOverrides(t *testing.T) {
	t.Parallel()

	ov, err := Partition(map[string]any{
		"WP_SITEURL":        "http://dev.local",
		"TESTS_WP_SITEURL":  "http://tests.local",
		"CAWEB_TESTS_VER":   "1.5.0",
		"WP_MULTI_SITE":     true,
		"WP_ENV_PORT":       8888,
		"WP_TESTS_ENV_PORT": 8889,
		"WP_ENV_DESTROY":    true,
	})
	require.NoError(t, err)

	require.Equal(t, Settings{
		"WP_SITEURL":    "http://dev.local",
		"WP_MULTI_SITE": true,
	}, ov.Development)
	require.Equal(t, Settings{
		"WP_SITEURL": "http://tests.local",
		"CAWEB_VER":  "1.5.0",
	}, ov.Tests)
}

func TestPartitionEmptyInput(t *testing.T) {
	t.Parallel()

	ov, err := Partition(nil)
	require.NoError(t, err)
	require.Empty(t, ov.Development)
	require.Empty(t, ov.Tests)
}

func TestPartitionRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]any{
		"empty key":   {"": "x"},
		"marker only": {"TESTS_": "x"},
		"nil value":   {"WP_SITEURL": nil},
		"nested map":  {"WP_SITEURL": map[string]any{"a": 1}},
		"slice":       {"TESTS_WP_SITEURL": []string{"a"}},
	}

	for name, input := range cases {
		_, err := Partition(input)
		if !errors.Is(err, ErrInvalidOverride) {
			t.Fatalf("%s: expected ErrInvalidOverride, got %v", name, err)
		}
		var oe *OverrideError
		require.ErrorAs(t, err, &oe, name)
	}
}

func TestPorts(t *testing.T) {
	t.Parallel()

	got := Ports(map[string]any{
		"WP_ENV_PORT":       8888,
		"WP_TESTS_ENV_PORT": "8889",
		"WP_SITEURL":        "http://x",
	})
	require.Equal(t, map[string]string{
		"WP_ENV_PORT":       "8888",
		"WP_ENV_TESTS_PORT": "8889",
	}, got)
}

func TestApplyOverridesKeepsDefaultsAndOverridesFalse(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	err := applyOverrides(cfg, Overrides{
		Development: Settings{"WP_DEBUG": false, KeySiteTitle: "Mine"},
		Tests:       Settings{"ET_PRODUCT_TOUR": true},
	})
	require.NoError(t, err)

	dev := cfg.Env(Development).Settings
	require.Equal(t, false, dev["WP_DEBUG"])
	require.Equal(t, "Mine", dev[KeySiteTitle])
	require.Equal(t, "direct", dev["FS_METHOD"])

	tests := cfg.Env(Tests).Settings
	require.Equal(t, true, tests["ET_PRODUCT_TOUR"])
	require.Equal(t, true, tests["WP_DEBUG"])
	require.Equal(t, "CAWeb WordPress Test Site", tests[KeySiteTitle])
}

func TestDefaultsAreIndependentCopies(t *testing.T) {
	t.Parallel()

	a := Defaults()
	a.Env(Development).Settings[KeySiteTitle] = "changed"
	a.Env(Tests).Settings["NEW"] = 1

	b := Defaults()
	require.Equal(t, "CAWeb WordPress Site", b.Env(Development).Settings[KeySiteTitle])
	require.False(t, b.Env(Tests).Settings.Has("NEW"))
	require.False(t, b.Env(Development).Settings.Has("NEW"))
	require.Equal(t, "WordPress/WordPress#6.0.2", b.CorePackageRef)
	require.Equal(t, "7.4", b.DefaultPHPVersion)
}
