package envconfig

import (
	"fmt"
	"sort"
	"strings"

	"dario.cat/mergo"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
)

// TestsMarker routes an override to the tests environment wherever it
// appears in the key: CAWEB_TESTS_VER becomes CAWEB_VER in tests.
const TestsMarker = "TESTS_"

// DestroyKey is the control flag destroy/prune put into the override map.
const DestroyKey = "WP_ENV_DESTROY"

// Port keys are consumed by the environment manager, never by settings.
const (
	KeyDevPort   = "WP_ENV_PORT"
	KeyTestsPort = "WP_TESTS_ENV_PORT"
	// keyTestsPortAlt is the spelling wp-env itself reads from the environment.
	keyTestsPortAlt = "WP_ENV_TESTS_PORT"
)

var excludedKeys = map[string]struct{}{
	KeyDevPort:      {},
	KeyTestsPort:    {},
	keyTestsPortAlt: {},
	DestroyKey:      {},
}

type Target int

const (
	TargetSkip Target = iota
	TargetDevelopment
	TargetTests
)

func (t Target) String() string {
	switch t {
	case TargetDevelopment:
		return string(Development)
	case TargetTests:
		return string(Tests)
	default:
		return "skip"
	}
}

// Classify decides which environment a raw override key belongs to and
// returns the key as it should appear in that environment's settings.
func Classify(key string) (Target, string) {
	if _, ok := excludedKeys[key]; ok {
		return TargetSkip, key
	}
	if strings.Contains(key, TestsMarker) {
		return TargetTests, strings.Replace(key, TestsMarker, "", 1)
	}
	return TargetDevelopment, key
}

// Overrides holds the user overrides already split per environment.
type Overrides struct {
	Development Settings
	Tests       Settings
}

func (o Overrides) For(name EnvName) Settings {
	if name == Tests {
		return o.Tests
	}
	return o.Development
}

// Partition splits the flat CLI override map into development and tests
// settings. Port keys and the destroy flag are dropped.
func Partition(userConfig map[string]any) (Overrides, error) {
	out := Overrides{Development: Settings{}, Tests: Settings{}}

	keys := make([]string, 0, len(userConfig))
	for k := range userConfig {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := userConfig[key]
		if strings.TrimSpace(key) == "" {
			return Overrides{}, &OverrideError{Key: key, Reason: "empty key"}
		}

		target, name := Classify(key)
		if target == TargetSkip {
			logs.Debugf("override %s is consumed by the environment manager", key)
			continue
		}
		if name == "" {
			return Overrides{}, &OverrideError{Key: key, Reason: "key is only the tests marker"}
		}
		if err := checkValue(value); err != nil {
			return Overrides{}, &OverrideError{Key: key, Reason: err.Error()}
		}

		switch target {
		case TargetTests:
			out.Tests[name] = value
		case TargetDevelopment:
			out.Development[name] = value
		}
		logs.Debugf("override %s routed to %s as %s", key, target, name)
	}

	return out, nil
}

// Ports returns the port overrides Partition drops, keyed by the
// environment variable wp-env reads them from.
func Ports(userConfig map[string]any) map[string]string {
	out := map[string]string{}
	if v, ok := userConfig[KeyDevPort]; ok {
		out[KeyDevPort] = FormatValue(v)
	}
	for _, key := range []string{KeyTestsPort, keyTestsPortAlt} {
		if v, ok := userConfig[key]; ok {
			out[keyTestsPortAlt] = FormatValue(v)
		}
	}
	return out
}

// applyOverrides merges the partitioned overrides on top of the defaults.
func applyOverrides(cfg *RootConfig, ov Overrides) error {
	for _, name := range EnvNames {
		src := ov.For(name)
		if len(src) == 0 {
			continue
		}
		ec := cfg.Env(name)
		dst := map[string]any(ec.Settings)
		if err := mergo.Merge(&dst, map[string]any(src), mergo.WithOverride); err != nil {
			return fmt.Errorf("merge %s overrides: %w", name, err)
		}
		ec.Settings = Settings(dst)
	}
	return nil
}
