// Package envconfig builds the layered development/tests configuration that
// every cawebenv command hands to wp-env, docker compose and WP-CLI.
package envconfig

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

type EnvName string

const (
	Development EnvName = "development"
	Tests       EnvName = "tests"
)

// EnvNames lists the sub-environments in processing order.
var EnvNames = []EnvName{Development, Tests}

// Prefix is prepended to container, directory and theme names of the
// environment ("tests-" for tests, nothing for development).
func (n EnvName) Prefix() string {
	if n == Tests {
		return "tests-"
	}
	return ""
}

type SourceKind string

const (
	SourceZip   SourceKind = "zip"
	SourceGit   SourceKind = "git"
	SourceLocal SourceKind = "local"
)

// ThemeSource tells the environment manager where and how to fetch a theme.
// Path is set for zip and local sources; git sources use ClonePath instead.
type ThemeSource struct {
	Kind      SourceKind `json:"type"`
	URL       string     `json:"url,omitempty"`
	Path      string     `json:"path,omitempty"`
	ClonePath string     `json:"clonePath,omitempty"`
	Ref       string     `json:"ref,omitempty"`
	Basename  string     `json:"basename"`
}

type EnvironmentConfig struct {
	Settings       Settings      `json:"config"`
	CoreVersionRef *string       `json:"core,omitempty"`
	PHPVersion     *string       `json:"phpVersion,omitempty"`
	ThemeSources   []ThemeSource `json:"themeSources"`
}

func newEnvironmentConfig() *EnvironmentConfig {
	return &EnvironmentConfig{
		Settings:     Settings{},
		ThemeSources: []ThemeSource{},
	}
}

func (ec *EnvironmentConfig) Copy() *EnvironmentConfig {
	out := &EnvironmentConfig{
		Settings:     ec.Settings.Clone(),
		ThemeSources: append([]ThemeSource{}, ec.ThemeSources...),
	}
	if ec.CoreVersionRef != nil {
		v := *ec.CoreVersionRef
		out.CoreVersionRef = &v
	}
	if ec.PHPVersion != nil {
		v := *ec.PHPVersion
		out.PHPVersion = &v
	}
	return out
}

// RootConfig is rebuilt from scratch on every invocation and is read-only
// once handed to orchestration.
type RootConfig struct {
	CorePackageRef    string                         `json:"core"`
	DefaultPHPVersion string                         `json:"phpVersion"`
	Environments      map[EnvName]*EnvironmentConfig `json:"env"`
	WorkDirectoryPath string                         `json:"workDirectoryPath"`
	Debug             bool                           `json:"debug"`
}

func (c *RootConfig) Env(name EnvName) *EnvironmentConfig {
	return c.Environments[name]
}

func (c *RootConfig) Copy() *RootConfig {
	out := &RootConfig{
		CorePackageRef:    c.CorePackageRef,
		DefaultPHPVersion: c.DefaultPHPVersion,
		Environments:      make(map[EnvName]*EnvironmentConfig, len(c.Environments)),
		WorkDirectoryPath: c.WorkDirectoryPath,
		Debug:             c.Debug,
	}
	for name, ec := range c.Environments {
		out.Environments[name] = ec.Copy()
	}
	return out
}

// CoreRef returns the WordPress core reference the environment installs:
// its own derived reference, or the root default.
func (c *RootConfig) CoreRef(name EnvName) string {
	if ec := c.Env(name); ec != nil && ec.CoreVersionRef != nil {
		return *ec.CoreVersionRef
	}
	return c.CorePackageRef
}

// PHP returns the PHP version of the environment, falling back to the root default.
func (c *RootConfig) PHP(name EnvName) string {
	if ec := c.Env(name); ec != nil && ec.PHPVersion != nil {
		return *ec.PHPVersion
	}
	return c.DefaultPHPVersion
}

// Validate checks the structural contract orchestration relies on.
func (c *RootConfig) Validate() error {
	if len(c.Environments) != len(EnvNames) {
		return fmt.Errorf("%w: expected environments %v, got %d", ErrInvalidConfig, EnvNames, len(c.Environments))
	}
	for _, name := range EnvNames {
		ec := c.Env(name)
		if ec == nil {
			return fmt.Errorf("%w: missing %s environment", ErrInvalidConfig, name)
		}
		if !ec.Settings.Has(KeyMultiSite) && ec.Settings.Has(KeySubdomain) {
			return fmt.Errorf("%w: %s sets %s without %s", ErrInvalidConfig, name, KeySubdomain, KeyMultiSite)
		}
	}
	return nil
}

// Signature hashes the persisted form of the config. The start command uses
// it to detect whether WordPress needs to be configured again.
func (c *RootConfig) Signature() (string, error) {
	data, err := json.Marshal(c.File())
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
