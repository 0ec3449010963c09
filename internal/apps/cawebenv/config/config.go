// Package hostappconfig holds the tool-level settings of cawebenv and the
// locations of everything it keeps on the host.
package hostappconfig

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are read from the process environment once per run.
type Settings struct {
	// Home is where wp-env keeps its per-project work directories.
	Home string `env:"WP_ENV_HOME"`
	// GUI switches progress output to plain lines for wrapping tools.
	GUI bool `env:"CAWEB_GUI" envDefault:"false"`
	// ReleaseTimeout bounds GitHub latest-release lookups.
	ReleaseTimeout time.Duration `env:"CAWEB_RELEASE_TIMEOUT" envDefault:"10s"`
	// ComposeCommand is the docker compose invocation, split on spaces.
	ComposeCommand string `env:"CAWEB_DOCKER_COMPOSE" envDefault:"docker compose"`
	// GitHubToken authenticates release lookups against the GitHub API.
	GitHubToken string `env:"GITHUB_TOKEN"`
	// ETUsername and ETAPIKey answer the Divi credential prompts of
	// non-interactive runs.
	ETUsername string `env:"ET_USERNAME"`
	ETAPIKey   string `env:"ET_API_KEY"`
}

// Parse reads Settings from the environment.
func Parse() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return s, nil
}

var (
	loadOnce sync.Once
	loaded   Settings
	loadErr  error
)

// Get returns the settings of this run, parsing them on first use.
func Get() (Settings, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse()
	})
	return loaded, loadErr
}

// Credentials returns the ElegantThemes credentials set in the environment,
// keyed like the settings they fill in.
func (s Settings) Credentials() map[string]string {
	out := map[string]string{}
	if s.ETUsername != "" {
		out["ET_USERNAME"] = s.ETUsername
	}
	if s.ETAPIKey != "" {
		out["ET_API_KEY"] = s.ETAPIKey
	}
	return out
}

// ComposeArgs splits ComposeCommand into the binary and its leading args.
func (s Settings) ComposeArgs() (string, []string) {
	fields := strings.Fields(s.ComposeCommand)
	if len(fields) == 0 {
		return "docker", []string{"compose"}
	}
	return fields[0], fields[1:]
}

// ensureFile ensures that the parent folder exists and the file exists.
// If the file already exists, it does nothing.
func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create/open file: %w", err)
	}
	defer f.Close()

	return nil
}

// HomePath is WP_ENV_HOME, or ~/.wp-env like wp-env itself.
func HomePath() string {
	if s, err := Get(); err == nil && s.Home != "" {
		return s.Home
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		homedir = os.TempDir()
	}
	return filepath.Join(homedir, ".wp-env")
}

// WorkDirectoryPath is the directory wp-env uses for the project whose
// .wp-env.json lives at configPath: the md5 of that path under HomePath.
func WorkDirectoryPath(configPath string) string {
	return workDirectory(HomePath(), configPath)
}

func workDirectory(home, configPath string) string {
	sum := md5.Sum([]byte(configPath))
	return filepath.Join(home, hex.EncodeToString(sum[:]))
}

// ComposeFile is the docker-compose.yml wp-env generates for the project.
func ComposeFile(workDir string) string {
	return filepath.Join(workDir, "docker-compose.yml")
}

// OverrideFile is the compose override cawebenv writes next to ComposeFile.
func OverrideFile(workDir string) string {
	return filepath.Join(workDir, "docker-compose.override.yml")
}

func configBasePath() string {
	return filepath.Join(HomePath(), "cawebenv")
}

func StateDBFile() string {
	return filepath.Join(configBasePath(), "state.db")
}

func RunLogPath(runID string) string {
	p := filepath.Join(configBasePath(), "logs", "run-"+runID+".log")
	ensureFile(p)
	return p
}
