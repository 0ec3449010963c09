// Package compose writes the docker compose override cawebenv layers on top
// of wp-env's compose file and drives docker compose.
package compose

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
)

const (
	PHPMyAdminImage = "phpmyadmin"

	OverrideFileName = "docker-compose.override.yml"
	ComposeFileName  = "docker-compose.yml"
)

// File is the subset of the compose file format cawebenv reads and writes.
type File struct {
	Version  string             `yaml:"version,omitempty"`
	Services map[string]Service `yaml:"services"`
}

type Service struct {
	Image         string            `yaml:"image"`
	ContainerName string            `yaml:"container_name,omitempty"`
	Ports         []string          `yaml:"ports,omitempty"`
	Environment   map[string]string `yaml:"environment,omitempty"`
}

// PHPMyAdminService names the phpMyAdmin service of an environment.
func PHPMyAdminService(name envconfig.EnvName) string {
	return name.Prefix() + "phpmyadmin"
}

// PHPMyAdminServices lists the phpMyAdmin services of all environments.
func PHPMyAdminServices() []string {
	out := make([]string, 0, len(envconfig.EnvNames))
	for _, name := range envconfig.EnvNames {
		out = append(out, PHPMyAdminService(name))
	}
	return out
}

var phpMyAdminPorts = map[envconfig.EnvName]int{
	envconfig.Development: 9000,
	envconfig.Tests:       9090,
}

// BuildOverride returns the override that adds one phpMyAdmin per
// environment, pointed at that environment's database service.
func BuildOverride(version string) File {
	f := File{
		Version:  version,
		Services: map[string]Service{},
	}
	for _, name := range envconfig.EnvNames {
		svc := PHPMyAdminService(name)
		f.Services[svc] = Service{
			Image:         PHPMyAdminImage + ":" + envconfig.DefaultPHPMyAdminTag,
			ContainerName: svc,
			Ports:         []string{fmt.Sprintf("%d:80", phpMyAdminPorts[name])},
			Environment: map[string]string{
				"PMA_HOST": name.Prefix() + "mysql",
			},
		}
	}
	return f
}

// BaseVersion reads the version field of wp-env's compose file in workDir.
// A missing file or field yields "".
func BaseVersion(fs afero.Fs, workDir string) (string, error) {
	data, err := afero.ReadFile(fs, filepath.Join(workDir, ComposeFileName))
	if err != nil {
		if exists, _ := afero.Exists(fs, filepath.Join(workDir, ComposeFileName)); !exists {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", ComposeFileName, err)
	}

	var base struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return "", fmt.Errorf("parse %s: %w", ComposeFileName, err)
	}
	return base.Version, nil
}

// WriteOverride writes the override next to wp-env's compose file and
// returns its path.
func WriteOverride(fs afero.Fs, workDir string) (string, error) {
	version, err := BaseVersion(fs, workDir)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(BuildOverride(version))
	if err != nil {
		return "", fmt.Errorf("encode override: %w", err)
	}

	if err := fs.MkdirAll(workDir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", workDir, err)
	}
	path := filepath.Join(workDir, OverrideFileName)
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
