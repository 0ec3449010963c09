package envconfig

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// ConfigFileName is the file wp-env reads its configuration from.
const ConfigFileName = ".wp-env.json"

// File is the on-disk .wp-env.json layout. Development settings live at the
// top level, tests settings under env.tests.
type File struct {
	Core       string              `json:"core"`
	PHPVersion string              `json:"phpVersion"`
	Plugins    []string            `json:"plugins"`
	Themes     []string            `json:"themes"`
	Mappings   map[string]string   `json:"mappings"`
	Config     Settings            `json:"config"`
	Env        map[EnvName]FileEnv `json:"env"`
}

type FileEnv struct {
	Core       *string  `json:"core,omitempty"`
	PHPVersion *string  `json:"phpVersion,omitempty"`
	Config     Settings `json:"config"`
}

// File converts the config to its persisted form.
func (c *RootConfig) File() File {
	f := File{
		Core:       c.CorePackageRef,
		PHPVersion: c.DefaultPHPVersion,
		Plugins:    []string{},
		Themes:     []string{},
		Mappings:   map[string]string{},
		Config:     Settings{},
		Env: map[EnvName]FileEnv{
			Development: {Config: Settings{}},
		},
	}
	if dev := c.Env(Development); dev != nil {
		f.Config = dev.Settings.Clone()
	}
	if tests := c.Env(Tests); tests != nil {
		f.Env[Tests] = FileEnv{
			Core:       tests.CoreVersionRef,
			PHPVersion: tests.PHPVersion,
			Config:     tests.Settings.Clone(),
		}
	}
	return f
}

// Persist writes cfg as tab-indented JSON to path. The file is written to a
// temporary sibling first and renamed into place, so a failed write never
// leaves a partial file behind.
func Persist(fs afero.Fs, path string, cfg *RootConfig) error {
	data, err := json.MarshalIndent(cfg.File(), "", "\t")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", ErrPersist, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %w", ErrPersist, tmpName, err)
	}
	if err := fs.Chmod(tmpName, 0o644); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("%w: chmod %s: %w", ErrPersist, tmpName, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %w", ErrPersist, path, err)
	}
	return nil
}
