// Package wpenv drives the WordPress environment manager (@wordpress/env)
// that owns the WordPress, database and CLI containers.
package wpenv

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/CA-CODE-Works/cawebenv/internal/shell"
)

const Package = "@wordpress/env"

type StartOptions struct {
	Update bool
	// Xdebug is empty when off, otherwise the comma separated modes.
	Xdebug string
	Debug  bool
	// Env carries the port overrides (WP_ENV_PORT, WP_ENV_TESTS_PORT).
	Env map[string]string
}

type Manager struct {
	runner shell.Runner
	dir    string
	stdin  io.Reader
	stream io.Writer
}

type managerOption func(*Manager)

// WithStdin lets wp-env ask its own questions (destroy confirmation).
func WithStdin(r io.Reader) managerOption {
	return func(m *Manager) {
		m.stdin = r
	}
}

func WithStream(w io.Writer) managerOption {
	return func(m *Manager) {
		m.stream = w
	}
}

// NewManager runs wp-env in dir, the directory holding .wp-env.json.
func NewManager(runner shell.Runner, dir string, opts ...managerOption) *Manager {
	m := &Manager{runner: runner, dir: dir}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) command(env map[string]string, args ...string) shell.Command {
	cmd := shell.Command{
		Name:   "npx",
		Args:   append([]string{Package}, args...),
		Dir:    m.dir,
		Stream: m.stream,
	}
	for _, k := range slices.Sorted(maps.Keys(env)) {
		cmd.Env = append(cmd.Env, k+"="+env[k])
	}
	return cmd
}

func (m *Manager) Start(ctx context.Context, opts StartOptions) (string, error) {
	args := []string{"start"}
	if opts.Update {
		args = append(args, "--update")
	}
	if opts.Xdebug != "" {
		args = append(args, "--xdebug="+opts.Xdebug)
	}
	if opts.Debug {
		args = append(args, "--debug")
	}

	res, err := m.runner.Run(ctx, m.command(opts.Env, args...))
	if err != nil {
		return "", fmt.Errorf("wp-env start: %w", err)
	}
	return res.Stdout, nil
}

func (m *Manager) Stop(ctx context.Context, debug bool) error {
	args := []string{"stop"}
	if debug {
		args = append(args, "--debug")
	}
	if _, err := m.runner.Run(ctx, m.command(nil, args...)); err != nil {
		return fmt.Errorf("wp-env stop: %w", err)
	}
	return nil
}

func (m *Manager) Destroy(ctx context.Context, debug bool) error {
	args := []string{"destroy"}
	if debug {
		args = append(args, "--debug")
	}
	cmd := m.command(nil, args...)
	cmd.Stdin = m.stdin
	if _, err := m.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("wp-env destroy: %w", err)
	}
	return nil
}
