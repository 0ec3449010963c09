package compose

import (
	"context"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/CA-CODE-Works/cawebenv/internal/shell"
)

// Client runs docker compose against a wp-env work directory.
type Client struct {
	runner   shell.Runner
	fs       afero.Fs
	bin      string
	baseArgs []string
	workDir  string
	// stream receives compose output when set (debug runs).
	stream io.Writer
}

type clientOption func(*Client)

// WithCommand replaces the default "docker compose" invocation.
func WithCommand(bin string, args ...string) clientOption {
	return func(c *Client) {
		if bin != "" {
			c.bin = bin
			c.baseArgs = args
		}
	}
}

func WithStream(w io.Writer) clientOption {
	return func(c *Client) {
		c.stream = w
	}
}

func WithFs(fs afero.Fs) clientOption {
	return func(c *Client) {
		if fs != nil {
			c.fs = fs
		}
	}
}

func NewClient(runner shell.Runner, workDir string, opts ...clientOption) *Client {
	c := &Client{
		runner:   runner,
		fs:       afero.NewOsFs(),
		bin:      "docker",
		baseArgs: []string{"compose"},
		workDir:  workDir,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ComposeFile() string {
	return filepath.Join(c.workDir, ComposeFileName)
}

func (c *Client) OverrideFile() string {
	return filepath.Join(c.workDir, OverrideFileName)
}

// HasOverride reports whether a previous start wrote the override.
func (c *Client) HasOverride() bool {
	ok, _ := afero.Exists(c.fs, c.OverrideFile())
	return ok
}

// WriteOverride writes the phpMyAdmin override into the work directory.
func (c *Client) WriteOverride() (string, error) {
	return WriteOverride(c.fs, c.workDir)
}

func (c *Client) command(files []string, args ...string) shell.Command {
	full := append([]string{}, c.baseArgs...)
	for _, f := range files {
		full = append(full, "-f", f)
	}
	full = append(full, args...)
	return shell.Command{
		Name:   c.bin,
		Args:   full,
		Dir:    c.workDir,
		Stream: c.stream,
	}
}

func (c *Client) both() []string {
	return []string{c.ComposeFile(), c.OverrideFile()}
}

// Down stops the services of both compose files.
func (c *Client) Down(ctx context.Context, removeOrphans bool) error {
	args := []string{"down"}
	if removeOrphans {
		args = append(args, "--remove-orphans")
	}
	_, err := c.runner.Run(ctx, c.command(c.both(), args...))
	return err
}

// DownOverride stops only the services the override declares.
func (c *Client) DownOverride(ctx context.Context) error {
	_, err := c.runner.Run(ctx, c.command([]string{c.OverrideFile()}, "down", "--remove-orphans"))
	return err
}

// UpMany starts the given services detached.
func (c *Client) UpMany(ctx context.Context, services []string, removeOrphans bool) error {
	args := []string{"up", "-d"}
	if removeOrphans {
		args = append(args, "--remove-orphans")
	}
	args = append(args, services...)
	_, err := c.runner.Run(ctx, c.command(c.both(), args...))
	return err
}

// Run runs a one-off bash command in service and returns its output. The
// result is returned even when the command exits non-zero.
func (c *Client) Run(ctx context.Context, service, script string) (shell.Result, error) {
	return c.runner.Run(ctx, c.command([]string{c.ComposeFile()}, "run", "--rm", service, "bash", "-c", script))
}
