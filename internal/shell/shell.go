// Package shell runs the external tools cawebenv drives: docker compose,
// npx @wordpress/env and git.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
)

// Command is one process invocation.
type Command struct {
	Name string
	Args []string
	// Env is appended to the current process environment.
	Env []string
	Dir string
	// Stdin is attached to the process when set.
	Stdin io.Reader
	// Stream receives stdout and stderr as they are produced, in addition
	// to the captured Result.
	Stream io.Writer
	// Sensitive values are masked wherever the command is printed.
	Sensitive []string
}

func (c Command) String() string {
	s := strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
	for _, secret := range c.Sensitive {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, "***")
		}
	}
	return s
}

type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError is returned when the process ran and exited non-zero.
type ExitError struct {
	Command string
	Result  Result
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Result.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Result.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("%s exited with code %d", e.Command, e.Result.ExitCode)
	}
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.Result.ExitCode, msg)
}

//go:generate mockgen -source=shell.go -destination=mocks/runner_mock.go -package=mocks

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Exec runs commands as host processes.
type Exec struct{}

func (Exec) Run(ctx context.Context, c Command) (Result, error) {
	logs.Debugf("exec: %s", c)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	if c.Stream != nil {
		cmd.Stdout = io.MultiWriter(&stdout, c.Stream)
		cmd.Stderr = io.MultiWriter(&stderr, c.Stream)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, &ExitError{Command: c.String(), Result: res}
	default:
		res.ExitCode = -1
		return res, fmt.Errorf("%s: %w", c, err)
	}
}
