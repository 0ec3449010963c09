package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Spinner shows the current step of a long running command. In plain mode
// (GUI wrappers, non-terminal output) each step is printed on its own line.
// Plain mode is forced when stdout is not a terminal.
type Spinner struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	plain   bool
	message string
	writer  io.Writer
}

func NewSpinner(plain bool) *Spinner {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		plain = true
	}
	s := &Spinner{
		plain:  plain,
		writer: os.Stdout,
	}

	if !plain {
		s.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.spinner.Writer = s.writer
		_ = s.spinner.Color("cyan")
	}

	return s
}

func (s *Spinner) Start() {
	if s.spinner != nil {
		s.spinner.Start()
	}
}

func (s *Spinner) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
	}
}

// Text updates the current step.
func (s *Spinner) Text(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.plain {
		fmt.Fprintf(s.writer, "\n%s", message)
		return
	}
	s.spinner.Suffix = " " + message
}

func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) Succeed(message string) {
	s.Stop()
	fmt.Fprintf(s.writer, "\n%s %s\n", color.New(color.FgGreen, color.Bold).Sprint("✔"), message)
}

func (s *Spinner) Fail(message string) {
	s.Stop()
	fmt.Fprintf(s.writer, "\n%s %s\n", color.New(color.FgRed, color.Bold).Sprint("✖"), message)
}

// WithSpinner runs fn with a started spinner and reports the outcome with
// the elapsed time.
func WithSpinner(plain bool, fn func(s *Spinner) error) error {
	s := NewSpinner(plain)
	s.Start()
	started := time.Now()

	err := fn(s)
	elapsed := time.Since(started)
	if err != nil {
		s.Fail(err.Error())
		return err
	}

	msg := s.Message()
	if msg == "" {
		msg = "Done!"
	}
	s.Succeed(fmt.Sprintf("%s (in %ds %dms)", msg, int(elapsed.Seconds()), elapsed.Milliseconds()%1000))
	return nil
}
