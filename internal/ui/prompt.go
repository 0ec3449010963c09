package ui

import (
	"errors"
	"fmt"
	"os"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/moby/term"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// Confirm asks a yes/no question. The prompt and answer go to the full log.
func (l *Logger) Confirm(text string) (bool, error) {
	if !IsInteractive() {
		return false, fmt.Errorf("confirm %q: %w", text, ErrNotInteractive)
	}

	l.Spacer()
	l.InfoSilent("PROMPT: %s (yes/no)", text)

	var answer bool
	err := survey.AskOne(
		&survey.Confirm{Message: text},
		&answer,
		survey.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		l.Error("PROMPT FAILED: %v", err)
		return false, err
	}

	l.InfoSilent("ANSWER: %v", answer)
	return answer, nil
}

// Input asks for a single line of text. Secret inputs are masked and never
// written to the full log.
func (l *Logger) Input(message string, secret bool) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("input %q: %w", message, ErrNotInteractive)
	}

	l.InfoSilent("PROMPT: %s", message)

	var prompt survey.Prompt = &survey.Input{Message: message}
	if secret {
		prompt = &survey.Password{Message: message}
	}

	var answer string
	err := survey.AskOne(
		prompt,
		&answer,
		survey.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		l.Error("PROMPT FAILED: %v", err)
		return "", err
	}

	if secret {
		l.InfoSilent("ANSWER: <hidden>")
	} else {
		l.InfoSilent("ANSWER: %s", answer)
	}
	return answer, nil
}
