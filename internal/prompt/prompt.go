// Package prompt backs envconfig.Prompter with terminal prompts.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

// InputFunc asks for one answer. It matches logs.PromptInput.
type InputFunc func(message string, secret bool) (string, error)

// Terminal asks each question in order on the controlling terminal.
type Terminal struct {
	input       InputFunc
	interactive func() bool
}

func NewTerminal() *Terminal {
	return &Terminal{
		input:       logs.PromptInput,
		interactive: ui.IsInteractive,
	}
}

func (t *Terminal) Prompt(ctx context.Context, questions []envconfig.Question) (map[string]string, error) {
	if !t.interactive() {
		return nil, envconfig.ErrNoInputSource
	}

	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		answer, err := t.input(q.Message, q.Secret)
		if err != nil {
			if errors.Is(err, ui.ErrNotInteractive) {
				return nil, envconfig.ErrNoInputSource
			}
			return nil, fmt.Errorf("prompt %s: %w", q.Name, err)
		}
		answers[q.Name] = answer
	}
	return answers, nil
}

// Static answers from a fixed map, for scripted runs where values come from
// the process environment instead of a terminal.
type Static map[string]string

func (s Static) Prompt(_ context.Context, questions []envconfig.Question) (map[string]string, error) {
	out := map[string]string{}
	for _, q := range questions {
		if v, ok := s[q.Name]; ok && v != "" {
			out[q.Name] = v
		}
	}
	if len(out) == 0 {
		return nil, envconfig.ErrNoInputSource
	}
	return out, nil
}

// Chain asks each prompter in order for the questions still unanswered and
// merges the answers. Prompters without an input source are skipped.
type Chain []envconfig.Prompter

func (c Chain) Prompt(ctx context.Context, questions []envconfig.Question) (map[string]string, error) {
	answers := map[string]string{}
	remaining := questions
	for _, p := range c {
		if len(remaining) == 0 {
			break
		}
		got, err := p.Prompt(ctx, remaining)
		if err != nil {
			if errors.Is(err, envconfig.ErrNoInputSource) {
				continue
			}
			return nil, err
		}

		var next []envconfig.Question
		for _, q := range remaining {
			if v, ok := got[q.Name]; ok && v != "" {
				answers[q.Name] = v
				continue
			}
			next = append(next, q)
		}
		remaining = next
	}
	if len(answers) == 0 {
		return nil, envconfig.ErrNoInputSource
	}
	return answers, nil
}
