package envconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
)

// DiviTheme is the licensed theme that needs ElegantThemes credentials.
const DiviTheme = "Divi"

// Question is a single text input requested from the user.
type Question struct {
	Name    string
	Message string
	Secret  bool
}

//go:generate mockgen -source=credentials.go -destination=mocks/prompter_mock.go -package=mocks

// Prompter asks the user for the given inputs and returns name -> answer.
type Prompter interface {
	Prompt(ctx context.Context, questions []Question) (map[string]string, error)
}

var diviCredentials = []Question{
	{Name: KeyETUsername, Message: "ElegantThemes Username"},
	{Name: KeyETAPIKey, Message: "ElegantThemes API Key", Secret: true},
}

// requiresDivi reports whether the environment can't be built without the
// Divi credentials.
func requiresDivi(s Settings) bool {
	theme, _ := s.String(KeyDefaultTheme)
	return strings.EqualFold(theme, DiviTheme)
}

// wantsDivi reports whether the user configured Divi in any way.
func wantsDivi(s Settings) bool {
	return requiresDivi(s) || s.Has(KeyETUsername) || s.Has(KeyETAPIKey)
}

func missingCredentials(s Settings) []Question {
	var out []Question
	for _, q := range diviCredentials {
		if v, ok := s[q.Name]; !ok || FormatValue(v) == "" {
			out = append(out, q)
		}
	}
	return out
}

// CompleteCredentials asks for Divi credentials missing from environments
// that configure Divi. Only missing keys are filled in. A failed prompt is
// fatal only when the environment uses Divi as its theme.
func CompleteCredentials(ctx context.Context, cfg *RootConfig, prompter Prompter) error {
	for _, name := range EnvNames {
		ec := cfg.Env(name)
		if !wantsDivi(ec.Settings) {
			continue
		}
		missing := missingCredentials(ec.Settings)
		if len(missing) == 0 {
			continue
		}

		required := requiresDivi(ec.Settings)
		questions := make([]Question, len(missing))
		for i, q := range missing {
			q.Message = fmt.Sprintf("%s (%s)", q.Message, name)
			questions[i] = q
		}

		var answers map[string]string
		err := ErrNoInputSource
		if prompter != nil {
			answers, err = prompter.Prompt(ctx, questions)
		}
		if err != nil {
			if required || errors.Is(err, context.Canceled) {
				return fmt.Errorf("%w for %s environment: %w", ErrMissingCredentials, name, err)
			}
			logs.Infof("%s credentials not provided for %s environment, skipping theme: %v", DiviTheme, name, err)
			continue
		}

		for _, q := range missing {
			if v := strings.TrimSpace(answers[q.Name]); v != "" {
				ec.Settings[q.Name] = v
			}
		}

		if required && len(missingCredentials(ec.Settings)) > 0 {
			return fmt.Errorf("%w for %s environment", ErrMissingCredentials, name)
		}
	}
	return nil
}
