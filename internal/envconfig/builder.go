package envconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
)

// DefaultReleaseTimeout bounds the latest-release lookups of enrichment.
const DefaultReleaseTimeout = 10 * time.Second

// Options are the per-invocation inputs of Build.
type Options struct {
	// UserConfig is the flat override map collected from CLI flags.
	UserConfig map[string]any
	// Generate persists the built config to ConfigPath.
	Generate bool
	// Destroy marks a teardown; credential prompts are skipped.
	Destroy bool
	Debug   bool
	// WorkDirectoryPath is owned by the environment manager and used for
	// theme destinations.
	WorkDirectoryPath string
	// ConfigPath defaults to ConfigFileName in the current directory.
	ConfigPath string
}

// Layer is one step of the build pipeline.
type Layer func(ctx context.Context, cfg *RootConfig) error

type Builder struct {
	fs             afero.Fs
	prompter       Prompter
	fetcher        ReleaseFetcher
	releaseTimeout time.Duration
}

type builderOption func(*Builder)

func WithFs(fs afero.Fs) builderOption {
	return func(b *Builder) {
		if fs != nil {
			b.fs = fs
		}
	}
}

func WithPrompter(p Prompter) builderOption {
	return func(b *Builder) {
		b.prompter = p
	}
}

func WithReleaseFetcher(f ReleaseFetcher) builderOption {
	return func(b *Builder) {
		b.fetcher = f
	}
}

func WithReleaseTimeout(d time.Duration) builderOption {
	return func(b *Builder) {
		if d > 0 {
			b.releaseTimeout = d
		}
	}
}

func NewBuilder(opts ...builderOption) *Builder {
	b := &Builder{
		fs:             afero.NewOsFs(),
		releaseTimeout: DefaultReleaseTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// step is a named layer of the build pipeline.
type step struct {
	name  string
	layer Layer
}

// Build runs the full pipeline: defaults, overrides, correction of both
// environments, credential completion, validation, optional persistence and
// theme enrichment. Any error aborts the build; failed release lookups don't.
func (b *Builder) Build(ctx context.Context, opts Options) (*RootConfig, error) {
	overrides, err := Partition(opts.UserConfig)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	for _, st := range b.pipeline(opts, overrides) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logs.Debugf("build: %s", st.name)
		if err := st.layer(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// pipeline lists the layers of one build. The config is validated before it
// is persisted, so an invalid config never reaches disk.
func (b *Builder) pipeline(opts Options, overrides Overrides) []step {
	steps := []step{
		{"overrides", func(_ context.Context, cfg *RootConfig) error {
			return applyOverrides(cfg, overrides)
		}},
		{"correct " + string(Development), correctLayer(Development)},
		{"correct " + string(Tests), correctLayer(Tests)},
	}

	if opts.Destroy || isDestroyRequested(opts.UserConfig) {
		logs.Debugf("teardown in progress, credential prompts skipped")
	} else {
		steps = append(steps, step{"credentials", func(ctx context.Context, cfg *RootConfig) error {
			return CompleteCredentials(ctx, cfg, b.prompter)
		}})
	}

	steps = append(steps, step{"validate", func(_ context.Context, cfg *RootConfig) error {
		cfg.WorkDirectoryPath = opts.WorkDirectoryPath
		cfg.Debug = opts.Debug
		return cfg.Validate()
	}})
	if opts.Generate {
		steps = append(steps, step{"persist", b.persistLayer(opts.ConfigPath)})
	}
	return append(steps, step{"enrich", func(ctx context.Context, cfg *RootConfig) error {
		return EnrichThemes(ctx, cfg, b.fetcher, b.releaseTimeout)
	}})
}

func correctLayer(name EnvName) Layer {
	return func(_ context.Context, cfg *RootConfig) error {
		return Correct(cfg, name)
	}
}

func (b *Builder) persistLayer(path string) Layer {
	return func(_ context.Context, cfg *RootConfig) error {
		if path == "" {
			path = ConfigFileName
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		if err := Persist(b.fs, abs, cfg); err != nil {
			return err
		}
		logs.Infof("Generated %s", abs)
		return nil
	}
}

func isDestroyRequested(userConfig map[string]any) bool {
	v, ok := userConfig[DestroyKey]
	if !ok {
		return false
	}
	if flag, isBool := v.(bool); isBool {
		return flag
	}
	return FormatValue(v) != "" && FormatValue(v) != "false"
}
