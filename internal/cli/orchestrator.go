// Package cli sequences the collaborators of every cawebenv command: config
// build, wp-env, docker compose, theme downloads and WordPress configuration.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/CA-CODE-Works/cawebenv/internal/compose"
	"github.com/CA-CODE-Works/cawebenv/internal/dockerclient"
	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/shell"
	"github.com/CA-CODE-Works/cawebenv/internal/state"
	"github.com/CA-CODE-Works/cawebenv/internal/wpenv"
)

// DefaultTestScript is what the test command runs in tests-cli without
// explicit arguments.
const DefaultTestScript = "wp eval-file ./wp-caweb.php cb=test"

//go:generate mockgen -source=orchestrator.go -destination=mocks/orchestrator_mock.go -package=mocks

type ConfigBuilder interface {
	Build(ctx context.Context, opts envconfig.Options) (*envconfig.RootConfig, error)
}

type EnvironmentManager interface {
	Start(ctx context.Context, opts wpenv.StartOptions) (string, error)
	Stop(ctx context.Context, debug bool) error
	Destroy(ctx context.Context, debug bool) error
}

type Compose interface {
	HasOverride() bool
	WriteOverride() (string, error)
	Down(ctx context.Context, removeOrphans bool) error
	DownOverride(ctx context.Context) error
	UpMany(ctx context.Context, services []string, removeOrphans bool) error
}

type SourceDownloader interface {
	DownloadAll(ctx context.Context, cfg *envconfig.RootConfig) error
}

type WordPress interface {
	ConfigureAll(ctx context.Context, cfg *envconfig.RootConfig) error
	RunCLI(ctx context.Context, name envconfig.EnvName, script string) (shell.Result, error)
}

type ChecksumStore interface {
	ChecksumChanged(ctx context.Context, key state.KVStoreKey, checksum string) (bool, error)
	Delete(ctx context.Context, key state.KVStoreKey) error
}

type Pruner interface {
	Prune(ctx context.Context) (dockerclient.PruneReport, error)
}

// Orchestrator runs one project's environment. Every collaborator is
// required except the pruner, which only prune needs.
type Orchestrator struct {
	builder    ConfigBuilder
	env        EnvironmentManager
	compose    Compose
	downloader SourceDownloader
	wordpress  WordPress
	checksums  ChecksumStore
	pruner     Pruner

	workDir    string
	configPath string
	progress   func(string)
}

type OrchestratorOption func(*Orchestrator)

func WithPruner(p Pruner) OrchestratorOption {
	return func(o *Orchestrator) {
		o.pruner = p
	}
}

// WithProgress receives a short description of every step as it begins.
func WithProgress(fn func(string)) OrchestratorOption {
	return func(o *Orchestrator) {
		if fn != nil {
			o.progress = fn
		}
	}
}

// WithConfigPath sets where .wp-env.json is written.
func WithConfigPath(path string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.configPath = path
	}
}

func NewOrchestrator(
	builder ConfigBuilder,
	env EnvironmentManager,
	compose Compose,
	downloader SourceDownloader,
	wordpress WordPress,
	checksums ChecksumStore,
	workDir string,
	opts ...OrchestratorOption,
) *Orchestrator {
	o := &Orchestrator{
		builder:    builder,
		env:        env,
		compose:    compose,
		downloader: downloader,
		wordpress:  wordpress,
		checksums:  checksums,
		workDir:    workDir,
		progress:   func(string) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type StartOptions struct {
	UserConfig map[string]any
	Update     bool
	Xdebug     string
	Debug      bool

	// SkipGenerate starts from the .wp-env.json already on disk.
	SkipGenerate bool
}

func (o *Orchestrator) buildOptions(userConfig map[string]any, debug, generate, destroy bool) envconfig.Options {
	return envconfig.Options{
		UserConfig:        userConfig,
		Generate:          generate,
		Destroy:           destroy,
		Debug:             debug,
		WorkDirectoryPath: o.workDir,
		ConfigPath:        o.configPath,
	}
}

func (o *Orchestrator) checksumKey() state.KVStoreKey {
	return state.ChecksumKey(o.workDir)
}

// Start builds and writes the config, starts wp-env and phpMyAdmin, and
// configures WordPress when asked to or when the config changed since the
// last successful start. It returns the wp-env start output.
func (o *Orchestrator) Start(ctx context.Context, opts StartOptions) (string, error) {
	o.progress("Configuring .wp-env.json")
	cfg, err := o.builder.Build(ctx, o.buildOptions(opts.UserConfig, opts.Debug, !opts.SkipGenerate, false))
	if err != nil {
		return "", err
	}

	signature, err := cfg.Signature()
	if err != nil {
		return "", fmt.Errorf("config signature: %w", err)
	}
	changed, err := o.checksums.ChecksumChanged(ctx, o.checksumKey(), signature)
	if err != nil {
		return "", err
	}
	configure := opts.Update || changed
	logs.Debugf("configure WordPress: %v (update=%v, config changed=%v)", configure, opts.Update, changed)

	if configure && o.compose.HasOverride() {
		o.progress("Removing previous services")
		if err := o.compose.Down(ctx, true); err != nil {
			return "", o.forgetChecksum(ctx, err)
		}
	}

	o.progress("Starting WordPress environment")
	out, err := o.env.Start(ctx, wpenv.StartOptions{
		Update: opts.Update,
		Xdebug: opts.Xdebug,
		Debug:  opts.Debug,
		Env:    envconfig.Ports(opts.UserConfig),
	})
	if err != nil {
		return "", o.forgetChecksum(ctx, err)
	}

	o.progress("Starting phpMyAdmin")
	if _, err := o.compose.WriteOverride(); err != nil {
		return "", o.forgetChecksum(ctx, err)
	}
	if err := o.compose.UpMany(ctx, compose.PHPMyAdminServices(), false); err != nil {
		return "", o.forgetChecksum(ctx, err)
	}

	if configure {
		o.progress("Downloading themes")
		if err := o.downloader.DownloadAll(ctx, cfg); err != nil {
			return "", o.forgetChecksum(ctx, err)
		}

		o.progress("Configuring WordPress")
		if err := o.wordpress.ConfigureAll(ctx, cfg); err != nil {
			return "", o.forgetChecksum(ctx, err)
		}
	}

	o.progress("Done!")
	return out, nil
}

// resetChecksum drops the stored checksum so the next start configures
// WordPress again.
func (o *Orchestrator) resetChecksum(ctx context.Context) {
	if err := o.checksums.Delete(context.WithoutCancel(ctx), o.checksumKey()); err != nil {
		logs.Debugf("can't reset config checksum: %v", err)
	}
}

func (o *Orchestrator) forgetChecksum(ctx context.Context, err error) error {
	o.resetChecksum(ctx)
	return err
}

// Stop stops phpMyAdmin and the wp-env containers.
func (o *Orchestrator) Stop(ctx context.Context, debug bool) error {
	o.progress("Stopping WordPress environment")
	if o.compose.HasOverride() {
		if err := o.compose.DownOverride(ctx); err != nil {
			return err
		}
	}
	if err := o.env.Stop(ctx, debug); err != nil {
		return err
	}
	o.progress("Stopped WordPress environment.")
	return nil
}

// Destroy removes phpMyAdmin and every wp-env container, volume and file.
// The config is built in teardown mode, so nothing is prompted.
func (o *Orchestrator) Destroy(ctx context.Context, userConfig map[string]any, debug bool) error {
	if _, err := o.builder.Build(ctx, o.buildOptions(userConfig, debug, false, true)); err != nil {
		return err
	}

	o.progress("Destroying WordPress environment")
	if o.compose.HasOverride() {
		if err := o.compose.DownOverride(ctx); err != nil {
			return err
		}
	}
	if err := o.env.Destroy(ctx, debug); err != nil {
		return err
	}
	o.resetChecksum(ctx)

	o.progress("Removed WordPress environment.")
	return nil
}

// ErrNoPruner is returned by Prune when no pruner was configured.
var ErrNoPruner = errors.New("no docker pruner configured")

// Prune destroys the environment and removes every unused Docker container,
// image, volume and network.
func (o *Orchestrator) Prune(ctx context.Context, userConfig map[string]any, debug bool) (dockerclient.PruneReport, error) {
	if o.pruner == nil {
		return dockerclient.PruneReport{}, ErrNoPruner
	}
	if err := o.Destroy(ctx, userConfig, debug); err != nil {
		return dockerclient.PruneReport{}, err
	}

	o.progress("Removing unused Docker resources")
	report, err := o.pruner.Prune(ctx)
	if err != nil {
		return dockerclient.PruneReport{}, err
	}
	o.progress("Pruned: " + report.String())
	return report, nil
}

// Test builds the config and runs script with WP-CLI in the tests
// environment. A non-zero exit is returned in the result, not as an error.
func (o *Orchestrator) Test(ctx context.Context, userConfig map[string]any, script string, debug bool) (shell.Result, error) {
	o.progress("Configuring .wp-env.json")
	cfg, err := o.builder.Build(ctx, o.buildOptions(userConfig, debug, false, false))
	if err != nil {
		return shell.Result{}, err
	}
	if script == "" {
		script = DefaultTestScript
	}

	o.progress("Running " + script)
	res, err := o.wordpress.RunCLI(ctx, envconfig.Tests, script)
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Result, nil
	}
	if err != nil {
		return shell.Result{}, err
	}
	logs.Debugf("tests-cli ran against %s", cfg.CoreRef(envconfig.Tests))
	return res, nil
}
