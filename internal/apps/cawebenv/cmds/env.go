package cawebenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	hostappconfig "github.com/CA-CODE-Works/cawebenv/internal/apps/cawebenv/config"
	"github.com/CA-CODE-Works/cawebenv/internal/cli"
	"github.com/CA-CODE-Works/cawebenv/internal/compose"
	"github.com/CA-CODE-Works/cawebenv/internal/dockerclient"
	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/prompt"
	"github.com/CA-CODE-Works/cawebenv/internal/releases"
	"github.com/CA-CODE-Works/cawebenv/internal/shell"
	"github.com/CA-CODE-Works/cawebenv/internal/sources"
	"github.com/CA-CODE-Works/cawebenv/internal/state"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
	"github.com/CA-CODE-Works/cawebenv/internal/wordpress"
	"github.com/CA-CODE-Works/cawebenv/internal/wpenv"
)

// spinnerPrompter stops the spinner while a question is on screen.
type spinnerPrompter struct {
	inner   envconfig.Prompter
	spinner *ui.Spinner
}

func (p spinnerPrompter) Prompt(ctx context.Context, questions []envconfig.Question) (map[string]string, error) {
	p.spinner.Stop()
	defer p.spinner.Start()
	return p.inner.Prompt(ctx, questions)
}

// credentialPrompter answers from ET_USERNAME/ET_API_KEY in the process
// environment first and asks on the terminal for the rest.
func credentialPrompter(settings hostappconfig.Settings, terminal envconfig.Prompter) envconfig.Prompter {
	return prompt.Chain{
		prompt.Static(settings.Credentials()),
		terminal,
	}
}

// newOrchestrator wires every collaborator of the project in the current
// directory. The work directory follows wp-env: one per .wp-env.json path.
func newOrchestrator(ctx context.Context, s *ui.Spinner, withPruner bool) (*cli.Orchestrator, error) {
	settings, err := hostappconfig.Get()
	if err != nil {
		return nil, err
	}

	configPath, err := filepath.Abs(envconfig.ConfigFileName)
	if err != nil {
		return nil, err
	}
	workDir := hostappconfig.WorkDirectoryPath(configPath)
	logs.Debugf("config %s, work directory %s", configPath, workDir)

	kvStore, err := state.DefaultKVStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	releaseClient := releases.NewClient(
		releases.WithCache(kvStore),
		releases.WithTimeout(settings.ReleaseTimeout),
		releases.WithToken(settings.GitHubToken),
	)
	builder := envconfig.NewBuilder(
		envconfig.WithPrompter(credentialPrompter(settings, spinnerPrompter{inner: prompt.NewTerminal(), spinner: s})),
		envconfig.WithReleaseFetcher(releaseClient),
		envconfig.WithReleaseTimeout(settings.ReleaseTimeout),
	)

	runner := shell.Exec{}
	stream := logs.Writer()
	bin, args := settings.ComposeArgs()
	composeClient := compose.NewClient(runner, workDir,
		compose.WithCommand(bin, args...),
		compose.WithStream(stream),
	)
	manager := wpenv.NewManager(runner, filepath.Dir(configPath),
		wpenv.WithStdin(os.Stdin),
		wpenv.WithStream(stream),
	)

	orcOpts := []cli.OrchestratorOption{
		cli.WithConfigPath(configPath),
		cli.WithProgress(s.Text),
	}
	if withPruner {
		dockerClient, err := dockerclient.NewDockerClient(ctx)
		if err != nil {
			return nil, err
		}
		orcOpts = append(orcOpts, cli.WithPruner(dockerClient))
	}

	return cli.NewOrchestrator(
		builder,
		manager,
		composeClient,
		sources.NewDownloader(runner, sources.WithRoot(workDir)),
		wordpress.NewConfigurator(composeClient),
		kvStore,
		workDir,
		orcOpts...,
	), nil
}
