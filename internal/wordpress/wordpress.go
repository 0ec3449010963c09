// Package wordpress configures the WordPress instances wp-env started, using
// WP-CLI inside each environment's cli container.
package wordpress

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/shell"
)

//go:generate mockgen -source=wordpress.go -destination=mocks/cli_runner_mock.go -package=mocks

// CLIRunner runs a bash script in a compose service. *compose.Client
// satisfies it.
type CLIRunner interface {
	Run(ctx context.Context, service, script string) (shell.Result, error)
}

// CLIService is the WP-CLI container of an environment.
func CLIService(name envconfig.EnvName) string {
	return name.Prefix() + "cli"
}

// skipConfigKeys drive the steps of Configure or are consumed elsewhere, and
// never end up in wp-config.php.
var skipConfigKeys = map[string]struct{}{
	envconfig.KeyMultiSite:    {},
	envconfig.KeySubdomain:    {},
	envconfig.KeyPermalink:    {},
	envconfig.KeyETUsername:   {},
	envconfig.KeyETAPIKey:     {},
	envconfig.KeyCAWebVersion: {},
	envconfig.KeyCAWebGitUser: {},
	"CAWEB_ACCESS_TOKEN":      {},
}

type Configurator struct {
	cli CLIRunner
}

func NewConfigurator(cli CLIRunner) *Configurator {
	return &Configurator{cli: cli}
}

// Configure applies the settings of one environment: multisite conversion,
// permalink structure, then every remaining setting as a wp-config constant.
func (c *Configurator) Configure(ctx context.Context, cfg *envconfig.RootConfig, name envconfig.EnvName) error {
	ec := cfg.Env(name)
	if ec == nil {
		return fmt.Errorf("unknown environment %s", name)
	}
	service := CLIService(name)
	s := ec.Settings

	multisite := isTrue(s[envconfig.KeyMultiSite])
	if multisite {
		script := "wp core multisite-convert"
		if isTrue(s[envconfig.KeySubdomain]) {
			script += " --subdomains"
		}
		// converting an existing network fails, which is fine
		if _, err := c.cli.Run(ctx, service, script); err != nil {
			logs.Debugf("%s: multisite conversion: %v", name, err)
		}
	}

	if permalink, ok := s.String(envconfig.KeyPermalink); ok && permalink != "" {
		script := "wp rewrite structure " + quote(permalink)
		if multisite {
			script += " --hard"
		}
		if _, err := c.cli.Run(ctx, service, script); err != nil {
			return fmt.Errorf("%s: rewrite permalink structure: %w", name, err)
		}
	}

	script := ConfigScript(s)
	if script == "" {
		return nil
	}
	if _, err := c.cli.Run(ctx, service, script); err != nil {
		return fmt.Errorf("%s: set wp-config constants: %w", name, err)
	}
	logs.Debugf("%s: wordpress configured", name)
	return nil
}

// ConfigureAll configures every environment concurrently.
func (c *Configurator) ConfigureAll(ctx context.Context, cfg *envconfig.RootConfig) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range envconfig.EnvNames {
		g.Go(func() error {
			return c.Configure(gctx, cfg, name)
		})
	}
	return g.Wait()
}

// ConfigScript renders the wp config set calls for s, in key order, chained
// so the first failure stops the script.
func ConfigScript(s envconfig.Settings) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		if _, skip := skipConfigKeys[k]; !skip {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	cmds := make([]string, 0, len(keys))
	for _, k := range keys {
		v := s[k]
		cmd := "wp config set " + quote(k) + " " + quote(envconfig.FormatValue(v))
		if _, isString := v.(string); !isString {
			cmd += " --raw"
		}
		cmds = append(cmds, cmd)
	}
	return strings.Join(cmds, " && ")
}

// RunCLI runs an arbitrary WP-CLI script in the environment's cli container.
func (c *Configurator) RunCLI(ctx context.Context, name envconfig.EnvName, script string) (shell.Result, error) {
	return c.cli.Run(ctx, CLIService(name), script)
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	default:
		return false
	}
}

// quote wraps s in single quotes for bash.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
