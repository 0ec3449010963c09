package cawebenv

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	hostappconfig "github.com/CA-CODE-Works/cawebenv/internal/apps/cawebenv/config"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/releases"
	"github.com/CA-CODE-Works/cawebenv/internal/runtime"
	"github.com/CA-CODE-Works/cawebenv/internal/state"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
	"github.com/CA-CODE-Works/cawebenv/internal/version"
)

var (
	verbosity int
	debug     bool
)

const updateCheckTimeout = 2 * time.Second

func Execute(rt *runtime.Runtime) error {
	rootCmd := &cobra.Command{
		Use:   "cawebenv",
		Short: "Local CAWeb WordPress environments",
		Long: `cawebenv provisions local CAWeb Publishing WordPress environments.

Every project gets a development and a tests environment, managed by
@wordpress/env, with phpMyAdmin next to each of them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := verbosity
			if debug && v == 0 {
				v = 1
			}
			logs.SetDebugVerbosity(v)
			rt.OpenRunLog()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			printUpdateBanner(cmd.Context())
		},
		// we will handle that
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity level")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newStopCmd())
	rootCmd.AddCommand(newDestroyCmd())
	rootCmd.AddCommand(newPruneCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd.ExecuteContext(rt.Ctx())
}

// spin runs fn under a spinner, plain when CAWEB_GUI is set.
func spin(fn func(s *ui.Spinner) error) error {
	settings, err := hostappconfig.Get()
	if err != nil {
		return err
	}
	return ui.WithSpinner(settings.GUI, fn)
}

// printUpdateBanner tells the user about a newer cawebenv release. The
// lookup is cached and bounded, failures are silent.
func printUpdateBanner(ctx context.Context) {
	settings, err := hostappconfig.Get()
	if err != nil || settings.GUI {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, updateCheckTimeout)
	defer cancel()

	opts := []releases.ClientOption{
		releases.WithTimeout(updateCheckTimeout),
		releases.WithToken(settings.GitHubToken),
	}
	if kvStore, err := state.DefaultKVStore(ctx); err == nil {
		opts = append(opts, releases.WithCache(kvStore))
	}

	update := releases.NewClient(opts...).CheckUpdate(ctx, version.Get())
	releases.PrintUpdateBanner(os.Stderr, update)
}
