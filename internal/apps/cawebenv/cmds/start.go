package cawebenv

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/cli"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

func newStartCmd() *cobra.Command {
	var (
		update   bool
		generate bool
		xdebug   string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Generate .wp-env.json and start the WordPress environments",
		Long: `Generate .wp-env.json from the flags and the defaults, start the
development and tests environments with @wordpress/env and phpMyAdmin next to
them.

WordPress is configured again when --update is passed or the configuration
changed since the last start.`,
		Args: cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.BoolVar(&update, "update", false, "Download source updates and apply WordPress configuration")
	flags.BoolVar(&generate, "generate", true, "Write .wp-env.json before starting, --generate=false keeps the existing file")
	flags.StringVar(&xdebug, "xdebug", "", "Enable Xdebug with the given comma separated modes")
	flags.Lookup("xdebug").NoOptDefVal = "debug"
	overrides := attachOverrideFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var out string
		err := spin(func(s *ui.Spinner) error {
			orc, err := newOrchestrator(cmd.Context(), s, false)
			if err != nil {
				return err
			}
			out, err = orc.Start(cmd.Context(), cli.StartOptions{
				UserConfig: overrides.UserConfig(cmd),
				Update:     update,
				Xdebug:     xdebug,
				Debug:      debug,

				SkipGenerate: !generate,
			})
			return err
		})
		if err != nil {
			return err
		}

		if out = strings.TrimSpace(out); out != "" {
			logs.Codef("%s", out)
		}
		return nil
	}

	return cmd
}
