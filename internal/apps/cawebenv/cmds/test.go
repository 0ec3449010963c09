package cawebenv

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/shell"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [flags] [-- WP-CLI COMMAND]",
		Short: "Run a WP-CLI command in the tests environment",
		Long: `Build the configuration and run a WP-CLI command in the tests-cli container.

Without a command the CAWeb test suite runs: wp eval-file ./wp-caweb.php cb=test`,
	}
	overrides := attachOverrideFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var res shell.Result
		err := spin(func(s *ui.Spinner) error {
			orc, err := newOrchestrator(cmd.Context(), s, false)
			if err != nil {
				return err
			}
			res, err = orc.Test(cmd.Context(), overrides.UserConfig(cmd), strings.Join(args, " "), debug)
			return err
		})
		if err != nil {
			return err
		}

		logs.Codef("exit code: %d", res.ExitCode)
		if out := strings.TrimSpace(res.Stdout); out != "" {
			logs.Codef("%s", out)
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("tests exited with code %d", res.ExitCode)
		}
		return nil
	}

	return cmd
}
