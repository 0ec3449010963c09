package cawebenv

import (
	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the WordPress environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return spin(func(s *ui.Spinner) error {
				orc, err := newOrchestrator(cmd.Context(), s, false)
				if err != nil {
					return err
				}
				return orc.Stop(cmd.Context(), debug)
			})
		},
	}
}
