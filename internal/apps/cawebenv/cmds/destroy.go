package cawebenv

import (
	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/envconfig"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

func newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the WordPress environments",
		Long: `Remove phpMyAdmin and every container, volume and file of the development
and tests environments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return spin(func(s *ui.Spinner) error {
				orc, err := newOrchestrator(cmd.Context(), s, false)
				if err != nil {
					return err
				}
				return orc.Destroy(cmd.Context(), teardownConfig(), debug)
			})
		},
	}
}

// teardownConfig marks the override map of destroy and prune.
func teardownConfig() map[string]any {
	return map[string]any{envconfig.DestroyKey: true}
}
