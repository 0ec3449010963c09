package cawebenv

import (
	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/state"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

func newPruneCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Destroy the environments and remove unused Docker resources",
		Long: `Destroy the development and tests environments, then remove every unused
Docker container, image, volume and network, like 'docker system prune -af --volumes'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := logs.PromptConfirm("Destroy the environments and remove every unused Docker container, image, volume and network?")
				if err != nil {
					return err
				}
				if !ok {
					logs.Infof("prune cancelled")
					return nil
				}
			}

			err := spin(func(s *ui.Spinner) error {
				orc, err := newOrchestrator(cmd.Context(), s, true)
				if err != nil {
					return err
				}
				_, err = orc.Prune(cmd.Context(), teardownConfig(), debug)
				return err
			})
			if err != nil {
				return err
			}

			kvStore, err := state.DefaultKVStore(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := kvStore.PruneUnused(cmd.Context())
			if err != nil {
				logs.Warnf("can't clean state: %v", err)
				return nil
			}
			for ns, n := range removed {
				logs.Debugf("removed %d unused %s entries", n, ns)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't ask for confirmation")

	return cmd
}
