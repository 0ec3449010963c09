package cawebenv

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CA-CODE-Works/cawebenv/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of cawebenv",
		Long:  `Display the current version of cawebenv.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", version.Get())
		},
	}

	return cmd
}
