package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/opamlock/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var opts app.InstallOptions

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Pin and install every package of a lock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Options = c.global
			return c.app.Install(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Read the lock from this file instead of standard input")
	return cmd
}
