package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/opamlock/internal/app"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	var opts app.VerifyOptions

	cmd := &cobra.Command{
		Use:   "verify [PACKAGE]",
		Short: "Check that the current switch still matches a lock file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.global
			opts.Package = packageArg(args)
			return c.app.Verify(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "Lock file to compare against (default: the configured lock file)")
	return cmd
}
