package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/opamlock/internal/app"
)

func (c *CLI) newLockCmd() *cobra.Command {
	var opts app.LockOptions

	cmd := &cobra.Command{
		Use:   "lock [PACKAGE]",
		Short: "Print the lock of the current switch",
		Long: "Print the lock of every installed package, or of the dependencies of PACKAGE.\n" +
			"Git pins are locked to the commit they have checked out unless the pinned branch already names it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = c.global
			opts.Package = packageArg(args)
			return c.app.Lock(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the lock to this file instead of printing it")
	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the lock to the configured lock file")
	return cmd
}
