// Package commands implements the CLI commands for opamlock.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/opamlock/internal/app"
	"go.trai.ch/opamlock/internal/build"
)

// CLI represents the command line interface for opamlock.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	global  app.Options
}

// Application represents the application logic interface.
type Application interface {
	Lock(ctx context.Context, opts app.LockOptions) error
	Install(ctx context.Context, opts app.InstallOptions) error
	Verify(ctx context.Context, opts app.VerifyOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "opamlock",
		Short:         "Capture and replay reproducible opam switches",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&c.global.Verbose, "verbose", "v", false, "Print every opam command before running it")
	flags.BoolVar(&c.global.Debug, "debug", false, "Also print the output and duration of every opam command")
	flags.StringVar(&c.global.Opam, "opam", "", "opam executable to run (default \"opam\")")
	flags.StringVarP(&c.global.ConfigPath, "config", "c", "", "Read configuration from this file instead of searching for .opamlock.yaml")

	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// packageArg returns the optional PACKAGE argument.
func packageArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
