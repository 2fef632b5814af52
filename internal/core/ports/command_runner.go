// Package ports defines the core interfaces for the application.
package ports

import "context"

// CommandRunner runs external commands for the pipeline driver.
//
//go:generate go run go.uber.org/mock/mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Run executes args[0] with args[1:] and blocks until it exits.
	//
	// It returns the captured standard output split into lines. A non-zero exit
	// status is reported as an error wrapping domain.ErrProcessFailure.
	Run(ctx context.Context, args []string) ([]string, error)
}
