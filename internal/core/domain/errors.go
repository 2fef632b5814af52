package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidPackage is returned when a line of the installed-package listing has fewer than two fields.
	ErrInvalidPackage = zerr.New("invalid package line")

	// ErrInvalidLockLine is returned when a lock file line is not of the form "name = version".
	ErrInvalidLockLine = zerr.New("invalid lock line, expected format: name = version")

	// ErrInvalidGitHash is returned when the pinned source of a package does not read "git (<hash>)".
	ErrInvalidGitHash = zerr.New("invalid git hash output")

	// ErrProcessFailure is returned when an external command exits with a non-zero status.
	ErrProcessFailure = zerr.New("command exited with non-zero status")

	// ErrProcessStartFailed is returned when an external command cannot be started at all.
	ErrProcessStartFailed = zerr.New("failed to start command")

	// ErrEmptyCommand is returned when a command with no arguments is scheduled.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrDuplicatePackage is returned when a package name occurs more than once in a lock state.
	ErrDuplicatePackage = zerr.New("package appears more than once in lock")

	// ErrLockDrift is returned when the live switch no longer matches a lock file.
	ErrLockDrift = zerr.New("switch does not match lock file")

	// ErrLockfileReadFailed is returned when a lock file cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lock file")

	// ErrLockfileWriteFailed is returned when a lock file cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lock file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidEnvOverride is returned when a boolean environment override cannot be parsed.
	ErrInvalidEnvOverride = zerr.New("invalid boolean in environment override")
)

// NewProcessFailure builds the error reported when args exited with exitCode.
// The command line is kept verbatim so the failing query can be identified.
func NewProcessFailure(args []string, exitCode int) error {
	err := zerr.Wrap(ErrProcessFailure, "external command failed")
	err = zerr.With(err, "command", strings.Join(args, " "))
	return zerr.With(err, "exit_code", exitCode)
}
