package domain

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = ".opamlock.yaml"

	// DefaultOpamBinary is the package manager executable used when none is configured.
	DefaultOpamBinary = "opam"

	// DefaultLockfileName is the lock file used when a path is requested but not given.
	DefaultLockfileName = "opam.lock"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Options are the diagnostic switches threaded through command execution.
type Options struct {
	// Verbose echoes every command line and notes ignored pins.
	Verbose bool

	// Debug additionally echoes the captured output of every command.
	Debug bool
}

// Tracing reports whether command lines are echoed.
func (o Options) Tracing() bool {
	return o.Verbose || o.Debug
}

// Config is the resolved tool configuration.
type Config struct {
	// Opam is the package manager executable.
	Opam string

	// Lockfile is the default lock file path.
	Lockfile string

	// JSONLogs switches the logger to JSON output.
	JSONLogs bool

	Options
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Opam:     DefaultOpamBinary,
		Lockfile: DefaultLockfileName,
	}
}
