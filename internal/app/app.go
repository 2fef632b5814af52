// Package app implements the application layer for opamlock.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.trai.ch/opamlock/internal/adapters/telemetry"
	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports"
	"go.trai.ch/opamlock/internal/engine/installer"
	"go.trai.ch/opamlock/internal/engine/pipeline"
	"go.trai.ch/opamlock/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	runner       ports.CommandRunner
	store        ports.LockfileStore
	tracer       ports.Tracer
	stdin        io.Reader
	stdout       io.Writer
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	runner ports.CommandRunner,
	store ports.LockfileStore,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		runner:       runner,
		store:        store,
		tracer:       tracer,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		getwd:        os.Getwd,
	}
}

// WithIO replaces the streams the lock is read from and printed to.
func (a *App) WithIO(stdin io.Reader, stdout io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	return a
}

// WithWorkingDir fixes the directory the config file search starts from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Options are the settings shared by every command. Flags only switch tracing on;
// a config file or environment can enable it as well.
type Options struct {
	ConfigPath string
	Opam       string
	Verbose    bool
	Debug      bool
}

// LockOptions configuration for the Lock method.
type LockOptions struct {
	Options

	// Package scopes the lock to its dependencies. Empty locks the whole switch.
	Package string

	// Output is the file the lock is written to. Empty prints it.
	Output string

	// Write saves the lock to the configured lock file when Output is empty.
	Write bool
}

// Lock resolves the current switch and prints or saves the lock.
func (a *App) Lock(ctx context.Context, opts LockOptions) error {
	s, err := a.start(opts.Options)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	state, err := s.resolve(ctx, opts.Package)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve lock")
	}

	path := opts.Output
	if path == "" && opts.Write {
		path = s.cfg.Lockfile
	}
	if path == "" {
		return a.store.Encode(a.stdout, state)
	}

	if err := a.store.Save(path, state); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("locked %d pins and %d packages to %s", len(state.Pins), len(state.Installs), path))
	return nil
}

// InstallOptions configuration for the Install method.
type InstallOptions struct {
	Options

	// File is the lock file to replay. Empty reads the lock from standard input.
	File string
}

// Install replays a lock into the current switch.
func (a *App) Install(ctx context.Context, opts InstallOptions) error {
	s, err := a.start(opts.Options)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	var state domain.LockState
	if opts.File == "" {
		state, err = a.store.Decode(a.stdin)
	} else {
		state, err = a.store.Load(opts.File)
	}
	if err != nil {
		return err
	}

	if state.IsEmpty() {
		a.logger.Warn("lock is empty, nothing to install")
		return nil
	}

	if _, err := pipeline.Run(ctx, s.driver, installer.New(s.cfg.Opam).Install(state)); err != nil {
		return zerr.Wrap(err, "failed to install lock")
	}
	a.logger.Info(fmt.Sprintf("installed %d pins and %d packages", len(state.Pins), len(state.Installs)))
	return nil
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	Options

	// Package scopes the comparison like LockOptions.Package.
	Package string

	// File is the lock file to compare against. Empty uses the configured lock file.
	File string
}

// Verify resolves the current switch and compares it with a lock file.
// Every differing package is reported before ErrLockDrift is returned.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	s, err := a.start(opts.Options)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	path := opts.File
	if path == "" {
		path = s.cfg.Lockfile
	}

	locked, err := a.store.Load(path)
	if err != nil {
		return err
	}

	live, err := s.resolve(ctx, opts.Package)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve lock")
	}

	// Drift is decided per package name; line order in the lock file is irrelevant.
	diffs := locked.Diff(live)
	if len(diffs) == 0 {
		a.logger.Info(path + " is up to date")
		return nil
	}

	for _, d := range diffs {
		a.logger.Warn(fmt.Sprintf("%s: locked %s, installed %s", d.Name, orAbsent(d.Locked), orAbsent(d.Live)))
	}

	err = zerr.With(zerr.Wrap(domain.ErrLockDrift, "lock verification failed"), "path", path)
	err = zerr.With(err, "locked_digest", locked.Digest())
	return zerr.With(err, "live_digest", live.Digest())
}

func orAbsent(v string) string {
	if v == "" {
		return "(absent)"
	}
	return v
}

// session holds the per-invocation configuration and driver.
type session struct {
	app      *App
	cfg      domain.Config
	driver   *pipeline.Driver
	shutdown func(context.Context) error
}

func (a *App) start(opts Options) (*session, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if j, ok := a.logger.(interface{ SetJSON(bool) }); ok && cfg.JSONLogs {
		j.SetJSON(true)
	}

	tracer := a.tracer
	shutdown := func(context.Context) error { return nil }
	if cfg.Debug {
		// Debug runs report the duration of every command through the logger.
		tp := telemetry.NewProvider(telemetry.NewBridge(a.logger))
		tracer = telemetry.NewProviderTracer(tp, telemetry.InstrumentationName)
		shutdown = tp.Shutdown
	}

	return &session{
		app:      a,
		cfg:      cfg,
		driver:   pipeline.NewDriver(a.runner, a.logger, tracer, cfg.Options),
		shutdown: shutdown,
	}, nil
}

func (a *App) loadConfig(opts Options) (domain.Config, error) {
	var cfg domain.Config
	var err error
	if opts.ConfigPath != "" {
		cfg, err = a.configLoader.LoadFile(opts.ConfigPath)
	} else {
		cwd, wdErr := a.getwd()
		if wdErr != nil {
			return domain.Config{}, zerr.Wrap(wdErr, "failed to get working directory")
		}
		cfg, err = a.configLoader.Load(cwd)
	}
	if err != nil {
		return domain.Config{}, err
	}

	if opts.Opam != "" {
		cfg.Opam = opts.Opam
	}
	cfg.Verbose = cfg.Verbose || opts.Verbose
	cfg.Debug = cfg.Debug || opts.Debug
	return cfg, nil
}

func (s *session) resolve(ctx context.Context, pkg string) (domain.LockState, error) {
	req := domain.All()
	if pkg != "" {
		req = domain.DependenciesOf(pkg)
	}

	state, err := pipeline.Run(ctx, s.driver, resolver.New(s.cfg.Opam, s.app.logger, s.cfg.Options).State(req))
	if err != nil {
		return domain.LockState{}, err
	}
	if err := state.Validate(); err != nil {
		return domain.LockState{}, err
	}
	return state, nil
}

func (s *session) close(ctx context.Context) {
	if s.cfg.Debug {
		s.app.logger.Info(fmt.Sprintf("%d commands executed", s.driver.Executed()))
	}
	_ = s.shutdown(ctx)
}
