// Package config provides the configuration loader for opamlock.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvVerbose = "OPAMLOCK_VERBOSE"
	EnvDebug   = "OPAMLOCK_DEBUG"
	EnvOpam    = "OPAMLOCK_OPAM"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	lookup func(string) (string, bool)
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, lookup: os.LookupEnv}
}

// Load resolves the configuration for cwd: defaults, then the nearest config file,
// then environment overrides.
func (l *Loader) Load(cwd string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path, ok := findConfiguration(cwd); ok {
		if err := l.applyFile(&cfg, path); err != nil {
			return domain.Config{}, err
		}
	}

	if err := l.applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}

	return cfg, nil
}

// LoadFile resolves the configuration from an explicit file instead of searching for one.
func (l *Loader) LoadFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if err := l.applyFile(&cfg, path); err != nil {
		return domain.Config{}, err
	}
	if err := l.applyEnv(&cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func (l *Loader) applyFile(cfg *domain.Config, path string) error {
	var file Configfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return zerr.With(err, "path", path)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, reading it as version %s",
			file.Version, path, SupportedVersion))
	}

	if file.Opam != nil && *file.Opam != "" {
		cfg.Opam = *file.Opam
	}
	if file.Lockfile != nil && *file.Lockfile != "" {
		cfg.Lockfile = resolvePath(path, *file.Lockfile)
	}
	if file.Verbose != nil {
		cfg.Verbose = *file.Verbose
	}
	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
	if file.JSONLogs != nil {
		cfg.JSONLogs = *file.JSONLogs
	}
	return nil
}

func (l *Loader) applyEnv(cfg *domain.Config) error {
	if v, ok := l.lookup(EnvOpam); ok && v != "" {
		cfg.Opam = v
	}

	for name, target := range map[string]*bool{EnvVerbose: &cfg.Verbose, EnvDebug: &cfg.Debug} {
		v, ok := l.lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrInvalidEnvOverride, "environment override is not a boolean"), "variable", name)
			return zerr.With(err, "value", v)
		}
		*target = b
	}
	return nil
}

// resolvePath interprets a relative path from the config file as relative to its directory.
func resolvePath(configPath, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by the loader or given on the command line
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error())
	}

	return nil
}
