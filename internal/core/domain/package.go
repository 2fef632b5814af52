package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BaseVersion is the version opam reports for packages provided by the compiler itself.
// They are not real dependencies and are never locked.
const BaseVersion = "base"

const lockSep = "="

// Package is an opam package together with its version or git source.
type Package struct {
	// Name is the opam package name, unique within any collection of packages.
	Name string

	// Version is the installed version, or the git source the package is pinned to.
	Version Version
}

// ParseListingLine parses one line of `opam list` output: name, version, then ignored columns.
// Listed packages are installed, so the version is always fixed.
func ParseListingLine(line string) (Package, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Package{}, zerr.With(zerr.Wrap(ErrInvalidPackage, "failed to parse installed packages"), "line", line)
	}
	return Package{Name: fields[0], Version: Fixed(fields[1])}, nil
}

// ParseLockLine parses a "name = version" lock file line.
func ParseLockLine(line string) (Package, error) {
	parts := strings.Split(line, lockSep)
	if len(parts) != 2 {
		return Package{}, invalidLockLine(line)
	}

	name := strings.TrimSpace(parts[0])
	raw := strings.TrimSpace(parts[1])
	if name == "" || raw == "" {
		return Package{}, invalidLockLine(line)
	}

	return Package{Name: name, Version: ParseVersion(raw)}, nil
}

func invalidLockLine(line string) error {
	return zerr.With(zerr.Wrap(ErrInvalidLockLine, "failed to parse lock file"), "line", line)
}

// LockLine renders the package as a lock file line.
func (p Package) LockLine() string {
	return p.Name + " " + lockSep + " " + p.Version.String()
}

// InstallArg renders the package as an `opam install` argument.
// Pinned packages are named alone since their source is fixed by the pin.
func (p Package) InstallArg() string {
	if p.Version.IsGitRef() {
		return p.Name
	}
	return p.Name + "." + p.Version.String()
}

// IsBase reports whether the package ships with the compiler.
func (p Package) IsBase() bool {
	return !p.Version.IsGitRef() && p.Version.String() == BaseVersion
}
