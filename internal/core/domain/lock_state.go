package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// LockState is a reproducible snapshot of a switch.
// Pins are packages bound to a git source, Installs are packages at a published version.
// The two sets are disjoint by name. A LockState is never mutated once built.
type LockState struct {
	Pins     []Package
	Installs []Package
}

// NewLockState partitions packages by version kind: git sources become pins, the rest installs.
func NewLockState(pkgs []Package) LockState {
	var s LockState
	for _, p := range pkgs {
		if p.Version.IsGitRef() {
			s.Pins = append(s.Pins, p)
		} else {
			s.Installs = append(s.Installs, p)
		}
	}
	return s
}

// Packages returns pins followed by installs.
func (s LockState) Packages() []Package {
	return slices.Concat(s.Pins, s.Installs)
}

// IsEmpty reports whether the state holds no package.
func (s LockState) IsEmpty() bool {
	return len(s.Pins) == 0 && len(s.Installs) == 0
}

// Validate checks that no package name occurs twice.
func (s LockState) Validate() error {
	seen := make(map[string]struct{}, len(s.Pins)+len(s.Installs))
	for _, p := range s.Packages() {
		if _, dup := seen[p.Name]; dup {
			return zerr.With(zerr.Wrap(ErrDuplicatePackage, "invalid lock state"), "package", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// LockLines renders every package as a lock file line, pins first.
func (s LockState) LockLines() []string {
	pkgs := s.Packages()
	lines := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		lines = append(lines, p.LockLine())
	}
	return lines
}

// InstallArgs renders every package as an `opam install` argument, pins first.
func (s LockState) InstallArgs() []string {
	pkgs := s.Packages()
	args := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		args = append(args, p.InstallArg())
	}
	return args
}

// Digest fingerprints the canonical lock file rendering.
// Package order matters: two states only share a digest when they render identically.
func (s LockState) Digest() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(s.LockLines(), "\n")))
}

// PackageDiff describes a package whose locked and live versions differ.
// An empty side means the package is absent there.
type PackageDiff struct {
	Name   string
	Locked string
	Live   string
}

// Diff compares s, the locked state, with live. The result is sorted by package name.
func (s LockState) Diff(live LockState) []PackageDiff {
	locked := versionsByName(s)
	current := versionsByName(live)

	var diffs []PackageDiff
	for name, v := range locked {
		if cur, ok := current[name]; !ok || cur != v {
			diffs = append(diffs, PackageDiff{Name: name, Locked: v, Live: cur})
		}
	}
	for name, cur := range current {
		if _, ok := locked[name]; !ok {
			diffs = append(diffs, PackageDiff{Name: name, Live: cur})
		}
	}

	slices.SortFunc(diffs, func(a, b PackageDiff) int {
		return strings.Compare(a.Name, b.Name)
	})
	return diffs
}

func versionsByName(s LockState) map[string]string {
	m := make(map[string]string, len(s.Pins)+len(s.Installs))
	for _, p := range s.Packages() {
		m[p.Name] = p.Version.String()
	}
	return m
}
