// Package resolver builds the pipeline that snapshots an opam switch into a LockState.
package resolver

import (
	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/core/ports"
	"go.trai.ch/opamlock/internal/engine/pipeline"
)

// Resolver queries opam for installed packages and pins and reconciles them by name.
type Resolver struct {
	opam   string
	logger ports.Logger
	opts   domain.Options
}

// New creates a Resolver invoking the opam executable at opam.
// Ignored non-git pins are reported to logger when opts.Verbose is set.
func New(opam string, logger ports.Logger, opts domain.Options) *Resolver {
	return &Resolver{
		opam:   opam,
		logger: logger,
		opts:   opts,
	}
}

// State describes the full resolution of req:
//
//  1. list installed packages (scoped to the dependencies of a package when asked)
//  2. read the pin registry
//  3. split installed packages into pinned and plain ones by name
//  4. read the checked-out commit of every pinned package, in listing order
//  5. lock each pin to its branch or commit
func (r *Resolver) State(req domain.Request) pipeline.Pipeline[domain.LockState] {
	return pipeline.Bind(r.installed(req), func(installed []domain.Package) pipeline.Pipeline[domain.LockState] {
		return pipeline.Bind(r.pins(), func(pins map[string]domain.Pin) pipeline.Pipeline[domain.LockState] {
			var plain []domain.Package
			lookups := make([]pipeline.Pipeline[domain.Package], 0, len(pins))

			for _, pkg := range installed {
				pin, pinned := pins[pkg.Name]
				if !pinned {
					plain = append(plain, pkg)
					continue
				}
				lookups = append(lookups, r.lock(pin))
			}

			return pipeline.Map(pipeline.Sequence(lookups), func(locked []domain.Package) domain.LockState {
				return domain.LockState{Pins: nilIfEmpty(locked), Installs: plain}
			})
		})
	})
}

// installed lists the packages of the switch, without the header line and the base packages.
func (r *Resolver) installed(req domain.Request) pipeline.Pipeline[[]domain.Package] {
	args := []string{r.opam, "list", "--installed"}
	if !req.IsAll() {
		args = append(args, "--recursive", "--required-by", req.Package)
	}

	return pipeline.Try(pipeline.Command(args...), ParseListing)
}

// pins reads the git pins of the registry, keyed by package name.
func (r *Resolver) pins() pipeline.Pipeline[map[string]domain.Pin] {
	return pipeline.Try(pipeline.Command(r.opam, "pin"), func(lines []string) (map[string]domain.Pin, error) {
		pins := make(map[string]domain.Pin, len(lines))
		for _, line := range lines {
			pin, ok, err := domain.ParsePinLine(line)
			if err != nil {
				return nil, err
			}
			if !ok {
				if r.opts.Verbose && line != "" {
					r.logger.Info("ignoring non-git pin: " + line)
				}
				continue
			}
			pins[pin.Name] = pin
		}
		return pins, nil
	})
}

// lock resolves pin against the commit currently checked out for it.
func (r *Resolver) lock(pin domain.Pin) pipeline.Pipeline[domain.Package] {
	hash := pipeline.Try(pipeline.Command(r.opam, "show", "-f", "pinned", pin.Name), domain.ParsePinnedHash)
	return pipeline.Map(hash, pin.Lock)
}

// ParseListing parses the output of `opam list`. The first line is a column header.
// Packages at the base version are not real dependencies and are dropped.
func ParseListing(lines []string) ([]domain.Package, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	var pkgs []domain.Package
	for _, line := range lines[1:] {
		pkg, err := domain.ParseListingLine(line)
		if err != nil {
			return nil, err
		}
		if pkg.IsBase() {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
