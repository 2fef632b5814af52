// Package installer builds the pipeline that replays a LockState into an opam switch.
package installer

import (
	"go.trai.ch/opamlock/internal/core/domain"
	"go.trai.ch/opamlock/internal/engine/pipeline"
)

// Installer pins git sources and installs every locked package.
type Installer struct {
	opam string
}

// New creates an Installer invoking the opam executable at opam.
func New(opam string) *Installer {
	return &Installer{opam: opam}
}

// Install pins every git package in order, then installs all packages with one command.
// A failing pin stops the run before anything is installed. An empty state runs nothing.
func (i *Installer) Install(state domain.LockState) pipeline.Pipeline[pipeline.Unit] {
	if state.IsEmpty() {
		return pipeline.Pure(pipeline.Unit{})
	}

	pins := make([]pipeline.Pipeline[[]string], 0, len(state.Pins))
	for _, p := range state.Pins {
		pins = append(pins, pipeline.Command(i.opam, "pin", "add", "-y", "-n", "-k", "git", p.Name, p.Version.String()))
	}

	install := append([]string{i.opam, "install", "-y"}, state.InstallArgs()...)

	return pipeline.Bind(pipeline.SequenceUnit(pins), func(pipeline.Unit) pipeline.Pipeline[pipeline.Unit] {
		return pipeline.Discard(pipeline.Command(install...))
	})
}
