package ports

import (
	"io"

	"go.trai.ch/opamlock/internal/core/domain"
)

// LockfileStore reads and writes lock files.
//
//go:generate go run go.uber.org/mock/mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Decode parses lock file text. Git sources become pins, everything else installs.
	Decode(r io.Reader) (domain.LockState, error)

	// Encode writes the lock file rendering of state.
	Encode(w io.Writer, state domain.LockState) error

	// Load reads and decodes the lock file at path.
	Load(path string) (domain.LockState, error)

	// Save atomically replaces the lock file at path.
	Save(path string, state domain.LockState) error
}
