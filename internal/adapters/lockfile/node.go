package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/opamlock/internal/build"
	"go.trai.ch/opamlock/internal/core/ports"
)

// NodeID is the graft ID of the lock file store.
const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockfileStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileStore, error) {
			return NewStore(build.Version), nil
		},
	})
}
