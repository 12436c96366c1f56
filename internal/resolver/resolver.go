package resolver

import (
	"context"

	"consulnotifier/internal/core"
	"consulnotifier/pkg/errors"
)

// Swarm resolves advertise addresses from the local daemon's swarm info.
// Every Resolve call re-queries the daemon; membership is never cached.
type Swarm struct {
	runtime core.ContainerRuntime
}

// NewSwarm creates a swarm node resolver
func NewSwarm(runtime core.ContainerRuntime) *Swarm {
	return &Swarm{runtime: runtime}
}

// Resolve returns the addresses a service instance is advertised on
func (s *Swarm) Resolve(ctx context.Context) ([]string, error) {
	addrs, err := s.runtime.NodeAddresses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "resolve node addresses")
	}
	return addrs, nil
}

var _ core.NodeResolver = (*Swarm)(nil)
