package core

import (
	"context"
)

// ContainerInfo is the inspection snapshot for a single container
type ContainerInfo struct {
	Name     string   // container name as reported by the daemon (leading slash included)
	Hostname string   // container-reported hostname
	Env      []string // raw KEY=VALUE environment entries
}

// Event is one lifecycle notification from the container runtime
type Event struct {
	Action     string
	Attributes map[string]string
}

// CheckDefinition describes the HTTP health check attached to a registration
type CheckDefinition struct {
	URL      string
	Interval string
}

// Registration carries one register call against the service registry
type Registration struct {
	ServiceName string
	InstanceID  string
	Address     string
	Port        int
	Check       CheckDefinition
}

// ContainerRuntime provides container inspection, the live event stream
// and cluster node lookup
type ContainerRuntime interface {
	// Inspect returns the current snapshot for a named container.
	// Returns a not_found error if the container no longer exists.
	Inspect(ctx context.Context, name string) (ContainerInfo, error)

	// Events returns the live lifecycle event stream. The stream is
	// unbounded and non-restartable; both channels are closed when the
	// stream ends or ctx is cancelled.
	Events(ctx context.Context) (<-chan Event, <-chan error)

	// NodeAddresses returns the advertised addresses of cluster nodes
	// eligible to host the service.
	NodeAddresses(ctx context.Context) ([]string, error)
}

// ServiceRegistry provides the registry's membership primitives
type ServiceRegistry interface {
	Register(ctx context.Context, reg Registration) error
	Deregister(ctx context.Context, instanceID string) error
}

// NodeResolver yields the addresses a service instance is advertised on.
// Implementations re-query the cluster on every call.
type NodeResolver interface {
	Resolve(ctx context.Context) ([]string, error)
}
