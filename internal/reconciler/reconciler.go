package reconciler

import (
	"context"
	"fmt"
	"log/slog"

	"consulnotifier/internal/core"
	"consulnotifier/internal/metrics"
	"consulnotifier/pkg/errors"
)

// Operation is the registry operation mapped from a lifecycle action
type Operation int

const (
	OpIgnore Operation = iota
	OpRegister
	OpDeregister
)

// operations is the authoritative action mapping. Actions outside it are
// ignored; "register" and "deregister" cover direct manual invocation.
var operations = map[string]Operation{
	"start":      OpRegister,
	"die":        OpDeregister,
	"stop":       OpDeregister,
	"kill":       OpDeregister,
	"register":   OpRegister,
	"deregister": OpDeregister,
}

// MapAction returns the operation for a lifecycle action
func MapAction(action string) Operation {
	op, ok := operations[action]
	if !ok {
		return OpIgnore
	}
	return op
}

// Reconciler drives register/deregister calls for one container/service
// pair. It is stateless across actions: the registry, not the reconciler,
// tracks current membership, so a fresh reconciler is bound per event.
type Reconciler struct {
	runtime  core.ContainerRuntime
	registry core.ServiceRegistry
	resolver core.NodeResolver
	metrics  *metrics.Metrics
	logger   *slog.Logger

	instance string // container name from the event
	service  string // logical service name
}

// New creates a reconciler bound to one container/service pair
func New(
	runtime core.ContainerRuntime,
	registry core.ServiceRegistry,
	resolver core.NodeResolver,
	m *metrics.Metrics,
	logger *slog.Logger,
	instance, service string,
) *Reconciler {
	return &Reconciler{
		runtime:  runtime,
		registry: registry,
		resolver: resolver,
		metrics:  m,
		logger:   logger,
		instance: instance,
		service:  service,
	}
}

// Handle maps the action to a registry operation and performs it.
// Unrecognized actions and vanished containers are logged no-ops. The only
// error it returns is a node-resolution failure, which drops the event but
// must not terminate the dispatch loop.
func (r *Reconciler) Handle(ctx context.Context, action string) error {
	op := MapAction(action)
	if op == OpIgnore {
		r.logger.Warn("ignoring unrecognized action",
			"action", action,
			"container", r.instance,
		)
		r.metrics.Skips.WithLabelValues(metrics.SkipUnrecognizedAction).Inc()
		return nil
	}

	info, err := r.runtime.Inspect(ctx, r.instance)
	if err != nil {
		if errors.IsNotFound(err) {
			// Expected under rapid restart/kill sequences: the container
			// can be gone before its event is processed.
			r.logger.Warn("container not found",
				"container", r.instance,
				"action", action,
			)
			r.metrics.Skips.WithLabelValues(metrics.SkipContainerNotFound).Inc()
			return nil
		}
		return fmt.Errorf("inspect container %s: %w", r.instance, err)
	}

	desc := core.BuildDescriptor(info, r.service, r.logger)

	switch op {
	case OpRegister:
		return r.Register(ctx, desc)
	case OpDeregister:
		return r.Deregister(ctx, desc)
	}
	return nil
}

// Register registers the instance on every resolved node address. A failure
// on one address does not abort the attempts on the remaining addresses.
func (r *Reconciler) Register(ctx context.Context, desc core.ServiceDescriptor) error {
	if !desc.Routable() {
		// Omitting the port variable is how a service opts out.
		r.logger.Info("skipping registration, no service port defined",
			"service", desc.Service,
			"container", desc.Instance,
		)
		r.metrics.Skips.WithLabelValues(metrics.SkipUnroutable).Inc()
		return nil
	}

	addrs, err := r.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	for _, addr := range addrs {
		reg := core.Registration{
			ServiceName: desc.Service,
			InstanceID:  desc.InstanceID(),
			Address:     addr,
			Port:        desc.Port,
			Check: core.CheckDefinition{
				URL:      desc.CheckURL(addr),
				Interval: desc.CheckInterval,
			},
		}

		r.metrics.RegistryCalls.WithLabelValues("register").Inc()
		if err := r.registry.Register(ctx, reg); err != nil {
			r.metrics.RegistryErrors.WithLabelValues("register").Inc()
			r.logger.Error("failed to register service",
				"service", desc.Service,
				"service_id", reg.InstanceID,
				"node", addr,
				"error", err,
			)
			continue
		}

		r.logger.Info("registered service",
			"service", desc.Service,
			"service_id", reg.InstanceID,
			"node", addr,
			"port", desc.Port,
		)
	}

	return nil
}

// Deregister removes the instance by id. An instance that was never
// registered has nothing to remove, so unroutable descriptors skip.
func (r *Reconciler) Deregister(ctx context.Context, desc core.ServiceDescriptor) error {
	if !desc.Routable() {
		r.logger.Info("skipping deregistration, no service port defined",
			"service", desc.Service,
			"container", desc.Instance,
		)
		r.metrics.Skips.WithLabelValues(metrics.SkipUnroutable).Inc()
		return nil
	}

	id := desc.InstanceID()
	r.metrics.RegistryCalls.WithLabelValues("deregister").Inc()
	if err := r.registry.Deregister(ctx, id); err != nil {
		r.metrics.RegistryErrors.WithLabelValues("deregister").Inc()
		r.logger.Error("failed to deregister service",
			"service", desc.Service,
			"service_id", id,
			"error", err,
		)
		return nil
	}

	r.logger.Info("deregistered service",
		"service", desc.Service,
		"service_id", id,
	)
	return nil
}
