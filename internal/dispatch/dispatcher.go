package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"consulnotifier/internal/core"
	"consulnotifier/internal/metrics"
	"consulnotifier/internal/reconciler"
)

// Dispatcher consumes the container lifecycle event stream and reconciles
// each retained event synchronously: one event is fully processed before
// the next is read.
type Dispatcher struct {
	runtime      core.ContainerRuntime
	registry     core.ServiceRegistry
	resolver     core.NodeResolver
	metrics      *metrics.Metrics
	logger       *slog.Logger
	serviceLabel string
}

// New creates a dispatcher. serviceLabel names the actor attribute carrying
// the service association; events without it are filtered out.
func New(
	runtime core.ContainerRuntime,
	registry core.ServiceRegistry,
	resolver core.NodeResolver,
	m *metrics.Metrics,
	logger *slog.Logger,
	serviceLabel string,
) *Dispatcher {
	return &Dispatcher{
		runtime:      runtime,
		registry:     registry,
		resolver:     resolver,
		metrics:      m,
		logger:       logger.With("component", "dispatcher"),
		serviceLabel: serviceLabel,
	}
}

// Run consumes events until the stream closes or ctx is cancelled. No
// per-event failure terminates the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	events, errs := d.runtime.Events(ctx)

	d.logger.Info("processing container lifecycle events",
		"service_label", d.serviceLabel,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-errs:
			if !ok || err == nil {
				return nil
			}
			return fmt.Errorf("event stream: %w", err)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.dispatch(ctx, ev)
		}
	}
}

// dispatch filters one event and hands it to a freshly bound reconciler
func (d *Dispatcher) dispatch(ctx context.Context, ev core.Event) {
	service, ok := ev.Attributes[d.serviceLabel]
	if !ok {
		// Not a service-managed container.
		return
	}
	name := ev.Attributes["name"]

	d.metrics.EventsTotal.WithLabelValues(ev.Action).Inc()
	d.logger.Info("processing event",
		"action", ev.Action,
		"container", name,
		"service", service,
	)

	rec := reconciler.New(d.runtime, d.registry, d.resolver, d.metrics, d.logger, name, service)
	if err := rec.Handle(ctx, ev.Action); err != nil {
		// The event is dropped; the loop keeps going.
		d.logger.Error("event handling failed",
			"action", ev.Action,
			"container", name,
			"error", err,
		)
	}
}
