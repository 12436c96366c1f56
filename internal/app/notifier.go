package app

import (
	"context"
	"log/slog"
	"time"

	"consulnotifier/internal/config"
	"consulnotifier/internal/core"
	"consulnotifier/internal/dispatch"
	"consulnotifier/internal/health"
	"consulnotifier/internal/management"
	"consulnotifier/internal/metrics"
	"consulnotifier/internal/reconciler"
	consulregistry "consulnotifier/internal/registry/consul"
	"consulnotifier/internal/resolver"
	dockerruntime "consulnotifier/internal/runtime/docker"

	"github.com/prometheus/client_golang/prometheus"
)

// Notifier wires the container runtime, the registry and the dispatch loop
type Notifier struct {
	cfg      *config.Config
	logger   *slog.Logger
	runtime  *dockerruntime.Client
	registry *consulregistry.Registry
	resolver core.NodeResolver
	metrics  *metrics.Metrics
	mgmt     *management.API
}

// New builds a notifier from configuration, failing fast when either the
// Docker daemon or the Consul agent is unreachable
func New(cfg *config.Config, logger *slog.Logger) (*Notifier, error) {
	runtime, err := dockerruntime.NewClient(&cfg.Notifier.Docker, logger)
	if err != nil {
		return nil, err
	}

	registry, err := consulregistry.NewRegistry(&cfg.Notifier.Consul, logger)
	if err != nil {
		runtime.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := registry.Ping(ctx); err != nil {
		runtime.Close()
		return nil, err
	}

	n := &Notifier{
		cfg:      cfg,
		logger:   logger,
		runtime:  runtime,
		registry: registry,
		resolver: resolver.NewSwarm(runtime),
		metrics:  metrics.New(prometheus.DefaultRegisterer),
	}

	if cfg.Notifier.Management.Enabled {
		checker := health.NewChecker()
		checker.RegisterCheck("docker", runtime.Ping)
		checker.RegisterCheck("consul", registry.Ping)
		n.mgmt = management.NewAPI(&cfg.Notifier.Management, checker, logger)
	}

	return n, nil
}

// Watch runs the continuous dispatch loop until the stream closes or ctx
// is cancelled
func (n *Notifier) Watch(ctx context.Context) error {
	if n.mgmt != nil {
		if err := n.mgmt.Start(ctx); err != nil {
			return err
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			n.mgmt.Stop(stopCtx)
		}()
	}

	d := dispatch.New(n.runtime, n.registry, n.resolver, n.metrics, n.logger,
		n.cfg.Notifier.Events.ServiceLabel)
	return d.Run(ctx)
}

// RunOnce performs a single manual register/deregister against a named
// container and returns
func (n *Notifier) RunOnce(ctx context.Context, container, service, action string) error {
	rec := reconciler.New(n.runtime, n.registry, n.resolver, n.metrics, n.logger,
		container, service)
	return rec.Handle(ctx, action)
}

// Close releases client resources
func (n *Notifier) Close() error {
	return n.runtime.Close()
}
