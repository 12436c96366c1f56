package consul

import (
	"context"
	"fmt"
	"log/slog"

	"consulnotifier/internal/config"
	"consulnotifier/internal/core"
	"consulnotifier/pkg/errors"

	"github.com/hashicorp/consul/api"
)

// Registry adapts the Consul agent API to the core.ServiceRegistry
// capability. Register is idempotent on the Consul side: repeated calls
// with the same service id overwrite, and deregistering an absent id
// succeeds.
type Registry struct {
	client *api.Client
	logger *slog.Logger
}

// NewRegistry creates a Consul registry client
func NewRegistry(cfg *config.Consul, logger *slog.Logger) (*Registry, error) {
	apiCfg := api.DefaultConfig()
	if cfg.Address != "" {
		apiCfg.Address = cfg.Address
	}
	if cfg.Scheme != "" {
		apiCfg.Scheme = cfg.Scheme
	}
	apiCfg.Token = cfg.Token
	if cfg.Datacenter != "" {
		apiCfg.Datacenter = cfg.Datacenter
	}

	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	return &Registry{
		client: client,
		logger: logger.With("component", "consul-registry"),
	}, nil
}

// Ping verifies the local Consul agent is reachable
func (r *Registry) Ping(ctx context.Context) error {
	if _, err := r.client.Agent().Self(); err != nil {
		return errors.NewError(errors.ErrorTypeUnavailable, "consul agent unreachable").WithCause(err)
	}
	return nil
}

// Register registers a service instance with its HTTP health check
func (r *Registry) Register(ctx context.Context, reg core.Registration) error {
	asr := toAgentRegistration(reg)

	opts := api.ServiceRegisterOpts{}.WithContext(ctx)
	if err := r.client.Agent().ServiceRegisterOpts(asr, opts); err != nil {
		return errors.NewError(errors.ErrorTypeUnavailable, "consul register failed").
			WithCause(err).
			WithDetail("service_id", reg.InstanceID)
	}

	r.logger.Debug("service registered",
		"service", reg.ServiceName,
		"service_id", reg.InstanceID,
		"address", reg.Address,
		"port", reg.Port,
	)
	return nil
}

// Deregister removes a service instance by id
func (r *Registry) Deregister(ctx context.Context, instanceID string) error {
	opts := (&api.QueryOptions{}).WithContext(ctx)
	if err := r.client.Agent().ServiceDeregisterOpts(instanceID, opts); err != nil {
		return errors.NewError(errors.ErrorTypeUnavailable, "consul deregister failed").
			WithCause(err).
			WithDetail("service_id", instanceID)
	}

	r.logger.Debug("service deregistered", "service_id", instanceID)
	return nil
}

// toAgentRegistration maps a core registration onto the Consul wire type
func toAgentRegistration(reg core.Registration) *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      reg.InstanceID,
		Name:    reg.ServiceName,
		Address: reg.Address,
		Port:    reg.Port,
		Check: &api.AgentServiceCheck{
			HTTP:     reg.Check.URL,
			Interval: reg.Check.Interval,
		},
	}
}

var _ core.ServiceRegistry = (*Registry)(nil)
