package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"consulnotifier/internal/config"
	"consulnotifier/internal/core"
	"consulnotifier/pkg/errors"

	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Client adapts the Docker SDK to the core.ContainerRuntime capability
type Client struct {
	cli    *client.Client
	logger *slog.Logger
}

// NewClient creates a Docker runtime client and verifies daemon connectivity
func NewClient(cfg *config.Docker, logger *slog.Logger) (*Client, error) {
	opts := []client.Opt{
		client.WithAPIVersionNegotiation(),
	}
	if cfg.Host != "" {
		opts = append(opts, client.WithHost(cfg.Host))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, client.WithVersion(cfg.APIVersion))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	// Test Docker connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		return nil, errors.NewError(errors.ErrorTypeUnavailable, "failed to connect to Docker daemon").WithCause(err)
	}

	return &Client{
		cli:    cli,
		logger: logger.With("component", "docker-runtime"),
	}, nil
}

// Inspect returns the inspection snapshot for a named container
func (c *Client) Inspect(ctx context.Context, name string) (core.ContainerInfo, error) {
	resp, err := c.cli.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return core.ContainerInfo{}, errors.NewError(errors.ErrorTypeNotFound,
				fmt.Sprintf("container %s not found", name)).WithCause(err)
		}
		return core.ContainerInfo{}, fmt.Errorf("inspect container %s: %w", name, err)
	}

	c.debugDump(ctx, "container object", resp)

	info := core.ContainerInfo{Name: resp.Name}
	if resp.Config != nil {
		info.Hostname = resp.Config.Hostname
		info.Env = resp.Config.Env
	}
	return info, nil
}

// Events streams container lifecycle events. Both returned channels are
// closed when the daemon stream ends or ctx is cancelled.
func (c *Client) Events(ctx context.Context) (<-chan core.Event, <-chan error) {
	f := filters.NewArgs(filters.Arg("type", string(events.ContainerEventType)))
	msgs, errs := c.cli.Events(ctx, events.ListOptions{Filters: f})

	out := make(chan core.Event)
	errOut := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errOut)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c.debugDump(ctx, "event object", msg)
				ev := core.Event{
					Action:     string(msg.Action),
					Attributes: msg.Actor.Attributes,
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case err, ok := <-errs:
				if !ok {
					return
				}
				if err != nil && ctx.Err() == nil {
					errOut <- err
				}
				return
			}
		}
	}()

	return out, errOut
}

// NodeAddresses returns the local node's advertised swarm address.
// The daemon is re-queried on every call so the result reflects current
// membership.
func (c *Client) NodeAddresses(ctx context.Context) ([]string, error) {
	info, err := c.cli.Info(ctx)
	if err != nil {
		return nil, errors.NewError(errors.ErrorTypeUnavailable, "failed to query cluster membership").WithCause(err)
	}
	if info.Swarm.NodeAddr == "" {
		return nil, errors.NewError(errors.ErrorTypeUnavailable, "daemon reports no advertised node address")
	}
	return []string{info.Swarm.NodeAddr}, nil
}

// Ping checks daemon connectivity, used by the health checker
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.cli.Ping(ctx); err != nil {
		return errors.NewError(errors.ErrorTypeUnavailable, "docker daemon unreachable").WithCause(err)
	}
	return nil
}

// Close releases the underlying SDK client
func (c *Client) Close() error {
	return c.cli.Close()
}

// debugDump pretty-prints raw daemon objects when debug logging is on
func (c *Client) debugDump(ctx context.Context, msg string, v any) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	c.logger.Debug(msg, "dump", string(data))
}

var _ core.ContainerRuntime = (*Client)(nil)
