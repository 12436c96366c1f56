package core

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// Container environment variables that drive registration
const (
	EnvServicePort    = "CONSUL_SERVICE_PORT"
	EnvHealthCheck    = "CONSUL_HEALTH_CHECK"
	EnvHealthInterval = "CONSUL_HEALTH_INTERVAL"
	EnvHealthSSL      = "CONSUL_HEALTH_SSL"
)

// Defaults applied during descriptor derivation
const (
	DefaultCheckPath     = "/"
	DefaultCheckInterval = "10s"
)

// ServiceDescriptor is the normalized registration intent derived from
// container metadata. It is rebuilt on every event and never persisted.
type ServiceDescriptor struct {
	Service       string // logical service name from the orchestrator label
	Instance      string // concrete container name, leading slash stripped
	Hostname      string
	Port          int // 0 means no port configured; the service is unroutable
	CheckPath     string
	CheckInterval string
	CheckTLS      bool
}

// Routable reports whether the descriptor carries a service port. Services
// without a port opt out of registration entirely.
func (d ServiceDescriptor) Routable() bool {
	return d.Port != 0
}

// InstanceID returns the registry's unique key for this instance. Only
// meaningful for routable descriptors; an instance with no port never
// acquires an id.
func (d ServiceDescriptor) InstanceID() string {
	return fmt.Sprintf("%s:%s:%d", d.Hostname, d.Instance, d.Port)
}

// CheckURL composes the health-check target for the given node address.
func (d ServiceDescriptor) CheckURL(address string) string {
	scheme := "http"
	if d.CheckTLS {
		scheme = "https"
	}
	if d.CheckPath == "" || d.CheckPath == "/" {
		return fmt.Sprintf("%s://%s:%d/", scheme, address, d.Port)
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, address, d.Port, d.CheckPath)
}

// Env is a raw KEY=VALUE environment list from a container inspection
type Env []string

// Lookup returns the first value for key. Entries without exactly one
// separator are skipped; they must not break the lookup.
func (e Env) Lookup(key string) (string, bool) {
	for _, entry := range e {
		if strings.Count(entry, "=") != 1 {
			continue
		}
		k, v, _ := strings.Cut(entry, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// Get returns the value for key, or def when the key is absent or empty
func (e Env) Get(key, def string) string {
	if v, ok := e.Lookup(key); ok && v != "" {
		return v
	}
	return def
}

// BuildDescriptor derives a ServiceDescriptor from an inspection snapshot.
// Pure transform over the snapshot; the only side effect is a warning when
// the configured port does not parse.
func BuildDescriptor(info ContainerInfo, service string, logger *slog.Logger) ServiceDescriptor {
	env := Env(info.Env)

	d := ServiceDescriptor{
		Service:       service,
		Instance:      strings.TrimPrefix(info.Name, "/"),
		Hostname:      info.Hostname,
		CheckPath:     env.Get(EnvHealthCheck, DefaultCheckPath),
		CheckInterval: normalizeInterval(env.Get(EnvHealthInterval, DefaultCheckInterval)),
	}

	if raw, ok := env.Lookup(EnvServicePort); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Warn("invalid service port in container environment",
				"container", d.Instance,
				"port", raw,
				"error", err,
			)
		} else {
			d.Port = port
		}
	}

	if raw, ok := env.Lookup(EnvHealthSSL); ok {
		ssl, err := strconv.ParseBool(raw)
		d.CheckTLS = err == nil && ssl
	}

	return d
}

// normalizeInterval appends the seconds unit to bare numeric intervals,
// so "10" becomes "10s" while "30s" passes through unchanged.
func normalizeInterval(interval string) string {
	if interval == "" {
		return DefaultCheckInterval
	}
	last := rune(interval[len(interval)-1])
	if unicode.IsDigit(last) {
		return interval + "s"
	}
	return interval
}
