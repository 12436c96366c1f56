package config

import (
	"os"

	"consulnotifier/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Loader loads configuration from file
type Loader struct {
	path       string
	envEnabled bool
}

// NewLoader creates a config loader. An empty path loads defaults plus
// environment overrides only.
func NewLoader(path string) *Loader {
	return &Loader{
		path:       path,
		envEnabled: true, // Enable env vars by default
	}
}

// WithEnvVars enables or disables environment variable loading
func (l *Loader) WithEnvVars(enabled bool) *Loader {
	l.envEnabled = enabled
	return l
}

// Load loads the configuration
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, errors.NewError(errors.ErrorTypeInternal, "failed to read config file").WithCause(err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.NewError(errors.ErrorTypeInternal, "failed to parse config").WithCause(err)
		}
	}

	// Override with environment variables if enabled
	if l.envEnabled {
		if err := LoadEnv(cfg); err != nil {
			return nil, errors.NewError(errors.ErrorTypeInternal, "failed to load env vars").WithCause(err)
		}
		applyLegacyEnv(cfg)
	}

	// Validate configuration
	if err := l.validate(cfg); err != nil {
		return nil, errors.NewError(errors.ErrorTypeBadRequest, "invalid configuration").WithCause(err)
	}

	return cfg, nil
}

// applyLegacyEnv honors the plain variables older deployments set
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("CONSUL_ADDR"); v != "" {
		cfg.Notifier.Consul.Address = v
	}
	if v := os.Getenv("DOCKER_SOCKET"); v != "" {
		cfg.Notifier.Docker.Host = v
	}
}

// validate validates the configuration
func (l *Loader) validate(cfg *Config) error {
	if cfg.Notifier.Docker.Host == "" {
		return errors.NewError(errors.ErrorTypeBadRequest, "docker host is required")
	}

	if cfg.Notifier.Consul.Address == "" {
		return errors.NewError(errors.ErrorTypeBadRequest, "consul address is required")
	}

	if cfg.Notifier.Events.ServiceLabel == "" {
		return errors.NewError(errors.ErrorTypeBadRequest, "event service label is required")
	}

	if cfg.Notifier.Management.Enabled && cfg.Notifier.Management.Port == 0 {
		return errors.NewError(errors.ErrorTypeBadRequest, "management port is required when management is enabled")
	}

	return nil
}
