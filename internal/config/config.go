package config

// Config holds notifier configuration
type Config struct {
	Notifier Notifier `yaml:"notifier"`
}

// Notifier configuration
type Notifier struct {
	Docker     Docker     `yaml:"docker"`
	Consul     Consul     `yaml:"consul"`
	Events     Events     `yaml:"events"`
	Management Management `yaml:"management"`
}

// Docker daemon connection configuration
type Docker struct {
	Host       string `yaml:"host"`       // daemon address, e.g. unix:///var/run/docker.sock
	APIVersion string `yaml:"apiVersion"` // pin the API version, empty negotiates
}

// Consul agent connection configuration
type Consul struct {
	Address    string `yaml:"address"`
	Scheme     string `yaml:"scheme"`
	Token      string `yaml:"token"`
	Datacenter string `yaml:"datacenter"`
}

// Events configuration for the dispatch loop
type Events struct {
	// ServiceLabel is the actor attribute carrying the service association.
	// Events without it are filtered before any processing.
	ServiceLabel string `yaml:"serviceLabel"`
}

// Management configuration for the diagnostics HTTP server
type Management struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}
