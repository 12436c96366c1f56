package config

// ServiceLabelSwarm is the attribute Docker Swarm stamps on task events
const ServiceLabelSwarm = "com.docker.swarm.service.name"

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Notifier: Notifier{
			Docker: Docker{
				Host: "unix:///var/run/docker.sock",
			},
			Consul: Consul{
				Address: "127.0.0.1:8500",
				Scheme:  "http",
			},
			Events: Events{
				ServiceLabel: ServiceLabelSwarm,
			},
			Management: Management{
				Host: "127.0.0.1",
				Port: 9090,
			},
		},
	}
}
