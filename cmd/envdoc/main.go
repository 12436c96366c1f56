package main

import (
	"fmt"
	"os"

	"consulnotifier/internal/config"
)

func main() {
	fmt.Println("# Consul Notifier Environment Variables")
	fmt.Println()
	fmt.Println("The notifier supports configuration via environment variables.")
	fmt.Println("Environment variables override values from the configuration file.")
	fmt.Println()
	fmt.Println("## Available Environment Variables")
	fmt.Println()

	cfg := &config.Config{}
	examples := config.EnvExample(cfg)

	for _, example := range examples {
		fmt.Printf("- `%s`\n", example)
	}

	fmt.Println()
	fmt.Println("## Legacy Variables")
	fmt.Println()
	fmt.Println("- `CONSUL_ADDR` — Consul agent address")
	fmt.Println("- `DOCKER_SOCKET` — Docker daemon address")
	fmt.Println()
	fmt.Println("## Examples")
	fmt.Println()
	fmt.Println("```bash")
	fmt.Println("# Point at a remote Consul agent")
	fmt.Println("export NOTIFIER_NOTIFIER_CONSUL_ADDRESS=10.0.0.5:8500")
	fmt.Println()
	fmt.Println("# Enable the management server")
	fmt.Println("export NOTIFIER_NOTIFIER_MANAGEMENT_ENABLED=true")
	fmt.Println("export NOTIFIER_NOTIFIER_MANAGEMENT_PORT=9090")
	fmt.Println()
	fmt.Println("# Run against the event stream")
	fmt.Println("./consul-notifier -config notifier.yaml")
	fmt.Println("```")

	os.Exit(0)
}
