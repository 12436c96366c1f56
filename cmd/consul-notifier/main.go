package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"consulnotifier/internal/app"
	"consulnotifier/internal/config"
)

var (
	configFile    = flag.String("config", "", "config file path (optional, defaults plus env vars otherwise)")
	logLevel      = flag.String("log-level", "info", "log level")
	verbose       = flag.Bool("verbose", false, "debug logging including raw container and event dumps")
	containerName = flag.String("container", "", "container name for a manual action")
	serviceName   = flag.String("service", "", "service name for a manual action (defaults to the container name)")
	action        = flag.String("action", "", "run a single register or deregister against -container and exit")
)

func main() {
	flag.Parse()

	if *verbose {
		*logLevel = "debug"
	}
	setupLogging(*logLevel)

	// Load config
	cfg, err := config.NewLoader(*configFile).Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create notifier
	notifier, err := app.New(cfg, slog.Default())
	if err != nil {
		slog.Error("failed to create notifier", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()

	// Setup signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Manual one-shot mode
	if *action != "" {
		if *containerName == "" {
			slog.Error("-action requires -container")
			os.Exit(1)
		}
		service := *serviceName
		if service == "" {
			service = *containerName
		}

		runCtx, cancelRun := context.WithTimeout(ctx, 30*time.Second)
		defer cancelRun()
		if err := notifier.RunOnce(runCtx, *containerName, service, *action); err != nil {
			slog.Error("manual action failed", "action", *action, "error", err)
			os.Exit(1)
		}
		return
	}

	// Continuous stream processing
	slog.Info("consul notifier ready to process the Docker event stream")
	if err := notifier.Watch(ctx); err != nil && ctx.Err() == nil {
		slog.Error("event stream ended", "error", err)
		os.Exit(1)
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func setupLogging(level string) {
	lvl, ok := logLevels[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})))
}
