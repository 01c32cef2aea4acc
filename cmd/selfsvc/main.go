// Package main is the entry point for selfsvc, a heartbeat daemon
// that installs, removes, and inspects itself as a platform service:
//
//	selfsvc start   register and start as a service
//	selfsvc stop    stop and remove the registration
//	selfsvc logs    attach to the running instance's live log stream
//	selfsvc         run the daemon in the foreground
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"selfsvc/internal/bootstrap"
	"selfsvc/internal/config"
	"selfsvc/internal/diag"
	"selfsvc/internal/heartbeat"
	"selfsvc/internal/hostenv"
	"selfsvc/internal/logger"
	"selfsvc/internal/runner"
	"selfsvc/internal/svcmgr"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (JSON)")
		name        = flag.String("name", "", "Service name (default: derived from the executable)")
		interval    = flag.String("interval", "", "Heartbeat interval, e.g. 30s (overrides configuration)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("selfsvc %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *interval != "" {
		d, err := time.ParseDuration(*interval)
		if err != nil || d <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid heartbeat interval %q\n", *interval)
			os.Exit(1)
		}
		cfg.HeartbeatInterval = d
	}

	serviceName := *name
	if serviceName == "" {
		serviceName = cfg.ServiceName
	}

	// Decide what this invocation is: a management command, or the
	// daemon itself.
	proceed, err := bootstrap.Run(flag.Args(), serviceName, installOptions(cfg, *configPath, *interval, *name))
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfsvc: %v\n", err)
		os.Exit(1)
	}
	if !proceed {
		return
	}

	if serviceName == "" {
		if exe, exeErr := os.Executable(); exeErr == nil {
			serviceName = svcmgr.NameFromExecutable(exe)
		} else {
			serviceName = "selfsvc"
		}
	}

	// Publish the log stream on the diagnostic endpoint before the
	// logger comes up so no sink is missing from the fanout.
	var sinks []io.Writer
	diagSrv, diagErr := diag.NewServer()
	if diagErr == nil {
		defer diagSrv.Close()
		sinks = append(sinks, diagSrv)
	}

	if err := logger.Init(cfg.Logging, sinks...); err != nil {
		runner.ReportStartupError(serviceName, err)
		runner.WriteStartupErrorFile(filepath.Dir(cfg.Logging.FilePath), err)
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.WithComponent("main")
	if diagErr != nil {
		log.Warn().Err(diagErr).Msg("Diagnostics endpoint unavailable, logs command cannot attach")
	}

	log.Info().
		Str("version", version).
		Str("service", serviceName).
		Str("context", hostenv.Detect().String()).
		Str("config", *configPath).
		Msg("Starting selfsvc")

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, func(newCfg *config.Config) {
			if err := logger.Init(newCfg.Logging, sinks...); err != nil {
				mlog := logger.WithComponent("main")
				mlog.Error().Err(err).Msg("Failed to apply logging configuration")
			}
		})
		if err != nil {
			log.Warn().Err(err).Msg("Configuration watcher unavailable, hot reload disabled")
		} else if err := watcher.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start configuration watcher")
		} else {
			defer watcher.Stop()
		}
	}

	beater := heartbeat.New(cfg.HeartbeatInterval)
	host := runner.New(serviceName, beater.Run)

	if err := host.Run(context.Background()); err != nil {
		runner.ReportStartupError(serviceName, err)
		log.Fatal().Err(err).Msg("Service exited with error")
	}

	log.Info().Msg("selfsvc stopped")
}

// installOptions replays this invocation's flags through the service
// registration so the supervised process starts with the same inputs.
func installOptions(cfg *config.Config, configPath, interval, name string) *svcmgr.Options {
	opts := &svcmgr.Options{
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
		RunAs:       cfg.RunAs,
	}

	if configPath != "" {
		// The service starts from its own directory, not ours.
		abs, err := filepath.Abs(configPath)
		if err != nil {
			abs = configPath
		}
		opts.Arguments = append(opts.Arguments, svcmgr.Argument{Name: "-config", Value: abs})
	}
	if interval != "" {
		opts.Arguments = append(opts.Arguments, svcmgr.Argument{Name: "-interval", Value: interval})
	}
	if name != "" {
		opts.Arguments = append(opts.Arguments, svcmgr.Argument{Name: "-name", Value: name})
	}
	return opts
}
