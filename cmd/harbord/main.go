// Command harbord is the reference host process: it loads configuration,
// drives the bootstrap sequence, binds the produced service, and waits for
// a shutdown signal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkocaman/harbor/bootstrap"
	"github.com/bkocaman/harbor/config"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/observability"
	"github.com/bkocaman/harbor/provision"
	"github.com/bkocaman/harbor/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "explicit config file path")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionInfo())
		return
	}

	if err := run(*configFile); err != nil {
		fmt.Fprintln(os.Stderr, "harbord:", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	var cfg config.HostConfig
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig("harbord", &cfg, opts...); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = "harbord"
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Pre-bootstrap logger; once the pipeline installs, the global logger
	// is replaced by the composed one.
	log := logger.New(&cfg.Logging, cfg.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.EnableTelemetry {
		tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig(cfg.Name))
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer tp.Shutdown(context.Background())

		mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig(cfg.Name))
		if err != nil {
			return fmt.Errorf("init meter: %w", err)
		}
		defer mp.Shutdown(context.Background())
	}

	factory := provision.NewHostFactory(&cfg, log)

	b := bootstrap.CreateService(
		bootstrap.WithMode(cfg.SecretsMode()),
		bootstrap.WithServerConfig(cfg.Server),
	)
	svc, err := b.Boot(ctx, factory)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if err := b.Bind(ctx, svc, cfg.Addr); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	logger.Info("harbord ready", logger.Fields(
		"addr", cfg.Addr,
		"version", version.Version,
	))

	<-ctx.Done()

	// Reverse registration order: server drains first, then the pool closes.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.Registry().StopAll(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("harbord stopped")
	return nil
}
