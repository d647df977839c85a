package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/rschio/ledger/internal/console"
	"github.com/rschio/ledger/internal/core/ledger"
	"github.com/rschio/ledger/internal/core/teller"
	"github.com/rschio/ledger/internal/data/seed"
	"github.com/rschio/ledger/internal/logger"
	"github.com/rschio/ledger/internal/trace"
)

var build = "develop"

func main() {
	log := logger.New(os.Stderr, "LEDGER")

	if err := run(log); err != nil {
		log.Error("startup", "ERROR", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Env   string `conf:"default:DEV"`
		Trace struct {
			Exporter        string        `conf:"default:discard"`
			Endpoint        string        `conf:"default:localhost:4317"`
			SampleFraction  float64       `conf:"default:1"`
			ShutdownTimeout time.Duration `conf:"default:5s"`
		}
		Seed struct {
			Disabled bool `conf:"default:false"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "interactive in-memory banking ledger",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Info("starting service", "version", build)
	defer log.Info("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Info("startup", "config", out)

	ctx := context.Background()

	// =========================================================================
	// Tracing Support

	log.Info("startup", "status", "initializing tracing support", "exporter", cfg.Trace.Exporter)

	provider, err := trace.NewProvider(ctx, trace.Config{
		Env:            cfg.Env,
		Endpoint:       cfg.Trace.Endpoint,
		Service:        "ledger",
		Exporter:       cfg.Trace.Exporter,
		Writer:         os.Stderr,
		SampleFraction: cfg.Trace.SampleFraction,
	})
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer stopTracing(log, provider, cfg.Trace.ShutdownTimeout)

	// =========================================================================
	// Ledger Support

	svc := ledger.NewService()
	if !cfg.Seed.Disabled {
		log.Info("startup", "status", "seeding demo customers")
		if err := seed.Load(svc); err != nil {
			return fmt.Errorf("seeding ledger: %w", err)
		}
	}

	// =========================================================================
	// Start Console

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	core := teller.NewCore(log, svc)
	srv := console.NewServer(log, core, provider.Tracer("ledger"), os.Stdin, os.Stdout)

	consoleErrors := make(chan error, 1)
	go func() {
		log.Info("startup", "status", "console started")
		consoleErrors <- srv.Run(ctx)
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-consoleErrors:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

	case sig := <-shutdown:
		log.Info("shutdown", "status", "shutdown started", "signal", sig)
	}

	return nil
}

func stopTracing(log *slog.Logger, provider interface{ Shutdown(context.Context) error }, timeout time.Duration) {
	log.Info("shutdown", "status", "stopping tracing support")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := provider.Shutdown(ctx); err != nil {
		log.Error("shutdown", "status", "could not stop tracing support", "ERROR", err)
	}
}
