// Command timeline-derive normalizes the event corpus and writes the derived
// indexes consumed by the quiz.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sky-flux/chrono/derive"
	"github.com/sky-flux/chrono/internal/config"
	"github.com/sky-flux/chrono/internal/dataset"
	"github.com/sky-flux/chrono/internal/logger"
)

func main() {
	cfgPath := flag.String("config", "chrono.yaml", "Path to YAML config file")
	envPath := flag.String("env", ".env", "Optional dotenv file")
	dataDir := flag.String("data", "", "Override the data directory")
	outDir := flag.String("out", "", "Override the output directory")
	flag.Parse()

	cfg, err := config.Load(*cfgPath, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("derive failed", "error", err)
		stop()
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	events, err := dataset.LoadEvents(cfg.EventsPath())
	if err != nil {
		return err
	}
	units, fallback, err := dataset.LoadUnits(ctx, cfg.UnitsRegistryPath())
	if err != nil {
		return err
	}
	if fallback {
		log.Warn("unit registry not found, using fallback unit list", "registry", cfg.UnitsRegistryPath())
	}

	artifacts, err := derive.Build(events, units)
	if err != nil {
		return err
	}
	for _, w := range artifacts.Warnings {
		log.Warn(w.Message, "kind", w.Kind.String(), "event_id", w.EventID, "unit_id", w.UnitID)
	}

	if err := dataset.WriteArtifacts(ctx, cfg.Output.Dir, artifacts); err != nil {
		return err
	}
	log.Info("derived artifacts written",
		"events", len(artifacts.Events),
		"units", len(artifacts.Units),
		"output_dir", cfg.Output.Dir)
	return nil
}
