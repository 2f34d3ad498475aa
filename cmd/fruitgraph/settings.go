package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/stategraph-go/internal/config"
)

// loadConfig reads --config and applies any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("graph") {
		cfg.Graph, _ = flags.GetString("graph")
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps, _ = flags.GetInt("max-steps")
	}
	if flags.Changed("node-timeout") {
		d, _ := flags.GetDuration("node-timeout")
		cfg.NodeTimeout = config.Duration(d)
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("history") {
		cfg.History.Driver, _ = flags.GetString("history")
	}
	if flags.Changed("dsn") {
		cfg.History.DSN, _ = flags.GetString("dsn")
	}
	if flags.Changed("trace") {
		cfg.Tracing.Enabled, _ = flags.GetBool("trace")
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled, _ = flags.GetBool("metrics")
	}

	return cfg, cfg.Validate()
}

// addHistoryFlags registers the flags shared by run and history.
func addHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().String("history", config.DriverNone, "Step history driver: none, memory, sqlite or mysql")
	cmd.Flags().String("dsn", "", "History database: a file path for sqlite, a DSN for mysql")
}

// addRunFlags registers the engine and observability flags of run.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("graph", "basic", "Workflow to run: basic or review")
	cmd.Flags().Int("max-steps", 25, "Maximum node executions per run (0 for no limit)")
	cmd.Flags().Duration("node-timeout", time.Duration(0), "Maximum duration of a single node (0 for no limit)")
	cmd.Flags().String("log-format", config.FormatText, "Event log format: text or json")
	cmd.Flags().String("log-level", "info", "Event log level: debug, info, warn or error")
	cmd.Flags().Bool("trace", false, "Export OpenTelemetry spans to stderr")
	cmd.Flags().Bool("metrics", false, "Print Prometheus metrics to stderr after the run")
	addHistoryFlags(cmd)
}
