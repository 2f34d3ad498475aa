package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dshills/stategraph-go/graph"
	"github.com/dshills/stategraph-go/graph/emit"
	"github.com/dshills/stategraph-go/internal/config"
	"github.com/dshills/stategraph-go/internal/fruit"
	"github.com/dshills/stategraph-go/internal/logging"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a workflow and print its final state",
		Long: `Runs the selected workflow on --input (and --confirm for the review graph)
and prints the final state as JSON. Node output and the event log go to stderr.`,
		Example: `  fruitgraph run --input apple
  fruitgraph run --graph review --input apple --confirm yes
  fruitgraph run --input mango --log-format json --history sqlite --dsn history.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			input, _ := cmd.Flags().GetString("input")
			confirm, _ := cmd.Flags().GetString("confirm")
			runID, _ := cmd.Flags().GetString("run-id")
			return runWorkflow(cmd, cfg, fruit.Input(input, confirm), runID)
		},
	}
	cmd.Flags().String("input", "", "Fruit name to validate")
	cmd.Flags().String("confirm", "", "Answer to the review question (review graph only)")
	cmd.Flags().String("run-id", "", "Run identifier (generated when empty)")
	addRunFlags(cmd)
	return cmd
}

func runWorkflow(cmd *cobra.Command, cfg config.Config, initial graph.State, runID string) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stderr := cmd.ErrOrStderr()

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, cfg.Log.Format, level)
	emitters := []emit.Emitter{emit.NewSlogEmitter(logger)}

	if cfg.Tracing.Enabled {
		tp, tpErr := newTracerProvider(stderr)
		if tpErr != nil {
			return tpErr
		}
		defer func() {
			err = errors.Join(err, shutdownTracing(context.Background(), tp))
		}()
		emitters = append(emitters, emit.NewOTelEmitter(tp.Tracer(serviceName)))
	}

	opts := []graph.Option{
		graph.WithEmitter(emit.NewMultiEmitter(emitters...)),
		graph.WithMaxSteps(cfg.MaxSteps),
		graph.WithNodeTimeout(time.Duration(cfg.NodeTimeout)),
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, graph.WithMetrics(graph.NewMetrics(registry)))
	}

	history, closeHistory, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeHistory())
	}()
	if history != nil {
		opts = append(opts, graph.WithStore(history))
	}

	g, err := fruit.New(cfg.Graph, stderr, opts...)
	if err != nil {
		return err
	}

	var invokeOpts []graph.Option
	if runID != "" {
		invokeOpts = append(invokeOpts, graph.WithRunID(runID))
	}
	final, err := g.Invoke(ctx, initial, invokeOpts...)
	if err != nil {
		return fmt.Errorf("run %s graph: %w", cfg.Graph, err)
	}

	if registry != nil {
		if err := writeMetrics(stderr, registry); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return fmt.Errorf("encode final state: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
