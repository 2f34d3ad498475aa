package graph

import (
	"time"

	"github.com/dshills/stategraph-go/graph/emit"
	"github.com/dshills/stategraph-go/graph/store"
)

// Options configures how a CompiledGraph executes.
//
// Zero values are valid: no step limit, no events, no metrics, no history.
type Options struct {
	// MaxSteps limits the number of node executions per invocation.
	// If 0, no limit is enforced. Cycles that never reach END will then run
	// until the context is cancelled.
	MaxSteps int

	// Emitter receives observability events. Nil discards them.
	Emitter emit.Emitter

	// Metrics records Prometheus metrics. Nil disables metrics.
	Metrics *Metrics

	// Store records the running state after every step. Nil disables history.
	Store store.Store[State]

	// NodeTimeout bounds each node execution. If 0, nodes run until they
	// return or the invocation context is done.
	NodeTimeout time.Duration

	// RunID identifies a single invocation. Empty generates a fresh UUID.
	RunID string
}

// Option is a functional option for configuring a CompiledGraph.
//
// Options passed to Compile become the defaults of every invocation; options
// passed to Invoke override them for that invocation only.
//
// Example:
//
//	compiled, err := builder.Compile(
//	    graph.WithMaxSteps(25),
//	    graph.WithEmitter(emit.NewLogEmitter(os.Stderr, false)),
//	)
//	final, err := compiled.Invoke(ctx, initial, graph.WithRunID("run-001"))
type Option func(*engineConfig) error

// engineConfig collects options before they are applied.
type engineConfig struct {
	opts Options
}

func (c engineConfig) apply(options []Option) (engineConfig, error) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(&c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// WithOptions replaces the whole configuration with opts.
func WithOptions(opts Options) Option {
	return func(cfg *engineConfig) error {
		cfg.opts = opts
		return nil
	}
}

// WithMaxSteps bounds node executions per invocation.
//
// Default: 0 (no limit). Loops are fully supported; MaxSteps protects against
// a loop whose exit condition is never met. When exceeded, Invoke returns
// *StepLimitExceededError.
func WithMaxSteps(n int) Option {
	return func(cfg *engineConfig) error {
		if n < 0 {
			return &EngineError{Message: "MaxSteps cannot be negative", Code: CodeInvalidOption}
		}
		cfg.opts.MaxSteps = n
		return nil
	}
}

// WithEmitter sets the observability event receiver.
func WithEmitter(emitter emit.Emitter) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Emitter = emitter
		return nil
	}
}

// WithMetrics enables Prometheus metrics collection.
//
// Example:
//
//	registry := prometheus.NewRegistry()
//	metrics := graph.NewMetrics(registry)
//	compiled, _ := builder.Compile(graph.WithMetrics(metrics))
//
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
func WithMetrics(metrics *Metrics) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Metrics = metrics
		return nil
	}
}

// WithStore records the running state after every step in st.
// History is write-only from the engine's point of view; it is never read
// back to resume an invocation.
func WithStore(st store.Store[State]) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.Store = st
		return nil
	}
}

// WithRunID sets the run identifier used in events, metrics and history.
// It is meant for Invoke; set at Compile it would be shared by every run.
func WithRunID(id string) Option {
	return func(cfg *engineConfig) error {
		cfg.opts.RunID = id
		return nil
	}
}

// WithNodeTimeout bounds the duration of every node execution.
//
// A node that outlives d receives a cancelled context and the invocation fails
// with an EngineError whose Code is CodeNodeTimeout.
func WithNodeTimeout(d time.Duration) Option {
	return func(cfg *engineConfig) error {
		if d < 0 {
			return &EngineError{Message: "NodeTimeout cannot be negative", Code: CodeInvalidOption}
		}
		cfg.opts.NodeTimeout = d
		return nil
	}
}
