package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/stategraph-go/graph"
	"github.com/dshills/stategraph-go/graph/store"
	"github.com/dshills/stategraph-go/internal/config"
)

// openHistory opens the configured step store. The returned store is nil for
// driver "none"; the close function is always safe to call.
func openHistory(cfg config.HistoryConfig) (store.Store[graph.State], func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverNone, "":
		return nil, noop, nil
	case config.DriverMemory:
		return store.NewMemStore[graph.State](), noop, nil
	case config.DriverSQLite:
		st, err := store.NewSQLiteStore[graph.State](cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite history: %w", err)
		}
		return st, st.Close, nil
	case config.DriverMySQL:
		st, err := store.NewMySQLStore[graph.State](cfg.DSN)
		if err != nil {
			return nil, noop, fmt.Errorf("open mysql history: %w", err)
		}
		return st, st.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded step history",
		Long: `Lists the run IDs recorded in a history database, or the steps of one run
when a run ID is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.History.Driver != config.DriverSQLite && cfg.History.Driver != config.DriverMySQL {
				return errors.New("history requires --history sqlite or mysql")
			}

			st, closeStore, err := openHistory(cfg.History)
			if err != nil {
				return err
			}
			return showHistory(cmd.Context(), cmd.OutOrStdout(), st, closeStore, args)
		},
	}
	addHistoryFlags(cmd)
	return cmd
}

// showHistory prints the runs in st, or the steps of args[0], then closes st.
// A close failure is reported along with any print error.
func showHistory(ctx context.Context, w io.Writer, st store.Store[graph.State], closeStore func() error, args []string) (err error) {
	defer func() {
		err = errors.Join(err, closeStore())
	}()

	if len(args) == 0 {
		return printRuns(ctx, w, st)
	}
	return printSteps(ctx, w, st, args[0])
}

func printRuns(ctx context.Context, w io.Writer, st store.Store[graph.State]) error {
	runs, err := st.Runs(ctx)
	if err != nil {
		return err
	}
	for _, id := range runs {
		fmt.Fprintln(w, id)
	}
	return nil
}

func printSteps(ctx context.Context, w io.Writer, st store.Store[graph.State], runID string) error {
	steps, err := st.History(ctx, runID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no history for run %s", runID)
	}
	if err != nil {
		return err
	}
	for _, rec := range steps {
		fmt.Fprintf(w, "%d\t%s\t%s\n", rec.Step, rec.NodeID, rec.State)
	}
	return nil
}
