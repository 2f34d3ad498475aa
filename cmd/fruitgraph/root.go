package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree writing results to stdout and logs to stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "fruitgraph",
		Short:         "Run the fruit selection workflows",
		Long:          `fruitgraph validates a fruit choice by running it through a compiled state graph.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().String("config", "", "Path to a YAML configuration file")

	root.AddCommand(newRunCmd(), newDrawCmd(), newHistoryCmd())
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(stdout, stderr io.Writer, args []string) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
