package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/stategraph-go/internal/fruit"
)

func newDrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Print the workflow as a Mermaid diagram",
		Long:  `Compiles the selected workflow and prints a Mermaid flowchart (graph TD) of its nodes and edges.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("graph")
			g, err := fruit.New(name, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), g.DrawMermaid())
			return nil
		},
	}
	cmd.Flags().String("graph", fruit.BasicGraph, "Workflow to draw: basic or review")
	return cmd
}
