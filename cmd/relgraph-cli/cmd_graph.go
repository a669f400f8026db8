package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/relgraphio/relgraph/client"
)

func parseNodeID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fatal("parse node id", fmt.Errorf("%q is not an integer", arg))
	}
	return id
}

func newSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List registered graph schemas and server limits",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Schemas(context.Background())
			if err != nil {
				fatal("schemas", err)
			}
			output(result)
		},
	}
}

func newTraverseCmd() *cobra.Command {
	var (
		depth   int
		nodeCap int
		dir     string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "traverse <start>",
		Short: "BFS traverse outward from a node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Traverse(context.Background(), flagSchema, client.TraverseRequest{
				Start:          parseNodeID(args[0]),
				Direction:      dir,
				MaxDepth:       depth,
				NodeCap:        nodeCap,
				SkipEstimation: force,
			})
			if err != nil {
				fatal("traverse", err)
			}
			output(result)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Max traversal depth (0 = server default)")
	cmd.Flags().IntVar(&nodeCap, "node-cap", 0, "Max visited nodes (0 = server default)")
	cmd.Flags().StringVar(&dir, "direction", "outbound", "Direction: outbound|inbound|both")
	cmd.Flags().BoolVar(&force, "force", false, "Skip the pre-flight size estimate")
	return cmd
}

func newNeighborsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "neighbors <id>",
		Short: "Get the direct neighborhood of a node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Neighbors(context.Background(), flagSchema, parseNodeID(args[0]))
			if err != nil {
				fatal("neighbors", err)
			}
			output(result)
		},
	}
}

func newAggregateCmd() *cobra.Command {
	var (
		column string
		seed   float64
		depth  int
	)
	cmd := &cobra.Command{
		Use:   "aggregate <start>",
		Short: "Roll up multiplied quantities along every path from a root",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Aggregate(context.Background(), flagSchema, client.AggregateRequest{
				Start:            parseNodeID(args[0]),
				MultiplierColumn: column,
				Seed:             seed,
				MaxDepth:         depth,
			})
			if err != nil {
				fatal("aggregate", err)
			}
			output(result)
		},
	}
	cmd.Flags().StringVar(&column, "multiplier", "", "Edge column holding the per-edge multiplier")
	cmd.Flags().Float64Var(&seed, "seed", 1, "Root quantity to propagate")
	cmd.Flags().IntVar(&depth, "depth", 0, "Max rollup depth (0 = server default)")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		dir         string
		sampleDepth int
		targetDepth int
	)
	cmd := &cobra.Command{
		Use:   "estimate <start>",
		Short: "Estimate traversal size without running it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Estimate(context.Background(), flagSchema, client.EstimateRequest{
				Start:       parseNodeID(args[0]),
				Direction:   dir,
				SampleDepth: sampleDepth,
				TargetDepth: targetDepth,
			})
			if err != nil {
				fatal("estimate", err)
			}
			output(result)
		},
	}
	cmd.Flags().StringVar(&dir, "direction", "outbound", "Direction: outbound|inbound|both")
	cmd.Flags().IntVar(&sampleDepth, "sample-depth", 0, "Levels to probe (0 = server default)")
	cmd.Flags().IntVar(&targetDepth, "target-depth", 0, "Depth to extrapolate to (0 = server default)")
	return cmd
}

func newPathCmd() *cobra.Command {
	var (
		weighted bool
		excluded []int64
	)
	cmd := &cobra.Command{
		Use:   "path <from> <to>",
		Short: "Find one lowest-cost path between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Path(context.Background(), flagSchema, client.PathRequest{
				Start:    parseNodeID(args[0]),
				End:      parseNodeID(args[1]),
				Weighted: weighted,
				Excluded: excluded,
			})
			if err != nil {
				fatal("path", err)
			}
			output(result)
		},
	}
	cmd.Flags().BoolVar(&weighted, "weighted", false, "Use the schema's weight column (Dijkstra)")
	cmd.Flags().Int64SliceVar(&excluded, "exclude", nil, "Node IDs to route around")
	return cmd
}

func newPathsCmd() *cobra.Command {
	var (
		weighted   bool
		maxResults int
	)
	cmd := &cobra.Command{
		Use:   "paths <from> <to>",
		Short: "Enumerate all tied lowest-cost paths between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Paths(context.Background(), flagSchema, client.PathRequest{
				Start:      parseNodeID(args[0]),
				End:        parseNodeID(args[1]),
				Weighted:   weighted,
				MaxResults: maxResults,
			})
			if err != nil {
				fatal("paths", err)
			}
			output(result)
		},
	}
	cmd.Flags().BoolVar(&weighted, "weighted", false, "Use the schema's weight column (Dijkstra)")
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "Cap on enumerated paths (0 = server default)")
	return cmd
}
