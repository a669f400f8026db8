package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/relgraphio/relgraph/client"
)

func newCentralityCmd() *cobra.Command {
	var (
		topN    int
		nodeCap int
	)
	cmd := &cobra.Command{
		Use:   "centrality <kind>",
		Short: "Rank nodes by degree, betweenness, closeness, or pagerank",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Centrality(context.Background(), flagSchema, client.CentralityRequest{
				Kind:    args[0],
				TopN:    topN,
				NodeCap: nodeCap,
			})
			if err != nil {
				fatal("centrality", err)
			}
			if flagFmt == "table" {
				rows := make([][]string, 0, len(result.Scores))
				for _, s := range result.Scores {
					rows = append(rows, []string{
						strconv.FormatInt(s.ID, 10),
						strconv.FormatFloat(s.Score, 'f', 6, 64),
					})
				}
				formatTable([]string{"NODE", "SCORE"}, rows)
				return
			}
			output(result)
		},
	}
	cmd.Flags().IntVar(&topN, "top", 0, "Return only the N highest-ranked nodes")
	cmd.Flags().IntVar(&nodeCap, "node-cap", 0, "Max graph size to load (0 = server default)")
	return cmd
}

func newComponentsCmd() *cobra.Command {
	var (
		minSize int
		nodeCap int
	)
	cmd := &cobra.Command{
		Use:   "components",
		Short: "Group the graph into weakly connected components",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Components(context.Background(), flagSchema, client.ComponentsRequest{
				MinSize: minSize,
				NodeCap: nodeCap,
			})
			if err != nil {
				fatal("components", err)
			}
			output(result)
		},
	}
	cmd.Flags().IntVar(&minSize, "min-size", 0, "Hide components smaller than this")
	cmd.Flags().IntVar(&nodeCap, "node-cap", 0, "Max graph size to load (0 = server default)")
	return cmd
}

func newResilienceCmd() *cobra.Command {
	var nodeCap int
	cmd := &cobra.Command{
		Use:   "resilience <node>",
		Short: "Simulate removing a node and report connectivity damage",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Graph.Resilience(context.Background(), flagSchema, client.ResilienceRequest{
				Remove:  parseNodeID(args[0]),
				NodeCap: nodeCap,
			})
			if err != nil {
				fatal("resilience", err)
			}
			output(result)
		},
	}
	cmd.Flags().IntVar(&nodeCap, "node-cap", 0, "Max graph size to load (0 = server default)")
	return cmd
}
