package engine

import (
	"fmt"

	"github.com/relgraphio/relgraph/internal/models"
)

// decide combines a sample, a damped estimate, and the node cap into the
// guard verdict.
//
// A detected hub aborts regardless of the numeric estimate: a single
// node whose out-degree dwarfs the sample median makes geometric
// extrapolation meaningless, and callers must opt in explicitly via
// skip_estimation to traverse through one. Otherwise the damped,
// bound-capped estimate decides: above cap times margin aborts, between
// cap and cap times margin proceeds with a warning.
func decide(sample *models.SampleResult, est *models.EstimateResult, nodeCap int, margin float64) *models.GuardResult {
	result := &models.GuardResult{
		Decision:       models.GuardProceed,
		EstimatedNodes: est.EstimatedNodes,
		NodeCap:        nodeCap,
		TableBound:     est.TableBound,
		HubDetected:    sample.HubDetected,
	}

	if sample.HubDetected {
		result.Decision = models.GuardAbort
		result.Suggestions = []string{
			fmt.Sprintf("a sampled node has out-degree %d against a median of %.1f; estimates are unreliable near hubs", sample.MaxOutDegree, sample.MedianDegree),
			"add a stop condition to avoid expanding through the hub",
			"set skip_estimation to bypass the guard if the traversal is known to be bounded",
		}

		return result
	}

	switch {
	case est.EstimatedNodes > int64(float64(nodeCap)*margin):
		result.Decision = models.GuardAbort
		result.Suggestions = []string{
			fmt.Sprintf("estimated %d nodes exceeds the cap of %d; raise node_cap to at least %d", est.EstimatedNodes, nodeCap, est.EstimatedNodes),
			"reduce max_depth to shrink the reachable set",
			"add a stop condition to prune expansion",
		}
	case est.EstimatedNodes > int64(nodeCap):
		result.Decision = models.GuardOverride
		result.Suggestions = []string{
			fmt.Sprintf("estimated %d nodes is above the cap of %d but within the safety margin", est.EstimatedNodes, nodeCap),
		}
	}

	return result
}
