package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/relgraphio/relgraph/internal/models"
)

// Estimate samples the subgraph around the start node and extrapolates
// its size at the target depth, returning both the raw sample and the
// guard's recommendation. This is the pre-flight backpressure check that
// runs before every expensive traversal.
func (e *Engine) Estimate(ctx context.Context, schema *models.SchemaDescriptor, req models.EstimateRequest) (*models.EstimateResult, *models.GuardResult, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	cfg := models.DefaultEstimationConfig()
	if req.Config != nil {
		cfg = *req.Config
	}

	targetDepth := e.clampDepth(req.TargetDepth, e.limits.MaxDepth)
	nodeCap := e.clampNodes(req.NodeCap)

	sample, err := e.Sample(ctx, schema, req.Start, req.Direction, req.SampleDepth)
	if err != nil {
		return nil, nil, err
	}

	bound, err := e.store.TableBound(ctx, schema)
	if err != nil {
		// The bound is advisory; estimation proceeds uncapped when
		// statistics are unavailable.
		e.log.WithError(err).Debug("table bound unavailable")

		bound = 0
	}

	est := extrapolate(sample, targetDepth, cfg, bound)
	guard := decide(sample, est, nodeCap, e.limits.GuardMargin)

	return est, guard, nil
}

// preflight runs the estimate+guard gate ahead of a traversal and
// converts an abort recommendation into a SubgraphTooLargeError.
func (e *Engine) preflight(ctx context.Context, schema *models.SchemaDescriptor, start int64, dir models.Direction, targetDepth, nodeCap int) error {
	sample, err := e.Sample(ctx, schema, start, dir, 0)
	if err != nil {
		return fmt.Errorf("pre-flight sample: %w", err)
	}

	bound, err := e.store.TableBound(ctx, schema)
	if err != nil {
		e.log.WithError(err).Debug("table bound unavailable")

		bound = 0
	}

	est := extrapolate(sample, targetDepth, models.DefaultEstimationConfig(), bound)
	guard := decide(sample, est, nodeCap, e.limits.GuardMargin)

	switch guard.Decision {
	case models.GuardAbort:
		return &models.SubgraphTooLargeError{
			EstimatedNodes: guard.EstimatedNodes,
			NodeCap:        nodeCap,
			Suggestions:    guard.Suggestions,
		}
	case models.GuardOverride:
		e.log.WithField("estimated_nodes", guard.EstimatedNodes).Warn("traversal estimate near node cap, proceeding")
	case models.GuardProceed:
	}

	return nil
}

// extrapolate produces a damped size estimate for the target depth.
//
// The continuation uses the most recent growth rate rather than the
// average: recent behavior is the better predictor of what the next
// levels do. Damping applies when convergence signals path sharing and
// again when the trend is already decreasing. The result is monotonic in
// target depth, never negative or NaN, and capped at the table bound.
func extrapolate(sample *models.SampleResult, targetDepth int, cfg models.EstimationConfig, bound int64) *models.EstimateResult {
	result := &models.EstimateResult{
		Sample:      *sample,
		TargetDepth: targetDepth,
		TableBound:  bound,
	}

	// A terminated sample measured the whole reachable set; report it
	// exactly and never extrapolate past it.
	if sample.Terminated {
		result.EstimatedNodes = int64(sample.UniqueNodes)
		result.Exact = true

		return result
	}

	sampled := len(sample.LevelCounts)
	estimate := float64(sample.UniqueNodes)

	if targetDepth > sampled && sampled > 0 {
		rate := recentRate(sample.LevelCounts)

		if sample.ConvergenceRatio < cfg.ConvergenceThreshold {
			rate *= cfg.ConvergenceDamping
		}

		if sample.Trend == models.TrendDecreasing {
			rate *= cfg.TrendDamping
		}

		projected := float64(sample.LevelCounts[sampled-1])
		for level := sampled; level < targetDepth; level++ {
			projected *= rate
			estimate += projected
		}
	}

	estimate *= cfg.SafetyMargin

	if math.IsNaN(estimate) || estimate < 0 {
		estimate = float64(sample.UniqueNodes)
	}

	capped := int64(math.Ceil(estimate))
	if bound > 0 && capped > bound {
		capped = bound
	}

	result.EstimatedNodes = capped

	return result
}

// recentRate is the last level-over-level growth ratio in the sample.
func recentRate(levels []int) float64 {
	rates := growthRates(levels)
	if len(rates) == 0 {
		return 1
	}

	return rates[len(rates)-1]
}
