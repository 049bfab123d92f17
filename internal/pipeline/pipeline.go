package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/formulation"
	"github.com/stitts-dev/retro-fantasy/internal/loader"
	"github.com/stitts-dev/retro-fantasy/internal/solution"
	"github.com/stitts-dev/retro-fantasy/internal/solver"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// Options configures one end-to-end run.
type Options struct {
	Paths              loader.Paths
	Backend            solver.Backend
	TimeLimit          time.Duration
	Verbose            bool
	StrictNameMatching bool
	IncludeRound0      bool
}

// Run executes the whole pipeline in order: load data, build variables and
// constraints, solve, extract. Each phase fully completes before the next.
// The solver result is returned alongside the summary so callers can inspect
// status, runtime and backend.
func Run(opts Options) (*solution.Summary, *solver.Result, error) {
	log := logger.WithComponent("pipeline")
	start := time.Now()

	data, _, err := loader.LoadModelInputData(opts.Paths, opts.StrictNameMatching, opts.IncludeRound0)
	if err != nil {
		return nil, nil, fmt.Errorf("loading model input data: %w", err)
	}

	model, dvs, err := formulation.Formulate(data)
	if err != nil {
		return nil, nil, fmt.Errorf("formulating model: %w", err)
	}

	result, err := solver.Solve(model, solver.Options{
		Backend:   opts.Backend,
		TimeLimit: opts.TimeLimit,
		Verbose:   opts.Verbose,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("solving model: %w", err)
	}

	if err := solver.CheckResult(result); err != nil {
		return nil, result, err
	}

	summary := solution.Extract(data, dvs, string(result.Status), result.ObjectiveValue)

	log.WithFields(logrus.Fields{
		"status":    summary.Status,
		"objective": summary.ObjectiveValue,
		"elapsed":   time.Since(start),
	}).Info("Pipeline finished")

	return summary, result, nil
}
