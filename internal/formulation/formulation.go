package formulation

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// Formulate builds the full season optimization model: variables, objective,
// then constraints. Each phase completes before the next begins and the input
// data is never mutated.
func Formulate(data *types.ModelInputData) (*milp.Model, *DecisionVariables, error) {
	log := logger.WithComponent("formulation")
	start := time.Now()

	model := milp.NewModel("retro_fantasy", milp.Maximize)

	dvs, err := CreateDecisionVariables(model, data)
	if err != nil {
		return nil, nil, fmt.Errorf("creating decision variables: %w", err)
	}

	setObjective(model, data, dvs)

	if err := addAllConstraints(model, data, dvs); err != nil {
		return nil, nil, fmt.Errorf("adding constraints: %w", err)
	}

	log.WithFields(logrus.Fields{
		"players":     len(data.PlayerIDs()),
		"rounds":      len(data.RoundNumbers()),
		"variables":   model.NumVars(),
		"constraints": model.NumConstraints(),
		"build_time":  time.Since(start),
	}).Info("Season model formulated")

	return model, dvs, nil
}
