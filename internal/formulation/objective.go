package formulation

import (
	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// setObjective sets the maximization objective: the sum of counted scores plus
// a captain bonus. Combined with the captain <= scored constraint, the
// captain's score is effectively doubled.
func setObjective(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) {
	obj := milp.NewExpr()
	for _, pr := range data.IdxPlayerRound() {
		score := data.Score(pr.Player, pr.Round)
		obj.Add(score, dvs.Scored[pr])
		obj.Add(score, dvs.Captain[pr])
	}
	model.SetObjective(obj)
}
