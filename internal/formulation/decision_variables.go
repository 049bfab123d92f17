package formulation

import (
	"fmt"
	"math"

	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// DecisionVariables holds every variable family of the season model, keyed by
// the index tuples from types.ModelInputData. Populated by the builder, then
// only read.
type DecisionVariables struct {
	// XSelected is squad membership: player p is in the squad in round r.
	XSelected map[types.PlayerRound]*milp.Var

	// YOnfield and YBench are positional slot assignments. Only eligible
	// (player, position, round) combinations are instantiated; eligibility is
	// enforced by construction, not by constraint.
	YOnfield map[types.PlayerPositionRound]*milp.Var
	YBench   map[types.PlayerPositionRound]*milp.Var

	// YUtility is the position-free utility bench slot.
	YUtility map[types.PlayerRound]*milp.Var

	// Captain and Scored select the captain and the counted players per round.
	Captain map[types.PlayerRound]*milp.Var
	Scored  map[types.PlayerRound]*milp.Var

	// TradedIn and TradedOut indicate trades at the start of round r, r >= 2.
	TradedIn  map[types.PlayerRound]*milp.Var
	TradedOut map[types.PlayerRound]*milp.Var

	// Bank is the continuous cash reserve after each round's trades.
	Bank map[int]*milp.Var
}

// CreateDecisionVariables builds every variable family on the model.
func CreateDecisionVariables(model *milp.Model, data *types.ModelInputData) (*DecisionVariables, error) {
	dvs := &DecisionVariables{}
	var err error

	if dvs.XSelected, err = createSquadSelectionVariables(model, data); err != nil {
		return nil, err
	}
	if dvs.YOnfield, dvs.YBench, dvs.YUtility, err = createPositionalSelectionVariables(model, data); err != nil {
		return nil, err
	}
	if dvs.Scored, err = createScoredVariables(model, data); err != nil {
		return nil, err
	}
	if dvs.Captain, err = createCaptainVariables(model, data); err != nil {
		return nil, err
	}
	if dvs.TradedIn, dvs.TradedOut, err = createTradeIndicatorVariables(model, data); err != nil {
		return nil, err
	}
	if dvs.Bank, err = createBankBalanceVariables(model, data); err != nil {
		return nil, err
	}

	return dvs, nil
}

func createSquadSelectionVariables(model *milp.Model, data *types.ModelInputData) (map[types.PlayerRound]*milp.Var, error) {
	x := make(map[types.PlayerRound]*milp.Var, len(data.IdxPlayerRound()))
	for _, pr := range data.IdxPlayerRound() {
		v, err := model.NewBinaryVar(fmt.Sprintf("x_%d_%d", pr.Player, pr.Round))
		if err != nil {
			return nil, fmt.Errorf("squad selection variables: %w", err)
		}
		x[pr] = v
	}
	return x, nil
}

func createPositionalSelectionVariables(model *milp.Model, data *types.ModelInputData) (
	yOnfield, yBench map[types.PlayerPositionRound]*milp.Var,
	yUtility map[types.PlayerRound]*milp.Var,
	err error,
) {
	eligible := data.IdxEligiblePlayerPositionRound()
	yOnfield = make(map[types.PlayerPositionRound]*milp.Var, len(eligible))
	yBench = make(map[types.PlayerPositionRound]*milp.Var, len(eligible))

	for _, pkr := range eligible {
		on, verr := model.NewBinaryVar(fmt.Sprintf("y_on_%d_%s_%d", pkr.Player, pkr.Position, pkr.Round))
		if verr != nil {
			return nil, nil, nil, fmt.Errorf("onfield variables: %w", verr)
		}
		yOnfield[pkr] = on

		bench, verr := model.NewBinaryVar(fmt.Sprintf("y_bench_%d_%s_%d", pkr.Player, pkr.Position, pkr.Round))
		if verr != nil {
			return nil, nil, nil, fmt.Errorf("bench variables: %w", verr)
		}
		yBench[pkr] = bench
	}

	yUtility = make(map[types.PlayerRound]*milp.Var, len(data.IdxPlayerRound()))
	for _, pr := range data.IdxPlayerRound() {
		util, verr := model.NewBinaryVar(fmt.Sprintf("y_util_%d_%d", pr.Player, pr.Round))
		if verr != nil {
			return nil, nil, nil, fmt.Errorf("utility variables: %w", verr)
		}
		yUtility[pr] = util
	}

	return yOnfield, yBench, yUtility, nil
}

func createScoredVariables(model *milp.Model, data *types.ModelInputData) (map[types.PlayerRound]*milp.Var, error) {
	scored := make(map[types.PlayerRound]*milp.Var, len(data.IdxPlayerRound()))
	for _, pr := range data.IdxPlayerRound() {
		v, err := model.NewBinaryVar(fmt.Sprintf("scored_%d_%d", pr.Player, pr.Round))
		if err != nil {
			return nil, fmt.Errorf("scored variables: %w", err)
		}
		scored[pr] = v
	}
	return scored, nil
}

func createCaptainVariables(model *milp.Model, data *types.ModelInputData) (map[types.PlayerRound]*milp.Var, error) {
	captain := make(map[types.PlayerRound]*milp.Var, len(data.IdxPlayerRound()))
	for _, pr := range data.IdxPlayerRound() {
		v, err := model.NewBinaryVar(fmt.Sprintf("captain_%d_%d", pr.Player, pr.Round))
		if err != nil {
			return nil, fmt.Errorf("captain variables: %w", err)
		}
		captain[pr] = v
	}
	return captain, nil
}

func createTradeIndicatorVariables(model *milp.Model, data *types.ModelInputData) (
	tradedIn, tradedOut map[types.PlayerRound]*milp.Var,
	err error,
) {
	idx := data.IdxPlayerRoundExcluding1()
	tradedIn = make(map[types.PlayerRound]*milp.Var, len(idx))
	tradedOut = make(map[types.PlayerRound]*milp.Var, len(idx))

	for _, pr := range idx {
		in, verr := model.NewBinaryVar(fmt.Sprintf("in_%d_%d", pr.Player, pr.Round))
		if verr != nil {
			return nil, nil, fmt.Errorf("traded-in variables: %w", verr)
		}
		tradedIn[pr] = in

		out, verr := model.NewBinaryVar(fmt.Sprintf("out_%d_%d", pr.Player, pr.Round))
		if verr != nil {
			return nil, nil, fmt.Errorf("traded-out variables: %w", verr)
		}
		tradedOut[pr] = out
	}

	return tradedIn, tradedOut, nil
}

func createBankBalanceVariables(model *milp.Model, data *types.ModelInputData) (map[int]*milp.Var, error) {
	bank := make(map[int]*milp.Var, len(data.RoundNumbers()))
	for _, r := range data.RoundNumbers() {
		v, err := model.NewContinuousVar(fmt.Sprintf("bank_%d", r), 0, math.Inf(1))
		if err != nil {
			return nil, fmt.Errorf("bank variables: %w", err)
		}
		bank[r] = v
	}
	return bank, nil
}
