package formulation

import (
	"fmt"

	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// addAllConstraints adds every constraint group of the season model.
func addAllConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	steps := []func(*milp.Model, *types.ModelInputData, *DecisionVariables) error{
		addSlotCompositionConstraints,
		addSquadLinkingConstraints,
		addCountedScoreConstraints,
		addCaptaincyConstraints,
		addInitialBankBalanceConstraints,
		addBankBalanceRecurrenceConstraints,
		addTradeIndicatorLinkingConstraints,
		addMaximumTeamChangesPerRoundConstraints,
	}
	for _, step := range steps {
		if err := step(model, data, dvs); err != nil {
			return err
		}
	}
	return nil
}

// addSlotCompositionConstraints fixes the number of occupied slots per round:
// for every position the on-field and bench counts are exact, and the utility
// bench holds exactly utility_bench_count players.
func addSlotCompositionConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	for _, r := range data.RoundNumbers() {
		for _, k := range types.AllPositions {
			onfield := milp.NewExpr()
			bench := milp.NewExpr()
			for _, p := range data.PlayerIDs() {
				key := types.PlayerPositionRound{Player: p, Position: k, Round: r}
				if v, ok := dvs.YOnfield[key]; ok {
					onfield.Add(1, v)
				}
				if v, ok := dvs.YBench[key]; ok {
					bench.Add(1, v)
				}
			}
			if _, err := model.AddConstraint(
				fmt.Sprintf("onfield_slots_%s_%d", k, r),
				onfield, milp.Equal, float64(data.OnFieldRequired(k)),
			); err != nil {
				return err
			}
			if _, err := model.AddConstraint(
				fmt.Sprintf("bench_slots_%s_%d", k, r),
				bench, milp.Equal, float64(data.BenchRequired(k)),
			); err != nil {
				return err
			}
		}

		utility := milp.NewExpr()
		for _, p := range data.PlayerIDs() {
			utility.Add(1, dvs.YUtility[types.PlayerRound{Player: p, Round: r}])
		}
		if _, err := model.AddConstraint(
			fmt.Sprintf("utility_slots_%d", r),
			utility, milp.Equal, float64(data.UtilityBenchCount()),
		); err != nil {
			return err
		}
	}
	return nil
}

// addSquadLinkingConstraints ties squad membership to slot occupancy: a player
// is in the squad exactly when they fill some slot, and fills at most one.
func addSquadLinkingConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	for _, pr := range data.IdxPlayerRound() {
		slots := milp.NewExpr()
		for _, k := range types.AllPositions {
			key := types.PlayerPositionRound{Player: pr.Player, Position: k, Round: pr.Round}
			if v, ok := dvs.YOnfield[key]; ok {
				slots.Add(1, v)
			}
			if v, ok := dvs.YBench[key]; ok {
				slots.Add(1, v)
			}
		}
		slots.Add(1, dvs.YUtility[pr])

		linking := milp.NewExpr().Add(1, dvs.XSelected[pr]).AddExpr(negate(slots))
		if _, err := model.AddConstraint(
			fmt.Sprintf("squad_linking_%d_%d", pr.Player, pr.Round),
			linking, milp.Equal, 0,
		); err != nil {
			return err
		}

		if _, err := model.AddConstraint(
			fmt.Sprintf("one_slot_max_%d_%d", pr.Player, pr.Round),
			slots, milp.LessOrEqual, 1,
		); err != nil {
			return err
		}
	}
	return nil
}

// addCountedScoreConstraints selects exactly counted_onfield_players counted
// scores per round, and only on-field players can be counted.
func addCountedScoreConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	for _, r := range data.RoundNumbers() {
		count := milp.NewExpr()
		for _, p := range data.PlayerIDs() {
			pr := types.PlayerRound{Player: p, Round: r}
			count.Add(1, dvs.Scored[pr])

			onfield := milp.NewExpr().Add(1, dvs.Scored[pr])
			for _, k := range types.AllPositions {
				key := types.PlayerPositionRound{Player: p, Position: k, Round: r}
				if v, ok := dvs.YOnfield[key]; ok {
					onfield.Add(-1, v)
				}
			}
			if _, err := model.AddConstraint(
				fmt.Sprintf("scored_requires_onfield_%d_%d", p, r),
				onfield, milp.LessOrEqual, 0,
			); err != nil {
				return err
			}
		}
		if _, err := model.AddConstraint(
			fmt.Sprintf("scored_count_%d", r),
			count, milp.Equal, float64(data.CountedOnfieldPlayers(r)),
		); err != nil {
			return err
		}
	}
	return nil
}

// addCaptaincyConstraints picks exactly one captain per round, drawn from the
// counted players.
func addCaptaincyConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	for _, r := range data.RoundNumbers() {
		count := milp.NewExpr()
		for _, p := range data.PlayerIDs() {
			pr := types.PlayerRound{Player: p, Round: r}
			count.Add(1, dvs.Captain[pr])

			requiresScored := milp.NewExpr().Add(1, dvs.Captain[pr]).Add(-1, dvs.Scored[pr])
			if _, err := model.AddConstraint(
				fmt.Sprintf("captain_requires_scored_%d_%d", p, r),
				requiresScored, milp.LessOrEqual, 0,
			); err != nil {
				return err
			}
		}
		if _, err := model.AddConstraint(
			fmt.Sprintf("captain_count_%d", r),
			count, milp.Equal, 1,
		); err != nil {
			return err
		}
	}
	return nil
}

// addInitialBankBalanceConstraints fixes the round-1 bank to the salary cap
// minus the cost of the opening squad.
func addInitialBankBalanceConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	expr := milp.NewExpr().Add(1, dvs.Bank[data.RoundNumbers()[0]])
	first := data.RoundNumbers()[0]
	for _, p := range data.PlayerIDs() {
		expr.Add(data.Price(p, first), dvs.XSelected[types.PlayerRound{Player: p, Round: first}])
	}
	_, err := model.AddConstraint(
		fmt.Sprintf("bank_initial_round_%d", first),
		expr, milp.Equal, data.SalaryCap(),
	)
	return err
}

// addBankBalanceRecurrenceConstraints carries the bank across rounds: sales
// credit and purchases debit at the current round's price. Non-negativity of
// the bank variable enforces the salary cap continuously.
func addBankBalanceRecurrenceConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	rounds := data.RoundNumbers()
	for i := 1; i < len(rounds); i++ {
		r := rounds[i]
		prev := rounds[i-1]

		expr := milp.NewExpr().
			Add(1, dvs.Bank[r]).
			Add(-1, dvs.Bank[prev])
		for _, p := range data.PlayerIDs() {
			pr := types.PlayerRound{Player: p, Round: r}
			price := data.Price(p, r)
			expr.Add(-price, dvs.TradedOut[pr])
			expr.Add(price, dvs.TradedIn[pr])
		}
		if _, err := model.AddConstraint(
			fmt.Sprintf("bank_recurrence_%d", r),
			expr, milp.Equal, 0,
		); err != nil {
			return err
		}
	}
	return nil
}

// addTradeIndicatorLinkingConstraints pins the trade indicators to the change
// in squad membership with three inequalities per direction. The upper bounds
// stop spurious in/out activations: the objective never rewards trading, but
// without them a slack quota would admit simultaneous in=out=1.
func addTradeIndicatorLinkingConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	rounds := data.RoundNumbers()
	for i := 1; i < len(rounds); i++ {
		r := rounds[i]
		prev := rounds[i-1]

		for _, p := range data.PlayerIDs() {
			pr := types.PlayerRound{Player: p, Round: r}
			x := dvs.XSelected[pr]
			xPrev := dvs.XSelected[types.PlayerRound{Player: p, Round: prev}]
			in := dvs.TradedIn[pr]
			out := dvs.TradedOut[pr]

			// in >= x_r - x_{r-1}
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_lb_in_%d_%d", p, r),
				milp.NewExpr().Add(1, in).Add(-1, x).Add(1, xPrev),
				milp.GreaterOrEqual, 0,
			); err != nil {
				return err
			}
			// in <= x_r
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_ub_in_requires_selected_%d_%d", p, r),
				milp.NewExpr().Add(1, in).Add(-1, x),
				milp.LessOrEqual, 0,
			); err != nil {
				return err
			}
			// in <= 1 - x_{r-1}
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_ub_in_requires_not_prev_%d_%d", p, r),
				milp.NewExpr().Add(1, in).Add(1, xPrev),
				milp.LessOrEqual, 1,
			); err != nil {
				return err
			}

			// out >= x_{r-1} - x_r
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_lb_out_%d_%d", p, r),
				milp.NewExpr().Add(1, out).Add(-1, xPrev).Add(1, x),
				milp.GreaterOrEqual, 0,
			); err != nil {
				return err
			}
			// out <= x_{r-1}
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_ub_out_requires_prev_%d_%d", p, r),
				milp.NewExpr().Add(1, out).Add(-1, xPrev),
				milp.LessOrEqual, 0,
			); err != nil {
				return err
			}
			// out <= 1 - x_r
			if _, err := model.AddConstraint(
				fmt.Sprintf("trade_link_ub_out_requires_not_selected_%d_%d", p, r),
				milp.NewExpr().Add(1, out).Add(1, x),
				milp.LessOrEqual, 1,
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// addMaximumTeamChangesPerRoundConstraints caps trades per round in both
// directions. In balanced roster conditions the two sums are equal; both
// bounds are kept for symmetry.
func addMaximumTeamChangesPerRoundConstraints(model *milp.Model, data *types.ModelInputData, dvs *DecisionVariables) error {
	for _, r := range data.RoundNumbersExcluding1() {
		ins := milp.NewExpr()
		outs := milp.NewExpr()
		for _, p := range data.PlayerIDs() {
			pr := types.PlayerRound{Player: p, Round: r}
			ins.Add(1, dvs.TradedIn[pr])
			outs.Add(1, dvs.TradedOut[pr])
		}
		quota := float64(data.MaxTrades(r))
		if _, err := model.AddConstraint(
			fmt.Sprintf("max_trades_in_%d", r), ins, milp.LessOrEqual, quota,
		); err != nil {
			return err
		}
		if _, err := model.AddConstraint(
			fmt.Sprintf("max_trades_out_%d", r), outs, milp.LessOrEqual, quota,
		); err != nil {
			return err
		}
	}
	return nil
}

func negate(e *milp.LinExpr) *milp.LinExpr {
	out := milp.NewExpr()
	for _, t := range e.Terms() {
		out.Add(-t.Coef, t.Var)
	}
	out.AddConstant(-e.Constant)
	return out
}
