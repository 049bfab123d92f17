package solution

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/formulation"
	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// selectionTolerance: a binary variable counts as selected when its realized
// value is within this distance of 1.
const selectionTolerance = 1e-6

func isSelected(v *milp.Var) bool {
	return v != nil && math.Abs(v.Value-1) <= selectionTolerance
}

// Extract reads the realized variable values off the solved model's decision
// variables and produces the round-centric summary. The status string is
// passed through from the solver so partial (time-limited) incumbents are
// labeled as such.
func Extract(
	data *types.ModelInputData,
	dvs *formulation.DecisionVariables,
	status string,
	objectiveValue float64,
) *Summary {
	log := logger.WithComponent("solution")

	rounds := make(map[int]RoundDetail, len(data.RoundNumbers()))
	for _, r := range data.RoundNumbers() {
		rounds[r] = extractRound(data, dvs, r)
	}

	log.WithFields(logrus.Fields{
		"status":    status,
		"objective": objectiveValue,
		"rounds":    len(rounds),
	}).Info("Solution extracted")

	return &Summary{
		Status:         status,
		ObjectiveValue: objectiveValue,
		Rounds:         rounds,
	}
}

func extractRound(data *types.ModelInputData, dvs *formulation.DecisionVariables, r int) RoundDetail {
	captainName := ""
	captainBonus := 0.0
	totalPoints := 0.0
	bank := 0.0
	if v, ok := dvs.Bank[r]; ok {
		bank = v.Value
	}

	teamValue := 0.0
	var team []TeamEntry

	for _, p := range data.PlayerIDs() {
		pr := types.PlayerRound{Player: p, Round: r}

		captain := isSelected(dvs.Captain[pr])
		scored := isSelected(dvs.Scored[pr])
		if captain {
			captainName = data.Players[p].Name()
			captainBonus = data.Score(p, r)
		}
		if scored {
			totalPoints += data.Score(p, r)
		}

		slot, position := classifySlot(dvs, p, r)
		if slot == "" {
			continue
		}

		price := data.Price(p, r)
		teamValue += price
		team = append(team, TeamEntry{
			PlayerID:   p,
			PlayerName: data.Players[p].Name(),
			Slot:       slot,
			Position:   position,
			Price:      price,
			Score:      data.Score(p, r),
			Scored:     scored,
			Captain:    captain,
		})
	}
	totalPoints += captainBonus

	sortTeamEntries(team)

	detail := RoundDetail{
		Summary: RoundSummary{
			RoundNumber:       r,
			TotalTeamPoints:   totalPoints,
			CaptainPlayerName: captainName,
			BankBalance:       bank,
			TeamValue:         teamValue,
			TotalValue:        bank + teamValue,
		},
		Team: team,
	}
	if r != data.RoundNumbers()[0] {
		detail.Trades = extractTrades(data, dvs, r)
	}
	return detail
}

// classifySlot resolves the single slot a player occupies in a round, if any.
// Position is empty for the utility bench.
func classifySlot(dvs *formulation.DecisionVariables, p, r int) (slot, position string) {
	for _, k := range types.AllPositions {
		key := types.PlayerPositionRound{Player: p, Position: k, Round: r}
		if isSelected(dvs.YOnfield[key]) {
			return SlotOnField, string(k)
		}
	}
	for _, k := range types.AllPositions {
		key := types.PlayerPositionRound{Player: p, Position: k, Round: r}
		if isSelected(dvs.YBench[key]) {
			return SlotBench, string(k)
		}
	}
	if isSelected(dvs.YUtility[types.PlayerRound{Player: p, Round: r}]) {
		return SlotUtilityBench, ""
	}
	return "", ""
}

func extractTrades(data *types.ModelInputData, dvs *formulation.DecisionVariables, r int) *RoundTradeSummary {
	trades := &RoundTradeSummary{
		RoundNumber: r,
		TradedIn:    []TradeEntry{},
		TradedOut:   []TradeEntry{},
	}
	for _, p := range data.PlayerIDs() {
		pr := types.PlayerRound{Player: p, Round: r}
		if isSelected(dvs.TradedIn[pr]) {
			trades.TradedIn = append(trades.TradedIn, TradeEntry{
				PlayerID:   p,
				PlayerName: data.Players[p].Name(),
				Price:      data.Price(p, r),
			})
		}
		if isSelected(dvs.TradedOut[pr]) {
			trades.TradedOut = append(trades.TradedOut, TradeEntry{
				PlayerID:   p,
				PlayerName: data.Players[p].Name(),
				Price:      data.Price(p, r),
			})
		}
	}
	return trades
}

// sortTeamEntries orders a round's team listing by position (canonical order,
// utility last), then slot, then price descending.
func sortTeamEntries(team []TeamEntry) {
	positionOrder := make(map[string]int, len(types.AllPositions)+1)
	for i, k := range types.AllPositions {
		positionOrder[string(k)] = i
	}
	positionOrder[""] = len(types.AllPositions)

	slotOrder := map[string]int{
		SlotOnField:      0,
		SlotBench:        1,
		SlotUtilityBench: 2,
	}

	sort.SliceStable(team, func(i, j int) bool {
		if positionOrder[team[i].Position] != positionOrder[team[j].Position] {
			return positionOrder[team[i].Position] < positionOrder[team[j].Position]
		}
		if slotOrder[team[i].Slot] != slotOrder[team[j].Slot] {
			return slotOrder[team[i].Slot] < slotOrder[team[j].Slot]
		}
		return team[i].Price > team[j].Price
	})
}
