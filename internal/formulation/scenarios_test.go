package formulation_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/retro-fantasy/internal/formulation"
	"github.com/stitts-dev/retro-fantasy/internal/solution"
	"github.com/stitts-dev/retro-fantasy/internal/solver"
	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// The season scenarios exercise the full formulate -> solve -> extract chain
// against a real backend and are skipped when no cbc binary is installed.
func requireCBC(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cbc"); err != nil {
		t.Skip("cbc not installed; skipping end-to-end scenario")
	}
}

type scenarioPlayer struct {
	id        int
	name      string
	positions []types.Position
	scores    map[int]float64
	prices    map[int]float64
}

func scenarioData(
	t *testing.T,
	rounds map[int]types.Round,
	onField map[types.Position]int,
	salaryCap float64,
	players []scenarioPlayer,
) *types.ModelInputData {
	t.Helper()

	full := func(m map[types.Position]int) map[types.Position]int {
		out := map[types.Position]int{}
		for _, pos := range types.AllPositions {
			out[pos] = m[pos]
		}
		return out
	}
	rules, err := types.NewTeamStructureRules(full(onField), full(nil), salaryCap, 0)
	require.NoError(t, err)

	built := map[int]*types.Player{}
	for _, sp := range players {
		p, err := types.NewPlayer(sp.id, sp.name, "")
		require.NoError(t, err)
		p.OriginalPositions = types.NewPositionSet(sp.positions...)
		for r := range rounds {
			info, err := types.NewPlayerRoundInfo(r, sp.scores[r], sp.prices[r], types.NewPositionSet(sp.positions...))
			require.NoError(t, err)
			p.ByRound[r] = info
		}
		built[sp.id] = p
	}

	data, err := types.NewModelInputData(built, rounds, rules)
	require.NoError(t, err)
	return data
}

func solveScenario(t *testing.T, data *types.ModelInputData) (*solver.Result, *solution.Summary) {
	t.Helper()

	model, dvs, err := formulation.Formulate(data)
	require.NoError(t, err)

	result, err := solver.Solve(model, solver.Options{Backend: solver.BackendCBC})
	require.NoError(t, err)
	if result.Status != solver.StatusOptimal {
		return result, nil
	}
	return result, solution.Extract(data, dvs, string(result.Status), result.ObjectiveValue)
}

func teamEntry(summary *solution.Summary, round, playerID int) (solution.TeamEntry, bool) {
	for _, e := range summary.Rounds[round].Team {
		if e.PlayerID == playerID {
			return e, true
		}
	}
	return solution.TeamEntry{}, false
}

// Scenario A: single round, one DEF slot, two players. The higher scorer is
// on-field, counted and captain; objective doubles their score.
func TestScenarioSingleRoundBestPlayerWins(t *testing.T) {
	requireCBC(t)

	data := scenarioData(t,
		map[int]types.Round{1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 1}},
		map[types.Position]int{types.PositionDEF: 1},
		1000,
		[]scenarioPlayer{
			{id: 1, name: "A", positions: []types.Position{types.PositionDEF}, scores: map[int]float64{1: 10}, prices: map[int]float64{1: 100}},
			{id: 2, name: "B", positions: []types.Position{types.PositionDEF}, scores: map[int]float64{1: 7}, prices: map[int]float64{1: 100}},
		},
	)

	result, summary := solveScenario(t, data)
	require.Equal(t, solver.StatusOptimal, result.Status)
	assert.InDelta(t, 20, result.ObjectiveValue, 1e-6)

	entry, ok := teamEntry(summary, 1, 1)
	require.True(t, ok)
	assert.Equal(t, solution.SlotOnField, entry.Slot)
	assert.True(t, entry.Scored)
	assert.True(t, entry.Captain)
	assert.Equal(t, "A", summary.Rounds[1].Summary.CaptainPlayerName)

	_, benched := teamEntry(summary, 1, 2)
	assert.False(t, benched, "loser is not in the squad at all")
}

// Scenario B: pick the best two of three; the best is captain.
func TestScenarioPickBestTwoOfThree(t *testing.T) {
	requireCBC(t)

	data := scenarioData(t,
		map[int]types.Round{1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 2}},
		map[types.Position]int{types.PositionDEF: 2},
		1000,
		[]scenarioPlayer{
			{id: 1, name: "A", positions: []types.Position{types.PositionDEF}, scores: map[int]float64{1: 10}, prices: map[int]float64{1: 100}},
			{id: 2, name: "B", positions: []types.Position{types.PositionDEF}, scores: map[int]float64{1: 8}, prices: map[int]float64{1: 100}},
			{id: 3, name: "C", positions: []types.Position{types.PositionDEF}, scores: map[int]float64{1: 1}, prices: map[int]float64{1: 100}},
		},
	)

	result, summary := solveScenario(t, data)
	require.Equal(t, solver.StatusOptimal, result.Status)
	assert.InDelta(t, 28, result.ObjectiveValue, 1e-6)

	for _, id := range []int{1, 2} {
		entry, ok := teamEntry(summary, 1, id)
		require.True(t, ok)
		assert.True(t, entry.Scored)
	}
	captain, _ := teamEntry(summary, 1, 1)
	assert.True(t, captain.Captain)
}

// Scenario C: two rounds, one trade swaps the fading player for the rising one.
func TestScenarioTradeBetweenRounds(t *testing.T) {
	requireCBC(t)

	data := scenarioData(t,
		map[int]types.Round{
			1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 1},
			2: {Number: 2, MaxTrades: 1, CountedOnfieldPlayers: 1},
		},
		map[types.Position]int{types.PositionDEF: 1},
		1000,
		[]scenarioPlayer{
			{id: 1, name: "Fader", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 10, 2: 1}, prices: map[int]float64{1: 100, 2: 100}},
			{id: 2, name: "Riser", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 2, 2: 9}, prices: map[int]float64{1: 100, 2: 100}},
		},
	)

	result, summary := solveScenario(t, data)
	require.Equal(t, solver.StatusOptimal, result.Status)
	assert.InDelta(t, 38, result.ObjectiveValue, 1e-6)

	r2 := summary.Rounds[2]
	require.NotNil(t, r2.Trades)
	require.Len(t, r2.Trades.TradedOut, 1)
	require.Len(t, r2.Trades.TradedIn, 1)
	assert.Equal(t, 1, r2.Trades.TradedOut[0].PlayerID)
	assert.Equal(t, 2, r2.Trades.TradedIn[0].PlayerID)
}

// Scenario D: the quota forces the double upgrade to span two rounds.
func TestScenarioTradeQuotaSpreadsUpgrades(t *testing.T) {
	requireCBC(t)

	// p1/p2 are the only affordable starters; p3/p4 dominate from round 2 but
	// only one trade is allowed per round.
	data := scenarioData(t,
		map[int]types.Round{
			1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 2},
			2: {Number: 2, MaxTrades: 1, CountedOnfieldPlayers: 2},
			3: {Number: 3, MaxTrades: 1, CountedOnfieldPlayers: 2},
		},
		map[types.Position]int{types.PositionDEF: 2},
		200,
		[]scenarioPlayer{
			{id: 1, name: "Old1", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 5, 2: 1, 3: 1}, prices: map[int]float64{1: 100, 2: 100, 3: 100}},
			{id: 2, name: "Old2", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 5, 2: 1, 3: 1}, prices: map[int]float64{1: 100, 2: 100, 3: 100}},
			{id: 3, name: "New1", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 0, 2: 20, 3: 20}, prices: map[int]float64{1: 1000, 2: 100, 3: 100}},
			{id: 4, name: "New2", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 0, 2: 20, 3: 20}, prices: map[int]float64{1: 1000, 2: 100, 3: 100}},
		},
	)

	result, summary := solveScenario(t, data)
	require.Equal(t, solver.StatusOptimal, result.Status)

	r2 := summary.Rounds[2]
	require.NotNil(t, r2.Trades)
	assert.Len(t, r2.Trades.TradedIn, 1, "round 2 admits only one upgrade")

	r3 := summary.Rounds[3]
	require.NotNil(t, r3.Trades)
	assert.Len(t, r3.Trades.TradedIn, 1, "round 3 completes the second upgrade")

	// By round 3 both newcomers are on the park.
	for _, id := range []int{3, 4} {
		entry, ok := teamEntry(summary, 3, id)
		require.True(t, ok, "player %d should be owned by round 3", id)
		assert.Equal(t, solution.SlotOnField, entry.Slot)
	}
}

// Scenario E: the dual-position player stays and switches slots while the
// specialists rotate through the other slot.
func TestScenarioDualPositionSlotSwitch(t *testing.T) {
	requireCBC(t)

	data := scenarioData(t,
		map[int]types.Round{
			1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 2},
			2: {Number: 2, MaxTrades: 1, CountedOnfieldPlayers: 2},
		},
		map[types.Position]int{types.PositionDEF: 1, types.PositionMID: 1},
		1000,
		[]scenarioPlayer{
			{id: 1, name: "DefSpec", positions: []types.Position{types.PositionDEF},
				scores: map[int]float64{1: 20, 2: 1}, prices: map[int]float64{1: 100, 2: 100}},
			{id: 2, name: "MidSpec", positions: []types.Position{types.PositionMID},
				scores: map[int]float64{1: 1, 2: 20}, prices: map[int]float64{1: 100, 2: 100}},
			{id: 3, name: "Dual", positions: []types.Position{types.PositionDEF, types.PositionMID},
				scores: map[int]float64{1: 10, 2: 10}, prices: map[int]float64{1: 100, 2: 100}},
		},
	)

	result, summary := solveScenario(t, data)
	require.Equal(t, solver.StatusOptimal, result.Status)
	// r1: DefSpec(20) + Dual as MID(10), captain DefSpec.
	// r2: MidSpec(20) + Dual as DEF(10), captain MidSpec.
	assert.InDelta(t, 100, result.ObjectiveValue, 1e-6)

	dualR1, ok := teamEntry(summary, 1, 3)
	require.True(t, ok)
	assert.Equal(t, "MID", dualR1.Position)

	dualR2, ok := teamEntry(summary, 2, 3)
	require.True(t, ok)
	assert.Equal(t, "DEF", dualR2.Position)

	r2 := summary.Rounds[2]
	require.NotNil(t, r2.Trades)
	require.Len(t, r2.Trades.TradedOut, 1)
	assert.Equal(t, 1, r2.Trades.TradedOut[0].PlayerID)
	assert.Equal(t, 2, r2.Trades.TradedIn[0].PlayerID)
}

// Scenario F: one dual-position player cannot fill two required slots.
func TestScenarioInfeasibleOverConstraint(t *testing.T) {
	requireCBC(t)

	data := scenarioData(t,
		map[int]types.Round{1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 2}},
		map[types.Position]int{types.PositionDEF: 1, types.PositionMID: 1},
		1000,
		[]scenarioPlayer{
			{id: 1, name: "Lonely", positions: []types.Position{types.PositionDEF, types.PositionMID},
				scores: map[int]float64{1: 10}, prices: map[int]float64{1: 100}},
		},
	)

	model, _, err := formulation.Formulate(data)
	require.NoError(t, err)

	result, err := solver.Solve(model, solver.Options{Backend: solver.BackendCBC})
	require.NoError(t, err)
	assert.Equal(t, solver.StatusInfeasible, result.Status)
	assert.ErrorIs(t, solver.CheckResult(result), solver.ErrInfeasibleModel)
}

// Determinism: identical inputs and backend produce identical objectives.
func TestScenarioDeterministicObjective(t *testing.T) {
	requireCBC(t)

	build := func() *types.ModelInputData {
		return scenarioData(t,
			map[int]types.Round{
				1: {Number: 1, MaxTrades: 0, CountedOnfieldPlayers: 1},
				2: {Number: 2, MaxTrades: 1, CountedOnfieldPlayers: 1},
			},
			map[types.Position]int{types.PositionDEF: 1},
			500,
			[]scenarioPlayer{
				{id: 1, name: "A", positions: []types.Position{types.PositionDEF},
					scores: map[int]float64{1: 10, 2: 4}, prices: map[int]float64{1: 100, 2: 110}},
				{id: 2, name: "B", positions: []types.Position{types.PositionDEF},
					scores: map[int]float64{1: 7, 2: 9}, prices: map[int]float64{1: 100, 2: 95}},
			},
		)
	}

	first, _ := solveScenario(t, build())
	second, _ := solveScenario(t, build())
	require.Equal(t, solver.StatusOptimal, first.Status)
	assert.Equal(t, first.ObjectiveValue, second.ObjectiveValue)
}
