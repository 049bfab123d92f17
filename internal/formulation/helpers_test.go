package formulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

type testPlayerSpec struct {
	id        int
	positions []types.Position
	scores    map[int]float64
	prices    map[int]float64
}

type testDataSpec struct {
	rounds    []int
	maxTrades map[int]int
	counted   map[int]int
	onField   map[types.Position]int
	bench     map[types.Position]int
	salaryCap float64
	utility   int
	players   []testPlayerSpec
}

func buildTestData(t *testing.T, spec testDataSpec) *types.ModelInputData {
	t.Helper()

	onField := map[types.Position]int{}
	bench := map[types.Position]int{}
	for _, pos := range types.AllPositions {
		onField[pos] = spec.onField[pos]
		bench[pos] = spec.bench[pos]
	}
	rules, err := types.NewTeamStructureRules(onField, bench, spec.salaryCap, spec.utility)
	require.NoError(t, err)

	rounds := map[int]types.Round{}
	for _, n := range spec.rounds {
		maxTrades := 2
		if v, ok := spec.maxTrades[n]; ok {
			maxTrades = v
		}
		counted := 1
		if v, ok := spec.counted[n]; ok {
			counted = v
		}
		round, err := types.NewRound(n, maxTrades, counted)
		require.NoError(t, err)
		rounds[n] = round
	}

	players := map[int]*types.Player{}
	for _, ps := range spec.players {
		positions := ps.positions
		if len(positions) == 0 {
			positions = []types.Position{types.PositionDEF}
		}
		p, err := types.NewPlayer(ps.id, "P", "X")
		require.NoError(t, err)
		p.OriginalPositions = types.NewPositionSet(positions...)
		for _, n := range spec.rounds {
			info, err := types.NewPlayerRoundInfo(n, ps.scores[n], ps.prices[n], types.NewPositionSet(positions...))
			require.NoError(t, err)
			p.ByRound[n] = info
		}
		players[ps.id] = p
	}

	data, err := types.NewModelInputData(players, rounds, rules)
	require.NoError(t, err)
	return data
}

// twoPlayerTwoRoundData is the shared minimal fixture: one DEF on-field slot,
// two DEF-only players, two rounds.
func twoPlayerTwoRoundData(t *testing.T, maxTradesRound2 int) *types.ModelInputData {
	t.Helper()
	return buildTestData(t, testDataSpec{
		rounds:    []int{1, 2},
		maxTrades: map[int]int{1: 2, 2: maxTradesRound2},
		counted:   map[int]int{1: 1, 2: 1},
		onField:   map[types.Position]int{types.PositionDEF: 1},
		salaryCap: 0,
		players: []testPlayerSpec{
			{id: 1},
			{id: 2},
		},
	})
}
