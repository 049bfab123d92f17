package pricegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

func basePlayers() []BasePlayer {
	return []BasePlayer{
		{ID: 1, FirstName: "A", LastName: "One", Positions: []int{2}, StartPrice: 500_000, ProjectedScore: 90},
		{ID: 2, FirstName: "B", LastName: "Two", Positions: []int{1}, StartPrice: 300_000, ProjectedScore: 60},
	}
}

func TestGenerateValidation(t *testing.T) {
	_, err := Generate(basePlayers(), Settings{Rounds: 0})
	assert.ErrorIs(t, err, types.ErrConfiguration)

	_, err = Generate(basePlayers(), Settings{Rounds: 5, PriceSmoothing: 1.5})
	assert.ErrorIs(t, err, types.ErrConfiguration)

	_, err = Generate(basePlayers(), Settings{Rounds: 5, ScoreVolatility: -1})
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestGenerateSeriesShape(t *testing.T) {
	generated, err := Generate(basePlayers(), Settings{Rounds: 6, PriceSmoothing: 0.25, ScoreVolatility: 10, Seed: 7})
	require.NoError(t, err)
	require.Len(t, generated, 2)

	for _, p := range generated {
		assert.Len(t, p.Scores, 6)
		assert.Len(t, p.Prices, 6)
		for r := 1; r <= 6; r++ {
			assert.GreaterOrEqual(t, p.Scores[r], 0.0)
			assert.GreaterOrEqual(t, p.Prices[r], 0.0)
		}
	}
}

func TestGenerateDeterministicForFixedSeed(t *testing.T) {
	cfg := Settings{Rounds: 8, PriceSmoothing: 0.25, ScoreVolatility: 12, Seed: 42}

	first, err := Generate(basePlayers(), cfg)
	require.NoError(t, err)
	second, err := Generate(basePlayers(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a, err := Generate(basePlayers(), Settings{Rounds: 8, PriceSmoothing: 0.25, ScoreVolatility: 12, Seed: 1})
	require.NoError(t, err)
	b, err := Generate(basePlayers(), Settings{Rounds: 8, PriceSmoothing: 0.25, ScoreVolatility: 12, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, a[0].Scores, b[0].Scores)
}

func TestGenerateZeroVolatilityConvergesToImpliedPrice(t *testing.T) {
	players := []BasePlayer{{ID: 1, FirstName: "A", LastName: "One", Positions: []int{2}, StartPrice: 100_000, ProjectedScore: 80}}

	generated, err := Generate(players, Settings{Rounds: 40, MagicNumber: 10_000, PriceSmoothing: 0.5, ScoreVolatility: 0, Seed: 1})
	require.NoError(t, err)

	// With constant scores the recurrence converges to magic * score.
	finalPrice := generated[0].Prices[40]
	assert.InDelta(t, 800_000, finalPrice, 1)

	// Round 1 price is the start price: prices react to scores with a lag.
	assert.Equal(t, 100_000.0, generated[0].Prices[1])
}
