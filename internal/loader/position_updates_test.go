package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

func TestParsePositionUpdatesSortsByRound(t *testing.T) {
	csv := "player,initial_position,add_position,round\n" +
		"Jordan Dawson,DEF,MID,14\n" +
		"Jordan Dawson,DEF,FWD,6\n" +
		"Tim Taranto,MID,FWD,10\n"

	updates, err := parsePositionUpdates(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, updates["Jordan Dawson"], 2)
	assert.Equal(t, 6, updates["Jordan Dawson"][0].EffectiveRound)
	assert.Equal(t, types.PositionFWD, updates["Jordan Dawson"][0].AddedPosition)
	assert.Equal(t, 14, updates["Jordan Dawson"][1].EffectiveRound)

	require.Len(t, updates["Tim Taranto"], 1)
}

func TestParsePositionUpdatesAcceptsRuckAlias(t *testing.T) {
	csv := "player,initial_position,add_position,round\n" +
		"Tall Timber,FWD,RUCK,3\n"

	updates, err := parsePositionUpdates(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, types.PositionRUC, updates["Tall Timber"][0].AddedPosition)
}

func TestParsePositionUpdatesSkipsIncompleteRows(t *testing.T) {
	csv := "player,initial_position,add_position,round\n" +
		",DEF,MID,3\n" +
		"Someone,DEF,,3\n" +
		"Someone,DEF,MID,\n"

	updates, err := parsePositionUpdates(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestParsePositionUpdatesRejectsBadRound(t *testing.T) {
	csv := "player,initial_position,add_position,round\n" +
		"Someone,DEF,MID,0\n"
	_, err := parsePositionUpdates(strings.NewReader(csv))
	assert.ErrorIs(t, err, types.ErrConfiguration)

	csv = "player,initial_position,add_position,round\n" +
		"Someone,DEF,MID,soon\n"
	_, err = parsePositionUpdates(strings.NewReader(csv))
	assert.ErrorIs(t, err, types.ErrConfiguration)
}

func TestParsePositionUpdatesMissingColumnFails(t *testing.T) {
	csv := "player,initial_position,round\n" +
		"Someone,DEF,3\n"
	_, err := parsePositionUpdates(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConfiguration)
	assert.Contains(t, err.Error(), "add_position")
}

func TestCloseMatchesRanksBySimilarity(t *testing.T) {
	candidates := []string{"Marcus Bontempelli", "Mason Cox", "Max Gawn"}
	matches := closeMatches("Marcus Bontempeli", candidates, 3, 0.6)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Marcus Bontempelli", matches[0])
}

func TestValidateUpdateNamesPassesOnExactMatch(t *testing.T) {
	err := validateUpdateNames([]string{"Max Gawn"}, map[string]bool{"Max Gawn": true})
	assert.NoError(t, err)
}
