package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataDir(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return Paths{
		Players: write("players.json", twoPlayersJSON),
		PositionUpdatesCSV: write("updates.csv",
			"player,initial_position,add_position,round\nMarcus Bontempelli,MID,FWD,2\n"),
		TeamRules: write("team_rules.json", `{
		  "salary_cap": 2000000,
		  "utility_bench_count": 0,
		  "on_field_required": {"DEF": 0, "MID": 1, "RUC": 0, "FWD": 0},
		  "bench_required": {"DEF": 0, "MID": 0, "RUC": 0, "FWD": 0}
		}`),
		Rounds: write("rounds.json", `[
		  {"number": 1, "max_trades": 0, "counted_onfield_players": 1},
		  {"number": 2, "max_trades": 1, "counted_onfield_players": 1}
		]`),
	}
}

func TestLoadModelInputDataAssemblesEverything(t *testing.T) {
	paths := writeDataDir(t)

	data, unmatched, err := LoadModelInputData(paths, true, false)
	require.NoError(t, err)
	assert.Empty(t, unmatched)

	assert.Equal(t, []int{101, 102}, data.PlayerIDs())
	assert.Equal(t, []int{1, 2}, data.RoundNumbers())
	assert.Equal(t, 2_000_000.0, data.SalaryCap())
	assert.Equal(t, 1, data.SquadSize())

	// The CSV update lands in the assembled eligibility view.
	assert.False(t, data.IsEligible(101, "FWD", 1))
	assert.True(t, data.IsEligible(101, "FWD", 2))
}

func TestLoadModelInputDataSquadFilterDisablesStrictMatching(t *testing.T) {
	paths := writeDataDir(t)
	dir := filepath.Dir(paths.Players)

	// The update CSV references a player outside the filtered squad; under a
	// filter that must not fail even in strict mode.
	filterPath := filepath.Join(dir, "data_filter.json")
	require.NoError(t, os.WriteFile(filterPath, []byte(`{"squad_ids": [60]}`), 0o644))
	paths.DataFilter = filterPath

	data, _, err := LoadModelInputData(paths, true, false)
	require.NoError(t, err)
	assert.Equal(t, []int{102}, data.PlayerIDs())
}

func TestLoadModelInputDataNumRoundsFilter(t *testing.T) {
	paths := writeDataDir(t)
	dir := filepath.Dir(paths.Players)

	filterPath := filepath.Join(dir, "data_filter.json")
	require.NoError(t, os.WriteFile(filterPath, []byte(`{"num_rounds": 1}`), 0o644))
	paths.DataFilter = filterPath

	data, _, err := LoadModelInputData(paths, true, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, data.RoundNumbers())
}

func TestLoadModelInputDataMissingFileFails(t *testing.T) {
	paths := writeDataDir(t)
	paths.Players = filepath.Join(t.TempDir(), "missing.json")

	_, _, err := LoadModelInputData(paths, true, false)
	assert.Error(t, err)
}
