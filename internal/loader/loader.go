package loader

import (
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// Paths names the input files of one solve.
type Paths struct {
	Players            string
	PositionUpdatesCSV string
	TeamRules          string
	Rounds             string
	DataFilter         string // optional
}

// LoadModelInputData loads and assembles everything the model consumes.
// Returns the input data plus any unmatched position-update names (lenient
// mode only). Strict name matching is automatically disabled when a squad
// filter is active.
func LoadModelInputData(paths Paths, strictNameMatching, includeRound0 bool) (*types.ModelInputData, []string, error) {
	log := logger.WithComponent("loader")

	filter, err := LoadDataFilterFromJSON(paths.DataFilter)
	if err != nil {
		return nil, nil, err
	}

	rules, err := LoadTeamRulesFromJSON(paths.TeamRules)
	if err != nil {
		return nil, nil, err
	}

	rounds, err := LoadRoundsFromJSON(paths.Rounds, filter.NumRounds)
	if err != nil {
		return nil, nil, err
	}

	squadFilter := filter.SquadIDSet()
	strict := strictNameMatching && squadFilter == nil

	players, unmatched, err := LoadPlayersFromJSON(paths.Players, PlayerLoadOptions{
		PositionUpdatesCSV: paths.PositionUpdatesCSV,
		StrictNameMatching: strict,
		IncludeRound0:      includeRound0,
		SquadIDFilter:      squadFilter,
	})
	if err != nil {
		return nil, nil, err
	}

	data, err := types.NewModelInputData(players, rounds, rules)
	if err != nil {
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"players":    len(players),
		"rounds":     len(rounds),
		"squad_size": rules.SquadSize(),
		"filtered":   squadFilter != nil || filter.NumRounds > 0,
	}).Info("Model input data assembled")

	return data, unmatched, nil
}
