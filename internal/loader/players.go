package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// DefaultPositionCodeMap maps the numeric position codes found in the player
// JSON onto positions. Override via PlayerLoadOptions if a data source uses a
// different coding.
var DefaultPositionCodeMap = map[int]types.Position{
	1: types.PositionDEF,
	2: types.PositionMID,
	3: types.PositionRUC,
	4: types.PositionFWD,
}

// PlayerLoadOptions controls player loading.
type PlayerLoadOptions struct {
	// PositionUpdatesCSV optionally points at the eligibility update file.
	PositionUpdatesCSV string

	// StrictNameMatching makes unmatched update names fatal. When false,
	// unmatched names are returned as warnings and logged.
	StrictNameMatching bool

	// IncludeRound0 keeps pre-season (round 0) entries.
	IncludeRound0 bool

	// SquadIDFilter, when non-empty, keeps only players whose squad id is in
	// the set. Applied during the single parse pass, so excluded players are
	// never instantiated. Name validation is skipped under a filter: the
	// update CSV is expected to reference players outside the subset.
	SquadIDFilter map[int]bool

	// PositionCodeMap overrides DefaultPositionCodeMap when non-nil.
	PositionCodeMap map[int]types.Position
}

type playerRecord struct {
	ID                int         `json:"id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	SquadID           *int        `json:"squad_id"`
	OriginalPositions []int       `json:"original_positions"`
	Positions         []int       `json:"positions"`
	Stats             statsRecord `json:"stats"`
}

type statsRecord struct {
	Scores map[string]float64 `json:"scores"`
	Prices map[string]float64 `json:"prices"`
}

// LoadPlayersFromJSON loads players from the players JSON file and applies
// round-based eligibility updates. Returns the players and the list of update
// names that matched no player (empty in strict mode, which fails instead).
func LoadPlayersFromJSON(path string, opts PlayerLoadOptions) (map[int]*types.Player, []string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading players json: %v", types.ErrConfiguration, err)
	}

	var records []playerRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, nil, fmt.Errorf("%w: parsing players json: %v", types.ErrConfiguration, err)
	}

	updates := map[string][]PositionUpdate{}
	if opts.PositionUpdatesCSV != "" {
		updates, err = ReadPositionUpdatesCSV(opts.PositionUpdatesCSV)
		if err != nil {
			return nil, nil, err
		}
	}

	codeMap := opts.PositionCodeMap
	if codeMap == nil {
		codeMap = DefaultPositionCodeMap
	}

	players := make(map[int]*types.Player, len(records))
	for _, rec := range records {
		if opts.SquadIDFilter != nil && len(opts.SquadIDFilter) > 0 {
			if rec.SquadID == nil || !opts.SquadIDFilter[*rec.SquadID] {
				continue
			}
		}

		player, err := buildPlayer(rec, updates, codeMap, opts.IncludeRound0)
		if err != nil {
			return nil, nil, err
		}
		players[player.ID] = player
	}

	var unmatched []string
	if opts.PositionUpdatesCSV != "" && len(opts.SquadIDFilter) == 0 {
		jsonNames := make(map[string]bool, len(players))
		for _, p := range players {
			jsonNames[p.Name()] = true
		}
		if opts.StrictNameMatching {
			updateNames := make([]string, 0, len(updates))
			for name := range updates {
				updateNames = append(updateNames, name)
			}
			if err := validateUpdateNames(updateNames, jsonNames); err != nil {
				return nil, nil, err
			}
		} else {
			for name := range updates {
				if !jsonNames[name] {
					unmatched = append(unmatched, name)
				}
			}
			sort.Strings(unmatched)
			if len(unmatched) > 0 {
				logger.WithComponent("loader").WithFields(logrus.Fields{
					"unmatched_names": unmatched,
				}).Warn("Position updates referenced unknown player names; skipped")
			}
		}
	}

	logger.WithComponent("loader").WithFields(logrus.Fields{
		"players": len(players),
		"records": len(records),
	}).Info("Players loaded")

	return players, unmatched, nil
}

func buildPlayer(
	rec playerRecord,
	updates map[string][]PositionUpdate,
	codeMap map[int]types.Position,
	includeRound0 bool,
) (*types.Player, error) {
	player, err := types.NewPlayer(rec.ID, rec.FirstName, rec.LastName)
	if err != nil {
		return nil, err
	}
	player.SquadID = rec.SquadID

	base, err := parsePositionCodes(rec.OriginalPositions, codeMap)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", rec.ID, err)
	}
	// Some records carry no original_positions; fall back to positions so a
	// player never ends up with an empty eligibility set.
	if len(base) == 0 {
		base, err = parsePositionCodes(rec.Positions, codeMap)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", rec.ID, err)
		}
	}
	player.OriginalPositions = base

	playerUpdates := updates[player.Name()]

	roundKeys := make(map[string]bool, len(rec.Stats.Prices)+len(rec.Stats.Scores))
	for rk := range rec.Stats.Prices {
		roundKeys[rk] = true
	}
	for rk := range rec.Stats.Scores {
		roundKeys[rk] = true
	}

	for rk := range roundKeys {
		r, err := strconv.Atoi(rk)
		if err != nil {
			return nil, fmt.Errorf("%w: player %d has non-integer round key %q", types.ErrConfiguration, rec.ID, rk)
		}
		if r == 0 && !includeRound0 {
			continue
		}

		eligible := base.Clone()
		for _, u := range playerUpdates {
			if r >= u.EffectiveRound {
				eligible[u.AddedPosition] = true
			}
		}
		if len(eligible) == 0 {
			return nil, fmt.Errorf(
				"%w: player %s (id=%d) has no eligible positions for round %d; check original_positions/positions and the update CSV",
				types.ErrDataConsistency, player.Name(), player.ID, r,
			)
		}

		info, err := types.NewPlayerRoundInfo(r, rec.Stats.Scores[rk], rec.Stats.Prices[rk], eligible)
		if err != nil {
			return nil, fmt.Errorf("player %d round %d: %w", rec.ID, r, err)
		}
		player.ByRound[r] = info
	}

	return player, nil
}

func parsePositionCodes(codes []int, codeMap map[int]types.Position) (types.PositionSet, error) {
	set := types.PositionSet{}
	for _, c := range codes {
		pos, ok := codeMap[c]
		if !ok {
			return nil, fmt.Errorf("%w: unknown position code %d", types.ErrConfiguration, c)
		}
		set[pos] = true
	}
	return set, nil
}
