package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

const (
	defaultMaxTrades             = 2
	defaultCountedOnfieldPlayers = 22
)

type roundRecord struct {
	Number                int  `json:"number"`
	MaxTrades             *int `json:"max_trades"`
	CountedOnfieldPlayers *int `json:"counted_onfield_players"`
}

// LoadRoundsFromJSON loads rounds from rounds.json. When numRounds > 0 only
// rounds 1..numRounds are kept; rounds are required to start from 1.
func LoadRoundsFromJSON(path string, numRounds int) (map[int]types.Round, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading rounds json: %v", types.ErrConfiguration, err)
	}

	var records []roundRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing rounds json (expected a list): %v", types.ErrConfiguration, err)
	}

	rounds := make(map[int]types.Round, len(records))
	for _, rec := range records {
		if numRounds > 0 && rec.Number > numRounds {
			continue
		}

		maxTrades := defaultMaxTrades
		if rec.MaxTrades != nil {
			maxTrades = *rec.MaxTrades
		}
		counted := defaultCountedOnfieldPlayers
		if rec.CountedOnfieldPlayers != nil {
			counted = *rec.CountedOnfieldPlayers
		}

		round, err := types.NewRound(rec.Number, maxTrades, counted)
		if err != nil {
			return nil, err
		}
		rounds[round.Number] = round
	}

	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: no rounds loaded from %s", types.ErrConfiguration, path)
	}
	if _, ok := rounds[1]; !ok {
		return nil, fmt.Errorf("%w: rounds json did not contain round 1, but rounds must start from 1", types.ErrConfiguration)
	}
	return rounds, nil
}

// BuildDefaultRounds constructs rounds with a default trade quota, bumping the
// quota to three for the listed (bye) rounds.
func BuildDefaultRounds(roundNumbers []int, defaultTrades, counted int, threeTradeRounds map[int]bool) (map[int]types.Round, error) {
	rounds := make(map[int]types.Round, len(roundNumbers))
	for _, n := range roundNumbers {
		trades := defaultTrades
		if threeTradeRounds[n] {
			trades = 3
		}
		round, err := types.NewRound(n, trades, counted)
		if err != nil {
			return nil, err
		}
		rounds[n] = round
	}
	return rounds, nil
}
