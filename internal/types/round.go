package types

import "fmt"

// Round holds the round-level parameters of the optimization horizon.
type Round struct {
	Number                int `json:"number"`
	MaxTrades             int `json:"max_trades"`
	CountedOnfieldPlayers int `json:"counted_onfield_players"`
}

// NewRound validates and constructs a Round.
func NewRound(number, maxTrades, countedOnfieldPlayers int) (Round, error) {
	if number < 1 {
		return Round{}, fmt.Errorf("%w: round number must be >= 1, got %d", ErrConfiguration, number)
	}
	if maxTrades < 0 {
		return Round{}, fmt.Errorf("%w: round %d max_trades must be >= 0, got %d", ErrConfiguration, number, maxTrades)
	}
	if countedOnfieldPlayers < 0 {
		return Round{}, fmt.Errorf("%w: round %d counted_onfield_players must be >= 0, got %d", ErrConfiguration, number, countedOnfieldPlayers)
	}
	return Round{
		Number:                number,
		MaxTrades:             maxTrades,
		CountedOnfieldPlayers: countedOnfieldPlayers,
	}, nil
}
