package types

import (
	"fmt"
	"strings"
)

// PlayerRoundInfo is the player information that varies by round.
type PlayerRoundInfo struct {
	RoundNumber       int
	Score             float64
	Price             float64
	EligiblePositions PositionSet
}

// NewPlayerRoundInfo validates and constructs a PlayerRoundInfo.
// Round 0 is allowed because some data sources include a pre-season round.
func NewPlayerRoundInfo(roundNumber int, score, price float64, eligible PositionSet) (PlayerRoundInfo, error) {
	if roundNumber < 0 {
		return PlayerRoundInfo{}, fmt.Errorf("%w: round number must be >= 0, got %d", ErrConfiguration, roundNumber)
	}
	if price < 0 {
		return PlayerRoundInfo{}, fmt.Errorf("%w: price must be >= 0, got %v", ErrConfiguration, price)
	}
	if len(eligible) == 0 {
		return PlayerRoundInfo{}, fmt.Errorf("%w: eligible positions must be non-empty for round %d", ErrConfiguration, roundNumber)
	}
	return PlayerRoundInfo{
		RoundNumber:       roundNumber,
		Score:             score,
		Price:             price,
		EligiblePositions: eligible.Clone(),
	}, nil
}

// Player is a player with round-varying information. Treated as read-only
// once the loader has finished constructing it.
type Player struct {
	ID        int
	FirstName string
	LastName  string

	// SquadID is optional metadata carried through from the data source.
	SquadID *int

	// OriginalPositions are the positions the player holds from the start of
	// the season; per-round eligibility falls back to these when a round has
	// no data.
	OriginalPositions PositionSet

	// ByRound maps round number -> info.
	ByRound map[int]PlayerRoundInfo
}

// NewPlayer validates and constructs a Player with an empty ByRound map.
func NewPlayer(id int, firstName, lastName string) (*Player, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: player id must be a positive integer, got %d", ErrConfiguration, id)
	}
	return &Player{
		ID:                id,
		FirstName:         firstName,
		LastName:          lastName,
		OriginalPositions: PositionSet{},
		ByRound:           map[int]PlayerRoundInfo{},
	}, nil
}

// Name returns the player's full name.
func (p *Player) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Round returns the info for the given round number.
func (p *Player) Round(roundNumber int) (PlayerRoundInfo, bool) {
	info, ok := p.ByRound[roundNumber]
	return info, ok
}
