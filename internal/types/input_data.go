package types

import (
	"fmt"
	"sort"
)

// PlayerRound indexes a (player, round) decision-variable family.
type PlayerRound struct {
	Player int
	Round  int
}

// PlayerPositionRound indexes a (player, position, round) decision-variable family.
type PlayerPositionRound struct {
	Player   int
	Position Position
	Round    int
}

// ModelInputData is the top-level container for all model input data.
// The index views are computed once at construction and the container is
// treated as read-only by every builder and by the extractor, so all
// accessors are safe to call in any order. Index ordering is deterministic:
// it fixes the MILP's variable order, which (with a deterministic backend and
// seed) yields reproducible solutions.
type ModelInputData struct {
	Players   map[int]*Player
	Rounds    map[int]Round
	TeamRules TeamStructureRules

	playerIDs            []int
	roundNumbers         []int
	roundsExcluding1     []int
	idxPlayerRound       []PlayerRound
	idxPlayerRoundExcl1  []PlayerRound
	idxPlayerPosRound    []PlayerPositionRound
	idxEligiblePosRound  []PlayerPositionRound
	eligibilityMap       map[PlayerPositionRound]bool
}

// NewModelInputData validates the inputs and precomputes the index views.
func NewModelInputData(players map[int]*Player, rounds map[int]Round, teamRules TeamStructureRules) (*ModelInputData, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: players cannot be empty", ErrConfiguration)
	}
	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: rounds cannot be empty", ErrConfiguration)
	}
	for id, p := range players {
		if p == nil {
			return nil, fmt.Errorf("%w: player %d is nil", ErrConfiguration, id)
		}
		if id != p.ID {
			return nil, fmt.Errorf("%w: player map key %d does not match player id %d", ErrConfiguration, id, p.ID)
		}
		if len(p.ByRound) == 0 {
			return nil, fmt.Errorf("%w: player %d has no round entries", ErrConfiguration, id)
		}
	}

	d := &ModelInputData{
		Players:   players,
		Rounds:    rounds,
		TeamRules: teamRules,
	}
	d.buildIndexes()
	return d, nil
}

func (d *ModelInputData) buildIndexes() {
	d.playerIDs = make([]int, 0, len(d.Players))
	for id := range d.Players {
		d.playerIDs = append(d.playerIDs, id)
	}
	sort.Ints(d.playerIDs)

	d.roundNumbers = make([]int, 0, len(d.Rounds))
	for r := range d.Rounds {
		d.roundNumbers = append(d.roundNumbers, r)
	}
	sort.Ints(d.roundNumbers)

	d.roundsExcluding1 = make([]int, 0, len(d.roundNumbers))
	for _, r := range d.roundNumbers {
		if r != 1 {
			d.roundsExcluding1 = append(d.roundsExcluding1, r)
		}
	}

	d.idxPlayerRound = make([]PlayerRound, 0, len(d.playerIDs)*len(d.roundNumbers))
	d.idxPlayerRoundExcl1 = make([]PlayerRound, 0, len(d.playerIDs)*len(d.roundsExcluding1))
	d.idxPlayerPosRound = make([]PlayerPositionRound, 0, len(d.playerIDs)*len(AllPositions)*len(d.roundNumbers))
	d.idxEligiblePosRound = make([]PlayerPositionRound, 0)
	d.eligibilityMap = make(map[PlayerPositionRound]bool, len(d.playerIDs)*len(AllPositions)*len(d.roundNumbers))

	for _, p := range d.playerIDs {
		for _, r := range d.roundNumbers {
			d.idxPlayerRound = append(d.idxPlayerRound, PlayerRound{Player: p, Round: r})
			if r != 1 {
				d.idxPlayerRoundExcl1 = append(d.idxPlayerRoundExcl1, PlayerRound{Player: p, Round: r})
			}
		}
		for _, k := range AllPositions {
			for _, r := range d.roundNumbers {
				key := PlayerPositionRound{Player: p, Position: k, Round: r}
				d.idxPlayerPosRound = append(d.idxPlayerPosRound, key)
				eligible := d.EligiblePositions(p, r).Contains(k)
				d.eligibilityMap[key] = eligible
				if eligible {
					d.idxEligiblePosRound = append(d.idxEligiblePosRound, key)
				}
			}
		}
	}
}

// PlayerIDs returns all player ids, sorted ascending.
func (d *ModelInputData) PlayerIDs() []int { return d.playerIDs }

// RoundNumbers returns all round numbers, sorted ascending.
func (d *ModelInputData) RoundNumbers() []int { return d.roundNumbers }

// RoundNumbersExcluding1 returns all round numbers except round 1, ascending.
func (d *ModelInputData) RoundNumbersExcluding1() []int { return d.roundsExcluding1 }

// IdxPlayerRound returns the (player, round) product in lexicographic order.
func (d *ModelInputData) IdxPlayerRound() []PlayerRound { return d.idxPlayerRound }

// IdxPlayerRoundExcluding1 is IdxPlayerRound with round 1 removed.
func (d *ModelInputData) IdxPlayerRoundExcluding1() []PlayerRound { return d.idxPlayerRoundExcl1 }

// IdxPlayerPositionRound returns the full (player, position, round) product in
// lexicographic order, positions in canonical order.
func (d *ModelInputData) IdxPlayerPositionRound() []PlayerPositionRound { return d.idxPlayerPosRound }

// IdxEligiblePlayerPositionRound returns IdxPlayerPositionRound filtered to
// tuples where the player is eligible for the position in that round.
func (d *ModelInputData) IdxEligiblePlayerPositionRound() []PlayerPositionRound {
	return d.idxEligiblePosRound
}

// EligibilityMap maps every (player, position, round) tuple to eligibility.
func (d *ModelInputData) EligibilityMap() map[PlayerPositionRound]bool { return d.eligibilityMap }

// EligiblePositions returns the positions player p may occupy in round r,
// falling back to the player's original positions when the round has no data.
func (d *ModelInputData) EligiblePositions(p, r int) PositionSet {
	player := d.Players[p]
	if player == nil {
		return PositionSet{}
	}
	if info, ok := player.ByRound[r]; ok {
		return info.EligiblePositions
	}
	return player.OriginalPositions
}

// IsEligible reports whether player p may occupy position k in round r.
func (d *ModelInputData) IsEligible(p int, k Position, r int) bool {
	return d.EligiblePositions(p, r).Contains(k)
}

// Score returns the player's round score, defaulting to 0 when the player has
// no data for the round.
func (d *ModelInputData) Score(p, r int) float64 {
	player := d.Players[p]
	if player == nil {
		return 0
	}
	if info, ok := player.ByRound[r]; ok {
		return info.Score
	}
	return 0
}

// Price returns the player's round price. A player with no data for the round
// is priced at the full salary cap, which makes trading them prohibitive
// without rendering the model infeasible.
func (d *ModelInputData) Price(p, r int) float64 {
	player := d.Players[p]
	if player == nil {
		return d.TeamRules.SalaryCap
	}
	if info, ok := player.ByRound[r]; ok {
		return info.Price
	}
	return d.TeamRules.SalaryCap
}

// SalaryCap returns the salary cap from the team rules.
func (d *ModelInputData) SalaryCap() float64 { return d.TeamRules.SalaryCap }

// UtilityBenchCount returns the number of utility bench slots.
func (d *ModelInputData) UtilityBenchCount() int { return d.TeamRules.UtilityBenchCount }

// OnFieldRequired returns the number of on-field slots for position k.
func (d *ModelInputData) OnFieldRequired(k Position) int { return d.TeamRules.OnFieldRequired[k] }

// BenchRequired returns the number of bench slots for position k.
func (d *ModelInputData) BenchRequired(k Position) int { return d.TeamRules.BenchRequired[k] }

// MaxTrades returns the trade quota for round r.
func (d *ModelInputData) MaxTrades(r int) int { return d.Rounds[r].MaxTrades }

// CountedOnfieldPlayers returns how many on-field scores are counted in round r.
func (d *ModelInputData) CountedOnfieldPlayers(r int) int {
	return d.Rounds[r].CountedOnfieldPlayers
}

// OnFieldSize returns the total number of on-field slots.
func (d *ModelInputData) OnFieldSize() int { return d.TeamRules.OnFieldSize() }

// BenchSize returns the total number of position-typed bench slots.
func (d *ModelInputData) BenchSize() int { return d.TeamRules.BenchSize() }

// SquadSize returns the full squad size.
func (d *ModelInputData) SquadSize() int { return d.TeamRules.SquadSize() }
