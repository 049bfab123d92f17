package types

import "fmt"

// TeamStructureRules holds the season-global team structure rules.
type TeamStructureRules struct {
	OnFieldRequired   map[Position]int `json:"on_field_required"`
	BenchRequired     map[Position]int `json:"bench_required"`
	SalaryCap         float64          `json:"salary_cap"`
	UtilityBenchCount int              `json:"utility_bench_count"`
}

// NewTeamStructureRules validates and constructs TeamStructureRules.
// Both requirement maps must carry every position.
func NewTeamStructureRules(
	onFieldRequired map[Position]int,
	benchRequired map[Position]int,
	salaryCap float64,
	utilityBenchCount int,
) (TeamStructureRules, error) {
	if salaryCap < 0 {
		return TeamStructureRules{}, fmt.Errorf("%w: salary_cap must be >= 0, got %v", ErrConfiguration, salaryCap)
	}
	if utilityBenchCount < 0 {
		return TeamStructureRules{}, fmt.Errorf("%w: utility_bench_count must be >= 0, got %d", ErrConfiguration, utilityBenchCount)
	}

	for name, mapping := range map[string]map[Position]int{
		"on_field_required": onFieldRequired,
		"bench_required":    benchRequired,
	} {
		for _, pos := range AllPositions {
			count, ok := mapping[pos]
			if !ok {
				return TeamStructureRules{}, fmt.Errorf("%w: %s missing position %s", ErrConfiguration, name, pos)
			}
			if count < 0 {
				return TeamStructureRules{}, fmt.Errorf("%w: %s[%s] must be >= 0, got %d", ErrConfiguration, name, pos, count)
			}
		}
	}

	onField := make(map[Position]int, len(AllPositions))
	bench := make(map[Position]int, len(AllPositions))
	for _, pos := range AllPositions {
		onField[pos] = onFieldRequired[pos]
		bench[pos] = benchRequired[pos]
	}

	return TeamStructureRules{
		OnFieldRequired:   onField,
		BenchRequired:     bench,
		SalaryCap:         salaryCap,
		UtilityBenchCount: utilityBenchCount,
	}, nil
}

// OnFieldSize is the number of on-field slots across all positions.
func (r TeamStructureRules) OnFieldSize() int {
	total := 0
	for _, pos := range AllPositions {
		total += r.OnFieldRequired[pos]
	}
	return total
}

// BenchSize is the number of position-typed bench slots across all positions.
func (r TeamStructureRules) BenchSize() int {
	total := 0
	for _, pos := range AllPositions {
		total += r.BenchRequired[pos]
	}
	return total
}

// SquadSize is the full squad size including the utility bench.
func (r TeamStructureRules) SquadSize() int {
	return r.OnFieldSize() + r.BenchSize() + r.UtilityBenchCount
}
