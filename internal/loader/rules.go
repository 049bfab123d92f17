package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

type teamRulesRecord struct {
	SalaryCap         *float64       `json:"salary_cap"`
	UtilityBenchCount int            `json:"utility_bench_count"`
	OnFieldRequired   map[string]int `json:"on_field_required"`
	BenchRequired     map[string]int `json:"bench_required"`
}

// LoadTeamRulesFromJSON loads TeamStructureRules from team_rules.json.
func LoadTeamRulesFromJSON(path string) (types.TeamStructureRules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.TeamStructureRules{}, fmt.Errorf("%w: reading team rules json: %v", types.ErrConfiguration, err)
	}

	var rec teamRulesRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return types.TeamStructureRules{}, fmt.Errorf("%w: parsing team rules json: %v", types.ErrConfiguration, err)
	}
	if rec.SalaryCap == nil {
		return types.TeamStructureRules{}, fmt.Errorf("%w: team rules missing salary_cap", types.ErrConfiguration)
	}

	onField, err := parsePositionCounts(rec.OnFieldRequired, "on_field_required")
	if err != nil {
		return types.TeamStructureRules{}, err
	}
	bench, err := parsePositionCounts(rec.BenchRequired, "bench_required")
	if err != nil {
		return types.TeamStructureRules{}, err
	}

	return types.NewTeamStructureRules(onField, bench, *rec.SalaryCap, rec.UtilityBenchCount)
}

func parsePositionCounts(counts map[string]int, fieldName string) (map[types.Position]int, error) {
	out := make(map[types.Position]int, len(types.AllPositions))
	for _, pos := range types.AllPositions {
		count, ok := counts[string(pos)]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing key %q", types.ErrConfiguration, fieldName, pos)
		}
		out[pos] = count
	}
	return out, nil
}
