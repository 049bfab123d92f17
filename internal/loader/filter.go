package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// DataFilter optionally restricts a solve to the first NumRounds rounds
// and/or a subset of squad ids. The zero value filters nothing.
type DataFilter struct {
	NumRounds int   `json:"num_rounds"`
	SquadIDs  []int `json:"squad_ids"`
}

// LoadDataFilterFromJSON loads an optional data_filter.json. A missing path
// ("" argument) yields the zero filter.
func LoadDataFilterFromJSON(path string) (DataFilter, error) {
	if path == "" {
		return DataFilter{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return DataFilter{}, fmt.Errorf("%w: reading data filter json: %v", types.ErrConfiguration, err)
	}

	var filter DataFilter
	if err := json.Unmarshal(raw, &filter); err != nil {
		return DataFilter{}, fmt.Errorf("%w: parsing data filter json: %v", types.ErrConfiguration, err)
	}
	if filter.NumRounds < 0 {
		return DataFilter{}, fmt.Errorf("%w: num_rounds must be >= 0, got %d", types.ErrConfiguration, filter.NumRounds)
	}
	return filter, nil
}

// SquadIDSet converts the squad id list to a set, or nil when unrestricted.
func (f DataFilter) SquadIDSet() map[int]bool {
	if len(f.SquadIDs) == 0 {
		return nil
	}
	set := make(map[int]bool, len(f.SquadIDs))
	for _, id := range f.SquadIDs {
		set[id] = true
	}
	return set
}
