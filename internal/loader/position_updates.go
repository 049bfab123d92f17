package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/stitts-dev/retro-fantasy/internal/types"
)

// PositionUpdate declares that a player gains a position from a round onward.
// Updates are cumulative and monotone: positions are only ever added.
type PositionUpdate struct {
	EffectiveRound int
	AddedPosition  types.Position
}

// ReadPositionUpdatesCSV reads the position update file and returns player
// name -> updates sorted by effective round. Expected columns:
// player, initial_position, add_position, round. Rows with an empty player,
// add_position or round are skipped.
func ReadPositionUpdatesCSV(path string) (map[string][]PositionUpdate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening position updates csv: %v", types.ErrConfiguration, err)
	}
	defer f.Close()
	return parsePositionUpdates(f)
}

func parsePositionUpdates(r io.Reader) (map[string][]PositionUpdate, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return map[string][]PositionUpdate{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading position updates csv: %v", types.ErrConfiguration, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range []string{"player", "add_position", "round"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w: position updates csv missing column %q", types.ErrConfiguration, required)
		}
	}

	field := func(record []string, name string) string {
		i := col[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	updates := make(map[string][]PositionUpdate)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading position updates csv: %v", types.ErrConfiguration, err)
		}

		name := field(record, "player")
		addPos := field(record, "add_position")
		roundStr := field(record, "round")
		if name == "" || addPos == "" || roundStr == "" {
			continue
		}

		effectiveRound, err := strconv.Atoi(roundStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid round %q for player %q", types.ErrConfiguration, roundStr, name)
		}
		if effectiveRound < 1 {
			return nil, fmt.Errorf("%w: invalid effective round %d for player %q", types.ErrConfiguration, effectiveRound, name)
		}

		pos, err := types.ParsePosition(addPos)
		if err != nil {
			return nil, err
		}

		updates[name] = append(updates[name], PositionUpdate{
			EffectiveRound: effectiveRound,
			AddedPosition:  pos,
		})
	}

	for name := range updates {
		sort.SliceStable(updates[name], func(i, j int) bool {
			return updates[name][i].EffectiveRound < updates[name][j].EffectiveRound
		})
	}
	return updates, nil
}

// validateUpdateNames checks that every update name exists in the player set,
// attaching did-you-mean suggestions to the error for typo hunting.
func validateUpdateNames(updateNames []string, jsonNames map[string]bool) error {
	var missing []string
	for _, name := range updateNames {
		if !jsonNames[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	known := make([]string, 0, len(jsonNames))
	for name := range jsonNames {
		known = append(known, name)
	}
	sort.Strings(known)

	var hints []string
	for _, name := range missing {
		candidates := closeMatches(name, known, 3, 0.6)
		if len(candidates) > 0 {
			hints = append(hints, fmt.Sprintf("- %s  (did you mean: %s)", name, strings.Join(candidates, ", ")))
		} else {
			hints = append(hints, "- "+name)
		}
	}

	return fmt.Errorf(
		"%w: one or more player names in the position update CSV did not match any player name in the players JSON; fix spelling/casing so they match exactly.\nUnmatched names:\n%s",
		types.ErrDataConsistency, strings.Join(hints, "\n"),
	)
}

// closeMatches returns up to n candidates whose similarity ratio to name is
// at least cutoff, best first.
func closeMatches(name string, candidates []string, n int, cutoff float64) []string {
	type scored struct {
		name  string
		ratio float64
	}
	var matches []scored
	for _, c := range candidates {
		if ratio := similarityRatio(name, c); ratio >= cutoff {
			matches = append(matches, scored{name: c, ratio: ratio})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ratio > matches[j].ratio })
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// similarityRatio is 1 - d/max(len) with d the Levenshtein distance, a cheap
// stand-in for a sequence-matcher ratio that is good enough for typo hints.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
