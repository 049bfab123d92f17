package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/stitts-dev/retro-fantasy/internal/solution"
)

// RenderMarkdown renders the solution summary as a season report: a headline
// block, a round-summary table, then one section per round with the team
// listing and trades. Non-counted on-field scores are bracketed so bye rounds
// read correctly; the captain's score is bold.
func RenderMarkdown(summary *solution.Summary) string {
	var b strings.Builder

	b.WriteString("# Season solution\n\n")
	fmt.Fprintf(&b, "- Status: %s\n", summary.Status)
	fmt.Fprintf(&b, "- Objective value: %s\n\n", formatScore(summary.ObjectiveValue))

	rounds := sortedRoundNumbers(summary)

	b.WriteString("## Round summary\n\n")
	b.WriteString("| Round | Points | Captain | Bank | Team value | Total value |\n")
	b.WriteString("|---:|---:|---|---:|---:|---:|\n")
	for _, r := range rounds {
		s := summary.Rounds[r].Summary
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			r,
			formatScore(s.TotalTeamPoints),
			s.CaptainPlayerName,
			formatPrice(s.BankBalance),
			formatPrice(s.TeamValue),
			formatPrice(s.TotalValue),
		)
	}
	b.WriteString("\n")

	for _, r := range rounds {
		detail := summary.Rounds[r]
		fmt.Fprintf(&b, "## Round %d\n\n", r)

		if detail.Trades != nil {
			writeTrades(&b, detail.Trades)
		}

		b.WriteString("| Player | Slot | Price | Score |\n")
		b.WriteString("|---|---|---:|---:|\n")
		for _, entry := range detail.Team {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				entry.PlayerName,
				formatSlot(entry),
				formatPrice(entry.Price),
				formatEntryScore(entry),
			)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeTrades(b *strings.Builder, trades *solution.RoundTradeSummary) {
	if len(trades.TradedIn) == 0 && len(trades.TradedOut) == 0 {
		b.WriteString("No trades.\n\n")
		return
	}
	b.WriteString("**Trades**\n\n")
	for _, t := range trades.TradedOut {
		fmt.Fprintf(b, "- Out: %s (%s)\n", t.PlayerName, formatPrice(t.Price))
	}
	for _, t := range trades.TradedIn {
		fmt.Fprintf(b, "- In: %s (%s)\n", t.PlayerName, formatPrice(t.Price))
	}
	b.WriteString("\n")
}

func formatSlot(entry solution.TeamEntry) string {
	label := map[string]string{
		solution.SlotOnField:      "ON",
		solution.SlotBench:        "BENCH",
		solution.SlotUtilityBench: "UTIL",
	}[entry.Slot]
	if entry.Position != "" {
		return entry.Position + " / " + label
	}
	return label
}

// formatEntryScore styles a team entry's score: bold for the captain,
// bracketed for an on-field player whose score is not counted.
func formatEntryScore(entry solution.TeamEntry) string {
	text := formatScore(entry.Score)
	if entry.Captain {
		return "**" + text + "**"
	}
	if entry.Slot == solution.SlotOnField && !entry.Scored {
		return "(" + text + ")"
	}
	return text
}

// formatScore keeps integral scores as integers for readability.
func formatScore(score float64) string {
	if math.Abs(score-math.Round(score)) < 1e-9 {
		return strconv.Itoa(int(math.Round(score)))
	}
	return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(score, 'f', 2, 64), "0"), ".")
}

// formatPrice renders whole dollars with comma grouping.
func formatPrice(price float64) string {
	n := int64(math.Round(price))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + "$" + strings.Join(groups, ",")
}

func sortedRoundNumbers(summary *solution.Summary) []int {
	rounds := make([]int, 0, len(summary.Rounds))
	for r := range summary.Rounds {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)
	return rounds
}
