package pricegen

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

type exportStats struct {
	Scores map[string]float64 `json:"scores"`
	Prices map[string]float64 `json:"prices"`
}

type exportRecord struct {
	ID                int         `json:"id"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	SquadID           *int        `json:"squad_id"`
	OriginalPositions []int       `json:"original_positions"`
	Positions         []int       `json:"positions"`
	Stats             exportStats `json:"stats"`
}

// WritePlayersJSON writes generated players in the schema the retrospective
// loader consumes, and logs final-price summary statistics.
func WritePlayersJSON(w io.Writer, players []GeneratedPlayer) error {
	records := make([]exportRecord, 0, len(players))
	finalPrices := make([]float64, 0, len(players))

	for _, p := range players {
		rec := exportRecord{
			ID:                p.ID,
			FirstName:         p.FirstName,
			LastName:          p.LastName,
			SquadID:           p.SquadID,
			OriginalPositions: p.Positions,
			Positions:         p.Positions,
			Stats: exportStats{
				Scores: make(map[string]float64, len(p.Scores)),
				Prices: make(map[string]float64, len(p.Prices)),
			},
		}
		lastRound := 0
		for r, s := range p.Scores {
			rec.Stats.Scores[strconv.Itoa(r)] = s
			if r > lastRound {
				lastRound = r
			}
		}
		for r, price := range p.Prices {
			rec.Stats.Prices[strconv.Itoa(r)] = price
		}
		if price, ok := p.Prices[lastRound]; ok {
			finalPrices = append(finalPrices, price)
		}
		records = append(records, rec)
	}

	if len(finalPrices) > 0 {
		mean, std := stat.MeanStdDev(finalPrices, nil)
		logger.WithComponent("pricegen").WithFields(logrus.Fields{
			"players":          len(records),
			"final_price_mean": mean,
			"final_price_std":  std,
		}).Info("Exporting simulated players")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// LoadBasePlayers reads the projection file that seeds a simulation.
func LoadBasePlayers(path string) ([]BasePlayer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading base players json: %v", types.ErrConfiguration, err)
	}
	var players []BasePlayer
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("%w: parsing base players json: %v", types.ErrConfiguration, err)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: base players json is empty", types.ErrConfiguration)
	}
	return players, nil
}
