package pricegen

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// MagicNumber converts an average score into a sustainable price under the
// league's pricing model.
const MagicNumber = 10_502

// Settings controls a prospective season simulation.
type Settings struct {
	Rounds int

	// MagicNumber is the score-to-price conversion factor; defaults to
	// MagicNumber when zero.
	MagicNumber float64

	// PriceSmoothing is the weight of the score-implied price in the price
	// recurrence; the remainder sticks with the previous price.
	PriceSmoothing float64

	// ScoreVolatility is the standard deviation of the per-round Gaussian
	// noise around a player's projected score.
	ScoreVolatility float64

	Seed uint64
}

// BasePlayer is a projection used to seed a simulated season.
type BasePlayer struct {
	ID             int     `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	SquadID        *int    `json:"squad_id"`
	Positions      []int   `json:"positions"`
	StartPrice     float64 `json:"start_price"`
	ProjectedScore float64 `json:"projected_score"`
}

// GeneratedPlayer is a base player with a simulated score and price series.
type GeneratedPlayer struct {
	BasePlayer
	Scores map[int]float64
	Prices map[int]float64
}

// rollingWindow is the number of recent scores averaged by the price model.
const rollingWindow = 3

// Generate simulates per-round scores and the resulting price trajectories.
// Deterministic for a fixed seed: players are processed in input order off a
// single random source.
func Generate(players []BasePlayer, cfg Settings) ([]GeneratedPlayer, error) {
	if cfg.Rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be >= 1, got %d", types.ErrConfiguration, cfg.Rounds)
	}
	if cfg.PriceSmoothing < 0 || cfg.PriceSmoothing > 1 {
		return nil, fmt.Errorf("%w: price smoothing must be in [0, 1], got %v", types.ErrConfiguration, cfg.PriceSmoothing)
	}
	if cfg.ScoreVolatility < 0 {
		return nil, fmt.Errorf("%w: score volatility must be >= 0, got %v", types.ErrConfiguration, cfg.ScoreVolatility)
	}
	magic := cfg.MagicNumber
	if magic == 0 {
		magic = MagicNumber
	}

	src := rand.NewSource(cfg.Seed)

	out := make([]GeneratedPlayer, 0, len(players))
	for _, base := range players {
		noise := distuv.Normal{Mu: base.ProjectedScore, Sigma: cfg.ScoreVolatility, Src: src}

		scores := make(map[int]float64, cfg.Rounds)
		prices := make(map[int]float64, cfg.Rounds)

		price := base.StartPrice
		var recent []float64
		for r := 1; r <= cfg.Rounds; r++ {
			prices[r] = price

			score := base.ProjectedScore
			if cfg.ScoreVolatility > 0 {
				score = noise.Rand()
			}
			if score < 0 {
				score = 0
			}
			scores[r] = score

			recent = append(recent, score)
			if len(recent) > rollingWindow {
				recent = recent[1:]
			}
			price = nextPrice(price, recent, magic, cfg.PriceSmoothing)
		}

		out = append(out, GeneratedPlayer{BasePlayer: base, Scores: scores, Prices: prices})
	}

	logger.WithComponent("pricegen").WithFields(logrus.Fields{
		"players": len(out),
		"rounds":  cfg.Rounds,
		"seed":    cfg.Seed,
	}).Info("Season simulated")

	return out, nil
}

// nextPrice blends the previous price with the price implied by the rolling
// average score. Prices never go negative.
func nextPrice(price float64, recent []float64, magic, smoothing float64) float64 {
	if len(recent) == 0 {
		return price
	}
	total := 0.0
	for _, s := range recent {
		total += s
	}
	implied := magic * total / float64(len(recent))
	next := (1-smoothing)*price + smoothing*implied
	if next < 0 {
		return 0
	}
	return next
}
