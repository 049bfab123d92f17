package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/pricegen"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	basePath := flag.String("base", "data/projections.json", "base player projections JSON")
	outPath := flag.String("out", "data/players_simulated.json", "output players JSON")
	rounds := flag.Int("rounds", 24, "number of rounds to simulate")
	magic := flag.Float64("magic", pricegen.MagicNumber, "score-to-price conversion factor")
	smoothing := flag.Float64("smoothing", 0.25, "weight of the score-implied price in the recurrence")
	volatility := flag.Float64("volatility", 12.0, "standard deviation of per-round score noise")
	seed := flag.Uint64("seed", 1, "random seed")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logger.InitLogger(*logLevel, true)

	players, err := pricegen.LoadBasePlayers(*basePath)
	if err != nil {
		log.WithError(err).Error("Failed to load base players")
		return 1
	}

	generated, err := pricegen.Generate(players, pricegen.Settings{
		Rounds:          *rounds,
		MagicNumber:     *magic,
		PriceSmoothing:  *smoothing,
		ScoreVolatility: *volatility,
		Seed:            *seed,
	})
	if err != nil {
		log.WithError(err).Error("Simulation failed")
		return 1
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.WithError(err).Error("Failed to create output file")
		return 1
	}
	defer f.Close()

	if err := pricegen.WritePlayersJSON(f, generated); err != nil {
		log.WithError(err).Error("Failed to write output")
		return 1
	}

	log.WithFields(logrus.Fields{
		"players": len(generated),
		"rounds":  *rounds,
		"out":     *outPath,
	}).Info("Simulated season written")
	return 0
}
