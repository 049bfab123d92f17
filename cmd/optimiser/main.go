package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/loader"
	"github.com/stitts-dev/retro-fantasy/internal/pipeline"
	"github.com/stitts-dev/retro-fantasy/internal/report"
	"github.com/stitts-dev/retro-fantasy/internal/solver"
	"github.com/stitts-dev/retro-fantasy/pkg/config"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Errorf("Failed to load config: %v", err)
		return 1
	}

	dataDir := flag.String("data-dir", cfg.DataDir, "directory holding the input files")
	playersFile := flag.String("players", cfg.PlayersFile, "players JSON file (relative to data dir)")
	updatesFile := flag.String("position-updates", cfg.PositionUpdatesCSV, "position updates CSV (relative to data dir; empty to skip)")
	rulesFile := flag.String("team-rules", cfg.TeamRulesFile, "team rules JSON file (relative to data dir)")
	roundsFile := flag.String("rounds", cfg.RoundsFile, "rounds JSON file (relative to data dir)")
	filterFile := flag.String("data-filter", cfg.DataFilterFile, "optional data filter JSON (relative to data dir)")
	solutionFile := flag.String("solution", cfg.SolutionFile, "output solution JSON path")
	reportFile := flag.String("report", cfg.ReportFile, "output markdown report path")
	writeMarkdown := flag.Bool("markdown", cfg.WriteMarkdown, "also write a markdown report")
	backend := flag.String("backend", cfg.SolverBackend, "MILP backend: auto, cbc or gurobi")
	timeLimit := flag.Int("time-limit", cfg.SolverTimeLimitSeconds, "solver time limit in seconds (0 = none)")
	verbose := flag.Bool("verbose", cfg.SolverVerbose, "log backend output")
	strict := flag.Bool("strict-names", cfg.StrictNameMatching, "fail on unmatched position-update names")
	flag.Parse()

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	opts := pipeline.Options{
		Paths: loader.Paths{
			Players:    filepath.Join(*dataDir, *playersFile),
			TeamRules:  filepath.Join(*dataDir, *rulesFile),
			Rounds:     filepath.Join(*dataDir, *roundsFile),
			DataFilter: joinIfSet(*dataDir, *filterFile),
		},
		Backend:            solver.Backend(*backend),
		TimeLimit:          time.Duration(*timeLimit) * time.Second,
		Verbose:            *verbose,
		StrictNameMatching: *strict,
		IncludeRound0:      cfg.IncludeRound0,
	}
	if *updatesFile != "" {
		opts.Paths.PositionUpdatesCSV = filepath.Join(*dataDir, *updatesFile)
	}

	summary, result, err := pipeline.Run(opts)
	if err != nil {
		log.WithError(err).Error("Solve failed")
		return 1
	}

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.WithError(err).Error("Failed to encode solution")
		return 1
	}

	if err := os.WriteFile(*solutionFile, append(encoded, '\n'), 0o644); err != nil {
		log.WithError(err).Error("Failed to write solution file")
		return 1
	}
	if *writeMarkdown {
		if err := os.WriteFile(*reportFile, []byte(report.RenderMarkdown(summary)), 0o644); err != nil {
			log.WithError(err).Error("Failed to write markdown report")
			return 1
		}
	}

	log.WithFields(logrus.Fields{
		"status":    summary.Status,
		"objective": summary.ObjectiveValue,
		"backend":   string(result.Backend),
		"runtime":   result.Runtime,
		"solution":  *solutionFile,
	}).Info("Solution written")

	fmt.Println(string(encoded))
	return 0
}

func joinIfSet(dir, file string) string {
	if file == "" {
		return ""
	}
	return filepath.Join(dir, file)
}
