package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/loader"
	"github.com/stitts-dev/retro-fantasy/internal/pipeline"
	"github.com/stitts-dev/retro-fantasy/internal/solver"
	"github.com/stitts-dev/retro-fantasy/internal/types"
	"github.com/stitts-dev/retro-fantasy/pkg/config"
)

// SolveHandler wraps the load -> formulate -> solve -> extract pipeline.
type SolveHandler struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSolveHandler creates a new solve handler.
func NewSolveHandler(cfg *config.Config, logger *logrus.Logger) *SolveHandler {
	return &SolveHandler{cfg: cfg, logger: logger}
}

// SolveRequest names the input files of a solve; unset fields fall back to
// the configured defaults. TimeLimitSeconds overrides the configured limit.
type SolveRequest struct {
	PlayersFile        string `json:"players_file"`
	PositionUpdatesCSV string `json:"position_updates_csv"`
	TeamRulesFile      string `json:"team_rules_file"`
	RoundsFile         string `json:"rounds_file"`
	DataFilterFile     string `json:"data_filter_file"`
	Backend            string `json:"backend"`
	TimeLimitSeconds   *int   `json:"time_limit_seconds"`
}

// Solve handles POST /api/v1/solve.
func (h *SolveHandler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	opts := h.pipelineOptions(req)

	summary, result, err := pipeline.Run(opts)
	if err != nil {
		h.logger.WithError(err).Error("Solve request failed")
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, types.ErrConfiguration), errors.Is(err, types.ErrDataConsistency):
			status = http.StatusBadRequest
		case errors.Is(err, solver.ErrInfeasibleModel):
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"solve_id": result.SolveID,
		"backend":  string(result.Backend),
		"runtime":  result.Runtime.String(),
		"solution": summary,
	})
}

func (h *SolveHandler) pipelineOptions(req SolveRequest) pipeline.Options {
	pick := func(override, fallback string) string {
		if override != "" {
			return override
		}
		return fallback
	}

	timeLimit := time.Duration(h.cfg.SolverTimeLimitSeconds) * time.Second
	if req.TimeLimitSeconds != nil {
		timeLimit = time.Duration(*req.TimeLimitSeconds) * time.Second
	}

	return pipeline.Options{
		Paths: loader.Paths{
			Players:            pick(req.PlayersFile, h.cfg.PlayersFile),
			PositionUpdatesCSV: pick(req.PositionUpdatesCSV, h.cfg.PositionUpdatesCSV),
			TeamRules:          pick(req.TeamRulesFile, h.cfg.TeamRulesFile),
			Rounds:             pick(req.RoundsFile, h.cfg.RoundsFile),
			DataFilter:         pick(req.DataFilterFile, h.cfg.DataFilterFile),
		},
		Backend:            solver.Backend(pick(req.Backend, h.cfg.SolverBackend)),
		TimeLimit:          timeLimit,
		Verbose:            h.cfg.SolverVerbose,
		StrictNameMatching: h.cfg.StrictNameMatching,
		IncludeRound0:      h.cfg.IncludeRound0,
	}
}
