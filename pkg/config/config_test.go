package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	cfg := &Config{SolverBackend: "auto"}
	assert.NoError(t, cfg.Validate())

	cfg.SolverBackend = "CBC"
	assert.NoError(t, cfg.Validate(), "backend check is case-insensitive")

	cfg.SolverBackend = "gurobi"
	assert.NoError(t, cfg.Validate())

	cfg.SolverBackend = "cplex"
	assert.Error(t, cfg.Validate())

	cfg.SolverBackend = "cbc"
	cfg.SolverTimeLimitSeconds = -5
	assert.Error(t, cfg.Validate())
}

func TestIsDevelopment(t *testing.T) {
	assert.True(t, (&Config{Env: "development"}).IsDevelopment())
	assert.False(t, (&Config{Env: "production"}).IsDevelopment())
}
