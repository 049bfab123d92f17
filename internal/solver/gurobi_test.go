package solver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGurobiStatus(t *testing.T) {
	tests := []struct {
		output   string
		expected Status
	}{
		{"... Optimal solution found (tolerance 1.00e-04) ...", StatusOptimal},
		{"Model is infeasible", StatusInfeasible},
		{"Model is unbounded", StatusUnbounded},
		{"Time limit reached\nBest objective 1.2e+01", StatusTimeLimit},
		{"something else", StatusNotSolved},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseGurobiStatus(tt.output), "output %q", tt.output)
	}
}

func TestGurobiParseSolutionFile(t *testing.T) {
	content := "# Solution for model retro_fantasy\n" +
		"# Objective value = 28\n" +
		"x_1_1 1\n" +
		"x_2_1 0\n" +
		"bank_1 4.25e+01\n"
	path := writeTempFile(t, "model.sol", content)

	d := &gurobiDriver{}
	status, values, err := d.parseSolution(path, "Optimal solution found")
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, status)
	assert.Equal(t, 1.0, values["x_1_1"])
	assert.Equal(t, 0.0, values["x_2_1"])
	assert.Equal(t, 42.5, values["bank_1"])
}

func TestGurobiInfeasibleNeedsNoResultFile(t *testing.T) {
	d := &gurobiDriver{}
	status, values, err := d.parseSolution(filepath.Join(t.TempDir(), "missing.sol"), "Model is infeasible")
	require.NoError(t, err)
	assert.Equal(t, StatusInfeasible, status)
	assert.Nil(t, values)
}

func TestGurobiTimeLimitWithoutIncumbent(t *testing.T) {
	d := &gurobiDriver{}
	status, values, err := d.parseSolution(filepath.Join(t.TempDir(), "missing.sol"), "Time limit reached")
	require.NoError(t, err)
	assert.Equal(t, StatusTimeLimit, status)
	assert.Nil(t, values)
}
