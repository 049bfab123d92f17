package solver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// gurobiDriver shells out to gurobi_cl. An installation is detected via the
// environment: GUROBI_HOME, or gurobi_cl resolvable on PATH.
type gurobiDriver struct{}

func (d *gurobiDriver) name() Backend { return BackendGurobi }

func (d *gurobiDriver) available() bool {
	return d.executable() != ""
}

func (d *gurobiDriver) executable() string {
	if home := os.Getenv("GUROBI_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", "gurobi_cl")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if path, err := exec.LookPath("gurobi_cl"); err == nil {
		return path
	}
	return ""
}

func (d *gurobiDriver) run(lpPath, solPath string, opts Options, log *logrus.Entry) (string, error) {
	args := []string{fmt.Sprintf("ResultFile=%s", solPath)}
	if opts.TimeLimit > 0 {
		args = append(args, fmt.Sprintf("TimeLimit=%d", int(opts.TimeLimit.Seconds())))
	}
	args = append(args, lpPath)

	cmd := exec.Command(d.executable(), args...)
	return runCommand(cmd, opts.Verbose, log)
}

// parseSolution reads a Gurobi .sol file ("# comment" lines, then
// "<name> <value>" rows). Status comes from the console output because
// Gurobi writes no result file for infeasible models.
func (d *gurobiDriver) parseSolution(solPath, consoleOutput string) (Status, map[string]float64, error) {
	status := parseGurobiStatus(consoleOutput)
	if status == StatusInfeasible || status == StatusUnbounded {
		return status, nil, nil
	}

	raw, err := os.ReadFile(solPath)
	if err != nil {
		if status == StatusTimeLimit {
			// Limit hit before any incumbent: no result file is written.
			return StatusTimeLimit, nil, nil
		}
		return StatusNotSolved, nil, fmt.Errorf("%w: reading gurobi result file: %v", ErrSolver, err)
	}

	values := make(map[string]float64)
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		values[fields[0]] = value
	}

	return status, values, nil
}

func parseGurobiStatus(output string) Status {
	l := strings.ToLower(output)
	switch {
	case strings.Contains(l, "optimal solution found"):
		return StatusOptimal
	case strings.Contains(l, "model is infeasible"):
		return StatusInfeasible
	case strings.Contains(l, "model is unbounded"):
		return StatusUnbounded
	case strings.Contains(l, "time limit reached"):
		return StatusTimeLimit
	default:
		return StatusNotSolved
	}
}
