package solver

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// cbcDriver shells out to the COIN-OR cbc executable. The invocation mirrors
// the standard command-line usage: read the LP file, branch-and-cut, write
// every variable (including zeros) to a solution file.
type cbcDriver struct{}

func (d *cbcDriver) name() Backend { return BackendCBC }

func (d *cbcDriver) available() bool { return lookPath("cbc") }

func (d *cbcDriver) run(lpPath, solPath string, opts Options, log *logrus.Entry) (string, error) {
	args := []string{lpPath}
	if opts.TimeLimit > 0 {
		args = append(args, "sec", strconv.Itoa(int(opts.TimeLimit.Seconds())), "timeMode", "elapsed")
	}
	args = append(args, "branch", "printingOptions", "all", "solution", solPath)

	cmd := exec.Command("cbc", args...)
	return runCommand(cmd, opts.Verbose, log)
}

// parseSolution reads a CBC solution file. The first line carries the status
// and objective ("Optimal - objective value 28.00000000"); the remaining
// lines are "<index> <name> <value> <objective coefficient>" rows, with a
// leading "**" marker on rows of an infeasible vector.
func (d *cbcDriver) parseSolution(solPath, _ string) (Status, map[string]float64, error) {
	raw, err := os.ReadFile(solPath)
	if err != nil {
		return StatusNotSolved, nil, fmt.Errorf("%w: reading cbc solution file: %v", ErrSolver, err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return StatusNotSolved, nil, fmt.Errorf("%w: empty cbc solution file", ErrSolver)
	}

	status := parseCBCStatusLine(lines[0])
	if status == StatusInfeasible || status == StatusUnbounded {
		return status, nil, nil
	}

	values := make(map[string]float64, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		values[fields[1]] = value
	}

	if status == StatusTimeLimit && len(values) == 0 {
		return StatusTimeLimit, nil, nil
	}
	return status, values, nil
}

func parseCBCStatusLine(line string) Status {
	l := strings.ToLower(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(l, "optimal"):
		return StatusOptimal
	case strings.Contains(l, "infeasible"):
		return StatusInfeasible
	case strings.Contains(l, "unbounded"):
		return StatusUnbounded
	case strings.HasPrefix(l, "stopped on time"):
		return StatusTimeLimit
	case strings.HasPrefix(l, "stopped"):
		// Stopped on gap/iterations: report the best incumbent as a
		// limit-style stop so the caller can still extract it.
		return StatusTimeLimit
	default:
		return StatusNotSolved
	}
}
