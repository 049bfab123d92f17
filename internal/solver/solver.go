package solver

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/retro-fantasy/internal/milp"
	"github.com/stitts-dev/retro-fantasy/pkg/logger"
)

// Status is the backend's termination status.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusTimeLimit  Status = "TimeLimit"
	StatusNotSolved  Status = "NotSolved"
)

// Backend selects the MILP backend.
type Backend string

const (
	// BackendAuto prefers Gurobi when an installation is detected via the
	// environment, and falls back to CBC.
	BackendAuto   Backend = "auto"
	BackendCBC    Backend = "cbc"
	BackendGurobi Backend = "gurobi"
)

var (
	// ErrSolver covers a missing backend binary, a missing license, or an
	// abnormal backend termination.
	ErrSolver = errors.New("solver error")

	// ErrInfeasibleModel is reported when the backend proves infeasibility.
	ErrInfeasibleModel = errors.New("model is infeasible")

	// ErrTimeLimit is reported when the time limit was hit before optimality
	// and no feasible incumbent was found.
	ErrTimeLimit = errors.New("time limit exceeded")
)

// Options configures a solve run.
type Options struct {
	Backend   Backend
	TimeLimit time.Duration // zero means no limit
	Verbose   bool
	WorkDir   string // scratch dir for model/solution files; temp dir if empty
}

// Result reports the outcome of a solve. Values holds the full variable
// vector by name; it is also written back onto the model's variables, so the
// extractor can read them through the model handle. When the time limit is
// hit with a feasible incumbent, Status is TimeLimit and Values holds the
// incumbent.
type Result struct {
	Status         Status
	ObjectiveValue float64
	Values         map[string]float64
	Runtime        time.Duration
	Backend        Backend
	SolveID        string
}

type backendDriver interface {
	name() Backend
	available() bool
	// run executes the backend and returns its combined console output, which
	// some backends need for status detection.
	run(lpPath, solPath string, opts Options, log *logrus.Entry) (string, error)
	parseSolution(solPath, consoleOutput string) (Status, map[string]float64, error)
}

// Solve writes the model to disk, runs the selected backend, parses its
// solution file and writes the values back onto the model.
func Solve(model *milp.Model, opts Options) (*Result, error) {
	solveID := uuid.New().String()

	driver, err := selectBackend(opts.Backend)
	if err != nil {
		return nil, err
	}
	log := logger.WithSolveContext(solveID, string(driver.name()))

	workDir := opts.WorkDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "retro-fantasy-solve-")
		if err != nil {
			return nil, fmt.Errorf("%w: creating scratch dir: %v", ErrSolver, err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}

	lpPath := filepath.Join(workDir, model.Name+".lp")
	solPath := filepath.Join(workDir, model.Name+".sol")

	f, err := os.Create(lpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: writing model file: %v", ErrSolver, err)
	}
	if err := model.WriteLP(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: writing model file: %v", ErrSolver, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: writing model file: %v", ErrSolver, err)
	}

	log.WithFields(logrus.Fields{
		"variables":   model.NumVars(),
		"constraints": model.NumConstraints(),
		"time_limit":  opts.TimeLimit,
		"model_file":  lpPath,
	}).Info("Starting solve")

	start := time.Now()
	consoleOutput, err := driver.run(lpPath, solPath, opts, log)
	if err != nil {
		return nil, err
	}
	runtime := time.Since(start)

	status, values, err := driver.parseSolution(solPath, consoleOutput)
	if err != nil {
		return nil, err
	}

	model.SetValues(values)

	result := &Result{
		Status:  status,
		Values:  values,
		Runtime: runtime,
		Backend: driver.name(),
		SolveID: solveID,
	}
	if status == StatusOptimal || status == StatusTimeLimit {
		result.ObjectiveValue = model.ObjectiveValue()
	}

	log.WithFields(logrus.Fields{
		"status":    string(status),
		"objective": result.ObjectiveValue,
		"runtime":   runtime,
	}).Info("Solve finished")

	return result, nil
}

func selectBackend(b Backend) (backendDriver, error) {
	cbc := &cbcDriver{}
	gurobi := &gurobiDriver{}

	switch Backend(strings.ToLower(string(b))) {
	case BackendCBC:
		if !cbc.available() {
			return nil, fmt.Errorf("%w: cbc executable not found on PATH", ErrSolver)
		}
		return cbc, nil
	case BackendGurobi:
		if !gurobi.available() {
			return nil, fmt.Errorf("%w: gurobi_cl not found (set GUROBI_HOME or add it to PATH)", ErrSolver)
		}
		return gurobi, nil
	case BackendAuto, "":
		if gurobi.available() {
			return gurobi, nil
		}
		if cbc.available() {
			return cbc, nil
		}
		return nil, fmt.Errorf("%w: no MILP backend found (install cbc, or set GUROBI_HOME)", ErrSolver)
	}
	return nil, fmt.Errorf("%w: unknown backend %q", ErrSolver, b)
}

// CheckResult maps a non-extractable result onto the solver error kinds.
// Infeasible and time-outs without an incumbent are errors; Optimal and TimeLimit with
// an incumbent are extractable.
func CheckResult(r *Result) error {
	switch r.Status {
	case StatusOptimal:
		return nil
	case StatusTimeLimit:
		if len(r.Values) > 0 {
			return nil
		}
		return fmt.Errorf("%w: no incumbent found within the limit", ErrTimeLimit)
	case StatusInfeasible:
		return fmt.Errorf("%w", ErrInfeasibleModel)
	case StatusUnbounded:
		return fmt.Errorf("%w: model is unbounded", ErrSolver)
	default:
		return fmt.Errorf("%w: backend stopped without a solution (status %s)", ErrSolver, r.Status)
	}
}

func lookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func runCommand(cmd *exec.Cmd, verbose bool, log *logrus.Entry) (string, error) {
	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if verbose {
		log.WithField("output", out.String()).Debug("Backend output")
	}
	if err != nil {
		return out.String(), fmt.Errorf("%w: backend terminated abnormally: %v\n%s", ErrSolver, err, out.String())
	}
	return out.String(), nil
}
