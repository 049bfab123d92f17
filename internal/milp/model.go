package milp

import (
	"fmt"
	"math"
)

// Sense is the optimization direction.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// VarKind is the domain of a decision variable.
type VarKind int

const (
	Binary VarKind = iota
	Integer
	Continuous
)

// Relation is a constraint comparison operator.
type Relation int

const (
	Equal Relation = iota
	LessOrEqual
	GreaterOrEqual
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "="
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	}
	return "?"
}

// Var is a decision variable. Value is populated by the solver driver after a
// successful solve; before that it is 0.
type Var struct {
	Name  string
	Kind  VarKind
	Low   float64
	Up    float64 // math.Inf(1) for unbounded above
	Value float64
}

// Constraint is a named linear constraint Expr (Relation) RHS.
type Constraint struct {
	Name string
	Expr *LinExpr
	Rel  Relation
	RHS  float64
}

// Model is an in-memory mixed-integer linear program. Variables and
// constraints keep insertion order; names are unique within their family.
type Model struct {
	Name  string
	Sense Sense

	vars        []*Var
	varsByName  map[string]*Var
	objective   *LinExpr
	constraints []*Constraint
	consByName  map[string]*Constraint
}

// NewModel creates an empty model.
func NewModel(name string, sense Sense) *Model {
	return &Model{
		Name:       name,
		Sense:      sense,
		varsByName: make(map[string]*Var),
		consByName: make(map[string]*Constraint),
		objective:  NewExpr(),
	}
}

func (m *Model) addVar(v *Var) (*Var, error) {
	if v.Name == "" {
		return nil, fmt.Errorf("variable name cannot be empty")
	}
	if _, exists := m.varsByName[v.Name]; exists {
		return nil, fmt.Errorf("duplicate variable name %q", v.Name)
	}
	m.vars = append(m.vars, v)
	m.varsByName[v.Name] = v
	return v, nil
}

// NewBinaryVar adds a binary variable to the model.
func (m *Model) NewBinaryVar(name string) (*Var, error) {
	return m.addVar(&Var{Name: name, Kind: Binary, Low: 0, Up: 1})
}

// NewContinuousVar adds a continuous variable with the given bounds.
func (m *Model) NewContinuousVar(name string, low, up float64) (*Var, error) {
	return m.addVar(&Var{Name: name, Kind: Continuous, Low: low, Up: up})
}

// SetObjective replaces the model objective.
func (m *Model) SetObjective(expr *LinExpr) {
	m.objective = expr
}

// Objective returns the model objective expression.
func (m *Model) Objective() *LinExpr { return m.objective }

// AddConstraint adds a named constraint. Names must be unique.
func (m *Model) AddConstraint(name string, expr *LinExpr, rel Relation, rhs float64) (*Constraint, error) {
	if name == "" {
		return nil, fmt.Errorf("constraint name cannot be empty")
	}
	if _, exists := m.consByName[name]; exists {
		return nil, fmt.Errorf("duplicate constraint name %q", name)
	}
	c := &Constraint{Name: name, Expr: expr, Rel: rel, RHS: rhs}
	m.constraints = append(m.constraints, c)
	m.consByName[name] = c
	return c, nil
}

// Vars returns the variables in insertion order.
func (m *Model) Vars() []*Var { return m.vars }

// Var looks up a variable by name.
func (m *Model) Var(name string) (*Var, bool) {
	v, ok := m.varsByName[name]
	return v, ok
}

// Constraints returns the constraints in insertion order.
func (m *Model) Constraints() []*Constraint { return m.constraints }

// Constraint looks up a constraint by name.
func (m *Model) Constraint(name string) (*Constraint, bool) {
	c, ok := m.consByName[name]
	return c, ok
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraints.
func (m *Model) NumConstraints() int { return len(m.constraints) }

// SetValues assigns solved values to variables by name. Names not present in
// the model are ignored; model variables absent from values keep 0, which
// matches solvers that omit zero rows from their solution files.
func (m *Model) SetValues(values map[string]float64) {
	for _, v := range m.vars {
		v.Value = 0
	}
	for name, value := range values {
		if v, ok := m.varsByName[name]; ok {
			v.Value = value
		}
	}
}

// ObjectiveValue evaluates the objective against the current variable values.
func (m *Model) ObjectiveValue() float64 {
	return m.objective.Value()
}

// IsUnboundedAbove reports whether the bound is +infinity.
func IsUnboundedAbove(up float64) bool {
	return math.IsInf(up, 1)
}
