package milp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprMergesCoefficients(t *testing.T) {
	m := NewModel("t", Maximize)
	a, err := m.NewBinaryVar("a")
	require.NoError(t, err)
	b, err := m.NewBinaryVar("b")
	require.NoError(t, err)

	e := NewExpr().Add(2, a).Add(3, b).Add(0.5, a)

	assert.Equal(t, 2.5, e.Coefficient(a))
	assert.Equal(t, 3.0, e.Coefficient(b))
	assert.Equal(t, 2, e.NumTerms())
}

func TestExprValueUsesVariableValues(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	b, _ := m.NewBinaryVar("b")
	a.Value = 1
	b.Value = 0

	e := NewExpr().Add(10, a).Add(7, b).AddConstant(5)
	assert.Equal(t, 15.0, e.Value())
}

func TestSumBuildsUnitCoefficients(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	b, _ := m.NewBinaryVar("b")

	e := Sum(a, b)
	assert.Equal(t, 1.0, e.Coefficient(a))
	assert.Equal(t, 1.0, e.Coefficient(b))
}

func TestDuplicateVariableNameRejected(t *testing.T) {
	m := NewModel("t", Maximize)
	_, err := m.NewBinaryVar("x")
	require.NoError(t, err)
	_, err = m.NewBinaryVar("x")
	assert.Error(t, err)
}

func TestDuplicateConstraintNameRejected(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	_, err := m.AddConstraint("c", Sum(a), Equal, 1)
	require.NoError(t, err)
	_, err = m.AddConstraint("c", Sum(a), Equal, 0)
	assert.Error(t, err)
}

func TestConstraintLookup(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	_, err := m.AddConstraint("only", Sum(a), LessOrEqual, 1)
	require.NoError(t, err)

	c, ok := m.Constraint("only")
	require.True(t, ok)
	assert.Equal(t, LessOrEqual, c.Rel)
	assert.Equal(t, 1.0, c.RHS)

	_, ok = m.Constraint("missing")
	assert.False(t, ok)
}

func TestSetValuesResetsUnlistedVariables(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	b, _ := m.NewBinaryVar("b")
	a.Value = 1
	b.Value = 1

	// A solver that omits zero rows reports only a.
	m.SetValues(map[string]float64{"a": 1})

	assert.Equal(t, 1.0, a.Value)
	assert.Equal(t, 0.0, b.Value)
}

func TestObjectiveValue(t *testing.T) {
	m := NewModel("t", Maximize)
	a, _ := m.NewBinaryVar("a")
	b, _ := m.NewBinaryVar("b")
	m.SetObjective(NewExpr().Add(10, a).Add(7, b))

	m.SetValues(map[string]float64{"a": 1, "b": 1})
	assert.Equal(t, 17.0, m.ObjectiveValue())
}

func TestContinuousVarBounds(t *testing.T) {
	m := NewModel("t", Maximize)
	v, err := m.NewContinuousVar("bank", 0, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, Continuous, v.Kind)
	assert.Equal(t, 0.0, v.Low)
	assert.True(t, IsUnboundedAbove(v.Up))
}
