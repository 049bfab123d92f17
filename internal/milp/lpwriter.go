package milp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteLP writes the model in CPLEX LP format, which both CBC and Gurobi read
// natively. Output is deterministic for a given model: variables, constraints
// and expression terms are emitted in insertion order.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ %s\n", m.Name)
	if m.Sense == Maximize {
		fmt.Fprintln(bw, "Maximize")
	} else {
		fmt.Fprintln(bw, "Minimize")
	}

	fmt.Fprintf(bw, " obj: %s\n", formatExpr(m.objective, m.vars))

	fmt.Fprintln(bw, "Subject To")
	for _, c := range m.constraints {
		// Constants move to the right-hand side.
		rhs := c.RHS - c.Expr.Constant
		op := "="
		switch c.Rel {
		case LessOrEqual:
			op = "<="
		case GreaterOrEqual:
			op = ">="
		}
		fmt.Fprintf(bw, " %s: %s %s %s\n", c.Name, formatExpr(c.Expr, m.vars), op, formatFloat(rhs))
	}

	// Bounds for non-binary variables. Binaries are bounded by their section.
	wroteBoundsHeader := false
	for _, v := range m.vars {
		if v.Kind == Binary {
			continue
		}
		if !wroteBoundsHeader {
			fmt.Fprintln(bw, "Bounds")
			wroteBoundsHeader = true
		}
		if IsUnboundedAbove(v.Up) {
			fmt.Fprintf(bw, " %s >= %s\n", v.Name, formatFloat(v.Low))
		} else {
			fmt.Fprintf(bw, " %s <= %s <= %s\n", formatFloat(v.Low), v.Name, formatFloat(v.Up))
		}
	}

	wroteBinHeader := false
	for _, v := range m.vars {
		if v.Kind != Binary {
			continue
		}
		if !wroteBinHeader {
			fmt.Fprintln(bw, "Binaries")
			wroteBinHeader = true
		}
		fmt.Fprintf(bw, " %s\n", v.Name)
	}

	wroteGenHeader := false
	for _, v := range m.vars {
		if v.Kind != Integer {
			continue
		}
		if !wroteGenHeader {
			fmt.Fprintln(bw, "Generals")
			wroteGenHeader = true
		}
		fmt.Fprintf(bw, " %s\n", v.Name)
	}

	fmt.Fprintln(bw, "End")
	return bw.Flush()
}

// formatExpr renders the variable terms of an expression. Zero-coefficient
// terms are dropped; an expression with no surviving terms is rendered as
// "0 <first model var>" because the LP format has no empty-expression form.
func formatExpr(e *LinExpr, modelVars []*Var) string {
	out := ""
	wrote := false
	for _, t := range e.Terms() {
		if t.Coef == 0 {
			continue
		}
		coef := t.Coef
		if !wrote {
			if coef < 0 {
				out += "- "
				coef = -coef
			}
		} else {
			if coef < 0 {
				out += " - "
				coef = -coef
			} else {
				out += " + "
			}
		}
		out += formatFloat(coef) + " " + t.Var.Name
		wrote = true
	}
	if !wrote {
		if len(modelVars) > 0 {
			return "0 " + modelVars[0].Name
		}
		return "0"
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
