// Copyright 2025 The airland Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mip

import (
	"context"
	"math"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Relaxation solves the continuous relaxation of a model with gonum's
// simplex: integrality requirements are dropped and the result is the exact
// optimum of the relaxed linear program. For a minimization MIP that optimum
// is a lower bound on the true objective. Pure Go, no external runtime;
// cancellation is only observed between the assembly and solve phases.
type Relaxation struct {
	// Tol is the tolerance passed to the simplex. Zero selects the solver's
	// default.
	Tol float64
}

// Name returns the backend name.
func (Relaxation) Name() string { return "relax" }

// relaxCol describes how one standard-form column contributes to an original
// variable: value += sign * y[col].
type relaxCol struct {
	col  int
	sign float64
}

type stdCoeff struct {
	col int
	val float64
}

type stdRow struct {
	coeffs []stdCoeff
	rhs    float64
}

// Solve converts the model to standard equality form, shifting and
// splitting variables and slacking rows until every unknown is
// nonnegative, then runs the simplex on it.
func (r Relaxation) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return &Solution{Status: StatusInvalid}, errors.Wrap(err, "model validation")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Map every variable onto nonnegative standard-form columns. colWidth
	// remembers how far a shifted bounded column may travel; unbounded
	// columns carry +Inf.
	nv := m.NumVars()
	shift := make([]float64, nv)
	cols := make([][]relaxCol, nv)
	var colWidth []float64
	for i, v := range m.vars {
		lbFin := !math.IsInf(v.lb, -1)
		ubFin := !math.IsInf(v.ub, 1)
		switch {
		case lbFin && ubFin && v.lb == v.ub:
			shift[i] = v.lb
		case lbFin:
			shift[i] = v.lb
			cols[i] = []relaxCol{{col: len(colWidth), sign: 1}}
			if ubFin {
				colWidth = append(colWidth, v.ub-v.lb)
			} else {
				colWidth = append(colWidth, math.Inf(1))
			}
		case ubFin:
			shift[i] = v.ub
			cols[i] = []relaxCol{{col: len(colWidth), sign: -1}}
			colWidth = append(colWidth, math.Inf(1))
		default:
			cols[i] = []relaxCol{{col: len(colWidth), sign: 1}, {col: len(colWidth) + 1, sign: -1}}
			colWidth = append(colWidth, math.Inf(1), math.Inf(1))
		}
	}

	sense := 1.0
	if m.maximize {
		sense = -1.0
	}
	objConst := m.objOffset
	objCost := make([]float64, len(colWidth))
	for _, vc := range m.objective {
		objConst += vc.coeff * shift[vc.ind]
		for _, rc := range cols[vc.ind] {
			objCost[rc.col] += sense * vc.coeff * rc.sign
		}
	}

	values := func(y []float64) []float64 {
		out := make([]float64, nv)
		for i := range out {
			out[i] = shift[i]
			for _, rc := range cols[i] {
				out[i] += rc.sign * y[rc.col]
			}
		}
		return out
	}

	if m.NumConstraints() == 0 {
		return solveBoxOnly(sense, objConst, objCost, colWidth, values)
	}
	if len(colWidth) == 0 {
		// Everything is fixed; the rows are pure feasibility checks.
		for i, ct := range m.constrs {
			rowConst := 0.0
			for _, vc := range ct.coeffs {
				rowConst += vc.coeff * shift[vc.ind]
			}
			if rowConst < ct.lb || rowConst > ct.ub {
				log.V(2).Infof("relax: fixed model %q violates row %d", m.name, i)
				return &Solution{Status: StatusInfeasible}, nil
			}
		}
		return NewSolution(StatusOptimal, objConst, values(nil)), nil
	}

	// Build the equality rows. Slack columns are appended after the variable
	// columns, one per inequality and one per bounded column.
	ncols := len(colWidth)
	var rows []stdRow
	expand := func(coeffs []varCoeff) (out []stdCoeff, rowConst float64) {
		for _, vc := range coeffs {
			rowConst += vc.coeff * shift[vc.ind]
			for _, rc := range cols[vc.ind] {
				out = append(out, stdCoeff{col: rc.col, val: vc.coeff * rc.sign})
			}
		}
		return out, rowConst
	}
	for _, ct := range m.constrs {
		lbFin := !math.IsInf(ct.lb, -1)
		ubFin := !math.IsInf(ct.ub, 1)
		if lbFin && ubFin && ct.lb == ct.ub {
			coeffs, rowConst := expand(ct.coeffs)
			rows = append(rows, stdRow{coeffs: coeffs, rhs: ct.lb - rowConst})
			continue
		}
		if ubFin {
			coeffs, rowConst := expand(ct.coeffs)
			coeffs = append(coeffs, stdCoeff{col: ncols, val: 1})
			ncols++
			rows = append(rows, stdRow{coeffs: coeffs, rhs: ct.ub - rowConst})
		}
		if lbFin {
			coeffs, rowConst := expand(ct.coeffs)
			coeffs = append(coeffs, stdCoeff{col: ncols, val: -1})
			ncols++
			rows = append(rows, stdRow{coeffs: coeffs, rhs: ct.lb - rowConst})
		}
	}
	for col, width := range colWidth {
		if math.IsInf(width, 1) {
			continue
		}
		coeffs := []stdCoeff{{col: col, val: 1}, {col: ncols, val: 1}}
		ncols++
		rows = append(rows, stdRow{coeffs: coeffs, rhs: width})
	}

	a := mat.NewDense(len(rows), ncols, nil)
	b := make([]float64, len(rows))
	for ri, row := range rows {
		for _, sc := range row.coeffs {
			a.Set(ri, sc.col, a.At(ri, sc.col)+sc.val)
		}
		b[ri] = row.rhs
	}
	c := make([]float64, ncols)
	copy(c, objCost)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.V(1).Infof("relax: solving %q with %d standard-form columns, %d rows", m.name, ncols, len(rows))
	z, y, err := lp.Simplex(c, a, b, r.Tol, nil)
	switch {
	case err == lp.ErrInfeasible:
		return &Solution{Status: StatusInfeasible}, nil
	case err == lp.ErrUnbounded:
		return &Solution{Status: StatusUnbounded}, nil
	case err != nil:
		return nil, errors.Wrapf(err, "simplex on %q", m.name)
	}
	return NewSolution(StatusOptimal, sense*z+objConst, values(y)), nil
}

// solveBoxOnly handles models with no constraint rows: each column runs to
// whichever end of its box improves the objective.
func solveBoxOnly(sense, objConst float64, objCost, colWidth []float64, values func([]float64) []float64) (*Solution, error) {
	y := make([]float64, len(colWidth))
	obj := objConst
	for col, cost := range objCost {
		if cost >= 0 {
			continue // y = 0 is already optimal for this column
		}
		if math.IsInf(colWidth[col], 1) {
			return &Solution{Status: StatusUnbounded}, nil
		}
		y[col] = colWidth[col]
		obj += sense * cost * colWidth[col]
	}
	return NewSolution(StatusOptimal, obj, values(y)), nil
}
