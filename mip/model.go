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

// Package mip offers a small builder API for mixed-integer linear models.
//
// The `Model` struct collects variables, linear constraint rows, and a linear
// objective. The `Var` struct is a reference to a variable in a model and
// implements `LinearArgument` together with `LinearExpr`, so expressions can
// mix variables and weighted sums freely. A finished model is handed to a
// `Solver` (see solution.go); this package never searches for solutions
// itself.
package mip

import (
	"fmt"
	"math"
)

type (
	// VarIndex is the index of a variable in a model.
	VarIndex int32
	// ConstrIndex is the index of a constraint row in a model.
	ConstrIndex int32
)

// VarType describes the domain kind of a variable.
type VarType int8

const (
	// ContinuousVar is a real-valued variable.
	ContinuousVar VarType = iota
	// IntegerVar is an integer-valued variable.
	IntegerVar
	// BinaryVar is an integer variable with bounds [0, 1].
	BinaryVar
)

// String returns a short lowercase name for the variable type.
func (t VarType) String() string {
	switch t {
	case ContinuousVar:
		return "continuous"
	case IntegerVar:
		return "integer"
	case BinaryVar:
		return "binary"
	}
	return fmt.Sprintf("vartype(%d)", int8(t))
}

type varData struct {
	name   string
	lb, ub float64
	vtype  VarType
}

type constrData struct {
	name   string
	lb, ub float64
	coeffs []varCoeff
}

// Model collects the variables, constraint rows, and objective of a
// mixed-integer linear program.
type Model struct {
	name      string
	vars      []varData
	constrs   []constrData
	objective []varCoeff
	objOffset float64
	maximize  bool
	// The first and only the first error is reported by Validate.
	err error
}

// NewModel creates and returns a new empty Model.
func NewModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// Var is a reference to a variable in a model.
type Var struct {
	ind VarIndex
	m   *Model
}

// NewVar creates a new variable with the given bounds and type.
func (m *Model) NewVar(lb, ub float64, vtype VarType) Var {
	v := Var{ind: VarIndex(len(m.vars)), m: m}
	m.vars = append(m.vars, varData{lb: lb, ub: ub, vtype: vtype})
	return v
}

// NewNumVar creates a new continuous variable with the given bounds.
func (m *Model) NewNumVar(lb, ub float64) Var {
	return m.NewVar(lb, ub, ContinuousVar)
}

// NewIntVar creates a new integer variable with the given bounds.
func (m *Model) NewIntVar(lb, ub float64) Var {
	return m.NewVar(lb, ub, IntegerVar)
}

// NewBoolVar creates a new binary variable.
func (m *Model) NewBoolVar() Var {
	return m.NewVar(0, 1, BinaryVar)
}

// Name returns the name of the variable.
func (v Var) Name() string {
	return v.m.vars[v.ind].name
}

// Index returns the index of the variable.
func (v Var) Index() VarIndex {
	return v.ind
}

// Type returns the type of the variable.
func (v Var) Type() VarType {
	return v.m.vars[v.ind].vtype
}

// Bounds returns the lower and upper bound of the variable.
func (v Var) Bounds() (lb, ub float64) {
	d := v.m.vars[v.ind]
	return d.lb, d.ub
}

// WithName sets the name of the variable.
func (v Var) WithName(s string) Var {
	v.m.vars[v.ind].name = s
	return v
}

func (v Var) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: v.ind, coeff: c})
}

func (v Var) evaluateSolutionValue(s *Solution) float64 {
	return s.values[v.ind]
}

// Constraint is a reference to a constraint row in a model.
type Constraint struct {
	ind ConstrIndex
	m   *Model
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.m.constrs[c.ind].name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.m.constrs[c.ind].name = s
	return c
}

// addRow stores `lb <= le <= ub` as a canonical row. The constant offset of
// `le` is folded into the bounds.
func (m *Model) addRow(le *LinearExpr, lb, ub float64) Constraint {
	c := Constraint{ind: ConstrIndex(len(m.constrs)), m: m}
	row := constrData{coeffs: le.terms()}
	if !math.IsInf(lb, -1) {
		row.lb = lb - le.offset
	} else {
		row.lb = lb
	}
	if !math.IsInf(ub, 1) {
		row.ub = ub - le.offset
	} else {
		row.ub = ub
	}
	if row.lb > row.ub {
		m.setErrorf("constraint %d has crossed bounds [%v, %v]", c.ind, row.lb, row.ub)
	}
	m.constrs = append(m.constrs, row)
	return c
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (m *Model) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	linExpr := NewLinearExpr().Add(expr)
	return m.addRow(linExpr, lb, ub)
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (m *Model) AddEquality(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return m.addRow(diff, 0, 0)
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (m *Model) AddLessOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return m.addRow(diff, math.Inf(-1), 0)
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (m *Model) AddGreaterOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return m.addRow(diff, 0, math.Inf(1))
}

// Minimize sets the objective to minimize the linear argument.
func (m *Model) Minimize(obj LinearArgument) {
	m.setObjective(obj, false)
}

// Maximize sets the objective to maximize the linear argument.
func (m *Model) Maximize(obj LinearArgument) {
	m.setObjective(obj, true)
}

func (m *Model) setObjective(obj LinearArgument, maximize bool) {
	linExpr := NewLinearExpr().Add(obj)
	m.objective = linExpr.terms()
	m.objOffset = linExpr.offset
	m.maximize = maximize
}

// IsMaximization reports whether the objective sense is maximization.
func (m *Model) IsMaximization() bool {
	return m.maximize
}

// ObjectiveOffset returns the constant term of the objective.
func (m *Model) ObjectiveOffset() float64 {
	return m.objOffset
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	return len(m.vars)
}

// NumConstraints returns the number of constraint rows in the model.
func (m *Model) NumConstraints() int {
	return len(m.constrs)
}

// setErrorf records the first error encountered while building the model.
func (m *Model) setErrorf(format string, a ...any) {
	if m.err == nil {
		m.err = fmt.Errorf(format, a...)
	}
}

// Validate checks the model for structural problems: deferred build errors,
// crossed or non-finite variable bounds, NaN coefficients, and variable
// indices that do not belong to this model. Solvers call it before
// translating the model.
func (m *Model) Validate() error {
	if m.err != nil {
		return m.err
	}
	if len(m.vars) == 0 {
		return fmt.Errorf("model %q has no variables", m.name)
	}
	for i, v := range m.vars {
		if math.IsNaN(v.lb) || math.IsNaN(v.ub) {
			return fmt.Errorf("variable %d has NaN bounds", i)
		}
		if v.lb > v.ub {
			return fmt.Errorf("variable %d has crossed bounds [%v, %v]", i, v.lb, v.ub)
		}
		if math.IsInf(v.lb, 1) || math.IsInf(v.ub, -1) {
			return fmt.Errorf("variable %d has bounds with the wrong infinity [%v, %v]", i, v.lb, v.ub)
		}
	}
	n := VarIndex(len(m.vars))
	checkCoeffs := func(kind string, row int, coeffs []varCoeff) error {
		for _, vc := range coeffs {
			if vc.ind < 0 || vc.ind >= n {
				return fmt.Errorf("%s %d references variable %d outside this model", kind, row, vc.ind)
			}
			if math.IsNaN(vc.coeff) || math.IsInf(vc.coeff, 0) {
				return fmt.Errorf("%s %d has a non-finite coefficient on variable %d", kind, row, vc.ind)
			}
		}
		return nil
	}
	for i, ct := range m.constrs {
		if math.IsNaN(ct.lb) || math.IsNaN(ct.ub) {
			return fmt.Errorf("constraint %d has NaN bounds", i)
		}
		if err := checkCoeffs("constraint", i, ct.coeffs); err != nil {
			return err
		}
	}
	if err := checkCoeffs("objective", 0, m.objective); err != nil {
		return err
	}
	return nil
}
