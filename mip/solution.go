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
	"fmt"
)

// Status is the outcome a solver reports for a model. Infeasible and
// Unbounded are ordinary outcomes, not errors: callers branch on them.
type Status int8

const (
	// StatusUnknown means the solver stopped without classifying the model.
	StatusUnknown Status = iota
	// StatusOptimal means a provably optimal assignment was found.
	StatusOptimal
	// StatusFeasible means a feasible assignment was found but optimality was
	// not proven.
	StatusFeasible
	// StatusInfeasible means the model has no feasible assignment.
	StatusInfeasible
	// StatusUnbounded means the objective can be improved without limit.
	StatusUnbounded
	// StatusTimeLimit means the solver hit its time limit before finishing.
	StatusTimeLimit
	// StatusInvalid means the model failed validation before solving.
	StatusInvalid
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusOptimal:
		return "Optimal"
	case StatusFeasible:
		return "Feasible"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusTimeLimit:
		return "TimeLimit"
	case StatusInvalid:
		return "Invalid"
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// HasValues reports whether the status comes with a variable assignment.
func (s Status) HasValues() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Solution holds a solver's answer for one model.
type Solution struct {
	// Status classifies the outcome.
	Status Status
	// Objective is the objective value of the assignment. Only meaningful
	// when Status.HasValues() is true.
	Objective float64
	// Raw is the backend's own status line, kept for diagnostics.
	Raw string

	values []float64
}

// NewSolution builds a solution with values indexed by VarIndex. It is the
// constructor Solver implementations use to report a value-carrying outcome.
func NewSolution(status Status, objective float64, values []float64) *Solution {
	return &Solution{Status: status, Objective: objective, values: values}
}

// HasValues reports whether the solution carries a variable assignment.
func (s *Solution) HasValues() bool {
	return s.Status.HasValues() && s.values != nil
}

// Value returns the value of the linear argument under the solution's
// assignment. It must only be called when HasValues is true.
func (s *Solution) Value(la LinearArgument) float64 {
	return la.evaluateSolutionValue(s)
}

// BoolValue returns the value of the variable rounded to a boolean. Solvers
// report binaries as floats near 0 or 1; anything above one half counts as
// true.
func (s *Solution) BoolValue(v Var) bool {
	return s.values[v.ind] > 0.5
}

// Values returns a copy of the assignment indexed by VarIndex.
func (s *Solution) Values() []float64 {
	if s.values == nil {
		return nil
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Solver hands a finished model to an external optimizer and reports the
// outcome. Implementations must treat the model as read-only. A non-nil
// error means the solve could not run or was interrupted; solver-classified
// outcomes such as infeasibility travel in the Solution, not the error.
type Solver interface {
	Solve(ctx context.Context, m *Model) (*Solution, error)
	Name() string
}
