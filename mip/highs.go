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
	"strings"
	"time"

	log "github.com/golang/glog"
	"github.com/lanl/highs"
	"github.com/pkg/errors"
)

// HiGHS solves models with the HiGHS optimizer through the lanl/highs
// bindings. The zero value is ready to use.
//
// Cancellation: the bindings expose no interrupt hook, so when the context
// ends first the call returns ctx.Err() and the in-flight solve is abandoned;
// it keeps running in the background and its result is discarded.
type HiGHS struct{}

// Name returns the backend name.
func (HiGHS) Name() string { return "highs" }

// Solve translates the model into a HiGHS model, runs the optimizer, and
// classifies the outcome. Infeasible and unbounded models come back as
// ordinary solutions, not errors.
func (h HiGHS) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return &Solution{Status: StatusInvalid}, errors.Wrap(err, "model validation")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nv := m.NumVars()
	hm := new(highs.Model)
	hm.ColCosts = make([]float64, nv)
	hm.ColLower = make([]float64, nv)
	hm.ColUpper = make([]float64, nv)
	hm.VarTypes = make([]highs.VariableType, nv)
	for i, v := range m.vars {
		hm.ColLower[i] = v.lb
		hm.ColUpper[i] = v.ub
		if v.vtype != ContinuousVar {
			hm.VarTypes[i] = highs.IntegerType
		}
	}
	sign := 1.0
	if m.maximize {
		sign = -1.0
	}
	for _, vc := range m.objective {
		hm.ColCosts[vc.ind] = sign * vc.coeff
	}

	nr := m.NumConstraints()
	hm.RowLower = make([]float64, nr)
	hm.RowUpper = make([]float64, nr)
	for ri, ct := range m.constrs {
		hm.RowLower[ri] = ct.lb
		hm.RowUpper[ri] = ct.ub
		for _, vc := range ct.coeffs {
			hm.ConstMatrix = append(hm.ConstMatrix, highs.Nonzero{Row: ri, Col: int(vc.ind), Val: vc.coeff})
		}
	}

	log.V(1).Infof("highs: solving %q with %d variables, %d rows", m.name, nv, nr)
	start := time.Now()

	done := make(chan struct{})
	var (
		solveErr  error
		status    Status
		raw       string
		objective float64
		values    []float64
	)
	go func() {
		defer close(done)
		sol, err := hm.Solve()
		if err != nil {
			solveErr = err
			return
		}
		raw = sol.Status.String()
		if sol.Status == highs.Optimal {
			status = StatusOptimal
		} else {
			status = classifyStatus(raw)
		}
		if status.HasValues() {
			objective = sign*sol.Objective + m.objOffset
			values = make([]float64, nv)
			copy(values, sol.ColumnPrimal)
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}
	if solveErr != nil {
		return nil, errors.Wrapf(solveErr, "highs solve of %q", m.name)
	}

	log.V(1).Infof("highs: %q finished in %v with status %s (%s)", m.name, time.Since(start), status, raw)
	sol := NewSolution(status, objective, values)
	sol.Raw = raw
	return sol, nil
}

// classifyStatus maps a backend status line onto the Status vocabulary.
func classifyStatus(raw string) Status {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "infeasible") && strings.Contains(s, "unbounded"):
		return StatusUnknown
	case strings.Contains(s, "infeasible"):
		return StatusInfeasible
	case strings.Contains(s, "unbounded"):
		return StatusUnbounded
	case strings.Contains(s, "time limit"):
		return StatusTimeLimit
	case strings.Contains(s, "optimal"):
		return StatusOptimal
	case strings.Contains(s, "feasible"):
		return StatusFeasible
	}
	return StatusUnknown
}
