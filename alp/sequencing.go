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

package alp

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/ohagen/airland/mip"
	"gonum.org/v1/gonum/mat"
)

// SequencingOptions switches on the optional valid inequalities of the
// disjunctive formulation. All of them shrink the search space without
// cutting the optimum on plain instances; none is required for
// correctness.
type SequencingOptions struct {
	// Cardinality adds one row fixing the number of "lands before" pairs
	// to P*(P-1)/2, the pair count of a strict total order.
	Cardinality bool

	// Transitivity adds A[p][q] + A[q][r] <= 1 + A[p][r] for every ordered
	// triple of distinct planes. Without these rows the ordering binaries
	// are only pairwise consistent.
	Transitivity bool

	// DelayUpperBound caps each delay at (sum of occupancies minus the
	// plane's own) plus (P-1) times the largest set-up time. The cap
	// assumes no precedence links and ideal times close enough that a
	// plane never waits past that worst case.
	DelayUpperBound bool
}

// SequencingModel is a built disjunctive model together with the variable
// handles its decoder needs. Model is ready to hand to a mip.Solver or to
// mip.ExportLP.
type SequencingModel struct {
	Model *mip.Model

	inst    *Instance
	bigM    *mat.Dense
	arrival []mip.Var
	finish  []mip.Var
	delay   []mip.Var
	lag     [][]mip.Var // full P x P, lag[p][q] = finish[p] - arrival[q]
	window  [][]mip.Var // off-diagonal
	gap     [][]mip.Var // off-diagonal
	order   [][]mip.Var // off-diagonal, order[p][q] = 1 when p lands first
}

// BuildSequencing validates inst and assembles the disjunctive model. For
// every unordered pair one binary picks the landing order; a window
// variable is pinned to the larger of the two arrival-to-finish lags via
// big-M rows, and the gap left after both occupancies must cover the
// set-up time of the chosen direction. Building the same instance twice
// yields byte-identical models.
func BuildSequencing(inst *Instance, opts SequencingOptions) (*SequencingModel, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	p := inst.NumPlanes()
	inf := math.Inf(1)

	sm := &SequencingModel{
		Model:   mip.NewModel("sequencing"),
		inst:    inst,
		bigM:    BigM(inst.Ideal, inst.Occupancy, inst.MaxDelay),
		arrival: make([]mip.Var, p),
		finish:  make([]mip.Var, p),
		delay:   make([]mip.Var, p),
		lag:     varMatrix(p),
		window:  varMatrix(p),
		gap:     varMatrix(p),
		order:   varMatrix(p),
	}
	m := sm.Model

	for i := 0; i < p; i++ {
		sm.arrival[i] = m.NewNumVar(inst.Ideal[i], inst.Ideal[i]+inst.MaxDelay[i]).WithName(seqName("a", i))
	}
	for i := 0; i < p; i++ {
		lo := inst.Ideal[i] + inst.Occupancy[i]
		sm.finish[i] = m.NewNumVar(lo, lo+inst.MaxDelay[i]).WithName(seqName("e", i))
	}
	for i := 0; i < p; i++ {
		sm.delay[i] = m.NewNumVar(0, inst.MaxDelay[i]).WithName(seqName("d", i))
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			lo := inst.Ideal[i] + inst.Occupancy[i] - inst.Ideal[j] - inst.MaxDelay[j]
			hi := inst.Ideal[i] + inst.Occupancy[i] + inst.MaxDelay[i] - inst.Ideal[j]
			sm.lag[i][j] = m.NewNumVar(lo, hi).WithName(pairName("L", i, j))
		}
	}
	forEachPair(p, func(i, j int) {
		sm.window[i][j] = m.NewNumVar(0, inf).WithName(pairName("W", i, j))
	})
	forEachPair(p, func(i, j int) {
		sm.gap[i][j] = m.NewNumVar(0, inf).WithName(pairName("G", i, j))
	})
	forEachPair(p, func(i, j int) {
		sm.order[i][j] = m.NewBoolVar().WithName(pairName("A", i, j))
	})

	// a_p = t_p + d_p and e_p = a_p + l_p.
	for i := 0; i < p; i++ {
		m.AddEquality(sm.arrival[i], mip.NewLinearExpr().Add(sm.delay[i]).AddConstant(inst.Ideal[i]))
	}
	for i := 0; i < p; i++ {
		m.AddEquality(sm.finish[i], mip.NewLinearExpr().Add(sm.arrival[i]).AddConstant(inst.Occupancy[i]))
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			m.AddEquality(sm.lag[i][j], mip.NewLinearExpr().Add(sm.finish[i]).AddTerm(sm.arrival[j], -1))
		}
	}

	// Exactly one direction per unordered pair.
	forEachUnordered(p, func(i, j int) {
		m.AddEquality(mip.NewLinearExpr().Add(sm.order[i][j]).Add(sm.order[j][i]), mip.NewConstant(1))
	})

	// The window is the larger lag of the pair. Two rows bound it from
	// below; the big-M pair forces it down onto the lag of the direction
	// the order binary selects.
	forEachPair(p, func(i, j int) {
		bigM := sm.bigM.At(i, j)
		w := sm.window[i][j]
		m.AddGreaterOrEqual(w, sm.lag[i][j])
		m.AddGreaterOrEqual(w, sm.lag[j][i])
		m.AddLessOrEqual(w, mip.NewLinearExpr().Add(sm.lag[i][j]).AddTerm(sm.order[i][j], bigM))
		m.AddLessOrEqual(w, mip.NewLinearExpr().Add(sm.lag[j][i]).AddTerm(sm.order[i][j], -bigM).AddConstant(bigM))
	})

	// Stripping both occupancies from the window leaves the idle gap,
	// which must cover the set-up time when i lands first.
	forEachPair(p, func(i, j int) {
		occ := inst.Occupancy[i] + inst.Occupancy[j]
		m.AddEquality(mip.NewLinearExpr().Add(sm.gap[i][j]).AddConstant(occ), sm.window[i][j])
		m.AddGreaterOrEqual(sm.gap[i][j], mip.NewLinearExpr().AddTerm(sm.order[i][j], inst.SetUp[i][j]))
	})

	for i, q := range inst.Pred {
		if q >= 0 {
			m.AddEquality(sm.order[q][i], mip.NewConstant(1))
		}
	}

	if opts.DelayUpperBound {
		occSum := sumOf(inst.Occupancy)
		maxSetUp := matrixMax(inst.SetUp)
		for i := 0; i < p; i++ {
			bound := occSum - inst.Occupancy[i] + float64(p-1)*maxSetUp
			m.AddLessOrEqual(sm.delay[i], mip.NewConstant(bound))
		}
	}
	if opts.Cardinality {
		sum := mip.NewLinearExpr()
		forEachPair(p, func(i, j int) { sum.Add(sm.order[i][j]) })
		m.AddEquality(sum, mip.NewConstant(float64(p*(p-1)/2)))
	}
	if opts.Transitivity {
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				if j == i {
					continue
				}
				for k := 0; k < p; k++ {
					if k == i || k == j {
						continue
					}
					chain := mip.NewLinearExpr().Add(sm.order[i][j]).Add(sm.order[j][k]).AddTerm(sm.order[i][k], -1)
					m.AddLinearConstraint(chain, math.Inf(-1), 1)
				}
			}
		}
	}

	obj := mip.NewLinearExpr()
	for i := 0; i < p; i++ {
		obj.AddTerm(sm.delay[i], inst.Cost[i])
	}
	m.Minimize(obj)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	log.V(1).Infof("sequencing model for %d planes: %d variables, %d constraints",
		p, m.NumVars(), m.NumConstraints())
	return sm, nil
}

func varMatrix(p int) [][]mip.Var {
	m := make([][]mip.Var, p)
	for i := range m {
		m[i] = make([]mip.Var, p)
	}
	return m
}

// forEachPair visits every ordered pair of distinct indices, row-major.
func forEachPair(p int, f func(i, j int)) {
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if j != i {
				f(i, j)
			}
		}
	}
}

// forEachUnordered visits every pair once, with i < j.
func forEachUnordered(p int, f func(i, j int)) {
	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			f(i, j)
		}
	}
}

func seqName(prefix string, i int) string {
	return fmt.Sprintf("%s_%d", prefix, i)
}

func pairName(prefix string, i, j int) string {
	return fmt.Sprintf("%s_%d_%d", prefix, i, j)
}
