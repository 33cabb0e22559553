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

// PackingOptions configures the set-partitioning builder.
type PackingOptions struct {
	// CheckTriangle rejects processing matrices that violate the triangle
	// inequality before building. Off by default: such matrices still
	// build, but pairwise separation may leave a third plane
	// under-separated.
	CheckTriangle bool
}

// PackingModel is a built set-partitioning model. Every column is one
// (plane, delay) choice; the first P coverage rows are the per-plane
// partition rows and the remaining Horizon*PairKinds rows track which
// pair-type resource cells the choice occupies.
type PackingModel struct {
	Model *mip.Model

	// Coverage is the full 0/1 matrix of shape (P + Horizon*PairKinds) x
	// column count, including resource rows no column touches.
	Coverage *mat.Dense

	// Costs holds the quadratic delay penalty of each column.
	Costs []float64

	// Horizon is the slot count N = max ideal + max delay + max processing
	// time.
	Horizon int

	// PairKinds is the number of unordered class pairs, C*(C+1)/2.
	PairKinds int

	inst     *Instance
	vars     []mip.Var
	colPlane []int
	colDelay []int // delay slot in 1..maxDelay; actual delay is one less
}

// pairKind collapses an unordered pair of 0-based class labels into a
// single index in [0, C*(C+1)/2).
func pairKind(i, j int) int {
	if i < j {
		i, j = j, i
	}
	return i*(i+1)/2 + j
}

// BuildPacking validates inst against the packing preconditions and
// assembles the set-partitioning model. Each plane contributes one binary
// column per delay slot d in 1..maxDelay, landing at slot ideal+d-1 with
// cost (d-1)^2 * cost. A column occupies, for every class cl, the
// pair-type resource cells of (class, cl) across its processing window;
// resource rows keep occupants to at most one, partition rows make every
// plane pick exactly one column. Building the same instance twice yields
// byte-identical models.
func BuildPacking(inst *Instance, opts PackingOptions) (*PackingModel, error) {
	if err := inst.ValidatePacking(); err != nil {
		return nil, err
	}
	if opts.CheckTriangle {
		if err := CheckTriangle(inst.Proc); err != nil {
			return nil, err
		}
	}

	p := inst.NumPlanes()
	c := inst.NumClasses()
	horizon := int(maxOf(inst.Ideal)) + int(maxOf(inst.MaxDelay)) + int(matrixMax(inst.Proc))
	kinds := c * (c + 1) / 2
	resourceRows := horizon * kinds
	totalCols := int(sumOf(inst.MaxDelay))

	pm := &PackingModel{
		Model:     mip.NewModel("packing"),
		Coverage:  mat.NewDense(p+resourceRows, totalCols, nil),
		Costs:     make([]float64, 0, totalCols),
		Horizon:   horizon,
		PairKinds: kinds,
		inst:      inst,
		vars:      make([]mip.Var, 0, totalCols),
		colPlane:  make([]int, 0, totalCols),
		colDelay:  make([]int, 0, totalCols),
	}
	m := pm.Model

	// Columns are laid out plane-major, delay slots ascending, with one
	// running counter so column indices, variable order and coverage
	// order all agree.
	rowCols := make([][]int, resourceRows)
	col := 0
	for pl := 0; pl < p; pl++ {
		s := inst.Class[pl] - 1
		release := int(inst.Ideal[pl])
		for d := 1; d <= int(inst.MaxDelay[pl]); d++ {
			v := m.NewBoolVar().WithName(fmt.Sprintf("x_%d_%d", pl, d))
			pm.vars = append(pm.vars, v)
			pm.colPlane = append(pm.colPlane, pl)
			pm.colDelay = append(pm.colDelay, d)
			pm.Costs = append(pm.Costs, float64(d-1)*float64(d-1)*inst.Cost[pl])

			pm.Coverage.Set(pl, col, 1)
			start := release + d - 1
			for cl := 0; cl < c; cl++ {
				kind := pairKind(s, cl)
				for k := 0; k < int(inst.Proc[s][cl]); k++ {
					row := (start+k)*kinds + kind
					pm.Coverage.Set(p+row, col, 1)
					rowCols[row] = append(rowCols[row], col)
				}
			}
			col++
		}
	}

	for pl := 0; pl < p; pl++ {
		pick := mip.NewLinearExpr()
		for j, owner := range pm.colPlane {
			if owner == pl {
				pick.Add(pm.vars[j])
			}
		}
		m.AddEquality(pick, mip.NewConstant(1))
	}
	// Resource rows no column touches stay out of the model; they remain
	// in Coverage so its shape matches the closed-form row count.
	for row := 0; row < resourceRows; row++ {
		if len(rowCols[row]) == 0 {
			continue
		}
		cell := mip.NewLinearExpr()
		for _, j := range rowCols[row] {
			cell.Add(pm.vars[j])
		}
		m.AddLinearConstraint(cell, math.Inf(-1), 1)
	}

	obj := mip.NewLinearExpr()
	for j, v := range pm.vars {
		obj.AddTerm(v, pm.Costs[j])
	}
	m.Minimize(obj)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	log.V(1).Infof("packing model for %d planes: horizon %d, %d columns, %d constraints",
		p, horizon, totalCols, m.NumConstraints())
	return pm, nil
}

// NumColumns returns the number of (plane, delay) columns.
func (pm *PackingModel) NumColumns() int {
	return len(pm.vars)
}
