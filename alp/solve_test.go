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
	"context"
	"math"
	"testing"

	"github.com/ohagen/airland/mip"
)

// fourPlaneFleet mixes costs, occupancies and an asymmetric set-up matrix.
// With 4 planes the optimum is checkable by trying all 24 landing orders.
func fourPlaneFleet() *Instance {
	return &Instance{
		Cost:      []float64{2, 1, 2, 4},
		Ideal:     []float64{1, 2, 2, 3},
		Occupancy: []float64{2, 0.5, 1, 2},
		MaxDelay:  []float64{20, 20, 20, 20},
		SetUp: [][]float64{
			{0, 1, 2, 1},
			{1, 0, 1.5, 1},
			{2, 1, 0, 1},
			{1, 2, 1, 0},
		},
	}
}

func TestSolveSequencingMatchesEnumeration(t *testing.T) {
	in := fourPlaneFleet()
	want, feasible := bestByEnumeration(in)
	if !feasible {
		t.Fatalf("bestByEnumeration() found no feasible order, the fixture is broken")
	}

	s, err := SolveSequencing(context.Background(), in, SequencingOptions{}, &mip.HiGHS{})
	if err != nil {
		t.Fatalf("SolveSequencing() returned %v, want nil", err)
	}
	if s.Status != mip.StatusOptimal {
		t.Fatalf("Status = %v, want %v", s.Status, mip.StatusOptimal)
	}
	if math.Abs(s.Objective-want) > scheduleTol {
		t.Errorf("Objective = %v, want %v from enumerating all orders", s.Objective, want)
	}
	cost := 0.0
	for i, d := range s.Delay {
		cost += in.Cost[i] * d
	}
	if math.Abs(cost-s.Objective) > scheduleTol {
		t.Errorf("sum of weighted delays is %v, want the objective %v", cost, s.Objective)
	}
	checkSequencingInvariants(t, in, s)
}

func TestSolveSequencingTighteningsKeepOptimum(t *testing.T) {
	in := fourPlaneFleet()
	want, _ := bestByEnumeration(in)
	opts := SequencingOptions{Cardinality: true, Transitivity: true, DelayUpperBound: true}
	s, err := SolveSequencing(context.Background(), in, opts, &mip.HiGHS{})
	if err != nil {
		t.Fatalf("SolveSequencing() returned %v, want nil", err)
	}
	if s.Status != mip.StatusOptimal {
		t.Fatalf("Status = %v, want %v", s.Status, mip.StatusOptimal)
	}
	if math.Abs(s.Objective-want) > scheduleTol {
		t.Errorf("Objective = %v, want %v: tightenings must not cut the optimum", s.Objective, want)
	}
	checkSequencingInvariants(t, in, s)
}

// crowdedFleet returns 15 planes whose set-up times dwarf the delay
// windows: any pair needs a 50 unit gap but no plane can arrive later
// than ideal time 10 plus delay 5, so no two planes fit.
func crowdedFleet() *Instance {
	const planes = 15
	in := &Instance{
		Cost:      make([]float64, planes),
		Ideal:     make([]float64, planes),
		Occupancy: make([]float64, planes),
		MaxDelay:  make([]float64, planes),
		SetUp:     make([][]float64, planes),
	}
	for p := 0; p < planes; p++ {
		in.Cost[p] = float64(1 + p%5)
		in.Ideal[p] = float64(p % 11)
		in.Occupancy[p] = float64(1 + p%3)
		in.MaxDelay[p] = 5
		in.SetUp[p] = make([]float64, planes)
		for q := 0; q < planes; q++ {
			if q != p {
				in.SetUp[p][q] = 50
			}
		}
	}
	return in
}

func TestSolveSequencingInfeasibleFleet(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts SequencingOptions
	}{
		{name: "plain", opts: SequencingOptions{}},
		{name: "with_cardinality", opts: SequencingOptions{Cardinality: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := SolveSequencing(context.Background(), crowdedFleet(), tc.opts, &mip.HiGHS{})
			if err != nil {
				t.Fatalf("SolveSequencing() returned %v, want infeasibility as a plain result", err)
			}
			if s.Status != mip.StatusInfeasible {
				t.Errorf("Status = %v, want %v", s.Status, mip.StatusInfeasible)
			}
			if s.Arrival != nil || s.Sequence != nil {
				t.Errorf("infeasible schedule carries values: %+v", s)
			}
		})
	}
}

func TestSolvePackingTwoClassFleet(t *testing.T) {
	in := twoClassFleet()
	s, err := SolvePacking(context.Background(), in, PackingOptions{}, &mip.HiGHS{})
	if err != nil {
		t.Fatalf("SolvePacking() returned %v, want nil", err)
	}
	if s.Status != mip.StatusOptimal {
		t.Fatalf("Status = %v, want %v", s.Status, mip.StatusOptimal)
	}
	// Landing plane 1 one slot late is the only conflict-free choice.
	if math.Abs(s.Objective-3) > scheduleTol {
		t.Errorf("Objective = %v, want 3", s.Objective)
	}
	if s.Delay[0] != 0 || s.Delay[1] != 1 {
		t.Errorf("Delay = %v, want [0 1]", s.Delay)
	}
}

func TestSolvePackingInfeasible(t *testing.T) {
	in := &Instance{
		Cost:      []float64{1, 1},
		Ideal:     []float64{0, 0},
		Occupancy: []float64{1, 1},
		MaxDelay:  []float64{1, 1},
		SetUp:     [][]float64{{0, 0}, {0, 0}},
		Class:     []int{1, 1},
		Proc:      [][]float64{{3}},
	}
	s, err := SolvePacking(context.Background(), in, PackingOptions{}, &mip.HiGHS{})
	if err != nil {
		t.Fatalf("SolvePacking() returned %v, want infeasibility as a plain result", err)
	}
	if s.Status != mip.StatusInfeasible {
		t.Errorf("Status = %v, want %v", s.Status, mip.StatusInfeasible)
	}
}
