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
	"math"
	"testing"
)

const scheduleTol = 1e-6

// checkSequencingInvariants verifies the structural facts every feasible
// landing plan must satisfy: arrivals split into ideal time plus a delay
// within bounds, occupancy runs from arrival to finish, each pair is
// ordered exactly one way, the order relation is transitive, and every
// ordered pair keeps occupancy plus set-up clearance.
func checkSequencingInvariants(t *testing.T, inst *Instance, s *Schedule) {
	t.Helper()
	p := inst.NumPlanes()
	for i := 0; i < p; i++ {
		if math.Abs(s.Arrival[i]-inst.Ideal[i]-s.Delay[i]) > scheduleTol {
			t.Errorf("plane %d: arrival %v, want ideal %v plus delay %v", i, s.Arrival[i], inst.Ideal[i], s.Delay[i])
		}
		if s.Delay[i] < -scheduleTol || s.Delay[i] > inst.MaxDelay[i]+scheduleTol {
			t.Errorf("plane %d: delay %v outside [0, %v]", i, s.Delay[i], inst.MaxDelay[i])
		}
		if math.Abs(s.Finish[i]-s.Arrival[i]-inst.Occupancy[i]) > scheduleTol {
			t.Errorf("plane %d: finish %v, want arrival %v plus occupancy %v", i, s.Finish[i], s.Arrival[i], inst.Occupancy[i])
		}
	}
	pairs := 0
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			if j == i {
				continue
			}
			if i < j && s.Order[i][j] == s.Order[j][i] {
				t.Errorf("planes %d,%d: order is %v both ways, want exactly one direction", i, j, s.Order[i][j])
			}
			if !s.Order[i][j] {
				continue
			}
			pairs++
			if need := s.Arrival[i] + inst.Occupancy[i] + inst.SetUp[i][j]; s.Arrival[j] < need-scheduleTol {
				t.Errorf("planes %d,%d: %d arrives at %v, want at least %v for occupancy and set-up", i, j, j, s.Arrival[j], need)
			}
		}
	}
	if want := p * (p - 1) / 2; pairs != want {
		t.Errorf("order relation has %d pairs, want %d", pairs, want)
	}
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			for k := 0; k < p; k++ {
				if i != j && j != k && i != k && s.Order[i][j] && s.Order[j][k] && !s.Order[i][k] {
					t.Errorf("order relation is not transitive at (%d, %d, %d)", i, j, k)
				}
			}
		}
	}
}

// orderCost left-shifts every plane onto its earliest feasible arrival for
// one fixed landing order and returns the total delay cost, or false when
// some plane overshoots its delay window.
func orderCost(inst *Instance, order []int) (float64, bool) {
	arrival := make([]float64, inst.NumPlanes())
	for k, j := range order {
		a := inst.Ideal[j]
		for m := 0; m < k; m++ {
			i := order[m]
			if lo := arrival[i] + inst.Occupancy[i] + inst.SetUp[i][j]; lo > a {
				a = lo
			}
		}
		if a > inst.Ideal[j]+inst.MaxDelay[j]+scheduleTol {
			return 0, false
		}
		arrival[j] = a
	}
	cost := 0.0
	for i, a := range arrival {
		cost += inst.Cost[i] * (a - inst.Ideal[i])
	}
	return cost, true
}

// bestByEnumeration tries every landing order and returns the cheapest
// feasible cost. The second result reports whether any order fits.
func bestByEnumeration(inst *Instance) (float64, bool) {
	best := math.Inf(1)
	found := false
	permutations(inst.NumPlanes(), func(order []int) {
		if cost, ok := orderCost(inst, order); ok && cost < best {
			best = cost
			found = true
		}
	})
	return best, found
}

func permutations(n int, visit func(order []int)) {
	order := make([]int, n)
	used := make([]bool, n)
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			visit(order)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			order[k] = i
			rec(k + 1)
			used[i] = false
		}
	}
	rec(0)
}
