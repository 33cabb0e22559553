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
	"sort"

	"github.com/pkg/errors"

	"github.com/ohagen/airland/mip"
)

// Schedule is a decoded landing plan. When Status carries no variable
// values (infeasible, unbounded, unknown) only Status is set and the
// slices are nil.
type Schedule struct {
	Status    mip.Status
	Objective float64

	// Arrival, Finish and Delay are indexed by plane.
	Arrival []float64
	Finish  []float64
	Delay   []float64

	// Order[p][q] reports whether p lands before q. Sequence lists the
	// planes by arrival time, earliest first, index order on ties.
	Order    [][]bool
	Sequence []int
}

// Decode extracts the landing plan from a value-carrying solution of this
// model.
func (sm *SequencingModel) Decode(sol *mip.Solution) (*Schedule, error) {
	if !sol.HasValues() {
		return nil, errors.Errorf("cannot decode a solution without values (status %s)", sol.Status)
	}
	p := sm.inst.NumPlanes()
	s := &Schedule{
		Status:    sol.Status,
		Objective: sol.Objective,
		Arrival:   make([]float64, p),
		Finish:    make([]float64, p),
		Delay:     make([]float64, p),
		Order:     boolMatrix(p),
	}
	for i := 0; i < p; i++ {
		s.Arrival[i] = sol.Value(sm.arrival[i])
		s.Finish[i] = sol.Value(sm.finish[i])
		s.Delay[i] = sol.Value(sm.delay[i])
	}
	forEachPair(p, func(i, j int) {
		s.Order[i][j] = sol.BoolValue(sm.order[i][j])
	})
	s.Sequence = sequenceByArrival(s.Arrival)
	return s, nil
}

// Decode extracts the landing plan from a value-carrying solution of this
// model. Exactly one delay column must be selected per plane; the decoded
// order follows arrival slots, index order on ties.
func (pm *PackingModel) Decode(sol *mip.Solution) (*Schedule, error) {
	if !sol.HasValues() {
		return nil, errors.Errorf("cannot decode a solution without values (status %s)", sol.Status)
	}
	p := pm.inst.NumPlanes()
	chosen := make([]int, p)
	for i := range chosen {
		chosen[i] = -1
	}
	for j, v := range pm.vars {
		if !sol.BoolValue(v) {
			continue
		}
		pl := pm.colPlane[j]
		if chosen[pl] >= 0 {
			return nil, errors.Errorf("plane %d selected more than one delay column", pl)
		}
		chosen[pl] = pm.colDelay[j]
	}
	s := &Schedule{
		Status:    sol.Status,
		Objective: sol.Objective,
		Arrival:   make([]float64, p),
		Finish:    make([]float64, p),
		Delay:     make([]float64, p),
		Order:     boolMatrix(p),
	}
	for i := 0; i < p; i++ {
		if chosen[i] < 0 {
			return nil, errors.Errorf("plane %d selected no delay column", i)
		}
		s.Delay[i] = float64(chosen[i] - 1)
		s.Arrival[i] = pm.inst.Ideal[i] + s.Delay[i]
		s.Finish[i] = s.Arrival[i] + pm.inst.Occupancy[i]
	}
	forEachPair(p, func(i, j int) {
		s.Order[i][j] = s.Arrival[i] < s.Arrival[j] || (s.Arrival[i] == s.Arrival[j] && i < j)
	})
	s.Sequence = sequenceByArrival(s.Arrival)
	return s, nil
}

// sequenceByArrival returns plane indices sorted by arrival time, keeping
// index order on equal arrivals.
func sequenceByArrival(arrival []float64) []int {
	seq := make([]int, len(arrival))
	for i := range seq {
		seq[i] = i
	}
	sort.SliceStable(seq, func(a, b int) bool {
		return arrival[seq[a]] < arrival[seq[b]]
	})
	return seq
}

func boolMatrix(p int) [][]bool {
	m := make([][]bool, p)
	for i := range m {
		m[i] = make([]bool, p)
	}
	return m
}
