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
	"math/rand"

	"github.com/pkg/errors"
)

// GenerateParams bounds the random draws of Generate. All ranges are
// inclusive. The same params always yield the same instance.
type GenerateParams struct {
	Planes  int   `json:"planes"`
	Classes int   `json:"classes"`
	Seed    int64 `json:"seed"`

	// IdealMax bounds the ideal arrival times, drawn from [0, IdealMax]
	// and then shifted so the earliest is exactly 0.
	IdealMax int `json:"ideal_max"`

	OccupancyMin int `json:"occupancy_min"`
	OccupancyMax int `json:"occupancy_max"`
	CostMin      int `json:"cost_min"`
	CostMax      int `json:"cost_max"`
	MaxDelayMin  int `json:"max_delay_min"`
	MaxDelayMax  int `json:"max_delay_max"`

	// ProcMin and ProcMax bound the class-pair processing times. The
	// set-up matrix is derived from them, so they also bound separations.
	ProcMin int `json:"proc_min"`
	ProcMax int `json:"proc_max"`
}

// DefaultGenerateParams returns a small mixed-fleet setting that both
// formulations accept.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		Planes:       8,
		Classes:      3,
		Seed:         1,
		IdealMax:     10,
		OccupancyMin: 1,
		OccupancyMax: 3,
		CostMin:      1,
		CostMax:      5,
		MaxDelayMin:  10,
		MaxDelayMax:  20,
		ProcMin:      1,
		ProcMax:      3,
	}
}

// Generate draws a random instance from p. Planes get a class label, the
// class-pair processing matrix is drawn once, and each pairwise set-up
// time is the processing time of the two planes' classes with the
// diagonal zeroed. All values are integral and the earliest ideal time is
// 0, so generated instances satisfy the packing preconditions as well.
func Generate(p GenerateParams) (*Instance, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))

	inst := &Instance{
		Names:     make([]string, p.Planes),
		Cost:      make([]float64, p.Planes),
		Ideal:     make([]float64, p.Planes),
		Occupancy: make([]float64, p.Planes),
		MaxDelay:  make([]float64, p.Planes),
		SetUp:     make([][]float64, p.Planes),
		Class:     make([]int, p.Planes),
		Proc:      make([][]float64, p.Classes),
	}
	for i := range inst.Ideal {
		inst.Ideal[i] = float64(rng.Intn(p.IdealMax + 1))
	}
	if m := minOf(inst.Ideal); m > 0 {
		for i := range inst.Ideal {
			inst.Ideal[i] -= m
		}
	}
	for i := range inst.Occupancy {
		inst.Occupancy[i] = float64(drawIn(rng, p.OccupancyMin, p.OccupancyMax))
	}
	for i := range inst.Cost {
		inst.Cost[i] = float64(drawIn(rng, p.CostMin, p.CostMax))
	}
	for i := range inst.MaxDelay {
		inst.MaxDelay[i] = float64(drawIn(rng, p.MaxDelayMin, p.MaxDelayMax))
	}
	for i := range inst.Class {
		inst.Class[i] = 1 + rng.Intn(p.Classes)
	}
	for i := range inst.Proc {
		inst.Proc[i] = make([]float64, p.Classes)
		for j := range inst.Proc[i] {
			inst.Proc[i][j] = float64(drawIn(rng, p.ProcMin, p.ProcMax))
		}
	}
	for i := range inst.SetUp {
		inst.SetUp[i] = make([]float64, p.Planes)
		for j := range inst.SetUp[i] {
			if j != i {
				inst.SetUp[i][j] = inst.Proc[inst.Class[i]-1][inst.Class[j]-1]
			}
		}
	}
	for i := range inst.Names {
		inst.Names[i] = letterName(i)
	}
	return inst, nil
}

func (p GenerateParams) check() error {
	switch {
	case p.Planes < 1:
		return errors.Errorf("planes must be at least 1, got %d", p.Planes)
	case p.Classes < 1:
		return errors.Errorf("classes must be at least 1, got %d", p.Classes)
	case p.IdealMax < 0:
		return errors.Errorf("ideal_max must not be negative, got %d", p.IdealMax)
	case p.OccupancyMin < 0 || p.OccupancyMax < p.OccupancyMin:
		return errors.Errorf("occupancy range [%d, %d] is not a non-negative interval", p.OccupancyMin, p.OccupancyMax)
	case p.CostMin < 0 || p.CostMax < p.CostMin:
		return errors.Errorf("cost range [%d, %d] is not a non-negative interval", p.CostMin, p.CostMax)
	case p.MaxDelayMin < 1 || p.MaxDelayMax < p.MaxDelayMin:
		return errors.Errorf("max_delay range [%d, %d] must start at 1 or above", p.MaxDelayMin, p.MaxDelayMax)
	case p.ProcMin < 0 || p.ProcMax < p.ProcMin:
		return errors.Errorf("proc range [%d, %d] is not a non-negative interval", p.ProcMin, p.ProcMax)
	}
	return nil
}

func drawIn(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

// letterName spells plane i as A..Z, then AA, AB and so on.
func letterName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
