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

package sim

import (
	"context"

	"github.com/ohagen/airland/alp"
	"github.com/ohagen/airland/mip"
)

// Planner turns the tower's current view of the airborne fleet into a
// landing schedule. Implementations must treat a no-values status (for
// example infeasibility) as a normal schedule result, not an error.
type Planner interface {
	Plan(ctx context.Context, inst *alp.Instance) (*alp.Schedule, error)
	Name() string
}

// SequencingPlanner plans with the disjunctive formulation on the given
// backend. The zero value is not usable; Solver must be set.
type SequencingPlanner struct {
	Solver  mip.Solver
	Options alp.SequencingOptions
}

func (p *SequencingPlanner) Plan(ctx context.Context, inst *alp.Instance) (*alp.Schedule, error) {
	return alp.SolveSequencing(ctx, inst, p.Options, p.Solver)
}

func (p *SequencingPlanner) Name() string {
	return "sequencing/" + p.Solver.Name()
}
