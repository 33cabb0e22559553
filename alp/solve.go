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

	"github.com/pkg/errors"

	"github.com/ohagen/airland/mip"
)

// SolveSequencing builds the disjunctive model for inst, solves it and
// decodes the result. A solver outcome without variable values, such as
// infeasibility, is a normal result: the returned schedule carries only
// the status. Errors are reserved for invalid input and solver failures.
func SolveSequencing(ctx context.Context, inst *Instance, opts SequencingOptions, solver mip.Solver) (*Schedule, error) {
	sm, err := BuildSequencing(inst, opts)
	if err != nil {
		return nil, err
	}
	sol, err := solver.Solve(ctx, sm.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "solve sequencing with %s", solver.Name())
	}
	if !sol.HasValues() {
		return &Schedule{Status: sol.Status}, nil
	}
	return sm.Decode(sol)
}

// SolvePacking builds the set-partitioning model for inst, solves it and
// decodes the result, with the same status conventions as
// SolveSequencing.
func SolvePacking(ctx context.Context, inst *Instance, opts PackingOptions, solver mip.Solver) (*Schedule, error) {
	pm, err := BuildPacking(inst, opts)
	if err != nil {
		return nil, err
	}
	sol, err := solver.Solve(ctx, pm.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "solve packing with %s", solver.Name())
	}
	if !sol.HasValues() {
		return &Schedule{Status: sol.Status}, nil
	}
	return pm.Decode(sol)
}
