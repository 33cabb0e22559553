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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ohagen/airland/alp"
	"github.com/ohagen/airland/mip"
	"github.com/ohagen/airland/timeline"
)

var (
	flagInput   string
	flagORLib   string
	flagModel   string
	flagSolver  string
	flagTimeout time.Duration
	flagLP      string

	flagCardinality   bool
	flagTransitivity  bool
	flagDelayBound    bool
	flagCheckTriangle bool
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one landing problem and print the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := loadInstance()
			if err != nil {
				return err
			}
			solver, err := pickSolver(flagSolver)
			if err != nil {
				return err
			}
			ctx := context.Background()
			if flagTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, flagTimeout)
				defer cancel()
			}
			switch flagModel {
			case "seq":
				return solveSequencing(ctx, inst, solver)
			case "pack":
				return solvePacking(ctx, inst, solver)
			}
			return errors.Errorf("unknown model %q, want seq or pack", flagModel)
		},
	}

	cmd.Flags().StringVarP(&flagInput, "input", "i", "", "Instance JSON file")
	cmd.Flags().StringVar(&flagORLib, "orlib", "", "Instance in the OR-Library airland format")
	cmd.Flags().StringVar(&flagModel, "model", "seq", "Formulation: seq (disjunctive) or pack (slot packing)")
	cmd.Flags().StringVar(&flagSolver, "solver", "highs", "Backend: highs or relax")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Wall-clock limit for the solve, 0 for none")
	cmd.Flags().StringVar(&flagLP, "lp", "", "Also write the model to this file in CPLEX LP format")
	cmd.Flags().BoolVar(&flagCardinality, "cardinality", false, "Add the order-count tightening row")
	cmd.Flags().BoolVar(&flagTransitivity, "transitivity", false, "Add order-transitivity rows for every index triple")
	cmd.Flags().BoolVar(&flagDelayBound, "delay-bound", false, "Cap each delay by the worst dense-sequence wait")
	cmd.Flags().BoolVar(&flagCheckTriangle, "check-triangle", false, "Reject class separations that violate the triangle inequality")

	return cmd
}

func loadInstance() (*alp.Instance, error) {
	switch {
	case flagInput != "" && flagORLib != "":
		return nil, errors.New("give either --input or --orlib, not both")
	case flagInput != "":
		return alp.ReadInstanceFile(flagInput)
	case flagORLib != "":
		return alp.ReadORLibraryFile(flagORLib)
	}
	return nil, errors.New("an instance file is required (--input or --orlib)")
}

func pickSolver(name string) (mip.Solver, error) {
	switch name {
	case "highs":
		return mip.HiGHS{}, nil
	case "relax":
		return mip.Relaxation{}, nil
	}
	return nil, errors.Errorf("unknown solver %q, want highs or relax", name)
}

func solveSequencing(ctx context.Context, inst *alp.Instance, solver mip.Solver) error {
	opts := alp.SequencingOptions{
		Cardinality:     flagCardinality,
		Transitivity:    flagTransitivity,
		DelayUpperBound: flagDelayBound,
	}
	sm, err := alp.BuildSequencing(inst, opts)
	if err != nil {
		return err
	}
	return solveAndPrint(ctx, inst, sm.Model, solver, sm.Decode)
}

func solvePacking(ctx context.Context, inst *alp.Instance, solver mip.Solver) error {
	pm, err := alp.BuildPacking(inst, alp.PackingOptions{CheckTriangle: flagCheckTriangle})
	if err != nil {
		return err
	}
	return solveAndPrint(ctx, inst, pm.Model, solver, pm.Decode)
}

func solveAndPrint(ctx context.Context, inst *alp.Instance, m *mip.Model, solver mip.Solver, decode func(*mip.Solution) (*alp.Schedule, error)) error {
	if err := exportLP(m); err != nil {
		return err
	}
	fmt.Printf("%s %d planes, %d variables, %d constraints\n",
		dim("model:"), inst.NumPlanes(), m.NumVars(), m.NumConstraints())

	sol, err := solver.Solve(ctx, m)
	if err != nil {
		return errors.Wrapf(err, "solve with %s", solver.Name())
	}
	if !sol.HasValues() {
		fmt.Printf("%s %s\n", red("status:"), sol.Status)
		return nil
	}
	s, err := decode(sol)
	if err != nil {
		return err
	}
	printSchedule(inst, s)
	return nil
}

func exportLP(m *mip.Model) error {
	if flagLP == "" {
		return nil
	}
	f, err := os.Create(flagLP)
	if err != nil {
		return errors.Wrap(err, "create LP file")
	}
	if err := m.WriteLP(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", flagLP)
}

func printSchedule(inst *alp.Instance, s *alp.Schedule) {
	fmt.Printf("%s %s\n", green("status:"), s.Status)
	fmt.Printf("%s %v\n", bold("delay cost:"), s.Objective)

	names := make([]string, inst.NumPlanes())
	width := 0
	for i := range names {
		names[i] = inst.Name(i)
		if len(names[i]) > width {
			width = len(names[i])
		}
	}
	for _, p := range s.Sequence {
		late := ""
		if s.Delay[p] > 0 {
			late = yellow(fmt.Sprintf("  +%v late", s.Delay[p]))
		}
		fmt.Printf("  %-*s lands %v, runway clear at %v%s\n",
			width, names[p], s.Arrival[p], s.Finish[p], late)
	}
	fmt.Println()
	fmt.Print(timeline.Build(inst.Ideal, s.Arrival, s.Finish).Render(names))
}
