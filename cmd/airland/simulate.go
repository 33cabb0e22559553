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
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ohagen/airland/alp"
	"github.com/ohagen/airland/sim"
	"github.com/ohagen/airland/timeline"
)

func simulateCmd() *cobra.Command {
	var (
		replan  int
		horizon int
		linkGap float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the rolling-horizon tower simulation",
		Long: `Simulate flies the instance's planes toward the runway in one-minute
steps. Ideal times are read as initial ETAs; on a fixed cadence the tower
replans the planes still in the air and pushes the solved arrivals back
as fresh ETAs. The instance must carry class labels and the class
separation matrix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagInput == "" {
				return errors.New("an instance file is required (--input)")
			}
			inst, err := alp.ReadInstanceFile(flagInput)
			if err != nil {
				return err
			}
			solver, err := pickSolver(flagSolver)
			if err != nil {
				return err
			}
			fleet, err := fleetFromInstance(inst)
			if err != nil {
				return err
			}
			cfg := sim.Config{
				ReplanEvery: replan,
				Steps:       horizon,
				LinkGap:     linkGap,
				Proc:        inst.Proc,
			}
			planner := &sim.SequencingPlanner{Solver: solver}
			tower, err := sim.NewTower(cfg, planner, fleet)
			if err != nil {
				return err
			}
			rep, err := tower.Run(context.Background())
			if err != nil {
				return err
			}
			printReport(rep)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flagInput, "input", "i", "", "Instance JSON file")
	cmd.Flags().StringVar(&flagSolver, "solver", "highs", "Backend: highs or relax")
	cmd.Flags().IntVar(&replan, "replan", 50, "Minutes between planner runs")
	cmd.Flags().IntVar(&horizon, "horizon", 400, "Simulated minutes")
	cmd.Flags().Float64Var(&linkGap, "link-gap", 5, "Minutes a follower keeps behind its leader")

	return cmd
}

// fleetFromInstance reads ideal times as initial ETAs. The simulation
// draws separations from the class matrix, so bare set-up instances are
// rejected here rather than mid-run.
func fleetFromInstance(inst *alp.Instance) ([]*sim.Plane, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if len(inst.Class) == 0 || len(inst.Proc) == 0 {
		return nil, errors.New("the instance carries no class labels; simulate needs class and proc")
	}
	fleet := make([]*sim.Plane, inst.NumPlanes())
	for i := range fleet {
		pred := -1
		if len(inst.Pred) > 0 {
			pred = inst.Pred[i]
		}
		fleet[i] = &sim.Plane{
			Name:      inst.Name(i),
			Class:     inst.Class[i],
			Cost:      inst.Cost[i],
			MaxDelay:  inst.MaxDelay[i],
			Occupancy: inst.Occupancy[i],
			ETA:       inst.Ideal[i],
			Pred:      pred,
		}
	}
	return fleet, nil
}

func printReport(rep *sim.Report) {
	for _, ev := range rep.Events {
		text := ev.Text
		switch {
		case strings.Contains(text, "has landed"):
			text = green(text)
		case strings.Contains(text, "delayed"):
			text = yellow(text)
		case strings.Contains(text, "no feasible"):
			text = red(text)
		}
		fmt.Printf("%s %s\n", dim(fmt.Sprintf("[%4d]", ev.Minute)), text)
	}
	fmt.Printf("\n%s %d landings in %d replans\n\n",
		bold("done:"), len(rep.Landings), rep.Replans)
	fmt.Print(timeline.RenderGantt(rep.Spans()))
}
