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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ohagen/airland/alp"
)

func generateCmd() *cobra.Command {
	params := alp.DefaultGenerateParams()
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random landing problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := alp.Generate(params)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return alp.WriteInstance(os.Stdout, inst)
			}
			if err := alp.WriteInstanceFile(output, inst); err != nil {
				return err
			}
			fmt.Printf("%s %d planes in %d classes to %s\n",
				green("wrote"), params.Planes, params.Classes, output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&params.Planes, "planes", "p", params.Planes, "Number of planes")
	cmd.Flags().IntVarP(&params.Classes, "classes", "C", params.Classes, "Number of aircraft classes")
	cmd.Flags().Int64Var(&params.Seed, "seed", params.Seed, "Random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the instance here instead of stdout")
	cmd.Flags().IntVar(&params.IdealMax, "ideal-max", params.IdealMax, "Latest ideal arrival time")
	cmd.Flags().IntVar(&params.OccupancyMin, "occupancy-min", params.OccupancyMin, "Shortest runway occupancy")
	cmd.Flags().IntVar(&params.OccupancyMax, "occupancy-max", params.OccupancyMax, "Longest runway occupancy")
	cmd.Flags().IntVar(&params.CostMin, "cost-min", params.CostMin, "Cheapest per-unit delay cost")
	cmd.Flags().IntVar(&params.CostMax, "cost-max", params.CostMax, "Most expensive per-unit delay cost")
	cmd.Flags().IntVar(&params.MaxDelayMin, "max-delay-min", params.MaxDelayMin, "Smallest delay allowance")
	cmd.Flags().IntVar(&params.MaxDelayMax, "max-delay-max", params.MaxDelayMax, "Largest delay allowance")
	cmd.Flags().IntVar(&params.ProcMin, "proc-min", params.ProcMin, "Shortest class-pair separation")
	cmd.Flags().IntVar(&params.ProcMax, "proc-max", params.ProcMax, "Longest class-pair separation")

	return cmd
}
