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

// Command airland schedules aircraft landings on a single runway.
package main

import (
	goflag "flag"
	"os"

	"github.com/fatih/color"
	log "github.com/golang/glog"
	"github.com/spf13/cobra"
)

// Sprint color functions for building styled strings.
var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

var flagNoColor bool

func main() {
	defer log.Flush()

	rootCmd := &cobra.Command{
		Use:   "airland",
		Short: "Schedule aircraft landings on a single runway",
		Long: `Airland schedules aircraft landings on a single runway so that the total
cost of pushing planes past their ideal arrival times is minimal, while
consecutive landings respect runway occupancy and class-dependent set-up
times.

Instances come from JSON files, the OR-Library airland format or the
built-in generator. Models are solved with HiGHS or, dropping
integrality, a pure-Go LP relaxation.`,
		PersistentPreRun: func(*cobra.Command, []string) {
			if flagNoColor {
				color.NoColor = true
			}
			// glog checks flag.Parsed before its first write.
			_ = goflag.CommandLine.Parse(nil)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(simulateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
