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

// Package sim runs a minute-by-minute control tower loop over a fleet of
// approaching planes. Every few minutes the tower rebuilds a landing
// problem from the planes still in the air, hands it to a Planner and
// writes the solved arrivals back as new ETAs; in between, ETAs count
// down and planes land when theirs reaches zero.
package sim

import "github.com/pkg/errors"

// Plane is one aircraft in the fleet. ETA is the number of minutes until
// its unforced arrival, measured from the minute the plane appears, and
// counts down as the simulation advances.
//
// Appear is the minute the plane first shows on radar; until then it
// neither ticks toward landing nor takes part in replanning. Zero means
// visible from the start.
//
// Pred ties a follower a fixed gap behind another plane of the fleet
// (see Config.LinkGap); -1 means the plane flies free. A follower's ETA
// is overwritten from its leader after every replanning pass, so leaders
// must be declared before their followers.
type Plane struct {
	Name      string
	Class     int
	Cost      float64
	MaxDelay  float64
	Occupancy float64
	ETA       float64
	Appear    int
	Pred      int

	landed  bool
	arrival float64
}

// Landed reports whether the plane has touched down.
func (p *Plane) Landed() bool {
	return p.landed
}

// Arrival returns the sim minute the plane landed at. Valid only after
// Landed reports true.
func (p *Plane) Arrival() float64 {
	return p.arrival
}

func checkFleet(fleet []*Plane, classes int) error {
	if len(fleet) == 0 {
		return errors.New("fleet is empty")
	}
	for i, p := range fleet {
		switch {
		case p.Name == "":
			return errors.Errorf("plane %d has no name", i)
		case p.Class < 1 || p.Class > classes:
			return errors.Errorf("plane %q has class %d, want a label in 1..%d", p.Name, p.Class, classes)
		case p.Cost < 0 || p.MaxDelay < 0 || p.Occupancy < 0 || p.ETA < 0 || p.Appear < 0:
			return errors.Errorf("plane %q has a negative time or cost", p.Name)
		case p.Pred < -1 || p.Pred >= len(fleet):
			return errors.Errorf("plane %q follows %d, want -1 or a fleet index", p.Name, p.Pred)
		case p.Pred == i:
			return errors.Errorf("plane %q follows itself", p.Name)
		case p.Pred > i:
			return errors.Errorf("plane %q follows %q, which is declared after it", p.Name, fleet[p.Pred].Name)
		}
	}
	return nil
}
