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
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ohagen/airland/alp"
	"github.com/ohagen/airland/timeline"
)

// Config shapes a tower run.
type Config struct {
	// ReplanEvery is the number of minutes between planner runs. The
	// first run happens at minute 0.
	ReplanEvery int

	// Steps caps the simulated minutes; the run also ends once every
	// plane has landed.
	Steps int

	// LinkGap is the gap in minutes a follower keeps behind its leader.
	LinkGap float64

	// Proc is the class-pair separation matrix: Proc[i][j] is the set-up
	// time when a plane of class i+1 is followed by one of class j+1.
	Proc [][]float64
}

// Event is one line of the tower's log.
type Event struct {
	Minute int
	Text   string
}

// Landing records a touchdown and the runway interval it occupied.
type Landing struct {
	Name    string
	Arrival float64
	Finish  float64
}

// Report is the outcome of a tower run.
type Report struct {
	Events   []Event
	Landings []Landing
	Replans  int
}

// Spans converts the landings into bars for timeline.RenderGantt.
func (r *Report) Spans() []timeline.Span {
	spans := make([]timeline.Span, len(r.Landings))
	for i, l := range r.Landings {
		spans[i] = timeline.Span{Name: l.Name, Start: l.Arrival, End: l.Finish}
	}
	return spans
}

// Tower owns a fleet and replans its landing order on a fixed cadence.
type Tower struct {
	cfg     Config
	planner Planner
	fleet   []*Plane
}

// NewTower validates the configuration and fleet. The fleet is owned by
// the tower afterwards; its planes are mutated as the simulation runs.
func NewTower(cfg Config, planner Planner, fleet []*Plane) (*Tower, error) {
	switch {
	case planner == nil:
		return nil, errors.New("planner is nil")
	case cfg.ReplanEvery < 1:
		return nil, errors.Errorf("replan cadence %d, want at least 1", cfg.ReplanEvery)
	case cfg.Steps < 1:
		return nil, errors.Errorf("step count %d, want at least 1", cfg.Steps)
	case cfg.LinkGap < 0:
		return nil, errors.Errorf("link gap %v, want non-negative", cfg.LinkGap)
	case len(cfg.Proc) == 0:
		return nil, errors.New("class separation matrix is empty")
	}
	for i, row := range cfg.Proc {
		if len(row) != len(cfg.Proc) {
			return nil, errors.Errorf("class separation row %d has length %d, want %d", i, len(row), len(cfg.Proc))
		}
	}
	if err := checkFleet(fleet, len(cfg.Proc)); err != nil {
		return nil, err
	}
	return &Tower{cfg: cfg, planner: planner, fleet: fleet}, nil
}

// Run advances the clock one minute at a time until the fleet is down or
// the step budget is spent, replanning on the configured cadence. A
// planner error aborts the run; an infeasible plan only logs an event
// and leaves the current ETAs in place.
func (tw *Tower) Run(ctx context.Context) (*Report, error) {
	rep := &Report{}
	for m := 0; m < tw.cfg.Steps && tw.airborne() > 0; m++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if m%tw.cfg.ReplanEvery == 0 {
			if err := tw.replan(ctx, m, rep); err != nil {
				return nil, err
			}
		}
		for _, p := range tw.fleet {
			if p.landed || p.Appear > m {
				continue
			}
			p.ETA--
			if p.ETA <= 0 {
				p.landed = true
				p.arrival = float64(m + 1)
				tw.record(rep, m+1, p.Name+" has landed")
				rep.Landings = append(rep.Landings, Landing{
					Name:    p.Name,
					Arrival: p.arrival,
					Finish:  p.arrival + p.Occupancy,
				})
			}
		}
	}
	return rep, nil
}

func (tw *Tower) airborne() int {
	n := 0
	for _, p := range tw.fleet {
		if !p.landed {
			n++
		}
	}
	return n
}

func (tw *Tower) record(rep *Report, minute int, text string) {
	rep.Events = append(rep.Events, Event{Minute: minute, Text: text})
	log.V(1).Infof("minute %d: %s", minute, text)
}

// replan solves a landing problem over the airborne planes and writes
// the arrivals back as fresh ETAs. Followers ignore their own solved
// arrival and hold the link gap behind their leader instead.
func (tw *Tower) replan(ctx context.Context, minute int, rep *Report) error {
	idx := make([]int, 0, len(tw.fleet))
	for i, p := range tw.fleet {
		if !p.landed && p.Appear <= minute {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	inst := tw.instance(idx)
	s, err := tw.planner.Plan(ctx, inst)
	if err != nil {
		return errors.Wrapf(err, "replan at minute %d with %s", minute, tw.planner.Name())
	}
	rep.Replans++
	if s.Arrival == nil {
		tw.record(rep, minute, fmt.Sprintf("replanning found no feasible schedule (%s), keeping current ETAs", s.Status))
		return nil
	}
	for k, fi := range idx {
		p := tw.fleet[fi]
		if p.Pred >= 0 && !tw.fleet[p.Pred].landed && tw.fleet[p.Pred].Appear <= minute {
			p.ETA = tw.fleet[p.Pred].ETA + tw.cfg.LinkGap
		} else {
			p.ETA = s.Arrival[k]
		}
		if d := int(math.Round(p.ETA - inst.Ideal[k])); d > 0 {
			tw.record(rep, minute, fmt.Sprintf("%s is estimated to be delayed by %d minute(s)", p.Name, d))
		}
	}
	return nil
}

// instance snapshots the airborne planes, ETAs as ideal times and the
// pairwise set-up matrix drawn from the class separations with a zeroed
// diagonal. Follower links to still-airborne leaders come along as
// precedence constraints.
func (tw *Tower) instance(idx []int) *alp.Instance {
	n := len(idx)
	classes := len(tw.cfg.Proc)
	inst := &alp.Instance{
		Names:     make([]string, n),
		Cost:      make([]float64, n),
		Ideal:     make([]float64, n),
		Occupancy: make([]float64, n),
		MaxDelay:  make([]float64, n),
		SetUp:     make([][]float64, n),
		Class:     make([]int, n),
		Proc:      make([][]float64, classes),
		Pred:      make([]int, n),
	}
	for i := range inst.Proc {
		inst.Proc[i] = append([]float64(nil), tw.cfg.Proc[i]...)
	}
	pos := make(map[int]int, n)
	for k, fi := range idx {
		pos[fi] = k
	}
	for k, fi := range idx {
		p := tw.fleet[fi]
		inst.Names[k] = p.Name
		inst.Cost[k] = p.Cost
		inst.Ideal[k] = p.ETA
		inst.Occupancy[k] = p.Occupancy
		inst.MaxDelay[k] = p.MaxDelay
		inst.Class[k] = p.Class
		inst.Pred[k] = -1
		if p.Pred >= 0 {
			if j, ok := pos[p.Pred]; ok {
				inst.Pred[k] = j
			}
		}
	}
	for a, fa := range idx {
		inst.SetUp[a] = make([]float64, n)
		for b, fb := range idx {
			if a != b {
				inst.SetUp[a][b] = tw.cfg.Proc[tw.fleet[fa].Class-1][tw.fleet[fb].Class-1]
			}
		}
	}
	return inst
}
