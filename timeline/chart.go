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

// Package timeline renders landing plans as fixed-width text charts. The
// event axis is the sorted union of all ideal, arrival and finish times;
// each plane gets one row of glyphs over that axis.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// Glyphs used by Chart.Render. A plane waits past its ideal time with
// '*', touches down on '[', occupies the runway with '=' and clears it
// on ']'; '-' is idle time.
const (
	glyphIdle    = '-'
	glyphDelayed = '*'
	glyphTouch   = '['
	glyphOccupy  = '='
	glyphClear   = ']'
)

// Chart holds the event axis and the per-plane indicator rows derived
// from a solved schedule.
type Chart struct {
	// Events is the sorted, deduplicated union of the three time vectors.
	Events []float64

	// Delayed[p][k] reports that plane p's ideal time has passed at event
	// k but it has not yet arrived. Landing[p][k] reports that p has
	// arrived but not yet cleared the runway.
	Delayed [][]bool
	Landing [][]bool
}

// Build derives the chart for a schedule. The slices must share one
// length; ideal is the planned arrival, arrival and finish the solved
// runway interval of each plane.
func Build(ideal, arrival, finish []float64) *Chart {
	p := len(ideal)
	if len(arrival) != p || len(finish) != p {
		log.Fatalf("Build: mismatched lengths: ideal %d, arrival %d, finish %d",
			p, len(arrival), len(finish))
	}
	events := make([]float64, 0, 3*p)
	events = append(events, ideal...)
	events = append(events, arrival...)
	events = append(events, finish...)
	sort.Float64s(events)
	events = dedup(events)

	c := &Chart{
		Events:  events,
		Delayed: make([][]bool, p),
		Landing: make([][]bool, p),
	}
	for i := 0; i < p; i++ {
		c.Delayed[i] = make([]bool, len(events))
		c.Landing[i] = make([]bool, len(events))
		for k, ev := range events {
			c.Delayed[i][k] = ideal[i] <= ev && ev < arrival[i]
			c.Landing[i][k] = arrival[i] <= ev && ev < finish[i]
		}
	}
	return c
}

// Render draws the chart: a header of rounded event times over one glyph
// row per plane. Missing or empty names fall back to the plane index.
func (c *Chart) Render(names []string) string {
	labels := make([]string, len(c.Events))
	labelW := 0
	for k, ev := range c.Events {
		labels[k] = strconv.Itoa(int(math.Round(ev)))
		if len(labels[k]) > labelW {
			labelW = len(labels[k])
		}
	}
	colW := labelW + 2

	rowNames := make([]string, len(c.Delayed))
	nameW := 0
	for i := range rowNames {
		rowNames[i] = planeLabel(names, i)
		if len(rowNames[i]) > nameW {
			nameW = len(rowNames[i])
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nameW))
	for _, l := range labels {
		fmt.Fprintf(&b, "%*s", colW, l)
	}
	b.WriteByte('\n')
	for i := range c.Delayed {
		fmt.Fprintf(&b, "%-*s", nameW, rowNames[i])
		for k := range c.Events {
			fmt.Fprintf(&b, "%*c", colW, c.glyph(i, k))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Chart) glyph(i, k int) rune {
	switch {
	case c.Landing[i][k] && (k == 0 || !c.Landing[i][k-1]):
		return glyphTouch
	case c.Landing[i][k] && (k == len(c.Events)-1 || !c.Landing[i][k+1]):
		return glyphClear
	case c.Landing[i][k]:
		return glyphOccupy
	case c.Delayed[i][k]:
		return glyphDelayed
	}
	return glyphIdle
}

func planeLabel(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("plane%d", i)
}

func dedup(sorted []float64) []float64 {
	out := sorted[:0]
	for _, v := range sorted {
		if len(out) == 0 || out[len(out)-1] != v {
			out = append(out, v)
		}
	}
	return out
}
