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

package timeline

import (
	"fmt"
	"math"
	"strings"
)

// Span is one occupancy bar on a gantt chart, covering [Start, End).
type Span struct {
	Name  string
	Start float64
	End   float64
}

// RenderGantt draws one bar per span over a shared whole-unit time axis
// running from the earliest start to the latest end. Tick labels appear
// every five columns. Returns the empty string when there are no spans.
func RenderGantt(spans []Span) string {
	if len(spans) == 0 {
		return ""
	}
	lo := math.Floor(spans[0].Start)
	hi := math.Ceil(spans[0].End)
	nameW := 0
	for _, s := range spans {
		lo = math.Min(lo, math.Floor(s.Start))
		hi = math.Max(hi, math.Ceil(s.End))
		if len(s.Name) > nameW {
			nameW = len(s.Name)
		}
	}
	first, width := int(lo), int(hi-lo)
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nameW+1))
	for col := 0; col < width; col += 5 {
		label := fmt.Sprintf("%-5d", first+col)
		if col+5 > width {
			label = label[:width-col]
		}
		b.WriteString(label)
	}
	b.WriteByte('\n')
	for _, s := range spans {
		fmt.Fprintf(&b, "%-*s ", nameW, s.Name)
		for col := 0; col < width; col++ {
			t := float64(first + col)
			if s.Start <= t && t < s.End {
				b.WriteByte('#')
			} else {
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
