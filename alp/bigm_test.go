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
	"math"
	"testing"
)

func TestBigMFormula(t *testing.T) {
	ideal := []float64{1, 4}
	occupancy := []float64{2, 0.5}
	maxDelay := []float64{10, 20}

	m := BigM(ideal, occupancy, maxDelay)
	if r, c := m.Dims(); r != 2 || c != 2 {
		t.Fatalf("BigM() returned a %dx%d matrix, want 2x2", r, c)
	}
	// 2*10 + 2*20 + 2 + 0.5 + 2*|1-4| = 68.5
	if got := m.At(0, 1); got != 68.5 {
		t.Errorf("BigM()[0][1] = %v, want 68.5", got)
	}
	// 2*10 + 2*10 + 2 + 2 + 0 = 44
	if got := m.At(0, 0); got != 44 {
		t.Errorf("BigM()[0][0] = %v, want 44", got)
	}
}

func TestBigMSymmetricNonNegative(t *testing.T) {
	ideal := []float64{3, 0, 7.5, 2, 2}
	occupancy := []float64{1, 0, 2.5, 4, 1}
	maxDelay := []float64{5, 0, 12, 3, 5}

	m := BigM(ideal, occupancy, maxDelay)
	n := len(ideal)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.At(i, j) < 0 {
				t.Errorf("BigM()[%d][%d] = %v, want non-negative", i, j, m.At(i, j))
			}
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("BigM()[%d][%d] = %v but [%d][%d] = %v, want symmetry", i, j, m.At(i, j), j, i, m.At(j, i))
			}
		}
	}
}

// The constant must dominate the window variable at every feasible point.
// Both lags are bounded by occupancy plus ideal-time spread plus both
// delay allowances, so checking the analytic bound against the matrix
// entry over a grid of delays covers the worst case.
func TestBigMDominatesWindow(t *testing.T) {
	ideal := []float64{1, 6}
	occupancy := []float64{2, 3}
	maxDelay := []float64{4, 2}

	m := BigM(ideal, occupancy, maxDelay)
	for d0 := 0.0; d0 <= maxDelay[0]; d0++ {
		for d1 := 0.0; d1 <= maxDelay[1]; d1++ {
			a := []float64{ideal[0] + d0, ideal[1] + d1}
			e := []float64{a[0] + occupancy[0], a[1] + occupancy[1]}
			window := math.Max(e[0]-a[1], e[1]-a[0])
			if window > m.At(0, 1) {
				t.Fatalf("window %v at delays (%v, %v) exceeds BigM %v", window, d0, d1, m.At(0, 1))
			}
		}
	}
}
