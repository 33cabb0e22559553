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

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

// BigM returns the P x P matrix of disjunction constants
//
//	M[p][q] = 2*maxDelay[p] + 2*maxDelay[q] + occupancy[p] + occupancy[q] + 2*|ideal[p]-ideal[q]|
//
// Each entry bounds the window variable of the pair from above at every
// feasible point: |e_p - a_q| <= occupancy[p] + |ideal[p]-ideal[q]| +
// maxDelay[p] + maxDelay[q], and summing the symmetric bound for the
// reversed pair covers the larger of the two lags. The matrix is symmetric
// and non-negative by construction. All three slices must share one length.
func BigM(ideal, occupancy, maxDelay []float64) *mat.Dense {
	p := len(ideal)
	if len(occupancy) != p || len(maxDelay) != p {
		log.Fatalf("BigM: mismatched lengths: ideal %d, occupancy %d, maxDelay %d",
			p, len(occupancy), len(maxDelay))
	}
	m := mat.NewDense(p, p, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			v := 2*maxDelay[i] + 2*maxDelay[j] + occupancy[i] + occupancy[j] + 2*math.Abs(ideal[i]-ideal[j])
			m.Set(i, j, v)
		}
	}
	return m
}
