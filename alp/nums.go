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
	log "github.com/golang/glog"
	"golang.org/x/exp/constraints"
)

// maxOf returns the largest value in xs. xs must not be empty.
func maxOf[T constraints.Ordered](xs []T) T {
	if len(xs) == 0 {
		log.Fatalf("maxOf on an empty slice")
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

// minOf returns the smallest value in xs. xs must not be empty.
func minOf[T constraints.Ordered](xs []T) T {
	if len(xs) == 0 {
		log.Fatalf("minOf on an empty slice")
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// sumOf returns the sum of xs, zero for an empty slice.
func sumOf[T constraints.Integer | constraints.Float](xs []T) T {
	var s T
	for _, x := range xs {
		s += x
	}
	return s
}

// matrixMax returns the largest entry of a non-empty matrix.
func matrixMax(m [][]float64) float64 {
	best := maxOf(m[0])
	for _, row := range m[1:] {
		if v := maxOf(row); v > best {
			best = v
		}
	}
	return best
}
