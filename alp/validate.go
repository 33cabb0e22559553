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
	"fmt"
	"math"
)

// ValidationError reports problem data that cannot be turned into a model.
// Field names the offending array and Reason states the expectation it
// violates.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func errf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the shape and sign preconditions shared by both
// formulations. It returns nil or the first violation found; checks run in
// declaration order of the Instance fields so the reported error is
// deterministic.
func (inst *Instance) Validate() error {
	p := inst.NumPlanes()
	if p == 0 {
		return errf("cost", "must not be empty: plane count is its length")
	}
	if len(inst.Names) != 0 && len(inst.Names) != p {
		return errf("names", "has length %d, want %d", len(inst.Names), p)
	}
	for _, f := range []struct {
		name string
		vals []float64
	}{
		{"cost", inst.Cost},
		{"ideal", inst.Ideal},
		{"occupancy", inst.Occupancy},
		{"max_delay", inst.MaxDelay},
	} {
		if len(f.vals) != p {
			return errf(f.name, "has length %d, want %d", len(f.vals), p)
		}
		if i, v, ok := firstBadEntry(f.vals); !ok {
			return errf(f.name, "plane %d has value %v, want a finite non-negative number", i, v)
		}
	}
	if inst.SetUp == nil {
		return errf("set_up", "is missing, want a %dx%d matrix", p, p)
	}
	if err := checkMatrix("set_up", inst.SetUp, p); err != nil {
		return err
	}
	if len(inst.Class) != 0 || inst.Proc != nil {
		if err := inst.validateClasses(); err != nil {
			return err
		}
	}
	if len(inst.Pred) != 0 {
		if len(inst.Pred) != p {
			return errf("pred", "has length %d, want %d", len(inst.Pred), p)
		}
		for i, q := range inst.Pred {
			if q < -1 || q >= p {
				return errf("pred", "plane %d names predecessor %d, want -1 or a plane index below %d", i, q, p)
			}
			if q == i {
				return errf("pred", "plane %d names itself as predecessor", i)
			}
		}
	}
	return nil
}

func (inst *Instance) validateClasses() error {
	p := inst.NumPlanes()
	c := inst.NumClasses()
	if c == 0 {
		return errf("proc", "is missing, yet class labels are present")
	}
	if len(inst.Class) != p {
		return errf("class", "has length %d, want %d", len(inst.Class), p)
	}
	for i, cl := range inst.Class {
		if cl < 1 || cl > c {
			return errf("class", "plane %d has class %d, want a label in 1..%d", i, cl, c)
		}
	}
	return checkMatrix("proc", inst.Proc, c)
}

// ValidatePacking checks the extra preconditions of the set-partitioning
// formulation: class data present, integral times, earliest ideal time
// zero, and no precedence links.
func (inst *Instance) ValidatePacking() error {
	if err := inst.Validate(); err != nil {
		return err
	}
	if len(inst.Class) == 0 {
		return errf("class", "is missing: the packing formulation needs a class label per plane")
	}
	for i, v := range inst.Ideal {
		if v != math.Trunc(v) {
			return errf("ideal", "plane %d has time %v, want an integer slot", i, v)
		}
	}
	if m := minOf(inst.Ideal); m != 0 {
		return errf("ideal", "earliest time is %v, want 0", m)
	}
	for i, v := range inst.MaxDelay {
		if v != math.Trunc(v) || v < 1 {
			return errf("max_delay", "plane %d has max delay %v, want an integer of at least 1", i, v)
		}
	}
	for i, row := range inst.Proc {
		for j, v := range row {
			if v != math.Trunc(v) {
				return errf("proc", "entry [%d][%d] is %v, want an integer slot count", i, j, v)
			}
		}
	}
	for i, q := range inst.Pred {
		if q >= 0 {
			return errf("pred", "plane %d has a predecessor link, which the packing formulation does not support", i)
		}
	}
	return nil
}

// CheckTriangle verifies the triangle inequality on a class processing
// matrix: proc[i][k] <= proc[i][j] + proc[j][k] for all i, j, k. When it
// fails, pairwise separations are not enough to keep a third plane clear,
// so the packing formulation may under-separate. The check is optional;
// see PackingOptions.
func CheckTriangle(proc [][]float64) error {
	c := len(proc)
	for i := 0; i < c; i++ {
		for j := 0; j < c; j++ {
			for k := 0; k < c; k++ {
				if proc[i][k] > proc[i][j]+proc[j][k] {
					return errf("proc", "triangle violation at classes (%d,%d,%d): proc[%d][%d]=%v exceeds proc[%d][%d]+proc[%d][%d]=%v",
						i+1, j+1, k+1, i, k, proc[i][k], i, j, j, k, proc[i][j]+proc[j][k])
				}
			}
		}
	}
	return nil
}

// firstBadEntry returns the index and value of the first entry that is not
// a finite non-negative number, or ok when all entries pass.
func firstBadEntry(vals []float64) (int, float64, bool) {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return i, v, false
		}
	}
	return 0, 0, true
}

func checkMatrix(field string, m [][]float64, n int) error {
	if len(m) != n {
		return errf(field, "has %d rows, want %d", len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return errf(field, "row %d has length %d, want %d", i, len(row), n)
		}
		if j, v, ok := firstBadEntry(row); !ok {
			return errf(field, "entry [%d][%d] is %v, want a finite non-negative number", i, j, v)
		}
	}
	return nil
}
