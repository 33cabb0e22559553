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

package mip

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildSampleModel() *Model {
	m := NewModel("sample")
	x := m.NewNumVar(0, 4).WithName("x")
	y := m.NewIntVar(1, 3).WithName("y")
	b := m.NewBoolVar().WithName("pick")
	m.AddLinearConstraint(NewLinearExpr().Add(x).AddTerm(y, 2), math.Inf(-1), 14).WithName("cap")
	m.AddGreaterOrEqual(NewLinearExpr().Add(x).Add(y), NewConstant(3))
	m.AddEquality(b, NewConstant(1))
	m.Maximize(NewLinearExpr().AddTerm(x, 3).AddTerm(y, 2).AddTerm(b, 0.5))
	return m
}

func TestExportLP(t *testing.T) {
	got, err := ExportLP(buildSampleModel())
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	want := `\ Model: sample
\ Variables: 3  Constraints: 3
Maximize
 obj: 3 x + 2 y + 0.5 pick
Subject To
 cap: x + 2 y <= 14
 c1: x + y >= 3
 c2: pick = 1
Bounds
 0 <= x <= 4
 1 <= y <= 3
Generals
 y
Binaries
 pick
End
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExportLP() returned unexpected diff (-want +got):\n%s", diff)
	}
}

func TestExportLPDeterministic(t *testing.T) {
	first, err := ExportLP(buildSampleModel())
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	second, err := ExportLP(buildSampleModel())
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	if first != second {
		t.Errorf("ExportLP() is not deterministic:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestExportLPBoundsForms(t *testing.T) {
	m := NewModel("bounds")
	m.NewNumVar(math.Inf(-1), math.Inf(1)).WithName("free")
	m.NewNumVar(math.Inf(-1), 5).WithName("upper_only")
	m.NewNumVar(2, math.Inf(1)).WithName("lower_only")
	m.NewNumVar(3, 3).WithName("fixed")
	m.NewNumVar(0, math.Inf(1)).WithName("default")
	m.Minimize(NewConstant(0))

	got, err := ExportLP(m)
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	for _, want := range []string{
		" free free\n",
		" -infinity <= upper_only <= 5\n",
		" lower_only >= 2\n",
		" fixed = 3\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ExportLP() output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "default <=") || strings.Contains(got, "default >=") {
		t.Errorf("ExportLP() wrote a bound for the default [0, +Inf) variable:\n%s", got)
	}
}

func TestExportLPRangedRow(t *testing.T) {
	m := NewModel("ranged")
	x := m.NewNumVar(0, 10).WithName("x")
	m.AddLinearConstraint(x, 2, 6).WithName("window")
	m.Minimize(x)

	got, err := ExportLP(m)
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	for _, want := range []string{
		" window_lo: x >= 2\n",
		" window_up: x <= 6\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ExportLP() output missing %q:\n%s", want, got)
		}
	}
}

func TestExportLPSanitizesNames(t *testing.T) {
	m := NewModel("names")
	m.NewNumVar(0, 1).WithName("a b/c")
	m.NewNumVar(0, 1).WithName("0start")
	m.Minimize(NewConstant(0))

	got, err := ExportLP(m)
	if err != nil {
		t.Fatalf("ExportLP() returned error %v, want nil", err)
	}
	if strings.Contains(got, "a b/c") {
		t.Errorf("ExportLP() kept an illegal name verbatim:\n%s", got)
	}
	if !strings.Contains(got, "a_b_c") {
		t.Errorf("ExportLP() output missing sanitized name a_b_c:\n%s", got)
	}
	if !strings.Contains(got, "_0start") {
		t.Errorf("ExportLP() output missing digit-guarded name _0start:\n%s", got)
	}
}

func TestExportLPInvalidModel(t *testing.T) {
	m := NewModel("bad")
	m.NewNumVar(2, 1)
	if _, err := ExportLP(m); err == nil {
		t.Errorf("ExportLP() returned nil error for an invalid model")
	}
}

func ExampleExportLP() {
	m := NewModel("diet")
	oats := m.NewNumVar(0, 4).WithName("oats")
	milk := m.NewNumVar(0, 3).WithName("milk")
	m.AddGreaterOrEqual(NewLinearExpr().AddTerm(oats, 110).AddTerm(milk, 160), NewConstant(400))
	m.Minimize(NewLinearExpr().AddTerm(oats, 0.3).AddTerm(milk, 0.9))

	s, err := ExportLP(m)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(s)
	// Output:
	// \ Model: diet
	// \ Variables: 2  Constraints: 1
	// Minimize
	//  obj: 0.3 oats + 0.9 milk
	// Subject To
	//  c0: 110 oats + 160 milk >= 400
	// Bounds
	//  0 <= oats <= 4
	//  0 <= milk <= 3
	// End
}
