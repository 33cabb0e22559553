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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstanceRoundTrip(t *testing.T) {
	in := packable()
	in.Names = []string{"A", "B"}
	in.Pred = nil

	var buf bytes.Buffer
	if err := WriteInstance(&buf, in); err != nil {
		t.Fatalf("WriteInstance() returned %v, want nil", err)
	}
	got, err := ReadInstance(&buf)
	if err != nil {
		t.Fatalf("ReadInstance() returned %v, want nil", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("round trip changed the instance (-want +got):\n%s", diff)
	}
}

func TestReadInstanceRejectsUnknownFields(t *testing.T) {
	_, err := ReadInstance(strings.NewReader(`{"cost": [1], "runway": 2}`))
	if err == nil || !strings.Contains(err.Error(), "runway") {
		t.Errorf("ReadInstance() = %v, want an unknown-field error naming runway", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	in := packable()
	in.Names = []string{"A", "B"}
	got := in.Clone()
	if diff := cmp.Diff(in, got); diff != "" {
		t.Fatalf("Clone() differs from the original (-want +got):\n%s", diff)
	}
	got.SetUp[0][1] = 99
	got.Cost[0] = 99
	got.Class[0] = 2
	if in.SetUp[0][1] == 99 || in.Cost[0] == 99 || in.Class[0] == 2 {
		t.Errorf("mutating the clone changed the original: %+v", in)
	}
}

func TestInstanceName(t *testing.T) {
	in := twoPlanes()
	if got := in.Name(1); got != "plane1" {
		t.Errorf("Name(1) = %q, want %q", got, "plane1")
	}
	in.Names = []string{"alpha", ""}
	if got := in.Name(0); got != "alpha" {
		t.Errorf("Name(0) = %q, want %q", got, "alpha")
	}
	if got := in.Name(1); got != "plane1" {
		t.Errorf("Name(1) = %q, want the fallback %q", got, "plane1")
	}
}
