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

// Package alp builds mixed-integer models for the aircraft landing problem:
// a set of planes, each with an ideal arrival time, a delay cost and a
// runway occupancy time, must be sequenced on a single runway subject to
// pairwise set-up separations.
//
// Two formulations are provided. BuildSequencing produces a disjunctive
// model with one ordering binary per plane pair. BuildPacking produces a
// set-partitioning model in which every column is one (plane, delay)
// choice and rows keep pair-type resources from overlapping. Both attach
// to the solver backends in package mip.
package alp

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Instance describes one aircraft landing problem. Cost, Ideal, Occupancy
// and MaxDelay are indexed by plane. SetUp is the full P x P separation
// matrix; SetUp[p][q] is the idle time required between the end of p's
// runway occupancy and the arrival of q when p lands first.
//
// Class, Proc and Pred are optional. Class assigns each plane a type in
// 1..C and Proc gives the C x C processing time per type pair; both are
// required by the packing formulation. Pred[p] names a plane that must
// land before p, or -1.
type Instance struct {
	Names     []string    `json:"names,omitempty"`
	Cost      []float64   `json:"cost"`
	Ideal     []float64   `json:"ideal"`
	Occupancy []float64   `json:"occupancy"`
	MaxDelay  []float64   `json:"max_delay"`
	SetUp     [][]float64 `json:"set_up"`
	Class     []int       `json:"class,omitempty"`
	Proc      [][]float64 `json:"proc,omitempty"`
	Pred      []int       `json:"pred,omitempty"`
}

// NumPlanes returns the number of planes in the instance.
func (inst *Instance) NumPlanes() int {
	return len(inst.Cost)
}

// NumClasses returns the number of plane types, zero when the instance
// carries no type data.
func (inst *Instance) NumClasses() int {
	return len(inst.Proc)
}

// Name returns the display name of plane p, or a generated one when the
// instance carries no names.
func (inst *Instance) Name(p int) string {
	if p < len(inst.Names) && inst.Names[p] != "" {
		return inst.Names[p]
	}
	return fmt.Sprintf("plane%d", p)
}

// Clone returns a deep copy of the instance.
func (inst *Instance) Clone() *Instance {
	c := &Instance{
		Names:     append([]string(nil), inst.Names...),
		Cost:      append([]float64(nil), inst.Cost...),
		Ideal:     append([]float64(nil), inst.Ideal...),
		Occupancy: append([]float64(nil), inst.Occupancy...),
		MaxDelay:  append([]float64(nil), inst.MaxDelay...),
		SetUp:     cloneMatrix(inst.SetUp),
		Class:     append([]int(nil), inst.Class...),
		Proc:      cloneMatrix(inst.Proc),
		Pred:      append([]int(nil), inst.Pred...),
	}
	return c
}

func cloneMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// ReadInstance decodes a JSON instance from r.
func ReadInstance(r io.Reader) (*Instance, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	inst := &Instance{}
	if err := dec.Decode(inst); err != nil {
		return nil, errors.Wrap(err, "decode instance")
	}
	return inst, nil
}

// ReadInstanceFile reads a JSON instance from the named file.
func ReadInstanceFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read instance")
	}
	defer f.Close()
	inst, err := ReadInstance(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read instance %q", path)
	}
	return inst, nil
}

// WriteInstance encodes the instance as indented JSON to w.
func WriteInstance(w io.Writer, inst *Instance) error {
	b, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode instance")
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "write instance")
	}
	return nil
}

// WriteInstanceFile writes the instance as indented JSON to the named file.
func WriteInstanceFile(path string, inst *Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write instance")
	}
	if err := WriteInstance(f, inst); err != nil {
		f.Close()
		return errors.Wrapf(err, "write instance %q", path)
	}
	return errors.Wrapf(f.Close(), "write instance %q", path)
}
