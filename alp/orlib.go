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
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// ReadORLibrary parses an instance in the OR-Library "airland" layout:
// a plane count and freeze time, then per plane the six values
// appearance, earliest, target, latest, earliness cost, lateness cost,
// followed by one separation time towards every other plane.
//
// The mapping keeps only what the formulations here use: ideal time is
// the target, max delay is latest minus target, cost is the lateness
// cost and the separations become the set-up matrix. Earliness data and
// the freeze time are discarded, and occupancy is zero since the files
// fold it into the separations.
func ReadORLibrary(r io.Reader) (*Instance, error) {
	tr := newTokenReader(r)
	planes, err := tr.nextInt("plane count")
	if err != nil {
		return nil, err
	}
	if planes < 1 {
		return nil, errors.Errorf("plane count %d, want at least 1", planes)
	}
	if _, err := tr.next("freeze time"); err != nil {
		return nil, err
	}

	inst := &Instance{
		Cost:      make([]float64, planes),
		Ideal:     make([]float64, planes),
		Occupancy: make([]float64, planes),
		MaxDelay:  make([]float64, planes),
		SetUp:     make([][]float64, planes),
	}
	for i := 0; i < planes; i++ {
		if _, err := tr.next("appearance time"); err != nil {
			return nil, err
		}
		if _, err := tr.next("earliest landing"); err != nil {
			return nil, err
		}
		target, err := tr.next("target landing")
		if err != nil {
			return nil, err
		}
		latest, err := tr.next("latest landing")
		if err != nil {
			return nil, err
		}
		if _, err := tr.next("earliness cost"); err != nil {
			return nil, err
		}
		late, err := tr.next("lateness cost")
		if err != nil {
			return nil, err
		}
		inst.Ideal[i] = target
		inst.MaxDelay[i] = latest - target
		inst.Cost[i] = late
		inst.SetUp[i] = make([]float64, planes)
		for j := 0; j < planes; j++ {
			sep, err := tr.next("separation")
			if err != nil {
				return nil, err
			}
			inst.SetUp[i][j] = sep
		}
		inst.SetUp[i][i] = 0
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// ReadORLibraryFile reads an OR-Library airland file from disk.
func ReadORLibraryFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read airland file")
	}
	defer f.Close()
	inst, err := ReadORLibrary(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read airland file %q", path)
	}
	return inst, nil
}

type tokenReader struct {
	sc *bufio.Scanner
	n  int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (tr *tokenReader) next(what string) (float64, error) {
	if !tr.sc.Scan() {
		if err := tr.sc.Err(); err != nil {
			return 0, errors.Wrapf(err, "token %d (%s)", tr.n+1, what)
		}
		return 0, errors.Errorf("token %d (%s): unexpected end of input", tr.n+1, what)
	}
	tr.n++
	v, err := strconv.ParseFloat(tr.sc.Text(), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "token %d (%s)", tr.n, what)
	}
	return v, nil
}

func (tr *tokenReader) nextInt(what string) (int, error) {
	v, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) {
		return 0, errors.Errorf("token %d (%s): %v is not an integer", tr.n, what, v)
	}
	return int(v), nil
}
