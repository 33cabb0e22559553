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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	params := DefaultGenerateParams()
	first, err := Generate(params)
	require.NoError(t, err)
	second, err := Generate(params)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same params must yield the same instance")

	params.Seed = 2
	other, err := Generate(params)
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "a new seed must yield a new instance")
}

func TestGenerateRespectsRanges(t *testing.T) {
	params := DefaultGenerateParams()
	params.Planes = 30
	params.Seed = 7
	inst, err := Generate(params)
	require.NoError(t, err)

	require.NoError(t, inst.Validate())
	require.NoError(t, inst.ValidatePacking())

	assert.Equal(t, 0.0, minOf(inst.Ideal), "ideal times must be shifted to start at 0")
	for i := 0; i < params.Planes; i++ {
		assert.LessOrEqual(t, inst.Ideal[i], float64(params.IdealMax))
		assert.GreaterOrEqual(t, inst.Occupancy[i], float64(params.OccupancyMin))
		assert.LessOrEqual(t, inst.Occupancy[i], float64(params.OccupancyMax))
		assert.GreaterOrEqual(t, inst.Cost[i], float64(params.CostMin))
		assert.LessOrEqual(t, inst.Cost[i], float64(params.CostMax))
		assert.GreaterOrEqual(t, inst.MaxDelay[i], float64(params.MaxDelayMin))
		assert.LessOrEqual(t, inst.MaxDelay[i], float64(params.MaxDelayMax))
	}
}

func TestGenerateDerivesSetUpFromClasses(t *testing.T) {
	inst, err := Generate(DefaultGenerateParams())
	require.NoError(t, err)
	for p := 0; p < inst.NumPlanes(); p++ {
		for q := 0; q < inst.NumPlanes(); q++ {
			if p == q {
				assert.Zero(t, inst.SetUp[p][q], "the set-up diagonal must be zero")
				continue
			}
			want := inst.Proc[inst.Class[p]-1][inst.Class[q]-1]
			assert.Equal(t, want, inst.SetUp[p][q], "set-up of pair (%d, %d)", p, q)
		}
	}
}

func TestGenerateNames(t *testing.T) {
	params := DefaultGenerateParams()
	params.Planes = 29
	inst, err := Generate(params)
	require.NoError(t, err)
	assert.Equal(t, "A", inst.Names[0])
	assert.Equal(t, "Z", inst.Names[25])
	assert.Equal(t, "AA", inst.Names[26])
	assert.Equal(t, "AC", inst.Names[28])
}

func TestGenerateRejectsBadParams(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*GenerateParams)
	}{
		{"no_planes", func(p *GenerateParams) { p.Planes = 0 }},
		{"no_classes", func(p *GenerateParams) { p.Classes = 0 }},
		{"inverted_occupancy", func(p *GenerateParams) { p.OccupancyMin = 5; p.OccupancyMax = 2 }},
		{"zero_max_delay", func(p *GenerateParams) { p.MaxDelayMin = 0 }},
		{"negative_proc", func(p *GenerateParams) { p.ProcMin = -1 }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultGenerateParams()
			tc.mutate(&params)
			_, err := Generate(params)
			assert.Error(t, err)
		})
	}
}
