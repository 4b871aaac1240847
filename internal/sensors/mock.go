// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"math"
	"time"
)

type mockMagnetometer struct {
	start time.Time
}

// NewMockMagnetometer creates a mock field source whose heading sweeps
// smoothly through the full circle, crossing North regularly so the
// wraparound path gets exercised in demo mode.
func NewMockMagnetometer() Source {
	return &mockMagnetometer{start: time.Now()}
}

func (m *mockMagnetometer) Next() (Sample, error) {
	elapsed := time.Since(m.start).Seconds()
	return FieldVector(math.Mod(elapsed*20, 360)), nil
}

type mockAccelerometer struct {
	start time.Time
}

// NewMockAccelerometer creates a mock acceleration source that rocks gently
// around level, in g.
func NewMockAccelerometer() Source {
	return &mockAccelerometer{start: time.Now()}
}

func (m *mockAccelerometer) Next() (Sample, error) {
	elapsed := time.Since(m.start).Seconds()
	return Sample{
		X: 0.06 * math.Sin(elapsed),
		Y: 0.05 * math.Cos(elapsed*0.7),
	}, nil
}
