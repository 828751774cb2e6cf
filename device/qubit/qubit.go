// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package qubit provides the analytic statevector simulator.
package qubit

import (
	"github.com/spindle-qc/spindle/device"
	internalqubit "github.com/spindle-qc/spindle/internal/device/qubit"
)

// Simulator is a statevector device.
type Simulator = internalqubit.Simulator

// Option configures a Simulator.
type Option = internalqubit.Option

// Compile-time check that the simulator implements the device capability.
var _ device.Device = (*Simulator)(nil)

// New creates a simulator over the given number of wires.
func New(wires int, opts ...Option) *Simulator {
	return internalqubit.New(wires, opts...)
}

// WithShots sets a finite shot count for sample measurements.
func WithShots(n int) Option {
	return internalqubit.WithShots(n)
}

// WithSeed seeds the sampling RNG for reproducible shot results.
func WithSeed(seed int64) Option {
	return internalqubit.WithSeed(seed)
}
