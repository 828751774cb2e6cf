// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package qmc provides quantum Monte Carlo estimation circuits built on the
// tape recorder.
package qmc

import (
	internalqmc "github.com/spindle-qc/spindle/internal/qmc"
	"github.com/spindle-qc/spindle/internal/tape"
)

// MakeZ returns the reflection 2|0><0| - I of the given dimension.
func MakeZ(dim int) [][]complex128 {
	return internalqmc.MakeZ(dim)
}

// MakeV returns the reflection 2(I x |1><1|) - I of the given dimension.
func MakeV(dim int) [][]complex128 {
	return internalqmc.MakeV(dim)
}

// ApplyControlledZ queues a controlled -Z reflection over wires.
func ApplyControlledZ(rec *tape.Recorder, wires []int, controlWire int, workWires []int) {
	internalqmc.ApplyControlledZ(rec, wires, controlWire, workWires)
}

// ApplyControlledV queues a controlled -V reflection on the rotation wire.
func ApplyControlledV(rec *tape.Recorder, rotationWire, controlWire int) {
	internalqmc.ApplyControlledV(rec, rotationWire, controlWire)
}

// Adjoint returns a subcircuit undoing fn.
func Adjoint(fn func(*tape.Recorder)) (func(*tape.Recorder), error) {
	return internalqmc.Adjoint(fn)
}

// ApplyControlledQ returns a subcircuit applying the controlled Q walk
// operator for the unitary queued by fn.
func ApplyControlledQ(fn func(*tape.Recorder), wires []int, targetWire, controlWire int, workWires []int) (func(*tape.Recorder), error) {
	return internalqmc.ApplyControlledQ(fn, wires, targetWire, controlWire, workWires)
}

// QFT queues the quantum Fourier transform on the given wires.
func QFT(rec *tape.Recorder, wires []int) {
	internalqmc.QFT(rec, wires)
}

// QuantumMonteCarlo returns the full phase-estimation circuit for the
// unitary queued by fn.
func QuantumMonteCarlo(fn func(*tape.Recorder), wires []int, targetWire int, estimationWires []int, workWires []int) (func(*tape.Recorder), error) {
	return internalqmc.QuantumMonteCarlo(fn, wires, targetWire, estimationWires, workWires)
}
