// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package operation provides quantum gates, observables and measurement
// terminators.
//
// Gates are plain values: a constructor returns an *Operation carrying the
// gate name, parameters and target wires, and a tape records them in
// construction order.
package operation

import (
	"github.com/spindle-qc/spindle/internal/operation"
)

// Value is a gate parameter: a plain number or a host tensor.
type Value = operation.Value

// Scalar is implemented by host values that detach to a float64.
type Scalar = operation.Scalar

// Operation is a named gate bound to parameters and wires.
type Operation = operation.Operation

// Measurement is a terminator evaluated after the operation sequence.
type Measurement = operation.Measurement

// MeasureKind enumerates measurement terminator kinds.
type MeasureKind = operation.MeasureKind

// Measurement kinds.
const (
	MeasureExpval   = operation.MeasureExpval
	MeasureVariance = operation.MeasureVariance
	MeasureProbs    = operation.MeasureProbs
	MeasureSample   = operation.MeasureSample
)

// Float detaches a parameter value to a plain float64.
func Float(v Value) (float64, error) {
	return operation.Float(v)
}

// Single-qubit gates.

// PauliX returns the X gate on a wire.
func PauliX(wire int) *Operation { return operation.PauliX(wire) }

// PauliY returns the Y gate on a wire.
func PauliY(wire int) *Operation { return operation.PauliY(wire) }

// PauliZ returns the Z gate on a wire.
func PauliZ(wire int) *Operation { return operation.PauliZ(wire) }

// Hadamard returns the Hadamard gate on a wire.
func Hadamard(wire int) *Operation { return operation.Hadamard(wire) }

// S returns the phase gate on a wire.
func S(wire int) *Operation { return operation.S(wire) }

// T returns the T gate on a wire.
func T(wire int) *Operation { return operation.T(wire) }

// PhaseShift returns the single-qubit phase shift by phi.
func PhaseShift(phi Value, wire int) *Operation { return operation.PhaseShift(phi, wire) }

// RX returns a rotation about the X axis.
func RX(theta Value, wire int) *Operation { return operation.RX(theta, wire) }

// RY returns a rotation about the Y axis.
func RY(theta Value, wire int) *Operation { return operation.RY(theta, wire) }

// RZ returns a rotation about the Z axis.
func RZ(theta Value, wire int) *Operation { return operation.RZ(theta, wire) }

// Rot returns the general single-qubit rotation RZ(omega) RY(theta) RZ(phi).
func Rot(phi, theta, omega Value, wire int) *Operation {
	return operation.Rot(phi, theta, omega, wire)
}

// Multi-qubit gates.

// CNOT returns the controlled-X gate.
func CNOT(control, target int) *Operation { return operation.CNOT(control, target) }

// CZ returns the controlled-Z gate.
func CZ(control, target int) *Operation { return operation.CZ(control, target) }

// SWAP returns the swap gate.
func SWAP(a, b int) *Operation { return operation.SWAP(a, b) }

// ControlledPhaseShift returns a phase shift on the target conditioned on
// the control wire.
func ControlledPhaseShift(phi Value, control, target int) *Operation {
	return operation.ControlledPhaseShift(phi, control, target)
}

// MultiControlledX returns an X on the target conditioned on a control
// pattern: controlValues[k] selects whether control wire k fires on '1' or
// '0'.
func MultiControlledX(controlWires []int, target int, controlValues string, workWires []int) *Operation {
	return operation.MultiControlledX(controlWires, target, controlValues, workWires)
}

// QubitUnitary returns a gate defined by an explicit 2^k x 2^k matrix.
func QubitUnitary(matrix [][]complex128, wires ...int) *Operation {
	return operation.QubitUnitary(matrix, wires...)
}

// ControlledQubitUnitary returns an explicit unitary conditioned on all
// control wires being set.
func ControlledQubitUnitary(matrix [][]complex128, controlWires []int, wires ...int) *Operation {
	return operation.ControlledQubitUnitary(matrix, controlWires, wires...)
}

// BasisState resets the targeted wires to a computational basis state.
func BasisState(bits []int, wires ...int) *Operation {
	return operation.BasisState(bits, wires...)
}

// Measurements.

// Expval measures the expectation value of an observable.
func Expval(obs *Operation) *Measurement { return operation.Expval(obs) }

// Var measures the variance of an observable.
func Var(obs *Operation) *Measurement { return operation.Var(obs) }

// Probs measures the probability distribution over a wire subset.
func Probs(wires ...int) *Measurement { return operation.Probs(wires...) }

// Sample draws eigenvalue samples of an observable.
func Sample(obs *Operation) *Measurement { return operation.Sample(obs) }
