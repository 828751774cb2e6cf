// Package qmc builds quantum Monte Carlo estimation circuits: controlled
// reflections, the controlled Q walk operator and the phase-estimation
// composition that reads an expectation value off the estimation register.
package qmc

import (
	"fmt"
	"math"

	"github.com/spindle-qc/spindle/internal/operation"
	"github.com/spindle-qc/spindle/internal/tape"
)

// MakeZ returns the reflection 2|0><0| - I on a register of the given
// dimension. dim must be a power of two.
func MakeZ(dim int) [][]complex128 {
	z := identity(dim)
	for i := 0; i < dim; i++ {
		if i == 0 {
			z[i][i] = 1
		} else {
			z[i][i] = -1
		}
	}
	return z
}

// MakeV returns the reflection 2(I x |1><1|) - I on a register of the given
// dimension, acting along the |1> state of the last qubit.
func MakeV(dim int) [][]complex128 {
	v := identity(dim)
	for i := 0; i < dim; i++ {
		if i%2 == 1 {
			v[i][i] = 1
		} else {
			v[i][i] = -1
		}
	}
	return v
}

func identity(dim int) [][]complex128 {
	m := make([][]complex128, dim)
	for i := range m {
		m[i] = make([]complex128, dim)
	}
	return m
}

// ApplyControlledZ queues a controlled version of -Z onto the recorder,
// where Z = 2|0><0| - I over wires. The minus sign is a global phase of the
// uncontrolled gate but matters once controlled; it cancels in the Q
// operator, which uses the reflection twice.
//
// The circuit conjugates a multi-controlled X on wires[0] by X and Hadamard,
// with the remaining register wires as zero-value controls and controlWire
// as a one-value control.
func ApplyControlledZ(rec *tape.Recorder, wires []int, controlWire int, workWires []int) {
	target := wires[0]
	controls := append(append([]int(nil), wires[1:]...), controlWire)
	values := ""
	for range wires[1:] {
		values += "0"
	}
	values += "1"

	rec.Apply(operation.PauliX(target))
	rec.Apply(operation.Hadamard(target))
	rec.Apply(operation.MultiControlledX(controls, target, values, workWires))
	rec.Apply(operation.Hadamard(target))
	rec.Apply(operation.PauliX(target))
}

// ApplyControlledV queues a controlled version of -V onto the recorder,
// where V = 2|1><1| - I on the rotation wire. Since -V is the Pauli Z
// matrix, the controlled gate is exactly CZ.
func ApplyControlledV(rec *tape.Recorder, rotationWire, controlWire int) {
	rec.Apply(operation.CZ(controlWire, rotationWire))
}

// Adjoint returns a subcircuit that undoes fn: the recorded operations in
// reverse order, each replaced by its adjoint. fn must queue only unitary
// operations; state preparations have no adjoint.
func Adjoint(fn func(*tape.Recorder)) (func(*tape.Recorder), error) {
	scratch := tape.Record(fn)
	ops := scratch.Operations()
	inverse := make([]*operation.Operation, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		adj, err := ops[i].Adjoint()
		if err != nil {
			return nil, fmt.Errorf("qmc: adjoint of %s: %w", ops[i].Name, err)
		}
		inverse = append(inverse, adj)
	}
	return func(rec *tape.Recorder) {
		for _, op := range inverse {
			rec.Apply(op)
		}
	}, nil
}

// ApplyControlledQ returns a subcircuit applying the controlled Q walk
// operator for the unitary queued by fn. Q = UV U-dagger V with both
// reflections controlled on controlWire; the two controlled -Z and -V
// reflections leave Q itself sign free.
//
// wires spans the register fn acts on, targetWire is the rotation qubit
// carrying the encoded function value and must be the last element of
// wires.
func ApplyControlledQ(fn func(*tape.Recorder), wires []int, targetWire, controlWire int, workWires []int) (func(*tape.Recorder), error) {
	if len(wires) == 0 || wires[len(wires)-1] != targetWire {
		return nil, fmt.Errorf("qmc: target wire %d must terminate the register %v", targetWire, wires)
	}
	fnInv, err := Adjoint(fn)
	if err != nil {
		return nil, err
	}
	return func(rec *tape.Recorder) {
		ApplyControlledV(rec, targetWire, controlWire)
		fnInv(rec)
		ApplyControlledZ(rec, wires, controlWire, workWires)
		fn(rec)
		ApplyControlledV(rec, targetWire, controlWire)
		fnInv(rec)
		ApplyControlledZ(rec, wires, controlWire, workWires)
		fn(rec)
	}, nil
}

// QFT queues the quantum Fourier transform on the given wires: a Hadamard
// and cascaded controlled phase rotations per wire, then a swap reversal.
func QFT(rec *tape.Recorder, wires []int) {
	n := len(wires)
	for i := 0; i < n; i++ {
		rec.Apply(operation.Hadamard(wires[i]))
		for j := i + 1; j < n; j++ {
			phi := math.Pi / float64(int(1)<<(j-i))
			rec.Apply(operation.ControlledPhaseShift(phi, wires[j], wires[i]))
		}
	}
	for i := 0; i < n/2; i++ {
		rec.Apply(operation.SWAP(wires[i], wires[n-1-i]))
	}
}

// QuantumMonteCarlo returns the full estimation circuit for the unitary
// queued by fn: fn itself, Hadamards across the estimation register,
// controlled powers of the Q walk operator with the first estimation wire
// controlling the highest power, and an inverse Fourier transform on the
// estimation register.
//
// Measuring the estimation register in the computational basis and locating
// the peak probability at outcome p recovers the encoded expectation value
// through (1 - cos(pi*p/2^n)) / 2.
func QuantumMonteCarlo(fn func(*tape.Recorder), wires []int, targetWire int, estimationWires []int, workWires []int) (func(*tape.Recorder), error) {
	if len(estimationWires) == 0 {
		return nil, fmt.Errorf("qmc: estimation register is empty")
	}
	n := len(estimationWires)
	controlled := make([]func(*tape.Recorder), n)
	for i, cw := range estimationWires {
		cq, err := ApplyControlledQ(fn, wires, targetWire, cw, workWires)
		if err != nil {
			return nil, err
		}
		controlled[i] = cq
	}
	adjQFT, err := Adjoint(func(rec *tape.Recorder) {
		QFT(rec, estimationWires)
	})
	if err != nil {
		return nil, err
	}

	return func(rec *tape.Recorder) {
		fn(rec)
		for i, cw := range estimationWires {
			rec.Apply(operation.Hadamard(cw))
			power := 1 << (n - 1 - i)
			for k := 0; k < power; k++ {
				controlled[i](rec)
			}
		}
		adjQFT(rec)
	}, nil
}
