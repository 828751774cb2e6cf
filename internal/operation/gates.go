package operation

import "math"

const (
	halfPi    = math.Pi / 2
	quarterPi = math.Pi / 4
)

// PauliX returns a bit-flip gate on the given wire.
func PauliX(wire int) *Operation {
	return &Operation{Name: NamePauliX, Wires: []int{wire}}
}

// PauliY returns a Pauli-Y gate on the given wire.
func PauliY(wire int) *Operation {
	return &Operation{Name: NamePauliY, Wires: []int{wire}}
}

// PauliZ returns a phase-flip gate on the given wire.
func PauliZ(wire int) *Operation {
	return &Operation{Name: NamePauliZ, Wires: []int{wire}}
}

// Hadamard returns a Hadamard gate on the given wire.
func Hadamard(wire int) *Operation {
	return &Operation{Name: NameHadamard, Wires: []int{wire}}
}

// S returns the phase gate diag(1, i) on the given wire.
func S(wire int) *Operation {
	return &Operation{Name: NameS, Wires: []int{wire}}
}

// SAdjoint returns the inverse phase gate diag(1, -i).
func SAdjoint(wire int) *Operation {
	return &Operation{Name: NameSAdjoint, Wires: []int{wire}}
}

// T returns the T gate diag(1, exp(iπ/4)) on the given wire.
func T(wire int) *Operation {
	return &Operation{Name: NameT, Wires: []int{wire}}
}

// TAdjoint returns the inverse T gate.
func TAdjoint(wire int) *Operation {
	return &Operation{Name: NameTAdjoint, Wires: []int{wire}}
}

// PhaseShift returns diag(1, exp(iφ)) on the given wire. Its generator is a
// projector rather than a Pauli operator, so it differentiates numerically.
func PhaseShift(phi Value, wire int) *Operation {
	return &Operation{Name: NamePhaseShift, Params: []Value{phi}, Wires: []int{wire}}
}

// RX returns an X-axis rotation exp(-iθX/2) on the given wire.
func RX(theta Value, wire int) *Operation {
	return &Operation{Name: NameRX, Params: []Value{theta}, Wires: []int{wire}, gradMethod: GradAnalytic}
}

// RY returns a Y-axis rotation exp(-iθY/2) on the given wire.
func RY(theta Value, wire int) *Operation {
	return &Operation{Name: NameRY, Params: []Value{theta}, Wires: []int{wire}, gradMethod: GradAnalytic}
}

// RZ returns a Z-axis rotation exp(-iθZ/2) on the given wire.
func RZ(theta Value, wire int) *Operation {
	return &Operation{Name: NameRZ, Params: []Value{theta}, Wires: []int{wire}, gradMethod: GradAnalytic}
}

// Rot returns the general single-qubit rotation RZ(ω)·RY(θ)·RZ(φ). It is a
// composite gate: Decomposition yields the primitive rotation sequence.
func Rot(phi, theta, omega Value, wire int) *Operation {
	return &Operation{Name: NameRot, Params: []Value{phi, theta, omega}, Wires: []int{wire}, gradMethod: GradAnalytic}
}

// CNOT returns a controlled bit-flip between two wires.
func CNOT(control, target int) *Operation {
	return &Operation{Name: NameCNOT, Wires: []int{control, target}}
}

// CZ returns a controlled phase-flip between two wires.
func CZ(control, target int) *Operation {
	return &Operation{Name: NameCZ, Wires: []int{control, target}}
}

// SWAP exchanges the states of two wires.
func SWAP(a, b int) *Operation {
	return &Operation{Name: NameSWAP, Wires: []int{a, b}}
}

// ControlledPhaseShift returns diag(1, 1, 1, exp(iφ)) with the first wire as
// control.
func ControlledPhaseShift(phi Value, control, target int) *Operation {
	return &Operation{
		Name:   NameControlledPhaseShift,
		Params: []Value{phi},
		Wires:  []int{control, target},
	}
}

// MultiControlledX returns a bit-flip on the target wire conditioned on the
// control wires matching controlValues ("1" meaning the control must be set,
// "0" meaning it must be unset). len(controlValues) must equal
// len(controlWires); a mismatch surfaces as an execution error from the
// device, not here. workWires are optional scratch wires a hardware-oriented
// device may use; the statevector simulator ignores them.
func MultiControlledX(controlWires []int, target int, controlValues string, workWires []int) *Operation {
	return &Operation{
		Name:          NameMultiControlledX,
		Wires:         []int{target},
		ControlWires:  append([]int(nil), controlWires...),
		ControlValues: controlValues,
		WorkWires:     append([]int(nil), workWires...),
	}
}

// QubitUnitary applies an arbitrary 2^n x 2^n unitary to the given wires.
// The matrix is an attribute rather than a parameter: it does not take part
// in parameter flattening or differentiation.
func QubitUnitary(matrix [][]complex128, wires ...int) *Operation {
	return &Operation{Name: NameQubitUnitary, Wires: append([]int(nil), wires...), Matrix: matrix}
}

// ControlledQubitUnitary applies a unitary to the given wires conditioned on
// all control wires being set.
func ControlledQubitUnitary(matrix [][]complex128, controlWires []int, wires ...int) *Operation {
	return &Operation{
		Name:         NameControlledQubitUnitary,
		Wires:        append([]int(nil), wires...),
		ControlWires: append([]int(nil), controlWires...),
		Matrix:       matrix,
	}
}

// BasisState prepares the given computational basis state on the wires.
// The bit list is state preparation data, not a differentiable parameter.
func BasisState(bits []int, wires ...int) *Operation {
	return &Operation{Name: NameBasisState, Wires: append([]int(nil), wires...), Basis: append([]int(nil), bits...)}
}
