// Package operation defines the circuit elements recorded onto a quantum tape:
// gates with bound parameters and wires, and the measurement terminators that
// close a tape.
//
// Parameters are held as Value, which is either a plain float64 or a host
// tensor supplied by an interface binding. The tape core never inspects host
// tensors directly; it detaches them through the Scalar interface.
package operation

import "fmt"

// Value is a numeric circuit parameter. Concrete values are either float64
// constants or host autodiff values implementing Scalar.
type Value any

// Scalar is implemented by host values that can detach to a plain float64.
type Scalar interface {
	Float64() float64
}

// Float detaches a parameter value to a plain float64.
func Float(v Value) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case Scalar:
		return x.Float64(), nil
	default:
		return 0, fmt.Errorf("operation: parameter type %T is not numeric", v)
	}
}

// GradMethod describes how a gate's parameters can be differentiated.
type GradMethod int

// Supported gradient methods.
const (
	// GradNumeric restricts the gate to finite-difference differentiation.
	GradNumeric GradMethod = iota
	// GradAnalytic marks the gate as parameter-shift capable: its generator
	// has two eigenvalues, so d/dθ f(θ) = (f(θ+π/2) - f(θ-π/2)) / 2.
	GradAnalytic
)

// Gate names.
const (
	NamePauliX                 = "PauliX"
	NamePauliY                 = "PauliY"
	NamePauliZ                 = "PauliZ"
	NameHadamard               = "Hadamard"
	NameS                      = "S"
	NameSAdjoint               = "S.adj"
	NameT                      = "T"
	NameTAdjoint               = "T.adj"
	NamePhaseShift             = "PhaseShift"
	NameRX                     = "RX"
	NameRY                     = "RY"
	NameRZ                     = "RZ"
	NameRot                    = "Rot"
	NameCNOT                   = "CNOT"
	NameCZ                     = "CZ"
	NameSWAP                   = "SWAP"
	NameControlledPhaseShift   = "ControlledPhaseShift"
	NameMultiControlledX       = "MultiControlledX"
	NameQubitUnitary           = "QubitUnitary"
	NameControlledQubitUnitary = "ControlledQubitUnitary"
	NameBasisState             = "BasisState"
)

// Operation is a named gate with an ordered list of parameters and target
// wires. Operations are owned by the tape that recorded them; parameter
// values may be rebound between executions but the structure is fixed.
type Operation struct {
	Name   string
	Params []Value
	Wires  []int

	// Control metadata, used by MultiControlledX and ControlledQubitUnitary.
	ControlWires  []int
	ControlValues string
	WorkWires     []int

	// Matrix holds the unitary for QubitUnitary-style gates. It is an
	// attribute, not a flattened parameter: only scalar arguments take part
	// in parameter indexing.
	Matrix [][]complex128

	// Basis holds the target computational basis state for BasisState.
	Basis []int

	gradMethod GradMethod
}

// NumParams returns the number of scalar parameters carried by the operation.
func (o *Operation) NumParams() int {
	return len(o.Params)
}

// Method returns the gradient method supported by the operation.
func (o *Operation) Method() GradMethod {
	return o.gradMethod
}

// FloatParams detaches all parameters to plain float64 values.
func (o *Operation) FloatParams() ([]float64, error) {
	out := make([]float64, len(o.Params))
	for i, p := range o.Params {
		f, err := Float(p)
		if err != nil {
			return nil, fmt.Errorf("%s parameter %d: %w", o.Name, i, err)
		}
		out[i] = f
	}
	return out, nil
}

// Decomposition returns the primitive gate sequence implementing a composite
// operation, or nil if the operation is already primitive. The child
// operations carry the parent's parameter Values: plain numbers are copied,
// host tensor parameters keep their identity so differentiability markers
// survive expansion.
func (o *Operation) Decomposition() []*Operation {
	switch o.Name {
	case NameRot:
		w := o.Wires[0]
		return []*Operation{
			RZ(o.Params[0], w),
			RY(o.Params[1], w),
			RZ(o.Params[2], w),
		}
	case NameS:
		return []*Operation{PhaseShift(halfPi, o.Wires[0])}
	case NameT:
		return []*Operation{PhaseShift(quarterPi, o.Wires[0])}
	default:
		return nil
	}
}

func (o *Operation) String() string {
	if len(o.Params) == 0 {
		return fmt.Sprintf("%s(wires=%v)", o.Name, o.Wires)
	}
	return fmt.Sprintf("%s(%v, wires=%v)", o.Name, o.Params, o.Wires)
}
