package operation

import "fmt"

// Adjoint returns the inverse of the operation. Rotation angles are detached
// to plain float64 before negation, so adjoint segments are constant with
// respect to differentiation. BasisState is state preparation, not a unitary,
// and has no adjoint.
func (o *Operation) Adjoint() (*Operation, error) {
	switch o.Name {
	case NamePauliX, NamePauliY, NamePauliZ, NameHadamard,
		NameCNOT, NameCZ, NameSWAP:
		return o.Clone(), nil

	case NameMultiControlledX:
		return o.Clone(), nil

	case NameS:
		return SAdjoint(o.Wires[0]), nil
	case NameSAdjoint:
		return S(o.Wires[0]), nil
	case NameT:
		return TAdjoint(o.Wires[0]), nil
	case NameTAdjoint:
		return T(o.Wires[0]), nil

	case NamePhaseShift, NameRX, NameRY, NameRZ:
		theta, err := Float(o.Params[0])
		if err != nil {
			return nil, err
		}
		inv := o.Clone()
		inv.Params = []Value{-theta}
		return inv, nil

	case NameControlledPhaseShift:
		phi, err := Float(o.Params[0])
		if err != nil {
			return nil, err
		}
		return ControlledPhaseShift(-phi, o.Wires[0], o.Wires[1]), nil

	case NameRot:
		phi, err := Float(o.Params[0])
		if err != nil {
			return nil, err
		}
		theta, err := Float(o.Params[1])
		if err != nil {
			return nil, err
		}
		omega, err := Float(o.Params[2])
		if err != nil {
			return nil, err
		}
		return Rot(-omega, -theta, -phi, o.Wires[0]), nil

	case NameQubitUnitary, NameControlledQubitUnitary:
		inv := o.Clone()
		inv.Matrix = conjugateTranspose(o.Matrix)
		return inv, nil

	default:
		return nil, fmt.Errorf("operation: %s has no adjoint", o.Name)
	}
}

// Clone returns a copy of the operation. Slices are copied; parameter Value
// slots are shallow, so host tensor parameters keep their identity while
// plain numeric parameters become independent.
func (o *Operation) Clone() *Operation {
	c := *o
	c.Params = append([]Value(nil), o.Params...)
	c.Wires = append([]int(nil), o.Wires...)
	c.ControlWires = append([]int(nil), o.ControlWires...)
	c.WorkWires = append([]int(nil), o.WorkWires...)
	c.Basis = append([]int(nil), o.Basis...)
	return &c
}

func conjugateTranspose(m [][]complex128) [][]complex128 {
	n := len(m)
	out := make([][]complex128, n)
	for i := range out {
		out[i] = make([]complex128, n)
		for j := 0; j < n; j++ {
			re := real(m[j][i])
			im := imag(m[j][i])
			out[i][j] = complex(re, -im)
		}
	}
	return out
}
