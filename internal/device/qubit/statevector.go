package qubit

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/spindle-qc/spindle/internal/operation"
	"github.com/spindle-qc/spindle/internal/parallel"
)

var (
	matX = [2][2]complex128{{0, 1}, {1, 0}}
	matY = [2][2]complex128{{0, -1i}, {1i, 0}}
	matZ = [2][2]complex128{{1, 0}, {0, -1}}
	matH = [2][2]complex128{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	matS   = [2][2]complex128{{1, 0}, {0, 1i}}
	matSdg = [2][2]complex128{{1, 0}, {0, -1i}}
	matT   = [2][2]complex128{{1, 0}, {0, cmplx.Exp(1i * math.Pi / 4)}}
	matTdg = [2][2]complex128{{1, 0}, {0, cmplx.Exp(-1i * math.Pi / 4)}}
)

func matPhase(phi float64) [2][2]complex128 {
	return [2][2]complex128{{1, 0}, {0, cmplx.Exp(complex(0, phi))}}
}

func matRX(theta float64) [2][2]complex128 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return [2][2]complex128{{c, s}, {s, c}}
}

func matRY(theta float64) [2][2]complex128 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return [2][2]complex128{{c, -s}, {s, c}}
}

func matRZ(theta float64) [2][2]complex128 {
	return [2][2]complex128{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

func matMul2(a, b [2][2]complex128) [2][2]complex128 {
	var out [2][2]complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j]
		}
	}
	return out
}

// singleQubitMatrix returns the 2x2 matrix for uncontrolled single-qubit
// gates. Rot is handled here as its composed matrix so unexpanded tapes
// execute directly.
func singleQubitMatrix(name string, params []float64) ([2][2]complex128, bool) {
	switch name {
	case operation.NamePauliX:
		return matX, true
	case operation.NamePauliY:
		return matY, true
	case operation.NamePauliZ:
		return matZ, true
	case operation.NameHadamard:
		return matH, true
	case operation.NameS:
		return matS, true
	case operation.NameSAdjoint:
		return matSdg, true
	case operation.NameT:
		return matT, true
	case operation.NameTAdjoint:
		return matTdg, true
	case operation.NamePhaseShift:
		return matPhase(params[0]), true
	case operation.NameRX:
		return matRX(params[0]), true
	case operation.NameRY:
		return matRY(params[0]), true
	case operation.NameRZ:
		return matRZ(params[0]), true
	case operation.NameRot:
		return matMul2(matRZ(params[2]), matMul2(matRY(params[1]), matRZ(params[0]))), true
	default:
		return [2][2]complex128{}, false
	}
}

// applySingle applies a 2x2 matrix to one wire.
func (s *Simulator) applySingle(state []complex128, m [2][2]complex128, wire int) {
	bit := s.bit(wire)
	parallel.For(len(state), func(i int) {
		if i&bit != 0 {
			return
		}
		j := i | bit
		a0, a1 := state[i], state[j]
		state[i] = m[0][0]*a0 + m[0][1]*a1
		state[j] = m[1][0]*a0 + m[1][1]*a1
	}, s.par)
}

// controlsMatch reports whether index i satisfies the control pattern.
func (s *Simulator) controlsMatch(i int, controlWires []int, controlValues string) bool {
	for k, w := range controlWires {
		set := i&s.bit(w) != 0
		if set != (controlValues[k] == '1') {
			return false
		}
	}
	return true
}

// applyControlledSingle applies a 2x2 matrix to the target wire on the
// subspace selected by the control pattern.
func (s *Simulator) applyControlledSingle(state []complex128, m [2][2]complex128, controlWires []int, controlValues string, target int) {
	bit := s.bit(target)
	parallel.For(len(state), func(i int) {
		if i&bit != 0 {
			return
		}
		if !s.controlsMatch(i, controlWires, controlValues) {
			return
		}
		j := i | bit
		a0, a1 := state[i], state[j]
		state[i] = m[0][0]*a0 + m[0][1]*a1
		state[j] = m[1][0]*a0 + m[1][1]*a1
	}, s.par)
}

func (s *Simulator) applySwap(state []complex128, a, b int) {
	bitA, bitB := s.bit(a), s.bit(b)
	parallel.For(len(state), func(i int) {
		if i&bitA != 0 || i&bitB == 0 {
			return
		}
		j := i ^ bitA ^ bitB
		state[i], state[j] = state[j], state[i]
	}, s.par)
}

// applyUnitary applies a 2^k x 2^k matrix to k wires, optionally conditioned
// on all control wires being set. Wire order follows the amplitude index
// convention: wires[0] is the most significant bit of the sub-index.
func (s *Simulator) applyUnitary(state []complex128, matrix [][]complex128, wires, controlWires []int) error {
	k := len(wires)
	dim := 1 << k
	if len(matrix) != dim {
		return fmt.Errorf("qubit: unitary has dimension %d, want %d for %d wires", len(matrix), dim, k)
	}
	for _, row := range matrix {
		if len(row) != dim {
			return fmt.Errorf("qubit: unitary is not square")
		}
	}

	wireMask := 0
	for _, w := range wires {
		wireMask |= s.bit(w)
	}

	// Sub-index offsets: offset[j] maps matrix index j to amplitude bits.
	offsets := make([]int, dim)
	for j := 0; j < dim; j++ {
		for b := 0; b < k; b++ {
			if j>>(k-1-b)&1 == 1 {
				offsets[j] |= s.bit(wires[b])
			}
		}
	}

	allOnes := ""
	for range controlWires {
		allOnes += "1"
	}

	parallel.For(len(state), func(base int) {
		if base&wireMask != 0 {
			return
		}
		if len(controlWires) > 0 && !s.controlsMatch(base, controlWires, allOnes) {
			return
		}
		old := make([]complex128, dim)
		for j := 0; j < dim; j++ {
			old[j] = state[base|offsets[j]]
		}
		for j := 0; j < dim; j++ {
			var sum complex128
			for l := 0; l < dim; l++ {
				sum += matrix[j][l] * old[l]
			}
			state[base|offsets[j]] = sum
		}
	}, s.par)

	return nil
}
