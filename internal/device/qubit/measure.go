package qubit

import (
	"fmt"
	"math"

	"github.com/spindle-qc/spindle/internal/operation"
)

// measure evaluates one measurement terminator against the final state.
func (s *Simulator) measure(state []complex128, m *operation.Measurement) ([]float64, error) {
	switch m.Kind {
	case operation.MeasureExpval:
		e, err := s.expval(state, m.Observable)
		if err != nil {
			return nil, err
		}
		return []float64{e}, nil

	case operation.MeasureVariance:
		v, err := s.variance(state, m.Observable)
		if err != nil {
			return nil, err
		}
		return []float64{v}, nil

	case operation.MeasureProbs:
		return s.probs(state, m.Wires)

	case operation.MeasureSample:
		return s.sample(state, m.Observable)

	default:
		return nil, fmt.Errorf("qubit: unknown measurement kind %d", m.Kind)
	}
}

// expval computes ⟨ψ|O|ψ⟩ by applying the observable to a copy of the state
// and taking the inner product. Valid for Hermitian unitary observables
// (Paulis, Hadamard) and Hermitian QubitUnitary matrices.
func (s *Simulator) expval(state []complex128, obs *operation.Operation) (float64, error) {
	if obs == nil {
		return 0, fmt.Errorf("qubit: expectation measurement has no observable")
	}
	applied := make([]complex128, len(state))
	copy(applied, state)
	if err := s.applyOperation(applied, obs); err != nil {
		return 0, err
	}
	var e complex128
	for i := range state {
		re := real(state[i])
		im := imag(state[i])
		e += complex(re, -im) * applied[i]
	}
	return real(e), nil
}

// variance computes ⟨O²⟩ - ⟨O⟩².
func (s *Simulator) variance(state []complex128, obs *operation.Operation) (float64, error) {
	if obs == nil {
		return 0, fmt.Errorf("qubit: variance measurement has no observable")
	}
	e, err := s.expval(state, obs)
	if err != nil {
		return 0, err
	}
	o2, err := s.expvalSquared(state, obs)
	if err != nil {
		return 0, err
	}
	return o2 - e*e, nil
}

// expvalSquared computes ⟨ψ|O²|ψ⟩.
func (s *Simulator) expvalSquared(state []complex128, obs *operation.Operation) (float64, error) {
	applied := make([]complex128, len(state))
	copy(applied, state)
	if err := s.applyOperation(applied, obs); err != nil {
		return 0, err
	}
	if err := s.applyOperation(applied, obs); err != nil {
		return 0, err
	}
	var e complex128
	for i := range state {
		re := real(state[i])
		im := imag(state[i])
		e += complex(re, -im) * applied[i]
	}
	return real(e), nil
}

// probs computes the marginal probability distribution over a wire subset.
// The result index orders wires as given, first wire most significant.
func (s *Simulator) probs(state []complex128, wires []int) ([]float64, error) {
	for _, w := range wires {
		if w < 0 || w >= s.wires {
			return nil, fmt.Errorf("qubit: probability wire %d out of range for %d-wire device", w, s.wires)
		}
	}
	out := make([]float64, 1<<len(wires))
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		idx := 0
		for b, w := range wires {
			if i&s.bit(w) != 0 {
				idx |= 1 << (len(wires) - 1 - b)
			}
		}
		out[idx] += p
	}
	return out, nil
}

// diagonalizingGates returns the gate sequence rotating the observable's
// eigenbasis onto the computational basis.
func diagonalizingGates(obs *operation.Operation) ([]*operation.Operation, error) {
	w := obs.Wires[0]
	switch obs.Name {
	case operation.NamePauliZ:
		return nil, nil
	case operation.NamePauliX:
		return []*operation.Operation{operation.Hadamard(w)}, nil
	case operation.NamePauliY:
		return []*operation.Operation{operation.PauliZ(w), operation.S(w), operation.Hadamard(w)}, nil
	case operation.NameHadamard:
		return []*operation.Operation{operation.RY(-math.Pi/4, w)}, nil
	default:
		return nil, fmt.Errorf("qubit: cannot sample observable %q", obs.Name)
	}
}

// sample draws Shots() eigenvalue samples of a single-qubit observable.
func (s *Simulator) sample(state []complex128, obs *operation.Operation) ([]float64, error) {
	if obs == nil {
		return nil, fmt.Errorf("qubit: sample measurement has no observable")
	}
	if s.shots == 0 {
		return nil, fmt.Errorf("qubit: sample measurement requires a finite shot count")
	}

	rotated := make([]complex128, len(state))
	copy(rotated, state)
	diag, err := diagonalizingGates(obs)
	if err != nil {
		return nil, err
	}
	for _, g := range diag {
		if err := s.applyOperation(rotated, g); err != nil {
			return nil, err
		}
	}

	// Cumulative distribution over basis states.
	cum := make([]float64, len(rotated))
	total := 0.0
	for i, amp := range rotated {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
		cum[i] = total
	}

	bit := s.bit(obs.Wires[0])
	out := make([]float64, s.shots)
	for k := 0; k < s.shots; k++ {
		r := s.rng.Float64() * total
		idx := 0
		for idx < len(cum)-1 && cum[idx] <= r {
			idx++
		}
		if idx&bit == 0 {
			out[k] = 1
		} else {
			out[k] = -1
		}
	}
	return out, nil
}
