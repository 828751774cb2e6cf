// Package qubit implements an analytic statevector simulator backing the
// device capability.
//
// The simulator keeps the full 2^n complex amplitude vector and applies gate
// kernels in place. Wire 0 is the most significant bit of the amplitude
// index, so basis state |10⟩ on two wires is index 2.
package qubit

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spindle-qc/spindle/internal/operation"
	"github.com/spindle-qc/spindle/internal/parallel"
)

// Simulator is a statevector device.
//
// A zero shot count selects analytic mode: expectation values, variances and
// probabilities are exact. Sample measurements require a finite shot count.
type Simulator struct {
	wires int
	shots int
	rng   *rand.Rand
	par   parallel.Config
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithShots sets a finite shot count for sample measurements.
func WithShots(n int) Option {
	return func(s *Simulator) { s.shots = n }
}

// WithSeed seeds the sampling RNG for reproducible shot results.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New creates a simulator over the given number of wires.
func New(wires int, opts ...Option) *Simulator {
	s := &Simulator{
		wires: wires,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		par:   parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NumWires returns the register size.
func (s *Simulator) NumWires() int {
	return s.wires
}

// Shots returns the configured shot count, zero meaning analytic mode.
func (s *Simulator) Shots() int {
	return s.shots
}

// Execute runs the bound operation sequence from |0...0⟩ and evaluates each
// measurement terminator, returning one result vector per terminator.
func (s *Simulator) Execute(ops []*operation.Operation, measurements []*operation.Measurement) ([][]float64, error) {
	state := s.newState()
	for _, op := range ops {
		if err := s.applyOperation(state, op); err != nil {
			return nil, err
		}
	}

	results := make([][]float64, len(measurements))
	for i, m := range measurements {
		r, err := s.measure(state, m)
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return results, nil
}

// State runs the operation sequence from |0...0⟩ and returns the final
// amplitude vector. Useful for inspecting circuit action up to phase, which
// probability measurements cannot distinguish.
func (s *Simulator) State(ops []*operation.Operation) ([]complex128, error) {
	state := s.newState()
	for _, op := range ops {
		if err := s.applyOperation(state, op); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// newState allocates the |0...0⟩ statevector.
func (s *Simulator) newState() []complex128 {
	state := make([]complex128, 1<<s.wires)
	state[0] = 1
	return state
}

// bit returns the amplitude-index bit mask for a wire.
func (s *Simulator) bit(wire int) int {
	return 1 << (s.wires - 1 - wire)
}

func (s *Simulator) checkWires(op *operation.Operation) error {
	for _, w := range append(append([]int{}, op.Wires...), op.ControlWires...) {
		if w < 0 || w >= s.wires {
			return fmt.Errorf("qubit: %s wire %d out of range for %d-wire device", op.Name, w, s.wires)
		}
	}
	return nil
}

// applyOperation dispatches a gate to its kernel.
func (s *Simulator) applyOperation(state []complex128, op *operation.Operation) error {
	if err := s.checkWires(op); err != nil {
		return err
	}

	params, err := op.FloatParams()
	if err != nil {
		return err
	}

	if m, ok := singleQubitMatrix(op.Name, params); ok {
		s.applySingle(state, m, op.Wires[0])
		return nil
	}

	switch op.Name {
	case operation.NameCNOT:
		s.applyControlledSingle(state, matX, []int{op.Wires[0]}, "1", op.Wires[1])
	case operation.NameCZ:
		s.applyControlledSingle(state, matZ, []int{op.Wires[0]}, "1", op.Wires[1])
	case operation.NameControlledPhaseShift:
		s.applyControlledSingle(state, matPhase(params[0]), []int{op.Wires[0]}, "1", op.Wires[1])
	case operation.NameSWAP:
		s.applySwap(state, op.Wires[0], op.Wires[1])
	case operation.NameMultiControlledX:
		if len(op.ControlValues) != len(op.ControlWires) {
			return fmt.Errorf("qubit: MultiControlledX control value length %d does not match %d control wires",
				len(op.ControlValues), len(op.ControlWires))
		}
		s.applyControlledSingle(state, matX, op.ControlWires, op.ControlValues, op.Wires[0])
	case operation.NameQubitUnitary:
		return s.applyUnitary(state, op.Matrix, op.Wires, nil)
	case operation.NameControlledQubitUnitary:
		return s.applyUnitary(state, op.Matrix, op.Wires, op.ControlWires)
	case operation.NameBasisState:
		return s.applyBasisState(state, op)
	default:
		return fmt.Errorf("qubit: unknown gate %q", op.Name)
	}
	return nil
}

// applyBasisState resets the register to a computational basis state.
func (s *Simulator) applyBasisState(state []complex128, op *operation.Operation) error {
	if len(op.Basis) != len(op.Wires) {
		return fmt.Errorf("qubit: BasisState has %d bits for %d wires", len(op.Basis), len(op.Wires))
	}
	idx := 0
	for i, w := range op.Wires {
		switch op.Basis[i] {
		case 0:
		case 1:
			idx |= s.bit(w)
		default:
			return fmt.Errorf("qubit: BasisState bit %d is %d, want 0 or 1", i, op.Basis[i])
		}
	}
	for i := range state {
		state[i] = 0
	}
	state[idx] = 1
	return nil
}
