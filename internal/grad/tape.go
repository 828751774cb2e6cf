package grad

import (
	"errors"
	"fmt"
)

// ErrNoGradPath is returned when a backward pass is requested for a variable
// that no recorded operation produced: the output is constant with respect to
// every tracked input.
var ErrNoGradPath = errors.New("grad: variable does not require grad and has no gradient path")

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass, and
// computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient slice per input; a nil entry means "no gradient"
	// (the input is constant), which is distinct from a zero gradient.
	Backward(outputGrad []float64) [][]float64

	// Inputs returns the input variables for this operation.
	Inputs() []*Variable

	// Output returns the output variable produced by this operation.
	Output() *Variable
}

// MultiOutputOperation represents an operation producing multiple outputs,
// such as a quantum tape execution with ragged measurement results. The tape
// collects gradients for ALL outputs before calling BackwardMulti; outputs
// without an incoming gradient are zero-filled.
type MultiOutputOperation interface {
	Operation

	// Outputs returns all output variables produced by this operation.
	Outputs() []*Variable

	// BackwardMulti computes input gradients given gradients for all outputs.
	BackwardMulti(outputGrads [][]float64) [][]float64
}

// Tape records operations during the forward pass and computes gradients
// during the backward pass using reverse-mode automatic differentiation.
type Tape struct {
	operations []Operation
	recording  bool
}

// NewTape creates a new gradient tape.
func NewTape() *Tape {
	return &Tape{
		operations: make([]Operation, 0, 16),
	}
}

// StartRecording enables operation recording.
func (t *Tape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *Tape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *Tape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *Tape) Record(op Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Clear resets the tape, removing all recorded operations.
// Recording state is preserved.
func (t *Tape) Clear() {
	t.operations = t.operations[:0]
}

// NumOps returns the number of recorded operations.
func (t *Tape) NumOps() int {
	return len(t.operations)
}

// Backward seeds the output gradient with ones and walks the tape in
// reverse, accumulating gradients through the chain rule. Gradients are
// attached to every variable that requires them. Returns ErrNoGradPath if no
// recorded operation produced out.
func (t *Tape) Backward(out *Variable) error {
	if !t.produced(out) {
		return fmt.Errorf("%w: backward on %s", ErrNoGradPath, out)
	}

	// Gradient operations must not themselves be recorded.
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	seed := make([]float64, len(out.data))
	for i := range seed {
		seed[i] = 1
	}
	grads := map[*Variable][]float64{out: seed}

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		inputGrads := computeInputGrads(op, grads)
		if inputGrads == nil {
			continue
		}
		accumulate(op, inputGrads, grads)
	}

	for v, g := range grads {
		if !v.requiresGrad {
			continue
		}
		v.grad = &Variable{data: g, shape: v.shape.Clone(), dtype: v.dtype}
	}
	return nil
}

// produced reports whether any recorded operation has out among its outputs.
func (t *Tape) produced(out *Variable) bool {
	for _, op := range t.operations {
		if multi, ok := op.(MultiOutputOperation); ok {
			for _, o := range multi.Outputs() {
				if o == out {
					return true
				}
			}
			continue
		}
		if op.Output() == out {
			return true
		}
	}
	return false
}

// computeInputGrads computes gradients for an operation's inputs.
// Returns nil if no gradient flows to this operation.
func computeInputGrads(op Operation, grads map[*Variable][]float64) [][]float64 {
	if multi, ok := op.(MultiOutputOperation); ok {
		outputs := multi.Outputs()
		outputGrads := make([][]float64, len(outputs))
		hasAny := false
		for j, o := range outputs {
			if g, ok := grads[o]; ok {
				outputGrads[j] = g
				hasAny = true
			}
		}
		if !hasAny {
			return nil
		}
		for j, o := range outputs {
			if outputGrads[j] == nil {
				outputGrads[j] = make([]float64, len(o.data))
			}
		}
		return multi.BackwardMulti(outputGrads)
	}

	g, ok := grads[op.Output()]
	if !ok {
		return nil
	}
	return op.Backward(g)
}

// accumulate adds input gradients into the gradient map, summing when the
// same variable feeds multiple operations.
func accumulate(op Operation, inputGrads [][]float64, grads map[*Variable][]float64) {
	inputs := op.Inputs()
	for j, input := range inputs {
		if j >= len(inputGrads) {
			break
		}
		g := inputGrads[j]
		if g == nil {
			continue
		}
		if existing, ok := grads[input]; ok {
			summed := make([]float64, len(existing))
			for i := range existing {
				summed[i] = existing[i] + g[i]
			}
			grads[input] = summed
		} else {
			grads[input] = g
		}
	}
}
