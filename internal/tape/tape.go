// Package tape implements the quantum tape: an ordered recording of
// operations and measurement terminators with flattened parameter indexing,
// expansion, execution dispatch and numerical differentiation.
//
// Recording is explicit and scoped. Record runs a function against a
// Recorder handle and returns the populated tape; there is no ambient global
// recording context.
package tape

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spindle-qc/spindle/internal/device"
	"github.com/spindle-qc/spindle/internal/operation"
)

// ErrParameterCount is returned when SetParameters receives a value count
// inconsistent with the tape's parameter or trainable-subset count.
var ErrParameterCount = errors.New("tape: parameter count mismatch")

// paramRef locates one flattened parameter inside the operation list.
type paramRef struct {
	op  int
	arg int
}

// Tape is an ordered sequence of operations followed by measurement
// terminators. Parameter indices are assigned by flattening every scalar
// gate argument in queue order; the assignment is stable under re-execution
// with new values and recomputed on expansion.
//
// A tape is single-owner: concurrent use of one instance is out of contract.
type Tape struct {
	id           string
	ops          []*operation.Operation
	measurements []*operation.Measurement
	params       []paramRef
	trainable    map[int]struct{}

	// JacobianOptions configures numerical differentiation for this tape.
	JacobianOptions JacobianOptions
}

// Recorder appends circuit elements to a tape during a Record scope.
type Recorder struct {
	t *Tape
}

// Apply queues an operation in construction order.
func (r *Recorder) Apply(op *operation.Operation) {
	r.t.ops = append(r.t.ops, op)
}

// Measure queues a measurement terminator.
func (r *Recorder) Measure(m *operation.Measurement) {
	r.t.measurements = append(r.t.measurements, m)
}

// Record runs fn against a fresh tape's Recorder and returns the recorded
// tape. Every operation and measurement applied during fn is appended in
// construction order; the parameter index is built when fn returns.
func Record(fn func(*Recorder)) *Tape {
	t := &Tape{
		id:              uuid.NewString(),
		JacobianOptions: DefaultJacobianOptions(),
	}
	fn(&Recorder{t: t})
	t.finalize()
	return t
}

// finalize builds the flattened parameter index and resets the trainable
// set to all parameters.
func (t *Tape) finalize() {
	t.params = t.params[:0]
	for i, op := range t.ops {
		for j := range op.Params {
			t.params = append(t.params, paramRef{op: i, arg: j})
		}
	}
	t.trainable = make(map[int]struct{}, len(t.params))
	for i := range t.params {
		t.trainable[i] = struct{}{}
	}
}

// ID returns the tape's unique identifier.
func (t *Tape) ID() string {
	return t.id
}

// Operations returns the recorded operation sequence.
func (t *Tape) Operations() []*operation.Operation {
	return t.ops
}

// Measurements returns the recorded measurement terminators.
func (t *Tape) Measurements() []*operation.Measurement {
	return t.measurements
}

// NumParams returns the flattened parameter count.
func (t *Tape) NumParams() int {
	return len(t.params)
}

// TrainableParams returns the sorted trainable parameter indices.
func (t *Tape) TrainableParams() []int {
	out := make([]int, 0, len(t.trainable))
	for i := range t.params {
		if _, ok := t.trainable[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// SetTrainableParams replaces the trainable set. Indices out of range are
// rejected.
func (t *Tape) SetTrainableParams(indices []int) error {
	set := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(t.params) {
			return fmt.Errorf("tape: trainable index %d out of range for %d parameters", i, len(t.params))
		}
		set[i] = struct{}{}
	}
	t.trainable = set
	return nil
}

// paramOp returns the operation owning a flattened parameter index.
func (t *Tape) paramOp(idx int) *operation.Operation {
	return t.ops[t.params[idx].op]
}

// GetParameters returns parameter values in flattened order, restricted to
// the trainable subset when trainableOnly is set.
func (t *Tape) GetParameters(trainableOnly bool) []operation.Value {
	var out []operation.Value
	for i, ref := range t.params {
		if trainableOnly {
			if _, ok := t.trainable[i]; !ok {
				continue
			}
		}
		out = append(out, t.ops[ref.op].Params[ref.arg])
	}
	return out
}

// SetParameters rebinds parameter values. The value count must match the
// trainable-subset count when trainableOnly is set, and the full parameter
// count otherwise; a mismatch fails before touching any operation.
func (t *Tape) SetParameters(values []operation.Value, trainableOnly bool) error {
	if trainableOnly {
		if len(values) != len(t.trainable) {
			return fmt.Errorf("%w: got %d values for %d trainable parameters",
				ErrParameterCount, len(values), len(t.trainable))
		}
		k := 0
		for i, ref := range t.params {
			if _, ok := t.trainable[i]; !ok {
				continue
			}
			t.ops[ref.op].Params[ref.arg] = values[k]
			k++
		}
		return nil
	}

	if len(values) != len(t.params) {
		return fmt.Errorf("%w: got %d values for %d parameters",
			ErrParameterCount, len(values), len(t.params))
	}
	for i, ref := range t.params {
		t.ops[ref.op].Params[ref.arg] = values[i]
	}
	return nil
}

// Execute rebinds the trainable parameters if params is non-nil, dispatches
// the tape to the device and returns the raw per-measurement results. The
// trainable set is never mutated by execution.
func (t *Tape) Execute(dev device.Device, params []operation.Value) ([][]float64, error) {
	if params != nil {
		if err := t.SetParameters(params, true); err != nil {
			return nil, err
		}
	}
	return dev.Execute(t.ops, t.measurements)
}
