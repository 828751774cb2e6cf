package bind

import (
	"fmt"

	"github.com/spindle-qc/spindle/internal/device"
	"github.com/spindle-qc/spindle/internal/grad"
	"github.com/spindle-qc/spindle/internal/operation"
	"github.com/spindle-qc/spindle/internal/tape"
)

// Result holds the host variables produced by a bound execution. When every
// measurement terminator produces the same shape the results are stacked
// into one variable of shape (numMeasurements, dim); otherwise each
// terminator yields its own variable ("ragged" outputs).
type Result struct {
	stacked *grad.Variable
	ragged  []*grad.Variable
}

// Stacked returns the stacked variable when measurement shapes agree.
func (r *Result) Stacked() (*grad.Variable, bool) {
	return r.stacked, r.stacked != nil
}

// Ragged returns per-measurement variables when shapes differ.
func (r *Result) Ragged() []*grad.Variable {
	return r.ragged
}

// Variables returns all output variables regardless of raggedness.
func (r *Result) Variables() []*grad.Variable {
	if r.stacked != nil {
		return []*grad.Variable{r.stacked}
	}
	return r.ragged
}

// measurementDim returns the expected result length of a terminator. The
// stacking decision is made from the measurement list alone, before any
// result is seen.
func measurementDim(m *operation.Measurement, dev device.Device) int {
	switch m.Kind {
	case operation.MeasureProbs:
		return 1 << len(m.Wires)
	case operation.MeasureSample:
		return dev.Shots()
	default:
		return 1
	}
}

// Execute detaches host tensors to plain numerics, runs the tape natively on
// the device and wraps the raw results back into host variables attached to
// a custom backward node. The node computes the tape Jacobian exactly once
// per forward call and feeds Jᵀ·ḡ into the host's gradient accumulation;
// parameters outside the trainable set receive no gradient at all.
//
// With an empty trainable set the execution still succeeds, but no backward
// node is recorded: a host backward pass on the result reports
// grad.ErrNoGradPath.
func (bt *BoundTape) Execute(dev device.Device) (*Result, error) {
	raw, err := bt.Tape.Execute(dev, nil)
	if err != nil {
		return nil, err
	}

	ms := bt.Measurements()
	dims := make([]int, len(ms))
	stacked := true
	for i, m := range ms {
		dims[i] = measurementDim(m, dev)
		if dims[i] != dims[0] {
			stacked = false
		}
	}

	inputs, err := bt.trainableVariables()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var outputs []*grad.Variable

	if stacked {
		flat := tape.Flatten(raw)
		shape := grad.Shape{len(ms)}
		if len(ms) > 0 && dims[0] > 1 {
			shape = grad.Shape{len(ms), dims[0]}
		}
		v, err := grad.FromSlice(flat, shape)
		if err != nil {
			return nil, err
		}
		v.WithDType(bt.dtype)
		if len(inputs) > 0 {
			v.RequireGrad()
		}
		res.stacked = v
		outputs = []*grad.Variable{v}
	} else {
		outputs = make([]*grad.Variable, len(raw))
		for i, r := range raw {
			v, err := grad.FromSlice(r, grad.Shape{len(r)})
			if err != nil {
				return nil, err
			}
			v.WithDType(bt.dtype)
			if len(inputs) > 0 {
				v.RequireGrad()
			}
			outputs[i] = v
		}
		res.ragged = outputs
	}

	if len(inputs) > 0 {
		bt.engine.Tape().Record(&quantumOp{
			tape:    bt.Tape,
			dev:     dev,
			opts:    bt.JacobianOptions,
			inputs:  inputs,
			outputs: outputs,
		})
	}
	return res, nil
}

// trainableVariables collects the host variables behind the trainable set.
func (bt *BoundTape) trainableVariables() ([]*grad.Variable, error) {
	params := bt.GetParameters(true)
	out := make([]*grad.Variable, 0, len(params))
	for _, p := range params {
		v, ok := p.(*grad.Variable)
		if !ok {
			return nil, fmt.Errorf("bind: trainable parameter %v is not a host variable", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// quantumOp is the custom backward node bridging a tape execution into the
// host graph. It is a multi-output operation so ragged results share one
// Jacobian computation.
type quantumOp struct {
	tape    *tape.Tape
	dev     device.Device
	opts    tape.JacobianOptions
	inputs  []*grad.Variable
	outputs []*grad.Variable

	jac      [][]float64
	computed bool
}

func (q *quantumOp) Inputs() []*grad.Variable  { return q.inputs }
func (q *quantumOp) Output() *grad.Variable    { return q.outputs[0] }
func (q *quantumOp) Outputs() []*grad.Variable { return q.outputs }

// jacobian computes the tape Jacobian once per forward call.
func (q *quantumOp) jacobian() [][]float64 {
	if !q.computed {
		jac, err := q.tape.Jacobian(q.dev, q.opts)
		if err != nil {
			panic(fmt.Sprintf("bind: jacobian: %v", err))
		}
		q.jac = jac
		q.computed = true
	}
	return q.jac
}

func (q *quantumOp) Backward(outputGrad []float64) [][]float64 {
	return q.vjp(outputGrad)
}

func (q *quantumOp) BackwardMulti(outputGrads [][]float64) [][]float64 {
	n := 0
	for _, g := range outputGrads {
		n += len(g)
	}
	flat := make([]float64, 0, n)
	for _, g := range outputGrads {
		flat = append(flat, g...)
	}
	return q.vjp(flat)
}

// vjp computes the vector-Jacobian product Jᵀ·ḡ, one scalar gradient per
// trainable input.
func (q *quantumOp) vjp(outputGrad []float64) [][]float64 {
	jac := q.jacobian()
	out := make([][]float64, len(q.inputs))
	for k := range q.inputs {
		sum := 0.0
		for i := range jac {
			sum += outputGrad[i] * jac[i][k]
		}
		out[k] = []float64{sum}
	}
	return out
}
