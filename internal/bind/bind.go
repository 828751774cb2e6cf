// Package bind connects a quantum tape to the host automatic-differentiation
// graph. The tape core knows nothing about host tensors; this package scans
// tape parameters through a Host capability, reclassifies the trainable set,
// and records tape executions as custom backward nodes on the host gradient
// tape.
package bind

import (
	"github.com/spindle-qc/spindle/internal/grad"
	"github.com/spindle-qc/spindle/internal/operation"
	"github.com/spindle-qc/spindle/internal/tape"
)

// Host abstracts the autodiff framework's tensor representation: the tape
// core never inspects host values directly.
type Host interface {
	// IsDifferentiable reports whether the value is a host tensor marked for
	// gradient computation.
	IsDifferentiable(v operation.Value) bool
	// Unwrap detaches the value to a plain float64.
	Unwrap(v operation.Value) float64
}

// gradHost binds the grad package's variables.
type gradHost struct{}

func (gradHost) IsDifferentiable(v operation.Value) bool {
	x, ok := v.(*grad.Variable)
	return ok && x.RequiresGrad()
}

func (gradHost) Unwrap(v operation.Value) float64 {
	f, err := operation.Float(v)
	if err != nil {
		panic(err)
	}
	return f
}

// BoundTape is a quantum tape augmented with interface metadata and an
// attached host engine.
type BoundTape struct {
	*tape.Tape

	engine *grad.Engine
	host   Host
	dtype  grad.DType
}

// Option configures a binding.
type Option func(*BoundTape)

// WithDType sets the dtype of result variables. Defaults to Float64. The
// caller's dtype is preserved through execution and gradients; no promotion
// happens on either side.
func WithDType(d grad.DType) Option {
	return func(bt *BoundTape) { bt.dtype = d }
}

// WithHost overrides the host capability. Defaults to the grad binding.
func WithHost(h Host) Option {
	return func(bt *BoundTape) { bt.host = h }
}

// Apply binds a tape to a host engine. The tape's flattened parameters are
// rescanned: every value the host marks differentiable becomes trainable,
// replacing (not merging with) the previous trainable set. Applying again to
// the same tape re-runs the scan and yields the same set for the same
// parameter values.
func Apply(t *tape.Tape, engine *grad.Engine, opts ...Option) *BoundTape {
	bt := &BoundTape{
		Tape:   t,
		engine: engine,
		host:   gradHost{},
		dtype:  grad.Float64,
	}
	for _, opt := range opts {
		opt(bt)
	}
	bt.rescan()
	return bt
}

// rescan rebuilds the trainable set from host-tensor metadata.
func (bt *BoundTape) rescan() {
	var trainable []int
	for i, v := range bt.Tape.GetParameters(false) {
		if bt.host.IsDifferentiable(v) {
			trainable = append(trainable, i)
		}
	}
	// Indices come from the tape's own flattening, so they are in range.
	_ = bt.Tape.SetTrainableParams(trainable)
}

// Interface returns the interface tag.
func (bt *BoundTape) Interface() string {
	return "grad"
}

// DType returns the result dtype.
func (bt *BoundTape) DType() grad.DType {
	return bt.dtype
}

// Bare returns the wrapped tape for identity checks.
func (bt *BoundTape) Bare() *tape.Tape {
	return bt.Tape
}

// Engine returns the attached host engine.
func (bt *BoundTape) Engine() *grad.Engine {
	return bt.engine
}
