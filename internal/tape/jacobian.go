package tape

import (
	"fmt"
	"math"

	"github.com/spindle-qc/spindle/internal/device"
	"github.com/spindle-qc/spindle/internal/operation"
)

// Differentiation methods accepted by JacobianOptions.
const (
	MethodBest     = "best"
	MethodNumeric  = "numeric"
	MethodAnalytic = "analytic"
)

// JacobianOptions configures numerical differentiation.
type JacobianOptions struct {
	// H is the finite-difference step size.
	H float64
	// Order selects the stencil: 1 for forward difference, 2 for central.
	// Central difference halves the truncation error at twice the device
	// call cost.
	Order int
	// Method selects the strategy: MethodNumeric forces finite differences,
	// MethodAnalytic forces the parameter-shift rule, MethodBest picks
	// parameter-shift per operation where supported.
	Method string
}

// DefaultJacobianOptions returns the default differentiation configuration.
func DefaultJacobianOptions() JacobianOptions {
	return JacobianOptions{H: 1e-7, Order: 1, Method: MethodBest}
}

func (o JacobianOptions) withDefaults() JacobianOptions {
	def := DefaultJacobianOptions()
	if o.H == 0 {
		o.H = def.H
	}
	if o.Order == 0 {
		o.Order = def.Order
	}
	if o.Method == "" {
		o.Method = def.Method
	}
	return o
}

// Jacobian computes d(outputs)/d(trainable parameters), where outputs are
// the flattened concatenation of all measurement results. The returned
// matrix has shape (numOutputs, numTrainable), trainable columns in index
// order.
//
// Every perturbed evaluation restores the parameter binding before the next
// one; the original values (including host tensors) are reinstated when the
// method returns, whatever the outcome.
func (t *Tape) Jacobian(dev device.Device, opts JacobianOptions) ([][]float64, error) {
	opts = opts.withDefaults()
	if opts.Order != 1 && opts.Order != 2 {
		return nil, fmt.Errorf("tape: finite-difference order must be 1 or 2, got %d", opts.Order)
	}

	// The two-term shift rule differentiates expectation values; a variance
	// is quadratic in them, so any variance terminator sends the whole sweep
	// to finite differences.
	if t.hasVariance() {
		if opts.Method == MethodAnalytic {
			return nil, fmt.Errorf("tape: variance measurements do not support the parameter-shift rule")
		}
		opts.Method = MethodNumeric
	}

	trainable := t.TrainableParams()
	if len(trainable) == 0 {
		return [][]float64{}, nil
	}

	orig := t.GetParameters(false)
	defer func() {
		// Parameter restoration must not leak perturbed state even when a
		// device call fails mid-sweep.
		_ = t.SetParameters(orig, false)
	}()

	floats := make([]float64, len(orig))
	for i, v := range orig {
		f, err := operation.Float(v)
		if err != nil {
			return nil, err
		}
		floats[i] = f
	}

	y0, err := t.evalFloats(dev, floats)
	if err != nil {
		return nil, err
	}

	jac := make([][]float64, len(y0))
	for i := range jac {
		jac[i] = make([]float64, len(trainable))
	}

	for col, idx := range trainable {
		column, err := t.partialDerivative(dev, floats, y0, idx, opts)
		if err != nil {
			return nil, err
		}
		for row := range jac {
			jac[row][col] = column[row]
		}
	}
	return jac, nil
}

// hasVariance reports whether any terminator measures a variance.
func (t *Tape) hasVariance() bool {
	for _, m := range t.measurements {
		if m.Kind == operation.MeasureVariance {
			return true
		}
	}
	return false
}

// partialDerivative evaluates one Jacobian column.
func (t *Tape) partialDerivative(dev device.Device, floats, y0 []float64, idx int, opts JacobianOptions) ([]float64, error) {
	analytic := opts.Method == MethodAnalytic
	if opts.Method == MethodBest && t.paramOp(idx).Method() == operation.GradAnalytic {
		analytic = true
	}

	if analytic {
		if t.paramOp(idx).Method() != operation.GradAnalytic {
			return nil, fmt.Errorf("tape: %s does not support the parameter-shift rule", t.paramOp(idx).Name)
		}
		yp, err := t.evalShifted(dev, floats, idx, math.Pi/2)
		if err != nil {
			return nil, err
		}
		ym, err := t.evalShifted(dev, floats, idx, -math.Pi/2)
		if err != nil {
			return nil, err
		}
		return combine(yp, ym, 0.5), nil
	}

	switch opts.Order {
	case 2:
		yp, err := t.evalShifted(dev, floats, idx, opts.H)
		if err != nil {
			return nil, err
		}
		ym, err := t.evalShifted(dev, floats, idx, -opts.H)
		if err != nil {
			return nil, err
		}
		return combine(yp, ym, 1/(2*opts.H)), nil
	default:
		yp, err := t.evalShifted(dev, floats, idx, opts.H)
		if err != nil {
			return nil, err
		}
		return combine(yp, y0, 1/opts.H), nil
	}
}

// evalShifted executes the tape with parameter idx shifted by delta.
func (t *Tape) evalShifted(dev device.Device, floats []float64, idx int, delta float64) ([]float64, error) {
	shifted := make([]float64, len(floats))
	copy(shifted, floats)
	shifted[idx] += delta
	return t.evalFloats(dev, shifted)
}

// evalFloats binds plain numeric parameters, executes and flattens.
func (t *Tape) evalFloats(dev device.Device, floats []float64) ([]float64, error) {
	values := make([]operation.Value, len(floats))
	for i, f := range floats {
		values[i] = f
	}
	if err := t.SetParameters(values, false); err != nil {
		return nil, err
	}
	raw, err := dev.Execute(t.ops, t.measurements)
	if err != nil {
		return nil, err
	}
	return Flatten(raw), nil
}

// Flatten concatenates per-measurement results into a single output vector.
func Flatten(results [][]float64) []float64 {
	n := 0
	for _, r := range results {
		n += len(r)
	}
	out := make([]float64, 0, n)
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// combine returns (a - b) * scale element-wise.
func combine(a, b []float64, scale float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = (a[i] - b[i]) * scale
	}
	return out
}
