package grad

import (
	"fmt"
	"math"
)

// checkBinary validates shapes and dtypes for element-wise binary ops.
// Mixing dtypes is rejected rather than promoted.
func checkBinary(name string, a, b *Variable) {
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("grad: %s shape mismatch %v vs %v", name, a.shape, b.shape))
	}
	if a.dtype != b.dtype {
		panic(fmt.Sprintf("grad: %s dtype mismatch %s vs %s", name, a.dtype, b.dtype))
	}
}

func (e *Engine) newOutput(like *Variable, data []float64) *Variable {
	return &Variable{
		data:         data,
		shape:        like.shape.Clone(),
		dtype:        like.dtype,
		requiresGrad: like.requiresGrad,
	}
}

// addOp: d(a+b)/da = 1, d(a+b)/db = 1.
type addOp struct {
	a, b, out *Variable
}

func (op *addOp) Inputs() []*Variable { return []*Variable{op.a, op.b} }
func (op *addOp) Output() *Variable   { return op.out }
func (op *addOp) Backward(g []float64) [][]float64 {
	return [][]float64{g, g}
}

// Add performs element-wise addition and records the operation.
func (e *Engine) Add(a, b *Variable) *Variable {
	checkBinary("Add", a, b)
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = a.data[i] + b.data[i]
	}
	out := e.newOutput(a, data)
	out.requiresGrad = a.requiresGrad || b.requiresGrad
	e.tape.Record(&addOp{a: a, b: b, out: out})
	return out
}

// mulOp: d(a*b)/da = b, d(a*b)/db = a.
type mulOp struct {
	a, b, out *Variable
}

func (op *mulOp) Inputs() []*Variable { return []*Variable{op.a, op.b} }
func (op *mulOp) Output() *Variable   { return op.out }
func (op *mulOp) Backward(g []float64) [][]float64 {
	ga := make([]float64, len(g))
	gb := make([]float64, len(g))
	for i := range g {
		ga[i] = g[i] * op.b.data[i]
		gb[i] = g[i] * op.a.data[i]
	}
	return [][]float64{ga, gb}
}

// Mul performs element-wise multiplication and records the operation.
func (e *Engine) Mul(a, b *Variable) *Variable {
	checkBinary("Mul", a, b)
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = a.data[i] * b.data[i]
	}
	out := e.newOutput(a, data)
	out.requiresGrad = a.requiresGrad || b.requiresGrad
	e.tape.Record(&mulOp{a: a, b: b, out: out})
	return out
}

// negOp: d(-a)/da = -1.
type negOp struct {
	a, out *Variable
}

func (op *negOp) Inputs() []*Variable { return []*Variable{op.a} }
func (op *negOp) Output() *Variable   { return op.out }
func (op *negOp) Backward(g []float64) [][]float64 {
	ga := make([]float64, len(g))
	for i := range g {
		ga[i] = -g[i]
	}
	return [][]float64{ga}
}

// Neg negates element-wise and records the operation.
func (e *Engine) Neg(a *Variable) *Variable {
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = -a.data[i]
	}
	out := e.newOutput(a, data)
	e.tape.Record(&negOp{a: a, out: out})
	return out
}

// sinOp: d(sin a)/da = cos a.
type sinOp struct {
	a, out *Variable
}

func (op *sinOp) Inputs() []*Variable { return []*Variable{op.a} }
func (op *sinOp) Output() *Variable   { return op.out }
func (op *sinOp) Backward(g []float64) [][]float64 {
	ga := make([]float64, len(g))
	for i := range g {
		ga[i] = g[i] * math.Cos(op.a.data[i])
	}
	return [][]float64{ga}
}

// Sin applies element-wise sine and records the operation.
func (e *Engine) Sin(a *Variable) *Variable {
	data := make([]float64, len(a.data))
	for i := range data {
		data[i] = math.Sin(a.data[i])
	}
	out := e.newOutput(a, data)
	e.tape.Record(&sinOp{a: a, out: out})
	return out
}

// sumOp reduces to a scalar; the gradient broadcasts back.
type sumOp struct {
	a, out *Variable
}

func (op *sumOp) Inputs() []*Variable { return []*Variable{op.a} }
func (op *sumOp) Output() *Variable   { return op.out }
func (op *sumOp) Backward(g []float64) [][]float64 {
	ga := make([]float64, len(op.a.data))
	for i := range ga {
		ga[i] = g[0]
	}
	return [][]float64{ga}
}

// Sum reduces all elements to a scalar and records the operation.
func (e *Engine) Sum(a *Variable) *Variable {
	total := 0.0
	for _, v := range a.data {
		total += v
	}
	out := &Variable{
		data:         []float64{total},
		shape:        Shape{},
		dtype:        a.dtype,
		requiresGrad: a.requiresGrad,
	}
	e.tape.Record(&sumOp{a: a, out: out})
	return out
}

// SumAll reduces several variables to one scalar, the host-side equivalent
// of summing a ragged result set before backward.
func (e *Engine) SumAll(vars ...*Variable) *Variable {
	if len(vars) == 1 {
		return e.Sum(vars[0])
	}
	out := e.Sum(vars[0])
	for _, v := range vars[1:] {
		out = e.Add(out, e.Sum(v))
	}
	return out
}
