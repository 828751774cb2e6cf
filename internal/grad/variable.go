// Package grad implements a small reverse-mode automatic differentiation
// host: flat float64 variables recorded on a gradient tape, with a backward
// pass that accumulates vector gradients through the chain rule.
//
// The quantum tape core does not depend on this package; the bind package
// connects the two.
package grad

import "fmt"

// DType tags the caller-facing numeric precision of a variable. Storage is
// float64 internally; the tag travels through execution and gradients
// unchanged so bindings never promote a caller's dtype.
type DType int

// Supported dtypes.
const (
	Float64 DType = iota
	Float32
)

// String returns a human-readable dtype name.
func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return "unknown"
	}
}

// Shape represents the dimensions of a variable. An empty shape is a scalar.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Variable is a differentiable value in the host graph.
type Variable struct {
	data         []float64
	shape        Shape
	dtype        DType
	requiresGrad bool
	grad         *Variable
}

// NewScalar creates a scalar variable.
func NewScalar(v float64) *Variable {
	return &Variable{data: []float64{v}, shape: Shape{}, dtype: Float64}
}

// FromSlice creates a variable from a float64 slice.
func FromSlice(data []float64, shape Shape) (*Variable, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("grad: shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Variable{data: append([]float64(nil), data...), shape: shape.Clone(), dtype: Float64}, nil
}

// WithDType sets the variable's dtype tag and returns it for chaining.
func (v *Variable) WithDType(d DType) *Variable {
	v.dtype = d
	return v
}

// RequireGrad marks the variable for gradient computation and returns it for
// chaining.
func (v *Variable) RequireGrad() *Variable {
	v.requiresGrad = true
	return v
}

// RequiresGrad returns true if this variable requires gradient computation.
func (v *Variable) RequiresGrad() bool {
	return v.requiresGrad
}

// Shape returns the variable's shape.
func (v *Variable) Shape() Shape {
	return v.shape
}

// DType returns the variable's dtype tag.
func (v *Variable) DType() DType {
	return v.dtype
}

// NumElements returns the total number of elements.
func (v *Variable) NumElements() int {
	return len(v.data)
}

// Data returns the underlying float64 slice.
func (v *Variable) Data() []float64 {
	return v.data
}

// Float64 detaches a scalar variable to a plain float64.
// Panics if the variable is not a single element.
func (v *Variable) Float64() float64 {
	if len(v.data) != 1 {
		panic(fmt.Sprintf("grad: Float64 on variable with %d elements", len(v.data)))
	}
	return v.data[0]
}

// At returns the element at a flat index.
func (v *Variable) At(i int) float64 {
	return v.data[i]
}

// Grad returns the accumulated gradient, or nil before a backward pass.
func (v *Variable) Grad() *Variable {
	return v.grad
}

// Detach returns a copy that does not participate in gradient tracking.
func (v *Variable) Detach() *Variable {
	return &Variable{
		data:  append([]float64(nil), v.data...),
		shape: v.shape.Clone(),
		dtype: v.dtype,
	}
}

func (v *Variable) String() string {
	return fmt.Sprintf("Variable(%v, shape=%v, dtype=%s, requires_grad=%t)", v.data, v.shape, v.dtype, v.requiresGrad)
}
