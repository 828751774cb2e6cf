// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package grad provides the host automatic-differentiation engine: flat
// float64 variables recorded on a gradient tape with a reverse-mode
// backward pass.
package grad

import (
	internalgrad "github.com/spindle-qc/spindle/internal/grad"
)

// Variable is a differentiable value in the host graph.
type Variable = internalgrad.Variable

// Shape represents the dimensions of a variable.
type Shape = internalgrad.Shape

// DType tags the caller-facing numeric precision of a variable.
type DType = internalgrad.DType

// Supported dtypes.
const (
	Float64 = internalgrad.Float64
	Float32 = internalgrad.Float32
)

// Engine owns a gradient tape and records classical operations onto it.
type Engine = internalgrad.Engine

// Tape records operations during the forward pass.
type Tape = internalgrad.Tape

// Operation is a recorded node with a backward rule.
type Operation = internalgrad.Operation

// MultiOutputOperation is a node producing several outputs that share one
// backward rule.
type MultiOutputOperation = internalgrad.MultiOutputOperation

// ErrNoGradPath is returned when no recorded operation connects the
// backward target to the tape.
var ErrNoGradPath = internalgrad.ErrNoGradPath

// New creates an engine with a recording tape.
func New() *Engine {
	return internalgrad.New()
}

// NewScalar creates a scalar variable.
func NewScalar(v float64) *Variable {
	return internalgrad.NewScalar(v)
}

// FromSlice creates a variable from a float64 slice.
func FromSlice(data []float64, shape Shape) (*Variable, error) {
	return internalgrad.FromSlice(data, shape)
}
