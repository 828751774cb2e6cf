// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tape provides the quantum tape: a recorded circuit with flattened
// parameter indexing, expansion, execution and differentiation.
//
// Example:
//
//	import (
//	    "github.com/spindle-qc/spindle/device/qubit"
//	    "github.com/spindle-qc/spindle/operation"
//	    "github.com/spindle-qc/spindle/tape"
//	)
//
//	func main() {
//	    t := tape.Record(func(rec *tape.Recorder) {
//	        rec.Apply(operation.RY(0.543, 0))
//	        rec.Measure(operation.Expval(operation.PauliZ(0)))
//	    })
//	    dev := qubit.New(1)
//	    res, _ := t.Execute(dev, nil)
//	    jac, _ := t.Jacobian(dev, tape.JacobianOptions{})
//	    _ = res
//	    _ = jac
//	}
package tape

import (
	internaltape "github.com/spindle-qc/spindle/internal/tape"
)

// Tape is an ordered recording of operations and measurement terminators.
type Tape = internaltape.Tape

// Recorder appends circuit elements to a tape during a Record scope.
type Recorder = internaltape.Recorder

// JacobianOptions configures numerical differentiation.
type JacobianOptions = internaltape.JacobianOptions

// Differentiation methods accepted by JacobianOptions.
const (
	MethodBest     = internaltape.MethodBest
	MethodNumeric  = internaltape.MethodNumeric
	MethodAnalytic = internaltape.MethodAnalytic
)

// ErrParameterCount is returned on a parameter count mismatch.
var ErrParameterCount = internaltape.ErrParameterCount

// Record runs fn against a fresh tape's Recorder and returns the recorded
// tape.
func Record(fn func(*Recorder)) *Tape {
	return internaltape.Record(fn)
}

// DefaultJacobianOptions returns the default differentiation configuration.
func DefaultJacobianOptions() JacobianOptions {
	return internaltape.DefaultJacobianOptions()
}

// Flatten concatenates per-measurement results into a single output vector.
func Flatten(results [][]float64) []float64 {
	return internaltape.Flatten(results)
}
