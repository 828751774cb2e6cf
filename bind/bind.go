// Copyright 2026 Spindle Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bind connects a quantum tape to the host autodiff graph.
//
// Example:
//
//	import (
//	    "github.com/spindle-qc/spindle/bind"
//	    "github.com/spindle-qc/spindle/device/qubit"
//	    "github.com/spindle-qc/spindle/grad"
//	    "github.com/spindle-qc/spindle/operation"
//	    "github.com/spindle-qc/spindle/tape"
//	)
//
//	func main() {
//	    theta := grad.NewScalar(0.543).RequireGrad()
//	    t := tape.Record(func(rec *tape.Recorder) {
//	        rec.Apply(operation.RY(theta, 0))
//	        rec.Measure(operation.Expval(operation.PauliZ(0)))
//	    })
//
//	    e := grad.New()
//	    bt := bind.Apply(t, e)
//	    res, _ := bt.Execute(qubit.New(1))
//	    out, _ := res.Stacked()
//	    _ = e.Backward(out)
//	    _ = theta.Grad() // -sin(0.543)
//	}
package bind

import (
	internalbind "github.com/spindle-qc/spindle/internal/bind"
	"github.com/spindle-qc/spindle/internal/grad"
	"github.com/spindle-qc/spindle/internal/tape"
)

// Host abstracts the autodiff framework's tensor representation.
type Host = internalbind.Host

// BoundTape is a quantum tape with an attached host engine.
type BoundTape = internalbind.BoundTape

// Result holds the host variables produced by a bound execution.
type Result = internalbind.Result

// Option configures a binding.
type Option = internalbind.Option

// WithDType sets the dtype of result variables.
func WithDType(d grad.DType) Option {
	return internalbind.WithDType(d)
}

// WithHost overrides the host capability.
func WithHost(h Host) Option {
	return internalbind.WithHost(h)
}

// Apply binds a tape to a host engine, reclassifying the trainable set from
// host-tensor metadata.
func Apply(t *tape.Tape, engine *grad.Engine, opts ...Option) *BoundTape {
	return internalbind.Apply(t, engine, opts...)
}
