// Package device defines the capability a quantum tape executes against.
//
// A device receives the tape's operation sequence with bound numeric
// parameters plus its measurement terminators, and returns one raw numeric
// result vector per terminator. Execution failures are returned verbatim and
// never retried.
package device

import "github.com/spindle-qc/spindle/internal/operation"

// Device executes bound circuits.
//
// Result shape conventions per measurement: expectation/variance produce a
// single value, probability measurements produce 2^len(wires) values, and
// sample measurements produce Shots() values. A shot count of zero selects
// analytic (exact statevector) mode.
type Device interface {
	Execute(ops []*operation.Operation, measurements []*operation.Measurement) ([][]float64, error)
	NumWires() int
	Shots() int
}
