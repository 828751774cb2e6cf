// Package main provides the Spindle CLI.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spindle-qc/spindle/device/qubit"
	"github.com/spindle-qc/spindle/operation"
	"github.com/spindle-qc/spindle/qmc"
	"github.com/spindle-qc/spindle/tape"
)

const version = "v0.1.0-dev"

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "version":
		fmt.Printf("Spindle %s\n", version)
	case "draw":
		drawDemo()
	case "qmc":
		if err := qmcDemo(); err != nil {
			fmt.Fprintf(os.Stderr, "spindle: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Spindle - Quantum Circuit Tapes for Go")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  version    Show version")
		fmt.Println("  draw       Draw an example circuit")
		fmt.Println("  qmc        Run the quantum Monte Carlo demo")
	}
}

// drawDemo renders a small entangling circuit.
func drawDemo() {
	t := tape.Record(func(rec *tape.Recorder) {
		rec.Apply(operation.Hadamard(0))
		rec.Apply(operation.CNOT(0, 1))
		rec.Apply(operation.RY(math.Pi/4, 1))
		rec.Apply(operation.SWAP(1, 2))
		rec.Measure(operation.Probs(0, 1, 2))
	})

	fmt.Println(titleStyle.Render("Example circuit"))
	fmt.Println(renderTape(t, 3))
}

// qmcDemo estimates the mean of f(i) = 0.5 over a uniform two-outcome
// distribution with two estimation qubits and prints the phase register
// distribution.
func qmcDemo() error {
	fn := func(rec *tape.Recorder) {
		rec.Apply(operation.Hadamard(0))
		rec.Apply(operation.RY(math.Pi/2, 1))
	}
	estimationWires := []int{2, 3}

	circuit, err := qmc.QuantumMonteCarlo(fn, []int{0, 1}, 1, estimationWires, nil)
	if err != nil {
		return err
	}

	t := tape.Record(func(rec *tape.Recorder) {
		circuit(rec)
		rec.Measure(operation.Probs(estimationWires...))
	})

	dev := qubit.New(4)
	res, err := t.Execute(dev, nil)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Quantum Monte Carlo"))
	peak := 0
	for i, p := range res[0] {
		fmt.Printf("  p(%0*b) = %.6f\n", len(estimationWires), i, p)
		if p > res[0][peak] {
			peak = i
		}
	}

	n := float64(len(estimationWires))
	mu := (1 - math.Cos(math.Pi*float64(peak)/math.Pow(2, n))) / 2
	fmt.Printf("\nEstimated mean: %.6f\n", mu)
	return nil
}
