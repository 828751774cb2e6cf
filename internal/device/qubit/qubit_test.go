package qubit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindle-qc/spindle/internal/operation"
)

func TestHadamardProbs(t *testing.T) {
	dev := New(1)
	res, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0)},
		[]*operation.Measurement{operation.Probs(0)},
	)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.InDelta(t, 0.5, res[0][0], 1e-12)
	assert.InDelta(t, 0.5, res[0][1], 1e-12)
}

func TestPauliZExpval(t *testing.T) {
	dev := New(1)

	res, err := dev.Execute(nil, []*operation.Measurement{operation.Expval(operation.PauliZ(0))})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0], 1e-12)

	res, err = dev.Execute(
		[]*operation.Operation{operation.PauliX(0)},
		[]*operation.Measurement{operation.Expval(operation.PauliZ(0))},
	)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, res[0][0], 1e-12)
}

func TestRYExpval(t *testing.T) {
	theta := 0.543
	dev := New(1)
	res, err := dev.Execute(
		[]*operation.Operation{operation.RY(theta, 0)},
		[]*operation.Measurement{operation.Expval(operation.PauliZ(0))},
	)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(theta), res[0][0], 1e-12)
}

func TestBellState(t *testing.T) {
	dev := New(2)
	res, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0), operation.CNOT(0, 1)},
		[]*operation.Measurement{operation.Probs(0, 1)},
	)
	require.NoError(t, err)
	want := []float64{0.5, 0, 0, 0.5}
	for i, p := range want {
		assert.InDelta(t, p, res[0][i], 1e-12, "basis state %d", i)
	}
}

func TestWireOrdering(t *testing.T) {
	// Wire 0 is the most significant bit: X(0) on two wires lands on index 2.
	dev := New(2)
	res, err := dev.Execute(
		[]*operation.Operation{operation.PauliX(0)},
		[]*operation.Measurement{operation.Probs(0, 1)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][2], 1e-12)

	// Marginal over wire 1 alone sees |0⟩.
	res, err = dev.Execute(
		[]*operation.Operation{operation.PauliX(0)},
		[]*operation.Measurement{operation.Probs(1)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0], 1e-12)
}

func TestSwap(t *testing.T) {
	dev := New(2)
	res, err := dev.Execute(
		[]*operation.Operation{operation.PauliX(0), operation.SWAP(0, 1)},
		[]*operation.Measurement{operation.Probs(0, 1)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][1], 1e-12)
}

func TestMultiControlledX(t *testing.T) {
	// Controls [0 1] with values "01" fire on |01⟩ and flip wire 2.
	dev := New(3)
	res, err := dev.Execute(
		[]*operation.Operation{
			operation.PauliX(1),
			operation.MultiControlledX([]int{0, 1}, 2, "01", nil),
		},
		[]*operation.Measurement{operation.Probs(0, 1, 2)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0b011], 1e-12)

	// Same circuit with values "11" leaves wire 2 alone.
	res, err = dev.Execute(
		[]*operation.Operation{
			operation.PauliX(1),
			operation.MultiControlledX([]int{0, 1}, 2, "11", nil),
		},
		[]*operation.Measurement{operation.Probs(0, 1, 2)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0b010], 1e-12)
}

func TestMultiControlledXBadValues(t *testing.T) {
	dev := New(3)
	_, err := dev.Execute(
		[]*operation.Operation{operation.MultiControlledX([]int{0, 1}, 2, "0", nil)},
		nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "control value")
}

func TestQubitUnitary(t *testing.T) {
	i := complex(0, 1)
	matY := [][]complex128{{0, -i}, {i, 0}}

	dev := New(1)
	fromGate, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0), operation.PauliY(0)},
		[]*operation.Measurement{operation.Probs(0)},
	)
	require.NoError(t, err)
	fromMatrix, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0), operation.QubitUnitary(matY, 0)},
		[]*operation.Measurement{operation.Probs(0)},
	)
	require.NoError(t, err)
	for k := range fromGate[0] {
		assert.InDelta(t, fromGate[0][k], fromMatrix[0][k], 1e-12)
	}
}

func TestRotMatchesDecomposition(t *testing.T) {
	phi, theta, omega := 0.1, 0.7, -0.4
	dev := New(1)

	composite, err := dev.Execute(
		[]*operation.Operation{operation.Rot(phi, theta, omega, 0)},
		[]*operation.Measurement{operation.Expval(operation.PauliX(0))},
	)
	require.NoError(t, err)

	primitive, err := dev.Execute(
		[]*operation.Operation{
			operation.RZ(phi, 0),
			operation.RY(theta, 0),
			operation.RZ(omega, 0),
		},
		[]*operation.Measurement{operation.Expval(operation.PauliX(0))},
	)
	require.NoError(t, err)
	assert.InDelta(t, primitive[0][0], composite[0][0], 1e-12)
}

func TestBasisState(t *testing.T) {
	dev := New(3)
	res, err := dev.Execute(
		[]*operation.Operation{operation.BasisState([]int{1, 0, 1}, 0, 1, 2)},
		[]*operation.Measurement{operation.Probs(0, 1, 2)},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0b101], 1e-12)
}

func TestVariance(t *testing.T) {
	dev := New(1)

	// Z on H|0⟩ has mean 0 and variance 1.
	res, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0)},
		[]*operation.Measurement{operation.Var(operation.PauliZ(0))},
	)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res[0][0], 1e-12)

	// Z on |0⟩ is deterministic.
	res, err = dev.Execute(nil, []*operation.Measurement{operation.Var(operation.PauliZ(0))})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res[0][0], 1e-12)
}

func TestSample(t *testing.T) {
	shots := 4096
	dev := New(1, WithShots(shots), WithSeed(42))
	res, err := dev.Execute(
		[]*operation.Operation{operation.Hadamard(0)},
		[]*operation.Measurement{operation.Sample(operation.PauliZ(0))},
	)
	require.NoError(t, err)
	require.Len(t, res[0], shots)

	mean := 0.0
	for _, v := range res[0] {
		require.True(t, v == 1 || v == -1, "sample value %v is not an eigenvalue", v)
		mean += v
	}
	mean /= float64(shots)
	assert.InDelta(t, 0.0, mean, 0.1)
}

func TestSampleDeterministicSeed(t *testing.T) {
	run := func() []float64 {
		dev := New(1, WithShots(64), WithSeed(7))
		res, err := dev.Execute(
			[]*operation.Operation{operation.Hadamard(0)},
			[]*operation.Measurement{operation.Sample(operation.PauliZ(0))},
		)
		require.NoError(t, err)
		return res[0]
	}
	assert.Equal(t, run(), run())
}

func TestSampleWithoutShots(t *testing.T) {
	dev := New(1)
	_, err := dev.Execute(nil, []*operation.Measurement{operation.Sample(operation.PauliZ(0))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shot")
}

func TestWireOutOfRange(t *testing.T) {
	dev := New(1)
	_, err := dev.Execute([]*operation.Operation{operation.PauliX(3)}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
