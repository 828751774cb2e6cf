package tape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spindle-qc/spindle/internal/device/qubit"
	"github.com/spindle-qc/spindle/internal/operation"
)

func TestRecordOrder(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.Hadamard(0))
		rec.Apply(operation.CNOT(0, 1))
		rec.Measure(operation.Probs(0, 1))
	})

	require.Len(t, tp.Operations(), 2)
	assert.Equal(t, operation.NameHadamard, tp.Operations()[0].Name)
	assert.Equal(t, operation.NameCNOT, tp.Operations()[1].Name)
	require.Len(t, tp.Measurements(), 1)
	assert.NotEmpty(t, tp.ID())
}

func TestParameterFlattening(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(0.1, 0))
		rec.Apply(operation.Hadamard(1))
		rec.Apply(operation.Rot(0.2, 0.3, 0.4, 1))
		rec.Apply(operation.RY(0.5, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})

	assert.Equal(t, 5, tp.NumParams())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tp.TrainableParams())

	params := tp.GetParameters(false)
	want := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	require.Len(t, params, len(want))
	for i, v := range params {
		f, err := operation.Float(v)
		require.NoError(t, err)
		assert.Equal(t, want[i], f)
	}
}

func TestSetParametersRoundTrip(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(0.1, 0))
		rec.Apply(operation.RY(0.2, 0))
	})

	require.NoError(t, tp.SetParameters([]operation.Value{1.0, 2.0}, false))
	got := tp.GetParameters(false)
	assert.Equal(t, operation.Value(1.0), got[0])
	assert.Equal(t, operation.Value(2.0), got[1])
}

func TestSetParametersCountMismatch(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(0.1, 0))
		rec.Apply(operation.RY(0.2, 0))
	})

	err := tp.SetParameters([]operation.Value{1.0}, false)
	require.ErrorIs(t, err, ErrParameterCount)

	// A failed rebind leaves every binding untouched.
	got := tp.GetParameters(false)
	assert.Equal(t, operation.Value(0.1), got[0])
	assert.Equal(t, operation.Value(0.2), got[1])
}

func TestTrainableSubset(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(0.1, 0))
		rec.Apply(operation.RY(0.2, 0))
		rec.Apply(operation.RZ(0.3, 0))
	})

	require.NoError(t, tp.SetTrainableParams([]int{0, 2}))
	assert.Equal(t, []int{0, 2}, tp.TrainableParams())

	got := tp.GetParameters(true)
	require.Len(t, got, 2)
	assert.Equal(t, operation.Value(0.1), got[0])
	assert.Equal(t, operation.Value(0.3), got[1])

	// Trainable-only rebind skips the frozen middle parameter.
	require.NoError(t, tp.SetParameters([]operation.Value{1.0, 3.0}, true))
	full := tp.GetParameters(false)
	assert.Equal(t, operation.Value(1.0), full[0])
	assert.Equal(t, operation.Value(0.2), full[1])
	assert.Equal(t, operation.Value(3.0), full[2])

	err := tp.SetTrainableParams([]int{5})
	require.Error(t, err)
}

func TestExpand(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.Hadamard(0))
		rec.Apply(operation.Rot(0.1, 0.2, 0.3, 0))
		rec.Apply(operation.CNOT(0, 1))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})

	ex := tp.Expand()
	names := make([]string, 0, len(ex.Operations()))
	for _, op := range ex.Operations() {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{
		operation.NameHadamard,
		operation.NameRZ,
		operation.NameRY,
		operation.NameRZ,
		operation.NameCNOT,
	}, names)

	assert.Equal(t, 3, ex.NumParams())
	assert.Len(t, ex.Measurements(), 1)
	assert.NotEqual(t, tp.ID(), ex.ID())

	// Expansion copies operations: rebinding the expanded tape leaves the
	// original untouched.
	require.NoError(t, ex.SetParameters([]operation.Value{1.0, 2.0, 3.0}, false))
	parent := tp.Operations()[1]
	assert.Equal(t, operation.Value(0.1), parent.Params[0])
	assert.Equal(t, operation.Value(0.2), parent.Params[1])
	assert.Equal(t, operation.Value(0.3), parent.Params[2])
	got := ex.GetParameters(false)
	assert.Equal(t, operation.Value(1.0), got[0])
	assert.Equal(t, operation.Value(2.0), got[1])
	assert.Equal(t, operation.Value(3.0), got[2])
}

// cell is a host-style parameter with pointer identity.
type cell struct{ v float64 }

func (c *cell) Float64() float64 { return c.v }

func TestExpandKeepsHostValueIdentity(t *testing.T) {
	p := &cell{v: 0.7}
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.Rot(p, 0.2, 0.3, 0))
	})

	ex := tp.Expand()
	require.Equal(t, 3, ex.NumParams())
	assert.Same(t, p, ex.GetParameters(false)[0])

	// Plain numeric parameters are independent copies.
	same := tp.ExpandDepth(0)
	require.NoError(t, same.SetParameters([]operation.Value{p, 9.0, 9.0}, false))
	assert.Equal(t, operation.Value(0.2), tp.Operations()[0].Params[1])
}

func TestExpandRecursive(t *testing.T) {
	// A tape of composites only reaches a fixed point of primitive gates.
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.S(0))
		rec.Apply(operation.T(0))
	})

	ex := tp.Expand()
	require.Len(t, ex.Operations(), 2)
	for _, op := range ex.Operations() {
		assert.Equal(t, operation.NamePhaseShift, op.Name)
	}
}

func TestExpandDepth(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.S(0))
		rec.Apply(operation.Rot(0.1, 0.2, 0.3, 0))
	})

	// Depth zero copies the operation list unchanged.
	same := tp.ExpandDepth(0)
	require.Len(t, same.Operations(), 2)
	assert.Equal(t, operation.NameS, same.Operations()[0].Name)
	assert.Equal(t, operation.NameRot, same.Operations()[1].Name)

	one := tp.ExpandDepth(1)
	names := make([]string, 0, len(one.Operations()))
	for _, op := range one.Operations() {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{
		operation.NamePhaseShift,
		operation.NameRZ,
		operation.NameRY,
		operation.NameRZ,
	}, names)
}

func TestExecute(t *testing.T) {
	theta := 0.543
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RY(theta, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})

	dev := qubit.New(1)
	res, err := tp.Execute(dev, nil)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.InDelta(t, math.Cos(theta), res[0][0], 1e-12)

	// Execute with explicit values rebinds the trainable set first.
	res, err = tp.Execute(dev, []operation.Value{1.0})
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(1.0), res[0][0], 1e-12)
}

func TestExecuteProbs(t *testing.T) {
	x, y, z := 0.123, 0.456, 0.789
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(x, 0))
		rec.Apply(operation.RY(y, 1))
		rec.Apply(operation.RZ(z, 0))
		rec.Apply(operation.CNOT(0, 1))
		rec.Measure(operation.Probs(0, 1))
	})

	dev := qubit.New(2)
	res, err := tp.Execute(dev, nil)
	require.NoError(t, err)

	cx, sx := math.Cos(x/2), math.Sin(x/2)
	cy, sy := math.Cos(y/2), math.Sin(y/2)
	want := []float64{
		cx * cx * cy * cy,
		cx * cx * sy * sy,
		sx * sx * sy * sy,
		sx * sx * cy * cy,
	}
	require.Len(t, res[0], 4)
	for i := range want {
		assert.InDelta(t, want[i], res[0][i], 1e-10, "outcome %d", i)
	}
}

func jacobianCircuit(theta float64) *Tape {
	return Record(func(rec *Recorder) {
		rec.Apply(operation.RY(theta, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})
}

func TestJacobianForward(t *testing.T) {
	theta := 0.543
	tp := jacobianCircuit(theta)
	dev := qubit.New(1)

	jac, err := tp.Jacobian(dev, JacobianOptions{Method: MethodNumeric, Order: 1, H: 1e-7})
	require.NoError(t, err)
	require.Len(t, jac, 1)
	require.Len(t, jac[0], 1)
	assert.InDelta(t, -math.Sin(theta), jac[0][0], 1e-5)
}

func TestJacobianCentral(t *testing.T) {
	theta := 0.543
	tp := jacobianCircuit(theta)
	dev := qubit.New(1)

	jac, err := tp.Jacobian(dev, JacobianOptions{Method: MethodNumeric, Order: 2, H: 1e-6})
	require.NoError(t, err)
	assert.InDelta(t, -math.Sin(theta), jac[0][0], 1e-8)
}

func TestJacobianAnalytic(t *testing.T) {
	theta := 0.543
	tp := jacobianCircuit(theta)
	dev := qubit.New(1)

	jac, err := tp.Jacobian(dev, JacobianOptions{Method: MethodAnalytic})
	require.NoError(t, err)
	assert.InDelta(t, -math.Sin(theta), jac[0][0], 1e-12)
}

func TestJacobianBestMatchesAnalytic(t *testing.T) {
	theta := 0.543
	tp := jacobianCircuit(theta)
	dev := qubit.New(1)

	jac, err := tp.Jacobian(dev, JacobianOptions{})
	require.NoError(t, err)
	assert.InDelta(t, -math.Sin(theta), jac[0][0], 1e-12)
}

func TestJacobianVariance(t *testing.T) {
	// Var(Z) after RY(theta) is 1 - cos^2(theta); the derivative sin(2*theta)
	// oscillates at twice the rotation frequency, which the two-term shift
	// rule cannot see. The default method must still get this right.
	theta := 0.543
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RY(theta, 0))
		rec.Measure(operation.Var(operation.PauliZ(0)))
	})
	dev := qubit.New(1)

	jac, err := tp.Jacobian(dev, JacobianOptions{})
	require.NoError(t, err)
	require.Len(t, jac, 1)
	assert.InDelta(t, math.Sin(2*theta), jac[0][0], 1e-5)

	jac, err = tp.Jacobian(dev, JacobianOptions{Method: MethodNumeric, Order: 2, H: 1e-6})
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(2*theta), jac[0][0], 1e-8)
}

func TestJacobianVarianceAnalyticRejected(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RY(0.543, 0))
		rec.Measure(operation.Var(operation.PauliZ(0)))
	})

	_, err := tp.Jacobian(qubit.New(1), JacobianOptions{Method: MethodAnalytic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variance")
}

func TestJacobianProbs(t *testing.T) {
	x, y := 0.543, -0.654
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RX(x, 0))
		rec.Apply(operation.RY(y, 1))
		rec.Apply(operation.CNOT(0, 1))
		rec.Measure(operation.Probs(0, 1))
	})

	jac, err := tp.Jacobian(qubit.New(2), JacobianOptions{})
	require.NoError(t, err)
	require.Len(t, jac, 4)
	require.Len(t, jac[0], 2)

	cx2, sx2 := math.Pow(math.Cos(x/2), 2), math.Pow(math.Sin(x/2), 2)
	cy2, sy2 := math.Pow(math.Cos(y/2), 2), math.Pow(math.Sin(y/2), 2)
	sx, sy := math.Sin(x), math.Sin(y)
	wantX := []float64{-0.5 * sx * cy2, -0.5 * sx * sy2, 0.5 * sx * sy2, 0.5 * sx * cy2}
	wantY := []float64{-0.5 * sy * cx2, 0.5 * sy * cx2, 0.5 * sy * sx2, -0.5 * sy * sx2}
	for row := 0; row < 4; row++ {
		assert.InDelta(t, wantX[row], jac[row][0], 1e-10, "d p[%d] / d x", row)
		assert.InDelta(t, wantY[row], jac[row][1], 1e-10, "d p[%d] / d y", row)
	}
}

func TestJacobianMixedOutputs(t *testing.T) {
	theta := 0.543
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RY(theta, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
		rec.Measure(operation.Probs(0))
	})

	jac, err := tp.Jacobian(qubit.New(1), JacobianOptions{})
	require.NoError(t, err)
	require.Len(t, jac, 3)

	s := math.Sin(theta)
	assert.InDelta(t, -s, jac[0][0], 1e-10)
	assert.InDelta(t, -0.5*s, jac[1][0], 1e-10)
	assert.InDelta(t, 0.5*s, jac[2][0], 1e-10)
}

func TestJacobianAnalyticUnsupported(t *testing.T) {
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.PhaseShift(0.3, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})

	_, err := tp.Jacobian(qubit.New(1), JacobianOptions{Method: MethodAnalytic})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameter-shift")
}

func TestJacobianBadOrder(t *testing.T) {
	tp := jacobianCircuit(0.1)
	_, err := tp.Jacobian(qubit.New(1), JacobianOptions{Method: MethodNumeric, Order: 3})
	require.Error(t, err)
}

func TestJacobianTrainableColumns(t *testing.T) {
	a, b := 0.3, 0.9
	tp := Record(func(rec *Recorder) {
		rec.Apply(operation.RY(a, 0))
		rec.Apply(operation.RY(b, 0))
		rec.Measure(operation.Expval(operation.PauliZ(0)))
	})
	require.NoError(t, tp.SetTrainableParams([]int{1}))

	jac, err := tp.Jacobian(qubit.New(1), JacobianOptions{})
	require.NoError(t, err)
	require.Len(t, jac, 1)
	require.Len(t, jac[0], 1)
	assert.InDelta(t, -math.Sin(a+b), jac[0][0], 1e-12)
}

func TestJacobianEmptyTrainable(t *testing.T) {
	tp := jacobianCircuit(0.1)
	require.NoError(t, tp.SetTrainableParams(nil))

	jac, err := tp.Jacobian(qubit.New(1), JacobianOptions{})
	require.NoError(t, err)
	assert.Empty(t, jac)
}

func TestJacobianRestoresParameters(t *testing.T) {
	theta := 0.543
	tp := jacobianCircuit(theta)

	_, err := tp.Jacobian(qubit.New(1), JacobianOptions{Method: MethodNumeric, Order: 2})
	require.NoError(t, err)

	got := tp.GetParameters(false)
	require.Len(t, got, 1)
	f, err := operation.Float(got[0])
	require.NoError(t, err)
	assert.Equal(t, theta, f)
}

func TestFlatten(t *testing.T) {
	flat := Flatten([][]float64{{1}, {2, 3}, {}, {4}})
	assert.Equal(t, []float64{1, 2, 3, 4}, flat)
}
