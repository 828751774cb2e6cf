package operation

import "fmt"

// MeasureKind identifies a measurement terminator type.
type MeasureKind int

// Supported measurement terminators.
const (
	MeasureExpval MeasureKind = iota
	MeasureVariance
	MeasureProbs
	MeasureSample
)

// String returns a human-readable terminator name.
func (k MeasureKind) String() string {
	switch k {
	case MeasureExpval:
		return "expval"
	case MeasureVariance:
		return "var"
	case MeasureProbs:
		return "probs"
	case MeasureSample:
		return "sample"
	default:
		return "unknown"
	}
}

// Measurement is a terminator appended after the operation sequence of a
// tape. Expectation, variance and sample measurements carry an observable;
// probability measurements carry an explicit wire subset.
type Measurement struct {
	Kind       MeasureKind
	Observable *Operation
	Wires      []int
}

// Expval requests the expectation value of an observable.
func Expval(obs *Operation) *Measurement {
	return &Measurement{Kind: MeasureExpval, Observable: obs, Wires: append([]int(nil), obs.Wires...)}
}

// Var requests the variance of an observable.
func Var(obs *Operation) *Measurement {
	return &Measurement{Kind: MeasureVariance, Observable: obs, Wires: append([]int(nil), obs.Wires...)}
}

// Probs requests the computational basis probability distribution over the
// given wires. The result has length 2^len(wires).
func Probs(wires ...int) *Measurement {
	return &Measurement{Kind: MeasureProbs, Wires: append([]int(nil), wires...)}
}

// Sample requests shot samples of an observable's eigenvalues. The result
// has length equal to the device's shot count.
func Sample(obs *Operation) *Measurement {
	return &Measurement{Kind: MeasureSample, Observable: obs, Wires: append([]int(nil), obs.Wires...)}
}

func (m *Measurement) String() string {
	if m.Observable != nil {
		return fmt.Sprintf("%s(%s)", m.Kind, m.Observable.Name)
	}
	return fmt.Sprintf("%s(wires=%v)", m.Kind, m.Wires)
}
