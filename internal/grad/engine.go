package grad

// Engine owns a gradient tape and records classical operations onto it.
// A fresh engine starts recording immediately.
type Engine struct {
	tape *Tape
}

// New creates an engine with a recording tape.
func New() *Engine {
	t := NewTape()
	t.StartRecording()
	return &Engine{tape: t}
}

// Tape returns the gradient tape for manual control: stopping or resuming
// recording, clearing between iterations, or inspecting recorded operations.
func (e *Engine) Tape() *Tape {
	return e.tape
}

// Backward runs the reverse pass from out.
func (e *Engine) Backward(out *Variable) error {
	return e.tape.Backward(out)
}
