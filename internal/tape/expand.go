package tape

import (
	"github.com/google/uuid"

	"github.com/spindle-qc/spindle/internal/operation"
)

// Expand returns a new tape in which every composite operation has been
// replaced by its primitive decomposition, recursively. Measurements carry
// over unchanged.
//
// The expanded tape is independent of the original: every operation is
// copied, and rebinding parameters through one tape is not visible through
// the other. Host tensor parameters keep their identity across the copy, so
// differentiability markers survive; the trainable set itself resets to all
// parameters, and callers binding a host interface re-apply it after
// expansion.
func (t *Tape) Expand() *Tape {
	return t.expand(-1)
}

// ExpandDepth expands at most depth levels of decomposition. A depth of
// zero returns an independent copy with the same operations.
func (t *Tape) ExpandDepth(depth int) *Tape {
	if depth < 0 {
		depth = 0
	}
	return t.expand(depth)
}

type workItem struct {
	op *operation.Operation
	// depth counts remaining decomposition levels, negative for unlimited.
	depth int
}

// expand runs the rewrite over an explicit worklist so parameter re-indexing
// stays deterministic: decomposed operations land in queue order exactly
// where their parent stood.
func (t *Tape) expand(depth int) *Tape {
	out := &Tape{
		id:              uuid.NewString(),
		measurements:    append([]*operation.Measurement(nil), t.measurements...),
		JacobianOptions: t.JacobianOptions,
	}

	// LIFO worklist seeded in reverse so ops pop in queue order.
	work := make([]workItem, 0, len(t.ops))
	for i := len(t.ops) - 1; i >= 0; i-- {
		work = append(work, workItem{op: t.ops[i], depth: depth})
	}

	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		if item.depth == 0 {
			out.ops = append(out.ops, item.op.Clone())
			continue
		}
		sub := item.op.Decomposition()
		if sub == nil {
			out.ops = append(out.ops, item.op.Clone())
			continue
		}
		for i := len(sub) - 1; i >= 0; i-- {
			work = append(work, workItem{op: sub[i], depth: item.depth - 1})
		}
	}

	out.finalize()
	return out
}
