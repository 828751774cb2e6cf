package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spindle-qc/spindle/operation"
	"github.com/spindle-qc/spindle/tape"
)

var (
	circuitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	wireLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	gateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73daca"))

	measureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68"))
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// gateLabel returns the display text for an operation on one of its wires.
func gateLabel(op *operation.Operation) string {
	params, err := op.FloatParams()
	if err != nil || len(params) == 0 {
		return op.Name
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%.3g", p)
	}
	return fmt.Sprintf("%s(%s)", op.Name, strings.Join(parts, ","))
}

// opColumn builds one circuit column: the symbol drawn on each wire the
// operation touches, a connector on the wires spanned between them, and a
// plain wire elsewhere.
func opColumn(op *operation.Operation, wires int) []string {
	col := make([]string, wires)

	switch op.Name {
	case "CNOT", "CZ", "ControlledPhaseShift":
		control, target := op.Wires[0], op.Wires[1]
		col[control] = "●"
		switch op.Name {
		case "CZ":
			col[target] = "●"
		case "ControlledPhaseShift":
			col[target] = gateLabel(op)
		default:
			col[target] = "⊕"
		}
		markSpan(col, control, target)
	case "SWAP":
		col[op.Wires[0]] = "×"
		col[op.Wires[1]] = "×"
		markSpan(col, op.Wires[0], op.Wires[1])
	case "MultiControlledX":
		lo, hi := op.Wires[0], op.Wires[0]
		for k, w := range op.ControlWires {
			if op.ControlValues[k] == '1' {
				col[w] = "●"
			} else {
				col[w] = "○"
			}
			if w < lo {
				lo = w
			}
			if w > hi {
				hi = w
			}
		}
		col[op.Wires[0]] = "⊕"
		markSpan(col, lo, hi)
	default:
		label := gateLabel(op)
		for _, w := range op.Wires {
			col[w] = label
		}
	}
	return col
}

// markSpan marks the wires strictly between a and b as vertical connectors.
func markSpan(col []string, a, b int) {
	if a > b {
		a, b = b, a
	}
	for w := a + 1; w < b; w++ {
		if col[w] == "" {
			col[w] = "│"
		}
	}
}

func measureColumn(m *operation.Measurement, wires int) []string {
	col := make([]string, wires)
	targets := m.Wires
	if m.Observable != nil {
		targets = m.Observable.Wires
	}
	for _, w := range targets {
		col[w] = "M"
	}
	return col
}

// renderTape draws a tape as a wire diagram, one row per wire.
func renderTape(t *tape.Tape, wires int) string {
	columns := make([][]string, 0, len(t.Operations())+len(t.Measurements()))
	styled := make([]bool, 0)
	for _, op := range t.Operations() {
		columns = append(columns, opColumn(op, wires))
		styled = append(styled, true)
	}
	for _, m := range t.Measurements() {
		columns = append(columns, measureColumn(m, wires))
		styled = append(styled, false)
	}

	widths := make([]int, len(columns))
	for c, col := range columns {
		for _, cell := range col {
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
	}

	var b strings.Builder
	for w := 0; w < wires; w++ {
		b.WriteString(wireLabelStyle.Render(fmt.Sprintf("q%d: ", w)))
		for c, col := range columns {
			cell := col[w]
			if cell == "" || cell == "│" {
				filler := "─"
				if cell == "│" {
					filler = "│"
				}
				b.WriteString("─" + padDashes(filler, widths[c]) + "─")
				continue
			}
			text := padCenter(cell, widths[c])
			if styled[c] {
				b.WriteString("─" + gateStyle.Render(text) + "─")
			} else {
				b.WriteString("─" + measureStyle.Render(text) + "─")
			}
		}
		if w < wires-1 {
			b.WriteString("\n")
		}
	}
	return circuitStyle.Render(b.String())
}

// padDashes centres a connector character in a field of wire dashes.
func padDashes(ch string, width int) string {
	if ch == "─" {
		return strings.Repeat("─", width)
	}
	left := (width - 1) / 2
	return strings.Repeat("─", left) + ch + strings.Repeat("─", width-1-left)
}
