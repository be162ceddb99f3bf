package operations

import (
	"fmt"
	"io"
	"strings"
)

// detailer is implemented by nodes that print kind-specific facts on their
// header line.
type detailer interface {
	details() string
}

// annotator is implemented by nodes that print metadata lines, such as
// conversions, between their header and their slots.
type annotator interface {
	annotations() []string
}

const indentUnit = "  "

// Dump renders the tree rooted at op in the canonical text form: one header
// line per node, prefixed with its index among its parent's children, then
// its metadata lines, then one block per slot. Absent single slots print as
// null.
func Dump(op Operation) string {
	var b strings.Builder
	writeNode(&b, op, -1, 0)
	return b.String()
}

// Fprint writes Dump(op) to w.
func Fprint(w io.Writer, op Operation) error {
	_, err := io.WriteString(w, Dump(op))
	return err
}

// Header returns the single header line Dump prints for op.
func Header(op Operation) string {
	var b strings.Builder
	b.WriteString(op.Kind().String())
	if d, ok := op.(detailer); ok {
		b.WriteString(d.details())
	}

	b.WriteString(" (Type: ")
	if t := op.Type(); t != nil {
		b.WriteString(t.String())
	} else {
		b.WriteString("null")
	}
	if c := op.ConstantValue(); c != nil {
		b.WriteString(", Constant: ")
		b.WriteString(c.Format(op.Type()))
	}
	if op.IsInvalid() {
		b.WriteString(", IsInvalid")
	}
	if op.IsImplicit() {
		b.WriteString(", IsImplicit")
	}
	b.WriteString(")")

	fmt.Fprintf(&b, " (Syntax: '%s')", op.Syntax().Label())
	return b.String()
}

func writeNode(b *strings.Builder, op Operation, index, depth int) {
	pad := strings.Repeat(indentUnit, depth)
	b.WriteString(pad)
	if index >= 0 {
		fmt.Fprintf(b, "[%d] ", index)
	}
	b.WriteString(Header(op))
	b.WriteByte('\n')

	if a, ok := op.(annotator); ok {
		for _, line := range a.annotations() {
			b.WriteString(pad + indentUnit + line + "\n")
		}
	}

	next := 0
	for _, s := range op.Slots() {
		if s.List {
			if len(s.Items) == 0 {
				fmt.Fprintf(b, "%s%s%s(0)\n", pad, indentUnit, s.Name)
				continue
			}
			fmt.Fprintf(b, "%s%s%s(%d):\n", pad, indentUnit, s.Name, len(s.Items))
			for _, it := range s.Items {
				if it == nil {
					b.WriteString(strings.Repeat(indentUnit, depth+2) + "null\n")
					continue
				}
				writeNode(b, it, next, depth+2)
				next++
			}
			continue
		}
		if s.Items[0] == nil {
			fmt.Fprintf(b, "%s%s%s: null\n", pad, indentUnit, s.Name)
			continue
		}
		fmt.Fprintf(b, "%s%s%s:\n", pad, indentUnit, s.Name)
		writeNode(b, s.Items[0], next, depth+2)
		next++
	}
}
