package operations

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/optree/internal/symbols"
)

// Verifier checks the structural contract of a published operation tree.
type Verifier struct {
	errors  []VerificationError
	visited map[Operation]bool
}

// VerificationError is one contract violation found in a tree.
type VerificationError struct {
	Kind    VerificationErrorKind
	Node    Operation
	Message string
}

func (e VerificationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Node.Kind(), e.Message)
}

// VerificationErrorKind classifies a violation.
type VerificationErrorKind int

const (
	ErrorKindInvalidNodeStructure VerificationErrorKind = iota
	ErrorKindParentLink
	ErrorKindSharedNode
	ErrorKindInvalidPropagation
	ErrorKindMissingRequired
	ErrorKindTypeInconsistency
)

func (k VerificationErrorKind) String() string {
	switch k {
	case ErrorKindInvalidNodeStructure:
		return "structure"
	case ErrorKindParentLink:
		return "parent"
	case ErrorKindSharedNode:
		return "shared"
	case ErrorKindInvalidPropagation:
		return "invalid-propagation"
	case ErrorKindMissingRequired:
		return "missing"
	case ErrorKindTypeInconsistency:
		return "type"
	}
	return "unknown"
}

// NewVerifier creates a verifier.
func NewVerifier() *Verifier {
	return &Verifier{visited: make(map[Operation]bool)}
}

// Verify checks the tree rooted at root and returns every violation found,
// in pre-order.
func (v *Verifier) Verify(root Operation) []VerificationError {
	v.errors = nil
	v.visited = make(map[Operation]bool)
	v.verifyNode(root, root.Parent())
	return v.errors
}

// Verify is a convenience wrapper around a fresh Verifier.
func Verify(root Operation) []VerificationError {
	return NewVerifier().Verify(root)
}

func (v *Verifier) addError(kind VerificationErrorKind, op Operation, format string, args ...interface{}) {
	v.errors = append(v.errors, VerificationError{Kind: kind, Node: op, Message: fmt.Sprintf(format, args...)})
}

func (v *Verifier) verifyNode(op Operation, parent Operation) {
	if v.visited[op] {
		v.addError(ErrorKindSharedNode, op, "node reachable more than once")
		return
	}
	v.visited[op] = true

	n := op.base()
	if !n.built {
		v.addError(ErrorKindInvalidNodeStructure, op, "node was never built")
		return
	}
	if want := kindOf(op); n.kind != want {
		v.addError(ErrorKindInvalidNodeStructure, op, "kind %s does not match shape %s", n.kind, want)
	}
	if op.Parent() != parent {
		v.addError(ErrorKindParentLink, op, "parent reference does not match the enclosing node")
	}

	v.verifySlots(op)
	v.verifyInvalid(op)
	v.verifyKind(op)

	for _, c := range n.children {
		v.verifyNode(c, op)
	}
}

func (v *Verifier) verifySlots(op Operation) {
	var present []Operation
	for _, s := range op.Slots() {
		if !s.List && len(s.Items) != 1 {
			v.addError(ErrorKindInvalidNodeStructure, op, "single slot %s holds %d items", s.Name, len(s.Items))
		}
		for i, it := range s.Items {
			if it == nil {
				if s.List {
					v.addError(ErrorKindInvalidNodeStructure, op, "list slot %s has an absent item at %d", s.Name, i)
				}
				continue
			}
			present = append(present, it)
		}
	}
	children := op.base().children
	if len(present) != len(children) {
		v.addError(ErrorKindInvalidNodeStructure, op, "%d children recorded, slots hold %d", len(children), len(present))
		return
	}
	for i := range present {
		if present[i] != children[i] {
			v.addError(ErrorKindInvalidNodeStructure, op, "child %d is out of slot order", i)
			return
		}
	}
}

func (v *Verifier) verifyInvalid(op Operation) {
	want := LocallyInvalid(op)
	for c := range op.Children() {
		if c.IsInvalid() {
			want = true
		}
	}
	if op.IsInvalid() != want {
		v.addError(ErrorKindInvalidPropagation, op, "IsInvalid is %t, children and local verdict give %t", op.IsInvalid(), want)
	}
	if op.Kind() == KindInvalid && !op.IsInvalid() {
		v.addError(ErrorKindInvalidPropagation, op, "Invalid node is not marked invalid")
	}
}

// verifyKind checks the per-kind required slots and typing rules. A node that
// is itself invalid may lack required parts; recovery fills them with
// implicit Invalid leaves, so absence is still reported for valid nodes only.
func (v *Verifier) verifyKind(op Operation) {
	require := func(name string, child Operation) {
		if child == nil && !op.IsInvalid() {
			v.addError(ErrorKindMissingRequired, op, "%s is required", name)
		}
	}

	if c := op.ConstantValue(); c != nil && !symbols.Representable(c, op.Type()) {
		v.addError(ErrorKindTypeInconsistency, op, "constant %s is not representable in %s", c, op.Type())
	}

	switch o := op.(type) {
	case *Conversion:
		require("Operand", o.Operand)
		if o.Type() == nil {
			v.addError(ErrorKindTypeInconsistency, op, "conversion has no target type")
		}
		if o.Conversion.IsUserDefined != (o.Conversion.Method != nil) && !op.IsInvalid() {
			v.addError(ErrorKindTypeInconsistency, op, "user-defined conversion without operator method")
		}
	case *Argument:
		require("Value", o.Value)
	case *SimpleAssignment:
		require("Target", o.Target)
		require("Value", o.Value)
	case *CompoundAssignment:
		require("Target", o.Target)
		require("Value", o.Value)
	case *BinaryOperator:
		require("Left", o.Left)
		require("Right", o.Right)
	case *UnaryOperator:
		require("Operand", o.Operand)
	case *ExpressionStatement:
		require("Operation", o.Operation)
	case *Switch:
		require("Value", o.Value)
	case *ForEachLoop:
		require("Collection", o.Collection)
	case *Using:
		require("Body", o.Body)
	case *Try:
		if o.Body == nil {
			v.addError(ErrorKindMissingRequired, op, "Body is required")
		}
		if len(o.Catches) == 0 && o.Finally == nil && !op.IsInvalid() {
			v.addError(ErrorKindMissingRequired, op, "try without catch or finally")
		}
	case *ArrayCreation:
		if t := o.Type(); t != nil && t.Kind == symbols.TypeKindArray && !op.IsInvalid() {
			if len(o.DimensionSizes) != t.Rank {
				v.addError(ErrorKindTypeInconsistency, op, "%d dimension sizes for rank %d", len(o.DimensionSizes), t.Rank)
			}
		}
	case *Literal:
		if o.ConstantValue() == nil && !op.IsInvalid() {
			v.addError(ErrorKindMissingRequired, op, "literal has no constant value")
		}
	}
}

// Summary renders violations one per line.
func Summary(errs []VerificationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
