// Package operations defines the operation tree: a small closed set of
// uniform node shapes that expose the meaning of bound code. Every node
// satisfies Operation; kind-specific slots are exposed as exported fields on
// the concrete node types and, generically, through Slots.
//
// Trees are built bottom-up with Build and published with Publish. After
// publication a tree is never mutated and may be traversed from any number of
// goroutines without locking.
package operations

import (
	"iter"

	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// Operation is the contract every node satisfies.
type Operation interface {
	// Kind returns the node's tag.
	Kind() Kind
	// Type returns the resolved result type, nil for untyped kinds.
	Type() *symbols.Type
	// ConstantValue returns the folded value, nil when the binder did not
	// fold the construct.
	ConstantValue() *symbols.Constant
	// IsInvalid reports whether the node or any descendant could not be
	// fully resolved.
	IsInvalid() bool
	// IsImplicit reports whether the node was synthesized rather than
	// written.
	IsImplicit() bool
	// Syntax returns the originating syntax reference.
	Syntax() position.Ref
	// Parent returns the enclosing operation, nil for a root.
	Parent() Operation
	// Children yields the present children in evaluation order.
	Children() iter.Seq[Operation]
	// Slots returns the kind's structural slots in a fixed order, absent
	// slots included.
	Slots() []Slot

	base() *node
}

// Common carries the attributes shared by every node. Invalid is the local
// verdict only; Build folds in the children.
type Common struct {
	Type     *symbols.Type
	Constant *symbols.Constant
	Syntax   position.Ref
	Implicit bool
	Invalid  bool
}

type node struct {
	kind     Kind
	typ      *symbols.Type
	constant *symbols.Constant
	syntax   position.Ref
	implicit bool
	local    bool
	invalid  bool
	children []Operation
	parent   Operation
	built    bool
}

func (n *node) base() *node                      { return n }
func (n *node) Kind() Kind                       { return n.kind }
func (n *node) Type() *symbols.Type              { return n.typ }
func (n *node) ConstantValue() *symbols.Constant { return n.constant }
func (n *node) IsInvalid() bool                  { return n.invalid }
func (n *node) IsImplicit() bool                 { return n.implicit }
func (n *node) Syntax() position.Ref             { return n.syntax }
func (n *node) Parent() Operation                { return n.parent }

// Children yields the present children in evaluation order. The sequence can
// be ranged over any number of times.
func (n *node) Children() iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// LocallyInvalid reports the node's own verdict, excluding its children.
func LocallyInvalid(op Operation) bool {
	return op.base().local
}

// Slot is a named structural position of a node. A single slot always holds
// exactly one item, which is nil when the slot is absent.
type Slot struct {
	Name  string
	List  bool
	Items []Operation
}

// Present returns the non-nil items of the slot.
func (s Slot) Present() []Operation {
	out := make([]Operation, 0, len(s.Items))
	for _, it := range s.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

type nodePtr interface {
	comparable
	Operation
}

func one[T nodePtr](name string, op T) Slot {
	var zero T
	if op == zero {
		return Slot{Name: name, Items: []Operation{nil}}
	}
	return Slot{Name: name, Items: []Operation{op}}
}

func many[T nodePtr](name string, ops []T) Slot {
	items := make([]Operation, 0, len(ops))
	var zero T
	for _, op := range ops {
		if op == zero {
			items = append(items, nil)
			continue
		}
		items = append(items, op)
	}
	return Slot{Name: name, List: true, Items: items}
}

// Build finishes construction of op: it stamps the kind and common
// attributes, snapshots the children in slot order and folds the children's
// invalidity into the node's own. Each node is built exactly once, after all
// of its children.
func Build[T Operation](op T, c Common) T {
	n := op.base()
	if n.built {
		panic("operations: node built twice")
	}
	n.kind = kindOf(op)
	n.typ = c.Type
	n.constant = c.Constant
	n.syntax = c.Syntax
	n.implicit = c.Implicit
	n.local = c.Invalid
	n.invalid = c.Invalid
	for _, s := range op.Slots() {
		for _, child := range s.Items {
			if child == nil {
				continue
			}
			if !child.base().built {
				panic("operations: child of " + n.kind.String() + " is not built")
			}
			n.children = append(n.children, child)
			if child.IsInvalid() {
				n.invalid = true
			}
		}
	}
	n.built = true
	return op
}

// Publish installs parent references top-down, once, on a fully built tree
// and returns its root. It must run before the tree is shared.
func Publish(root Operation) Operation {
	var install func(parent Operation)
	install = func(parent Operation) {
		for _, c := range parent.base().children {
			cn := c.base()
			if cn.parent != nil {
				panic("operations: node already has a parent")
			}
			cn.parent = parent
			install(c)
		}
	}
	if root.base().parent != nil {
		panic("operations: root is already attached")
	}
	install(root)
	return root
}
