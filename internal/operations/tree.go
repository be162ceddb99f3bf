package operations

import "iter"

// Descendants yields every node below op in pre-order, evaluation order
// among siblings. op itself is not included.
func Descendants(op Operation) iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for c := range op.Children() {
			if !preorder(c, yield) {
				return
			}
		}
	}
}

// DescendantsAndSelf is Descendants preceded by op.
func DescendantsAndSelf(op Operation) iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		preorder(op, yield)
	}
}

func preorder(op Operation, yield func(Operation) bool) bool {
	if !yield(op) {
		return false
	}
	for c := range op.Children() {
		if !preorder(c, yield) {
			return false
		}
	}
	return true
}

// Find returns the first node at or below op, in pre-order, that satisfies
// match, or nil.
func Find(op Operation, match func(Operation) bool) Operation {
	for n := range DescendantsAndSelf(op) {
		if match(n) {
			return n
		}
	}
	return nil
}

// FindAll returns every node at or below op that satisfies match, in
// pre-order.
func FindAll(op Operation, match func(Operation) bool) []Operation {
	var out []Operation
	for n := range DescendantsAndSelf(op) {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

// OfKind returns a matcher for Find and FindAll.
func OfKind(k Kind) func(Operation) bool {
	return func(op Operation) bool { return op.Kind() == k }
}

// Walk visits op and its descendants depth-first. visit returns false to skip
// the children of the node it was called with.
func Walk(op Operation, visit func(op Operation, depth int) bool) {
	walk(op, 0, visit)
}

func walk(op Operation, depth int, visit func(Operation, int) bool) {
	if !visit(op, depth) {
		return
	}
	for c := range op.Children() {
		walk(c, depth+1, visit)
	}
}

// Root follows parent references up from op.
func Root(op Operation) Operation {
	for op.Parent() != nil {
		op = op.Parent()
	}
	return op
}

// IndexInParent returns the position of op among its parent's children, or
// -1 for a root.
func IndexInParent(op Operation) int {
	p := op.Parent()
	if p == nil {
		return -1
	}
	for i, c := range p.base().children {
		if c == op {
			return i
		}
	}
	return -1
}

// ChildAt returns the i-th child of op, or nil when out of range.
func ChildAt(op Operation, i int) Operation {
	children := op.base().children
	if i < 0 || i >= len(children) {
		return nil
	}
	return children[i]
}

// ChildCount returns the number of present children of op.
func ChildCount(op Operation) int {
	return len(op.base().children)
}
