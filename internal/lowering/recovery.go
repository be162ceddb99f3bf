package lowering

import (
	"fmt"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
)

// required lowers a slot that the target shape cannot leave empty. An absent
// node becomes an implicit Invalid leaf at the enclosing syntax.
func (b *builder) required(n bound.Node, at position.Ref) operations.Operation {
	if op := b.lower(n); op != nil {
		return op
	}
	return missing(at)
}

func missing(at position.Ref) operations.Operation {
	c := implicit(at)
	c.Invalid = true
	return operations.Build(&operations.Invalid{}, c)
}

// invalid wraps whatever operands were recovered for a construct that has
// no valid shape. The node keeps the construct's type and syntax.
func (b *builder) invalid(h *bound.Header, operands ...operations.Operation) operations.Operation {
	c := b.common(h)
	c.Invalid = true
	return operations.Build(&operations.Invalid{Operands: present(operands)}, c)
}

// present drops absent operands.
func present(ops []operations.Operation) []operations.Operation {
	var out []operations.Operation
	for _, op := range ops {
		if op != nil {
			out = append(out, op)
		}
	}
	return out
}

// malformed reports a bound tree that breaks the binder's contract. It is
// raised as a panic and turned into an error by Lower.
func malformed(n bound.Node, detail string) *errors.StandardError {
	return errors.MalformedBoundTree(fmt.Sprintf("%T", n), detail)
}

// lowerPresent lowers nodes and keeps only those that exist.
func (b *builder) lowerPresent(nodes []bound.Node) []operations.Operation {
	var out []operations.Operation
	for _, n := range nodes {
		if op := b.lower(n); op != nil {
			out = append(out, op)
		}
	}
	return out
}

func (b *builder) lowerBadExpression(n *bound.BadExpression) operations.Operation {
	return b.invalid(&n.Header, b.lowerPresent(n.Children)...)
}

func (b *builder) lowerBadStatement(n *bound.BadStatement) operations.Operation {
	return b.invalid(&n.Header, b.lowerPresent(n.Children)...)
}

// lowerUnmodeled keeps a construct without a dedicated kind. It is not
// invalid unless the binder says so.
func (b *builder) lowerUnmodeled(n *bound.Unmodeled) operations.Operation {
	return operations.Build(&operations.Unmodeled{
		Construct: n.Construct,
		Operands:  b.lowerPresent(n.Children),
	}, b.common(&n.Header))
}

func (b *builder) lowerTypeExpression(n *bound.TypeExpression) operations.Operation {
	return operations.Build(&operations.Unmodeled{Construct: "TypeExpression"}, b.common(&n.Header))
}

func (b *builder) lowerUnboundLambda(n *bound.UnboundLambda) operations.Operation {
	return b.invalid(&n.Header)
}
