package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

func (b *builder) lowerLiteral(n *bound.Literal) operations.Operation {
	return operations.Build(&operations.Literal{}, b.common(&n.Header))
}

func (b *builder) lowerLocal(n *bound.Local) operations.Operation {
	return operations.Build(&operations.LocalReference{
		Local:         n.Symbol,
		IsDeclaration: b.declaring > 0,
	}, b.common(&n.Header))
}

func (b *builder) lowerParameter(n *bound.Parameter) operations.Operation {
	return operations.Build(&operations.ParameterReference{Parameter: n.Symbol}, b.common(&n.Header))
}

func (b *builder) lowerThis(n *bound.This) operations.Operation {
	return operations.Build(&operations.InstanceReference{
		ReferenceKind: operations.ContainingTypeInstance,
	}, b.common(&n.Header))
}

func (b *builder) lowerImplicitReceiver(n *bound.ImplicitReceiver) operations.Operation {
	return operations.Build(&operations.InstanceReference{
		ReferenceKind: operations.ImplicitReceiver,
	}, b.common(&n.Header))
}

// instance lowers the receiver of a member access. Static members have no
// instance. An instance member accessed without a receiver gets an implicit
// reference to the instance of the enclosing member body's type; without a
// member body, the member's declaring type is the only type known.
func (b *builder) instance(recv bound.Node, member *symbols.Symbol, at position.Ref) operations.Operation {
	if member != nil && member.Static {
		if _, ok := recv.(*bound.TypeExpression); ok || bound.IsNil(recv) {
			return nil
		}
		return b.lower(recv)
	}
	if bound.IsNil(recv) {
		if member == nil {
			return nil
		}
		c := implicit(at)
		c.Type = b.container
		if c.Type == nil {
			c.Type = member.Container
		}
		return operations.Build(&operations.InstanceReference{
			ReferenceKind: operations.ContainingTypeInstance,
		}, c)
	}
	return b.lower(recv)
}

// initializedInstance is the implicit receiver of a member named inside an
// object initializer or an anonymous object creation.
func initializedInstance(typ *symbols.Type, at position.Ref) operations.Operation {
	c := implicit(at)
	c.Type = typ
	return operations.Build(&operations.InstanceReference{
		ReferenceKind: operations.ImplicitReceiver,
	}, c)
}

func (b *builder) lowerFieldAccess(n *bound.FieldAccess) operations.Operation {
	inst := b.instance(n.Receiver, n.Field, n.Syntax)
	if n.Field == nil {
		return b.invalid(&n.Header, inst)
	}
	return operations.Build(&operations.FieldReference{Field: n.Field, Instance: inst}, b.common(&n.Header))
}

func (b *builder) lowerPropertyAccess(n *bound.PropertyAccess) operations.Operation {
	inst := b.instance(n.Receiver, n.Property, n.Syntax)
	if n.Property == nil {
		return b.invalid(&n.Header, inst)
	}
	return operations.Build(&operations.PropertyReference{Property: n.Property, Instance: inst}, b.common(&n.Header))
}

// lowerIndexerAccess models an indexer as a property reference with
// arguments.
func (b *builder) lowerIndexerAccess(n *bound.IndexerAccess) operations.Operation {
	if n.Indexer == nil {
		ops := []operations.Operation{b.lower(n.Receiver)}
		return b.invalid(&n.Header, append(ops, b.lowerPresent(n.Arguments)...)...)
	}
	inst := b.instance(n.Receiver, n.Indexer, n.Syntax)
	return operations.Build(&operations.PropertyReference{
		Property:  n.Indexer,
		Instance:  inst,
		Arguments: b.arguments(n.Indexer, &n.ArgumentList, n.Syntax),
	}, b.common(&n.Header))
}

func (b *builder) lowerEventAccess(n *bound.EventAccess) operations.Operation {
	inst := b.instance(n.Receiver, n.Event, n.Syntax)
	if n.Event == nil {
		return b.invalid(&n.Header, inst)
	}
	return operations.Build(&operations.EventReference{Event: n.Event, Instance: inst}, b.common(&n.Header))
}

// lowerMethodGroup yields a method reference once the binder resolved the
// group to one method; an unresolved group is invalid.
func (b *builder) lowerMethodGroup(n *bound.MethodGroup) operations.Operation {
	if n.Resolved == nil {
		return b.invalid(&n.Header, b.lower(n.Receiver))
	}
	m := n.Resolved
	return operations.Build(&operations.MethodReference{
		Method:    m,
		Instance:  b.instance(n.Receiver, m, n.Syntax),
		IsVirtual: m.Virtual && !m.Static,
	}, b.common(&n.Header))
}

// lowerArrayAccess keeps array and indices in evaluation order. Named index
// arguments and non-array operands have no valid shape.
func (b *builder) lowerArrayAccess(n *bound.ArrayAccess) operations.Operation {
	array := b.required(n.Array, n.Syntax)
	indices := b.lowerAll(n.Indices, n.Syntax)

	named := false
	for _, name := range n.ArgumentNames {
		if name != "" {
			named = true
		}
	}
	if t := array.Type(); named || t == nil || t.Kind != symbols.TypeKindArray {
		return b.invalid(&n.Header, append([]operations.Operation{array}, indices...)...)
	}

	return operations.Build(&operations.ArrayElementReference{
		ArrayReference: array,
		Indices:        indices,
	}, b.common(&n.Header))
}

// lowerCall lowers a resolved invocation; a failed overload resolution
// keeps the receiver and the arguments as operands of an Invalid node.
func (b *builder) lowerCall(n *bound.Call) operations.Operation {
	if n.Method == nil {
		ops := []operations.Operation{b.lower(n.Receiver)}
		return b.invalid(&n.Header, append(ops, b.lowerPresent(n.Arguments)...)...)
	}
	m := n.Method
	inst := b.instance(n.Receiver, m, n.Syntax)
	return operations.Build(&operations.Invocation{
		TargetMethod: m,
		Instance:     inst,
		Arguments:    b.arguments(m, &n.ArgumentList, n.Syntax),
		IsVirtual:    m.Virtual && !m.Static,
	}, b.common(&n.Header))
}
