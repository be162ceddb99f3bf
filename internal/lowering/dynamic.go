package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/symbols"
)

// dynamicArguments keeps late-bound arguments as written; names and ref
// kinds travel alongside since there is no parameter to match them to.
func (b *builder) dynamicArguments(list *bound.ArgumentList, h *bound.Header) operations.DynamicArguments {
	return operations.DynamicArguments{
		Arguments:        b.lowerAll(list.Arguments, h.Syntax),
		ArgumentNames:    nonEmpty(list.ArgumentNames),
		ArgumentRefKinds: withRefs(list.ArgumentRefKinds),
	}
}

// nonEmpty returns names unless none of them is set.
func nonEmpty(names []string) []string {
	for _, n := range names {
		if n != "" {
			return names
		}
	}
	return nil
}

func withRefs(kinds []symbols.RefKind) []symbols.RefKind {
	for _, k := range kinds {
		if k != symbols.RefNone {
			return kinds
		}
	}
	return nil
}

func (b *builder) lowerDynamicObjectCreation(n *bound.DynamicObjectCreation) operations.Operation {
	args := b.dynamicArguments(&n.ArgumentList, &n.Header)
	return operations.Build(&operations.DynamicObjectCreation{
		DynamicArguments: args,
		Initializer:      b.initializer(n.Initializer),
	}, b.common(&n.Header))
}

// lowerDynamicMemberAccess records a type-name receiver as the containing
// type instead of as an instance.
func (b *builder) lowerDynamicMemberAccess(n *bound.DynamicMemberAccess) operations.Operation {
	op := &operations.DynamicMemberReference{
		MemberName:    n.Name,
		TypeArguments: n.TypeArguments,
	}
	if te, ok := n.Receiver.(*bound.TypeExpression); ok && te != nil {
		op.ContainingType = te.Type
	} else {
		op.Instance = b.lower(n.Receiver)
	}
	return operations.Build(op, b.common(&n.Header))
}

func (b *builder) lowerDynamicInvocation(n *bound.DynamicInvocation) operations.Operation {
	target := b.required(n.Expression, n.Syntax)
	return operations.Build(&operations.DynamicInvocation{
		Operation:        target,
		DynamicArguments: b.dynamicArguments(&n.ArgumentList, &n.Header),
	}, b.common(&n.Header))
}

func (b *builder) lowerDynamicIndexerAccess(n *bound.DynamicIndexerAccess) operations.Operation {
	target := b.required(n.Receiver, n.Syntax)
	return operations.Build(&operations.DynamicIndexerAccess{
		Operation:        target,
		DynamicArguments: b.dynamicArguments(&n.ArgumentList, &n.Header),
	}, b.common(&n.Header))
}
