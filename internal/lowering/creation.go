package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

func (b *builder) lowerObjectCreation(n *bound.ObjectCreation) operations.Operation {
	if n.Constructor == nil {
		ops := b.lowerPresent(n.Arguments)
		return b.invalid(&n.Header, append(ops, b.lower(n.Initializer))...)
	}
	return operations.Build(&operations.ObjectCreation{
		Constructor: n.Constructor,
		Arguments:   b.arguments(n.Constructor, &n.ArgumentList, n.Syntax),
		Initializer: b.initializer(n.Initializer),
	}, b.common(&n.Header))
}

func (b *builder) lowerNewT(n *bound.NewT) operations.Operation {
	return operations.Build(&operations.TypeParameterObjectCreation{
		Initializer: b.initializer(n.Initializer),
	}, b.common(&n.Header))
}

// lowerAnonymousObjectCreation turns each member value into an implicit
// assignment to the corresponding property of the new instance.
func (b *builder) lowerAnonymousObjectCreation(n *bound.AnonymousObjectCreation) operations.Operation {
	inits := make([]operations.Operation, len(n.Arguments))
	for i, arg := range n.Arguments {
		value := b.required(arg, n.Syntax)
		at := value.Syntax()

		var target operations.Operation
		var typ *symbols.Type
		if i < len(n.Properties) && n.Properties[i] != nil {
			p := n.Properties[i]
			typ = p.Type
			rc := implicit(at)
			rc.Type = p.Type
			target = operations.Build(&operations.PropertyReference{
				Property: p,
				Instance: initializedInstance(n.Type, at),
			}, rc)
		} else {
			target = missing(at)
		}

		ac := implicit(at)
		ac.Type = typ
		inits[i] = operations.Build(&operations.SimpleAssignment{Target: target, Value: value}, ac)
	}
	return operations.Build(&operations.AnonymousObjectCreation{Initializers: inits}, b.common(&n.Header))
}

func (b *builder) lowerDelegateCreation(n *bound.DelegateCreation) operations.Operation {
	return operations.Build(&operations.DelegateCreation{
		Target: b.required(n.Argument, n.Syntax),
	}, b.common(&n.Header))
}

// lowerArrayCreation always yields one dimension size per rank. Sizes
// implied by the initializer are synthesized as implicit Int32 literals.
func (b *builder) lowerArrayCreation(n *bound.ArrayCreation) operations.Operation {
	var dims []operations.Operation
	if len(n.Bounds) > 0 {
		dims = b.lowerAll(n.Bounds, n.Syntax)
	} else {
		dims = impliedBounds(n)
	}

	var init *operations.ArrayInitializer
	if n.Initializer != nil {
		init = b.arrayInitializer(n.Initializer)
	}

	return operations.Build(&operations.ArrayCreation{
		DimensionSizes: dims,
		Initializer:    init,
	}, b.common(&n.Header))
}

// impliedBounds counts the initializer at each nesting level, following the
// first nested initializer. Levels the initializer does not reach are empty.
func impliedBounds(n *bound.ArrayCreation) []operations.Operation {
	if n.Initializer == nil {
		return nil
	}
	rank := 1
	if t := n.Type; t != nil && t.Kind == symbols.TypeKindArray {
		rank = t.Rank
	}

	dims := make([]operations.Operation, 0, rank)
	init := n.Initializer
	for d := 0; d < rank; d++ {
		count := 0
		if init != nil {
			count = len(init.Initializers)
		}
		dims = append(dims, sizeLiteral(count, n.Syntax))
		init = firstNested(init)
	}
	return dims
}

func firstNested(init *bound.ArrayInitialization) *bound.ArrayInitialization {
	if init == nil || len(init.Initializers) == 0 {
		return nil
	}
	nested, _ := init.Initializers[0].(*bound.ArrayInitialization)
	return nested
}

func sizeLiteral(count int, at position.Ref) operations.Operation {
	c := implicit(at)
	c.Type = symbols.Int32
	c.Constant = symbols.NewInt(int64(count))
	return operations.Build(&operations.Literal{}, c)
}

func (b *builder) lowerArrayInitialization(n *bound.ArrayInitialization) operations.Operation {
	return b.arrayInitializer(n)
}

// arrayInitializer lowers `{ ... }`; nested initializers stay nested. The
// initializer itself has no type.
func (b *builder) arrayInitializer(n *bound.ArrayInitialization) *operations.ArrayInitializer {
	c := b.common(&n.Header)
	c.Type = nil
	return operations.Build(&operations.ArrayInitializer{
		ElementValues: b.lowerAll(n.Initializers, n.Syntax),
	}, c)
}
