package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/symbols"
)

// initializer lowers the optional initializer of an object creation.
func (b *builder) initializer(n bound.Node) *operations.ObjectOrCollectionInitializer {
	if bound.IsNil(n) {
		return nil
	}
	switch n := n.(type) {
	case *bound.ObjectInitializer:
		return b.objectOrCollection(&n.Header, n.Initializers)
	case *bound.CollectionInitializer:
		return b.objectOrCollection(&n.Header, n.Initializers)
	}
	panic(malformed(n, "creation initializer is neither an object nor a collection initializer"))
}

// objectOrCollection lowers an initializer whose header type is the type of
// the object being initialized; members named inside it are accessed on
// that object.
func (b *builder) objectOrCollection(h *bound.Header, elems []bound.Node) *operations.ObjectOrCollectionInitializer {
	b.initializing = append(b.initializing, h.Type)
	defer func() { b.initializing = b.initializing[:len(b.initializing)-1] }()

	return operations.Build(&operations.ObjectOrCollectionInitializer{
		Initializers: b.lowerAll(elems, h.Syntax),
	}, b.common(h))
}

// initializedType is the type of the innermost object under initialization,
// or fallback outside any initializer.
func (b *builder) initializedType(fallback *symbols.Type) *symbols.Type {
	if n := len(b.initializing); n > 0 && b.initializing[n-1] != nil {
		return b.initializing[n-1]
	}
	return fallback
}

func (b *builder) lowerObjectInitializer(n *bound.ObjectInitializer) operations.Operation {
	return b.objectOrCollection(&n.Header, n.Initializers)
}

func (b *builder) lowerCollectionInitializer(n *bound.CollectionInitializer) operations.Operation {
	return b.objectOrCollection(&n.Header, n.Initializers)
}

// memberInitialization lowers `Member = value` inside an object initializer.
// A nested initializer on the right makes it a MemberInitializer.
func (b *builder) memberInitialization(n *bound.Assignment, m *bound.ObjectInitializerMember) operations.Operation {
	target := b.lowerInitializerMember(m)
	if !bound.IsNil(n.Right) {
		switch r := n.Right.(type) {
		case *bound.ObjectInitializer, *bound.CollectionInitializer:
			return operations.Build(&operations.MemberInitializer{
				InitializedMember: target,
				Initializer:       b.initializer(r),
			}, b.common(&n.Header))
		}
	}
	return operations.Build(&operations.SimpleAssignment{
		Target: target,
		Value:  b.required(n.Right, n.Syntax),
		IsRef:  n.IsRef,
	}, b.common(&n.Header))
}

// lowerInitializerMember references the member on the instance being
// initialized.
func (b *builder) lowerInitializerMember(n *bound.ObjectInitializerMember) operations.Operation {
	m := n.Member
	if m == nil {
		return b.invalid(&n.Header, b.lowerPresent(n.Arguments)...)
	}
	inst := initializedInstance(b.initializedType(m.Container), n.Syntax)
	c := b.common(&n.Header)

	switch m.Kind {
	case symbols.SymbolField:
		return operations.Build(&operations.FieldReference{Field: m, Instance: inst}, c)
	case symbols.SymbolEvent:
		return operations.Build(&operations.EventReference{Event: m, Instance: inst}, c)
	case symbols.SymbolProperty:
		var args []*operations.Argument
		if m.IsIndexer() {
			args = b.arguments(m, &n.ArgumentList, n.Syntax)
		}
		return operations.Build(&operations.PropertyReference{Property: m, Instance: inst, Arguments: args}, c)
	}
	return b.invalid(&n.Header, inst)
}

// lowerCollectionElement is one Add call of a collection initializer. The
// receiver is implied and the values are kept as written.
func (b *builder) lowerCollectionElement(n *bound.CollectionElementInitializer) operations.Operation {
	args := b.lowerAll(n.Arguments, n.Syntax)
	if n.AddMethod == nil {
		return b.invalid(&n.Header, args...)
	}
	return operations.Build(&operations.CollectionElementInitializer{
		AddMethod: n.AddMethod,
		Arguments: args,
	}, b.common(&n.Header))
}

func (b *builder) lowerDynamicCollectionElement(n *bound.DynamicCollectionElementInitializer) operations.Operation {
	return operations.Build(&operations.CollectionElementInitializer{
		Arguments: b.lowerAll(n.Arguments, n.Syntax),
		IsDynamic: true,
	}, b.common(&n.Header))
}
