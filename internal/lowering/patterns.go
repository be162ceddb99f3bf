package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

func (b *builder) lowerIsPattern(n *bound.IsPattern) operations.Operation {
	value := b.required(n.Expression, n.Syntax)
	pattern := b.required(n.Pattern, n.Syntax)
	return operations.Build(&operations.IsPattern{Value: value, Pattern: pattern}, b.common(&n.Header))
}

// Patterns are untyped.
func (b *builder) pattern(h *bound.Header) operations.Common {
	c := b.common(h)
	c.Type = nil
	c.Constant = nil
	return c
}

func (b *builder) lowerConstantPattern(n *bound.ConstantPattern) operations.Operation {
	return operations.Build(&operations.ConstantPattern{
		Value: b.required(n.Value, n.Syntax),
	}, b.pattern(&n.Header))
}

// lowerDeclarationPattern matches the declared type; `var x` matches the
// variable's own type.
func (b *builder) lowerDeclarationPattern(n *bound.DeclarationPattern) operations.Operation {
	matched := n.DeclaredType
	if matched == nil && n.IsVar && n.Variable != nil {
		matched = n.Variable.Type
	}
	return operations.Build(&operations.DeclarationPattern{
		DeclaredSymbol: n.Variable,
		MatchedType:    matched,
	}, b.pattern(&n.Header))
}
