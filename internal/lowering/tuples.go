package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/symbols"
)

func (b *builder) lowerTupleLiteral(n *bound.TupleLiteral) operations.Operation {
	return operations.Build(&operations.Tuple{
		Elements: b.lowerAll(n.Arguments, n.Syntax),
	}, b.common(&n.Header))
}

// lowerConvertedTupleLiteral keeps the element-wise conversions on the
// elements. The literal's own type is recorded only when it differs from
// the converted one.
func (b *builder) lowerConvertedTupleLiteral(n *bound.ConvertedTupleLiteral) operations.Operation {
	var natural *symbols.Type
	if n.NaturalType != nil && !symbols.Identical(n.NaturalType, n.Type) {
		natural = n.NaturalType
	}
	return operations.Build(&operations.Tuple{
		Elements:    b.lowerAll(n.Arguments, n.Syntax),
		NaturalType: natural,
	}, b.common(&n.Header))
}

func (b *builder) lowerDeconstructionAssignment(n *bound.DeconstructionAssignment) operations.Operation {
	target := b.required(n.Left, n.Syntax)
	value := b.required(n.Right, n.Syntax)
	return operations.Build(&operations.DeconstructionAssignment{Target: target, Value: value}, b.common(&n.Header))
}

// lowerDeclarationExpression marks every local referenced in its expression
// as declared there.
func (b *builder) lowerDeclarationExpression(n *bound.DeclarationExpression) operations.Operation {
	b.declaring++
	expr := b.required(n.Expression, n.Syntax)
	b.declaring--
	return operations.Build(&operations.DeclarationExpression{Expression: expr}, b.common(&n.Header))
}
