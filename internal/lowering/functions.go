package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

func (b *builder) lowerLambda(n *bound.Lambda) operations.Operation {
	return operations.Build(&operations.AnonymousFunction{
		Symbol: n.Symbol,
		Body:   b.block(n.Body),
	}, b.common(&n.Header))
}

// lowerMemberBody lowers the body with the member's declaring type as the
// type of implied receivers. The body itself is the result.
func (b *builder) lowerMemberBody(n *bound.MemberBody) operations.Operation {
	outer := b.container
	b.container = n.Container
	defer func() { b.container = outer }()
	return b.required(n.Body, n.Syntax)
}

func (b *builder) lowerLocalFunction(n *bound.LocalFunction) operations.Operation {
	return operations.Build(&operations.LocalFunction{
		Symbol: n.Symbol,
		Body:   b.block(n.Body),
	}, b.common(&n.Header))
}
