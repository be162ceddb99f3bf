package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

func (b *builder) lowerThrow(n *bound.Throw) operations.Operation {
	return operations.Build(&operations.Throw{Exception: b.lower(n.Expression)}, b.statement(&n.Header))
}

func (b *builder) lowerTry(n *bound.Try) operations.Operation {
	body := b.requiredBlock(n.TryBlock, n.Syntax)

	catches := make([]*operations.CatchClause, 0, len(n.Catches))
	for _, c := range n.Catches {
		if c == nil {
			panic(malformed(n, "catch list holds an absent clause"))
		}
		catches = append(catches, b.catchClause(c))
	}

	return operations.Build(&operations.Try{
		Body:    body,
		Catches: catches,
		Finally: b.block(n.Finally),
	}, b.statement(&n.Header))
}

// catchClause declares the exception variable, when there is one, before
// the filter and the handler.
func (b *builder) catchClause(n *bound.Catch) *operations.CatchClause {
	var decl operations.Operation
	if local, ok := n.ExceptionSource.(*bound.Local); ok && local != nil {
		decl = operations.Build(&operations.VariableDeclaration{Symbol: local.Symbol},
			operations.Common{Syntax: local.Syntax, Invalid: local.HasErrors})
	} else {
		decl = b.lower(n.ExceptionSource)
	}
	filter := b.lower(n.Filter)

	return operations.Build(&operations.CatchClause{
		ExceptionDeclaration: decl,
		ExceptionType:        n.ExceptionType,
		Locals:               n.Locals,
		Filter:               filter,
		Handler:              b.requiredBlock(n.Body, n.Syntax),
	}, b.statement(&n.Header))
}

// lowerUsing keeps the resource and the body even when the binder rejected
// the resource; the binder's verdict marks the node.
func (b *builder) lowerUsing(n *bound.Using) operations.Operation {
	var resources operations.Operation
	switch {
	case n.Declarations != nil:
		resources = b.declarationGroup(n.Declarations)
	case !bound.IsNil(n.Expression):
		resources = b.lower(n.Expression)
	default:
		resources = missing(n.Syntax)
	}

	return operations.Build(&operations.Using{
		Resources: resources,
		Body:      b.required(n.Body, n.Syntax),
		Locals:    n.Locals,
	}, b.statement(&n.Header))
}
