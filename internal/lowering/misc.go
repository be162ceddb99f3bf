package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

// lowerInterpolatedString splits the string into text parts and holes. Text
// parts wrap their literal.
func (b *builder) lowerInterpolatedString(n *bound.InterpolatedString) operations.Operation {
	parts := make([]operations.Operation, len(n.Parts))
	for i, p := range n.Parts {
		lit, ok := p.(*bound.Literal)
		if !ok || lit == nil {
			parts[i] = b.required(p, n.Syntax)
			continue
		}
		text := b.common(&lit.Header)
		text.Implicit = true
		parts[i] = operations.Build(&operations.InterpolatedStringText{
			Text: operations.Build(&operations.Literal{}, text),
		}, operations.Common{Syntax: lit.Syntax, Implicit: lit.CompilerGenerated, Invalid: lit.HasErrors})
	}
	return operations.Build(&operations.InterpolatedString{Parts: parts}, b.common(&n.Header))
}

func (b *builder) lowerStringInsert(n *bound.StringInsert) operations.Operation {
	expr := b.required(n.Value, n.Syntax)
	return operations.Build(&operations.Interpolation{
		Expression:   expr,
		Alignment:    b.lower(n.Alignment),
		FormatString: b.lower(n.Format),
	}, b.common(&n.Header))
}

func (b *builder) lowerAwait(n *bound.Await) operations.Operation {
	return operations.Build(&operations.Await{Operation: b.required(n.Expression, n.Syntax)}, b.common(&n.Header))
}

func (b *builder) lowerDefault(n *bound.DefaultExpression) operations.Operation {
	return operations.Build(&operations.DefaultValue{}, b.common(&n.Header))
}

func (b *builder) lowerTypeOf(n *bound.TypeOf) operations.Operation {
	return operations.Build(&operations.TypeOf{TypeOperand: n.SourceType}, b.common(&n.Header))
}

func (b *builder) lowerSizeOf(n *bound.SizeOf) operations.Operation {
	return operations.Build(&operations.SizeOf{TypeOperand: n.SourceType}, b.common(&n.Header))
}

func (b *builder) lowerNameOf(n *bound.NameOf) operations.Operation {
	return operations.Build(&operations.NameOf{Argument: b.required(n.Argument, n.Syntax)}, b.common(&n.Header))
}

func (b *builder) lowerAddressOf(n *bound.AddressOf) operations.Operation {
	return operations.Build(&operations.AddressOf{Reference: b.required(n.Operand, n.Syntax)}, b.common(&n.Header))
}

func (b *builder) lowerConditionalAccess(n *bound.ConditionalAccess) operations.Operation {
	recv := b.required(n.Receiver, n.Syntax)
	access := b.required(n.Access, n.Syntax)
	return operations.Build(&operations.ConditionalAccess{Operation: recv, WhenNotNull: access}, b.common(&n.Header))
}

// lowerConditionalReceiver stands for a value already evaluated by the
// enclosing conditional access, so it is never written.
func (b *builder) lowerConditionalReceiver(n *bound.ConditionalReceiver) operations.Operation {
	c := b.common(&n.Header)
	c.Implicit = true
	return operations.Build(&operations.ConditionalAccessInstance{}, c)
}

func (b *builder) lowerThrowExpression(n *bound.ThrowExpression) operations.Operation {
	return operations.Build(&operations.Throw{Exception: b.required(n.Expression, n.Syntax)}, b.common(&n.Header))
}

// lowerEventAssignment splits `e += h` into the event reference and the
// handler. The reference spans the whole assignment.
func (b *builder) lowerEventAssignment(n *bound.EventAssignment) operations.Operation {
	inst := b.instance(n.Receiver, n.Event, n.Syntax)
	if n.Event == nil {
		return b.invalid(&n.Header, inst, b.lower(n.Argument))
	}
	ref := operations.Build(&operations.EventReference{Event: n.Event, Instance: inst},
		operations.Common{Type: n.Event.Type, Syntax: n.Syntax})
	return operations.Build(&operations.EventAssignment{
		EventReference: ref,
		Handler:        b.required(n.Argument, n.Syntax),
		Adds:           n.IsAddition,
	}, b.common(&n.Header))
}

func (b *builder) lowerQuery(n *bound.Query) operations.Operation {
	return operations.Build(&operations.TranslatedQuery{Operation: b.required(n.Value, n.Syntax)}, b.common(&n.Header))
}

// Inner clauses and range variables are transparent: they lower to what
// they translate to.
func (b *builder) lowerQueryClause(n *bound.QueryClause) operations.Operation {
	return b.required(n.Value, n.Syntax)
}

func (b *builder) lowerRangeVariable(n *bound.RangeVariable) operations.Operation {
	return b.required(n.Value, n.Syntax)
}
