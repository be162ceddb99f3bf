package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

func (b *builder) lowerSwitch(n *bound.Switch) operations.Operation {
	value := b.required(n.Expression, n.Syntax)

	cases := make([]*operations.SwitchCase, 0, len(n.Sections))
	for _, s := range n.Sections {
		if s == nil {
			panic(malformed(n, "section list holds an absent section"))
		}
		cases = append(cases, b.switchCase(s))
	}

	return operations.Build(&operations.Switch{
		Value:  value,
		Cases:  cases,
		Locals: n.Locals,
	}, b.statement(&n.Header))
}

func (b *builder) switchCase(n *bound.SwitchSection) *operations.SwitchCase {
	clauses := make([]operations.Operation, len(n.Labels))
	for i, l := range n.Labels {
		if l == nil {
			clauses[i] = missing(n.Syntax)
			continue
		}
		clauses[i] = b.caseClause(l)
	}
	return operations.Build(&operations.SwitchCase{
		Clauses: clauses,
		Body:    b.lowerAll(n.Statements, n.Syntax),
		Locals:  n.Locals,
	}, b.statement(&n.Header))
}

// caseClause picks the clause shape: `default`, a single value (a constant
// label, or a constant pattern without a guard), or a general pattern.
func (b *builder) caseClause(l *bound.SwitchLabel) operations.Operation {
	c := b.statement(&l.Header)

	if l.IsDefault {
		return operations.Build(&operations.DefaultCaseClause{Label: l.Label}, c)
	}
	if !bound.IsNil(l.Value) {
		return operations.Build(&operations.SingleValueCaseClause{
			Value: b.lower(l.Value),
			Label: l.Label,
		}, c)
	}
	if cp, ok := l.Pattern.(*bound.ConstantPattern); ok && cp != nil && bound.IsNil(l.Guard) {
		c.Invalid = c.Invalid || cp.HasErrors
		return operations.Build(&operations.SingleValueCaseClause{
			Value: b.required(cp.Value, cp.Syntax),
			Label: l.Label,
		}, c)
	}

	pattern := b.required(l.Pattern, l.Syntax)
	return operations.Build(&operations.PatternCaseClause{
		Pattern: pattern,
		Guard:   b.lower(l.Guard),
		Label:   l.Label,
	}, c)
}
