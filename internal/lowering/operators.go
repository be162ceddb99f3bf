package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
)

func (b *builder) lowerUnary(n *bound.Unary) operations.Operation {
	return operations.Build(&operations.UnaryOperator{
		OperatorKind: n.Operator,
		Operand:      b.required(n.Operand, n.Syntax),
		Method:       n.Method,
		IsChecked:    n.Checked,
		IsLifted:     n.Lifted,
	}, b.common(&n.Header))
}

func (b *builder) lowerBinary(n *bound.Binary) operations.Operation {
	left := b.required(n.Left, n.Syntax)
	right := b.required(n.Right, n.Syntax)
	return operations.Build(&operations.BinaryOperator{
		OperatorKind: n.Operator,
		Left:         left,
		Right:        right,
		Method:       n.Method,
		IsChecked:    n.Checked,
		IsLifted:     n.Lifted,
	}, b.common(&n.Header))
}

func (b *builder) lowerCompoundAssignment(n *bound.CompoundAssignment) operations.Operation {
	target := b.required(n.Left, n.Syntax)
	value := b.required(n.Right, n.Syntax)
	return operations.Build(&operations.CompoundAssignment{
		OperatorKind: n.Operator,
		Target:       target,
		Value:        value,
		Method:       n.Method,
		IsChecked:    n.Checked,
	}, b.common(&n.Header))
}

func (b *builder) lowerAssignment(n *bound.Assignment) operations.Operation {
	if m, ok := n.Left.(*bound.ObjectInitializerMember); ok && m != nil {
		return b.memberInitialization(n, m)
	}
	target := b.required(n.Left, n.Syntax)
	value := b.required(n.Right, n.Syntax)
	return operations.Build(&operations.SimpleAssignment{
		Target: target,
		Value:  value,
		IsRef:  n.IsRef,
	}, b.common(&n.Header))
}

func (b *builder) lowerIncrementDecrement(n *bound.IncrementDecrement) operations.Operation {
	return operations.Build(&operations.IncrementOrDecrement{
		IsIncrement: n.Increment,
		IsPostfix:   n.Postfix,
		Target:      b.required(n.Operand, n.Syntax),
		Method:      n.Method,
		IsChecked:   n.Checked,
	}, b.common(&n.Header))
}

func (b *builder) lowerConditional(n *bound.Conditional) operations.Operation {
	cond := b.required(n.Condition, n.Syntax)
	whenTrue := b.required(n.WhenTrue, n.Syntax)
	whenFalse := b.required(n.WhenFalse, n.Syntax)
	return operations.Build(&operations.ConditionalOperator{
		Condition: cond,
		WhenTrue:  whenTrue,
		WhenFalse: whenFalse,
		IsRef:     n.IsRef,
	}, b.common(&n.Header))
}

func (b *builder) lowerNullCoalescing(n *bound.NullCoalescing) operations.Operation {
	value := b.required(n.Left, n.Syntax)
	whenNull := b.required(n.Right, n.Syntax)
	return operations.Build(&operations.Coalesce{Value: value, WhenNull: whenNull}, b.common(&n.Header))
}

func (b *builder) lowerIsOperator(n *bound.IsOperator) operations.Operation {
	return operations.Build(&operations.IsType{
		ValueOperand: b.required(n.Operand, n.Syntax),
		TypeOperand:  n.TargetType,
	}, b.common(&n.Header))
}
