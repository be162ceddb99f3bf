package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// statement is the common part of a statement node: statements have no
// type and no value.
func (b *builder) statement(h *bound.Header) operations.Common {
	c := b.common(h)
	c.Type = nil
	c.Constant = nil
	return c
}

func (b *builder) lowerBlock(n *bound.Block) operations.Operation {
	return b.block(n)
}

// block lowers a block in a *Block-typed slot; nil stays nil.
func (b *builder) block(n *bound.Block) *operations.Block {
	if n == nil {
		return nil
	}
	return operations.Build(&operations.Block{
		Operations: b.lowerAll(n.Statements, n.Syntax),
		Locals:     n.Locals,
	}, b.statement(&n.Header))
}

// requiredBlock is block for slots that must hold a body. A missing body is
// an empty invalid block.
func (b *builder) requiredBlock(n *bound.Block, at position.Ref) *operations.Block {
	if blk := b.block(n); blk != nil {
		return blk
	}
	c := implicit(at)
	c.Invalid = true
	return operations.Build(&operations.Block{}, c)
}

func (b *builder) lowerExpressionStatement(n *bound.ExpressionStatement) operations.Operation {
	return operations.Build(&operations.ExpressionStatement{
		Operation: b.required(n.Expression, n.Syntax),
	}, b.statement(&n.Header))
}

func (b *builder) lowerLocalDeclaration(n *bound.LocalDeclaration) operations.Operation {
	return operations.Build(&operations.VariableDeclarationGroup{
		Declarations: []*operations.VariableDeclaration{b.declaration(n)},
	}, operations.Common{Syntax: n.Syntax, Implicit: n.CompilerGenerated})
}

func (b *builder) lowerMultipleLocalDeclarations(n *bound.MultipleLocalDeclarations) operations.Operation {
	return b.declarationGroup(n)
}

func (b *builder) declarationGroup(n *bound.MultipleLocalDeclarations) *operations.VariableDeclarationGroup {
	decls := make([]*operations.VariableDeclaration, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		if d == nil {
			panic(malformed(n, "declaration list holds an absent declaration"))
		}
		decls = append(decls, b.declaration(d))
	}
	return operations.Build(&operations.VariableDeclarationGroup{Declarations: decls}, b.statement(&n.Header))
}

func (b *builder) declaration(n *bound.LocalDeclaration) *operations.VariableDeclaration {
	var init *operations.VariableInitializer
	if !bound.IsNil(n.Initializer) {
		value := b.lower(n.Initializer)
		init = operations.Build(&operations.VariableInitializer{Value: value},
			operations.Common{Syntax: value.Syntax()})
	}
	return operations.Build(&operations.VariableDeclaration{
		Symbol:      n.Local,
		Initializer: init,
	}, b.statement(&n.Header))
}

func (b *builder) lowerReturn(n *bound.Return) operations.Operation {
	return operations.Build(&operations.Return{
		Flavor:        operations.ReturnPlain,
		ReturnedValue: b.lower(n.Expression),
	}, b.statement(&n.Header))
}

func (b *builder) lowerYieldReturn(n *bound.YieldReturn) operations.Operation {
	return operations.Build(&operations.Return{
		Flavor:        operations.ReturnYield,
		ReturnedValue: b.required(n.Expression, n.Syntax),
	}, b.statement(&n.Header))
}

func (b *builder) lowerYieldBreak(n *bound.YieldBreak) operations.Operation {
	return operations.Build(&operations.Return{Flavor: operations.ReturnYieldBreak}, b.statement(&n.Header))
}

func (b *builder) lowerIf(n *bound.If) operations.Operation {
	cond := b.required(n.Condition, n.Syntax)
	whenTrue := b.required(n.Consequence, n.Syntax)
	return operations.Build(&operations.If{
		Condition: cond,
		WhenTrue:  whenTrue,
		WhenFalse: b.lower(n.Alternative),
	}, b.statement(&n.Header))
}

func (b *builder) lowerWhile(n *bound.While) operations.Operation {
	cond := b.required(n.Condition, n.Syntax)
	return operations.Build(&operations.WhileLoop{
		Condition:      cond,
		Body:           b.required(n.Body, n.Syntax),
		ConditionIsTop: true,
		Locals:         n.Locals,
	}, b.statement(&n.Header))
}

func (b *builder) lowerDoWhile(n *bound.DoWhile) operations.Operation {
	body := b.required(n.Body, n.Syntax)
	return operations.Build(&operations.WhileLoop{
		Condition: b.required(n.Condition, n.Syntax),
		Body:      body,
		Locals:    n.Locals,
	}, b.statement(&n.Header))
}

func (b *builder) lowerFor(n *bound.For) operations.Operation {
	before := b.lowerAll(n.Initializers, n.Syntax)
	cond := b.lower(n.Condition)
	body := b.required(n.Body, n.Syntax)
	return operations.Build(&operations.ForLoop{
		Before:       before,
		Condition:    cond,
		AtLoopBottom: b.lowerAll(n.Increments, n.Syntax),
		Body:         body,
		Locals:       n.Locals,
	}, b.statement(&n.Header))
}

// lowerForEach declares the iteration variable through a declaring local
// reference, or through the deconstruction's declaration expression.
func (b *builder) lowerForEach(n *bound.ForEach) operations.Operation {
	collection := b.required(n.Expression, n.Syntax)

	var control operations.Operation
	switch {
	case !bound.IsNil(n.Deconstruction):
		control = b.lower(n.Deconstruction)
	case n.IterationVariable != nil:
		control = operations.Build(&operations.LocalReference{
			Local:         n.IterationVariable,
			IsDeclaration: true,
		}, operations.Common{Type: n.IterationVariable.Type, Syntax: n.Syntax})
	default:
		control = missing(n.Syntax)
	}

	return operations.Build(&operations.ForEachLoop{
		Collection:          collection,
		LoopControlVariable: control,
		Body:                b.required(n.Body, n.Syntax),
		Locals:              n.Locals,
	}, b.statement(&n.Header))
}

func (b *builder) lowerBranch(h *bound.Header, kind operations.BranchKind, label *symbols.Symbol) operations.Operation {
	return operations.Build(&operations.Branch{BranchKind: kind, Target: label}, b.statement(h))
}

func (b *builder) lowerLabeled(n *bound.Labeled) operations.Operation {
	return operations.Build(&operations.Labeled{
		Label:     n.Label,
		Operation: b.lower(n.Statement),
	}, b.statement(&n.Header))
}

func (b *builder) lowerEmpty(n *bound.Empty) operations.Operation {
	return operations.Build(&operations.Empty{}, b.statement(&n.Header))
}

func (b *builder) lowerLock(n *bound.Lock) operations.Operation {
	value := b.required(n.Argument, n.Syntax)
	return operations.Build(&operations.Lock{
		LockedValue: value,
		Body:        b.required(n.Body, n.Syntax),
	}, b.statement(&n.Header))
}
