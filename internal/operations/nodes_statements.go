package operations

import (
	"fmt"

	"github.com/orizon-lang/optree/internal/symbols"
)

// Block is a statement list with its scoped locals.
type Block struct {
	node
	Operations []Operation
	Locals     []*symbols.Symbol
}

func (o *Block) Slots() []Slot { return []Slot{many("Operations", o.Operations)} }

// VariableDeclarationGroup is a local declaration statement.
type VariableDeclarationGroup struct {
	node
	Declarations []*VariableDeclaration
}

func (o *VariableDeclarationGroup) Slots() []Slot {
	return []Slot{many("Declarations", o.Declarations)}
}

// VariableDeclaration declares one variable; Initializer is nil without one.
type VariableDeclaration struct {
	node
	Symbol      *symbols.Symbol
	Initializer *VariableInitializer
}

func (o *VariableDeclaration) Slots() []Slot { return []Slot{one("Initializer", o.Initializer)} }

// VariableInitializer wraps the value a declaration is initialized with.
type VariableInitializer struct {
	node
	Value Operation
}

func (o *VariableInitializer) Slots() []Slot { return []Slot{one("Value", o.Value)} }

// ExpressionStatement evaluates an operation for its effects.
type ExpressionStatement struct {
	node
	Operation Operation
}

func (o *ExpressionStatement) Slots() []Slot { return []Slot{one("Operation", o.Operation)} }

// If is a conditional statement; WhenFalse is nil without an else branch.
type If struct {
	node
	Condition Operation
	WhenTrue  Operation
	WhenFalse Operation
}

func (o *If) Slots() []Slot {
	return []Slot{one("Condition", o.Condition), one("WhenTrue", o.WhenTrue), one("WhenFalse", o.WhenFalse)}
}

// WhileLoop is a while or do-while loop. A bottom-tested loop evaluates its
// body before its condition, and its slots are ordered that way.
type WhileLoop struct {
	node
	Condition      Operation
	Body           Operation
	ConditionIsTop bool
	Locals         []*symbols.Symbol
}

func (o *WhileLoop) Slots() []Slot {
	if o.ConditionIsTop {
		return []Slot{one("Condition", o.Condition), one("Body", o.Body)}
	}
	return []Slot{one("Body", o.Body), one("Condition", o.Condition)}
}

// ForLoop is `for (Before; Condition; AtLoopBottom) Body`.
type ForLoop struct {
	node
	Before       []Operation
	Condition    Operation
	AtLoopBottom []Operation
	Body         Operation
	Locals       []*symbols.Symbol
}

func (o *ForLoop) Slots() []Slot {
	return []Slot{
		many("Before", o.Before),
		one("Condition", o.Condition),
		one("Body", o.Body),
		many("AtLoopBottom", o.AtLoopBottom),
	}
}

// ForEachLoop iterates Collection. LoopControlVariable is a declaring
// LocalReference, or a DeclarationExpression when deconstructing.
type ForEachLoop struct {
	node
	Collection          Operation
	LoopControlVariable Operation
	Body                Operation
	Locals              []*symbols.Symbol
}

func (o *ForEachLoop) Slots() []Slot {
	return []Slot{
		one("Collection", o.Collection),
		one("LoopControlVariable", o.LoopControlVariable),
		one("Body", o.Body),
	}
}

// Switch dispatches on Value.
type Switch struct {
	node
	Value  Operation
	Cases  []*SwitchCase
	Locals []*symbols.Symbol
}

func (o *Switch) Slots() []Slot { return []Slot{one("Value", o.Value), many("Cases", o.Cases)} }

// SwitchCase is one switch section: its clauses and the statements they
// share.
type SwitchCase struct {
	node
	Clauses []Operation
	Body    []Operation
	Locals  []*symbols.Symbol
}

func (o *SwitchCase) Slots() []Slot { return []Slot{many("Clauses", o.Clauses), many("Body", o.Body)} }

// SingleValueCaseClause is `case value:`.
type SingleValueCaseClause struct {
	node
	Value Operation
	Label *symbols.Symbol
}

func (o *SingleValueCaseClause) Slots() []Slot { return []Slot{one("Value", o.Value)} }

// PatternCaseClause is `case pattern when guard:`; Guard is nil without a
// when clause.
type PatternCaseClause struct {
	node
	Pattern Operation
	Guard   Operation
	Label   *symbols.Symbol
}

func (o *PatternCaseClause) Slots() []Slot {
	return []Slot{one("Pattern", o.Pattern), one("Guard", o.Guard)}
}

// DefaultCaseClause is `default:`.
type DefaultCaseClause struct {
	node
	Label *symbols.Symbol
}

func (o *DefaultCaseClause) Slots() []Slot { return nil }

// Labeled is `label: operation`.
type Labeled struct {
	node
	Label     *symbols.Symbol
	Operation Operation
}

func (o *Labeled) Slots() []Slot   { return []Slot{one("Operation", o.Operation)} }
func (o *Labeled) details() string { return ": " + o.Label.String() }

// BranchKind distinguishes the branch statements.
type BranchKind int

const (
	BranchBreak BranchKind = iota
	BranchContinue
	BranchGoTo
)

var branchKindNames = [...]string{BranchBreak: "Break", BranchContinue: "Continue", BranchGoTo: "GoTo"}

func (k BranchKind) String() string { return branchKindNames[k] }

// Branch is break, continue or goto. Target is nil for unlabeled branches.
type Branch struct {
	node
	BranchKind BranchKind
	Target     *symbols.Symbol
}

func (o *Branch) Slots() []Slot { return nil }

func (o *Branch) details() string {
	if o.Target == nil {
		return fmt.Sprintf(" (BranchKind.%s)", o.BranchKind)
	}
	return fmt.Sprintf(" (BranchKind.%s, Label: %s)", o.BranchKind, o.Target)
}

// Empty is the empty statement.
type Empty struct {
	node
}

func (o *Empty) Slots() []Slot { return nil }

// ReturnFlavor selects between return, yield return and yield break, which
// share one shape.
type ReturnFlavor int

const (
	ReturnPlain ReturnFlavor = iota
	ReturnYield
	ReturnYieldBreak
)

// Return is a return-like statement; ReturnedValue is nil for `return;` and
// `yield break;`.
type Return struct {
	node
	Flavor        ReturnFlavor
	ReturnedValue Operation
}

func (o *Return) Slots() []Slot { return []Slot{one("ReturnedValue", o.ReturnedValue)} }

// Lock is `lock (LockedValue) Body`.
type Lock struct {
	node
	LockedValue Operation
	Body        Operation
}

func (o *Lock) Slots() []Slot { return []Slot{one("LockedValue", o.LockedValue), one("Body", o.Body)} }

// Try has a fixed shape: body, ordered catch clauses, optional finally.
type Try struct {
	node
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

func (o *Try) Slots() []Slot {
	return []Slot{one("Body", o.Body), many("Catches", o.Catches), one("Finally", o.Finally)}
}

// CatchClause is one catch block. The declaration, when present, is
// evaluated before the filter, which is evaluated before the handler.
type CatchClause struct {
	node
	ExceptionDeclaration Operation
	ExceptionType        *symbols.Type
	Locals               []*symbols.Symbol
	Filter               Operation
	Handler              *Block
}

func (o *CatchClause) Slots() []Slot {
	return []Slot{
		one("ExceptionDeclaration", o.ExceptionDeclaration),
		one("Filter", o.Filter),
		one("Handler", o.Handler),
	}
}

func (o *CatchClause) details() string {
	return fmt.Sprintf(" (Exception type: %s)", o.ExceptionType)
}

// Using has two slots: the resource (a declaration group or an expression)
// and the body. Nested using statements nest.
type Using struct {
	node
	Resources Operation
	Body      Operation
	Locals    []*symbols.Symbol
}

func (o *Using) Slots() []Slot { return []Slot{one("Resources", o.Resources), one("Body", o.Body)} }

// LocalFunction is a local function declaration.
type LocalFunction struct {
	node
	Symbol *symbols.Symbol
	Body   *Block
}

func (o *LocalFunction) Slots() []Slot   { return []Slot{one("Body", o.Body)} }
func (o *LocalFunction) details() string { return ": " + o.Symbol.String() }

// Throw raises Exception; Exception is nil for a rethrow. In expression
// position the node has a type.
type Throw struct {
	node
	Exception Operation
}

func (o *Throw) Slots() []Slot { return []Slot{one("Exception", o.Exception)} }
