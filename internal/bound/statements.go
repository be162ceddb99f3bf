package bound

import (
	"github.com/orizon-lang/optree/internal/symbols"
)

// Block is a statement block; Locals are the variables scoped to it.
type Block struct {
	Header
	Locals     []*symbols.Symbol
	Statements []Node
}

// ExpressionStatement evaluates Expression for its effects.
type ExpressionStatement struct {
	Header
	Expression Node
}

// LocalDeclaration declares one local with an optional initializer.
type LocalDeclaration struct {
	Header
	Local       *symbols.Symbol
	Initializer Node
}

// MultipleLocalDeclarations is `T a = 1, b = 2;`.
type MultipleLocalDeclarations struct {
	Header
	Declarations []*LocalDeclaration
}

// Return is `return e;` or `return;`.
type Return struct {
	Header
	Expression Node
}

// YieldReturn is `yield return e;`.
type YieldReturn struct {
	Header
	Expression Node
}

// YieldBreak is `yield break;`.
type YieldBreak struct {
	Header
}

// If is `if (c) a else b`.
type If struct {
	Header
	Condition   Node
	Consequence Node
	Alternative Node
}

// While is `while (c) body`.
type While struct {
	Header
	Locals    []*symbols.Symbol
	Condition Node
	Body      Node
}

// DoWhile is `do body while (c);`.
type DoWhile struct {
	Header
	Locals    []*symbols.Symbol
	Condition Node
	Body      Node
}

// For is `for (init; cond; incr) body`.
type For struct {
	Header
	Locals       []*symbols.Symbol
	Initializers []Node
	Condition    Node
	Increments   []Node
	Body         Node
}

// ForEach is `foreach (var x in e) body` or, with Deconstruction set,
// `foreach (var (a, b) in e) body`.
type ForEach struct {
	Header
	Locals            []*symbols.Symbol
	IterationVariable *symbols.Symbol
	Deconstruction    Node
	Expression        Node
	Body              Node
}

// Break is `break;`.
type Break struct {
	Header
	Label *symbols.Symbol
}

// Continue is `continue;`.
type Continue struct {
	Header
	Label *symbols.Symbol
}

// Goto is `goto label;`.
type Goto struct {
	Header
	Label *symbols.Symbol
}

// Labeled is `label: statement`.
type Labeled struct {
	Header
	Label     *symbols.Symbol
	Statement Node
}

// Empty is `;`.
type Empty struct {
	Header
}

// Switch is a switch statement with constant or pattern labels.
type Switch struct {
	Header
	Expression Node
	Sections   []*SwitchSection
	Locals     []*symbols.Symbol
}

// SwitchSection is a group of labels sharing a statement list.
type SwitchSection struct {
	Header
	Locals     []*symbols.Symbol
	Labels     []*SwitchLabel
	Statements []Node
}

// SwitchLabel is one `case ...:` or `default:`. A constant label sets Value;
// a pattern label sets Pattern and optionally Guard.
type SwitchLabel struct {
	Header
	IsDefault bool
	Value     Node
	Pattern   Node
	Guard     Node
	// Label is the symbol the case can be jumped to with `goto case`.
	Label *symbols.Symbol
}

// Throw is `throw e;` or the rethrowing `throw;`.
type Throw struct {
	Header
	Expression Node
}

// Try is `try { } catch ... finally { }`.
type Try struct {
	Header
	TryBlock *Block
	Catches  []*Catch
	Finally  *Block
}

// Catch is one catch block. ExceptionSource is the declared exception
// variable (a Local), nil when none is declared.
type Catch struct {
	Header
	Locals          []*symbols.Symbol
	ExceptionSource Node
	ExceptionType   *symbols.Type
	Filter          Node
	Body            *Block
}

// Using is `using (resource) body`; exactly one of Declarations and
// Expression is set.
type Using struct {
	Header
	Locals       []*symbols.Symbol
	Declarations *MultipleLocalDeclarations
	Expression   Node
	Body         Node
}

// Lock is `lock (e) body`.
type Lock struct {
	Header
	Argument Node
	Body     Node
}

// MemberBody is the body of a method, accessor or constructor bound as one
// region. Container is the type declaring the member; it is the type of
// `this` inside Body. MemberBody lowers to the lowering of Body.
type MemberBody struct {
	Header
	Container *symbols.Type
	Body      Node
}

// LocalFunction is a local function declaration statement.
type LocalFunction struct {
	Header
	Symbol *symbols.Symbol
	Body   *Block
}

// BadStatement is a statement the binder could not resolve.
type BadStatement struct {
	Header
	Children []Node
}
