package bound

import (
	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operators"
	"github.com/orizon-lang/optree/internal/symbols"
)

// Literal is a literal value; the value is the header's constant.
type Literal struct {
	Header
}

// Local is a use of a local variable.
type Local struct {
	Header
	Symbol *symbols.Symbol
}

// Parameter is a use of a parameter.
type Parameter struct {
	Header
	Symbol *symbols.Symbol
}

// This is the instance of the containing type, written or implied. The binder
// marks an implied receiver CompilerGenerated.
type This struct {
	Header
}

// ImplicitReceiver is the object being initialized inside an object or
// collection initializer.
type ImplicitReceiver struct {
	Header
}

// TypeExpression is a type name in receiver position (a static member access).
type TypeExpression struct {
	Header
}

// FieldAccess reads or writes a field.
type FieldAccess struct {
	Header
	Receiver Node
	Field    *symbols.Symbol
}

// PropertyAccess reads or writes a non-indexed property.
type PropertyAccess struct {
	Header
	Receiver Node
	Property *symbols.Symbol
}

// IndexerAccess is an indexed property access.
type IndexerAccess struct {
	Header
	Receiver Node
	Indexer  *symbols.Symbol
	ArgumentList
}

// EventAccess is a use of an event.
type EventAccess struct {
	Header
	Receiver Node
	Event    *symbols.Symbol
}

// MethodGroup is a method name not (yet) invoked. Methods holds the
// candidates; Resolved is set when the binder picked one, for example for a
// delegate conversion.
type MethodGroup struct {
	Header
	Receiver Node
	Name     string
	Methods  []*symbols.Symbol
	Resolved *symbols.Symbol
}

// ArrayAccess is an array element access. Named index arguments are a binder
// error; the names are kept so that lowering can preserve the operands.
type ArrayAccess struct {
	Header
	Array         Node
	Indices       []Node
	ArgumentNames []string
}

// ArgumentList is the argument list shared by calls, creations and indexers.
// ArgsToParams maps argument i to a parameter index; nil means positional.
// Expanded means the trailing arguments fill a params array.
type ArgumentList struct {
	Arguments        []Node
	ArgumentNames    []string
	ArgumentRefKinds []symbols.RefKind
	ArgsToParams     []int
	Expanded         bool
}

// Call is a resolved method invocation. Method is nil when overload
// resolution failed; Candidates then lists what was considered.
type Call struct {
	Header
	Receiver   Node
	Method     *symbols.Symbol
	Candidates []*symbols.Symbol
	ArgumentList
}

// ObjectCreation is `new T(args) { initializer }`.
type ObjectCreation struct {
	Header
	Constructor *symbols.Symbol
	ArgumentList
	Initializer Node
}

// NewT is `new T()` where T is a type parameter.
type NewT struct {
	Header
	Initializer Node
}

// DynamicObjectCreation is an object creation with dynamic arguments.
type DynamicObjectCreation struct {
	Header
	ArgumentList
	Initializer Node
}

// AnonymousObjectCreation is `new { A = 1, B }`. Properties[i] is initialized
// by Arguments[i].
type AnonymousObjectCreation struct {
	Header
	Arguments  []Node
	Properties []*symbols.Symbol
}

// DelegateCreation is an explicit `new D(target)`.
type DelegateCreation struct {
	Header
	Argument Node
	Method   *symbols.Symbol
}

// ArrayCreation is `new T[bounds] { initializer }`. Bounds is empty when the
// size is implied by the initializer.
type ArrayCreation struct {
	Header
	Bounds      []Node
	Initializer *ArrayInitialization
}

// ArrayInitialization is `{ a, b }` in an array creation; nested for
// multi-dimensional arrays.
type ArrayInitialization struct {
	Header
	Initializers []Node
}

// ObjectInitializer is `{ X = 1, Y = { ... } }`; each element is an
// Assignment whose left side is an ObjectInitializerMember.
type ObjectInitializer struct {
	Header
	Initializers []Node
}

// CollectionInitializer is `{ 1, { 2, 3 } }`; each element is a
// CollectionElementInitializer or DynamicCollectionElementInitializer.
type CollectionInitializer struct {
	Header
	Initializers []Node
}

// ObjectInitializerMember is the member named on the left of an object
// initializer assignment. Arguments are set for indexed members.
type ObjectInitializerMember struct {
	Header
	Member *symbols.Symbol
	ArgumentList
}

// CollectionElementInitializer is one element of a collection initializer,
// resolved to an Add method.
type CollectionElementInitializer struct {
	Header
	AddMethod *symbols.Symbol
	ArgumentList
}

// DynamicCollectionElementInitializer is a collection element whose Add
// call is bound at runtime.
type DynamicCollectionElementInitializer struct {
	Header
	Arguments []Node
}

// Unary is a unary operator application.
type Unary struct {
	Header
	Operator operators.UnaryKind
	Operand  Node
	Method   *symbols.Symbol
	Checked  bool
	Lifted   bool
}

// Binary is a binary operator application.
type Binary struct {
	Header
	Operator operators.BinaryKind
	Left     Node
	Right    Node
	Method   *symbols.Symbol
	Checked  bool
	Lifted   bool
}

// CompoundAssignment is `a op= b`.
type CompoundAssignment struct {
	Header
	Operator operators.BinaryKind
	Left     Node
	Right    Node
	Method   *symbols.Symbol
	Checked  bool
}

// Assignment is `a = b`.
type Assignment struct {
	Header
	Left  Node
	Right Node
	IsRef bool
}

// IncrementDecrement is `++x`, `x++`, `--x` or `x--`.
type IncrementDecrement struct {
	Header
	Operand   Node
	Increment bool
	Postfix   bool
	Method    *symbols.Symbol
	Checked   bool
}

// Conditional is `c ? a : b`.
type Conditional struct {
	Header
	Condition Node
	WhenTrue  Node
	WhenFalse Node
	IsRef     bool
}

// NullCoalescing is `a ?? b`.
type NullCoalescing struct {
	Header
	Left  Node
	Right Node
}

// Conversion converts Operand to the header's type.
type Conversion struct {
	Header
	Operand Node
	Kind    conversion.Kind
	// Method is the user-defined operator, if any.
	Method             *symbols.Symbol
	ExplicitCastInCode bool
	Checked            bool
	IsTryCast          bool
}

// IsOperator is `e is T`.
type IsOperator struct {
	Header
	Operand    Node
	TargetType *symbols.Type
}

// IsPattern is `e is pattern`.
type IsPattern struct {
	Header
	Expression Node
	Pattern    Node
}

// ConstantPattern matches a constant value.
type ConstantPattern struct {
	Header
	Value Node
}

// DeclarationPattern matches a type and binds a variable. DeclaredType is
// nil for `var x`.
type DeclarationPattern struct {
	Header
	Variable     *symbols.Symbol
	DeclaredType *symbols.Type
	IsVar        bool
}

// Lambda is an anonymous function bound to a delegate signature.
type Lambda struct {
	Header
	Symbol *symbols.Symbol
	Body   *Block
}

// UnboundLambda is a lambda the binder could not target-type.
type UnboundLambda struct {
	Header
}

// TupleLiteral is `(a, b)` in its natural type.
type TupleLiteral struct {
	Header
	Arguments     []Node
	ArgumentNames []string
}

// ConvertedTupleLiteral is a tuple literal whose elements were individually
// converted to a target tuple type. NaturalType is the literal's own type,
// nil when it has none.
type ConvertedTupleLiteral struct {
	Header
	Arguments   []Node
	NaturalType *symbols.Type
}

// DeconstructionAssignment is `(a, b) = e` and `var (a, b) = e`.
type DeconstructionAssignment struct {
	Header
	Left  Node
	Right Node
}

// DeclarationExpression declares the variables of Expression in place, as in
// `out var x`, `(var a, var b)` or `var (a, b)`.
type DeclarationExpression struct {
	Header
	Expression Node
}

// InterpolatedString is `$"..."`; parts are string Literals and StringInserts.
type InterpolatedString struct {
	Header
	Parts []Node
}

// StringInsert is one `{value,alignment:format}` hole.
type StringInsert struct {
	Header
	Value     Node
	Alignment Node
	Format    Node
}

// DynamicMemberAccess is `d.Name` on a dynamic receiver.
type DynamicMemberAccess struct {
	Header
	Receiver      Node
	Name          string
	TypeArguments []*symbols.Type
}

// DynamicInvocation is a call bound at runtime.
type DynamicInvocation struct {
	Header
	Expression Node
	ArgumentList
}

// DynamicIndexerAccess is an element access bound at runtime.
type DynamicIndexerAccess struct {
	Header
	Receiver Node
	ArgumentList
}

// Await is `await e`.
type Await struct {
	Header
	Expression Node
}

// DefaultExpression is `default(T)`; its constant, if any, is in the header.
type DefaultExpression struct {
	Header
}

// TypeOf is `typeof(T)`.
type TypeOf struct {
	Header
	SourceType *symbols.Type
}

// SizeOf is `sizeof(T)`.
type SizeOf struct {
	Header
	SourceType *symbols.Type
}

// NameOf is `nameof(x)`; the resulting string is the header's constant.
type NameOf struct {
	Header
	Argument Node
}

// AddressOf is `&e`.
type AddressOf struct {
	Header
	Operand Node
}

// ConditionalAccess is `r?.access`; Access refers to r through a
// ConditionalReceiver.
type ConditionalAccess struct {
	Header
	Receiver Node
	Access   Node
}

// ConditionalReceiver stands for the already-evaluated receiver of the
// enclosing ConditionalAccess.
type ConditionalReceiver struct {
	Header
}

// ThrowExpression is `throw e` in expression position.
type ThrowExpression struct {
	Header
	Expression Node
}

// EventAssignment is `e += handler` or `e -= handler`.
type EventAssignment struct {
	Header
	Event      *symbols.Symbol
	Receiver   Node
	Argument   Node
	IsAddition bool
}

// Query is the outermost node of a query expression; Value is the call chain
// the query translates to.
type Query struct {
	Header
	Value Node
}

// QueryClause is an inner query clause; it is transparent.
type QueryClause struct {
	Header
	Value Node
}

// RangeVariable is a use of a query range variable; Value is what it reads.
type RangeVariable struct {
	Header
	Symbol *symbols.Symbol
	Value  Node
}

// BadExpression is an expression the binder could not resolve. Children holds
// whatever sub-expressions were bound.
type BadExpression struct {
	Header
	Candidates []*symbols.Symbol
	Children   []Node
}

// Unmodeled is a construct the operation tree has no dedicated kind for.
type Unmodeled struct {
	Header
	Construct string
	Children  []Node
}
