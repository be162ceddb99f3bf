// Package lowering builds operation trees from bound trees. Each construct
// family has its own file; all of them share one recursive dispatch and the
// conversion, argument and recovery policies defined here.
//
// Lowering never inspects semantics on its own: validity, types, constants
// and conversion classifications all come from the binder. The engine only
// reshapes, synthesizes implicit nodes and carries the binder's verdicts.
package lowering

import (
	"fmt"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// Lowerer turns bound trees into published operation trees. A Lowerer holds
// only options and may be used from several goroutines at once.
type Lowerer struct {
	verify bool
}

// Option configures a Lowerer.
type Option func(*Lowerer)

// WithVerification makes Lower check every tree it builds with
// operations.Verify and fail on violations.
func WithVerification(on bool) Option {
	return func(l *Lowerer) { l.verify = on }
}

// New creates a Lowerer.
func New(opts ...Option) *Lowerer {
	l := &Lowerer{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lower builds and publishes the operation tree for root. Erroneous input
// never fails: it yields invalid nodes. An error is returned only when the
// bound tree breaks the engine's contract, in which case nothing is
// returned.
func (l *Lowerer) Lower(root bound.Node) (op operations.Operation, err error) {
	if bound.IsNil(root) {
		return nil, errors.MalformedBoundTree("root", "no bound node")
	}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*errors.StandardError)
			if !ok {
				panic(r)
			}
			op, err = nil, se
		}
	}()

	b := &builder{}
	op = operations.Publish(b.lower(root))

	if l.verify {
		if violations := operations.Verify(op); len(violations) > 0 {
			se := errors.VerificationFailed(root.Info().Syntax.Label(), len(violations))
			se.Err = fmt.Errorf("%s", operations.Summary(violations))
			return nil, se
		}
	}
	return op, nil
}

// builder carries the state of a single Lower call.
type builder struct {
	// declaring is positive while lowering the target of a declaration
	// expression; locals referenced there are declarations.
	declaring int
	// initializing holds the types of the objects under initialization,
	// innermost last.
	initializing []*symbols.Type
	// container is the type whose member body is being lowered, when the
	// binder supplied it.
	container *symbols.Type
}

func (b *builder) common(h *bound.Header) operations.Common {
	return operations.Common{
		Type:     h.Type,
		Constant: h.Constant,
		Syntax:   h.Syntax,
		Implicit: h.CompilerGenerated,
		Invalid:  h.HasErrors,
	}
}

// implicit is the common part of a node synthesized for the construct at
// syntax.
func implicit(syntax position.Ref) operations.Common {
	return operations.Common{Syntax: syntax, Implicit: true}
}

// lower dispatches on the bound construct. It returns nil for an absent
// node.
func (b *builder) lower(n bound.Node) operations.Operation {
	if bound.IsNil(n) {
		return nil
	}

	switch n := n.(type) {
	// References.
	case *bound.Literal:
		return b.lowerLiteral(n)
	case *bound.Local:
		return b.lowerLocal(n)
	case *bound.Parameter:
		return b.lowerParameter(n)
	case *bound.This:
		return b.lowerThis(n)
	case *bound.ImplicitReceiver:
		return b.lowerImplicitReceiver(n)
	case *bound.TypeExpression:
		return b.lowerTypeExpression(n)
	case *bound.FieldAccess:
		return b.lowerFieldAccess(n)
	case *bound.PropertyAccess:
		return b.lowerPropertyAccess(n)
	case *bound.IndexerAccess:
		return b.lowerIndexerAccess(n)
	case *bound.EventAccess:
		return b.lowerEventAccess(n)
	case *bound.MethodGroup:
		return b.lowerMethodGroup(n)
	case *bound.ArrayAccess:
		return b.lowerArrayAccess(n)
	case *bound.Call:
		return b.lowerCall(n)

	// Creation and initializers.
	case *bound.ObjectCreation:
		return b.lowerObjectCreation(n)
	case *bound.NewT:
		return b.lowerNewT(n)
	case *bound.DynamicObjectCreation:
		return b.lowerDynamicObjectCreation(n)
	case *bound.AnonymousObjectCreation:
		return b.lowerAnonymousObjectCreation(n)
	case *bound.DelegateCreation:
		return b.lowerDelegateCreation(n)
	case *bound.ArrayCreation:
		return b.lowerArrayCreation(n)
	case *bound.ArrayInitialization:
		return b.lowerArrayInitialization(n)
	case *bound.ObjectInitializer:
		return b.lowerObjectInitializer(n)
	case *bound.CollectionInitializer:
		return b.lowerCollectionInitializer(n)
	case *bound.ObjectInitializerMember:
		return b.lowerInitializerMember(n)
	case *bound.CollectionElementInitializer:
		return b.lowerCollectionElement(n)
	case *bound.DynamicCollectionElementInitializer:
		return b.lowerDynamicCollectionElement(n)

	// Operators.
	case *bound.Unary:
		return b.lowerUnary(n)
	case *bound.Binary:
		return b.lowerBinary(n)
	case *bound.CompoundAssignment:
		return b.lowerCompoundAssignment(n)
	case *bound.Assignment:
		return b.lowerAssignment(n)
	case *bound.IncrementDecrement:
		return b.lowerIncrementDecrement(n)
	case *bound.Conditional:
		return b.lowerConditional(n)
	case *bound.NullCoalescing:
		return b.lowerNullCoalescing(n)
	case *bound.Conversion:
		return b.lowerConversion(n)
	case *bound.IsOperator:
		return b.lowerIsOperator(n)

	// Patterns.
	case *bound.IsPattern:
		return b.lowerIsPattern(n)
	case *bound.ConstantPattern:
		return b.lowerConstantPattern(n)
	case *bound.DeclarationPattern:
		return b.lowerDeclarationPattern(n)

	// Functions.
	case *bound.Lambda:
		return b.lowerLambda(n)
	case *bound.UnboundLambda:
		return b.lowerUnboundLambda(n)
	case *bound.LocalFunction:
		return b.lowerLocalFunction(n)

	// Tuples and deconstruction.
	case *bound.TupleLiteral:
		return b.lowerTupleLiteral(n)
	case *bound.ConvertedTupleLiteral:
		return b.lowerConvertedTupleLiteral(n)
	case *bound.DeconstructionAssignment:
		return b.lowerDeconstructionAssignment(n)
	case *bound.DeclarationExpression:
		return b.lowerDeclarationExpression(n)

	// Dynamic.
	case *bound.DynamicMemberAccess:
		return b.lowerDynamicMemberAccess(n)
	case *bound.DynamicInvocation:
		return b.lowerDynamicInvocation(n)
	case *bound.DynamicIndexerAccess:
		return b.lowerDynamicIndexerAccess(n)

	// Other expressions.
	case *bound.InterpolatedString:
		return b.lowerInterpolatedString(n)
	case *bound.StringInsert:
		return b.lowerStringInsert(n)
	case *bound.Await:
		return b.lowerAwait(n)
	case *bound.DefaultExpression:
		return b.lowerDefault(n)
	case *bound.TypeOf:
		return b.lowerTypeOf(n)
	case *bound.SizeOf:
		return b.lowerSizeOf(n)
	case *bound.NameOf:
		return b.lowerNameOf(n)
	case *bound.AddressOf:
		return b.lowerAddressOf(n)
	case *bound.ConditionalAccess:
		return b.lowerConditionalAccess(n)
	case *bound.ConditionalReceiver:
		return b.lowerConditionalReceiver(n)
	case *bound.ThrowExpression:
		return b.lowerThrowExpression(n)
	case *bound.EventAssignment:
		return b.lowerEventAssignment(n)
	case *bound.Query:
		return b.lowerQuery(n)
	case *bound.QueryClause:
		return b.lowerQueryClause(n)
	case *bound.RangeVariable:
		return b.lowerRangeVariable(n)

	// Statements.
	case *bound.MemberBody:
		return b.lowerMemberBody(n)
	case *bound.Block:
		return b.lowerBlock(n)
	case *bound.ExpressionStatement:
		return b.lowerExpressionStatement(n)
	case *bound.LocalDeclaration:
		return b.lowerLocalDeclaration(n)
	case *bound.MultipleLocalDeclarations:
		return b.lowerMultipleLocalDeclarations(n)
	case *bound.Return:
		return b.lowerReturn(n)
	case *bound.YieldReturn:
		return b.lowerYieldReturn(n)
	case *bound.YieldBreak:
		return b.lowerYieldBreak(n)
	case *bound.If:
		return b.lowerIf(n)
	case *bound.While:
		return b.lowerWhile(n)
	case *bound.DoWhile:
		return b.lowerDoWhile(n)
	case *bound.For:
		return b.lowerFor(n)
	case *bound.ForEach:
		return b.lowerForEach(n)
	case *bound.Break:
		return b.lowerBranch(&n.Header, operations.BranchBreak, n.Label)
	case *bound.Continue:
		return b.lowerBranch(&n.Header, operations.BranchContinue, n.Label)
	case *bound.Goto:
		return b.lowerBranch(&n.Header, operations.BranchGoTo, n.Label)
	case *bound.Labeled:
		return b.lowerLabeled(n)
	case *bound.Empty:
		return b.lowerEmpty(n)
	case *bound.Switch:
		return b.lowerSwitch(n)
	case *bound.Throw:
		return b.lowerThrow(n)
	case *bound.Try:
		return b.lowerTry(n)
	case *bound.Using:
		return b.lowerUsing(n)
	case *bound.Lock:
		return b.lowerLock(n)

	// Recovery.
	case *bound.BadExpression:
		return b.lowerBadExpression(n)
	case *bound.BadStatement:
		return b.lowerBadStatement(n)
	case *bound.Unmodeled:
		return b.lowerUnmodeled(n)
	}

	panic(errors.UnhandledConstruct(fmt.Sprintf("%T", n)))
}

// lowerAll lowers a list slot. Absent entries become implicit Invalid
// leaves so that list slots never hold gaps.
func (b *builder) lowerAll(nodes []bound.Node, at position.Ref) []operations.Operation {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]operations.Operation, len(nodes))
	for i, n := range nodes {
		out[i] = b.required(n, at)
	}
	return out
}
