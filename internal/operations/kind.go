package operations

import "fmt"

// Kind tags every operation. The set is closed: each kind maps to exactly one
// node shape in this package.
type Kind int

const (
	// KindNone is an unmodeled construct passed through opaquely.
	KindNone Kind = iota
	// KindInvalid is the canonical fallback wrapper for constructs the
	// binder could not resolve.
	KindInvalid

	// Statements.
	KindBlock
	KindVariableDeclarationGroup
	KindVariableDeclaration
	KindVariableInitializer
	KindExpressionStatement
	KindIf
	KindWhileLoop
	KindForLoop
	KindForEachLoop
	KindSwitch
	KindSwitchCase
	KindSingleValueCaseClause
	KindPatternCaseClause
	KindDefaultCaseClause
	KindLabeled
	KindBranch
	KindEmpty
	KindReturn
	KindYieldReturn
	KindYieldBreak
	KindLock
	KindTry
	KindCatchClause
	KindUsing
	KindLocalFunction

	// Expressions.
	KindLiteral
	KindConversion
	KindInvocation
	KindArgument
	KindLocalReference
	KindParameterReference
	KindFieldReference
	KindPropertyReference
	KindEventReference
	KindMethodReference
	KindArrayElementReference
	KindInstanceReference
	KindConditionalAccessInstance
	KindUnaryOperator
	KindBinaryOperator
	KindConditionalOperator
	KindCoalesce
	KindSimpleAssignment
	KindCompoundAssignment
	KindIncrement
	KindDecrement
	KindEventAssignment
	KindObjectCreation
	KindTypeParameterObjectCreation
	KindAnonymousObjectCreation
	KindArrayCreation
	KindArrayInitializer
	KindDelegateCreation
	KindDynamicObjectCreation
	KindDynamicMemberReference
	KindDynamicInvocation
	KindDynamicIndexerAccess
	KindObjectOrCollectionInitializer
	KindMemberInitializer
	KindCollectionElementInitializer
	KindIsType
	KindIsPattern
	KindConstantPattern
	KindDeclarationPattern
	KindAwait
	KindNameOf
	KindTypeOf
	KindSizeOf
	KindDefaultValue
	KindAddressOf
	KindConditionalAccess
	KindInterpolatedString
	KindInterpolatedStringText
	KindInterpolation
	KindTuple
	KindDeconstructionAssignment
	KindDeclarationExpression
	KindAnonymousFunction
	KindThrow
	KindTranslatedQuery

	kindCount
)

var kindNames = [kindCount]string{
	KindNone:                          "None",
	KindInvalid:                       "Invalid",
	KindBlock:                         "Block",
	KindVariableDeclarationGroup:      "VariableDeclarationGroup",
	KindVariableDeclaration:           "VariableDeclaration",
	KindVariableInitializer:           "VariableInitializer",
	KindExpressionStatement:           "ExpressionStatement",
	KindIf:                            "If",
	KindWhileLoop:                     "WhileLoop",
	KindForLoop:                       "ForLoop",
	KindForEachLoop:                   "ForEachLoop",
	KindSwitch:                        "Switch",
	KindSwitchCase:                    "SwitchCase",
	KindSingleValueCaseClause:         "SingleValueCaseClause",
	KindPatternCaseClause:             "PatternCaseClause",
	KindDefaultCaseClause:             "DefaultCaseClause",
	KindLabeled:                       "Labeled",
	KindBranch:                        "Branch",
	KindEmpty:                         "Empty",
	KindReturn:                        "Return",
	KindYieldReturn:                   "YieldReturn",
	KindYieldBreak:                    "YieldBreak",
	KindLock:                          "Lock",
	KindTry:                           "Try",
	KindCatchClause:                   "CatchClause",
	KindUsing:                         "Using",
	KindLocalFunction:                 "LocalFunction",
	KindLiteral:                       "Literal",
	KindConversion:                    "Conversion",
	KindInvocation:                    "Invocation",
	KindArgument:                      "Argument",
	KindLocalReference:                "LocalReference",
	KindParameterReference:            "ParameterReference",
	KindFieldReference:                "FieldReference",
	KindPropertyReference:             "PropertyReference",
	KindEventReference:                "EventReference",
	KindMethodReference:               "MethodReference",
	KindArrayElementReference:         "ArrayElementReference",
	KindInstanceReference:             "InstanceReference",
	KindConditionalAccessInstance:     "ConditionalAccessInstance",
	KindUnaryOperator:                 "UnaryOperator",
	KindBinaryOperator:                "BinaryOperator",
	KindConditionalOperator:           "ConditionalOperator",
	KindCoalesce:                      "Coalesce",
	KindSimpleAssignment:              "SimpleAssignment",
	KindCompoundAssignment:            "CompoundAssignment",
	KindIncrement:                     "Increment",
	KindDecrement:                     "Decrement",
	KindEventAssignment:               "EventAssignment",
	KindObjectCreation:                "ObjectCreation",
	KindTypeParameterObjectCreation:   "TypeParameterObjectCreation",
	KindAnonymousObjectCreation:       "AnonymousObjectCreation",
	KindArrayCreation:                 "ArrayCreation",
	KindArrayInitializer:              "ArrayInitializer",
	KindDelegateCreation:              "DelegateCreation",
	KindDynamicObjectCreation:         "DynamicObjectCreation",
	KindDynamicMemberReference:        "DynamicMemberReference",
	KindDynamicInvocation:             "DynamicInvocation",
	KindDynamicIndexerAccess:          "DynamicIndexerAccess",
	KindObjectOrCollectionInitializer: "ObjectOrCollectionInitializer",
	KindMemberInitializer:             "MemberInitializer",
	KindCollectionElementInitializer:  "CollectionElementInitializer",
	KindIsType:                        "IsType",
	KindIsPattern:                     "IsPattern",
	KindConstantPattern:               "ConstantPattern",
	KindDeclarationPattern:            "DeclarationPattern",
	KindAwait:                         "Await",
	KindNameOf:                        "NameOf",
	KindTypeOf:                        "TypeOf",
	KindSizeOf:                        "SizeOf",
	KindDefaultValue:                  "DefaultValue",
	KindAddressOf:                     "AddressOf",
	KindConditionalAccess:             "ConditionalAccess",
	KindInterpolatedString:            "InterpolatedString",
	KindInterpolatedStringText:        "InterpolatedStringText",
	KindInterpolation:                 "Interpolation",
	KindTuple:                         "Tuple",
	KindDeconstructionAssignment:      "DeconstructionAssignment",
	KindDeclarationExpression:         "DeclarationExpression",
	KindAnonymousFunction:             "AnonymousFunction",
	KindThrow:                         "Throw",
	KindTranslatedQuery:               "TranslatedQuery",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind resolves a kind by its dump name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindNone, false
}

// kindOf maps a node shape to its kind. Shapes shared by several kinds
// consult their discriminating field.
func kindOf(op Operation) Kind {
	switch o := op.(type) {
	case *Invalid:
		return KindInvalid
	case *Unmodeled:
		return KindNone
	case *Block:
		return KindBlock
	case *VariableDeclarationGroup:
		return KindVariableDeclarationGroup
	case *VariableDeclaration:
		return KindVariableDeclaration
	case *VariableInitializer:
		return KindVariableInitializer
	case *ExpressionStatement:
		return KindExpressionStatement
	case *If:
		return KindIf
	case *WhileLoop:
		return KindWhileLoop
	case *ForLoop:
		return KindForLoop
	case *ForEachLoop:
		return KindForEachLoop
	case *Switch:
		return KindSwitch
	case *SwitchCase:
		return KindSwitchCase
	case *SingleValueCaseClause:
		return KindSingleValueCaseClause
	case *PatternCaseClause:
		return KindPatternCaseClause
	case *DefaultCaseClause:
		return KindDefaultCaseClause
	case *Labeled:
		return KindLabeled
	case *Branch:
		return KindBranch
	case *Empty:
		return KindEmpty
	case *Return:
		switch o.Flavor {
		case ReturnYield:
			return KindYieldReturn
		case ReturnYieldBreak:
			return KindYieldBreak
		}
		return KindReturn
	case *Lock:
		return KindLock
	case *Try:
		return KindTry
	case *CatchClause:
		return KindCatchClause
	case *Using:
		return KindUsing
	case *LocalFunction:
		return KindLocalFunction
	case *Literal:
		return KindLiteral
	case *Conversion:
		return KindConversion
	case *Invocation:
		return KindInvocation
	case *Argument:
		return KindArgument
	case *LocalReference:
		return KindLocalReference
	case *ParameterReference:
		return KindParameterReference
	case *FieldReference:
		return KindFieldReference
	case *PropertyReference:
		return KindPropertyReference
	case *EventReference:
		return KindEventReference
	case *MethodReference:
		return KindMethodReference
	case *ArrayElementReference:
		return KindArrayElementReference
	case *InstanceReference:
		return KindInstanceReference
	case *ConditionalAccessInstance:
		return KindConditionalAccessInstance
	case *UnaryOperator:
		return KindUnaryOperator
	case *BinaryOperator:
		return KindBinaryOperator
	case *ConditionalOperator:
		return KindConditionalOperator
	case *Coalesce:
		return KindCoalesce
	case *SimpleAssignment:
		return KindSimpleAssignment
	case *CompoundAssignment:
		return KindCompoundAssignment
	case *IncrementOrDecrement:
		if o.IsIncrement {
			return KindIncrement
		}
		return KindDecrement
	case *EventAssignment:
		return KindEventAssignment
	case *ObjectCreation:
		return KindObjectCreation
	case *TypeParameterObjectCreation:
		return KindTypeParameterObjectCreation
	case *AnonymousObjectCreation:
		return KindAnonymousObjectCreation
	case *ArrayCreation:
		return KindArrayCreation
	case *ArrayInitializer:
		return KindArrayInitializer
	case *DelegateCreation:
		return KindDelegateCreation
	case *DynamicObjectCreation:
		return KindDynamicObjectCreation
	case *DynamicMemberReference:
		return KindDynamicMemberReference
	case *DynamicInvocation:
		return KindDynamicInvocation
	case *DynamicIndexerAccess:
		return KindDynamicIndexerAccess
	case *ObjectOrCollectionInitializer:
		return KindObjectOrCollectionInitializer
	case *MemberInitializer:
		return KindMemberInitializer
	case *CollectionElementInitializer:
		return KindCollectionElementInitializer
	case *IsType:
		return KindIsType
	case *IsPattern:
		return KindIsPattern
	case *ConstantPattern:
		return KindConstantPattern
	case *DeclarationPattern:
		return KindDeclarationPattern
	case *Await:
		return KindAwait
	case *NameOf:
		return KindNameOf
	case *TypeOf:
		return KindTypeOf
	case *SizeOf:
		return KindSizeOf
	case *DefaultValue:
		return KindDefaultValue
	case *AddressOf:
		return KindAddressOf
	case *ConditionalAccess:
		return KindConditionalAccess
	case *InterpolatedString:
		return KindInterpolatedString
	case *InterpolatedStringText:
		return KindInterpolatedStringText
	case *Interpolation:
		return KindInterpolation
	case *Tuple:
		return KindTuple
	case *DeconstructionAssignment:
		return KindDeconstructionAssignment
	case *DeclarationExpression:
		return KindDeclarationExpression
	case *AnonymousFunction:
		return KindAnonymousFunction
	case *Throw:
		return KindThrow
	case *TranslatedQuery:
		return KindTranslatedQuery
	}
	panic(fmt.Sprintf("operations: unknown node shape %T", op))
}
