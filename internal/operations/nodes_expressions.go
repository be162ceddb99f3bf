package operations

import (
	"fmt"

	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operators"
	"github.com/orizon-lang/optree/internal/symbols"
)

// Literal is a literal value; the value is the node's constant.
type Literal struct {
	node
}

func (o *Literal) Slots() []Slot { return nil }

// Conversion converts Operand to the node's type. An implicit Conversion is
// one the language inserted; an explicit one is a cast written in code.
type Conversion struct {
	node
	Operand    Operation
	Conversion conversion.Conversion
	IsTryCast  bool
	IsChecked  bool
}

func (o *Conversion) Slots() []Slot { return []Slot{one("Operand", o.Operand)} }

func (o *Conversion) details() string {
	return fmt.Sprintf(" (TryCast: %s) (%s)", yesNo(o.IsTryCast), checked(o.IsChecked))
}

func (o *Conversion) annotations() []string {
	return []string{"Conversion: " + o.Conversion.String()}
}

// Invocation calls TargetMethod. Instance is nil for static calls; Arguments
// are in parameter order with defaults and params arrays materialized.
type Invocation struct {
	node
	TargetMethod *symbols.Symbol
	Instance     Operation
	Arguments    []*Argument
	IsVirtual    bool
}

func (o *Invocation) Slots() []Slot {
	return []Slot{one("Instance", o.Instance), many("Arguments", o.Arguments)}
}

func (o *Invocation) details() string {
	return fmt.Sprintf(": %s (IsVirtual: %s)", o.TargetMethod, yesNo(o.IsVirtual))
}

// ArgumentKind says how an argument came to be.
type ArgumentKind int

const (
	// ArgumentExplicit was written at the call site.
	ArgumentExplicit ArgumentKind = iota
	// ArgumentParamArray is the array synthesized from expanded params
	// arguments.
	ArgumentParamArray
	// ArgumentDefaultValue supplies an omitted optional parameter.
	ArgumentDefaultValue
)

var argumentKindNames = [...]string{
	ArgumentExplicit:     "Explicit",
	ArgumentParamArray:   "ParamArray",
	ArgumentDefaultValue: "DefaultValue",
}

func (k ArgumentKind) String() string { return argumentKindNames[k] }

// Argument binds Value to Parameter. Parameter is nil when overload
// resolution failed.
type Argument struct {
	node
	ArgumentKind  ArgumentKind
	Parameter     *symbols.Symbol
	Value         Operation
	InConversion  conversion.Conversion
	OutConversion conversion.Conversion
}

func (o *Argument) Slots() []Slot { return []Slot{one("Value", o.Value)} }

func (o *Argument) details() string {
	if o.Parameter == nil {
		return fmt.Sprintf(" (ArgumentKind.%s, Matching Parameter: null)", o.ArgumentKind)
	}
	return fmt.Sprintf(" (ArgumentKind.%s, Matching Parameter: %s)", o.ArgumentKind, o.Parameter.Name)
}

func (o *Argument) annotations() []string {
	if o.Parameter == nil || o.Parameter.RefKind == symbols.RefNone {
		return []string{"InConversion: " + o.InConversion.String()}
	}
	return []string{
		"InConversion: " + o.InConversion.String(),
		"OutConversion: " + o.OutConversion.String(),
	}
}

// UnaryOperator applies a unary operator; Method is set for user-defined
// operators.
type UnaryOperator struct {
	node
	OperatorKind operators.UnaryKind
	Operand      Operation
	Method       *symbols.Symbol
	IsChecked    bool
	IsLifted     bool
}

func (o *UnaryOperator) Slots() []Slot { return []Slot{one("Operand", o.Operand)} }

func (o *UnaryOperator) details() string {
	return fmt.Sprintf(" (UnaryOperatorKind.%s%s)%s", o.OperatorKind, lifted(o.IsLifted), operatorMethod(o.Method))
}

// BinaryOperator applies a binary operator; Method is set for user-defined
// operators.
type BinaryOperator struct {
	node
	OperatorKind operators.BinaryKind
	Left         Operation
	Right        Operation
	Method       *symbols.Symbol
	IsChecked    bool
	IsLifted     bool
}

func (o *BinaryOperator) Slots() []Slot {
	return []Slot{one("Left", o.Left), one("Right", o.Right)}
}

func (o *BinaryOperator) details() string {
	return fmt.Sprintf(" (BinaryOperatorKind.%s%s)%s", o.OperatorKind, lifted(o.IsLifted), operatorMethod(o.Method))
}

// ConditionalOperator is `c ? a : b`.
type ConditionalOperator struct {
	node
	Condition Operation
	WhenTrue  Operation
	WhenFalse Operation
	IsRef     bool
}

func (o *ConditionalOperator) Slots() []Slot {
	return []Slot{one("Condition", o.Condition), one("WhenTrue", o.WhenTrue), one("WhenFalse", o.WhenFalse)}
}

// Coalesce is `value ?? whenNull`.
type Coalesce struct {
	node
	Value    Operation
	WhenNull Operation
}

func (o *Coalesce) Slots() []Slot { return []Slot{one("Value", o.Value), one("WhenNull", o.WhenNull)} }

// SimpleAssignment is `target = value`.
type SimpleAssignment struct {
	node
	Target Operation
	Value  Operation
	IsRef  bool
}

func (o *SimpleAssignment) Slots() []Slot {
	return []Slot{one("Target", o.Target), one("Value", o.Value)}
}

// CompoundAssignment is `target op= value`.
type CompoundAssignment struct {
	node
	OperatorKind operators.BinaryKind
	Target       Operation
	Value        Operation
	Method       *symbols.Symbol
	IsChecked    bool
}

func (o *CompoundAssignment) Slots() []Slot {
	return []Slot{one("Target", o.Target), one("Value", o.Value)}
}

func (o *CompoundAssignment) details() string {
	return fmt.Sprintf(" (BinaryOperatorKind.%s)%s", o.OperatorKind, operatorMethod(o.Method))
}

// IncrementOrDecrement is the shared shape of the Increment and Decrement
// kinds.
type IncrementOrDecrement struct {
	node
	IsIncrement bool
	IsPostfix   bool
	Target      Operation
	Method      *symbols.Symbol
	IsChecked   bool
}

func (o *IncrementOrDecrement) Slots() []Slot { return []Slot{one("Target", o.Target)} }

func (o *IncrementOrDecrement) details() string {
	return fmt.Sprintf(" (Postfix: %s)%s", yesNo(o.IsPostfix), operatorMethod(o.Method))
}

// EventAssignment subscribes or unsubscribes Handler.
type EventAssignment struct {
	node
	EventReference Operation
	Handler        Operation
	Adds           bool
}

func (o *EventAssignment) Slots() []Slot {
	return []Slot{one("EventReference", o.EventReference), one("Handler", o.Handler)}
}

func (o *EventAssignment) details() string {
	if o.Adds {
		return " (EventAdd)"
	}
	return " (EventRemove)"
}

// IsType is `value is T`.
type IsType struct {
	node
	ValueOperand Operation
	TypeOperand  *symbols.Type
}

func (o *IsType) Slots() []Slot   { return []Slot{one("ValueOperand", o.ValueOperand)} }
func (o *IsType) details() string { return fmt.Sprintf(" (IsType: %s)", o.TypeOperand) }

// IsPattern is `value is pattern`.
type IsPattern struct {
	node
	Value   Operation
	Pattern Operation
}

func (o *IsPattern) Slots() []Slot { return []Slot{one("Value", o.Value), one("Pattern", o.Pattern)} }

// ConstantPattern matches Value.
type ConstantPattern struct {
	node
	Value Operation
}

func (o *ConstantPattern) Slots() []Slot { return []Slot{one("Value", o.Value)} }

// DeclarationPattern matches MatchedType and binds DeclaredSymbol.
// MatchedType is nil for `var x`.
type DeclarationPattern struct {
	node
	DeclaredSymbol *symbols.Symbol
	MatchedType    *symbols.Type
}

func (o *DeclarationPattern) Slots() []Slot { return nil }

func (o *DeclarationPattern) details() string {
	return fmt.Sprintf(" (Declared Symbol: %s, Matched Type: %s)", o.DeclaredSymbol, o.MatchedType)
}

// Await is `await operation`.
type Await struct {
	node
	Operation Operation
}

func (o *Await) Slots() []Slot { return []Slot{one("Operation", o.Operation)} }

// NameOf is `nameof(argument)`; the resulting string is the constant.
type NameOf struct {
	node
	Argument Operation
}

func (o *NameOf) Slots() []Slot { return []Slot{one("Argument", o.Argument)} }

// TypeOf is `typeof(T)`.
type TypeOf struct {
	node
	TypeOperand *symbols.Type
}

func (o *TypeOf) Slots() []Slot   { return nil }
func (o *TypeOf) details() string { return fmt.Sprintf(" (TypeOperand: %s)", o.TypeOperand) }

// SizeOf is `sizeof(T)`.
type SizeOf struct {
	node
	TypeOperand *symbols.Type
}

func (o *SizeOf) Slots() []Slot   { return nil }
func (o *SizeOf) details() string { return fmt.Sprintf(" (TypeOperand: %s)", o.TypeOperand) }

// DefaultValue is `default(T)`.
type DefaultValue struct {
	node
}

func (o *DefaultValue) Slots() []Slot { return nil }

// AddressOf is `&reference`.
type AddressOf struct {
	node
	Reference Operation
}

func (o *AddressOf) Slots() []Slot { return []Slot{one("Reference", o.Reference)} }

// ConditionalAccess is `operation?.rest`; WhenNotNull reads Operation through
// a ConditionalAccessInstance.
type ConditionalAccess struct {
	node
	Operation   Operation
	WhenNotNull Operation
}

func (o *ConditionalAccess) Slots() []Slot {
	return []Slot{one("Operation", o.Operation), one("WhenNotNull", o.WhenNotNull)}
}

// ConditionalAccessInstance stands for the receiver already evaluated by the
// enclosing ConditionalAccess.
type ConditionalAccessInstance struct {
	node
}

func (o *ConditionalAccessInstance) Slots() []Slot { return nil }

// InterpolatedString is `$"..."`; parts are InterpolatedStringText and
// Interpolation nodes.
type InterpolatedString struct {
	node
	Parts []Operation
}

func (o *InterpolatedString) Slots() []Slot { return []Slot{many("Parts", o.Parts)} }

// InterpolatedStringText is a literal run of an interpolated string.
type InterpolatedStringText struct {
	node
	Text Operation
}

func (o *InterpolatedStringText) Slots() []Slot { return []Slot{one("Text", o.Text)} }

// Interpolation is one `{expression,alignment:format}` hole.
type Interpolation struct {
	node
	Expression   Operation
	Alignment    Operation
	FormatString Operation
}

func (o *Interpolation) Slots() []Slot {
	return []Slot{one("Expression", o.Expression), one("Alignment", o.Alignment), one("FormatString", o.FormatString)}
}

// Tuple is a tuple literal. NaturalType is the literal's own type when it
// was converted to a different tuple type, nil otherwise.
type Tuple struct {
	node
	Elements    []Operation
	NaturalType *symbols.Type
}

func (o *Tuple) Slots() []Slot { return []Slot{many("Elements", o.Elements)} }

func (o *Tuple) details() string {
	if o.NaturalType == nil {
		return ""
	}
	return fmt.Sprintf(" (NaturalType: %s)", o.NaturalType)
}

// DeconstructionAssignment is `(a, b) = value`.
type DeconstructionAssignment struct {
	node
	Target Operation
	Value  Operation
}

func (o *DeconstructionAssignment) Slots() []Slot {
	return []Slot{one("Target", o.Target), one("Value", o.Value)}
}

// DeclarationExpression declares the variables referenced by Expression.
type DeclarationExpression struct {
	node
	Expression Operation
}

func (o *DeclarationExpression) Slots() []Slot { return []Slot{one("Expression", o.Expression)} }

// AnonymousFunction is a lambda or anonymous method body.
type AnonymousFunction struct {
	node
	Symbol *symbols.Symbol
	Body   *Block
}

func (o *AnonymousFunction) Slots() []Slot   { return []Slot{one("Body", o.Body)} }
func (o *AnonymousFunction) details() string { return " (Symbol: " + o.Symbol.String() + ")" }

// TranslatedQuery is a query expression; Operation is the call chain it
// means.
type TranslatedQuery struct {
	node
	Operation Operation
}

func (o *TranslatedQuery) Slots() []Slot { return []Slot{one("Operation", o.Operation)} }

// Invalid wraps a construct the binder could not resolve. Operands holds
// every sub-construct that could still be lowered, in source order.
type Invalid struct {
	node
	Operands []Operation
}

func (o *Invalid) Slots() []Slot { return []Slot{many("Children", o.Operands)} }

// Unmodeled is a construct with no dedicated kind. It is passed through with
// its lowered children under KindNone.
type Unmodeled struct {
	node
	Construct string
	Operands  []Operation
}

func (o *Unmodeled) Slots() []Slot   { return []Slot{many("Children", o.Operands)} }
func (o *Unmodeled) details() string { return " (" + o.Construct + ")" }

func yesNo(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func checked(v bool) string {
	if v {
		return "Checked"
	}
	return "Unchecked"
}

func lifted(v bool) string {
	if v {
		return ", IsLifted"
	}
	return ""
}

func operatorMethod(m *symbols.Symbol) string {
	if m == nil {
		return ""
	}
	return " (OperatorMethod: " + m.String() + ")"
}
