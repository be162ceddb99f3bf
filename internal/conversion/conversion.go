// Package conversion describes how one typed value becomes another. The
// binder classifies every conversion with a Kind; the operation tree exposes
// the language-neutral Conversion value derived from it, both on Conversion
// operations and on arguments.
package conversion

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/optree/internal/symbols"
)

// Kind is the binder's classification of a conversion.
type Kind int

const (
	NoConversion Kind = iota
	Identity
	ImplicitNumeric
	ExplicitNumeric
	ImplicitConstant
	ImplicitEnumeration
	ExplicitEnumeration
	ImplicitReference
	ExplicitReference
	Boxing
	Unboxing
	NullLiteral
	ImplicitNullable
	ExplicitNullable
	ImplicitUserDefined
	ExplicitUserDefined
	ImplicitTupleLiteral
	ImplicitTuple
	ExplicitTupleLiteral
	ExplicitTuple
	ImplicitDynamic
	ExplicitDynamic
	AnonymousFunction
	MethodGroup
	InterpolatedString
	ImplicitPointer
	ExplicitPointer

	kindCount
)

var kindNames = [kindCount]string{
	NoConversion:         "NoConversion",
	Identity:             "Identity",
	ImplicitNumeric:      "ImplicitNumeric",
	ExplicitNumeric:      "ExplicitNumeric",
	ImplicitConstant:     "ImplicitConstant",
	ImplicitEnumeration:  "ImplicitEnumeration",
	ExplicitEnumeration:  "ExplicitEnumeration",
	ImplicitReference:    "ImplicitReference",
	ExplicitReference:    "ExplicitReference",
	Boxing:               "Boxing",
	Unboxing:             "Unboxing",
	NullLiteral:          "NullLiteral",
	ImplicitNullable:     "ImplicitNullable",
	ExplicitNullable:     "ExplicitNullable",
	ImplicitUserDefined:  "ImplicitUserDefined",
	ExplicitUserDefined:  "ExplicitUserDefined",
	ImplicitTupleLiteral: "ImplicitTupleLiteral",
	ImplicitTuple:        "ImplicitTuple",
	ExplicitTupleLiteral: "ExplicitTupleLiteral",
	ExplicitTuple:        "ExplicitTuple",
	ImplicitDynamic:      "ImplicitDynamic",
	ExplicitDynamic:      "ExplicitDynamic",
	AnonymousFunction:    "AnonymousFunction",
	MethodGroup:          "MethodGroup",
	InterpolatedString:   "InterpolatedString",
	ImplicitPointer:      "ImplicitPointer",
	ExplicitPointer:      "ExplicitPointer",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind by name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return NoConversion, fmt.Errorf("unknown conversion kind %q", name)
}

// UnmarshalText lets kinds appear by name in bound-tree snapshots.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsImplicit reports whether the classification is an implicit conversion.
func (k Kind) IsImplicit() bool {
	switch k {
	case Identity, ImplicitNumeric, ImplicitConstant, ImplicitEnumeration,
		ImplicitReference, Boxing, NullLiteral, ImplicitNullable,
		ImplicitUserDefined, ImplicitTupleLiteral, ImplicitTuple,
		ImplicitDynamic, AnonymousFunction, MethodGroup, InterpolatedString,
		ImplicitPointer:
		return true
	}
	return false
}

// IsUserDefined reports whether an operator method performs the conversion.
func (k Kind) IsUserDefined() bool {
	return k == ImplicitUserDefined || k == ExplicitUserDefined
}

// IsDelegateCreation reports whether the conversion turns a method group or
// lambda into a delegate instance.
func (k Kind) IsDelegateCreation() bool {
	return k == AnonymousFunction || k == MethodGroup
}

// IsTuple reports whether the conversion converts a tuple element-wise.
func (k Kind) IsTuple() bool {
	switch k {
	case ImplicitTupleLiteral, ImplicitTuple, ExplicitTupleLiteral, ExplicitTuple:
		return true
	}
	return false
}

// Conversion is the language-neutral description attached to Conversion
// operations and arguments. It is a value; the zero Conversion does not exist.
type Conversion struct {
	Exists        bool
	IsIdentity    bool
	IsImplicit    bool
	IsNumeric     bool
	IsReference   bool
	IsBoxing      bool
	IsNullable    bool
	IsUserDefined bool

	// Method is the resolving operator, set iff IsUserDefined.
	Method *symbols.Symbol
}

// IdentityConversion is the conversion of a value to its own type.
var IdentityConversion = Conversion{Exists: true, IsIdentity: true, IsImplicit: true}

// Classify derives the Conversion value for a binder classification. method
// is ignored unless the kind is user-defined.
func Classify(k Kind, method *symbols.Symbol) Conversion {
	c := Conversion{Exists: k != NoConversion, IsImplicit: k.IsImplicit()}
	switch k {
	case Identity:
		c.IsIdentity = true
	case ImplicitNumeric, ExplicitNumeric, ImplicitConstant,
		ImplicitEnumeration, ExplicitEnumeration:
		c.IsNumeric = true
	case ImplicitReference, ExplicitReference:
		c.IsReference = true
	case Boxing, Unboxing:
		c.IsBoxing = true
	case ImplicitNullable, ExplicitNullable:
		c.IsNullable = true
	case ImplicitUserDefined, ExplicitUserDefined:
		c.IsUserDefined = true
		c.Method = method
	}
	return c
}

// String renders the conversion as a dump line.
func (c Conversion) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exists: %s, IsIdentity: %s, IsNumeric: %s, IsReference: %s, IsUserDefined: %s",
		yesNo(c.Exists), yesNo(c.IsIdentity), yesNo(c.IsNumeric), yesNo(c.IsReference), yesNo(c.IsUserDefined))
	if c.IsBoxing {
		b.WriteString(", IsBoxing: True")
	}
	if c.IsNullable {
		b.WriteString(", IsNullable: True")
	}
	fmt.Fprintf(&b, ") (OperatorMethod: %s", c.Method)
	return "(" + b.String() + ")"
}

func yesNo(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
