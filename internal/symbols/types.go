// Package symbols holds the resolved semantic entities the binder hands to the
// operation tree: types, symbols and compile-time constants. Nothing in this
// package performs resolution; values are created by the binder (or a
// snapshot decoder) and only read afterwards.
package symbols

import (
	"strings"
)

// TypeKind is the fundamental kind of a type.
type TypeKind int

const (
	TypeKindError TypeKind = iota
	TypeKindClass
	TypeKindStruct
	TypeKindInterface
	TypeKindEnum
	TypeKindDelegate
	TypeKindArray
	TypeKindTuple
	TypeKindDynamic
	TypeKindTypeParameter
	TypeKindPointer
	TypeKindNullable
)

var typeKindNames = [...]string{
	TypeKindError:         "Error",
	TypeKindClass:         "Class",
	TypeKindStruct:        "Struct",
	TypeKindInterface:     "Interface",
	TypeKindEnum:          "Enum",
	TypeKindDelegate:      "Delegate",
	TypeKindArray:         "Array",
	TypeKindTuple:         "Tuple",
	TypeKindDynamic:       "Dynamic",
	TypeKindTypeParameter: "TypeParameter",
	TypeKindPointer:       "Pointer",
	TypeKindNullable:      "Nullable",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "TypeKind(?)"
}

// UnmarshalText parses a type kind by name.
func (k *TypeKind) UnmarshalText(text []byte) error {
	i, err := lookupName(typeKindNames[:], string(text), "type kind")
	*k = TypeKind(i)
	return err
}

// SpecialType identifies the predefined types the engine reasons about.
type SpecialType int

const (
	SpecialNone SpecialType = iota
	SpecialObject
	SpecialVoid
	SpecialBoolean
	SpecialChar
	SpecialSByte
	SpecialByte
	SpecialInt16
	SpecialUInt16
	SpecialInt32
	SpecialUInt32
	SpecialInt64
	SpecialUInt64
	SpecialDecimal
	SpecialSingle
	SpecialDouble
	SpecialString
)

// IsIntegral reports whether s is one of the integral numeric types.
func (s SpecialType) IsIntegral() bool {
	return s >= SpecialSByte && s <= SpecialUInt64
}

// IsNumeric reports whether s is integral, floating point or decimal.
func (s SpecialType) IsNumeric() bool {
	return s >= SpecialSByte && s <= SpecialDouble
}

// TupleElement is one element of a tuple type.
type TupleElement struct {
	Name string
	Type *Type
}

// Type is a resolved type. Types are compared structurally with Identical;
// pointer identity is not significant.
type Type struct {
	Kind     TypeKind
	Name     string // metadata name, e.g. "System.Int32" or "C"
	Special  SpecialType
	Elem     *Type // array/pointer/nullable element, enum underlying type
	Rank     int   // arrays only
	Elements []TupleElement
	Base     *Type
	// Interfaces lists implemented interfaces; the binder fills only what
	// later consumers need (for example the disposal contract).
	Interfaces []*Type
}

func special(kind TypeKind, name string, s SpecialType) *Type {
	return &Type{Kind: kind, Name: name, Special: s}
}

// Predefined types.
var (
	Object  = special(TypeKindClass, "System.Object", SpecialObject)
	Void    = special(TypeKindStruct, "System.Void", SpecialVoid)
	Boolean = special(TypeKindStruct, "System.Boolean", SpecialBoolean)
	Char    = special(TypeKindStruct, "System.Char", SpecialChar)
	SByte   = special(TypeKindStruct, "System.SByte", SpecialSByte)
	Byte    = special(TypeKindStruct, "System.Byte", SpecialByte)
	Int16   = special(TypeKindStruct, "System.Int16", SpecialInt16)
	UInt16  = special(TypeKindStruct, "System.UInt16", SpecialUInt16)
	Int32   = special(TypeKindStruct, "System.Int32", SpecialInt32)
	UInt32  = special(TypeKindStruct, "System.UInt32", SpecialUInt32)
	Int64   = special(TypeKindStruct, "System.Int64", SpecialInt64)
	UInt64  = special(TypeKindStruct, "System.UInt64", SpecialUInt64)
	Decimal = special(TypeKindStruct, "System.Decimal", SpecialDecimal)
	Single  = special(TypeKindStruct, "System.Single", SpecialSingle)
	Double  = special(TypeKindStruct, "System.Double", SpecialDouble)
	String  = special(TypeKindClass, "System.String", SpecialString)
	Dynamic = &Type{Kind: TypeKindDynamic, Name: "dynamic"}

	// ErrorType stands in for a type the binder could not resolve.
	ErrorType = &Type{Kind: TypeKindError, Name: "?"}
)

var predefined = []*Type{
	Object, Void, Boolean, Char, SByte, Byte, Int16, UInt16, Int32, UInt32,
	Int64, UInt64, Decimal, Single, Double, String,
}

// LookupSpecial returns the predefined type for s, or nil.
func LookupSpecial(s SpecialType) *Type {
	for _, t := range predefined {
		if t.Special == s {
			return t
		}
	}
	return nil
}

// NewNamed creates a user-defined named type.
func NewNamed(kind TypeKind, name string) *Type {
	return &Type{Kind: kind, Name: name}
}

// NewArray creates an array type of the given rank.
func NewArray(elem *Type, rank int) *Type {
	if rank < 1 {
		rank = 1
	}
	return &Type{Kind: TypeKindArray, Elem: elem, Rank: rank, Base: arrayBase}
}

var arrayBase = NewNamed(TypeKindClass, "System.Array")

// NewTuple creates a tuple type. Element names are optional.
func NewTuple(elems ...TupleElement) *Type {
	return &Type{Kind: TypeKindTuple, Elements: elems}
}

// NewTupleOf creates a tuple type with unnamed elements.
func NewTupleOf(types ...*Type) *Type {
	elems := make([]TupleElement, len(types))
	for i, t := range types {
		elems[i] = TupleElement{Type: t}
	}
	return NewTuple(elems...)
}

// NewNullable wraps a value type in the nullable type constructor.
func NewNullable(elem *Type) *Type {
	return &Type{Kind: TypeKindNullable, Name: "System.Nullable", Elem: elem}
}

// NewPointer creates a pointer type.
func NewPointer(elem *Type) *Type {
	return &Type{Kind: TypeKindPointer, Elem: elem}
}

// IsReferenceType reports whether values of t are references (and so may be
// null).
func (t *Type) IsReferenceType() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeKindClass, TypeKindInterface, TypeKindDelegate, TypeKindArray, TypeKindDynamic:
		return true
	}
	return false
}

// IsErrorType reports whether t is absent or unresolved.
func (t *Type) IsErrorType() bool {
	return t == nil || t.Kind == TypeKindError
}

// Implements reports whether t lists iface among its interfaces, directly or
// through its base chain.
func (t *Type) Implements(iface *Type) bool {
	for cur := t; cur != nil; cur = cur.Base {
		for _, i := range cur.Interfaces {
			if Identical(i, iface) || i.Implements(iface) {
				return true
			}
		}
	}
	return false
}

// String renders the type the way dumps print it.
func (t *Type) String() string {
	if t == nil {
		return "null"
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Type) write(b *strings.Builder) {
	switch t.Kind {
	case TypeKindArray:
		t.Elem.write(b)
		b.WriteByte('[')
		for i := 1; i < t.Rank; i++ {
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case TypeKindPointer:
		t.Elem.write(b)
		b.WriteByte('*')
	case TypeKindNullable:
		t.Elem.write(b)
		b.WriteByte('?')
	case TypeKindTuple:
		b.WriteByte('(')
		for i, e := range t.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			e.Type.write(b)
			if e.Name != "" {
				b.WriteByte(' ')
				b.WriteString(e.Name)
			}
		}
		b.WriteByte(')')
	default:
		b.WriteString(t.Name)
	}
}

// Identical reports whether a and b denote the same type, including tuple
// element names.
func Identical(a, b *Type) bool {
	return identical(a, b, true)
}

// IdenticalIgnoringNames is Identical except that tuple element names are not
// compared. A conversion between two such types is an identity conversion.
func IdenticalIgnoringNames(a, b *Type) bool {
	return identical(a, b, false)
}

func identical(a, b *Type, names bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case TypeKindArray:
		return a.Rank == b.Rank && identical(a.Elem, b.Elem, names)
	case TypeKindPointer, TypeKindNullable:
		return identical(a.Elem, b.Elem, names)
	case TypeKindTuple:
		if len(a.Elements) != len(b.Elements) {
			return false
		}
		for i := range a.Elements {
			if names && a.Elements[i].Name != b.Elements[i].Name {
				return false
			}
			if !identical(a.Elements[i].Type, b.Elements[i].Type, names) {
				return false
			}
		}
		return true
	default:
		return a.Name == b.Name
	}
}
