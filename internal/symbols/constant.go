package symbols

import (
	"go/constant"
	"go/token"
	"math"
	"strconv"
	"unicode/utf8"
)

// Constant is a compile-time value folded by the binder. A nil *Constant means
// "no constant"; a non-nil Constant with a nil value is the null constant.
type Constant struct {
	val constant.Value
}

// NewInt returns an integer constant.
func NewInt(v int64) *Constant { return &Constant{val: constant.MakeInt64(v)} }

// NewUint returns an unsigned integer constant.
func NewUint(v uint64) *Constant { return &Constant{val: constant.MakeUint64(v)} }

// NewFloat returns a floating point constant.
func NewFloat(v float64) *Constant { return &Constant{val: constant.MakeFloat64(v)} }

// NewString returns a string constant.
func NewString(v string) *Constant { return &Constant{val: constant.MakeString(v)} }

// NewBool returns a boolean constant.
func NewBool(v bool) *Constant { return &Constant{val: constant.MakeBool(v)} }

// NewChar returns a character constant. Characters are integers whose
// rendering depends on the carrying type.
func NewChar(r rune) *Constant { return &Constant{val: constant.MakeInt64(int64(r))} }

// Null returns the null constant.
func Null() *Constant { return &Constant{} }

// FromValue wraps an existing go/constant value.
func FromValue(v constant.Value) *Constant { return &Constant{val: v} }

// Value returns the underlying value; nil for the null constant.
func (c *Constant) Value() constant.Value { return c.val }

// IsNull reports whether c is the null constant.
func (c *Constant) IsNull() bool { return c != nil && c.val == nil }

// Equal reports whether c and other hold the same value.
func (c *Constant) Equal(other *Constant) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.val == nil || other.val == nil {
		return c.val == nil && other.val == nil
	}
	if c.val.Kind() != other.val.Kind() {
		// 1 and 1.0 are distinct constants for the dump.
		return false
	}
	return constant.Compare(c.val, token.EQL, other.val)
}

// Format renders c as it is shown in dumps for a node of type t.
func (c *Constant) Format(t *Type) string {
	if c == nil {
		return ""
	}
	if c.val == nil {
		return "null"
	}
	switch c.val.Kind() {
	case constant.String:
		return strconv.Quote(constant.StringVal(c.val))
	case constant.Bool:
		if constant.BoolVal(c.val) {
			return "True"
		}
		return "False"
	case constant.Int:
		if t != nil && t.Special == SpecialChar {
			if r, ok := constant.Int64Val(c.val); ok && r >= 0 && r <= utf8.MaxRune {
				return strconv.QuoteRune(rune(r))
			}
		}
		return c.val.ExactString()
	case constant.Float:
		f, _ := constant.Float64Val(c.val)
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return c.val.String()
}

func (c *Constant) String() string { return c.Format(nil) }

type intRange struct {
	min int64
	max uint64
}

var integralRanges = map[SpecialType]intRange{
	SpecialSByte:  {math.MinInt8, math.MaxInt8},
	SpecialByte:   {0, math.MaxUint8},
	SpecialInt16:  {math.MinInt16, math.MaxInt16},
	SpecialUInt16: {0, math.MaxUint16},
	SpecialChar:   {0, math.MaxUint16},
	SpecialInt32:  {math.MinInt32, math.MaxInt32},
	SpecialUInt32: {0, math.MaxUint32},
	SpecialInt64:  {math.MinInt64, math.MaxInt64},
	SpecialUInt64: {0, math.MaxUint64},
}

// Representable reports whether c can be a value of type t. A constant on an
// operation must always be representable in the operation's type.
func Representable(c *Constant, t *Type) bool {
	if c == nil {
		return true
	}
	if t == nil {
		return false
	}
	if t.Kind == TypeKindError {
		// The binder's best effort; nothing to check against.
		return true
	}
	if t.Kind == TypeKindEnum && t.Elem != nil {
		return Representable(c, t.Elem)
	}
	if c.val == nil {
		return t.IsReferenceType() || t.Kind == TypeKindNullable ||
			t.Kind == TypeKindPointer || t.Kind == TypeKindTypeParameter
	}
	if t.Kind == TypeKindNullable {
		return Representable(c, t.Elem)
	}
	switch c.val.Kind() {
	case constant.Bool:
		return t.Special == SpecialBoolean
	case constant.String:
		return t.Special == SpecialString
	case constant.Int:
		if r, ok := integralRanges[t.Special]; ok {
			return fitsInt(c.val, r)
		}
		switch t.Special {
		case SpecialSingle, SpecialDouble, SpecialDecimal:
			return true
		}
		return false
	case constant.Float:
		switch t.Special {
		case SpecialSingle, SpecialDouble, SpecialDecimal:
			return true
		}
		return false
	}
	return false
}

func fitsInt(v constant.Value, r intRange) bool {
	if constant.Sign(v) < 0 {
		i, exact := constant.Int64Val(v)
		return exact && i >= r.min
	}
	u, exact := constant.Uint64Val(v)
	return exact && u <= r.max
}
