package symbols

import (
	"testing"
)

func TestUniverseParse(t *testing.T) {
	u := NewUniverse()
	c := u.Declare(NewNamed(TypeKindClass, "C"))

	tests := []struct {
		expr string
		want string
	}{
		{"int", "System.Int32"},
		{"System.Int32", "System.Int32"},
		{"int[]", "System.Int32[]"},
		{"int[,]", "System.Int32[,]"},
		{"int?", "System.Int32?"},
		{"C*", "C*"},
		{"C[][]", "C[][]"},
		{"(int a, string b)", "(System.Int32 a, System.String b)"},
		{"(int, (C x, long))", "(System.Int32, (C x, System.Int64))"},
		{"dynamic", "dynamic"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := u.Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.expr, got, tt.want)
			}
		})
	}

	if got, _ := u.Parse("C"); got != c {
		t.Error("declared type did not resolve to the declared instance")
	}
	if again := u.Declare(NewNamed(TypeKindStruct, "C")); again != c {
		t.Error("redeclaration replaced the existing type")
	}
}

func TestUniverseParseErrors(t *testing.T) {
	u := NewUniverse()
	for _, expr := range []string{
		"",
		"Missing",
		"int[",
		"(int a",
		"(int)",
		"int ]",
	} {
		if _, err := u.Parse(expr); err == nil {
			t.Errorf("Parse(%q) succeeded", expr)
		}
	}
}

func TestConstantFormat(t *testing.T) {
	tests := []struct {
		name string
		c    *Constant
		typ  *Type
		want string
	}{
		{"none", nil, Int32, ""},
		{"null", Null(), String, "null"},
		{"int", NewInt(-42), Int32, "-42"},
		{"uint", NewUint(18446744073709551615), UInt64, "18446744073709551615"},
		{"float", NewFloat(1.5), Double, "1.5"},
		{"string", NewString("a\"b"), String, `"a\"b"`},
		{"true", NewBool(true), Boolean, "True"},
		{"false", NewBool(false), Boolean, "False"},
		{"char", NewChar('x'), Char, "'x'"},
		{"char as int", NewChar('x'), Int32, "120"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Format(tt.typ); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstantEqual(t *testing.T) {
	if !NewInt(1).Equal(NewInt(1)) {
		t.Error("1 != 1")
	}
	if NewInt(1).Equal(NewFloat(1)) {
		t.Error("1 == 1.0")
	}
	if !Null().Equal(Null()) {
		t.Error("null != null")
	}
	if Null().Equal(NewInt(0)) {
		t.Error("null == 0")
	}
	var none *Constant
	if !none.Equal(nil) || none.Equal(Null()) {
		t.Error("absent constant compared wrongly")
	}
	if !Null().IsNull() || NewInt(0).IsNull() || none.IsNull() {
		t.Error("IsNull")
	}
}

func TestRepresentable(t *testing.T) {
	enum := &Type{Kind: TypeKindEnum, Name: "E", Elem: Byte}
	tests := []struct {
		name string
		c    *Constant
		typ  *Type
		want bool
	}{
		{"no constant", nil, Int32, true},
		{"int in int", NewInt(7), Int32, true},
		{"int overflows byte", NewInt(256), Byte, false},
		{"negative in uint", NewInt(-1), UInt32, false},
		{"max ulong", NewUint(18446744073709551615), UInt64, true},
		{"max ulong in long", NewUint(18446744073709551615), Int64, false},
		{"int in double", NewInt(3), Double, true},
		{"float in int", NewFloat(0.5), Int32, false},
		{"string", NewString("s"), String, true},
		{"string in object", NewString("s"), Object, false},
		{"bool", NewBool(true), Boolean, true},
		{"null in class", Null(), String, true},
		{"null in struct", Null(), Int32, false},
		{"null in nullable", Null(), NewNullable(Int32), true},
		{"int in nullable", NewInt(1), NewNullable(Int32), true},
		{"enum underlying", NewInt(255), enum, true},
		{"enum overflow", NewInt(300), enum, false},
		{"error type", NewString("s"), ErrorType, true},
		{"no type", NewInt(1), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Representable(tt.c, tt.typ); got != tt.want {
				t.Errorf("Representable(%v, %v) = %v, want %v", tt.c, tt.typ, got, tt.want)
			}
		})
	}
}

func TestIdentical(t *testing.T) {
	named := NewTuple(TupleElement{Name: "a", Type: Int32}, TupleElement{Name: "b", Type: String})
	unnamed := NewTupleOf(Int32, String)

	if !Identical(NewArray(Int32, 1), NewArray(Int32, 1)) {
		t.Error("int[] not identical to int[]")
	}
	if Identical(NewArray(Int32, 1), NewArray(Int32, 2)) {
		t.Error("rank ignored")
	}
	if Identical(NewNullable(Int32), NewNullable(Int64)) {
		t.Error("nullable element ignored")
	}
	if Identical(named, unnamed) {
		t.Error("tuple names ignored by Identical")
	}
	if !IdenticalIgnoringNames(named, unnamed) {
		t.Error("tuple names compared by IdenticalIgnoringNames")
	}
	if Identical(NewNamed(TypeKindClass, "A"), NewNamed(TypeKindClass, "B")) {
		t.Error("distinct named types identical")
	}
}

func TestImplements(t *testing.T) {
	disposable := NewNamed(TypeKindInterface, "System.IDisposable")
	base := NewNamed(TypeKindClass, "Base")
	base.Interfaces = []*Type{disposable}
	derived := NewNamed(TypeKindClass, "Derived")
	derived.Base = base

	if !derived.Implements(disposable) {
		t.Error("interface through base chain not found")
	}
	if Object.Implements(disposable) {
		t.Error("object implements IDisposable")
	}
}

func TestSymbolString(t *testing.T) {
	c := NewNamed(TypeKindClass, "C")
	ref := NewParameter("r", Int32)
	ref.RefKind = RefRef
	params := NewParameter("rest", NewArray(Object, 1))
	params.IsParams = true

	tests := []struct {
		name string
		sym  *Symbol
		want string
	}{
		{"nil", nil, "null"},
		{"local", NewLocal("x", Int32), "x"},
		{"field", NewField(c, "f", String, false), "System.String C.f"},
		{"property", NewProperty(c, "P", Int32, true), "System.Int32 C.P"},
		{"indexer", NewProperty(c, "Item", Int32, false, NewParameter("i", Int32)), "System.Int32 C.this[System.Int32]"},
		{"method", NewMethod(c, "M", Void, false, ref, params), "System.Void C.M(ref System.Int32 r, params System.Object[] rest)"},
		{"constructor", NewConstructor(c), "System.Void C..ctor()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sym.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParamsParameter(t *testing.T) {
	rest := NewParameter("rest", NewArray(Int32, 1))
	rest.IsParams = true
	m := NewMethod(nil, "M", Void, true, NewParameter("a", Int32), rest)
	if m.ParamsParameter() != rest {
		t.Error("params parameter not found")
	}
	if NewMethod(nil, "N", Void, true).ParamsParameter() != nil {
		t.Error("parameterless method has a params parameter")
	}
}

func TestKindUnmarshalText(t *testing.T) {
	var sk SymbolKind
	if err := sk.UnmarshalText([]byte("Property")); err != nil || sk != SymbolProperty {
		t.Errorf("SymbolKind = %v, %v", sk, err)
	}
	var rk RefKind
	if err := rk.UnmarshalText([]byte("Out")); err != nil || rk != RefOut {
		t.Errorf("RefKind = %v, %v", rk, err)
	}
	var tk TypeKind
	if err := tk.UnmarshalText([]byte("Nullable")); err != nil || tk != TypeKindNullable {
		t.Errorf("TypeKind = %v, %v", tk, err)
	}
	if err := tk.UnmarshalText([]byte("Record")); err == nil {
		t.Error("unknown type kind accepted")
	}
}
