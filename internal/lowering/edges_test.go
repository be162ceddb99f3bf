package lowering

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/symbols"
)

func stringLit(v string) *bound.Literal {
	h := hdr(`"`+v+`"`, symbols.String)
	h.Constant = symbols.NewString(v)
	return &bound.Literal{Header: h}
}

func emptyBlock() *bound.Block {
	return &bound.Block{Header: hdr("{ }", nil)}
}

func TestRecoveredAndNestedShapes(t *testing.T) {
	resource := symbols.NewNamed(symbols.TypeKindClass, "R")
	a, c := symbols.NewLocal("a", resource), symbols.NewLocal("c", resource)
	d := symbols.NewLocal("d", symbols.Dynamic)
	o := symbols.NewLocal("o", symbols.Object)
	x := symbols.NewLocal("x", symbols.NewNullable(symbols.Int32))
	list := symbols.NewNamed(symbols.TypeKindClass, "List")

	mismatched := &bound.ArrayCreation{
		Header: hdr(`new string[2] { "x" }`, symbols.NewArray(symbols.String, 1)),
		Bounds: []bound.Node{lit(2)},
		Initializer: &bound.ArrayInitialization{
			Header:       hdr(`{ "x" }`, nil),
			Initializers: []bound.Node{stringLit("x")},
		},
	}
	mismatched.HasErrors = true
	mismatched.Initializer.HasErrors = true

	pattern := &bound.DeclarationPattern{
		Header:       hdr("int? x", nil),
		Variable:     x,
		DeclaredType: x.Type,
	}
	pattern.HasErrors = true

	folded := convert(conversion.ExplicitNumeric, symbols.Int64, localUse(a))
	folded.ExplicitCastInCode = true
	folded.Constant = symbols.NewInt(3)
	folded.Syntax.Text = "(long)a"

	tests := []struct {
		name string
		node bound.Node
		want []string
	}{
		{
			name: "explicit size disagrees with the initializer",
			node: mismatched,
			want: []string{
				`ArrayCreation (Type: System.String[], IsInvalid) (Syntax: 'new string[2] { "x" }')`,
				`  DimensionSizes(1):`,
				`    [0] Literal (Type: System.Int32, Constant: 2) (Syntax: '2')`,
				`  Initializer:`,
				`    [1] ArrayInitializer (Type: null, IsInvalid) (Syntax: '{ "x" }')`,
				`      ElementValues(1):`,
				`        [0] Literal (Type: System.String, Constant: "x") (Syntax: '"x"')`,
			},
		},
		{
			name: "using inside using",
			node: &bound.Using{
				Header:     hdr("using (a) using (c) { }", nil),
				Expression: localUse(a),
				Body: &bound.Using{
					Header:     hdr("using (c) { }", nil),
					Expression: localUse(c),
					Body:       emptyBlock(),
				},
			},
			want: []string{
				"Using (Type: null) (Syntax: 'using (a) using (c) { }')",
				"  Resources:",
				"    [0] LocalReference: a (Type: R) (Syntax: 'a')",
				"  Body:",
				"    [1] Using (Type: null) (Syntax: 'using (c) { }')",
				"      Resources:",
				"        [0] LocalReference: c (Type: R) (Syntax: 'c')",
				"      Body:",
				"        [1] Block (Type: null) (Syntax: '{ }')",
				"          Operations(0)",
			},
		},
		{
			name: "dynamic collection element has no add method",
			node: &bound.CollectionInitializer{
				Header: hdr("{ d }", list),
				Initializers: []bound.Node{&bound.DynamicCollectionElementInitializer{
					Header:    hdr("d", symbols.Dynamic),
					Arguments: []bound.Node{localUse(d)},
				}},
			},
			want: []string{
				"ObjectOrCollectionInitializer (Type: List) (Syntax: '{ d }')",
				"  Initializers(1):",
				"    [0] CollectionElementInitializer (AddMethod: null) (IsDynamic: True) (Type: dynamic) (Syntax: 'd')",
				"      Arguments(1):",
				"        [0] LocalReference: d (Type: dynamic) (Syntax: 'd')",
			},
		},
		{
			name: "rejected declaration pattern keeps its variable",
			node: &bound.IsPattern{
				Header:     hdr("o is int? x", symbols.Boolean),
				Expression: localUse(o),
				Pattern:    pattern,
			},
			want: []string{
				"IsPattern (Type: System.Boolean, IsInvalid) (Syntax: 'o is int? x')",
				"  Value:",
				"    [0] LocalReference: o (Type: System.Object) (Syntax: 'o')",
				"  Pattern:",
				"    [1] DeclarationPattern (Declared Symbol: x, Matched Type: System.Int32?) (Type: null, IsInvalid) (Syntax: 'int? x')",
			},
		},
		{
			name: "constant on a conversion of a non-constant operand",
			node: folded,
			want: []string{
				"Conversion (TryCast: False) (Unchecked) (Type: System.Int64, Constant: 3) (Syntax: '(long)a')",
				"  Conversion: (Exists: True, IsIdentity: False, IsNumeric: True, IsReference: False, IsUserDefined: False) (OperatorMethod: null)",
				"  Operand:",
				"    [0] LocalReference: a (Type: R) (Syntax: 'a')",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDump(t, lowerOK(t, tt.node), tt.want...)
		})
	}
}

func TestCatchFilterRunsBetweenDeclarationAndHandler(t *testing.T) {
	e := symbols.NewLocal("e", symbols.NewNamed(symbols.TypeKindClass, "System.Exception"))
	retry := symbols.NewLocal("retry", symbols.Boolean)
	n := &bound.Try{
		Header:   hdr("try { } catch (Exception e) when (retry) { }", nil),
		TryBlock: emptyBlock(),
		Catches: []*bound.Catch{{
			Header:          hdr("catch (Exception e) when (retry) { }", nil),
			Locals:          []*symbols.Symbol{e},
			ExceptionSource: localUse(e),
			ExceptionType:   e.Type,
			Filter:          localUse(retry),
			Body:            emptyBlock(),
		}},
	}

	clause := lowerOK(t, n).(*operations.Try).Catches[0]
	want := []operations.Kind{operations.KindVariableDeclaration, operations.KindLocalReference, operations.KindBlock}
	if diff := pretty.Diff(childKinds(clause), want); len(diff) > 0 {
		t.Errorf("evaluation order: %v", diff)
	}
	if len(clause.Locals) != 1 || clause.Locals[0] != e {
		t.Errorf("locals = %v", clause.Locals)
	}
	assertDump(t, clause,
		"CatchClause (Exception type: System.Exception) (Type: null) (Syntax: 'catch (Exception e) when (retry) { }')",
		"  ExceptionDeclaration:",
		"    [0] VariableDeclaration (Type: null) (Syntax: 'e')",
		"      Initializer: null",
		"  Filter:",
		"    [1] LocalReference: retry (Type: System.Boolean) (Syntax: 'retry')",
		"  Handler:",
		"    [2] Block (Type: null) (Syntax: '{ }')",
		"      Operations(0)",
	)
}

func TestRejectedDeclarationPatternStaysDeclaration(t *testing.T) {
	x := symbols.NewLocal("x", symbols.NewNullable(symbols.Int32))
	p := &bound.DeclarationPattern{Header: hdr("int? x", nil), Variable: x, DeclaredType: x.Type}
	p.HasErrors = true

	op := lowerOK(t, p)
	dp, ok := op.(*operations.DeclarationPattern)
	if !ok {
		t.Fatalf("got %s", operations.Header(op))
	}
	if !dp.IsInvalid() || !operations.LocallyInvalid(dp) {
		t.Error("rejected pattern is not invalid")
	}
	if dp.DeclaredSymbol != x || dp.MatchedType != x.Type {
		t.Errorf("pattern = %s", operations.Header(dp))
	}
}
