package operations

import (
	"slices"
	"strings"
	"testing"

	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operators"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

func local(name string, typ *symbols.Type) *LocalReference {
	return Build(&LocalReference{Local: symbols.NewLocal(name, typ)}, Common{Type: typ, Syntax: position.NewRef(name)})
}

func intLiteral(v int64) *Literal {
	return Build(&Literal{}, Common{
		Type:     symbols.Int32,
		Constant: symbols.NewInt(v),
		Syntax:   position.NewRef(symbols.NewInt(v).String()),
	})
}

func addition() *BinaryOperator {
	return Build(&BinaryOperator{
		OperatorKind: operators.Add,
		Left:         local("x", symbols.Int32),
		Right:        intLiteral(1),
	}, Common{Type: symbols.Int32, Syntax: position.NewRef("x + 1")})
}

func kinds(ops []Operation) []Kind {
	out := make([]Kind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind()
	}
	return out
}

func TestBuildStampsKind(t *testing.T) {
	tests := []struct {
		op   Operation
		want Kind
	}{
		{&Return{}, KindReturn},
		{&Return{Flavor: ReturnYield}, KindYieldReturn},
		{&Return{Flavor: ReturnYieldBreak}, KindYieldBreak},
		{&IncrementOrDecrement{IsIncrement: true}, KindIncrement},
		{&IncrementOrDecrement{}, KindDecrement},
		{&Invalid{}, KindInvalid},
		{&Unmodeled{Construct: "FixedStatement"}, KindNone},
		{&Empty{}, KindEmpty},
	}

	for _, tt := range tests {
		op := Build(tt.op, Common{})
		if op.Kind() != tt.want {
			t.Errorf("Build(%T) kind = %s, want %s", tt.op, op.Kind(), tt.want)
		}
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("NoSuchKind"); ok {
		t.Error("ParseKind accepted an unknown name")
	}
}

func TestChildrenFollowSlotOrder(t *testing.T) {
	cond := Build(&Literal{}, Common{Type: symbols.Boolean, Constant: symbols.NewBool(true)})
	body := Build(&Block{}, Common{})
	loop := Build(&WhileLoop{Condition: cond, Body: body}, Common{})

	got := slices.Collect(loop.Children())
	if len(got) != 2 || got[0] != Operation(body) || got[1] != Operation(cond) {
		t.Fatalf("do-while children = %v, want body then condition", kinds(got))
	}

	top := Build(&WhileLoop{
		Condition:      Build(&Literal{}, Common{Type: symbols.Boolean, Constant: symbols.NewBool(true)}),
		Body:           Build(&Block{}, Common{}),
		ConditionIsTop: true,
	}, Common{})
	if first := ChildAt(top, 0); first.Kind() != KindLiteral {
		t.Errorf("while first child = %s, want Literal", first.Kind())
	}
}

func TestChildrenIsRestartable(t *testing.T) {
	op := addition()
	first := slices.Collect(op.Children())
	second := slices.Collect(op.Children())
	if !slices.Equal(first, second) {
		t.Fatal("Children yielded different sequences on two traversals")
	}
	if len(first) != 2 {
		t.Fatalf("got %d children, want 2", len(first))
	}
}

func TestAbsentSlotsAreSkipped(t *testing.T) {
	ifOp := Build(&If{
		Condition: Build(&Literal{}, Common{Type: symbols.Boolean, Constant: symbols.NewBool(false)}),
		WhenTrue:  Build(&Block{}, Common{}),
	}, Common{})

	if n := ChildCount(ifOp); n != 2 {
		t.Errorf("ChildCount = %d, want 2", n)
	}

	slots := ifOp.Slots()
	if len(slots) != 3 || slots[2].Name != "WhenFalse" || slots[2].Items[0] != nil {
		t.Errorf("WhenFalse slot = %+v, want absent", slots[2])
	}
}

func TestTypedNilSlotIsAbsent(t *testing.T) {
	var finally *Block
	try := Build(&Try{
		Body:    Build(&Block{}, Common{}),
		Finally: finally,
	}, Common{Invalid: true})

	if n := ChildCount(try); n != 1 {
		t.Fatalf("ChildCount = %d, want 1", n)
	}
	if got := try.Slots()[2].Present(); len(got) != 0 {
		t.Errorf("Finally present items = %d, want 0", len(got))
	}
}

func TestInvalidityPropagatesUpward(t *testing.T) {
	bad := Build(&Invalid{}, Common{Invalid: true, Syntax: position.NewRef("Undefined()")})
	stmt := Build(&ExpressionStatement{Operation: bad}, Common{})
	block := Build(&Block{Operations: []Operation{stmt, Build(&Empty{}, Common{})}}, Common{})

	for _, op := range []Operation{bad, stmt, block} {
		if !op.IsInvalid() {
			t.Errorf("%s is not invalid", op.Kind())
		}
	}
	if LocallyInvalid(stmt) {
		t.Error("statement reported a local verdict it does not have")
	}
	if !LocallyInvalid(bad) {
		t.Error("Invalid node lost its local verdict")
	}
}

func TestBuildTwicePanics(t *testing.T) {
	op := Build(&Empty{}, Common{})
	defer func() {
		if recover() == nil {
			t.Error("building a node twice did not panic")
		}
	}()
	Build(op, Common{})
}

func TestBuildRejectsUnbuiltChild(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("building over an unbuilt child did not panic")
		}
	}()
	Build(&ExpressionStatement{Operation: &Empty{}}, Common{})
}

func TestPublishInstallsParents(t *testing.T) {
	op := addition()
	stmt := Build(&ExpressionStatement{Operation: op}, Common{})
	Publish(stmt)

	if stmt.Parent() != nil {
		t.Error("root has a parent")
	}
	if op.Parent() != Operation(stmt) {
		t.Error("binary operator parent is not the statement")
	}
	if op.Left.Parent() != Operation(op) || op.Right.Parent() != Operation(op) {
		t.Error("operands are not parented to the operator")
	}
	if Root(op.Right) != Operation(stmt) {
		t.Error("Root did not reach the statement")
	}
	if IndexInParent(op.Right) != 1 || IndexInParent(stmt) != -1 {
		t.Errorf("IndexInParent = %d, %d", IndexInParent(op.Right), IndexInParent(stmt))
	}
}

func TestPublishRejectsSharedNode(t *testing.T) {
	shared := intLiteral(2)
	a := Build(&ExpressionStatement{Operation: shared}, Common{})
	b := Build(&Block{Operations: []Operation{a, Build(&ExpressionStatement{Operation: shared}, Common{})}}, Common{})

	defer func() {
		if recover() == nil {
			t.Error("publishing a tree with a shared node did not panic")
		}
	}()
	Publish(b)
}

func TestDescendantsPreorder(t *testing.T) {
	stmt := Build(&ExpressionStatement{Operation: addition()}, Common{})
	Publish(stmt)

	got := kinds(slices.Collect(DescendantsAndSelf(stmt)))
	want := []Kind{KindExpressionStatement, KindBinaryOperator, KindLocalReference, KindLiteral}
	if !slices.Equal(got, want) {
		t.Errorf("DescendantsAndSelf = %v, want %v", got, want)
	}

	got = kinds(slices.Collect(Descendants(stmt)))
	if !slices.Equal(got, want[1:]) {
		t.Errorf("Descendants = %v, want %v", got, want[1:])
	}

	// Early termination must stop the walk.
	count := 0
	for range DescendantsAndSelf(stmt) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("iteration continued after break: %d", count)
	}
}

func TestFindAndWalk(t *testing.T) {
	stmt := Build(&ExpressionStatement{Operation: addition()}, Common{})
	Publish(stmt)

	if lit := Find(stmt, OfKind(KindLiteral)); lit == nil || lit.ConstantValue().String() != "1" {
		t.Errorf("Find(Literal) = %v", lit)
	}
	if Find(stmt, OfKind(KindTry)) != nil {
		t.Error("Find returned a node for an absent kind")
	}
	if refs := FindAll(stmt, OfKind(KindLocalReference)); len(refs) != 1 {
		t.Errorf("FindAll(LocalReference) returned %d nodes", len(refs))
	}

	var depths []int
	Walk(stmt, func(op Operation, depth int) bool {
		depths = append(depths, depth)
		return op.Kind() != KindBinaryOperator
	})
	if !slices.Equal(depths, []int{0, 1}) {
		t.Errorf("Walk depths = %v, want [0 1]", depths)
	}
}

func TestDump(t *testing.T) {
	op := addition()
	Publish(op)

	want := strings.Join([]string{
		"BinaryOperator (BinaryOperatorKind.Add) (Type: System.Int32) (Syntax: 'x + 1')",
		"  Left:",
		"    [0] LocalReference: x (Type: System.Int32) (Syntax: 'x')",
		"  Right:",
		"    [1] Literal (Type: System.Int32, Constant: 1) (Syntax: '1')",
		"",
	}, "\n")
	if got := Dump(op); got != want {
		t.Errorf("Dump mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpAbsentAndListSlots(t *testing.T) {
	size := Build(&Literal{}, Common{Type: symbols.Int32, Constant: symbols.NewInt(2), Implicit: true, Syntax: position.NewRef("new[] { 1, 2 }")})
	init := Build(&ArrayInitializer{ElementValues: []Operation{intLiteral(1), intLiteral(2)}}, Common{Syntax: position.NewRef("{ 1, 2 }")})
	arr := Build(&ArrayCreation{DimensionSizes: []Operation{size}, Initializer: init}, Common{
		Type:   symbols.NewArray(symbols.Int32, 1),
		Syntax: position.NewRef("new[] { 1, 2 }"),
	})
	Publish(arr)

	dump := Dump(arr)
	for _, line := range []string{
		"ArrayCreation (Type: System.Int32[]) (Syntax: 'new[] { 1, 2 }')",
		"  DimensionSizes(1):",
		"    [0] Literal (Type: System.Int32, Constant: 2, IsImplicit) (Syntax: 'new[] { 1, 2 }')",
		"  Initializer:",
		"    [1] ArrayInitializer (Type: null) (Syntax: '{ 1, 2 }')",
		"      ElementValues(2):",
	} {
		if !strings.Contains(dump, line+"\n") {
			t.Errorf("dump is missing line %q\n%s", line, dump)
		}
	}

	empty := Build(&Return{}, Common{Syntax: position.NewRef("return;")})
	if got := Dump(empty); !strings.Contains(got, "  ReturnedValue: null\n") {
		t.Errorf("absent slot not printed as null:\n%s", got)
	}
}

func TestDumpConversionAnnotation(t *testing.T) {
	conv := Build(&Conversion{
		Operand:    intLiteral(1),
		Conversion: conversion.Classify(conversion.ImplicitNumeric, nil),
	}, Common{Type: symbols.Int64, Constant: symbols.NewInt(1), Implicit: true, Syntax: position.NewRef("1")})

	dump := Dump(conv)
	if !strings.HasPrefix(dump, "Conversion (TryCast: False) (Unchecked) (Type: System.Int64, Constant: 1, IsImplicit) (Syntax: '1')\n") {
		t.Errorf("unexpected header:\n%s", dump)
	}
	if !strings.Contains(dump, "  Conversion: (Exists: True, IsIdentity: False, IsNumeric: True, IsReference: False, IsUserDefined: False) (OperatorMethod: null)\n") {
		t.Errorf("conversion metadata missing:\n%s", dump)
	}
}

func TestVerifyAcceptsWellFormedTree(t *testing.T) {
	stmt := Build(&ExpressionStatement{Operation: addition()}, Common{})
	Publish(stmt)
	if errs := Verify(stmt); len(errs) != 0 {
		t.Errorf("unexpected violations:\n%s", Summary(errs))
	}
}

func TestVerifyReportsMissingParts(t *testing.T) {
	bin := Build(&BinaryOperator{OperatorKind: operators.Add, Left: intLiteral(1)}, Common{Type: symbols.Int32})
	Publish(bin)

	errs := Verify(bin)
	if len(errs) != 1 || errs[0].Kind != ErrorKindMissingRequired {
		t.Fatalf("violations = %v, want one missing-required", errs)
	}
}

func TestVerifyReportsUnpublishedTree(t *testing.T) {
	stmt := Build(&ExpressionStatement{Operation: addition()}, Common{})

	errs := Verify(stmt)
	if len(errs) == 0 {
		t.Fatal("unpublished tree passed verification")
	}
	for _, e := range errs {
		if e.Kind != ErrorKindParentLink {
			t.Errorf("unexpected violation %v", e)
		}
	}
}

func TestVerifyArrayRank(t *testing.T) {
	arr := Build(&ArrayCreation{DimensionSizes: []Operation{intLiteral(2)}}, Common{Type: symbols.NewArray(symbols.Int32, 2)})
	Publish(arr)

	errs := Verify(arr)
	if len(errs) != 1 || errs[0].Kind != ErrorKindTypeInconsistency {
		t.Errorf("violations = %v, want one rank mismatch", errs)
	}
}
