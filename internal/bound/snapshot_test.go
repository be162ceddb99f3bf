package bound

import (
	"strings"
	"testing"

	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/symbols"
)

const sample = `{
  "format": "1.2.0",
  "file": "Program.cs",
  "source": "int x = 1; long y = x;",
  "types": [
    {"name": "Point", "kind": "Struct", "interfaces": ["System.IDisposable"]},
    {"name": "System.IDisposable", "kind": "Interface"}
  ],
  "symbols": {
    "x": {"kind": "Local", "name": "x", "type": "int"},
    "y": {"kind": "Local", "name": "y", "type": "long"},
    "M": {"kind": "Method", "name": "M", "container": "Point", "type": "void", "parameters": ["M.a"], "virtual": true},
    "M.a": {"kind": "Parameter", "name": "a", "type": "int", "refKind": "Ref", "hasDefault": true, "default": 5}
  },
  "regions": [{
    "name": "Main",
    "root": {
      "node": "Block",
      "syntax": {"start": 0, "end": 22},
      "locals": ["x", "y"],
      "statements": [
        {"node": "LocalDeclaration", "syntax": {"start": 0, "end": 10}, "local": "x",
         "initializer": {"node": "Literal", "syntax": {"start": 8, "end": 9}, "type": "int", "constant": 1}},
        {"node": "LocalDeclaration", "syntax": {"start": 11, "end": 22}, "local": "y",
         "initializer": {"node": "Conversion", "syntax": "x", "type": "long", "kind": "ImplicitNumeric",
           "operand": {"node": "Local", "syntax": "x", "type": "int", "symbol": "x"}}},
        null
      ]
    }
  }]
}`

func decode(t *testing.T, doc string) (*Snapshot, error) {
	t.Helper()
	return DecodeSnapshot("test.json", strings.NewReader(doc))
}

func TestDecodeSnapshot(t *testing.T) {
	s, err := decode(t, sample)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if s.Format.String() != "1.2.0" || s.File != "Program.cs" {
		t.Errorf("header = %s %s", s.Format, s.File)
	}

	point := s.Types.Lookup("Point")
	if point == nil || point.Kind != symbols.TypeKindStruct || len(point.Interfaces) != 1 {
		t.Fatalf("Point = %+v", point)
	}
	if point.Interfaces[0] != s.Types.Lookup("System.IDisposable") {
		t.Error("interface reference not interned")
	}

	m := s.Symbols["M"]
	if !m.Virtual || m.Container != point || len(m.Parameters) != 1 || m.Parameters[0] != s.Symbols["M.a"] {
		t.Errorf("M = %+v", m)
	}
	if a := m.Parameters[0]; a.RefKind != symbols.RefRef || !a.HasDefault || a.Default.String() != "5" {
		t.Errorf("M.a = %+v", a)
	}

	region := s.Region("Main")
	if region == nil {
		t.Fatal("region Main missing")
	}
	block, ok := region.Root.(*Block)
	if !ok {
		t.Fatalf("root = %T", region.Root)
	}
	if len(block.Statements) != 3 || block.Statements[2] != nil {
		t.Fatalf("statements = %v", block.Statements)
	}
	if block.Syntax.Text != "int x = 1; long y = x;" || block.Syntax.Span.Start.Line != 1 {
		t.Errorf("block syntax = %s", block.Syntax)
	}

	first := block.Statements[0].(*LocalDeclaration)
	if first.Local != s.Symbols["x"] || first.Syntax.Text != "int x = 1;" {
		t.Errorf("first declaration = %+v", first)
	}
	if lit := first.Initializer.(*Literal); lit.Constant.String() != "1" || lit.Syntax.Text != "1" {
		t.Errorf("literal = %+v", lit)
	}

	conv := block.Statements[1].(*LocalDeclaration).Initializer.(*Conversion)
	if conv.Kind != conversion.ImplicitNumeric || conv.Type != symbols.Int64 {
		t.Errorf("conversion = %v to %s", conv.Kind, conv.Type)
	}
	if local := conv.Operand.(*Local); local.Symbol != s.Symbols["x"] {
		t.Error("operand symbol not interned")
	}
}

func TestDecodeSnapshotFlattensArgumentList(t *testing.T) {
	doc := `{
  "format": "1.0.0",
  "types": [{"name": "C", "kind": "Class"}],
  "symbols": {
    "C.M": {"kind": "Method", "name": "M", "container": "C", "type": "void", "static": true, "parameters": ["p"]},
    "p": {"kind": "Parameter", "name": "p", "type": "char"}
  },
  "regions": [{"name": "R", "root": {
    "node": "Call", "syntax": "C.M('a')", "type": "void", "method": "C.M",
    "arguments": [{"node": "Literal", "syntax": "'a'", "type": "char", "constant": {"char": "a"}}],
    "argumentNames": ["p"], "argumentRefKinds": ["None"], "argsToParams": [0]
  }}]
}`
	s, err := decode(t, doc)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	call := s.Regions[0].Root.(*Call)
	if call.Method != s.Symbols["C.M"] || len(call.Arguments) != 1 {
		t.Fatalf("call = %+v", call)
	}
	if call.ArgumentNames[0] != "p" || call.ArgumentRefKinds[0] != symbols.RefNone || call.ArgsToParams[0] != 0 {
		t.Errorf("argument list = %+v", call.ArgumentList)
	}
	if c := call.Arguments[0].Info().Constant; c.Format(symbols.Char) != "'a'" {
		t.Errorf("char constant = %s", c)
	}
}

func TestDecodeSnapshotMemberBody(t *testing.T) {
	doc := `{
  "format": "1.0.0",
  "types": [{"name": "Base", "kind": "Class"}, {"name": "Derived", "kind": "Class", "base": "Base"}],
  "symbols": {"Base.M": {"kind": "Method", "name": "M", "container": "Base", "type": "void"}},
  "regions": [{"name": "Derived.N", "root": {
    "node": "MemberBody", "syntax": "{ M(); }", "container": "Derived",
    "body": {"node": "Block", "syntax": "{ M(); }", "statements": [
      {"node": "ExpressionStatement", "syntax": "M();",
       "expression": {"node": "Call", "syntax": "M()", "type": "void", "method": "Base.M"}}
    ]}
  }}]
}`
	s, err := decode(t, doc)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	body, ok := s.Regions[0].Root.(*MemberBody)
	if !ok {
		t.Fatalf("root = %T", s.Regions[0].Root)
	}
	if body.Container != s.Types.Lookup("Derived") || body.Container.Base != s.Types.Lookup("Base") {
		t.Errorf("container = %s", body.Container)
	}
	if block, ok := body.Body.(*Block); !ok || len(block.Statements) != 1 {
		t.Errorf("body = %+v", body.Body)
	}
}

func TestDecodeSnapshotRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
	}{
		{"missing format", `{"regions": []}`, "INVALID_SNAPSHOT"},
		{"bad format", `{"format": "one"}`, "INVALID_SNAPSHOT"},
		{"future format", `{"format": "2.0.0"}`, "UNSUPPORTED_FORMAT"},
		{"unknown node", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Telepathy"}}]}`, "INVALID_SNAPSHOT"},
		{"unknown field", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Empty", "colour": 1}}]}`, "INVALID_SNAPSHOT"},
		{"unknown symbol", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Local", "symbol": "ghost"}}]}`, "INVALID_SNAPSHOT"},
		{"bad type", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Literal", "type": "Missing"}}]}`, "INVALID_SNAPSHOT"},
		{"offsets without source", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Empty", "syntax": {"start": 0, "end": 1}}}]}`, "INVALID_SNAPSHOT"},
		{"wrong typed slot", `{"format": "1.0.0", "regions": [{"name": "R", "root": {"node": "Try", "tryBlock": {"node": "Empty"}}}]}`, "INVALID_SNAPSHOT"},
		{"no root", `{"format": "1.0.0", "regions": [{"name": "R"}]}`, "INVALID_SNAPSHOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(t, tt.doc)
			se, ok := err.(*errors.StandardError)
			if !ok {
				t.Fatalf("error = %v, want a StandardError", err)
			}
			if se.Category != errors.CategorySnapshot || se.Code != tt.code {
				t.Errorf("error = %v, want %s", se, tt.code)
			}
		})
	}
}
