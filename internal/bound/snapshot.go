package bound

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	"github.com/orizon-lang/optree/internal/errors"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// SupportedFormat is the range of snapshot format versions this build reads.
const SupportedFormat = ">= 1.0.0, < 2.0.0"

var supported = mustConstraint(SupportedFormat)

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// Snapshot is a bound tree serialized by a binder, split into the regions
// that were bound (typically one per method body).
//
// The JSON layout is:
//
//	{
//	  "format":  "1.0.0",
//	  "file":    "Program.cs",
//	  "source":  "...",                        // optional; enables offset syntax
//	  "types":   [{"name": "C", "kind": "Class", "base": "object"}],
//	  "symbols": {"x": {"kind": "Local", "name": "x", "type": "int"}},
//	  "regions": [{"name": "M", "root": {"node": "Block", ...}}]
//	}
//
// Every bound node is an object whose "node" key names its Go type. Its
// fields, including those of the embedded Header and ArgumentList, follow
// as lowerCamel keys. Types are written as type expressions, symbols by
// their key in "symbols", constants as JSON scalars, and syntax either as
// the covered text or as {"start": n, "end": m} offsets into "source".
type Snapshot struct {
	Format  *semver.Version
	File    string
	Source  *position.SourceFile
	Types   *symbols.Universe
	Symbols map[string]*symbols.Symbol
	Regions []Region
}

// Region is one bound tree of a snapshot.
type Region struct {
	Name string
	Root Node
}

// Region returns the named region or nil.
func (s *Snapshot) Region(name string) *Region {
	for i := range s.Regions {
		if s.Regions[i].Name == name {
			return &s.Regions[i]
		}
	}
	return nil
}

type snapshotFile struct {
	Format  string                  `json:"format"`
	File    string                  `json:"file"`
	Source  *string                 `json:"source"`
	Types   []typeRecord            `json:"types"`
	Symbols map[string]symbolRecord `json:"symbols"`
	Regions []struct {
		Name string          `json:"name"`
		Root json.RawMessage `json:"root"`
	} `json:"regions"`
}

type typeRecord struct {
	Name       string           `json:"name"`
	Kind       symbols.TypeKind `json:"kind"`
	Base       string           `json:"base"`
	Underlying string           `json:"underlying"`
	Interfaces []string         `json:"interfaces"`
}

type symbolRecord struct {
	Kind       symbols.SymbolKind `json:"kind"`
	Name       string             `json:"name"`
	Type       string             `json:"type"`
	Container  string             `json:"container"`
	Static     bool               `json:"static"`
	MethodKind symbols.MethodKind `json:"methodKind"`
	Parameters []string           `json:"parameters"`
	Virtual    bool               `json:"virtual"`
	RefKind    symbols.RefKind    `json:"refKind"`
	IsParams   bool               `json:"isParams"`
	HasDefault bool               `json:"hasDefault"`
	Default    json.RawMessage    `json:"default"`
	IsConst    bool               `json:"isConst"`
	ConstValue json.RawMessage    `json:"constValue"`
}

// LoadSnapshot reads and decodes the snapshot file at path.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategorySnapshot, "SNAPSHOT_READ",
			"Cannot read snapshot", map[string]interface{}{"path": path})
	}
	defer f.Close()
	return DecodeSnapshot(path, f)
}

// DecodeSnapshot decodes a snapshot. name is used only in error messages.
func DecodeSnapshot(name string, r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategorySnapshot, "SNAPSHOT_READ",
			"Cannot read snapshot", map[string]interface{}{"path": name})
	}

	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.InvalidSnapshot(name, err.Error())
	}
	if f.Format == "" {
		return nil, errors.InvalidSnapshot(name, "missing format")
	}
	v, err := semver.NewVersion(f.Format)
	if err != nil {
		return nil, errors.InvalidSnapshot(name, fmt.Sprintf("format %q: %v", f.Format, err))
	}
	if !supported.Check(v) {
		return nil, errors.UnsupportedFormat(v.String(), SupportedFormat)
	}

	d := &decoder{
		name:     name,
		universe: symbols.NewUniverse(),
		symbols:  make(map[string]*symbols.Symbol, len(f.Symbols)),
	}
	if f.Source != nil {
		d.source = position.NewSourceFile(f.File, *f.Source)
	}
	if err := d.declareTypes(f.Types); err != nil {
		return nil, err
	}
	if err := d.declareSymbols(f.Symbols); err != nil {
		return nil, err
	}

	s := &Snapshot{
		Format:  v,
		File:    f.File,
		Source:  d.source,
		Types:   d.universe,
		Symbols: d.symbols,
		Regions: make([]Region, 0, len(f.Regions)),
	}
	for i, r := range f.Regions {
		at := fmt.Sprintf("regions[%d]", i)
		if r.Name == "" {
			return nil, d.fail(at, "region has no name")
		}
		root, err := d.node(r.Root, at+".root")
		if err != nil {
			return nil, err
		}
		if root == nil {
			return nil, d.fail(at, "region has no root")
		}
		s.Regions = append(s.Regions, Region{Name: r.Name, Root: root})
	}
	return s, nil
}

type decoder struct {
	name     string
	universe *symbols.Universe
	symbols  map[string]*symbols.Symbol
	source   *position.SourceFile
}

func (d *decoder) fail(at, format string, args ...interface{}) error {
	return errors.InvalidSnapshot(d.name, at+": "+fmt.Sprintf(format, args...))
}

// declareTypes registers every named type before resolving any reference
// between them.
func (d *decoder) declareTypes(recs []typeRecord) error {
	declared := make([]*symbols.Type, len(recs))
	for i, r := range recs {
		if r.Name == "" {
			return d.fail(fmt.Sprintf("types[%d]", i), "type has no name")
		}
		declared[i] = d.universe.Declare(symbols.NewNamed(r.Kind, r.Name))
	}
	for i, r := range recs {
		at := fmt.Sprintf("types[%d]", i)
		t := declared[i]
		var err error
		if r.Base != "" {
			if t.Base, err = d.typ(r.Base, at+".base"); err != nil {
				return err
			}
		}
		if r.Underlying != "" {
			if t.Elem, err = d.typ(r.Underlying, at+".underlying"); err != nil {
				return err
			}
		}
		for j, name := range r.Interfaces {
			iface, err := d.typ(name, fmt.Sprintf("%s.interfaces[%d]", at, j))
			if err != nil {
				return err
			}
			t.Interfaces = append(t.Interfaces, iface)
		}
	}
	return nil
}

// declareSymbols creates every symbol first so that parameters can refer to
// symbols declared later in the table.
func (d *decoder) declareSymbols(recs map[string]symbolRecord) error {
	for key := range recs {
		d.symbols[key] = new(symbols.Symbol)
	}
	for key, r := range recs {
		at := "symbols." + key
		s := d.symbols[key]
		*s = symbols.Symbol{
			Kind:       r.Kind,
			Name:       r.Name,
			Static:     r.Static,
			MethodKind: r.MethodKind,
			Virtual:    r.Virtual,
			RefKind:    r.RefKind,
			IsParams:   r.IsParams,
			HasDefault: r.HasDefault,
			IsConst:    r.IsConst,
		}
		var err error
		if r.Type != "" {
			if s.Type, err = d.typ(r.Type, at+".type"); err != nil {
				return err
			}
		}
		if r.Container != "" {
			if s.Container, err = d.typ(r.Container, at+".container"); err != nil {
				return err
			}
		}
		for i, p := range r.Parameters {
			ps, ok := d.symbols[p]
			if !ok {
				return d.fail(fmt.Sprintf("%s.parameters[%d]", at, i), "unknown symbol %q", p)
			}
			s.Parameters = append(s.Parameters, ps)
		}
		if s.Default, err = d.constant(r.Default, at+".default"); err != nil {
			return err
		}
		if s.ConstValue, err = d.constant(r.ConstValue, at+".constValue"); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) typ(expr, at string) (*symbols.Type, error) {
	t, err := d.universe.Parse(expr)
	if err != nil {
		return nil, d.fail(at, "%v", err)
	}
	return t, nil
}

// constant decodes a JSON scalar. An absent value is no constant; an
// explicit null is the null constant. Characters are written {"char": "c"}.
func (d *decoder) constant(raw json.RawMessage, at string) (*symbols.Constant, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	switch raw[0] {
	case 'n':
		return symbols.Null(), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, d.fail(at, "%v", err)
		}
		return symbols.NewBool(b), nil
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, d.fail(at, "%v", err)
		}
		return symbols.NewString(s), nil
	case '{':
		var c struct {
			Char string `json:"char"`
		}
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, d.fail(at, "%v", err)
		}
		r, size := utf8.DecodeRuneInString(c.Char)
		if size == 0 || size != len(c.Char) {
			return nil, d.fail(at, "char constant must hold one character")
		}
		return symbols.NewChar(r), nil
	}

	text := string(raw)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return symbols.NewInt(i), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return symbols.NewUint(u), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, d.fail(at, "unsupported constant %s", text)
	}
	return symbols.NewFloat(f), nil
}

func (d *decoder) ref(raw json.RawMessage, at string) (position.Ref, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return position.NewRef(text), nil
	}

	var span struct {
		Start *int    `json:"start"`
		End   *int    `json:"end"`
		Text  *string `json:"text"`
	}
	if err := json.Unmarshal(raw, &span); err != nil {
		return position.Ref{}, d.fail(at, "syntax must be text or an offset range")
	}
	if span.Start == nil || span.End == nil {
		if span.Text != nil {
			return position.NewRef(*span.Text), nil
		}
		return position.Ref{}, d.fail(at, "syntax has neither text nor offsets")
	}
	if d.source == nil {
		return position.Ref{}, d.fail(at, "offset syntax needs the snapshot source")
	}
	if *span.Start < 0 || *span.End < *span.Start || *span.End > len(d.source.Content) {
		return position.Ref{}, d.fail(at, "offsets [%d,%d) out of range", *span.Start, *span.End)
	}
	r := d.source.RefFromOffsets(*span.Start, *span.End)
	if span.Text != nil {
		r.Text = *span.Text
	}
	return r, nil
}

var (
	nodeType     = reflect.TypeOf((*Node)(nil)).Elem()
	typeType     = reflect.TypeOf((*symbols.Type)(nil))
	symbolType   = reflect.TypeOf((*symbols.Symbol)(nil))
	constantType = reflect.TypeOf((*symbols.Constant)(nil))
	refType      = reflect.TypeOf(position.Ref{})
	boundPkg     = reflect.TypeOf(Header{}).PkgPath()
)

// nodeTypes maps the "node" key of a snapshot object to its Go type.
var nodeTypes = func() map[string]reflect.Type {
	m := make(map[string]reflect.Type)
	for _, n := range []Node{
		(*Literal)(nil), (*Local)(nil), (*Parameter)(nil), (*This)(nil), (*ImplicitReceiver)(nil),
		(*TypeExpression)(nil), (*FieldAccess)(nil), (*PropertyAccess)(nil), (*IndexerAccess)(nil),
		(*EventAccess)(nil), (*MethodGroup)(nil), (*ArrayAccess)(nil), (*Call)(nil),
		(*ObjectCreation)(nil), (*NewT)(nil), (*DynamicObjectCreation)(nil), (*AnonymousObjectCreation)(nil),
		(*DelegateCreation)(nil), (*ArrayCreation)(nil), (*ArrayInitialization)(nil),
		(*ObjectInitializer)(nil), (*CollectionInitializer)(nil), (*ObjectInitializerMember)(nil),
		(*CollectionElementInitializer)(nil), (*DynamicCollectionElementInitializer)(nil),
		(*Unary)(nil), (*Binary)(nil), (*CompoundAssignment)(nil), (*Assignment)(nil),
		(*IncrementDecrement)(nil), (*Conditional)(nil), (*NullCoalescing)(nil), (*Conversion)(nil),
		(*IsOperator)(nil), (*IsPattern)(nil), (*ConstantPattern)(nil), (*DeclarationPattern)(nil),
		(*Lambda)(nil), (*UnboundLambda)(nil), (*TupleLiteral)(nil), (*ConvertedTupleLiteral)(nil),
		(*DeconstructionAssignment)(nil), (*DeclarationExpression)(nil), (*InterpolatedString)(nil),
		(*StringInsert)(nil), (*DynamicMemberAccess)(nil), (*DynamicInvocation)(nil),
		(*DynamicIndexerAccess)(nil), (*Await)(nil), (*DefaultExpression)(nil), (*TypeOf)(nil),
		(*SizeOf)(nil), (*NameOf)(nil), (*AddressOf)(nil), (*ConditionalAccess)(nil),
		(*ConditionalReceiver)(nil), (*ThrowExpression)(nil), (*EventAssignment)(nil), (*Query)(nil),
		(*QueryClause)(nil), (*RangeVariable)(nil), (*BadExpression)(nil), (*Unmodeled)(nil),
		(*Block)(nil), (*ExpressionStatement)(nil), (*LocalDeclaration)(nil),
		(*MultipleLocalDeclarations)(nil), (*Return)(nil), (*YieldReturn)(nil), (*YieldBreak)(nil),
		(*If)(nil), (*While)(nil), (*DoWhile)(nil), (*For)(nil), (*ForEach)(nil), (*Break)(nil),
		(*Continue)(nil), (*Goto)(nil), (*Labeled)(nil), (*Empty)(nil), (*Switch)(nil),
		(*SwitchSection)(nil), (*SwitchLabel)(nil), (*Throw)(nil), (*Try)(nil), (*Catch)(nil),
		(*Using)(nil), (*Lock)(nil), (*LocalFunction)(nil), (*MemberBody)(nil), (*BadStatement)(nil),
	} {
		t := reflect.TypeOf(n).Elem()
		m[t.Name()] = t
	}
	return m
}()

// node decodes a polymorphic node. null decodes to no node.
func (d *decoder) node(raw json.RawMessage, at string) (Node, error) {
	obj, err := d.object(raw, at)
	if err != nil || obj == nil {
		return nil, err
	}
	kindRaw, ok := obj["node"]
	if !ok {
		return nil, d.fail(at, `object has no "node" key`)
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil {
		return nil, d.fail(at, `"node" must be a string`)
	}
	t, ok := nodeTypes[kind]
	if !ok {
		return nil, d.fail(at, "unknown node %q", kind)
	}
	p := reflect.New(t)
	if err := d.fields(obj, p.Elem(), at); err != nil {
		return nil, err
	}
	return p.Interface().(Node), nil
}

func (d *decoder) object(raw json.RawMessage, at string) (map[string]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, d.fail(at, "expected an object: %v", err)
	}
	return obj, nil
}

// fields fills the struct v from obj and rejects keys that name no field.
func (d *decoder) fields(obj map[string]json.RawMessage, v reflect.Value, at string) error {
	delete(obj, "node")
	if err := d.fill(obj, v, at); err != nil {
		return err
	}
	for key := range obj {
		return d.fail(at, "unknown field %q for %s", key, v.Type().Name())
	}
	return nil
}

// fill consumes the keys of obj that name fields of v. Embedded structs are
// flattened into the same object.
func (d *decoder) fill(obj map[string]json.RawMessage, v reflect.Value, at string) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if err := d.fill(obj, v.Field(i), at); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		key := lowerCamel(f.Name)
		raw, ok := obj[key]
		if !ok {
			continue
		}
		delete(obj, key)
		if err := d.value(raw, v.Field(i), at+"."+key); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) value(raw json.RawMessage, v reflect.Value, at string) error {
	t := v.Type()
	switch {
	case t == nodeType:
		n, err := d.node(raw, at)
		if err != nil {
			return err
		}
		if n != nil {
			v.Set(reflect.ValueOf(n))
		}
		return nil

	case t == refType:
		r, err := d.ref(raw, at)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(r))
		return nil

	case t == constantType:
		c, err := d.constant(raw, at)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(c))
		return nil

	case t == typeType, t == symbolType:
		var name *string
		if err := json.Unmarshal(raw, &name); err != nil {
			return d.fail(at, "expected a string")
		}
		if name == nil {
			return nil
		}
		if t == typeType {
			typ, err := d.typ(*name, at)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(typ))
			return nil
		}
		s, ok := d.symbols[*name]
		if !ok {
			return d.fail(at, "unknown symbol %q", *name)
		}
		v.Set(reflect.ValueOf(s))
		return nil

	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct && t.Elem().PkgPath() == boundPkg:
		obj, err := d.object(raw, at)
		if err != nil || obj == nil {
			return err
		}
		if kind, ok := obj["node"]; ok && string(bytes.TrimSpace(kind)) != strconv.Quote(t.Elem().Name()) {
			return d.fail(at, "expected %s, got %s", t.Elem().Name(), kind)
		}
		p := reflect.New(t.Elem())
		if err := d.fields(obj, p.Elem(), at); err != nil {
			return err
		}
		v.Set(p)
		return nil

	case t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return d.fail(at, "expected an array")
		}
		if items == nil {
			return nil
		}
		s := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			if err := d.value(item, s.Index(i), fmt.Sprintf("%s[%d]", at, i)); err != nil {
				return err
			}
		}
		v.Set(s)
		return nil
	}

	if err := json.Unmarshal(raw, v.Addr().Interface()); err != nil {
		return d.fail(at, "%v", err)
	}
	return nil
}

func lowerCamel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
