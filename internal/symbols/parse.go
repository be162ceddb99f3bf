package symbols

import (
	"fmt"
	"strings"
	"unicode"
)

var keywordTypes = map[string]*Type{
	"object":  Object,
	"void":    Void,
	"bool":    Boolean,
	"char":    Char,
	"sbyte":   SByte,
	"byte":    Byte,
	"short":   Int16,
	"ushort":  UInt16,
	"int":     Int32,
	"uint":    UInt32,
	"long":    Int64,
	"ulong":   UInt64,
	"decimal": Decimal,
	"float":   Single,
	"double":  Double,
	"string":  String,
	"dynamic": Dynamic,
}

// Universe resolves type names for tools that describe bound trees textually.
// Predefined types are always present; user types are declared up front.
type Universe struct {
	named map[string]*Type
}

// NewUniverse returns a universe holding the predefined types.
func NewUniverse() *Universe {
	u := &Universe{named: make(map[string]*Type)}
	for _, t := range predefined {
		u.named[t.Name] = t
	}
	u.named[Dynamic.Name] = Dynamic
	return u
}

// Declare registers a named type. Redeclaring a name returns the existing
// type so that references resolve to a single instance.
func (u *Universe) Declare(t *Type) *Type {
	if prev, ok := u.named[t.Name]; ok {
		return prev
	}
	u.named[t.Name] = t
	return t
}

// Lookup returns the named type or nil.
func (u *Universe) Lookup(name string) *Type {
	if t, ok := keywordTypes[name]; ok {
		return t
	}
	return u.named[name]
}

// Parse resolves a type expression such as "int[]", "(int a, string b)",
// "System.Int32?" or "C*".
func (u *Universe) Parse(expr string) (*Type, error) {
	p := &typeParser{src: expr, u: u}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("type %q: unexpected %q", expr, p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src string
	pos int
	u   *Universe
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) parse() (*Type, error) {
	p.skipSpace()
	var t *Type
	if p.pos < len(p.src) && p.src[p.pos] == '(' {
		tuple, err := p.parseTuple()
		if err != nil {
			return nil, err
		}
		t = tuple
	} else {
		name := p.ident()
		if name == "" {
			return nil, fmt.Errorf("type %q: expected a type name at offset %d", p.src, p.pos)
		}
		t = p.u.Lookup(name)
		if t == nil {
			return nil, fmt.Errorf("type %q: unknown type %q", p.src, name)
		}
	}
	return p.suffixes(t)
}

func (p *typeParser) parseTuple() (*Type, error) {
	p.pos++ // (
	var elems []TupleElement
	for {
		et, err := p.parse()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		elem := TupleElement{Type: et}
		if p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != ')' {
			elem.Name = p.ident()
		}
		elems = append(elems, elem)
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("type %q: unterminated tuple", p.src)
		}
		if p.src[p.pos] == ')' {
			p.pos++
			break
		}
		if p.src[p.pos] != ',' {
			return nil, fmt.Errorf("type %q: expected ',' at offset %d", p.src, p.pos)
		}
		p.pos++
	}
	if len(elems) < 2 {
		return nil, fmt.Errorf("type %q: tuples need at least two elements", p.src)
	}
	return NewTuple(elems...), nil
}

func (p *typeParser) suffixes(t *Type) (*Type, error) {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '[':
			end := strings.IndexByte(p.src[p.pos:], ']')
			if end < 0 {
				return nil, fmt.Errorf("type %q: unterminated array rank", p.src)
			}
			rank := 1 + strings.Count(p.src[p.pos:p.pos+end], ",")
			p.pos += end + 1
			t = NewArray(t, rank)
		case '?':
			p.pos++
			t = NewNullable(t)
		case '*':
			p.pos++
			t = NewPointer(t)
		default:
			return t, nil
		}
	}
	return t, nil
}

func (p *typeParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || r == '`' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
