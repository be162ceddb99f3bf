package symbols

import (
	"fmt"
	"strings"
)

// SymbolKind is the kind of a resolved symbol.
type SymbolKind int

const (
	SymbolLocal SymbolKind = iota
	SymbolParameter
	SymbolField
	SymbolProperty
	SymbolEvent
	SymbolMethod
	SymbolNamedType
	SymbolRangeVariable
	SymbolLabel
)

var symbolKindNames = [...]string{
	SymbolLocal:         "Local",
	SymbolParameter:     "Parameter",
	SymbolField:         "Field",
	SymbolProperty:      "Property",
	SymbolEvent:         "Event",
	SymbolMethod:        "Method",
	SymbolNamedType:     "NamedType",
	SymbolRangeVariable: "RangeVariable",
	SymbolLabel:         "Label",
}

func (k SymbolKind) String() string {
	if int(k) < len(symbolKindNames) {
		return symbolKindNames[k]
	}
	return "SymbolKind(?)"
}

// UnmarshalText parses a symbol kind by name.
func (k *SymbolKind) UnmarshalText(text []byte) error {
	i, err := lookupName(symbolKindNames[:], string(text), "symbol kind")
	*k = SymbolKind(i)
	return err
}

// MethodKind distinguishes the flavours of method symbols.
type MethodKind int

const (
	MethodOrdinary MethodKind = iota
	MethodConstructor
	MethodUserDefinedOperator
	MethodConversion
	MethodLocalFunction
	MethodAnonymousFunction
	MethodDelegateInvoke
	MethodPropertyGet
	MethodPropertySet
	MethodEventAdd
	MethodEventRemove
)

var methodKindNames = [...]string{
	MethodOrdinary:            "Ordinary",
	MethodConstructor:         "Constructor",
	MethodUserDefinedOperator: "UserDefinedOperator",
	MethodConversion:          "Conversion",
	MethodLocalFunction:       "LocalFunction",
	MethodAnonymousFunction:   "AnonymousFunction",
	MethodDelegateInvoke:      "DelegateInvoke",
	MethodPropertyGet:         "PropertyGet",
	MethodPropertySet:         "PropertySet",
	MethodEventAdd:            "EventAdd",
	MethodEventRemove:         "EventRemove",
}

func (k MethodKind) String() string {
	if int(k) < len(methodKindNames) {
		return methodKindNames[k]
	}
	return "MethodKind(?)"
}

// UnmarshalText parses a method kind by name.
func (k *MethodKind) UnmarshalText(text []byte) error {
	i, err := lookupName(methodKindNames[:], string(text), "method kind")
	*k = MethodKind(i)
	return err
}

// RefKind is how a parameter or argument is passed.
type RefKind int

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

var refKindNames = [...]string{RefNone: "None", RefRef: "Ref", RefOut: "Out", RefIn: "In"}

func (k RefKind) String() string {
	if int(k) < len(refKindNames) {
		return refKindNames[k]
	}
	return "RefKind(?)"
}

// UnmarshalText parses a ref kind by name.
func (k *RefKind) UnmarshalText(text []byte) error {
	i, err := lookupName(refKindNames[:], string(text), "ref kind")
	*k = RefKind(i)
	return err
}

func lookupName(names []string, name, what string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, name)
}

// Symbol is a resolved named entity. Only the fields relevant to Kind are
// populated.
type Symbol struct {
	Kind      SymbolKind
	Name      string
	Type      *Type // variable/member type; return type for methods
	Container *Type
	Static    bool

	// Methods.
	MethodKind MethodKind
	Parameters []*Symbol
	// Virtual marks virtual, abstract and override methods.
	Virtual bool

	// Parameters.
	RefKind    RefKind
	IsParams   bool
	HasDefault bool
	Default    *Constant

	// Constant locals and fields.
	IsConst    bool
	ConstValue *Constant
}

// NewLocal creates a local variable symbol.
func NewLocal(name string, typ *Type) *Symbol {
	return &Symbol{Kind: SymbolLocal, Name: name, Type: typ}
}

// NewParameter creates a by-value parameter symbol.
func NewParameter(name string, typ *Type) *Symbol {
	return &Symbol{Kind: SymbolParameter, Name: name, Type: typ}
}

// NewField creates a field symbol.
func NewField(container *Type, name string, typ *Type, static bool) *Symbol {
	return &Symbol{Kind: SymbolField, Name: name, Type: typ, Container: container, Static: static}
}

// NewProperty creates a property symbol. Indexers are properties with
// parameters.
func NewProperty(container *Type, name string, typ *Type, static bool, params ...*Symbol) *Symbol {
	return &Symbol{Kind: SymbolProperty, Name: name, Type: typ, Container: container, Static: static, Parameters: params}
}

// NewEvent creates an event symbol.
func NewEvent(container *Type, name string, typ *Type, static bool) *Symbol {
	return &Symbol{Kind: SymbolEvent, Name: name, Type: typ, Container: container, Static: static}
}

// NewMethod creates an ordinary method symbol.
func NewMethod(container *Type, name string, ret *Type, static bool, params ...*Symbol) *Symbol {
	return &Symbol{Kind: SymbolMethod, Name: name, Type: ret, Container: container, Static: static, Parameters: params}
}

// NewConstructor creates an instance constructor symbol for container.
func NewConstructor(container *Type, params ...*Symbol) *Symbol {
	return &Symbol{
		Kind:       SymbolMethod,
		Name:       ".ctor",
		Type:       Void,
		Container:  container,
		MethodKind: MethodConstructor,
		Parameters: params,
	}
}

// IsIndexer reports whether s is a property that takes arguments.
func (s *Symbol) IsIndexer() bool {
	return s != nil && s.Kind == SymbolProperty && len(s.Parameters) > 0
}

// ParamsParameter returns the trailing params-array parameter, if any.
func (s *Symbol) ParamsParameter() *Symbol {
	if s == nil || len(s.Parameters) == 0 {
		return nil
	}
	last := s.Parameters[len(s.Parameters)-1]
	if last.IsParams {
		return last
	}
	return nil
}

// String renders the symbol as dumps print it: locals and parameters by
// name, members qualified by their container, methods with their signature.
func (s *Symbol) String() string {
	if s == nil {
		return "null"
	}
	switch s.Kind {
	case SymbolLocal, SymbolParameter, SymbolRangeVariable, SymbolLabel:
		return s.Name
	case SymbolMethod:
		var b strings.Builder
		if s.Type != nil {
			b.WriteString(s.Type.String())
			b.WriteByte(' ')
		}
		b.WriteString(s.qualifiedName())
		b.WriteByte('(')
		for i, p := range s.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.RefKind != RefNone {
				b.WriteString(strings.ToLower(p.RefKind.String()))
				b.WriteByte(' ')
			}
			if p.IsParams {
				b.WriteString("params ")
			}
			b.WriteString(p.Type.String())
			if p.Name != "" {
				b.WriteByte(' ')
				b.WriteString(p.Name)
			}
		}
		b.WriteByte(')')
		return b.String()
	case SymbolProperty:
		if s.IsIndexer() {
			params := make([]string, len(s.Parameters))
			for i, p := range s.Parameters {
				params[i] = p.Type.String()
			}
			return fmt.Sprintf("%s %s[%s]", s.Type, s.qualifiedContainer()+"this", strings.Join(params, ", "))
		}
		return fmt.Sprintf("%s %s", s.Type, s.qualifiedName())
	case SymbolField, SymbolEvent:
		return fmt.Sprintf("%s %s", s.Type, s.qualifiedName())
	default:
		return s.qualifiedName()
	}
}

func (s *Symbol) qualifiedContainer() string {
	if s.Container == nil {
		return ""
	}
	return s.Container.String() + "."
}

func (s *Symbol) qualifiedName() string {
	return s.qualifiedContainer() + s.Name
}
