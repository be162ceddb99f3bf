package operations

import (
	"fmt"

	"github.com/orizon-lang/optree/internal/symbols"
)

// LocalReference reads or writes a local. IsDeclaration is set where the
// reference also declares the local, as in `out var x`.
type LocalReference struct {
	node
	Local         *symbols.Symbol
	IsDeclaration bool
}

func (o *LocalReference) Slots() []Slot { return nil }

func (o *LocalReference) details() string {
	if o.IsDeclaration {
		return ": " + o.Local.String() + " (IsDeclaration: True)"
	}
	return ": " + o.Local.String()
}

// ParameterReference reads or writes a parameter.
type ParameterReference struct {
	node
	Parameter *symbols.Symbol
}

func (o *ParameterReference) Slots() []Slot   { return nil }
func (o *ParameterReference) details() string { return ": " + o.Parameter.String() }

// FieldReference accesses Field; Instance is nil for static fields.
type FieldReference struct {
	node
	Field    *symbols.Symbol
	Instance Operation
}

func (o *FieldReference) Slots() []Slot { return []Slot{one("Instance", o.Instance)} }

func (o *FieldReference) details() string {
	return fmt.Sprintf(": %s (Static: %s)", o.Field, yesNo(o.Field != nil && o.Field.Static))
}

// PropertyReference accesses Property; Arguments are set for indexers.
type PropertyReference struct {
	node
	Property  *symbols.Symbol
	Instance  Operation
	Arguments []*Argument
}

func (o *PropertyReference) Slots() []Slot {
	return []Slot{one("Instance", o.Instance), many("Arguments", o.Arguments)}
}

func (o *PropertyReference) details() string { return ": " + o.Property.String() }

// EventReference names Event.
type EventReference struct {
	node
	Event    *symbols.Symbol
	Instance Operation
}

func (o *EventReference) Slots() []Slot   { return []Slot{one("Instance", o.Instance)} }
func (o *EventReference) details() string { return ": " + o.Event.String() }

// MethodReference names Method without calling it.
type MethodReference struct {
	node
	Method    *symbols.Symbol
	Instance  Operation
	IsVirtual bool
}

func (o *MethodReference) Slots() []Slot   { return []Slot{one("Instance", o.Instance)} }
func (o *MethodReference) details() string { return ": " + o.Method.String() }

// ArrayElementReference is `array[indices]`.
type ArrayElementReference struct {
	node
	ArrayReference Operation
	Indices        []Operation
}

func (o *ArrayElementReference) Slots() []Slot {
	return []Slot{one("Array", o.ArrayReference), many("Indices", o.Indices)}
}

// InstanceReferenceKind distinguishes the receivers an InstanceReference can
// stand for.
type InstanceReferenceKind int

const (
	// ContainingTypeInstance is `this`, written or implied.
	ContainingTypeInstance InstanceReferenceKind = iota
	// ImplicitReceiver is the object under construction in an initializer.
	ImplicitReceiver
)

func (k InstanceReferenceKind) String() string {
	if k == ImplicitReceiver {
		return "ImplicitReceiver"
	}
	return "ContainingTypeInstance"
}

// InstanceReference is the current instance or the object being
// initialized.
type InstanceReference struct {
	node
	ReferenceKind InstanceReferenceKind
}

func (o *InstanceReference) Slots() []Slot { return nil }

func (o *InstanceReference) details() string {
	return fmt.Sprintf(" (ReferenceKind: %s)", o.ReferenceKind)
}
