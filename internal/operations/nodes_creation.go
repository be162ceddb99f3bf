package operations

import (
	"fmt"
	"strings"

	"github.com/orizon-lang/optree/internal/symbols"
)

// ObjectCreation is `new T(args) { ... }`. Constructor is nil when overload
// resolution failed.
type ObjectCreation struct {
	node
	Constructor *symbols.Symbol
	Arguments   []*Argument
	Initializer *ObjectOrCollectionInitializer
}

func (o *ObjectCreation) Slots() []Slot {
	return []Slot{many("Arguments", o.Arguments), one("Initializer", o.Initializer)}
}

func (o *ObjectCreation) details() string { return " (Constructor: " + o.Constructor.String() + ")" }

// TypeParameterObjectCreation is `new T()` for a type parameter T.
type TypeParameterObjectCreation struct {
	node
	Initializer *ObjectOrCollectionInitializer
}

func (o *TypeParameterObjectCreation) Slots() []Slot {
	return []Slot{one("Initializer", o.Initializer)}
}

// AnonymousObjectCreation is `new { A = 1 }`; each initializer is a
// SimpleAssignment to a PropertyReference on the new instance.
type AnonymousObjectCreation struct {
	node
	Initializers []Operation
}

func (o *AnonymousObjectCreation) Slots() []Slot {
	return []Slot{many("Initializers", o.Initializers)}
}

// ArrayCreation creates an array. DimensionSizes has one entry per
// dimension; sizes implied by the initializer are implicit literals.
type ArrayCreation struct {
	node
	DimensionSizes []Operation
	Initializer    *ArrayInitializer
}

func (o *ArrayCreation) Slots() []Slot {
	return []Slot{many("DimensionSizes", o.DimensionSizes), one("Initializer", o.Initializer)}
}

// ArrayInitializer is `{ a, b }`; nested for multi-dimensional arrays.
type ArrayInitializer struct {
	node
	ElementValues []Operation
}

func (o *ArrayInitializer) Slots() []Slot { return []Slot{many("ElementValues", o.ElementValues)} }

// DelegateCreation turns Target, a method reference or anonymous function,
// into a delegate instance.
type DelegateCreation struct {
	node
	Target Operation
}

func (o *DelegateCreation) Slots() []Slot { return []Slot{one("Target", o.Target)} }

// DynamicArguments is the late-bound argument list shared by the dynamic
// kinds. ArgumentNames and ArgumentRefKinds are empty when none were given.
type DynamicArguments struct {
	Arguments        []Operation
	ArgumentNames    []string
	ArgumentRefKinds []symbols.RefKind
}

func (d DynamicArguments) annotations() []string {
	lines := make([]string, 0, 2)
	if len(d.ArgumentNames) > 0 {
		lines = append(lines, fmt.Sprintf("ArgumentNames(%d): %s", len(d.ArgumentNames), quoteAll(d.ArgumentNames)))
	}
	if len(d.ArgumentRefKinds) > 0 {
		kinds := make([]string, len(d.ArgumentRefKinds))
		for i, k := range d.ArgumentRefKinds {
			kinds[i] = k.String()
		}
		lines = append(lines, fmt.Sprintf("ArgumentRefKinds(%d): %s", len(kinds), strings.Join(kinds, ", ")))
	}
	return lines
}

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = `"` + n + `"`
	}
	return strings.Join(q, ", ")
}

// DynamicObjectCreation is an object creation bound at runtime.
type DynamicObjectCreation struct {
	node
	DynamicArguments
	Initializer *ObjectOrCollectionInitializer
}

func (o *DynamicObjectCreation) Slots() []Slot {
	return []Slot{many("Arguments", o.Arguments), one("Initializer", o.Initializer)}
}

// DynamicMemberReference is `instance.Name` bound at runtime.
type DynamicMemberReference struct {
	node
	Instance      Operation
	MemberName    string
	TypeArguments []*symbols.Type
	// ContainingType is set when the member is accessed through a type name.
	ContainingType *symbols.Type
}

func (o *DynamicMemberReference) Slots() []Slot { return []Slot{one("Instance", o.Instance)} }

func (o *DynamicMemberReference) details() string {
	return fmt.Sprintf(" (Member Name: %q, Containing Type: %s)", o.MemberName, o.ContainingType)
}

func (o *DynamicMemberReference) annotations() []string {
	if len(o.TypeArguments) == 0 {
		return nil
	}
	args := make([]string, len(o.TypeArguments))
	for i, t := range o.TypeArguments {
		args[i] = t.String()
	}
	return []string{fmt.Sprintf("Type Arguments(%d): %s", len(args), strings.Join(args, ", "))}
}

// DynamicInvocation invokes Operation with arguments bound at runtime.
type DynamicInvocation struct {
	node
	Operation Operation
	DynamicArguments
}

func (o *DynamicInvocation) Slots() []Slot {
	return []Slot{one("Expression", o.Operation), many("Arguments", o.Arguments)}
}

// DynamicIndexerAccess indexes Operation at runtime.
type DynamicIndexerAccess struct {
	node
	Operation Operation
	DynamicArguments
}

func (o *DynamicIndexerAccess) Slots() []Slot {
	return []Slot{one("Expression", o.Operation), many("Arguments", o.Arguments)}
}

// ObjectOrCollectionInitializer is the `{ ... }` of a creation expression.
type ObjectOrCollectionInitializer struct {
	node
	Initializers []Operation
}

func (o *ObjectOrCollectionInitializer) Slots() []Slot {
	return []Slot{many("Initializers", o.Initializers)}
}

// MemberInitializer is `Member = { ... }`: a nested initializer applied to
// an existing member rather than an assignment.
type MemberInitializer struct {
	node
	InitializedMember Operation
	Initializer       *ObjectOrCollectionInitializer
}

func (o *MemberInitializer) Slots() []Slot {
	return []Slot{one("InitializedMember", o.InitializedMember), one("Initializer", o.Initializer)}
}

// CollectionElementInitializer is one Add call of a collection initializer.
// AddMethod is nil when the call is bound at runtime.
type CollectionElementInitializer struct {
	node
	AddMethod *symbols.Symbol
	Arguments []Operation
	IsDynamic bool
}

func (o *CollectionElementInitializer) Slots() []Slot {
	return []Slot{many("Arguments", o.Arguments)}
}

func (o *CollectionElementInitializer) details() string {
	return fmt.Sprintf(" (AddMethod: %s) (IsDynamic: %s)", o.AddMethod, yesNo(o.IsDynamic))
}
