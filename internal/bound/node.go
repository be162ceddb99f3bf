// Package bound defines the bound tree: the binder's fully resolved
// representation of source code and the input to lowering. Every expression
// carries its resolved type, every conversion its classification, and every
// error has already been flagged by the binder. This package performs no
// analysis of its own.
package bound

import (
	"reflect"

	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// Node is implemented by every bound node.
type Node interface {
	// Info returns the data shared by every bound node.
	Info() *Header
	boundNode()
}

// Header is embedded in every bound node.
type Header struct {
	Syntax position.Ref
	Type   *symbols.Type
	// Constant is set iff the binder folded the construct.
	Constant *symbols.Constant
	// HasErrors is the binder's verdict for this node alone.
	HasErrors bool
	// CompilerGenerated marks nodes the binder synthesized without a
	// one-to-one surface construct.
	CompilerGenerated bool
}

func (h *Header) Info() *Header { return h }
func (h *Header) boundNode()    {}

// IsNil reports whether n is absent, including a nil pointer stored in the
// interface.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
