package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/symbols"
)

// lowerConversion applies the conversion policy:
//
//   - an identity conversion the user did not write disappears;
//   - a method group or lambda conversion becomes a DelegateCreation;
//   - everything else becomes a Conversion node, implicit unless cast in
//     code, invalid when the binder found no conversion.
func (b *builder) lowerConversion(n *bound.Conversion) operations.Operation {
	if n.Kind == conversion.Identity && !n.ExplicitCastInCode && !n.HasErrors {
		return b.required(n.Operand, n.Syntax)
	}

	c := b.common(&n.Header)
	c.Implicit = !n.ExplicitCastInCode || n.CompilerGenerated

	if n.Kind.IsDelegateCreation() {
		return operations.Build(&operations.DelegateCreation{
			Target: b.required(n.Operand, n.Syntax),
		}, c)
	}

	c.Invalid = n.HasErrors || n.Kind == conversion.NoConversion
	if c.Type == nil {
		c.Type = symbols.ErrorType
	}
	return operations.Build(&operations.Conversion{
		Operand:    b.required(n.Operand, n.Syntax),
		Conversion: conversion.Classify(n.Kind, n.Method),
		IsTryCast:  n.IsTryCast,
		IsChecked:  n.Checked,
	}, c)
}

// unwrapImplicit splits an implicit non-delegate conversion into its operand
// and classification. Arguments carry such conversions as metadata instead
// of as nodes. ok is false when n is not such a conversion, and also when
// the metadata could not say everything the conversion does: a conversion
// the binder folded to a constant, or one that converts the result of
// another implicit conversion. Those stay nodes.
func unwrapImplicit(n bound.Node) (operand bound.Node, conv conversion.Conversion, invalid, ok bool) {
	bc, isConv := n.(*bound.Conversion)
	if !isConv || bc == nil || bc.ExplicitCastInCode || bc.Kind.IsDelegateCreation() {
		return nil, conversion.Conversion{}, false, false
	}
	if bc.Constant != nil || isImplicitConversion(bc.Operand) {
		return nil, conversion.Conversion{}, false, false
	}
	return bc.Operand, conversion.Classify(bc.Kind, bc.Method), bc.HasErrors || bc.Kind == conversion.NoConversion, true
}

// isImplicitConversion reports whether n lowers to an implicit Conversion
// node of its own.
func isImplicitConversion(n bound.Node) bool {
	bc, ok := n.(*bound.Conversion)
	if !ok || bc == nil || bc.ExplicitCastInCode || bc.Kind.IsDelegateCreation() {
		return false
	}
	return bc.Kind != conversion.Identity || bc.HasErrors
}
