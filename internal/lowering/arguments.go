package lowering

import (
	"github.com/orizon-lang/optree/internal/bound"
	"github.com/orizon-lang/optree/internal/conversion"
	"github.com/orizon-lang/optree/internal/operations"
	"github.com/orizon-lang/optree/internal/position"
	"github.com/orizon-lang/optree/internal/symbols"
)

// arguments shapes the argument list of a call to method. Explicit
// arguments keep source order. Expanded params arguments are collected into
// one implicit array at the position of the first of them. Omitted
// parameters with defaults, and an omitted params parameter, are appended
// in parameter order.
func (b *builder) arguments(method *symbols.Symbol, list *bound.ArgumentList, at position.Ref) []*operations.Argument {
	params := method.Parameters
	paramsParam := method.ParamsParameter()

	var (
		out      []*operations.Argument
		matched  = make([]bool, len(params))
		elements []operations.Operation
		arrayAt  = -1
	)

	for i, arg := range list.Arguments {
		pi := parameterIndex(list, i, len(params), paramsParam != nil)
		var p *symbols.Symbol
		if pi >= 0 {
			p = params[pi]
			matched[pi] = true
		}
		if list.Expanded && p != nil && p == paramsParam {
			if arrayAt < 0 {
				arrayAt = len(out)
				out = append(out, nil)
			}
			elements = append(elements, b.required(arg, at))
			continue
		}
		out = append(out, b.argument(p, arg, at))
	}

	if arrayAt >= 0 {
		out[arrayAt] = b.paramArray(paramsParam, elements, at)
	}

	for pi, p := range params {
		if matched[pi] {
			continue
		}
		switch {
		case p.IsParams:
			out = append(out, b.paramArray(p, nil, at))
		case p.HasDefault:
			out = append(out, b.defaultArgument(p, at))
		}
	}
	return out
}

// parameterIndex maps argument i to a parameter index, or -1 when it has
// none. Positional arguments past the end of an expanded form belong to the
// trailing params parameter.
func parameterIndex(list *bound.ArgumentList, i, count int, hasParams bool) int {
	pi := i
	if list.ArgsToParams != nil {
		if i >= len(list.ArgsToParams) {
			return -1
		}
		pi = list.ArgsToParams[i]
	}
	if pi >= count {
		if list.Expanded && hasParams {
			return count - 1
		}
		return -1
	}
	return pi
}

// argument builds an explicit argument. An implicit conversion of the value
// to the parameter type is recorded as the argument's InConversion rather
// than as a node.
func (b *builder) argument(p *symbols.Symbol, arg bound.Node, at position.Ref) *operations.Argument {
	c := operations.Common{Syntax: at}
	if !bound.IsNil(arg) {
		c.Syntax = arg.Info().Syntax
	}

	in := conversion.IdentityConversion
	value := arg
	if operand, conv, bad, ok := unwrapImplicit(arg); ok {
		value, in = operand, conv
		c.Invalid = bad
	}

	return operations.Build(&operations.Argument{
		ArgumentKind:  operations.ArgumentExplicit,
		Parameter:     p,
		Value:         b.required(value, c.Syntax),
		InConversion:  in,
		OutConversion: conversion.IdentityConversion,
	}, c)
}

// paramArray collects expanded params arguments into an implicit array
// creation. The array always has an initializer, empty when no arguments
// were passed.
func (b *builder) paramArray(p *symbols.Symbol, elements []operations.Operation, at position.Ref) *operations.Argument {
	size := implicit(at)
	size.Type = symbols.Int32
	size.Constant = symbols.NewInt(int64(len(elements)))

	init := operations.Build(&operations.ArrayInitializer{ElementValues: elements}, implicit(at))

	array := implicit(at)
	array.Type = p.Type
	creation := operations.Build(&operations.ArrayCreation{
		DimensionSizes: []operations.Operation{operations.Build(&operations.Literal{}, size)},
		Initializer:    init,
	}, array)

	return operations.Build(&operations.Argument{
		ArgumentKind:  operations.ArgumentParamArray,
		Parameter:     p,
		Value:         creation,
		InConversion:  conversion.IdentityConversion,
		OutConversion: conversion.IdentityConversion,
	}, implicit(at))
}

// defaultArgument supplies the declared default of an omitted optional
// parameter.
func (b *builder) defaultArgument(p *symbols.Symbol, at position.Ref) *operations.Argument {
	c := implicit(at)
	c.Type = p.Type

	var value operations.Operation
	if p.Default != nil {
		c.Constant = p.Default
		value = operations.Build(&operations.Literal{}, c)
	} else {
		value = operations.Build(&operations.DefaultValue{}, c)
	}

	return operations.Build(&operations.Argument{
		ArgumentKind:  operations.ArgumentDefaultValue,
		Parameter:     p,
		Value:         value,
		InConversion:  conversion.IdentityConversion,
		OutConversion: conversion.IdentityConversion,
	}, implicit(at))
}
