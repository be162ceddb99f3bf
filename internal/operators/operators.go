// Package operators enumerates the operator kinds shared by the bound tree
// and the operation tree.
package operators

import "fmt"

// BinaryKind identifies a binary operator.
type BinaryKind int

const (
	BinaryNone BinaryKind = iota
	Add
	Subtract
	Multiply
	Divide
	Remainder
	LeftShift
	RightShift
	And
	Or
	ExclusiveOr
	ConditionalAnd
	ConditionalOr
	Equals
	NotEquals
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual

	binaryCount
)

var binaryNames = [binaryCount]string{
	BinaryNone:         "None",
	Add:                "Add",
	Subtract:           "Subtract",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Remainder:          "Remainder",
	LeftShift:          "LeftShift",
	RightShift:         "RightShift",
	And:                "And",
	Or:                 "Or",
	ExclusiveOr:        "ExclusiveOr",
	ConditionalAnd:     "ConditionalAnd",
	ConditionalOr:      "ConditionalOr",
	Equals:             "Equals",
	NotEquals:          "NotEquals",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
}

func (k BinaryKind) String() string {
	if k >= 0 && k < binaryCount {
		return binaryNames[k]
	}
	return fmt.Sprintf("BinaryKind(%d)", int(k))
}

// UnmarshalText parses a kind by name.
func (k *BinaryKind) UnmarshalText(text []byte) error {
	i, err := lookup(binaryNames[:], string(text), "binary operator")
	*k = BinaryKind(i)
	return err
}

// IsComparison reports whether the operator yields a boolean comparison.
func (k BinaryKind) IsComparison() bool {
	return k >= Equals && k <= GreaterThanOrEqual
}

// IsConditional reports whether the operator short-circuits.
func (k BinaryKind) IsConditional() bool {
	return k == ConditionalAnd || k == ConditionalOr
}

// UnaryKind identifies a unary operator.
type UnaryKind int

const (
	UnaryNone UnaryKind = iota
	BitwiseNegation
	Not
	Plus
	Minus
	True
	False

	unaryCount
)

var unaryNames = [unaryCount]string{
	UnaryNone:       "None",
	BitwiseNegation: "BitwiseNegation",
	Not:             "Not",
	Plus:            "Plus",
	Minus:           "Minus",
	True:            "True",
	False:           "False",
}

func (k UnaryKind) String() string {
	if k >= 0 && k < unaryCount {
		return unaryNames[k]
	}
	return fmt.Sprintf("UnaryKind(%d)", int(k))
}

// UnmarshalText parses a kind by name.
func (k *UnaryKind) UnmarshalText(text []byte) error {
	i, err := lookup(unaryNames[:], string(text), "unary operator")
	*k = UnaryKind(i)
	return err
}

func lookup(names []string, name, what string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, name)
}
