// Package types defines the in-memory tree produced by decoding an AMF3 message
// and consumed when encoding one.
package types

import (
	"fmt"
)

// Type represents the type of a node in a value tree.
type Type uint8

// List of supported types.
const (
	TypeUndefined Type = iota + 1
	TypeNull
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeString
	TypeDate
	TypeArray

	// TypeReference denotes a back-reference kept as-is instead of being
	// resolved against its table.
	TypeReference
)

func (t Type) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeDate:
		return "date"
	case TypeArray:
		return "array"
	case TypeReference:
		return "reference"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// IsNumber returns true if t is either an integer or a double.
func (t Type) IsNumber() bool {
	return t == TypeInteger || t == TypeDouble
}

// IsComplex returns true for the types tracked by identity in the complex-value table.
func (t Type) IsComplex() bool {
	return t == TypeDate || t == TypeArray
}

// IsReferenceable returns true for the types that can be sent as a back-reference.
func (t Type) IsReferenceable() bool {
	return t == TypeString || t.IsComplex()
}

// A Value is a node of a value tree.
type Value interface {
	Type() Type
	V() any
	String() string
	MarshalJSON() ([]byte, error)
}
