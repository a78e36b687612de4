package types

import (
	"fmt"
	"strconv"
)

var _ Value = NewReferenceValue(TypeString, 0)

// ReferenceValue is a back-reference to an entry of a reference table.
// Decoders only return it when asked to keep references unresolved. Kind is the
// type of the referencing marker: strings index the string table, dates and
// arrays the complex-value table.
type ReferenceValue struct {
	Kind  Type
	Index uint32
}

// NewReferenceValue returns a reference of the given kind.
// It panics if kind cannot be referenced.
func NewReferenceValue(kind Type, index uint32) ReferenceValue {
	if !kind.IsReferenceable() {
		panic(fmt.Sprintf("type %s cannot be referenced", kind))
	}

	return ReferenceValue{Kind: kind, Index: index}
}

func (v ReferenceValue) V() any {
	return v.Index
}

func (v ReferenceValue) Type() Type {
	return TypeReference
}

func (v ReferenceValue) String() string {
	return fmt.Sprintf("%s#%d", v.Kind, v.Index)
}

func (v ReferenceValue) MarshalJSON() ([]byte, error) {
	dst := append([]byte(nil), `{"$ref":{"kind":`...)
	dst = appendJSONString(dst, v.Kind.String())
	dst = append(dst, `,"index":`...)
	dst = strconv.AppendUint(dst, uint64(v.Index), 10)
	return append(dst, "}}"...), nil
}
