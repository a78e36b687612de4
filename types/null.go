package types

var _ Value = NewUndefinedValue()

type UndefinedValue struct{}

// NewUndefinedValue returns an undefined value.
func NewUndefinedValue() UndefinedValue {
	return UndefinedValue{}
}

func (v UndefinedValue) V() any {
	return nil
}

func (v UndefinedValue) Type() Type {
	return TypeUndefined
}

func (v UndefinedValue) String() string {
	return "undefined"
}

// MarshalJSON renders undefined as null, JSON has no equivalent.
func (v UndefinedValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

var _ Value = NewNullValue()

type NullValue struct{}

// NewNullValue returns a null value.
func NewNullValue() NullValue {
	return NullValue{}
}

func (v NullValue) V() any {
	return nil
}

func (v NullValue) Type() Type {
	return TypeNull
}

func (v NullValue) String() string {
	return "null"
}

func (v NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
