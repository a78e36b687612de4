package types

var _ Value = NewArrayValue()

// A Pair is one entry of the associative part of an array.
type Pair struct {
	Key   string
	Value Value
}

// ArrayValue is an array made of an associative part, whose keys are
// non-empty strings kept in insertion order, and a dense part indexed from 0.
// Arrays are tracked by identity: two *ArrayValue are the same array on the
// wire only if they are the same pointer.
type ArrayValue struct {
	Associative []Pair
	Dense       []Value
}

// NewArrayValue returns an array whose dense part holds values.
func NewArrayValue(values ...Value) *ArrayValue {
	return &ArrayValue{
		Dense: values,
	}
}

// Append adds values to the dense part.
func (a *ArrayValue) Append(values ...Value) *ArrayValue {
	a.Dense = append(a.Dense, values...)
	return a
}

// Set replaces the value associated with key, or adds the pair at the end
// of the associative part.
func (a *ArrayValue) Set(key string, v Value) *ArrayValue {
	for i := range a.Associative {
		if a.Associative[i].Key == key {
			a.Associative[i].Value = v
			return a
		}
	}

	a.Associative = append(a.Associative, Pair{Key: key, Value: v})
	return a
}

// Get returns the value associated with key.
func (a *ArrayValue) Get(key string) (Value, bool) {
	for _, p := range a.Associative {
		if p.Key == key {
			return p.Value, true
		}
	}

	return nil, false
}

// Index returns the i-th value of the dense part.
func (a *ArrayValue) Index(i int) (Value, bool) {
	if i < 0 || i >= len(a.Dense) {
		return nil, false
	}

	return a.Dense[i], true
}

// Len returns the length of the dense part.
func (a *ArrayValue) Len() int {
	return len(a.Dense)
}

func (a *ArrayValue) V() any {
	return a
}

func (a *ArrayValue) Type() Type {
	return TypeArray
}

func (a *ArrayValue) String() string {
	data, err := a.MarshalJSON()
	if err != nil {
		return "[" + err.Error() + "]"
	}
	return string(data)
}

// MarshalJSON renders an array without associative part as a JSON array.
// Otherwise it renders an object holding the associative pairs followed by
// the dense values keyed by their index, the way runtimes expose them.
func (a *ArrayValue) MarshalJSON() ([]byte, error) {
	return marshalJSON(a)
}
