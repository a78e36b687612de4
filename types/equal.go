package types

import "math"

// Equal reports whether a and b are deeply equal. Arrays are compared by content,
// NaN equals NaN so that decoded trees can be compared with their source.
func Equal(a, b Value) bool {
	return equal(a, b, make(map[[2]*ArrayValue]struct{}))
}

func equal(a, b Value, visited map[[2]*ArrayValue]struct{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case DoubleValue:
		return sameFloat(float64(x), float64(b.(DoubleValue)))
	case *DateValue:
		y := b.(*DateValue)
		if x == nil || y == nil {
			return x == y
		}
		return sameFloat(x.Millis, y.Millis)
	case *ArrayValue:
		y := b.(*ArrayValue)
		if x == y {
			return true
		}
		if x == nil || y == nil {
			return false
		}

		// arrays already being compared further up are assumed equal,
		// which lets cyclic graphs terminate.
		k := [2]*ArrayValue{x, y}
		if _, ok := visited[k]; ok {
			return true
		}
		visited[k] = struct{}{}

		if len(x.Associative) != len(y.Associative) || len(x.Dense) != len(y.Dense) {
			return false
		}
		for i := range x.Associative {
			if x.Associative[i].Key != y.Associative[i].Key {
				return false
			}
			if !equal(x.Associative[i].Value, y.Associative[i].Value, visited) {
				return false
			}
		}
		for i := range x.Dense {
			if !equal(x.Dense[i], y.Dense[i], visited) {
				return false
			}
		}
		return true
	}

	return a == b
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}

	return a == b
}
