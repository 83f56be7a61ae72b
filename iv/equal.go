package iv

import "math"

// Equal returns true if both values are structurally equal, maps are compared as key sets
func Equal(a, b Value) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(Bool) == b.(Bool)
	case KindInt:
		return a.(Int) == b.(Int)
	case KindFloat:
		x, y := float64(a.(Float)), float64(b.(Float))
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case KindString:
		return a.(String) == b.(String)
	case KindSequence:
		x, y := a.(Sequence), b.(Sequence)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case KindMap:
		x, y := a.(*Map), b.(*Map)
		if x.Len() != y.Len() {
			return false
		}
		for _, k := range x.keys {
			other, ok := y.values[k]
			if !ok || !Equal(x.values[k], other) {
				return false
			}
		}
		return true
	}
	return false
}
