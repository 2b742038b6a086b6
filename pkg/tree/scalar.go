package tree

import (
	"encoding/json"
	"strconv"
)

// ScalarKind distinguishes the scalar value types a leaf can hold.
type ScalarKind int

const (
	// ScalarNull is the JSON null value. It doubles as the "absent" cell
	// marker in table rows, mirroring how spreadsheets conflate the two.
	ScalarNull ScalarKind = iota
	// ScalarString is a text value.
	ScalarString
	// ScalarNumber is a numeric value, kept as its original literal so
	// integers survive round trips without float formatting drift.
	ScalarNumber
	// ScalarBool is a boolean value.
	ScalarBool
)

// Scalar is a tagged leaf value: string, number, boolean, or null.
// The zero value is null.
type Scalar struct {
	Kind ScalarKind
	Str  string      // set when Kind == ScalarString
	Num  json.Number // set when Kind == ScalarNumber
	Bool bool        // set when Kind == ScalarBool
}

// StringVal returns a string scalar.
func StringVal(s string) Scalar {
	return Scalar{Kind: ScalarString, Str: s}
}

// NumberVal returns a number scalar from a JSON number literal.
func NumberVal(n json.Number) Scalar {
	return Scalar{Kind: ScalarNumber, Num: n}
}

// IntVal returns a number scalar from an integer.
func IntVal(i int64) Scalar {
	return Scalar{Kind: ScalarNumber, Num: json.Number(strconv.FormatInt(i, 10))}
}

// FloatVal returns a number scalar from a float.
func FloatVal(f float64) Scalar {
	return Scalar{Kind: ScalarNumber, Num: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

// BoolVal returns a boolean scalar.
func BoolVal(b bool) Scalar {
	return Scalar{Kind: ScalarBool, Bool: b}
}

// NullVal returns the null scalar.
func NullVal() Scalar {
	return Scalar{Kind: ScalarNull}
}

// IsNull reports whether the scalar is null. Table code treats null cells
// as absent, so this is also the "absent cell" test.
func (s Scalar) IsNull() bool { return s.Kind == ScalarNull }

// Equal reports whether two scalars hold the same value. Numbers compare
// numerically when both literals parse ("1" equals "1.0"); kinds never
// compare equal across each other.
func (s Scalar) Equal(o Scalar) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case ScalarNull:
		return true
	case ScalarString:
		return s.Str == o.Str
	case ScalarBool:
		return s.Bool == o.Bool
	default:
		if s.Num == o.Num {
			return true
		}
		a, errA := s.Num.Float64()
		b, errB := o.Num.Float64()
		return errA == nil && errB == nil && a == b
	}
}

// String returns the display form: the text itself, the number literal,
// "true"/"false", or "null".
func (s Scalar) String() string {
	switch s.Kind {
	case ScalarString:
		return s.Str
	case ScalarNumber:
		return s.Num.String()
	case ScalarBool:
		return strconv.FormatBool(s.Bool)
	}
	return "null"
}
