package tree

import "testing"

func TestScalarEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Scalar
		want bool
	}{
		{"equal strings", StringVal("orange"), StringVal("orange"), true},
		{"different strings", StringVal("orange"), StringVal("lemon"), false},
		{"equal literals", NumberVal("42"), NumberVal("42"), true},
		{"int equals float form", NumberVal("1"), NumberVal("1.0"), true},
		{"different numbers", NumberVal("1"), NumberVal("2"), false},
		{"equal bools", BoolVal(true), BoolVal(true), true},
		{"different bools", BoolVal(true), BoolVal(false), false},
		{"nulls equal", NullVal(), NullVal(), true},
		{"string vs number", StringVal("1"), NumberVal("1"), false},
		{"bool vs string", BoolVal(true), StringVal("true"), false},
		{"null vs string", NullVal(), StringVal(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		name string
		in   Scalar
		want string
	}{
		{"string", StringVal("orange"), "orange"},
		{"integer literal", NumberVal("42"), "42"},
		{"float literal", NumberVal("3.14"), "3.14"},
		{"true", BoolVal(true), "true"},
		{"false", BoolVal(false), "false"},
		{"null", NullVal(), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScalarConstructors(t *testing.T) {
	if got := IntVal(42).Num; got != "42" {
		t.Errorf("IntVal(42).Num = %q, want %q", got, "42")
	}
	if got := FloatVal(2.5).Num; got != "2.5" {
		t.Errorf("FloatVal(2.5).Num = %q, want %q", got, "2.5")
	}
	if !IntVal(7).Equal(FloatVal(7.0)) {
		t.Error("IntVal(7) and FloatVal(7.0) should compare equal")
	}

	var zero Scalar
	if !zero.IsNull() {
		t.Error("zero Scalar should be null")
	}
}
