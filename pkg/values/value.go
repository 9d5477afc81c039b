package values

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is active.
type Kind int

const (
	// KindNumber is a single float64.
	KindNumber Kind = iota

	// KindString is a single text value.
	KindString

	// KindStringArray is an ordered list of text values.
	KindStringArray

	// KindNumberArray is an ordered list of float64 values.
	KindNumberArray
)

// String returns the kind name used in diagnostics and machine output.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindStringArray:
		return "string_array"
	case KindNumberArray:
		return "number_array"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the coerced value of a key. Only the field matching Kind is set.
type Value struct {
	Kind    Kind
	Number  float64
	Text    string
	Strings []string
	Numbers []float64
}

// Number returns a KindNumber value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// String returns a KindString value.
func String(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// StringArray returns a KindStringArray value.
func StringArray(items ...string) Value {
	return Value{Kind: KindStringArray, Strings: items}
}

// NumberArray returns a KindNumberArray value.
func NumberArray(items ...float64) Value {
	return Value{Kind: KindNumberArray, Numbers: items}
}

// IsArray reports whether the value is one of the array kinds.
func (v Value) IsArray() bool {
	return v.Kind == KindStringArray || v.Kind == KindNumberArray
}

// IsNumeric reports whether the value holds numbers.
func (v Value) IsNumeric() bool {
	return v.Kind == KindNumber || v.Kind == KindNumberArray
}

// Elements returns the scalar values making up v. Scalars return themselves.
func (v Value) Elements() []Value {
	switch v.Kind {
	case KindStringArray:
		out := make([]Value, len(v.Strings))
		for i, s := range v.Strings {
			out[i] = String(s)
		}
		return out
	case KindNumberArray:
		out := make([]Value, len(v.Numbers))
		for i, n := range v.Numbers {
			out[i] = Number(n)
		}
		return out
	default:
		return []Value{v}
	}
}

// Plain returns the unquoted text form of a scalar value.
// Arrays return their rendered form.
func (v Value) Plain() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Number)
	case KindString:
		return v.Text
	default:
		return v.Render()
	}
}

// Render returns the canonical textual form of the value.
func (v Value) Render() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Number)
	case KindString:
		return `"` + v.Text + `"`
	case KindStringArray:
		parts := make([]string, len(v.Strings))
		for i, s := range v.Strings {
			parts[i] = `"` + s + `"`
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindNumberArray:
		parts := make([]string, len(v.Numbers))
		for i, n := range v.Numbers {
			parts[i] = FormatNumber(n)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// native returns the value as a plain Go value for encoders.
func (v Value) native() any {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindString:
		return v.Text
	case KindStringArray:
		if v.Strings == nil {
			return []string{}
		}
		return v.Strings
	case KindNumberArray:
		if v.Numbers == nil {
			return []float64{}
		}
		return v.Numbers
	default:
		return nil
	}
}

// MarshalJSON encodes the value in its native JSON form. Infinities and NaN
// have no JSON number form and are written as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(JSONNumber(v.Number))
	case KindNumberArray:
		out := make([]any, len(v.Numbers))
		for i, n := range v.Numbers {
			out[i] = JSONNumber(n)
		}
		return json.Marshal(out)
	default:
		return json.Marshal(v.native())
	}
}

// MarshalYAML encodes the value in its native YAML form.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.native(), nil
}

// JSONNumber returns n, or its text form ("+Inf", "-Inf", "NaN") when n is
// not finite.
func JSONNumber(n float64) any {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return FormatNumber(n)
	}
	return n
}

// FormatNumber renders n in its shortest decimal form (9, 2.5, 0.001).
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
