// Package decorators implements the constraint decorators of vnv files.
//
// A decorator is a `@name` or `@name(argument)` line preceding a key. The
// Registry maps each decorator name to a Validator; validators are pure and
// report failures as ValidationErrors rather than logging them.
package decorators

import (
	"encoding/json"
	"fmt"

	"github.com/vnv-dev/vnv/pkg/values"
)

// ArgumentKind identifies the variant of an Argument.
type ArgumentKind int

const (
	// ArgumentNone means the decorator had no parentheses or an empty argument.
	ArgumentNone ArgumentKind = iota

	// ArgumentText is a string argument with surrounding quotes stripped.
	ArgumentText

	// ArgumentNumber is a numeric argument.
	ArgumentNumber
)

// Argument is the value supplied inside a decorator's parentheses.
type Argument struct {
	Kind   ArgumentKind
	Text   string
	Number float64
}

// None returns an absent argument.
func None() Argument {
	return Argument{Kind: ArgumentNone}
}

// Text returns a text argument.
func Text(s string) Argument {
	return Argument{Kind: ArgumentText, Text: s}
}

// Number returns a numeric argument.
func Number(n float64) Argument {
	return Argument{Kind: ArgumentNumber, Number: n}
}

// String returns the argument as written inside the parentheses, without quotes.
func (a Argument) String() string {
	switch a.Kind {
	case ArgumentText:
		return a.Text
	case ArgumentNumber:
		return values.FormatNumber(a.Number)
	default:
		return ""
	}
}

// Source returns the argument as it should be written back into a file:
// text quoted, numbers bare and nothing for None.
func (a Argument) Source() string {
	switch a.Kind {
	case ArgumentText:
		return `"` + a.Text + `"`
	case ArgumentNumber:
		return values.FormatNumber(a.Number)
	default:
		return ""
	}
}

// MarshalJSON encodes the argument as a string, a number or null.
func (a Argument) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case ArgumentText:
		return json.Marshal(a.Text)
	case ArgumentNumber:
		return json.Marshal(values.JSONNumber(a.Number))
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML encodes the argument as a string, a number or null.
func (a Argument) MarshalYAML() (interface{}, error) {
	switch a.Kind {
	case ArgumentText:
		return a.Text, nil
	case ArgumentNumber:
		return a.Number, nil
	default:
		return nil, nil
	}
}

// ValidationError is a key-level constraint failure.
type ValidationError struct {
	// Message is the human-readable description of the failure.
	Message string `json:"message" yaml:"message"`

	// Value is the scalar or array element that failed, when attributable.
	Value *values.Value `json:"value,omitempty" yaml:"value,omitempty"`

	// Index is the position of Value among the elements of an array value.
	Index int `json:"index,omitempty" yaml:"index,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

func newError(format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

func newValueError(i int, v values.Value, format string, args ...any) ValidationError {
	return ValidationError{Message: fmt.Sprintf(format, args...), Value: &v, Index: i}
}
