package decorators

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vnv-dev/vnv/pkg/values"
)

// epsilon is the tolerance under which two numbers compare equal.
const epsilon = 1e-9

// compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
func compare(a, b float64) int {
	switch {
	case math.Abs(a-b) < epsilon:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

func missingArgument(name, example string) []ValidationError {
	return []ValidationError{newError(
		"The %s decorator requires a value to be provided with it. Ex: `@%s(%s)`", name, name, example)}
}

func wrongArgument(name string, arg Argument, want string) []ValidationError {
	return []ValidationError{newError(
		"'%s' is not valid for decorator type '%s'. '%s' requires a %s value.", arg.String(), name, name, want)}
}

// noop accepts every value. It backs the scope and environment markers.
type noop struct{}

func (noop) Validate(values.Value, Argument) []ValidationError {
	return nil
}

// bound implements min and max. Numbers are compared by value, strings by
// their length in characters. Arrays are checked element by element.
type bound struct {
	name  string
	lower bool
}

func (b bound) Validate(value values.Value, arg Argument) []ValidationError {
	switch arg.Kind {
	case ArgumentNone:
		return missingArgument(b.name, "5")
	case ArgumentText:
		return wrongArgument(b.name, arg, "number")
	}

	var errs []ValidationError
	for i, elem := range value.Elements() {
		if err, failed := b.check(i, elem, arg.Number); failed {
			errs = append(errs, err)
		}
	}
	return errs
}

func (b bound) check(i int, elem values.Value, limit float64) (ValidationError, bool) {
	limitText := values.FormatNumber(limit)

	if elem.Kind == values.KindNumber {
		c := compare(elem.Number, limit)
		switch {
		case b.lower && c < 0:
			return newValueError(i, elem, "%s is too small. Minimum value is %s.", values.FormatNumber(elem.Number), limitText), true
		case !b.lower && c > 0:
			return newValueError(i, elem, "%s is too large. Maximum value is %s.", values.FormatNumber(elem.Number), limitText), true
		}
		return ValidationError{}, false
	}

	c := compare(float64(utf8.RuneCountInString(elem.Text)), limit)
	switch {
	case b.lower && c < 0:
		return newValueError(i, elem, "'%s' is too short. Minimum length is %s.", elem.Text, limitText), true
	case !b.lower && c > 0:
		return newValueError(i, elem, "'%s' is too long. Maximum length is %s.", elem.Text, limitText), true
	}
	return ValidationError{}, false
}

// affix implements startsWith and endsWith.
type affix struct {
	name   string
	prefix bool
}

func (a affix) Validate(value values.Value, arg Argument) []ValidationError {
	switch arg.Kind {
	case ArgumentNone:
		return missingArgument(a.name, `"https://"`)
	case ArgumentNumber:
		return wrongArgument(a.name, arg, "string")
	}

	if value.IsNumeric() {
		return []ValidationError{newError("'%s' can only be used on string values.", a.name)}
	}

	var errs []ValidationError
	for i, elem := range value.Elements() {
		if a.prefix && !strings.HasPrefix(elem.Text, arg.Text) {
			errs = append(errs, newValueError(i, elem, "'%s' does not start with '%s'", elem.Text, arg.Text))
		}
		if !a.prefix && !strings.HasSuffix(elem.Text, arg.Text) {
			errs = append(errs, newValueError(i, elem, "'%s' does not end with '%s'", elem.Text, arg.Text))
		}
	}
	return errs
}

// pattern implements matches and doesNotMatch. Numbers are matched against
// their canonical text form.
type pattern struct {
	name      string
	mustMatch bool
}

func (p pattern) Validate(value values.Value, arg Argument) []ValidationError {
	switch arg.Kind {
	case ArgumentNone:
		return missingArgument(p.name, `"^\d+$"`)
	case ArgumentNumber:
		return wrongArgument(p.name, arg, "string")
	}

	re, err := regexp.Compile(arg.Text)
	if err != nil {
		return []ValidationError{newError("'%s' is not a valid regular expression: %v", arg.Text, err)}
	}

	var errs []ValidationError
	for i, elem := range value.Elements() {
		text := elem.Plain()
		matched := re.MatchString(text)
		if p.mustMatch && !matched {
			errs = append(errs, newValueError(i, elem, "'%s' does not match '%s'.", text, arg.Text))
		}
		if !p.mustMatch && matched {
			errs = append(errs, newValueError(i, elem, "'%s' matches '%s'.", text, arg.Text))
		}
	}
	return errs
}
