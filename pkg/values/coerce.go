package values

import (
	"strconv"
	"strings"
	"unicode"
)

// Coerce converts a trimmed raw value string into its semantic Value.
//
// A string that parses as a float64 becomes a Number. Otherwise it is split on
// top-level commas; two or more elements become a NumberArray when none is quoted
// and all are numeric, and a StringArray in every other case. A single element
// becomes a String with surrounding quotes stripped.
func Coerce(raw string) Value {
	if n, ok := ParseNumber(raw); ok {
		return Number(n)
	}

	elements, hasQuoted := splitElements(raw)
	if len(elements) <= 1 {
		return String(TrimQuotes(raw))
	}

	if !hasQuoted {
		numbers := make([]float64, 0, len(elements))
		for _, e := range elements {
			n, ok := ParseNumber(e)
			if !ok {
				break
			}
			numbers = append(numbers, n)
		}
		if len(numbers) == len(elements) {
			return NumberArray(numbers...)
		}
	}

	strs := make([]string, len(elements))
	for i, e := range elements {
		strs[i] = TrimQuotes(e)
	}
	return StringArray(strs...)
}

// ParseNumber reports whether s is a complete float64 literal.
func ParseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TrimQuotes returns the text strictly between the first and last double quote
// of s. Strings without quotes are returned unchanged; a lone quote is dropped.
func TrimQuotes(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return s
	}
	end := strings.LastIndexByte(s, '"')
	if end == start {
		return s[:start] + s[start+1:]
	}
	return s[start+1 : end]
}

// splitElements splits raw on commas outside quoted spans. Quotes are kept on
// the elements; whitespace outside quotes is dropped. A trailing comma does not
// produce an extra element.
func splitElements(raw string) ([]string, bool) {
	var (
		elements []string
		current  strings.Builder
		inQuote  bool
		hasQuote bool
		prev     rune
	)

	for _, r := range raw {
		switch {
		case r == '"' && prev != '\\':
			inQuote = !inQuote
			hasQuote = true
			current.WriteRune(r)
		case r == ',' && !inQuote:
			elements = append(elements, current.String())
			current.Reset()
		case unicode.IsSpace(r) && !inQuote:
		default:
			current.WriteRune(r)
		}
		prev = r
	}
	elements = append(elements, current.String())

	if n := len(elements); n > 1 && elements[n-1] == "" {
		elements = elements[:n-1]
	}

	return elements, hasQuote
}
