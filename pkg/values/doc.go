// Package values implements the semantic value model of vnv files.
//
// # Overview
//
// Every key assignment in a vnv file carries a raw value string. Coerce converts
// that string into exactly one of four semantic kinds:
//
//   - Number: the whole value parses as a float64 (e.g. 25, 2.5, -1e3)
//   - String: a single scalar, quotes stripped (e.g. "something")
//   - NumberArray: two or more unquoted numeric elements (e.g. [1, 2, 3])
//   - StringArray: two or more elements where any is quoted or non-numeric
//
// # Usage Example
//
//	v := values.Coerce(`"a", "b,c"`)
//	// v.Kind == values.KindStringArray, v.Strings == []string{"a", "b,c"}
//
//	fmt.Println(v.Render()) // ["a", "b,c"]
//
// # Rendering
//
// Render produces the canonical textual form used in dotenv output and in
// diagnostics: numbers in shortest decimal form, strings double-quoted and arrays
// bracketed with ", " separators.
package values
