// Package parsing turns vnv source text into a position-tracked ParseResult.
//
// # Overview
//
// A vnv file is a sequence of lines, each one of:
//
//	# a comment, discarded
//	@min(5)              a decorator applying to the next key
//	KEY=value            an assignment
//
// Values are bare numbers, double-quoted strings or bracketed comma-separated
// lists, and lists may span several lines:
//
//	@startsWith("https://")
//	HOSTS=[
//	    "https://a.example.com",
//	    "https://b.example.com"
//	]
//
// # Components
//
// scanner: a finite-state machine consuming the whole input rune by rune. It
// tracks 1-based line/column positions and emits assignments together with the
// decorator lines that preceded them.
//
// keySet: an insertion-ordered collection of keys. A duplicate key replaces the
// earlier occurrence and moves to the end, so the result stays ordered by the
// source line of each surviving assignment.
//
// Parse: coerces every value (package values), evaluates every declared
// decorator through a fresh decorators.Registry and collects diagnostics.
//
// # Error Handling
//
// Parsing never fails. File-level problems (unknown decorators, missing key
// names) become ParseErrors and make the result invalid; advisory problems
// (duplicate keys, dangling decorators) become warnings. Constraint failures are
// recorded on the key they belong to.
//
// # Thread Safety
//
// Parse holds no state between calls and is safe for concurrent use.
package parsing
