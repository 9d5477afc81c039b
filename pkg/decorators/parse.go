package decorators

import (
	"strings"

	"github.com/vnv-dev/vnv/pkg/values"
)

// ParseLine splits a decorator line (without the leading '@') into its name
// and argument. The first '(' and the last ')' delimit the argument, so
// arguments cannot contain parentheses of their own.
func ParseLine(line string) (string, Argument) {
	line = strings.TrimSpace(line)

	open := strings.IndexByte(line, '(')
	if open < 0 {
		return line, None()
	}

	name := strings.TrimSpace(line[:open])
	rest := line[open+1:]
	if end := strings.LastIndexByte(rest, ')'); end >= 0 {
		rest = rest[:end]
	}

	return name, ParseArgument(rest)
}

// ParseArgument coerces the text between a decorator's parentheses.
func ParseArgument(raw string) Argument {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return None()
	}
	if n, ok := values.ParseNumber(raw); ok {
		return Number(n)
	}
	return Text(values.TrimQuotes(raw))
}
