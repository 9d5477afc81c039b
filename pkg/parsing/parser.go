package parsing

import (
	"fmt"
	"strings"

	"github.com/vnv-dev/vnv/pkg/decorators"
	"github.com/vnv-dev/vnv/pkg/values"
)

// Parse scans content, coerces each value and evaluates its decorators.
// It always returns a complete result; problems are reported inside it.
func Parse(content string) *ParseResult {
	registry := decorators.NewRegistry()
	out := scan(content)

	result := &ParseResult{
		Errors:   []ParseError{},
		Warnings: []ParseError{},
	}
	keys := newKeySet()

	for _, u := range out.units {
		switch {
		case u.bare:
			result.Errors = append(result.Errors, ParseError{
				Message:  fmt.Sprintf("Expected '=' after key '%s'", u.name),
				Position: u.pos,
			})
			continue
		case u.name == "":
			result.Errors = append(result.Errors, ParseError{
				Message:  "Missing key name before '='",
				Position: u.pos,
			})
			continue
		}

		if u.unterminated {
			result.Warnings = append(result.Warnings, ParseError{
				Message:  fmt.Sprintf("Unterminated string or array value for key '%s'", u.name),
				Position: u.pos,
			})
		}

		key, errs := evaluate(u, registry)
		result.Errors = append(result.Errors, errs...)

		if keys.put(key) {
			result.Warnings = append(result.Warnings, ParseError{
				Message:  fmt.Sprintf("Duplicate key '%s'", key.Name),
				Position: key.Position,
			})
		}
	}

	result.Warnings = append(result.Warnings, danglingWarnings(out.dangling)...)
	result.Keys = keys.list()

	result.Valid = len(result.Errors) == 0
	for _, k := range result.Keys {
		if !k.Valid {
			result.Valid = false
		}
	}

	return result
}

// evaluate builds the Key for one assignment. Unknown decorators are returned
// as file-level errors; the remaining decorators are still evaluated.
func evaluate(u unit, registry *decorators.Registry) (Key, []ParseError) {
	value := values.Coerce(strings.TrimSpace(u.raw))

	key := Key{
		Name:        u.name,
		Scope:       ScopePrivate,
		Environment: EnvironmentAll,
		Value:       value,
		Position:    u.pos,
		Decorators:  make([]Declaration, 0, len(u.decorators)),
		Errors:      []decorators.ValidationError{},
	}

	var (
		errs      []ParseError
		dev, prod bool
	)

	for _, line := range u.decorators {
		decl := declare(line)
		key.Decorators = append(key.Decorators, decl)

		validator, ok := registry.Lookup(decl.Name)
		if !ok {
			errs = append(errs, invalidDecorator(decl))
			continue
		}

		key.Errors = append(key.Errors, validator.Validate(value, decl.Argument)...)

		switch decl.Name {
		case decorators.NamePublic:
			key.Scope = ScopePublic
		case decorators.NameDev:
			dev = true
		case decorators.NameProd:
			prod = true
		}
	}

	switch {
	case dev && !prod:
		key.Environment = EnvironmentDev
	case prod && !dev:
		key.Environment = EnvironmentProd
	}

	key.Valid = len(key.Errors) == 0
	return key, errs
}

// ParseTemplate scans a template file: decorators followed by key names, with
// values optional and ignored. Decorator names are checked but not evaluated.
func ParseTemplate(content string) *TemplateResult {
	registry := decorators.NewRegistry()
	out := scan(content)

	result := &TemplateResult{
		Entries:  []TemplateEntry{},
		Errors:   []ParseError{},
		Warnings: []ParseError{},
	}
	seen := make(map[string]int)

	for _, u := range out.units {
		if u.name == "" {
			result.Errors = append(result.Errors, ParseError{
				Message:  "Missing key name before '='",
				Position: u.pos,
			})
			continue
		}

		entry := TemplateEntry{
			Name:         u.name,
			Declarations: make([]Declaration, 0, len(u.decorators)),
			Position:     u.pos,
		}
		for _, line := range u.decorators {
			decl := declare(line)
			if _, ok := registry.Lookup(decl.Name); !ok {
				result.Errors = append(result.Errors, invalidDecorator(decl))
			}
			entry.Declarations = append(entry.Declarations, decl)
		}

		if i, dup := seen[u.name]; dup {
			result.Warnings = append(result.Warnings, ParseError{
				Message:  fmt.Sprintf("Duplicate key '%s'", u.name),
				Position: u.pos,
			})
			result.Entries[i] = entry
			continue
		}
		seen[u.name] = len(result.Entries)
		result.Entries = append(result.Entries, entry)
	}

	result.Warnings = append(result.Warnings, danglingWarnings(out.dangling)...)
	return result
}

func declare(line decoratorLine) Declaration {
	name, arg := decorators.ParseLine(line.text)
	return Declaration{Name: name, Argument: arg, Position: line.pos}
}

func invalidDecorator(decl Declaration) ParseError {
	return ParseError{
		Message:  fmt.Sprintf("Invalid decorator '%s'", decl.Name),
		Position: decl.Position,
	}
}

func danglingWarnings(lines []decoratorLine) []ParseError {
	warnings := make([]ParseError, 0, len(lines))
	for _, line := range lines {
		decl := declare(line)
		warnings = append(warnings, ParseError{
			Message:  fmt.Sprintf("Decorator '@%s' is not followed by a key", decl.Name),
			Position: decl.Position,
		})
	}
	return warnings
}
