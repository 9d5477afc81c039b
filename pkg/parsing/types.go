package parsing

import (
	"fmt"

	"github.com/vnv-dev/vnv/pkg/decorators"
	"github.com/vnv-dev/vnv/pkg/values"
)

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   uint `json:"line" yaml:"line"`
	Column uint `json:"column" yaml:"column"`
}

// String formats the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func startPosition() Position {
	return Position{Line: 1, Column: 1}
}

// Scope controls whether downstream tooling treats a key as internal.
type Scope int

const (
	// ScopePrivate is the default scope.
	ScopePrivate Scope = iota

	// ScopePublic is set by the public decorator.
	ScopePublic
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopePublic {
		return "public"
	}
	return "private"
}

// MarshalText encodes the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Environment selects the build targets a key is emitted for.
type Environment int

const (
	// EnvironmentAll keys are emitted for every target.
	EnvironmentAll Environment = iota

	// EnvironmentDev keys are emitted for development builds only.
	EnvironmentDev

	// EnvironmentProd keys are emitted for production builds only.
	EnvironmentProd
)

// String returns the environment name.
func (e Environment) String() string {
	switch e {
	case EnvironmentDev:
		return "dev"
	case EnvironmentProd:
		return "prod"
	default:
		return "all"
	}
}

// MarshalText encodes the environment by name.
func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Includes reports whether a key in environment e belongs to a build for target.
func (e Environment) Includes(target Environment) bool {
	return e == EnvironmentAll || e == target
}

// Declaration is one decorator line preceding a key.
type Declaration struct {
	Name     string              `json:"name" yaml:"name"`
	Argument decorators.Argument `json:"argument" yaml:"argument"`
	Position Position            `json:"position" yaml:"position"`
}

// Source renders the declaration the way it is written in a vnv file.
func (d Declaration) Source() string {
	if d.Argument.Kind == decorators.ArgumentNone {
		return "@" + d.Name
	}
	return "@" + d.Name + "(" + d.Argument.Source() + ")"
}

// Key is one assignment after coercion and validation.
type Key struct {
	Name        string                       `json:"name" yaml:"name"`
	Scope       Scope                        `json:"scope" yaml:"scope"`
	Environment Environment                  `json:"environment" yaml:"environment"`
	Value       values.Value                 `json:"value" yaml:"value"`
	Position    Position                     `json:"position" yaml:"position"`
	Decorators  []Declaration                `json:"decorators" yaml:"decorators"`
	Errors      []decorators.ValidationError `json:"errors" yaml:"errors"`
	Valid       bool                         `json:"valid" yaml:"valid"`
}

// ParseError is a file-level diagnostic.
type ParseError struct {
	Message  string   `json:"message" yaml:"message"`
	Position Position `json:"position" yaml:"position"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// ParseResult is the outcome of parsing one vnv file.
type ParseResult struct {
	Keys     []Key        `json:"keys" yaml:"keys"`
	Valid    bool         `json:"valid" yaml:"valid"`
	Errors   []ParseError `json:"errors" yaml:"errors"`
	Warnings []ParseError `json:"warnings" yaml:"warnings"`
}

// Key returns the key named name.
func (r *ParseResult) Key(name string) (Key, bool) {
	for _, k := range r.Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// ValidFor reports whether the result passes for a build targeting env:
// no file-level errors, and every key included in env is valid.
func (r *ParseResult) ValidFor(env Environment) bool {
	if len(r.Errors) > 0 {
		return false
	}
	for _, k := range r.Keys {
		if k.Environment.Includes(env) && !k.Valid {
			return false
		}
	}
	return true
}

// TemplateEntry is one key of a template file.
type TemplateEntry struct {
	Name         string        `json:"name" yaml:"name"`
	Declarations []Declaration `json:"declarations" yaml:"declarations"`
	Position     Position      `json:"position" yaml:"position"`
}

// TemplateResult is the outcome of parsing a template file.
type TemplateResult struct {
	Entries  []TemplateEntry `json:"entries" yaml:"entries"`
	Errors   []ParseError    `json:"errors" yaml:"errors"`
	Warnings []ParseError    `json:"warnings" yaml:"warnings"`
}

// Entry returns the template entry named name.
func (r *TemplateResult) Entry(name string) (TemplateEntry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return TemplateEntry{}, false
}
