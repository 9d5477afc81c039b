package decorators

import (
	"sort"

	"github.com/vnv-dev/vnv/pkg/values"
)

// Built-in decorator names.
const (
	NamePrivate      = "private"
	NamePublic       = "public"
	NameDev          = "dev"
	NameProd         = "prod"
	NameMin          = "min"
	NameMax          = "max"
	NameStartsWith   = "startsWith"
	NameEndsWith     = "endsWith"
	NameMatches      = "matches"
	NameDoesNotMatch = "doesNotMatch"
)

// Validator checks a value against a decorator argument.
// A nil or empty result means the value satisfies the constraint.
type Validator interface {
	Validate(value values.Value, arg Argument) []ValidationError
}

// Registry is an immutable lookup table from decorator name to Validator.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry returns a registry holding the built-in decorators.
func NewRegistry() *Registry {
	return &Registry{
		validators: map[string]Validator{
			NamePrivate:      noop{},
			NamePublic:       noop{},
			NameDev:          noop{},
			NameProd:         noop{},
			NameMin:          bound{name: NameMin, lower: true},
			NameMax:          bound{name: NameMax},
			NameStartsWith:   affix{name: NameStartsWith, prefix: true},
			NameEndsWith:     affix{name: NameEndsWith},
			NameMatches:      pattern{name: NameMatches, mustMatch: true},
			NameDoesNotMatch: pattern{name: NameDoesNotMatch},
		},
	}
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Validator, bool) {
	v, ok := r.validators[name]
	return v, ok
}

// Names returns the registered decorator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
