package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/vnv-dev/vnv/pkg/parsing"
)

// DotenvOptions controls dotenv output.
type DotenvOptions struct {
	// Source is the vnv file the output was generated from, named in the banner.
	Source string

	// Minify drops the banner and the decorator comments.
	Minify bool

	// Target selects which environment-scoped keys are written.
	Target parsing.Environment
}

// Banner returns the header written at the top of generated dotenv files.
func Banner(source string) string {
	return fmt.Sprintf("# This file was generated from '%s' by vnv.\n\n", source)
}

// FilterKeys returns the keys that belong to a build for target.
func FilterKeys(keys []parsing.Key, target parsing.Environment) []parsing.Key {
	return lo.Filter(keys, func(k parsing.Key, _ int) bool {
		return k.Environment.Includes(target)
	})
}

// Dotenv writes one KEY=value line per key in the target environment.
// Values use their canonical rendering.
func Dotenv(w io.Writer, keys []parsing.Key, opts DotenvOptions) error {
	var sb strings.Builder

	if !opts.Minify {
		sb.WriteString(Banner(opts.Source))
	}

	for _, k := range FilterKeys(keys, opts.Target) {
		if !opts.Minify {
			for _, d := range k.Decorators {
				sb.WriteString("# " + d.Source() + "\n")
			}
		}
		sb.WriteString(k.Name + "=" + k.Value.Render() + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
