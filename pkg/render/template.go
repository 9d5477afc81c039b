package render

import (
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/vnv-dev/vnv/pkg/parsing"
)

// Template writes each key's decorators followed by its bare name.
func Template(w io.Writer, keys []parsing.Key) error {
	var sb strings.Builder
	for _, k := range keys {
		for _, line := range Declarations(k.Decorators) {
			sb.WriteString(line + "\n")
		}
		sb.WriteString(k.Name + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Declarations returns the source form of each declaration.
func Declarations(decls []parsing.Declaration) []string {
	return lo.Map(decls, func(d parsing.Declaration, _ int) string {
		return d.Source()
	})
}
