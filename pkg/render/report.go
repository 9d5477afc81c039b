package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/vnv-dev/vnv/pkg/decorators"
	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/values"
)

// ReportOptions controls the check report.
type ReportOptions struct {
	// Source is the file name printed in locations.
	Source string

	// Cloak masks values in excerpts and messages.
	Cloak bool

	// Target is the environment being checked. Keys outside it are skipped.
	Target parsing.Environment

	// NoColor disables ANSI colors regardless of the terminal.
	NoColor bool
}

// Located is a diagnostic reported against a named file, such as a
// difference between the source and its template.
type Located struct {
	File               string `json:"file" yaml:"file"`
	parsing.ParseError `yaml:",inline"`
}

type palette struct {
	err   *color.Color
	warn  *color.Color
	frame *color.Color
	caret *color.Color
	pass  *color.Color
	skip  *color.Color
	bold  *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgHiYellow, color.Bold),
		frame: color.New(color.FgBlue),
		caret: color.New(color.FgRed),
		pass:  color.New(color.FgGreen),
		skip:  color.New(color.FgHiBlack),
		bold:  color.New(color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{p.err, p.warn, p.frame, p.caret, p.pass, p.skip, p.bold} {
			c.DisableColor()
		}
	}
	return p
}

// Reporter writes the human-readable check report.
type Reporter struct {
	w    io.Writer
	opts ReportOptions
	p    palette
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, opts ReportOptions) *Reporter {
	return &Reporter{w: w, opts: opts, p: newPalette(opts.NoColor)}
}

// Report writes one status line per key, a diagnostic block per validation
// error, then file-level errors, extra errors and warnings. It reports whether
// the source passed for the target environment.
func (r *Reporter) Report(result *parsing.ParseResult, extra []Located) bool {
	fmt.Fprintf(r.w, "Checking '%s'...\n", r.opts.Source)

	for _, k := range result.Keys {
		switch {
		case !k.Environment.Includes(r.opts.Target):
			fmt.Fprintf(r.w, "%s %s\n", r.p.skip.Sprint(k.Name), r.p.skip.Sprint("(skipped)"))
		case k.Valid:
			fmt.Fprintf(r.w, "%s %s\n", k.Name, r.p.pass.Sprint("✔"))
		default:
			fmt.Fprintf(r.w, "%s %s\n", k.Name, r.p.err.Sprint("✘"))
			for _, e := range k.Errors {
				r.diagnostic(k, e)
			}
		}
	}

	for _, e := range result.Errors {
		r.located("ERROR", r.p.err, r.opts.Source, e)
	}
	for _, e := range extra {
		r.located("ERROR", r.p.err, e.File, e.ParseError)
	}
	for _, w := range result.Warnings {
		r.located("WARN", r.p.warn, r.opts.Source, w)
	}

	return result.ValidFor(r.opts.Target) && len(extra) == 0
}

func (r *Reporter) located(label string, c *color.Color, file string, e parsing.ParseError) {
	fmt.Fprintf(r.w, "%s: %s\n", c.Sprint(label), r.p.bold.Sprint(e.Message))
	fmt.Fprintf(r.w, "%s %s:%s\n", r.p.frame.Sprint("-->"), file, e.Position)
}

// diagnostic writes the framed excerpt for one validation error:
//
//	ERROR: 'abcd' is too short. Minimum length is 5.
//	--> .vnv:2:1
//	     |
//	 2   |  SOMETHING="abcd"
//	     |            ^^^^^^
func (r *Reporter) diagnostic(k parsing.Key, e decorators.ValidationError) {
	message := e.Message
	if r.opts.Cloak {
		message = cloakMessage(message, k, e)
	}
	line, carets := excerpt(k, e, r.opts.Cloak)

	number := strconv.FormatUint(uint64(k.Position.Line), 10)
	width := max(2, len(number))
	gutter := strings.Repeat(" ", width+3)
	bar := r.p.frame.Sprint("|")

	r.located("ERROR", r.p.err, r.opts.Source, parsing.ParseError{Message: message, Position: k.Position})
	fmt.Fprintf(r.w, "%s%s\n", gutter, bar)
	fmt.Fprintf(r.w, "%s   %s  %s\n", r.p.frame.Sprint(fmt.Sprintf("%*s", width, number)), bar, line)
	fmt.Fprintf(r.w, "%s%s  %s\n", gutter, bar, r.p.caret.Sprint(carets))
	fmt.Fprintln(r.w)
}

// excerpt returns the KEY=value line shown for a validation error and the
// caret line underlining the offending value. Without an offending value the
// whole value is underlined. Offsets are display widths.
func excerpt(k parsing.Key, e decorators.ValidationError, cloak bool) (string, string) {
	prefix := k.Name + "="
	rendered := k.Value.Render()

	start, width := 0, runewidth.StringWidth(rendered)
	if e.Value != nil && k.Value.IsArray() {
		start, width = elementSpan(k.Value, e.Index)
	}

	if cloak {
		rendered = mask(rendered)
	}

	carets := strings.Repeat(" ", runewidth.StringWidth(prefix)+start) + strings.Repeat("^", width)
	return prefix + rendered, carets
}

// elementSpan returns the display offset and width of element i inside the
// rendering of the array v.
func elementSpan(v values.Value, i int) (int, int) {
	elems := v.Elements()
	if i < 0 || i >= len(elems) {
		return 0, runewidth.StringWidth(v.Render())
	}
	start := runewidth.StringWidth("[")
	for _, elem := range elems[:i] {
		start += runewidth.StringWidth(elem.Render() + ", ")
	}
	return start, runewidth.StringWidth(elems[i].Render())
}

// cloakMessage masks the first occurrence of each value element in message.
func cloakMessage(message string, k parsing.Key, e decorators.ValidationError) string {
	v := k.Value
	if e.Value != nil {
		v = *e.Value
	}
	for _, elem := range v.Elements() {
		message = maskFirst(message, elem)
	}
	return message
}

func maskFirst(message string, elem values.Value) string {
	plain := elem.Plain()
	if plain == "" {
		return message
	}
	return strings.Replace(message, plain, mask(plain), 1)
}

func mask(s string) string {
	return strings.Repeat("*", runewidth.StringWidth(s))
}
