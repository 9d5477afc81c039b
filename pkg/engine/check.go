package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/render"
)

// CheckOptions configures a check run.
type CheckOptions struct {
	// Target is the environment being checked.
	Target parsing.Environment

	// Format selects the text report or a structured encoding.
	Format render.Format
}

// CheckReport is the outcome of a check run. It is what --format json and
// --format yaml print.
type CheckReport struct {
	Source   string               `json:"source" yaml:"source"`
	Target   parsing.Environment  `json:"target" yaml:"target"`
	Valid    bool                 `json:"valid" yaml:"valid"`
	Result   *parsing.ParseResult `json:"result" yaml:"result"`
	Template []render.Located     `json:"template_errors" yaml:"template_errors"`
}

// Check parses the source, compares it against the template when one is
// configured and prints the report. An invalid source returns the report
// together with an invalid source error.
func (r *Runner) Check(ctx context.Context, opts CheckOptions) (*CheckReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := r.settings.Source
	log := r.logger.WithFile(src)
	start := time.Now()

	content, err := r.readFile(src)
	if err != nil {
		return nil, err
	}

	result := parsing.Parse(content)
	log.Debugf("parsed %d keys with %d errors and %d warnings",
		len(result.Keys), len(result.Errors), len(result.Warnings))

	mismatches, err := r.checkTemplate(result)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{
		Source:   src,
		Target:   opts.Target,
		Valid:    result.ValidFor(opts.Target) && len(mismatches) == 0,
		Result:   result,
		Template: mismatches,
	}

	switch opts.Format {
	case render.FormatText, "":
		reporter := render.NewReporter(r.out, render.ReportOptions{
			Source:  src,
			Cloak:   r.settings.Cloak,
			Target:  opts.Target,
			NoColor: r.noColor,
		})
		reporter.Report(result, mismatches)

		elapsed := time.Since(start).Round(time.Microsecond)
		if report.Valid {
			fmt.Fprintf(r.out, "Completed in %s\n", elapsed)
		} else {
			fmt.Fprintf(r.out, "Check completed in %s\n", elapsed)
		}
	default:
		if err := render.Encode(r.out, opts.Format, report); err != nil {
			return nil, fmt.Errorf("failed to print check report: %w", err)
		}
	}

	if !report.Valid {
		return report, NewInvalidSourceError("check failed").WithPath(src).WithOperation("check")
	}
	return report, nil
}

// checkTemplate compares result against the configured template. A missing
// template file is not an error.
func (r *Runner) checkTemplate(result *parsing.ParseResult) ([]render.Located, error) {
	if !r.settings.HasTemplate() {
		return nil, nil
	}

	path := r.settings.Template
	ok, err := r.exists(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		r.logger.WithFile(path).Debug("template file not found, skipping comparison")
		return nil, nil
	}

	content, err := r.readFile(path)
	if err != nil {
		return nil, err
	}
	return compareTemplate(r.settings.Source, result, path, parsing.ParseTemplate(content)), nil
}

// compareTemplate reports template entries missing from the source, source
// keys missing from the template and keys whose decorators differ.
// Decorator order does not matter.
func compareTemplate(src string, result *parsing.ParseResult, path string, tmpl *parsing.TemplateResult) []render.Located {
	var out []render.Located

	for _, e := range tmpl.Errors {
		out = append(out, render.Located{File: path, ParseError: e})
	}

	for _, entry := range tmpl.Entries {
		k, ok := result.Key(entry.Name)
		if !ok {
			out = append(out, render.Located{File: path, ParseError: parsing.ParseError{
				Message:  fmt.Sprintf("Key '%s' is declared in the template but missing from the source", entry.Name),
				Position: entry.Position,
			}})
			continue
		}

		want := render.Declarations(entry.Declarations)
		got := render.Declarations(k.Decorators)
		if !sameDeclarations(want, got) {
			out = append(out, render.Located{File: src, ParseError: parsing.ParseError{
				Message: fmt.Sprintf("Decorators of key '%s' do not match the template: expected %s, found %s",
					k.Name, listDeclarations(want), listDeclarations(got)),
				Position: k.Position,
			}})
		}
	}

	for _, k := range result.Keys {
		if _, ok := tmpl.Entry(k.Name); !ok {
			out = append(out, render.Located{File: src, ParseError: parsing.ParseError{
				Message:  fmt.Sprintf("Key '%s' is not declared in the template", k.Name),
				Position: k.Position,
			}})
		}
	}

	return out
}

func sameDeclarations(a, b []string) bool {
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

func listDeclarations(decls []string) string {
	if len(decls) == 0 {
		return "none"
	}
	return strings.Join(decls, " ")
}
