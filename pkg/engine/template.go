package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/render"
)

// TemplateOptions configures a template run.
type TemplateOptions struct {
	// Yes overwrites an existing template without asking.
	Yes bool
}

// Template writes a template file mirroring the source's decorators and key
// names. It refuses an invalid source. When no template path was configured,
// the default path is recorded in the settings file.
func (r *Runner) Template(ctx context.Context, opts TemplateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src := r.settings.Source
	path := r.settings.TemplatePath()

	content, err := r.readFile(src)
	if err != nil {
		return err
	}

	exists, err := r.exists(path)
	if err != nil {
		return err
	}
	if exists && !opts.Yes {
		ok, err := r.prompter.Confirm(fmt.Sprintf("Overwrite current template file %s", path), true)
		if err != nil {
			return err
		}
		if !ok {
			return NewAbortedError("template file left unchanged").WithPath(path).WithOperation("template")
		}
	}

	result := parsing.Parse(content)
	if !result.Valid {
		fmt.Fprintf(r.out, "Error: %s not valid.\n", src)
		return NewInvalidSourceError("refusing to write a template for an invalid source").
			WithPath(src).
			WithOperation("template")
	}

	var buf bytes.Buffer
	if err := render.Template(&buf, result.Keys); err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	if err := r.writeFile(path, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Wrote new template file to %s\n", path)

	if !r.settings.HasTemplate() {
		r.settings.Template = path
		if err := r.loader.Save(r.settingsPath, r.settings); err != nil {
			return NewConfigError("failed to record the template path", err).WithPath(r.settingsPath)
		}
		fmt.Fprintln(r.out, "Wrote template path to config file.")
	}

	return nil
}
