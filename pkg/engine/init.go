package engine

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
)

// DefaultSourceContent is written to a new source file.
var DefaultSourceContent = heredoc.Doc(`
	@matches("bar")
	FOO="bar"
`)

// DefaultTemplateContent is written to a new template file.
var DefaultTemplateContent = heredoc.Doc(`
	# Use this file to scaffold what the '.vnv' file should look like without values
	# This file should be committed to your source control and vnv will verify that the '.vnv' file matches this files template

	@matches("bar")
	FOO
`)

var banner = heredoc.Doc(`
	__   ___ ____   __
	\ \ / / '_ \ \ / /
	 \ V /| | | \ V /
	  \_/ |_| |_|\_/
`)

// InitOptions configures an init run.
type InitOptions struct {
	// Yes accepts the default paths, keeps existing files and creates a
	// template without asking.
	Yes bool
}

// Init creates the source file, optionally a template file, and the
// settings file pointing at them. It does not parse anything.
func (r *Runner) Init(ctx context.Context, opts InitOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prompter := r.prompter
	if opts.Yes {
		prompter = DefaultPrompter{}
	}

	fmt.Fprintln(r.out, banner)

	src, err := prompter.Ask("Where is the source file?", r.settings.Source)
	if err != nil {
		return err
	}
	if err := r.scaffold(prompter, "source", src, DefaultSourceContent); err != nil {
		return err
	}
	r.settings.Source = src

	useTemplate := opts.Yes
	if !opts.Yes {
		useTemplate, err = prompter.Confirm("Use a template file", false)
		if err != nil {
			return err
		}
	}

	if useTemplate {
		path, err := prompter.Ask("Where is the template file?", r.settings.TemplatePath())
		if err != nil {
			return err
		}
		if err := r.scaffold(prompter, "template", path, DefaultTemplateContent); err != nil {
			return err
		}
		r.settings.Template = path
	}

	if err := r.loader.Save(r.settingsPath, r.settings); err != nil {
		return NewConfigError("failed to write settings", err).WithPath(r.settingsPath).WithOperation("init")
	}
	fmt.Fprintf(r.out, "Wrote settings to %s\n", r.settingsPath)

	r.logger.WithField("source", src).WithField("template", r.settings.Template).Debug("initialized")
	return nil
}

// scaffold writes content to path, asking before overwriting an existing file.
func (r *Runner) scaffold(prompter Prompter, kind, path, content string) error {
	exists, err := r.exists(path)
	if err != nil {
		return err
	}

	if exists {
		overwrite, err := prompter.Confirm(fmt.Sprintf("Overwrite %s file", kind), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintf(r.out, "Keeping existing %s file at %s\n", kind, path)
			return nil
		}
		fmt.Fprintf(r.out, "Overwriting %s file at %s\n", kind, path)
	} else {
		fmt.Fprintf(r.out, "Creating %s file at %s\n", kind, path)
	}

	return r.writeFile(path, []byte(content))
}
