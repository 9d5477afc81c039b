package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/render"
)

// BuildOptions configures a build run.
type BuildOptions struct {
	// Target selects which environment-scoped keys are written.
	Target parsing.Environment
}

// Build checks the source and, when it passes, writes the dotenv output file.
// Nothing is written for an invalid source.
func (r *Runner) Build(ctx context.Context, opts BuildOptions) error {
	report, err := r.Check(ctx, CheckOptions{Target: opts.Target, Format: render.FormatText})
	if err != nil {
		return err
	}

	output := r.settings.Build.Output

	var buf bytes.Buffer
	err = render.Dotenv(&buf, report.Result.Keys, render.DotenvOptions{
		Source: r.settings.Source,
		Minify: r.settings.Build.Minify,
		Target: opts.Target,
	})
	if err != nil {
		return fmt.Errorf("failed to render dotenv output: %w", err)
	}

	if err := r.writeFile(output, buf.Bytes()); err != nil {
		return err
	}

	r.logger.WithFile(output).
		WithField("target", opts.Target.String()).
		Debugf("wrote %d bytes", buf.Len())
	fmt.Fprintf(r.out, "Completed build wrote output to %s.\n", output)
	return nil
}
