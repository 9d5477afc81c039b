package commands

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/vnv-dev/vnv/pkg/config"
	"github.com/vnv-dev/vnv/pkg/engine"
	"github.com/vnv-dev/vnv/pkg/render"
)

func newCheckCommand() *cobra.Command {
	var (
		cloak     bool
		dev       bool
		prod      bool
		watchMode bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate the vnv file",
		Long: heredoc.Doc(`
			Parse the vnv file and evaluate every decorator against its key.

			Keys scoped to another environment with @dev or @prod are skipped.
			When a template file is configured, the source must declare the same
			keys with the same decorators. The command exits with status 1 when
			the check fails.
		`),
		Example: heredoc.Doc(`
			  # Check the configured source for the development environment
			  vnv check

			  # Check another file for production, hiding values
			  vnv check .vnv.prod --prod --cloak

			  # Print the result as JSON
			  vnv check --format json

			  # Re-check whenever the file changes
			  vnv check --watch
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := newSession(cmd, false, func(settings *config.Settings) {
				if len(args) > 0 {
					settings.Source = args[0]
				}
				if cloak {
					settings.Cloak = true
				}
			})
			if err != nil {
				return err
			}

			opts := engine.CheckOptions{Target: s.target(dev, prod), Format: f}
			run := func(ctx context.Context) error {
				_, err := s.runner.Check(ctx, opts)
				return err
			}

			if watchMode {
				return s.watch(cmd.Context(), run)
			}
			return run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&cloak, "cloak", false, "mask values in the output")
	cmd.Flags().BoolVar(&dev, "dev", false, "check the development environment (default)")
	cmd.Flags().BoolVar(&prod, "prod", false, "check the production environment")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "re-run the check when the source or template changes")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), "output format (text, json, yaml)")

	return cmd
}
