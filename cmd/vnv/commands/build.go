package commands

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/vnv-dev/vnv/pkg/engine"
)

func newBuildCommand() *cobra.Command {
	var (
		dev       bool
		prod      bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Check the vnv file and write the dotenv output",
		Long: heredoc.Doc(`
			Check the vnv file and, when it passes, write a dotenv file with the
			keys of the selected environment.

			Unless build.minify is set, the output starts with a banner and lists
			each key's decorators as comments.
		`),
		Example: heredoc.Doc(`
			  # Build .env for development
			  vnv build

			  # Build for production
			  vnv build --prod
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, false, nil)
			if err != nil {
				return err
			}

			opts := engine.BuildOptions{Target: s.target(dev, prod)}
			run := func(ctx context.Context) error {
				return s.runner.Build(ctx, opts)
			}

			if watchMode {
				return s.watch(cmd.Context(), run)
			}
			return run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "build for the development environment (default)")
	cmd.Flags().BoolVar(&prod, "prod", false, "build for the production environment")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "rebuild when the source or template changes")

	return cmd
}
