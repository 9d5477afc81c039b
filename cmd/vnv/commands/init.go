package commands

import (
	"github.com/spf13/cobra"

	"github.com/vnv-dev/vnv/pkg/engine"
)

func newInitCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a vnv file, a template and the settings file",
		Long: `Create a starter vnv file, optionally a template file, and a settings file
pointing at them. Existing files are only overwritten after confirmation.`,
		Example: `  # Answer the questions interactively
  vnv init

  # Use the default paths and create a template
  vnv init --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, yes, nil)
			if err != nil {
				return err
			}
			return s.runner.Init(cmd.Context(), engine.InitOptions{Yes: yes})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept the defaults without asking")

	return cmd
}
