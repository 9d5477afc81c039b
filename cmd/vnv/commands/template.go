package commands

import (
	"github.com/spf13/cobra"

	"github.com/vnv-dev/vnv/pkg/engine"
)

func newTemplateCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a template file from the vnv file",
		Long: `Write a template file holding the decorators and key names of the vnv file,
without values. Commit the template so that check can verify every copy of the
source declares the same keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, yes, nil)
			if err != nil {
				return err
			}
			return s.runner.Template(cmd.Context(), engine.TemplateOptions{Yes: yes})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite an existing template without asking")

	return cmd
}
