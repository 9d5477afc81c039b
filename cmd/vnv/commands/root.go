package commands

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vnv",
		Short: "vnv - validated environment variables",
		Long: heredoc.Doc(`
			vnv checks environment files written in the vnv dialect and builds
			dotenv files from them.

			A vnv file annotates each key with decorators that constrain its value:

			  @min(8)
			  @startsWith("https://")
			  API_URL="https://example.com"

			Settings are read from .vnv.config.json in the working directory.
		`),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file path (default .vnv.config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
