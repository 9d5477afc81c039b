package commands

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vnv-dev/vnv/pkg/config"
	"github.com/vnv-dev/vnv/pkg/engine"
	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/telemetry"
	"github.com/vnv-dev/vnv/pkg/watch"
)

// session is the state shared by one command invocation.
type session struct {
	logger   *telemetry.Logger
	settings config.Settings
	runner   *engine.Runner
}

// newSession loads the settings, applies override and builds the runner.
// assumeYes answers every prompt with its default.
func newSession(cmd *cobra.Command, assumeYes bool, override func(*config.Settings)) (*session, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}

	if noColor {
		color.NoColor = true
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath
	}

	fs := afero.NewOsFs()
	settings, err := config.NewLoader(fs).Load(path)
	if err != nil {
		return nil, engine.NewConfigError("failed to load settings", err).WithPath(path)
	}
	if override != nil {
		override(&settings)
	}

	logger.WithFile(path).
		WithField("src", settings.Source).
		WithField("template", settings.Template).
		Debug("Loaded settings")

	runner := engine.NewRunner(engine.Options{
		Fs:           fs,
		Settings:     settings,
		SettingsPath: path,
		Logger:       logger,
		Out:          cmd.OutOrStdout(),
		Prompter:     newPrompter(cmd, assumeYes),
		NoColor:      noColor,
	})

	return &session{logger: logger, settings: settings, runner: runner}, nil
}

func newLogger() (*telemetry.Logger, error) {
	cfg := telemetry.DefaultLoggingConfig()
	if verbose {
		cfg.Level = "debug"
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	cfg.NoColor = noColor

	logger, err := telemetry.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return logger.WithNewRunID(), nil
}

// newPrompter asks on the terminal when stdin is one, and otherwise
// answers with the defaults.
func newPrompter(cmd *cobra.Command, assumeYes bool) engine.Prompter {
	if assumeYes || !term.IsTerminal(int(os.Stdin.Fd())) {
		return engine.DefaultPrompter{}
	}
	return engine.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout(), noColor)
}

// target resolves the --dev and --prod flags. Both together fall back to dev.
func (s *session) target(dev, prod bool) parsing.Environment {
	switch {
	case dev && prod:
		s.logger.Warn("You provided multiple environment flags (--dev, --prod) defaulting to the development environment")
		return parsing.EnvironmentDev
	case prod:
		return parsing.EnvironmentProd
	default:
		return parsing.EnvironmentDev
	}
}

// watch runs fn now and after every change to the source or template.
func (s *session) watch(ctx context.Context, fn watch.RunFunc) error {
	paths := []string{s.settings.Source}
	if s.settings.HasTemplate() {
		paths = append(paths, s.settings.Template)
	}
	return watch.New(s.logger, watch.DefaultDelay).Run(ctx, paths, fn)
}
