package engine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/afero"

	"github.com/vnv-dev/vnv/pkg/config"
	"github.com/vnv-dev/vnv/pkg/telemetry"
)

// Options configures a Runner. Zero fields take the defaults noted below.
type Options struct {
	// Fs is the filesystem all files are read from and written to.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// Settings are the effective settings, after command-line overrides.
	Settings config.Settings

	// SettingsPath is where template and init save settings.
	// Defaults to config.DefaultPath.
	SettingsPath string

	// Logger defaults to a discarding logger.
	Logger *telemetry.Logger

	// Out receives user-facing output. Defaults to os.Stdout.
	Out io.Writer

	// Prompter answers questions. Defaults to DefaultPrompter.
	Prompter Prompter

	// NoColor disables colors in reports.
	NoColor bool
}

// Runner executes the vnv commands against a filesystem.
type Runner struct {
	fs           afero.Fs
	loader       *config.Loader
	settings     config.Settings
	settingsPath string
	logger       *telemetry.Logger
	out          io.Writer
	prompter     Prompter
	noColor      bool
}

// NewRunner creates a runner from opts.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		fs:           opts.Fs,
		settings:     opts.Settings,
		settingsPath: opts.SettingsPath,
		logger:       opts.Logger,
		out:          opts.Out,
		prompter:     opts.Prompter,
		noColor:      opts.NoColor,
	}

	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.settingsPath == "" {
		r.settingsPath = config.DefaultPath
	}
	if r.logger == nil {
		r.logger = telemetry.Nop()
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.prompter == nil {
		r.prompter = DefaultPrompter{}
	}

	r.loader = config.NewLoader(r.fs)
	r.logger = r.logger.NewComponentLogger("engine")
	return r
}

// Settings returns the settings the runner works with.
func (r *Runner) Settings() config.Settings {
	return r.settings
}

// readFile returns the content of path, classifying failures as I/O errors.
func (r *Runner) readFile(path string) (string, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewIOError(fmt.Sprintf("Couldn't find a file at %s", path), err).WithPath(path)
		}
		return "", NewIOError("failed to read file", err).WithPath(path)
	}
	return string(data), nil
}

func (r *Runner) writeFile(path string, data []byte) error {
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		return NewIOError("failed to write file", err).WithPath(path)
	}
	return nil
}

func (r *Runner) exists(path string) (bool, error) {
	ok, err := afero.Exists(r.fs, path)
	if err != nil {
		return false, NewIOError("failed to stat file", err).WithPath(path)
	}
	return ok, nil
}
