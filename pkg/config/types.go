package config

// Default locations and values.
const (
	// DefaultPath is the settings file looked up in the working directory.
	DefaultPath = ".vnv.config.json"

	// DefaultSource is the vnv file checked and built when none is configured.
	DefaultSource = ".vnv"

	// DefaultTemplate is where template writes when no template is configured.
	DefaultTemplate = ".vnv.template"

	// DefaultOutput is the dotenv file written by build.
	DefaultOutput = ".env"
)

// Settings is the content of the settings file.
type Settings struct {
	// Source is the vnv file to check and build.
	Source string `json:"src" yaml:"src" validate:"required"`

	// Cloak masks values in check output.
	Cloak bool `json:"cloak" yaml:"cloak"`

	// Template is the optional template file the source is compared against.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Build configures dotenv output.
	Build BuildSettings `json:"build" yaml:"build"`
}

// BuildSettings configures the build command.
type BuildSettings struct {
	// Output is the dotenv file to write.
	Output string `json:"output" yaml:"output" validate:"required"`

	// Minify drops the banner and decorator comments.
	Minify bool `json:"minify" yaml:"minify"`
}

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		Source: DefaultSource,
		Build: BuildSettings{
			Output: DefaultOutput,
		},
	}
}

// HasTemplate reports whether a template file is configured.
func (s Settings) HasTemplate() bool {
	return s.Template != ""
}

// TemplatePath returns the configured template path or DefaultTemplate.
func (s Settings) TemplatePath() string {
	if s.HasTemplate() {
		return s.Template
	}
	return DefaultTemplate
}
