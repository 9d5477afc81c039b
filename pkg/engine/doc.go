// Package engine runs the vnv commands.
//
// # Overview
//
// A Runner ties the parser, the renderers and the settings file together
// over an afero filesystem:
//
//   - Check parses the source, compares it with the template and prints the report
//   - Build runs Check and writes the dotenv output for a target environment
//   - Template writes a template file mirroring the source
//   - Init scaffolds a source file, an optional template and the settings file
//
// # Usage Example
//
//	runner := engine.NewRunner(engine.Options{
//	    Settings: settings,
//	    Logger:   logger,
//	})
//
//	if _, err := runner.Check(ctx, engine.CheckOptions{Target: parsing.EnvironmentDev}); err != nil {
//	    if engine.IsInvalidSource(err) {
//	        os.Exit(1)
//	    }
//	    return err
//	}
//
// # Error Handling
//
// Errors returned by a Runner are classified *Error values:
//
//   - ErrorClassInvalidSource: the source failed its checks; diagnostics were printed
//   - ErrorClassIO: a file could not be read or written
//   - ErrorClassConfig: the settings file could not be written
//   - ErrorClassAborted: the user declined a prompt
//
// Use IsInvalidSource, IsIO, IsConfig and IsAborted to inspect them.
//
// # Testing
//
// Pass afero.NewMemMapFs() as Options.Fs and a bytes.Buffer as Options.Out to
// run commands without touching the disk.
package engine
