// Package render turns parse results into the files and reports vnv writes:
// dotenv output for build, template files, and the check report with
// caret-underlined diagnostics.
//
// Renderers never read the filesystem. Callers pass the source text and the
// parse result and receive the output on an io.Writer.
package render
