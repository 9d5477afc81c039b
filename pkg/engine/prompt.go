package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Prompter asks the user questions during init and template.
type Prompter interface {
	// Ask returns the answer to question, or def when the answer is empty.
	Ask(question, def string) (string, error)

	// Confirm asks a yes/no question. An empty answer selects def.
	Confirm(question string, def bool) (bool, error)
}

// LinePrompter reads one answer per line.
type LinePrompter struct {
	in   *bufio.Reader
	out  io.Writer
	hint *color.Color
}

// NewLinePrompter returns a prompter reading from in and writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer, noColor bool) *LinePrompter {
	hint := color.New(color.Faint, color.Italic)
	if noColor {
		hint.DisableColor()
	}
	return &LinePrompter{in: bufio.NewReader(in), out: out, hint: hint}
}

// Ask implements Prompter.
func (p *LinePrompter) Ask(question, def string) (string, error) {
	fmt.Fprintf(p.out, "%s '%s': ", question, p.hint.Sprint(def))
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	choices := "y/N"
	if def {
		choices = "Y/n"
	}
	fmt.Fprintf(p.out, "%s %s? ", question, p.hint.Sprint(choices))

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

func (p *LinePrompter) readLine() (string, error) {
	// EOF yields whatever was typed, possibly nothing.
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// DefaultPrompter answers every question with its default. It is used with
// --yes and when stdin is not a terminal.
type DefaultPrompter struct{}

// Ask implements Prompter.
func (DefaultPrompter) Ask(_, def string) (string, error) {
	return def, nil
}

// Confirm implements Prompter.
func (DefaultPrompter) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}
