package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// state is a state of the scanner automaton.
type state int

const (
	// stateNeutral waits for a decorator, a comment or the start of a key name.
	stateNeutral state = iota

	// stateDecorator accumulates a decorator line up to the line break.
	stateDecorator

	// stateComment discards a comment line up to the line break.
	stateComment

	// stateKeyName accumulates a key name up to '='.
	stateKeyName

	// stateValue accumulates a value up to the line break.
	stateValue

	// stateQuoted is a quoted string inside a value.
	stateQuoted

	// stateArray is a bracketed list inside a value; line breaks are literal.
	stateArray

	// stateArrayQuoted is a quoted string inside a bracketed list.
	stateArrayQuoted
)

var stateNames = [...]string{
	stateNeutral:     "neutral",
	stateDecorator:   "decorator",
	stateComment:     "comment",
	stateKeyName:     "key name",
	stateValue:       "value",
	stateQuoted:      "quoted",
	stateArray:       "array",
	stateArrayQuoted: "array quoted",
}

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// transitions holds one transition function per state.
var transitions = [...]func(*scanner, rune){
	stateNeutral:     (*scanner).neutral,
	stateDecorator:   (*scanner).decorator,
	stateComment:     (*scanner).comment,
	stateKeyName:     (*scanner).inKeyName,
	stateValue:       (*scanner).value,
	stateQuoted:      (*scanner).quoted,
	stateArray:       (*scanner).array,
	stateArrayQuoted: (*scanner).arrayQuoted,
}

// decoratorLine is a raw decorator line without its '@' marker.
type decoratorLine struct {
	text string
	pos  Position
}

// unit is a completed key: an assignment, or a bare key name without '='.
type unit struct {
	name       string
	pos        Position
	decorators []decoratorLine
	raw        string

	// bare is set when the line ended before '='.
	bare bool

	// unterminated is set when input ended inside a string or list.
	unterminated bool
}

// scanOutput is everything the scanner produced for one input.
type scanOutput struct {
	units []unit

	// dangling are decorator lines not followed by any key.
	dangling []decoratorLine
}

// scanner is the character-level state machine.
type scanner struct {
	state   state
	pos     Position
	buf     strings.Builder
	last    rune
	start   Position
	keyName string
	keyPos  Position
	pending []decoratorLine
	out     scanOutput
}

// scan runs the state machine over the whole of content.
func scan(content string) scanOutput {
	s := &scanner{pos: startPosition()}
	for _, r := range strings.TrimSpace(content) {
		transitions[s.state](s, r)
		s.advance(r)
	}
	s.finish()
	s.out.dangling = s.pending
	return s.out
}

func (s *scanner) advance(r rune) {
	if r == '\n' {
		s.pos.Line++
		s.pos.Column = 1
		return
	}
	s.pos.Column++
}

func (s *scanner) write(r rune) {
	s.buf.WriteRune(r)
	s.last = r
}

func (s *scanner) reset() {
	s.buf.Reset()
	s.last = 0
}

// isQuote reports whether r is a double quote not escaped by a backslash.
func (s *scanner) isQuote(r rune) bool {
	return r == '"' && s.last != '\\'
}

func (s *scanner) neutral(r rune) {
	switch {
	case r == '@':
		s.start = s.pos
		s.state = stateDecorator
	case r == '#':
		s.state = stateComment
	case unicode.IsSpace(r):
	case r == '=':
		s.keyName = ""
		s.keyPos = s.pos
		s.state = stateValue
	default:
		s.start = s.pos
		s.write(r)
		s.state = stateKeyName
	}
}

func (s *scanner) decorator(r rune) {
	if r == '\n' {
		s.endDecorator()
		return
	}
	s.write(r)
}

func (s *scanner) comment(r rune) {
	if r == '\n' {
		s.state = stateNeutral
	}
}

func (s *scanner) inKeyName(r rune) {
	switch r {
	case '=':
		name := s.buf.String()
		s.keyName = strings.TrimSpace(name)
		s.keyPos = Position{
			Line:   s.pos.Line,
			Column: s.pos.Column - uint(utf8.RuneCountInString(name)),
		}
		s.reset()
		s.state = stateValue
	case '\n':
		s.endBareKey()
	default:
		s.write(r)
	}
}

func (s *scanner) value(r rune) {
	switch {
	case r == '\n':
		s.endValue(false)
	case s.isQuote(r):
		s.write(r)
		s.state = stateQuoted
	case r == '[':
		s.state = stateArray
	default:
		s.write(r)
	}
}

func (s *scanner) quoted(r rune) {
	if s.isQuote(r) {
		s.state = stateValue
	}
	s.write(r)
}

func (s *scanner) array(r rune) {
	switch {
	case r == ']':
		s.state = stateValue
	case s.isQuote(r):
		s.write(r)
		s.state = stateArrayQuoted
	default:
		s.write(r)
	}
}

func (s *scanner) arrayQuoted(r rune) {
	if s.isQuote(r) {
		s.state = stateArray
	}
	s.write(r)
}

// finish closes out the unit in progress at end of input.
func (s *scanner) finish() {
	switch s.state {
	case stateDecorator:
		s.endDecorator()
	case stateKeyName:
		s.endBareKey()
	case stateValue:
		s.endValue(false)
	case stateQuoted, stateArray, stateArrayQuoted:
		s.endValue(true)
	}
	s.state = stateNeutral
}

func (s *scanner) endDecorator() {
	s.pending = append(s.pending, decoratorLine{
		text: strings.TrimSpace(s.buf.String()),
		pos:  s.start,
	})
	s.reset()
	s.state = stateNeutral
}

func (s *scanner) endBareKey() {
	s.out.units = append(s.out.units, unit{
		name:       strings.TrimSpace(s.buf.String()),
		pos:        s.start,
		decorators: s.pending,
		bare:       true,
	})
	s.pending = nil
	s.reset()
	s.state = stateNeutral
}

func (s *scanner) endValue(unterminated bool) {
	s.out.units = append(s.out.units, unit{
		name:         s.keyName,
		pos:          s.keyPos,
		decorators:   s.pending,
		raw:          s.buf.String(),
		unterminated: unterminated,
	})
	s.pending = nil
	s.keyName = ""
	s.reset()
	s.state = stateNeutral
}
