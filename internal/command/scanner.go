package command

import "strings"

// scanner is a byte cursor over a single line. Every match method either
// advances past what it matched and reports true, or leaves pos unchanged
// and reports false.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

// spaces consumes one or more ' ' characters.
func (s *scanner) spaces() bool {
	start := s.pos
	s.optSpaces()
	return s.pos > start
}

// optSpaces consumes zero or more ' ' characters.
func (s *scanner) optSpaces() {
	for s.pos < len(s.input) && s.input[s.pos] == ' ' {
		s.pos++
	}
}

// keyword matches a literal, case-sensitively. It does not require a word
// boundary; the separator that follows is matched by the caller.
func (s *scanner) keyword(kw string) bool {
	if !strings.HasPrefix(s.rest(), kw) {
		return false
	}
	s.pos += len(kw)
	return true
}

func (s *scanner) char(c byte) bool {
	if s.done() || s.input[s.pos] != c {
		return false
	}
	s.pos++
	return true
}

// name matches one or more ASCII letters or digits.
func (s *scanner) name() (string, bool) {
	return s.span(isAlnum)
}

// digits matches one or more ASCII digits.
func (s *scanner) digits() (string, bool) {
	return s.span(isDigit)
}

// quoted matches '<payload>' and returns the payload. An unterminated quote
// does not match.
func (s *scanner) quoted() (string, bool) {
	if s.done() || s.input[s.pos] != '\'' {
		return "", false
	}
	end := strings.IndexByte(s.input[s.pos+1:], '\'')
	if end < 0 {
		return "", false
	}
	payload := s.input[s.pos+1 : s.pos+1+end]
	s.pos += end + 2
	return payload, true
}

func (s *scanner) span(accept func(byte) bool) (string, bool) {
	start := s.pos
	for s.pos < len(s.input) && accept(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", false
	}
	return s.input[start:s.pos], true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
