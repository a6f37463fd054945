package command

import (
	"strconv"
)

// alternative tries to match one command form at the start of the scanner's
// input. On success the scanner is left just past the match.
type alternative func(s *scanner) (Cmd, bool)

// alternatives are tried in this order; the first one that matches wins.
var alternatives = []alternative{
	parseNewBranch,
	parseDeleteBranch,
	parseNewCommit,
	parseExamine,
}

// Parse turns one line into a command. The whole line must be consumed: once
// an alternative matches, trailing input fails the line without trying the
// remaining alternatives.
func Parse(line string) (Cmd, error) {
	furthest := 0
	for _, alt := range alternatives {
		s := &scanner{input: line}
		cmd, ok := alt(s)
		if !ok {
			if s.pos > furthest {
				furthest = s.pos
			}
			continue
		}
		if !s.done() {
			return nil, &SyntaxError{Line: line, Column: s.pos}
		}
		return cmd, nil
	}
	return nil, &SyntaxError{Line: line, Column: furthest}
}

// new branch <name> <base>[ ~ <offset>]
func parseNewBranch(s *scanner) (Cmd, bool) {
	s.optSpaces()
	if !s.keyword("new") || !s.spaces() || !s.keyword("branch") || !s.spaces() {
		return nil, false
	}
	name, ok := s.name()
	if !ok || !s.spaces() {
		return nil, false
	}
	base, ok := s.name()
	if !ok {
		return nil, false
	}

	ref := CommitRef{Base: base}
	mark := s.pos
	s.optSpaces()
	if s.char('~') {
		s.optSpaces()
		digits, ok := s.digits()
		if !ok {
			// The suffix is optional: leave it unconsumed so the line fails
			// on trailing input.
			s.pos = mark
			return NewBranch{Name: name, Ref: ref}, true
		}
		offset, err := strconv.ParseUint(digits, 10, strconv.IntSize)
		if err != nil {
			s.pos -= len(digits)
			return nil, false
		}
		ref.Offset = uint(offset)
	} else {
		s.pos = mark
	}
	return NewBranch{Name: name, Ref: ref}, true
}

// delete branch <name>
func parseDeleteBranch(s *scanner) (Cmd, bool) {
	s.optSpaces()
	if !s.keyword("delete") || !s.spaces() || !s.keyword("branch") || !s.spaces() {
		return nil, false
	}
	name, ok := s.name()
	if !ok {
		return nil, false
	}
	return DeleteBranch{Name: name}, true
}

// new commit '<payload>' <branch>
func parseNewCommit(s *scanner) (Cmd, bool) {
	s.optSpaces()
	if !s.keyword("new") || !s.spaces() || !s.keyword("commit") || !s.spaces() {
		return nil, false
	}
	payload, ok := s.quoted()
	if !ok || !s.spaces() {
		return nil, false
	}
	branch, ok := s.name()
	if !ok {
		return nil, false
	}
	return NewCommit{Payload: payload, Branch: branch}, true
}

// examine
func parseExamine(s *scanner) (Cmd, bool) {
	s.optSpaces()
	if !s.keyword("examine") {
		return nil, false
	}
	return Examine{}, true
}
