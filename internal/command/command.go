// Package command defines the interpreter's command set and the grammar that
// turns one line of input into a command.
//
// The grammar is a closed set of four forms, tried in a fixed order:
//
//	new branch <name> <base>[~<offset>]
//	delete branch <name>
//	new commit '<payload>' <branch>
//	examine
//
// Tokens are separated by runs of literal spaces. Names are ASCII letters and
// digits. A payload is everything between a pair of single quotes; there is no
// escape mechanism.
package command

import (
	"fmt"
	"strconv"
)

// Cmd is one parsed command. The set of implementations is closed.
type Cmd interface {
	// String returns the canonical source form of the command.
	String() string
	isCmd()
}

// CommitRef names a commit relative to a branch head: the commit Offset
// parents back from Base's head. Offset 0 is the head itself.
type CommitRef struct {
	Base   string
	Offset uint
}

// String renders the reference as base[~offset].
func (r CommitRef) String() string {
	if r.Offset == 0 {
		return r.Base
	}
	return r.Base + "~" + strconv.FormatUint(uint64(r.Offset), 10)
}

// NewBranch binds Name to the commit Ref resolves to.
type NewBranch struct {
	Name string
	Ref  CommitRef
}

// DeleteBranch removes Name from the branch table.
type DeleteBranch struct {
	Name string
}

// NewCommit creates a commit carrying Payload on top of Branch's head.
type NewCommit struct {
	Payload string
	Branch  string
}

// Examine dumps the branch table.
type Examine struct{}

func (c NewBranch) String() string {
	return fmt.Sprintf("new branch %s %s", c.Name, c.Ref)
}

func (c DeleteBranch) String() string {
	return "delete branch " + c.Name
}

func (c NewCommit) String() string {
	return fmt.Sprintf("new commit '%s' %s", c.Payload, c.Branch)
}

func (Examine) String() string {
	return "examine"
}

func (NewBranch) isCmd()    {}
func (DeleteBranch) isCmd() {}
func (NewCommit) isCmd()    {}
func (Examine) isCmd()      {}

// Kind returns a short stable label for the command type, used in logs and
// trace attributes.
func Kind(c Cmd) string {
	switch c.(type) {
	case NewBranch:
		return "new_branch"
	case DeleteBranch:
		return "delete_branch"
	case NewCommit:
		return "new_commit"
	case Examine:
		return "examine"
	default:
		return "unknown"
	}
}
