package store

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below, for callers that only care
// about the kind.
var (
	// ErrBranchNotFound indicates a command named a branch absent from the table.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNotDeepEnough indicates an offset walked past the root commit.
	ErrNotDeepEnough = errors.New("branch history not deep enough")
)

// BranchNotFoundError indicates that Name is not bound in the branch table.
type BranchNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("Branch ``%s'' doesn't exist", e.Name)
}

// Is reports whether target is ErrBranchNotFound.
func (e *BranchNotFoundError) Is(target error) bool {
	return target == ErrBranchNotFound
}

// NotDeepEnoughError indicates that Branch's history has fewer than Offset
// ancestors. Offset is the depth that was requested, not how far the walk got.
type NotDeepEnoughError struct {
	Branch string
	Offset uint
}

// Error implements the error interface.
func (e *NotDeepEnoughError) Error() string {
	plural := "s"
	if e.Offset == 1 {
		plural = ""
	}
	return fmt.Sprintf("Branch ``%s'' does not go back %d commit%s", e.Branch, e.Offset, plural)
}

// Is reports whether target is ErrNotDeepEnough.
func (e *NotDeepEnoughError) Is(target error) bool {
	return target == ErrNotDeepEnough
}
