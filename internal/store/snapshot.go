package store

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of the branch table and every commit reachable
// from it.
type Snapshot struct {
	Branches []BranchView `yaml:"branches"`
	Live     int          `yaml:"live_commits"`
}

// BranchView is one branch and its history, head first.
type BranchView struct {
	Name  string       `yaml:"name"`
	Chain []CommitView `yaml:"chain"`
}

// CommitView describes one commit at snapshot time.
type CommitView struct {
	ID     uint64 `yaml:"id"`
	Data   string `yaml:"data"`
	Owners int    `yaml:"owners"`
}

// Head returns the first commit of the chain.
func (b BranchView) Head() CommitView {
	return b.Chain[0]
}

// Snapshot captures the current branch table, branches sorted by name.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{Live: s.live}
	for _, name := range s.Branches() {
		view := BranchView{Name: name}
		for c := s.branches[name]; c != nil; c = c.parent {
			view.Chain = append(view.Chain, CommitView{ID: c.id, Data: c.data, Owners: c.owners})
		}
		snap.Branches = append(snap.Branches, view)
	}
	return snap
}

// PlainRenderer renders one line per branch: the branch name followed by its
// history, head first.
func PlainRenderer(snap Snapshot) []string {
	lines := make([]string, 0, len(snap.Branches))
	for _, b := range snap.Branches {
		parts := make([]string, 0, len(b.Chain))
		for _, c := range b.Chain {
			parts = append(parts, fmt.Sprintf("#%d '%s'", c.ID, c.Data))
		}
		lines = append(lines, fmt.Sprintf("%s: %s", b.Name, strings.Join(parts, " <- ")))
	}
	return lines
}
