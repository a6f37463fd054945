// Package store holds the branch table and the commit graph it points into.
//
// Commits are shared between branches and between each other through counted
// references. A commit is destroyed the moment its owner count reaches zero,
// which emits a notification carrying its payload and releases its parent in
// turn. The Store is single-threaded; callers serialise access.
package store

import (
	"fmt"
	"sort"

	"github.com/zjrosen/forkline/internal/command"
	"github.com/zjrosen/forkline/internal/log"
)

// RootBranch is the branch seeded at startup.
const RootBranch = "master"

// Emitter receives the store's console feedback, one line per call.
type Emitter interface {
	Emit(line string)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(line string)

// Emit calls f(line).
func (f EmitterFunc) Emit(line string) { f(line) }

// Renderer formats a snapshot for the examine command.
type Renderer func(Snapshot) []string

// Option configures a Store.
type Option func(*Store)

// WithRenderer sets the examine renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Store) {
		if r != nil {
			s.render = r
		}
	}
}

// Store is the branch table plus the commits reachable from it.
type Store struct {
	branches map[string]*Commit
	out      Emitter
	render   Renderer
	nextID   uint64
	live     int
}

// New creates a store whose root branch points at a parentless commit
// carrying rootData, and emits the root branch's feedback line.
func New(rootData string, out Emitter, opts ...Option) *Store {
	s := &Store{
		branches: make(map[string]*Commit),
		out:      out,
		render:   PlainRenderer,
	}
	for _, opt := range opts {
		opt(s)
	}

	root := s.newCommit(rootData, nil)
	s.branches[RootBranch] = root.retain()
	s.emitHead(RootBranch, rootData)
	return s
}

// Apply executes one command. A failed command leaves the store unchanged.
func (s *Store) Apply(cmd command.Cmd) error {
	switch c := cmd.(type) {
	case command.NewBranch:
		return s.NewBranch(c.Name, c.Ref)
	case command.NewCommit:
		return s.NewCommit(c.Payload, c.Branch)
	case command.DeleteBranch:
		return s.DeleteBranch(c.Name)
	case command.Examine:
		s.Examine()
		return nil
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}

// NewBranch binds name to the commit ref resolves to, creating or rebinding
// the name.
func (s *Store) NewBranch(name string, ref command.CommitRef) error {
	target, err := s.Resolve(ref)
	if err != nil {
		return err
	}

	s.emitHead(name, target.data)
	s.bind(name, target)
	return nil
}

// NewCommit creates a commit on top of branch's head and moves the branch to
// it.
func (s *Store) NewCommit(data, branch string) error {
	head, ok := s.branches[branch]
	if !ok {
		return &BranchNotFoundError{Name: branch}
	}

	s.emitHead(branch, data)
	s.bind(branch, s.newCommit(data, head.retain()))
	return nil
}

// DeleteBranch removes name from the table and releases its share of the
// commit it pointed at.
func (s *Store) DeleteBranch(name string) error {
	head, ok := s.branches[name]
	if !ok {
		return &BranchNotFoundError{Name: name}
	}

	delete(s.branches, name)
	s.out.Emit(fmt.Sprintf("%s deleted", name))
	s.release(head)
	return nil
}

// Examine emits the rendered snapshot.
func (s *Store) Examine() {
	for _, line := range s.render(s.Snapshot()) {
		s.out.Emit(line)
	}
}

// Resolve returns the commit ref denotes without changing any ownership.
func (s *Store) Resolve(ref command.CommitRef) (*Commit, error) {
	head, ok := s.branches[ref.Base]
	if !ok {
		return nil, &BranchNotFoundError{Name: ref.Base}
	}
	target, ok := head.Ancestor(ref.Offset)
	if !ok {
		return nil, &NotDeepEnoughError{Branch: ref.Base, Offset: ref.Offset}
	}
	return target, nil
}

// Lookup returns the head of name.
func (s *Store) Lookup(name string) (*Commit, bool) {
	c, ok := s.branches[name]
	return c, ok
}

// Branches returns the branch names in sorted order.
func (s *Store) Branches() []string {
	names := make([]string, 0, len(s.branches))
	for name := range s.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Live is the number of commits not yet destroyed.
func (s *Store) Live() int {
	return s.live
}

func (s *Store) newCommit(data string, parent *Commit) *Commit {
	s.nextID++
	s.live++
	c := &Commit{id: s.nextID, data: data, parent: parent}
	log.Debug(log.CatStore, "Commit created", "id", c.id, "parent", parentID(parent))
	return c
}

// bind points name at c. The new share is taken before the old one is
// dropped, so rebinding to a commit the old head keeps alive destroys nothing.
func (s *Store) bind(name string, c *Commit) {
	old := s.branches[name]
	s.branches[name] = c.retain()
	if old != nil {
		s.release(old)
	}
}

// release drops one share of c. Commits reaching zero owners are destroyed
// child first, each releasing its parent.
func (s *Store) release(c *Commit) {
	for c != nil {
		c.owners--
		if c.owners > 0 {
			return
		}
		s.live--
		log.Debug(log.CatStore, "Commit destroyed", "id", c.id)
		s.out.Emit(fmt.Sprintf("'%s' deleted", c.data))
		parent := c.parent
		c.parent = nil
		c = parent
	}
}

func (s *Store) emitHead(name, data string) {
	s.out.Emit(fmt.Sprintf("%s -> '%s'", name, data))
}

func parentID(c *Commit) uint64 {
	if c == nil {
		return 0
	}
	return c.id
}
