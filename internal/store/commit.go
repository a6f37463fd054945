package store

// Commit is an immutable node of history. Its owners are the branch entries
// pointing at it and the child commits whose parent it is.
type Commit struct {
	id     uint64
	data   string
	parent *Commit
	owners int
}

// ID is the commit's creation sequence number within its store, starting at 1
// for the root commit.
func (c *Commit) ID() uint64 { return c.id }

// Data is the commit payload.
func (c *Commit) Data() string { return c.data }

// Parent returns the commit this one was created on top of, or nil for the
// root commit.
func (c *Commit) Parent() *Commit { return c.parent }

// Owners is the number of live references to the commit.
func (c *Commit) Owners() int { return c.owners }

// Ancestor walks n parent links from c. It reports false if the chain ends
// first.
func (c *Commit) Ancestor(n uint) (*Commit, bool) {
	cur := c
	for i := uint(0); i < n; i++ {
		if cur.parent == nil {
			return nil, false
		}
		cur = cur.parent
	}
	return cur, true
}

// Depth is the number of ancestors behind c.
func (c *Commit) Depth() int {
	n := 0
	for p := c.parent; p != nil; p = p.parent {
		n++
	}
	return n
}

func (c *Commit) retain() *Commit {
	c.owners++
	return c
}
