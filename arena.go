package nbt

import "fmt"

// Handle is an opaque reference to an arena slot. The zero Handle refers to
// nothing; live handles index slot h-1.
type Handle uint32

type slot struct {
	node  node
	gen   uint32
	valid bool
}

// arena is the single owning store of every node in a tree. Slots are reused
// through a free list; each reuse bumps the slot generation so stale views
// can be detected. The tree is a single-threaded structure, so the arena
// carries no locking.
type arena struct {
	slots []slot
	free  []Handle
}

// insert stores n and returns its handle.
func (a *arena) insert(n node) Handle {
	if len(a.free) > 0 {
		h := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		s := &a.slots[h-1]
		s.node = n
		s.valid = true
		return h
	}
	a.slots = append(a.slots, slot{node: n, valid: true})
	return Handle(len(a.slots))
}

// get returns the node for h. Handles are only ever produced by this arena,
// so a dead or out-of-range handle is a library bug and panics.
func (a *arena) get(h Handle) *node {
	if h == 0 || int(h) > len(a.slots) || !a.slots[h-1].valid {
		panic(fmt.Sprintf("nbt: invalid handle %d", h))
	}
	return &a.slots[h-1].node
}

// generation returns the current generation of h's slot.
func (a *arena) generation(h Handle) uint32 {
	return a.slots[h-1].gen
}

// alive reports whether h still refers to the same node a view captured.
func (a *arena) alive(h Handle, gen uint32) bool {
	if h == 0 || int(h) > len(a.slots) {
		return false
	}
	s := &a.slots[h-1]
	return s.valid && s.gen == gen
}

// remove frees the single slot h and returns its node. Children are not
// touched; cascading removal is the tree's job.
func (a *arena) remove(h Handle) node {
	n := *a.get(h)
	s := &a.slots[h-1]
	s.node = node{}
	s.valid = false
	s.gen++
	a.free = append(a.free, h)
	return n
}

// count returns the number of live nodes.
func (a *arena) count() int {
	return len(a.slots) - len(a.free)
}
