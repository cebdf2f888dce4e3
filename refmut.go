package nbt

import "github.com/enkvadrat/nbt/errors"

// RefMut is an exclusive mutable view of one node. Like Ref it is generation
// checked: a mutation that frees the referenced subtree invalidates the view,
// and any later use panics. Navigating into a child returns a fresh scoped
// view; stored views are never re-entered through raw aliasing.
type RefMut struct {
	tree   *Tree
	handle Handle
	gen    uint32
}

func (m RefMut) node() *node {
	if !m.tree.arena.alive(m.handle, m.gen) {
		panic(errors.StaleReference(uint32(m.handle)))
	}
	return m.tree.arena.get(m.handle)
}

// AsRef returns a read view of the same node.
func (m RefMut) AsRef() Ref {
	return Ref{tree: m.tree, handle: m.handle, gen: m.gen}
}

// Type returns the tag kind of the referenced node.
func (m RefMut) Type() Type {
	return m.node().typ
}

// AsCompound narrows the view to a compound.
func (m RefMut) AsCompound() (CompoundRefMut, bool) {
	if m.node().typ != TypeCompound {
		return CompoundRefMut{}, false
	}
	return CompoundRefMut{tree: m.tree, handle: m.handle, gen: m.gen}, true
}

// AsList narrows the view to a list.
func (m RefMut) AsList() (ListRefMut, bool) {
	if m.node().typ != TypeList {
		return ListRefMut{}, false
	}
	return ListRefMut{tree: m.tree, handle: m.handle, gen: m.gen}, true
}

// CompoundRefMut is an exclusive mutable view of a compound node.
type CompoundRefMut struct {
	tree   *Tree
	handle Handle
	gen    uint32
}

func (c CompoundRefMut) mut() RefMut {
	return RefMut{tree: c.tree, handle: c.handle, gen: c.gen}
}

// AsRef returns a read view of the same compound.
func (c CompoundRefMut) AsRef() CompoundRef {
	return CompoundRef{ref: c.mut().AsRef()}
}

// Len returns the number of entries.
func (c CompoundRefMut) Len() int {
	return c.mut().node().comp.len()
}

// Find returns a read view of the child stored under key.
func (c CompoundRefMut) Find(key string) (Ref, bool) {
	return c.AsRef().Find(key)
}

// FindMut returns a mutable view of the child stored under key.
func (c CompoundRefMut) FindMut(key string) (RefMut, bool) {
	h, ok := c.mut().node().comp.find(key)
	if !ok {
		return RefMut{}, false
	}
	return RefMut{tree: c.tree, handle: h, gen: c.tree.arena.generation(h)}, true
}

// FindCompoundMut returns a mutable view of the compound child under key.
func (c CompoundRefMut) FindCompoundMut(key string) (CompoundRefMut, bool) {
	m, ok := c.FindMut(key)
	if !ok {
		return CompoundRefMut{}, false
	}
	return m.AsCompound()
}

// FindListMut returns a mutable view of the list child under key.
func (c CompoundRefMut) FindListMut(key string) (ListRefMut, bool) {
	m, ok := c.FindMut(key)
	if !ok {
		return ListRefMut{}, false
	}
	return m.AsList()
}

// Remove deletes key and frees the subtree it held.
func (c CompoundRefMut) Remove(key string) bool {
	h, ok := c.mut().node().comp.remove(key)
	if !ok {
		return false
	}
	c.tree.removeSubtree(h)
	return true
}

// InsertCompound inserts an empty compound under key, replacing (and
// freeing) any existing child, and returns a mutable view of it.
func (c CompoundRefMut) InsertCompound(key string) CompoundRefMut {
	h := c.insertNode(key, compoundNode())
	return CompoundRefMut{tree: c.tree, handle: h, gen: c.tree.arena.generation(h)}
}

// InsertList inserts an empty list of the given element type under key,
// replacing (and freeing) any existing child, and returns a mutable view.
func (c CompoundRefMut) InsertList(key string, elem Type) ListRefMut {
	h := c.insertNode(key, listNode(elem))
	return ListRefMut{tree: c.tree, handle: h, gen: c.tree.arena.generation(h)}
}

// insertNode is the single underlying insert every typed variant goes
// through. The index itself only swaps handles on replacement; the freed
// subtree cleanup happens here so callers never leak slots.
func (c CompoundRefMut) insertNode(key string, n node) Handle {
	c.mut().node() // liveness check before touching the arena
	h := c.tree.arena.insert(n)
	if old, replaced := c.tree.arena.get(c.handle).comp.insert(key, h); replaced {
		c.tree.removeSubtree(old)
	}
	return h
}

// ListRefMut is an exclusive mutable view of a list node.
type ListRefMut struct {
	tree   *Tree
	handle Handle
	gen    uint32
}

func (l ListRefMut) mut() RefMut {
	return RefMut{tree: l.tree, handle: l.handle, gen: l.gen}
}

// AsRef returns a read view of the same list.
func (l ListRefMut) AsRef() ListRef {
	return ListRef{ref: l.mut().AsRef()}
}

// Len returns the number of elements.
func (l ListRefMut) Len() int {
	return len(l.mut().node().kids)
}

// ElementType returns the declared element kind.
func (l ListRefMut) ElementType() Type {
	return l.mut().node().elem
}

// Get returns a read view of the element at index.
func (l ListRefMut) Get(index int) (Ref, bool) {
	return l.AsRef().Get(index)
}

// GetMut returns a mutable view of the element at index.
func (l ListRefMut) GetMut(index int) (RefMut, bool) {
	n := l.mut().node()
	if index < 0 || index >= len(n.kids) {
		return RefMut{}, false
	}
	h := n.kids[index]
	return RefMut{tree: l.tree, handle: h, gen: l.tree.arena.generation(h)}, true
}

// Remove deletes the element at index and frees its subtree. Later elements
// shift down.
func (l ListRefMut) Remove(index int) bool {
	n := l.mut().node()
	if index < 0 || index >= len(n.kids) {
		return false
	}
	h := n.kids[index]
	n.kids = append(n.kids[:index], n.kids[index+1:]...)
	l.tree.removeSubtree(h)
	return true
}

// AppendCompound appends an empty compound element and returns a mutable
// view of it. Fails when the list holds another element type.
func (l ListRefMut) AppendCompound() (CompoundRefMut, bool) {
	h, ok := l.appendNode(compoundNode())
	if !ok {
		return CompoundRefMut{}, false
	}
	return CompoundRefMut{tree: l.tree, handle: h, gen: l.tree.arena.generation(h)}, true
}

// AppendList appends an empty nested list and returns a mutable view of it.
func (l ListRefMut) AppendList(elem Type) (ListRefMut, bool) {
	h, ok := l.appendNode(listNode(elem))
	if !ok {
		return ListRefMut{}, false
	}
	return ListRefMut{tree: l.tree, handle: h, gen: l.tree.arena.generation(h)}, true
}

// appendNode is the single underlying append. The first element of an
// untyped empty list fixes the element type; after that every append must
// match it.
func (l ListRefMut) appendNode(n node) (Handle, bool) {
	ln := l.mut().node()
	if ln.elem == TypeEnd && len(ln.kids) == 0 {
		ln.elem = n.typ
	} else if ln.elem != n.typ {
		return 0, false
	}
	h := l.tree.arena.insert(n)
	l.mut().node().kids = append(l.mut().node().kids, h)
	return h, true
}

// setNodeAt replaces the element at index, freeing the old subtree. The
// replacement must match the list element type; an out-of-range index fails
// the same way for every element type.
func (l ListRefMut) setNodeAt(index int, n node) bool {
	ln := l.mut().node()
	if index < 0 || index >= len(ln.kids) || ln.elem != n.typ {
		return false
	}
	old := ln.kids[index]
	h := l.tree.arena.insert(n)
	l.tree.arena.get(l.handle).kids[index] = h
	l.tree.removeSubtree(old)
	return true
}
