package nbt

import (
	"slices"

	"github.com/enkvadrat/nbt/errors"
)

// Ref is a non-owning read view of one node. Views capture the generation of
// the slot they point at; dereferencing a view whose node has since been
// removed panics rather than reading reused storage.
type Ref struct {
	tree   *Tree
	handle Handle
	gen    uint32
}

func (r Ref) node() *node {
	if !r.tree.arena.alive(r.handle, r.gen) {
		panic(errors.StaleReference(uint32(r.handle)))
	}
	return r.tree.arena.get(r.handle)
}

// Type returns the tag kind of the referenced node.
func (r Ref) Type() Type {
	return r.node().typ
}

// AsCompound narrows the view to a compound.
func (r Ref) AsCompound() (CompoundRef, bool) {
	if r.node().typ != TypeCompound {
		return CompoundRef{}, false
	}
	return CompoundRef{ref: r}, true
}

// AsList narrows the view to a list.
func (r Ref) AsList() (ListRef, bool) {
	if r.node().typ != TypeList {
		return ListRef{}, false
	}
	return ListRef{ref: r}, true
}

// Equal reports structural equality: same tag kind and, recursively, equal
// payloads and children in the same order (lists) or under the same keys
// (compounds). Two views over distinct trees can compare equal.
func (r Ref) Equal(o Ref) bool {
	a, b := r.node(), o.node()
	if a.typ != b.typ {
		return false
	}
	switch a.typ {
	case TypeByte:
		return a.byteVal() == b.byteVal()
	case TypeShort:
		return a.shortVal() == b.shortVal()
	case TypeInt:
		return a.intVal() == b.intVal()
	case TypeLong:
		return a.longVal() == b.longVal()
	case TypeFloat:
		return a.floatVal() == b.floatVal()
	case TypeDouble:
		return a.doubleVal() == b.doubleVal()
	case TypeString:
		return a.str == b.str
	case TypeByteArray:
		return slices.Equal(a.i8s, b.i8s)
	case TypeIntArray:
		return slices.Equal(a.i32s, b.i32s)
	case TypeLongArray:
		return slices.Equal(a.i64s, b.i64s)
	case TypeList:
		if a.elem != b.elem || len(a.kids) != len(b.kids) {
			return false
		}
		for i := range a.kids {
			if !r.child(a.kids[i]).Equal(o.child(b.kids[i])) {
				return false
			}
		}
		return true
	case TypeCompound:
		if len(a.comp.entries) != len(b.comp.entries) {
			return false
		}
		// Both entry sets are sorted by key, so one pass compares key sets
		// and values together.
		for i, e := range a.comp.entries {
			be := b.comp.entries[i]
			if e.key != be.key || !r.child(e.child).Equal(o.child(be.child)) {
				return false
			}
		}
		return true
	}
	return false
}

func (r Ref) child(h Handle) Ref {
	return Ref{tree: r.tree, handle: h, gen: r.tree.arena.generation(h)}
}

// CompoundRef is a read view of a compound node.
type CompoundRef struct {
	ref Ref
}

// AsRef widens the view back to an untyped reference.
func (c CompoundRef) AsRef() Ref {
	return c.ref
}

// Len returns the number of entries.
func (c CompoundRef) Len() int {
	return c.ref.node().comp.len()
}

// Find returns the child stored under key.
func (c CompoundRef) Find(key string) (Ref, bool) {
	h, ok := c.ref.node().comp.find(key)
	if !ok {
		return Ref{}, false
	}
	return c.ref.child(h), true
}

// FindCompound returns the compound child stored under key.
func (c CompoundRef) FindCompound(key string) (CompoundRef, bool) {
	r, ok := c.Find(key)
	if !ok {
		return CompoundRef{}, false
	}
	return r.AsCompound()
}

// FindList returns the list child stored under key.
func (c CompoundRef) FindList(key string) (ListRef, bool) {
	r, ok := c.Find(key)
	if !ok {
		return ListRef{}, false
	}
	return r.AsList()
}

// Each visits every entry in sorted key order until fn returns false.
func (c CompoundRef) Each(fn func(key string, r Ref) bool) {
	for _, e := range c.ref.node().comp.entries {
		if !fn(e.key, c.ref.child(e.child)) {
			return
		}
	}
}

// ListRef is a read view of a list node.
type ListRef struct {
	ref Ref
}

// AsRef widens the view back to an untyped reference.
func (l ListRef) AsRef() Ref {
	return l.ref
}

// Len returns the number of elements.
func (l ListRef) Len() int {
	return len(l.ref.node().kids)
}

// ElementType returns the declared element kind. An empty list still carries
// a type; TypeEnd means no type has been declared yet.
func (l ListRef) ElementType() Type {
	return l.ref.node().elem
}

// Get returns the element at index.
func (l ListRef) Get(index int) (Ref, bool) {
	kids := l.ref.node().kids
	if index < 0 || index >= len(kids) {
		return Ref{}, false
	}
	return l.ref.child(kids[index]), true
}

// Each visits every element in order until fn returns false.
func (l ListRef) Each(fn func(index int, r Ref) bool) {
	for i, h := range l.ref.node().kids {
		if !fn(i, l.ref.child(h)) {
			return
		}
	}
}
