package nbt

// Tree is a named root compound plus the arena owning every node reachable
// from it. Each node except the root has exactly one parent edge; children
// are referenced by handle, never by pointer.
type Tree struct {
	name  string
	root  Handle
	arena arena
}

// New creates a tree with an unnamed, empty compound root.
func New() *Tree {
	return NewNamed("")
}

// NewNamed creates a tree with an empty compound root carrying the given
// root name.
func NewNamed(name string) *Tree {
	t := &Tree{name: name}
	t.root = t.arena.insert(compoundNode())
	return t
}

// Name returns the root name.
func (t *Tree) Name() string {
	return t.name
}

// SetName replaces the root name.
func (t *Tree) SetName(name string) {
	t.name = name
}

// Root returns a read view of the root compound.
func (t *Tree) Root() CompoundRef {
	return CompoundRef{ref: t.AsRef()}
}

// RootMut returns a mutable view of the root compound.
func (t *Tree) RootMut() CompoundRefMut {
	return CompoundRefMut{tree: t, handle: t.root, gen: t.arena.generation(t.root)}
}

// AsRef returns a read view of the root node.
func (t *Tree) AsRef() Ref {
	return Ref{tree: t, handle: t.root, gen: t.arena.generation(t.root)}
}

// AsMut returns a mutable view of the root node.
func (t *Tree) AsMut() RefMut {
	return RefMut{tree: t, handle: t.root, gen: t.arena.generation(t.root)}
}

// Count returns the number of live nodes in the tree, root included.
func (t *Tree) Count() int {
	return t.arena.count()
}

// Equal reports structural equality of the two trees: same kinds, same
// payloads, same children in order (lists) or by key (compounds). Handle
// identity and the root name do not participate.
func (t *Tree) Equal(o *Tree) bool {
	return t.AsRef().Equal(o.AsRef())
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := NewNamed(t.name)
	cloneInto(c, c.root, t, t.root)
	return c
}

func cloneInto(dst *Tree, dstH Handle, src *Tree, srcH Handle) {
	sn := src.arena.get(srcH)
	switch sn.typ {
	case TypeCompound:
		// Entries are already sorted; clone children then rebuild the index.
		entries := make([]centry, len(sn.comp.entries))
		for i, e := range sn.comp.entries {
			ch := dst.arena.insert(cloneShallow(src.arena.get(e.child)))
			entries[i] = centry{key: e.key, child: ch}
			cloneChildren(dst, ch, src, e.child)
		}
		dst.arena.get(dstH).comp.entries = entries
	case TypeList:
		kids := make([]Handle, len(sn.kids))
		for i, k := range sn.kids {
			ch := dst.arena.insert(cloneShallow(src.arena.get(k)))
			kids[i] = ch
			cloneChildren(dst, ch, src, k)
		}
		dst.arena.get(dstH).kids = kids
	}
}

func cloneChildren(dst *Tree, dstH Handle, src *Tree, srcH Handle) {
	switch src.arena.get(srcH).typ {
	case TypeCompound, TypeList:
		cloneInto(dst, dstH, src, srcH)
	}
}

// cloneShallow copies one node without its children; slices are copied so
// the clones never share backing storage.
func cloneShallow(n *node) node {
	c := *n
	c.i8s = append([]int8(nil), n.i8s...)
	c.i32s = append([]int32(nil), n.i32s...)
	c.i64s = append([]int64(nil), n.i64s...)
	c.kids = nil
	c.comp = compound{}
	return c
}

// removeSubtree frees h and every node reachable from it. An explicit
// worklist keeps arbitrarily deep trees from exhausting the call stack.
func (t *Tree) removeSubtree(h Handle) {
	if h == t.root {
		panic("nbt: cannot remove root node")
	}
	work := []Handle{h}
	for len(work) > 0 {
		next := work[len(work)-1]
		work = work[:len(work)-1]
		n := t.arena.remove(next)
		work = append(work, n.kids...)
		for _, e := range n.comp.entries {
			work = append(work, e.child)
		}
	}
}
