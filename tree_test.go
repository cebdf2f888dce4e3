package nbt_test

import (
	"math"
	"testing"

	"github.com/enkvadrat/nbt"
	"github.com/enkvadrat/nbt/errors"
)

func TestNewTree(t *testing.T) {
	tree := nbt.New()
	if tree.Name() != "" {
		t.Errorf("Name = %q, want empty", tree.Name())
	}
	if tree.Root().Len() != 0 {
		t.Errorf("root entries = %d, want 0", tree.Root().Len())
	}
	if tree.Count() != 1 {
		t.Errorf("Count = %d, want 1", tree.Count())
	}

	tree.SetName("level")
	if tree.Name() != "level" {
		t.Errorf("Name = %q, want %q", tree.Name(), "level")
	}
}

func TestInsertFindRemove(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()

	nbt.Insert(root, "hp", int16(20))
	nbt.Insert(root, "name", "steve")

	if v, ok := nbt.Find[int16](tree.Root(), "hp"); !ok || v != 20 {
		t.Errorf("hp = %d, %v", v, ok)
	}
	if _, ok := nbt.Find[int32](tree.Root(), "hp"); ok {
		t.Error("Find with the wrong kind should miss")
	}
	if _, ok := nbt.Find[string](tree.Root(), "missing"); ok {
		t.Error("Find of an absent key should miss")
	}

	if !root.Remove("hp") {
		t.Error("Remove should report success")
	}
	if root.Remove("hp") {
		t.Error("second Remove should report failure")
	}
	if root.Len() != 1 {
		t.Errorf("entries = %d, want 1", root.Len())
	}
}

func TestInsertOverwrites(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()

	nbt.Insert(root, "x", int32(1))
	nbt.Insert(root, "x", "now a string")

	if root.Len() != 1 {
		t.Errorf("entries = %d, want 1", root.Len())
	}
	if v, ok := nbt.Find[string](tree.Root(), "x"); !ok || v != "now a string" {
		t.Errorf("x = %q, %v", v, ok)
	}
	// Overwrite frees the displaced value node.
	if tree.Count() != 2 {
		t.Errorf("Count = %d, want 2", tree.Count())
	}
}

func TestSortedIteration(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	for _, key := range []string{"zebra", "apple", "mango", "banana"} {
		nbt.Insert(root, key, int32(0))
	}

	var keys []string
	tree.Root().Each(func(key string, _ nbt.Ref) bool {
		keys = append(keys, key)
		return true
	})

	want := []string{"apple", "banana", "mango", "zebra"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestRemoveFreesSubtree(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()

	outer := root.InsertCompound("outer")
	inner := outer.InsertCompound("inner")
	nbt.Insert(inner, "a", int32(1))
	nbt.Insert(inner, "b", int32(2))
	list := outer.InsertList("list", nbt.TypeString)
	nbt.Append(list, "x")

	// root + outer + inner + a + b + list + "x"
	if tree.Count() != 7 {
		t.Fatalf("Count = %d, want 7", tree.Count())
	}

	if !root.Remove("outer") {
		t.Fatal("Remove failed")
	}
	if tree.Count() != 1 {
		t.Errorf("Count = %d, want 1 after cascade", tree.Count())
	}
}

func TestStaleReferencePanics(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	inner := root.InsertCompound("inner")
	nbt.Insert(inner, "a", int32(1))

	ref, ok := tree.Root().Find("inner")
	if !ok {
		t.Fatal("inner not found")
	}

	root.Remove("inner")

	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("expected panic on stale reference")
		}
		perr, ok := v.(*errors.Error)
		if !ok {
			t.Fatalf("panic value is %T, want *errors.Error", v)
		}
		if perr.Kind != errors.KindStaleReference {
			t.Errorf("Kind = %v, want %v", perr.Kind, errors.KindStaleReference)
		}
	}()
	ref.Type()
}

func TestStaleReferenceAfterSlotReuse(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	nbt.Insert(root, "a", int32(1))

	ref, ok := tree.Root().Find("a")
	if !ok {
		t.Fatal("a not found")
	}

	// Free the slot, then reuse it for a different node.
	root.Remove("a")
	nbt.Insert(root, "b", int32(2))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on reused slot")
		}
	}()
	ref.Type()
}

func TestStaleMutableViewPanics(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	inner := root.InsertCompound("inner")

	root.Remove("inner")

	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("expected panic on stale mutable view")
		}
		if perr, ok := v.(*errors.Error); !ok || perr.Kind != errors.KindStaleReference {
			t.Errorf("panic value = %v, want stale_reference", v)
		}
	}()
	nbt.Insert(inner, "x", int32(1))
}

func TestSetSameKindOnly(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	nbt.Insert(root, "x", int32(1))

	m, ok := root.FindMut("x")
	if !ok {
		t.Fatal("x not found")
	}
	if !nbt.Set(m, int32(5)) {
		t.Error("same-kind Set should succeed")
	}
	if nbt.Set(m, "wrong kind") {
		t.Error("cross-kind Set should fail")
	}
	if v, _ := nbt.Find[int32](tree.Root(), "x"); v != 5 {
		t.Errorf("x = %d, want 5", v)
	}
}

func TestListHomogeneity(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	list := root.InsertList("l", nbt.TypeEnd)

	if list.ElementType() != nbt.TypeEnd {
		t.Fatalf("ElementType = %v, want %v", list.ElementType(), nbt.TypeEnd)
	}

	// First append fixes the element type.
	if !nbt.Append(list, int16(1)) {
		t.Fatal("first append failed")
	}
	if list.ElementType() != nbt.TypeShort {
		t.Errorf("ElementType = %v, want %v", list.ElementType(), nbt.TypeShort)
	}

	if nbt.Append(list, "mismatch") {
		t.Error("cross-kind append should fail")
	}
	if _, ok := list.AppendCompound(); ok {
		t.Error("compound append into a short list should fail")
	}
	if list.Len() != 1 {
		t.Errorf("Len = %d, want 1", list.Len())
	}
}

func TestListAccess(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	list := root.InsertList("l", nbt.TypeInt)
	nbt.Append(list, int32(10))
	nbt.Append(list, int32(20))
	nbt.Append(list, int32(30))

	if v, ok := nbt.At[int32](list.AsRef(), 1); !ok || v != 20 {
		t.Errorf("At(1) = %d, %v", v, ok)
	}
	if _, ok := nbt.At[int32](list.AsRef(), 3); ok {
		t.Error("At out of bounds should miss")
	}
	if _, ok := nbt.At[string](list.AsRef(), 0); ok {
		t.Error("At with the wrong kind should miss")
	}

	if !nbt.SetAt(list, 2, int32(99)) {
		t.Error("in-bounds SetAt should succeed")
	}
	if nbt.SetAt(list, 5, int32(1)) {
		t.Error("out-of-bounds SetAt should fail")
	}
	if nbt.SetAt(list, 0, "wrong") {
		t.Error("cross-kind SetAt should fail")
	}
	if v, _ := nbt.At[int32](list.AsRef(), 2); v != 99 {
		t.Errorf("At(2) = %d, want 99", v)
	}

	if !list.Remove(0) {
		t.Error("Remove(0) should succeed")
	}
	if list.Len() != 2 {
		t.Errorf("Len = %d, want 2", list.Len())
	}
	if v, _ := nbt.At[int32](list.AsRef(), 0); v != 20 {
		t.Errorf("At(0) = %d, want 20 after shift", v)
	}
}

func TestArrayValuesDetached(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	src := []int32{1, 2, 3}
	nbt.Insert(root, "a", src)

	// Mutating the inserted slice must not reach the tree.
	src[0] = 99
	got, ok := nbt.Find[[]int32](tree.Root(), "a")
	if !ok {
		t.Fatal("a not found")
	}
	if got[0] != 1 {
		t.Errorf("got[0] = %d, want 1", got[0])
	}

	// Mutating the returned slice must not reach the tree either.
	got[1] = 98
	again, _ := nbt.Find[[]int32](tree.Root(), "a")
	if again[1] != 2 {
		t.Errorf("again[1] = %d, want 2", again[1])
	}
}

func TestNestedLists(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	outer := root.InsertList("matrix", nbt.TypeList)

	row, ok := outer.AppendList(nbt.TypeInt)
	if !ok {
		t.Fatal("AppendList failed")
	}
	nbt.Append(row, int32(1))
	nbt.Append(row, int32(2))

	got, ok := outer.AsRef().Get(0)
	if !ok {
		t.Fatal("Get(0) failed")
	}
	inner, ok := got.AsList()
	if !ok {
		t.Fatal("element is not a list")
	}
	if inner.Len() != 2 {
		t.Errorf("inner Len = %d, want 2", inner.Len())
	}
}

func TestClone(t *testing.T) {
	tree := nbt.NewNamed("original")
	root := tree.RootMut()
	inner := root.InsertCompound("inner")
	nbt.Insert(inner, "a", int32(1))
	nbt.Insert(root, "bytes", []int8{1, 2, 3})

	clone := tree.Clone()
	if clone.Name() != "original" {
		t.Errorf("clone Name = %q", clone.Name())
	}
	if !tree.Equal(clone) {
		t.Error("clone should equal the original")
	}
	if clone.Count() != tree.Count() {
		t.Errorf("clone Count = %d, want %d", clone.Count(), tree.Count())
	}

	// Mutating the clone must not touch the original.
	ic, ok := clone.RootMut().FindCompoundMut("inner")
	if !ok {
		t.Fatal("inner not found in clone")
	}
	nbt.Insert(ic, "a", int32(99))

	if v, _ := nbt.Find[int32](tree.Root(), "inner"); v == 99 {
		t.Error("mutating the clone changed the original")
	}
	orig, _ := tree.Root().FindCompound("inner")
	if v, _ := nbt.Find[int32](orig, "a"); v != 1 {
		t.Errorf("original a = %d, want 1", v)
	}
}

func TestEqual(t *testing.T) {
	build := func(name string, hp int16) *nbt.Tree {
		tree := nbt.NewNamed(name)
		root := tree.RootMut()
		nbt.Insert(root, "hp", hp)
		list := root.InsertList("tags", nbt.TypeString)
		nbt.Append(list, "boss")
		return tree
	}

	a := build("a", 20)
	b := build("b", 20)
	c := build("a", 19)

	// Structural equality ignores the root name.
	if !a.Equal(b) {
		t.Error("trees differing only in root name should be equal")
	}
	if a.Equal(c) {
		t.Error("trees with different values should differ")
	}
}

func TestEqualEmptyListElementType(t *testing.T) {
	build := func(elem nbt.Type) *nbt.Tree {
		tree := nbt.New()
		tree.RootMut().InsertList("l", elem)
		return tree
	}

	if !build(nbt.TypeInt).Equal(build(nbt.TypeInt)) {
		t.Error("identical empty lists should be equal")
	}
	if build(nbt.TypeInt).Equal(build(nbt.TypeString)) {
		t.Error("empty lists of different element types should differ")
	}
}

func TestEqualNaN(t *testing.T) {
	build := func() *nbt.Tree {
		tree := nbt.New()
		nbt.Insert(tree.RootMut(), "d", math.NaN())
		return tree
	}

	if build().Equal(build()) {
		t.Error("NaN should not compare equal to NaN")
	}
}

func TestGetRef(t *testing.T) {
	tree := nbt.New()
	nbt.Insert(tree.RootMut(), "s", "text")

	ref, ok := tree.Root().Find("s")
	if !ok {
		t.Fatal("s not found")
	}
	if ref.Type() != nbt.TypeString {
		t.Errorf("Type = %v, want %v", ref.Type(), nbt.TypeString)
	}
	if v, ok := nbt.Get[string](ref); !ok || v != "text" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if _, ok := nbt.Get[int64](ref); ok {
		t.Error("Get with the wrong kind should miss")
	}
	if _, ok := ref.AsCompound(); ok {
		t.Error("scalar should not view as compound")
	}
	if _, ok := ref.AsList(); ok {
		t.Error("scalar should not view as list")
	}
}
