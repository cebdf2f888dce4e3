package nbt

import (
	"slices"
	"strings"
)

type centry struct {
	key   string
	child Handle
}

// compound is the ordered name index of one compound node. Entries are kept
// sorted by key so find, insert and remove are all binary searches; iteration
// order is therefore sorted key order regardless of insertion order.
type compound struct {
	entries []centry
}

func (c *compound) search(key string) (int, bool) {
	return slices.BinarySearchFunc(c.entries, key, func(e centry, k string) int {
		return strings.Compare(e.key, k)
	})
}

// find returns the handle stored under key.
func (c *compound) find(key string) (Handle, bool) {
	if i, ok := c.search(key); ok {
		return c.entries[i].child, true
	}
	return 0, false
}

// insert stores child under key. Inserting an existing key replaces its
// handle and returns the displaced one; the displaced node is not freed here,
// callers wanting replacement-with-cleanup remove it themselves.
func (c *compound) insert(key string, child Handle) (old Handle, replaced bool) {
	i, ok := c.search(key)
	if ok {
		old = c.entries[i].child
		c.entries[i].child = child
		return old, true
	}
	c.entries = slices.Insert(c.entries, i, centry{key: key, child: child})
	return 0, false
}

// remove deletes key and returns the handle it held.
func (c *compound) remove(key string) (Handle, bool) {
	i, ok := c.search(key)
	if !ok {
		return 0, false
	}
	h := c.entries[i].child
	c.entries = slices.Delete(c.entries, i, i+1)
	return h, true
}

func (c *compound) len() int {
	return len(c.entries)
}
