package nbt

import (
	"math"
	"slices"
)

// Value enumerates the ten basic payload types. Every typed operation over
// compounds and lists is one generic function over this constraint instead
// of a hand-written family per type, so edge-case behavior is identical for
// all of them: absence and type mismatch are (zero, false), never errors.
type Value interface {
	int8 | int16 | int32 | int64 | float32 | float64 | string |
		[]int8 | []int32 | []int64
}

// TypeOf returns the wire tag corresponding to the Go payload type T.
func TypeOf[T Value]() Type {
	var zero T
	switch any(zero).(type) {
	case int8:
		return TypeByte
	case int16:
		return TypeShort
	case int32:
		return TypeInt
	case int64:
		return TypeLong
	case float32:
		return TypeFloat
	case float64:
		return TypeDouble
	case string:
		return TypeString
	case []int8:
		return TypeByteArray
	case []int32:
		return TypeIntArray
	case []int64:
		return TypeLongArray
	}
	panic("unreachable")
}

// nodeOf builds a node holding v. Array payloads are copied, so the stored
// slice never aliases caller memory.
func nodeOf[T Value](v T) node {
	switch v := any(v).(type) {
	case int8:
		return node{typ: TypeByte, num: uint64(uint8(v))}
	case int16:
		return node{typ: TypeShort, num: uint64(uint16(v))}
	case int32:
		return node{typ: TypeInt, num: uint64(uint32(v))}
	case int64:
		return node{typ: TypeLong, num: uint64(v)}
	case float32:
		return node{typ: TypeFloat, num: uint64(math.Float32bits(v))}
	case float64:
		return node{typ: TypeDouble, num: math.Float64bits(v)}
	case string:
		return node{typ: TypeString, str: v}
	case []int8:
		return node{typ: TypeByteArray, i8s: slices.Clone(v)}
	case []int32:
		return node{typ: TypeIntArray, i32s: slices.Clone(v)}
	case []int64:
		return node{typ: TypeLongArray, i64s: slices.Clone(v)}
	}
	panic("unreachable")
}

// valueOf extracts a payload of type T. Array payloads are copied out; the
// returned slice is the caller's to mutate and the tree only changes through
// mutable views.
func valueOf[T Value](n *node) (T, bool) {
	var v T
	if n.typ != TypeOf[T]() {
		return v, false
	}
	switch p := any(&v).(type) {
	case *int8:
		*p = n.byteVal()
	case *int16:
		*p = n.shortVal()
	case *int32:
		*p = n.intVal()
	case *int64:
		*p = n.longVal()
	case *float32:
		*p = n.floatVal()
	case *float64:
		*p = n.doubleVal()
	case *string:
		*p = n.str
	case *[]int8:
		*p = slices.Clone(n.i8s)
	case *[]int32:
		*p = slices.Clone(n.i32s)
	case *[]int64:
		*p = slices.Clone(n.i64s)
	}
	return v, true
}

// Get returns the payload of a scalar or array node of type T.
func Get[T Value](r Ref) (T, bool) {
	return valueOf[T](r.node())
}

// Set replaces the payload of a node already holding type T. The kind of a
// node never changes through Set.
func Set[T Value](m RefMut, v T) bool {
	n := m.node()
	nn := nodeOf(v)
	if n.typ != nn.typ {
		return false
	}
	*n = nn
	return true
}

// Insert stores v under key in the compound, replacing (and freeing) any
// existing child with that key.
func Insert[T Value](c CompoundRefMut, key string, v T) {
	c.insertNode(key, nodeOf(v))
}

// Find returns the value of type T stored under key in the compound.
func Find[T Value](c CompoundRef, key string) (T, bool) {
	r, ok := c.Find(key)
	if !ok {
		var zero T
		return zero, false
	}
	return valueOf[T](r.node())
}

// Append adds v to the end of the list. The first element of an untyped
// empty list fixes the element type; afterwards the type must match.
func Append[T Value](l ListRefMut, v T) bool {
	_, ok := l.appendNode(nodeOf(v))
	return ok
}

// At returns the value of type T at index in the list.
func At[T Value](l ListRef, index int) (T, bool) {
	r, ok := l.Get(index)
	if !ok {
		var zero T
		return zero, false
	}
	return valueOf[T](r.node())
}

// SetAt replaces the element at index with v, freeing the old element. Fails
// for an out-of-range index or a type not matching the list element type,
// identically for every T.
func SetAt[T Value](l ListRefMut, index int, v T) bool {
	return l.setNodeAt(index, nodeOf(v))
}
