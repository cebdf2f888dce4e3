package nbt

import (
	"math"

	"github.com/enkvadrat/nbt/errors"
	"github.com/enkvadrat/nbt/internal/binary"
)

// Encode serializes the tree to the binary wire format. Output is
// deterministic: compound keys are written in the index's sorted order, so
// decode followed by encode reproduces conforming input byte for byte. A
// string longer than the uint16 length prefix can carry fails the encode;
// nothing else does.
func (t *Tree) Encode() ([]byte, error) {
	e := &encoder{w: binary.NewWriter(), tree: t}
	e.w.Byte(byte(TypeCompound))
	if err := e.str(t.name); err != nil {
		return nil, err
	}
	if err := e.compound(t.root); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}

type encoder struct {
	w    *binary.Writer
	tree *Tree
	path []string
}

// str writes a length-prefixed string, rejecting one whose byte length
// overflows the prefix instead of emitting a wrapped length.
func (e *encoder) str(s string) error {
	if len(s) > math.MaxUint16 {
		return errors.New(errors.PhaseEncode, errors.KindInvalidLength).
			Path(append([]string(nil), e.path...)...).
			Offset(e.w.Len()).
			Detail("string length %d exceeds %d", len(s), math.MaxUint16).
			Build()
	}
	e.w.WriteString(s)
	return nil
}

func (e *encoder) compound(h Handle) error {
	n := e.tree.arena.get(h)
	for _, entry := range n.comp.entries {
		child := e.tree.arena.get(entry.child)
		e.w.Byte(byte(child.typ))
		if err := e.str(entry.key); err != nil {
			return err
		}
		e.path = append(e.path, entry.key)
		if err := e.value(entry.child); err != nil {
			return err
		}
		e.path = e.path[:len(e.path)-1]
	}
	e.w.Byte(byte(TypeEnd))
	return nil
}

func (e *encoder) value(h Handle) error {
	n := e.tree.arena.get(h)
	switch n.typ {
	case TypeByte:
		e.w.WriteI8(n.byteVal())
	case TypeShort:
		e.w.WriteI16(n.shortVal())
	case TypeInt:
		e.w.WriteI32(n.intVal())
	case TypeLong:
		e.w.WriteI64(n.longVal())
	case TypeFloat:
		e.w.WriteF32(n.floatVal())
	case TypeDouble:
		e.w.WriteF64(n.doubleVal())
	case TypeString:
		return e.str(n.str)
	case TypeByteArray:
		e.w.WriteI32(int32(len(n.i8s)))
		for _, v := range n.i8s {
			e.w.WriteI8(v)
		}
	case TypeIntArray:
		e.w.WriteI32(int32(len(n.i32s)))
		for _, v := range n.i32s {
			e.w.WriteI32(v)
		}
	case TypeLongArray:
		e.w.WriteI32(int32(len(n.i64s)))
		for _, v := range n.i64s {
			e.w.WriteI64(v)
		}
	case TypeList:
		e.w.Byte(byte(n.elem))
		e.w.WriteI32(int32(len(n.kids)))
		for i, k := range n.kids {
			e.path = append(e.path, indexSegment(i))
			if err := e.value(k); err != nil {
				return err
			}
			e.path = e.path[:len(e.path)-1]
		}
	case TypeCompound:
		return e.compound(h)
	}
	return nil
}
