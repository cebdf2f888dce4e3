package nbt

import (
	stderrors "errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/enkvadrat/nbt/errors"
	"github.com/enkvadrat/nbt/internal/binary"
)

// Decode parses a binary NBT tree. The root must be a compound preceded by
// its tag byte and a length-prefixed name. Malformed input fails with a
// *errors.Error carrying one of the four decode kinds, the byte offset, and
// the tag-name path to the failing node; no partial tree is ever returned.
func Decode(data []byte) (*Tree, error) {
	d := &decoder{r: binary.NewReader(data)}

	tag, err := d.r.ReadByte()
	if err != nil {
		return nil, d.fail(err)
	}
	if !Type(tag).Valid() {
		return nil, errors.InvalidTag(nil, d.r.Position(), tag)
	}
	if Type(tag) != TypeCompound {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidTag).
			Offset(d.r.Position()).
			Detail("root tag is %s, must be %s", Type(tag), TypeCompound).
			Build()
	}
	name, err := d.r.ReadString()
	if err != nil {
		return nil, d.fail(err)
	}

	d.tree = NewNamed(name)
	if err := d.compoundBody(d.tree.root); err != nil {
		return nil, err
	}

	Logger().Debug("decoded tree",
		zap.String("root", name),
		zap.Int("nodes", d.tree.Count()),
		zap.Int("bytes", len(data)))
	return d.tree, nil
}

type decoder struct {
	r    *binary.Reader
	tree *Tree
	path []string
}

// fail translates a primitive read error into a structured decode error at
// the current offset and path.
func (d *decoder) fail(err error) error {
	path := append([]string(nil), d.path...)
	if stderrors.Is(err, binary.ErrInvalidUTF8) {
		return errors.InvalidUTF8(path, d.r.Position())
	}
	return errors.Truncated(path, d.r.Position(), err)
}

// compoundBody decodes (tag, name, value) triples into an existing compound
// node until the end sentinel.
func (d *decoder) compoundBody(into Handle) error {
	for {
		tag, err := d.r.ReadByte()
		if err != nil {
			return d.fail(err)
		}
		typ := Type(tag)
		if !typ.Valid() {
			return errors.InvalidTag(append([]string(nil), d.path...), d.r.Position(), tag)
		}
		if typ == TypeEnd {
			return nil
		}

		name, err := d.r.ReadString()
		if err != nil {
			return d.fail(err)
		}

		d.path = append(d.path, name)
		h, err := d.value(typ)
		if err != nil {
			return err
		}
		d.path = d.path[:len(d.path)-1]

		// Duplicate keys in the input follow overwrite semantics: the last
		// occurrence wins and the displaced subtree is freed.
		if old, replaced := d.tree.arena.get(into).comp.insert(name, h); replaced {
			d.tree.removeSubtree(old)
		}
	}
}

// value decodes one payload of the given kind and returns its handle.
func (d *decoder) value(typ Type) (Handle, error) {
	switch typ {
	case TypeByte:
		v, err := d.r.ReadI8()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeShort:
		v, err := d.r.ReadI16()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeInt:
		v, err := d.r.ReadI32()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeLong:
		v, err := d.r.ReadI64()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeFloat:
		v, err := d.r.ReadF32()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeDouble:
		v, err := d.r.ReadF64()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeString:
		v, err := d.r.ReadString()
		if err != nil {
			return 0, d.fail(err)
		}
		return d.tree.arena.insert(nodeOf(v)), nil
	case TypeByteArray:
		raw, err := d.array(1)
		if err != nil {
			return 0, err
		}
		vs := make([]int8, len(raw))
		for i, b := range raw {
			vs[i] = int8(b)
		}
		return d.tree.arena.insert(nodeOf(vs)), nil
	case TypeIntArray:
		raw, err := d.array(4)
		if err != nil {
			return 0, err
		}
		vs := make([]int32, len(raw)/4)
		for i := range vs {
			vs[i] = int32(uint32(raw[i*4])<<24 | uint32(raw[i*4+1])<<16 |
				uint32(raw[i*4+2])<<8 | uint32(raw[i*4+3]))
		}
		return d.tree.arena.insert(nodeOf(vs)), nil
	case TypeLongArray:
		raw, err := d.array(8)
		if err != nil {
			return 0, err
		}
		vs := make([]int64, len(raw)/8)
		for i := range vs {
			var v uint64
			for j := 0; j < 8; j++ {
				v = v<<8 | uint64(raw[i*8+j])
			}
			vs[i] = int64(v)
		}
		return d.tree.arena.insert(nodeOf(vs)), nil
	case TypeList:
		return d.list()
	case TypeCompound:
		h := d.tree.arena.insert(compoundNode())
		if err := d.compoundBody(h); err != nil {
			return 0, err
		}
		return h, nil
	}
	panic("unreachable")
}

// array reads an int32 length prefix and length*width payload bytes.
func (d *decoder) array(width int) ([]byte, error) {
	length, err := d.r.ReadI32()
	if err != nil {
		return nil, d.fail(err)
	}
	if length < 0 {
		return nil, errors.InvalidLength(append([]string(nil), d.path...), d.r.Position(), length)
	}
	raw, err := d.r.ReadBytes(int(length) * width)
	if err != nil {
		return nil, d.fail(err)
	}
	return raw, nil
}

// list reads an element tag, an int32 count, and that many untagged values.
// The element type is preserved even for zero elements.
func (d *decoder) list() (Handle, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return 0, d.fail(err)
	}
	elem := Type(tag)
	if !elem.Valid() {
		return 0, errors.InvalidTag(append([]string(nil), d.path...), d.r.Position(), tag)
	}

	count, err := d.r.ReadI32()
	if err != nil {
		return 0, d.fail(err)
	}
	if count < 0 {
		return 0, errors.InvalidLength(append([]string(nil), d.path...), d.r.Position(), count)
	}
	if elem == TypeEnd && count > 0 {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidTag).
			Path(append([]string(nil), d.path...)...).
			Offset(d.r.Position()).
			Detail("list declares %d elements of %s", count, TypeEnd).
			Build()
	}

	kids := make([]Handle, 0, count)
	for i := int32(0); i < count; i++ {
		d.path = append(d.path, indexSegment(int(i)))
		h, err := d.value(elem)
		if err != nil {
			return 0, err
		}
		d.path = d.path[:len(d.path)-1]
		kids = append(kids, h)
	}

	n := listNode(elem)
	n.kids = kids
	return d.tree.arena.insert(n), nil
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
