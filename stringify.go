package nbt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String renders the tree in the compact single-line SNBT form. Every kind
// carries a distinguishing suffix or prefix, so the output parses back into
// a structurally equal tree (see the snbt package), with one exception: an
// empty list prints as [] and loses its declared element type.
func (t *Tree) String() string {
	return t.AsRef().String()
}

// Format implements fmt.Formatter: %v and %s print the compact form, %+v and
// %#v print the multi-line pretty form.
func (t *Tree) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') || f.Flag('#') {
			io.WriteString(f, t.Pretty())
			return
		}
		io.WriteString(f, t.String())
	case 's':
		io.WriteString(f, t.String())
	default:
		fmt.Fprintf(f, "%%!%c(*nbt.Tree)", verb)
	}
}

// String renders the referenced subtree in compact SNBT form.
func (r Ref) String() string {
	var b strings.Builder
	writeSNBT(&b, r)
	return b.String()
}

func writeSNBT(b *strings.Builder, r Ref) {
	n := r.node()
	switch n.typ {
	case TypeByte:
		b.WriteString(strconv.FormatInt(int64(n.byteVal()), 10))
		b.WriteByte('b')
	case TypeShort:
		b.WriteString(strconv.FormatInt(int64(n.shortVal()), 10))
		b.WriteByte('s')
	case TypeInt:
		b.WriteString(strconv.FormatInt(int64(n.intVal()), 10))
	case TypeLong:
		b.WriteString(strconv.FormatInt(n.longVal(), 10))
		b.WriteByte('L')
	case TypeFloat:
		b.WriteString(strconv.FormatFloat(float64(n.floatVal()), 'g', -1, 32))
		b.WriteByte('f')
	case TypeDouble:
		b.WriteString(strconv.FormatFloat(n.doubleVal(), 'g', -1, 64))
		b.WriteByte('d')
	case TypeString:
		writeQuoted(b, n.str)
	case TypeByteArray:
		b.WriteString("[B;")
		for i, v := range n.i8s {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(v), 10))
			b.WriteByte('b')
		}
		b.WriteByte(']')
	case TypeIntArray:
		b.WriteString("[I;")
		for i, v := range n.i32s {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(int64(v), 10))
		}
		b.WriteByte(']')
	case TypeLongArray:
		b.WriteString("[L;")
		for i, v := range n.i64s {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(v, 10))
			b.WriteByte('L')
		}
		b.WriteByte(']')
	case TypeList:
		b.WriteByte('[')
		for i, h := range n.kids {
			if i > 0 {
				b.WriteByte(',')
			}
			writeSNBT(b, r.child(h))
		}
		b.WriteByte(']')
	case TypeCompound:
		b.WriteByte('{')
		for i, e := range n.comp.entries {
			if i > 0 {
				b.WriteByte(',')
			}
			writeKey(b, e.key)
			b.WriteByte(':')
			writeSNBT(b, r.child(e.child))
		}
		b.WriteByte('}')
	}
}

// writeKey writes a compound key, quoting it unless it consists solely of
// characters safe to leave bare.
func writeKey(b *strings.Builder, key string) {
	if bareKey(key) {
		b.WriteString(key)
		return
	}
	writeQuoted(b, key)
}

func bareKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '+':
		default:
			return false
		}
	}
	return true
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}
