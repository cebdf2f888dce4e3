package nbt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Pretty renders the tree in the multi-line indented diagnostic form.
func (t *Tree) Pretty() string {
	var b strings.Builder
	t.Dump(&b)
	return b.String()
}

// Dump writes the pretty form to w. The output shows kind, key and value for
// every node; it is for human eyes and is not parsed back.
func (t *Tree) Dump(w io.Writer) {
	p := &printer{w: w}
	p.value(t.AsRef(), t.name, true)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) value(r Ref, name string, named bool) {
	n := r.node()
	label := n.typ.String()
	if named {
		label += "('" + name + "')"
	}

	switch n.typ {
	case TypeByte:
		p.line("%s: %d", label, n.byteVal())
	case TypeShort:
		p.line("%s: %d", label, n.shortVal())
	case TypeInt:
		p.line("%s: %d", label, n.intVal())
	case TypeLong:
		p.line("%s: %d", label, n.longVal())
	case TypeFloat:
		p.line("%s: %s", label, strconv.FormatFloat(float64(n.floatVal()), 'g', -1, 32))
	case TypeDouble:
		p.line("%s: %s", label, strconv.FormatFloat(n.doubleVal(), 'g', -1, 64))
	case TypeString:
		p.line("%s: '%s'", label, n.str)
	case TypeByteArray:
		p.line("%s: %s", label, joinInts(len(n.i8s), func(i int) int64 { return int64(n.i8s[i]) }))
	case TypeIntArray:
		p.line("%s: %s", label, joinInts(len(n.i32s), func(i int) int64 { return int64(n.i32s[i]) }))
	case TypeLongArray:
		p.line("%s: %s", label, joinInts(len(n.i64s), func(i int) int64 { return n.i64s[i] }))
	case TypeList:
		p.line("%s: %s of type %s", label, countEntries(len(n.kids)), n.elem)
		p.open()
		for _, h := range n.kids {
			p.value(r.child(h), "", false)
		}
		p.close()
	case TypeCompound:
		p.line("%s: %s", label, countEntries(len(n.comp.entries)))
		p.open()
		for _, e := range n.comp.entries {
			p.value(r.child(e.child), e.key, true)
		}
		p.close()
	}
}

func (p *printer) open() {
	p.line("{")
	p.indent++
}

func (p *printer) close() {
	p.indent--
	p.line("}")
}

func countEntries(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func joinInts(n int, at func(int) int64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(at(i), 10))
	}
	b.WriteByte(']')
	return b.String()
}
