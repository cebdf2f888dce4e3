package snbt

import (
	"strconv"
	"strings"

	"github.com/enkvadrat/nbt"
	"github.com/enkvadrat/nbt/errors"
	"github.com/enkvadrat/nbt/snbt/internal/token"
)

// Parse compiles SNBT text into a tree. The top level must be a compound;
// the resulting tree carries an empty root name.
func Parse(input string) (*nbt.Tree, error) {
	tokens, err := token.Tokenize(input)
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindUnexpectedToken).
			Cause(err).
			Detail("tokenize").
			Build()
	}

	p := &parser{tokens: tokens}
	tree := nbt.New()
	if err := p.compound(tree.RootMut()); err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, errors.UnexpectedToken(tok.Offset, tok.Type.String(), "end of input")
	}
	return tree, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (token.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) expect(t token.Type) (token.Token, error) {
	tok, ok := p.next()
	if !ok {
		return token.Token{}, p.eof(t.String())
	}
	if tok.Type != t {
		return token.Token{}, errors.UnexpectedToken(tok.Offset, tok.Type.String(), t.String())
	}
	return tok, nil
}

func (p *parser) eof(want string) error {
	off := 0
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		off = last.Offset + len(last.Value)
	}
	return errors.UnexpectedToken(off, "end of input", want)
}

// sink abstracts over where a parsed value lands: a compound entry or the
// next list element. List sinks refuse a value whose kind breaks the list's
// homogeneity.
type sink struct {
	scalar       func(scalarValue) bool
	openCompound func() (nbt.CompoundRefMut, bool)
	openList     func() (nbt.ListRefMut, bool)
}

func compoundSink(c nbt.CompoundRefMut, key string) sink {
	return sink{
		scalar: func(v scalarValue) bool {
			insertValue(c, key, v)
			return true
		},
		openCompound: func() (nbt.CompoundRefMut, bool) {
			return c.InsertCompound(key), true
		},
		openList: func() (nbt.ListRefMut, bool) {
			return c.InsertList(key, nbt.TypeEnd), true
		},
	}
}

func listSink(l nbt.ListRefMut) sink {
	return sink{
		scalar:       func(v scalarValue) bool { return appendValue(l, v) },
		openCompound: l.AppendCompound,
		openList: func() (nbt.ListRefMut, bool) {
			return l.AppendList(nbt.TypeEnd)
		},
	}
}

// compound parses {key:value,...} into an existing compound node.
func (p *parser) compound(c nbt.CompoundRefMut) error {
	if _, err := p.expect(token.LBrace); err != nil {
		return err
	}
	if tok, ok := p.peek(); ok && tok.Type == token.RBrace {
		p.pos++
		return nil
	}

	for {
		key, ok := p.next()
		if !ok {
			return p.eof("compound key")
		}
		if key.Type != token.String && key.Type != token.Literal {
			return errors.UnexpectedToken(key.Offset, key.Type.String(), "compound key")
		}
		if _, err := p.expect(token.Colon); err != nil {
			return err
		}
		if err := p.value(compoundSink(c, key.Value)); err != nil {
			return err
		}

		sep, ok := p.next()
		if !ok {
			return p.eof("',' or '}'")
		}
		switch sep.Type {
		case token.Comma:
		case token.RBrace:
			return nil
		default:
			return errors.UnexpectedToken(sep.Offset, sep.Type.String(), "',' or '}'")
		}
	}
}

// value parses one value of any kind into the sink.
func (p *parser) value(s sink) error {
	tok, ok := p.peek()
	if !ok {
		return p.eof("value")
	}

	switch tok.Type {
	case token.LBrace:
		c, ok := s.openCompound()
		if !ok {
			return p.mixed(tok.Offset)
		}
		return p.compound(c)

	case token.LBracket:
		if p.arrayAhead() {
			v, err := p.array()
			if err != nil {
				return err
			}
			if !s.scalar(v) {
				return p.mixed(tok.Offset)
			}
			return nil
		}
		l, ok := s.openList()
		if !ok {
			return p.mixed(tok.Offset)
		}
		return p.list(l)

	case token.String:
		p.pos++
		if !s.scalar(scalarValue{typ: nbt.TypeString, s: tok.Value}) {
			return p.mixed(tok.Offset)
		}
		return nil

	case token.Literal:
		p.pos++
		v, err := classify(tok)
		if err != nil {
			return err
		}
		if !s.scalar(v) {
			return p.mixed(tok.Offset)
		}
		return nil
	}

	return errors.UnexpectedToken(tok.Offset, tok.Type.String(), "value")
}

func (p *parser) mixed(offset int) error {
	return errors.New(errors.PhaseParse, errors.KindUnexpectedToken).
		Offset(offset).
		Detail("list elements must share one type").
		Build()
}

// arrayAhead reports whether the upcoming bracket opens a typed array
// ([B; [I; [L;) rather than a list.
func (p *parser) arrayAhead() bool {
	if p.pos+2 >= len(p.tokens) {
		return false
	}
	prefix := p.tokens[p.pos+1]
	if prefix.Type != token.Literal {
		return false
	}
	switch prefix.Value {
	case "B", "I", "L":
		return p.tokens[p.pos+2].Type == token.Semicolon
	}
	return false
}

// list parses [v,v,...] elements into an existing list node.
func (p *parser) list(l nbt.ListRefMut) error {
	if _, err := p.expect(token.LBracket); err != nil {
		return err
	}
	if tok, ok := p.peek(); ok && tok.Type == token.RBracket {
		p.pos++
		return nil
	}

	for {
		if err := p.value(listSink(l)); err != nil {
			return err
		}
		sep, ok := p.next()
		if !ok {
			return p.eof("',' or ']'")
		}
		switch sep.Type {
		case token.Comma:
		case token.RBracket:
			return nil
		default:
			return errors.UnexpectedToken(sep.Offset, sep.Type.String(), "',' or ']'")
		}
	}
}

// array parses [B;...], [I;...] or [L;...] into an array value.
func (p *parser) array() (scalarValue, error) {
	p.pos++ // [
	prefix, _ := p.next()
	p.pos++ // ;

	var (
		elemBits int
		typ      nbt.Type
	)
	switch prefix.Value {
	case "B":
		elemBits, typ = 8, nbt.TypeByteArray
	case "I":
		elemBits, typ = 32, nbt.TypeIntArray
	case "L":
		elemBits, typ = 64, nbt.TypeLongArray
	}

	v := scalarValue{typ: typ}
	if tok, ok := p.peek(); ok && tok.Type == token.RBracket {
		p.pos++
		return v, nil
	}

	for {
		tok, ok := p.next()
		if !ok {
			return v, p.eof("array element")
		}
		if tok.Type != token.Literal {
			return v, errors.UnexpectedToken(tok.Offset, tok.Type.String(), "array element")
		}
		n, err := parseArrayElement(tok, elemBits)
		if err != nil {
			return v, err
		}
		switch typ {
		case nbt.TypeByteArray:
			v.i8s = append(v.i8s, int8(n))
		case nbt.TypeIntArray:
			v.i32s = append(v.i32s, int32(n))
		case nbt.TypeLongArray:
			v.i64s = append(v.i64s, n)
		}

		sep, ok := p.next()
		if !ok {
			return v, p.eof("',' or ']'")
		}
		switch sep.Type {
		case token.Comma:
		case token.RBracket:
			return v, nil
		default:
			return v, errors.UnexpectedToken(sep.Offset, sep.Type.String(), "',' or ']'")
		}
	}
}

// parseArrayElement reads an integer literal with an optional (and ignored)
// matching type suffix, range-checked against the element width.
func parseArrayElement(tok token.Token, bits int) (int64, error) {
	lit := tok.Value
	if len(lit) > 0 {
		switch lit[len(lit)-1] {
		case 'b', 'B', 'l', 'L':
			lit = lit[:len(lit)-1]
		}
	}
	n, err := strconv.ParseInt(lit, 10, bits)
	if err != nil {
		return 0, errors.InvalidNumber(tok.Offset, tok.Value, err)
	}
	return n, nil
}

// scalarValue is one parsed non-container value.
type scalarValue struct {
	typ  nbt.Type
	i    int64
	f    float64
	s    string
	i8s  []int8
	i32s []int32
	i64s []int64
}

// classify decides what an unquoted literal means: a suffixed or bare
// number, a boolean, or a bare string.
func classify(tok token.Token) (scalarValue, error) {
	lit := tok.Value
	switch lit {
	case "true":
		return scalarValue{typ: nbt.TypeByte, i: 1}, nil
	case "false":
		return scalarValue{typ: nbt.TypeByte, i: 0}, nil
	}

	if len(lit) > 1 {
		body := lit[:len(lit)-1]
		switch lit[len(lit)-1] {
		case 'b', 'B':
			if numericBody(body) {
				return parseIntLiteral(tok, body, nbt.TypeByte, 8)
			}
		case 's', 'S':
			if numericBody(body) {
				return parseIntLiteral(tok, body, nbt.TypeShort, 16)
			}
		case 'l', 'L':
			if numericBody(body) {
				return parseIntLiteral(tok, body, nbt.TypeLong, 64)
			}
		case 'f', 'F':
			if f, err := strconv.ParseFloat(body, 32); err == nil {
				return scalarValue{typ: nbt.TypeFloat, f: f}, nil
			}
		case 'd', 'D':
			if f, err := strconv.ParseFloat(body, 64); err == nil {
				return scalarValue{typ: nbt.TypeDouble, f: f}, nil
			}
		}
	}

	if numericBody(lit) {
		if strings.ContainsRune(lit, '.') {
			f, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return scalarValue{}, errors.InvalidNumber(tok.Offset, tok.Value, err)
			}
			return scalarValue{typ: nbt.TypeDouble, f: f}, nil
		}
		return parseIntLiteral(tok, lit, nbt.TypeInt, 32)
	}

	// Anything else is a bare string.
	return scalarValue{typ: nbt.TypeString, s: tok.Value}, nil
}

func parseIntLiteral(tok token.Token, body string, typ nbt.Type, bits int) (scalarValue, error) {
	n, err := strconv.ParseInt(body, 10, bits)
	if err != nil {
		return scalarValue{}, errors.InvalidNumber(tok.Offset, tok.Value, err)
	}
	return scalarValue{typ: typ, i: n}, nil
}

// numericBody reports whether s is an optionally signed decimal number with
// at most one dot. Exponent forms are left to the suffixed float paths.
func numericBody(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func insertValue(c nbt.CompoundRefMut, key string, v scalarValue) {
	switch v.typ {
	case nbt.TypeByte:
		nbt.Insert(c, key, int8(v.i))
	case nbt.TypeShort:
		nbt.Insert(c, key, int16(v.i))
	case nbt.TypeInt:
		nbt.Insert(c, key, int32(v.i))
	case nbt.TypeLong:
		nbt.Insert(c, key, v.i)
	case nbt.TypeFloat:
		nbt.Insert(c, key, float32(v.f))
	case nbt.TypeDouble:
		nbt.Insert(c, key, v.f)
	case nbt.TypeString:
		nbt.Insert(c, key, v.s)
	case nbt.TypeByteArray:
		nbt.Insert(c, key, v.i8s)
	case nbt.TypeIntArray:
		nbt.Insert(c, key, v.i32s)
	case nbt.TypeLongArray:
		nbt.Insert(c, key, v.i64s)
	}
}

func appendValue(l nbt.ListRefMut, v scalarValue) bool {
	switch v.typ {
	case nbt.TypeByte:
		return nbt.Append(l, int8(v.i))
	case nbt.TypeShort:
		return nbt.Append(l, int16(v.i))
	case nbt.TypeInt:
		return nbt.Append(l, int32(v.i))
	case nbt.TypeLong:
		return nbt.Append(l, v.i)
	case nbt.TypeFloat:
		return nbt.Append(l, float32(v.f))
	case nbt.TypeDouble:
		return nbt.Append(l, v.f)
	case nbt.TypeString:
		return nbt.Append(l, v.s)
	case nbt.TypeByteArray:
		return nbt.Append(l, v.i8s)
	case nbt.TypeIntArray:
		return nbt.Append(l, v.i32s)
	case nbt.TypeLongArray:
		return nbt.Append(l, v.i64s)
	}
	return false
}
