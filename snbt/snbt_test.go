package snbt_test

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enkvadrat/nbt"
	"github.com/enkvadrat/nbt/errors"
	"github.com/enkvadrat/nbt/snbt"
)

func TestParseEmpty(t *testing.T) {
	tree, err := snbt.Parse("{}")
	require.NoError(t, err)
	assert.Equal(t, "", tree.Name())
	assert.Equal(t, 0, tree.Root().Len())
}

func TestParseBasic(t *testing.T) {
	tree, err := snbt.Parse(`{name:"bananrama",value:1}`)
	require.NoError(t, err)

	name, ok := nbt.Find[string](tree.Root(), "name")
	require.True(t, ok)
	assert.Equal(t, "bananrama", name)

	value, ok := nbt.Find[int32](tree.Root(), "value")
	require.True(t, ok)
	assert.Equal(t, int32(1), value)
}

func TestParseScalars(t *testing.T) {
	tree, err := snbt.Parse(`{
		b: 1b,
		s: -2s,
		i: 3,
		l: 4L,
		f: 1.5f,
		d: 0.25d,
		bare: 2.5,
		yes: true,
		no: false,
		word: hello,
		quoted: "hi there"
	}`)
	require.NoError(t, err)
	root := tree.Root()

	b, ok := nbt.Find[int8](root, "b")
	require.True(t, ok)
	assert.Equal(t, int8(1), b)

	s, ok := nbt.Find[int16](root, "s")
	require.True(t, ok)
	assert.Equal(t, int16(-2), s)

	i, ok := nbt.Find[int32](root, "i")
	require.True(t, ok)
	assert.Equal(t, int32(3), i)

	l, ok := nbt.Find[int64](root, "l")
	require.True(t, ok)
	assert.Equal(t, int64(4), l)

	f, ok := nbt.Find[float32](root, "f")
	require.True(t, ok)
	assert.Equal(t, float32(1.5), f)

	d, ok := nbt.Find[float64](root, "d")
	require.True(t, ok)
	assert.Equal(t, 0.25, d)

	// An unsuffixed number with a dot is a double.
	bare, ok := nbt.Find[float64](root, "bare")
	require.True(t, ok)
	assert.Equal(t, 2.5, bare)

	yes, ok := nbt.Find[int8](root, "yes")
	require.True(t, ok)
	assert.Equal(t, int8(1), yes)

	no, ok := nbt.Find[int8](root, "no")
	require.True(t, ok)
	assert.Equal(t, int8(0), no)

	word, ok := nbt.Find[string](root, "word")
	require.True(t, ok)
	assert.Equal(t, "hello", word)

	quoted, ok := nbt.Find[string](root, "quoted")
	require.True(t, ok)
	assert.Equal(t, "hi there", quoted)
}

func TestParseArrays(t *testing.T) {
	tree, err := snbt.Parse(`{bytes:[B;1b,-2b],ints:[I;1,2,3],longs:[L;4L,5L],empty:[B;]}`)
	require.NoError(t, err)
	root := tree.Root()

	bytes, ok := nbt.Find[[]int8](root, "bytes")
	require.True(t, ok)
	assert.Equal(t, []int8{1, -2}, bytes)

	ints, ok := nbt.Find[[]int32](root, "ints")
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, ints)

	longs, ok := nbt.Find[[]int64](root, "longs")
	require.True(t, ok)
	assert.Equal(t, []int64{4, 5}, longs)

	empty, ok := nbt.Find[[]int8](root, "empty")
	require.True(t, ok)
	assert.Empty(t, empty)
}

func TestParseLists(t *testing.T) {
	tree, err := snbt.Parse(`{nums:[1,2,3],words:["a","b"],empty:[]}`)
	require.NoError(t, err)
	root := tree.Root()

	nums, ok := root.FindList("nums")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeInt, nums.ElementType())
	assert.Equal(t, 3, nums.Len())
	v, ok := nbt.At[int32](nums, 2)
	require.True(t, ok)
	assert.Equal(t, int32(3), v)

	words, ok := root.FindList("words")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeString, words.ElementType())

	empty, ok := root.FindList("empty")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeEnd, empty.ElementType())
	assert.Equal(t, 0, empty.Len())
}

func TestParseNested(t *testing.T) {
	tree, err := snbt.Parse(`{outer:{inner:{deep:1}},grid:[[1,2],[3]]}`)
	require.NoError(t, err)

	outer, ok := tree.Root().FindCompound("outer")
	require.True(t, ok)
	inner, ok := outer.FindCompound("inner")
	require.True(t, ok)
	deep, ok := nbt.Find[int32](inner, "deep")
	require.True(t, ok)
	assert.Equal(t, int32(1), deep)

	grid, ok := tree.Root().FindList("grid")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeList, grid.ElementType())
	assert.Equal(t, 2, grid.Len())

	first, ok := grid.Get(0)
	require.True(t, ok)
	row, ok := first.AsList()
	require.True(t, ok)
	assert.Equal(t, 2, row.Len())
}

func TestParseListOfCompounds(t *testing.T) {
	tree, err := snbt.Parse(`{mobs:[{id:"pig"},{id:"cow"}]}`)
	require.NoError(t, err)

	mobs, ok := tree.Root().FindList("mobs")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeCompound, mobs.ElementType())
	require.Equal(t, 2, mobs.Len())

	second, ok := mobs.Get(1)
	require.True(t, ok)
	mob, ok := second.AsCompound()
	require.True(t, ok)
	id, ok := nbt.Find[string](mob, "id")
	require.True(t, ok)
	assert.Equal(t, "cow", id)
}

func TestParseQuotedKeys(t *testing.T) {
	tree, err := snbt.Parse(`{"spaced key":1,'single':2}`)
	require.NoError(t, err)

	v, ok := nbt.Find[int32](tree.Root(), "spaced key")
	require.True(t, ok)
	assert.Equal(t, int32(1), v)

	v, ok = nbt.Find[int32](tree.Root(), "single")
	require.True(t, ok)
	assert.Equal(t, int32(2), v)
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	tree, err := snbt.Parse(`{a:1,a:2}`)
	require.NoError(t, err)
	assert.Equal(t, 1, tree.Root().Len())
	v, ok := nbt.Find[int32](tree.Root(), "a")
	require.True(t, ok)
	assert.Equal(t, int32(2), v)
}

func TestParseRoundTrip(t *testing.T) {
	tree := nbt.New()
	root := tree.RootMut()
	nbt.Insert(root, "byte", int8(-1))
	nbt.Insert(root, "double", math.Pi)
	nbt.Insert(root, "text", `with "quotes" and spaces`)
	nbt.Insert(root, "ints", []int32{1, -2, 3})
	list := root.InsertList("list", nbt.TypeLong)
	nbt.Append(list, int64(1)<<40)
	inner := root.InsertCompound("inner")
	nbt.Insert(inner, "f", float32(0.5))

	parsed, err := snbt.Parse(tree.String())
	require.NoError(t, err)
	assert.True(t, tree.Equal(parsed), "compact form did not parse back:\n%s", tree.String())
}

func TestParseRoundTripEmptyList(t *testing.T) {
	tree := nbt.New()
	tree.RootMut().InsertList("l", nbt.TypeInt)

	// [] carries no element type, so the declared type does not survive the
	// text form: the parsed list comes back untyped.
	parsed, err := snbt.Parse(tree.String())
	require.NoError(t, err)

	list, ok := parsed.Root().FindList("l")
	require.True(t, ok)
	assert.Equal(t, nbt.TypeEnd, list.ElementType())
	assert.Equal(t, 0, list.Len())
	assert.False(t, tree.Equal(parsed))

	// A populated list keeps its type, so the exception is empty lists only.
	nbt.Append(tree.RootMut().InsertList("l", nbt.TypeInt), int32(1))
	parsed, err = snbt.Parse(tree.String())
	require.NoError(t, err)
	assert.True(t, tree.Equal(parsed))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  errors.Kind
	}{
		{"not a compound", "[1,2]", errors.KindUnexpectedToken},
		{"missing colon", `{a 1}`, errors.KindUnexpectedToken},
		{"missing close", `{a:1`, errors.KindUnexpectedToken},
		{"trailing garbage", `{a:1} extra`, errors.KindUnexpectedToken},
		{"unterminated string", `{a:"oops}`, errors.KindUnexpectedToken},
		{"mixed list", `{a:[1,"x"]}`, errors.KindUnexpectedToken},
		{"list then compound", `{a:[1,{}]}`, errors.KindUnexpectedToken},
		{"byte overflow", `{a:300b}`, errors.KindInvalidNumber},
		{"int overflow", `{a:99999999999}`, errors.KindInvalidNumber},
		{"array element overflow", `{a:[B;300]}`, errors.KindInvalidNumber},
		{"array bad element", `{a:[I;1,{}]}`, errors.KindUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snbt.Parse(tt.input)
			require.Error(t, err)
			target := &errors.Error{Phase: errors.PhaseParse, Kind: tt.kind}
			assert.True(t, stderrors.Is(err, target), "err = %v, want kind %s", err, tt.kind)
		})
	}
}
