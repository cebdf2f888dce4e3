package nbt

import "math"

// node is the tagged value stored in one arena slot. Scalars live in num
// (bit pattern) or str; containers hold handles only, never other nodes.
type node struct {
	typ  Type
	elem Type // list element type, TypeEnd while the list is empty and untyped
	num  uint64
	str  string
	i8s  []int8
	i32s []int32
	i64s []int64
	kids []Handle
	comp compound
}

func compoundNode() node {
	return node{typ: TypeCompound}
}

func listNode(elem Type) node {
	return node{typ: TypeList, elem: elem}
}

func (n *node) byteVal() int8      { return int8(n.num) }
func (n *node) shortVal() int16    { return int16(n.num) }
func (n *node) intVal() int32      { return int32(n.num) }
func (n *node) longVal() int64     { return int64(n.num) }
func (n *node) floatVal() float32  { return math.Float32frombits(uint32(n.num)) }
func (n *node) doubleVal() float64 { return math.Float64frombits(n.num) }
