// Package snbt parses the compact stringified tag notation back into a tree.
//
// This is the read direction of the format written by (*nbt.Tree).String():
// compounds as {key:value,...}, lists as [v,v], typed arrays as [B;...],
// [I;...] and [L;...], and scalars distinguished by suffix (1b, 1s, 1, 1L,
// 1.5f, 1.5d). Quoted strings accept single or double quotes with backslash
// escapes; unquoted literals that are not numbers are taken as bare strings,
// and true/false are byte 1/0.
//
// Basic usage:
//
//	tree, err := snbt.Parse(`{name:"bananrama",value:1}`)
//
// Parsing a tree's own String() output yields a structurally equal tree,
// with one exception: the text form cannot carry the declared element type
// of an empty list, so [] always parses back as an untyped empty list.
package snbt
