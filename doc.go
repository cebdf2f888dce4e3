// Package nbt implements the Named Binary Tag tree format: an arena-backed
// in-memory tree model, a big-endian binary codec, and two text renderings
// (a compact single-line SNBT form and a multi-line pretty form).
//
// # Architecture Overview
//
// The library is organized into a core package and a few helpers:
//
//	nbt/                 Tree model, reference layer, binary codec, renderers
//	├── snbt/            SNBT text to tree parser
//	├── errors/          Structured error types for decode/parse failures
//	├── internal/binary/ Position-tracked big-endian reader and writer
//	└── cmd/nbtdump/     CLI inspector and interactive tree browser
//
// # Quick Start
//
// Decode a binary tree:
//
//	tree, err := nbt.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Read and mutate through typed views:
//
//	root := tree.Root()
//	name, ok := nbt.Find[string](root, "name")
//
//	mut := tree.RootMut()
//	nbt.Insert(mut, "value", int32(1))
//
// Encode back to bytes:
//
//	out, err := tree.Encode()
//
// Round-trip decoding and encoding is byte-identical for conforming input,
// except that compound keys are emitted in sorted order.
//
// # Views
//
// Ref and RefMut are non-owning views into a tree. Every view carries the
// generation of the arena slot it points at; using a view after its node has
// been removed panics instead of touching reused storage. Mutable navigation
// always returns fresh scoped views, so at most one mutation path is live at
// a time.
package nbt
