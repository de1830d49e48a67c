/*
Package blt implements BLT (Binary Loyc Tree), a compact binary
serialization format for homogeneous forests of identifier/literal/call
nodes with optional attributes.

# Quick Start

Write a forest and read it back:

	forest := []*node.Node{
	    node.NewCall(node.NewIdentifier("add"), node.NewLiteral(int32(1)), node.NewLiteral(int32(2))),
	}

	var buf bytes.Buffer
	if err := blt.WriteFile(&buf, forest, nil); err != nil {
	    log.Fatal(err)
	}

	got, err := blt.ReadFile(&buf, "example", nil)
	if err != nil {
	    log.Fatal(err)
	}

# Design

A BLT file is three interned tables — symbols, templates, and a
run-clustered node table — followed by a list of top-level references
into the node table. Structurally identical subtrees are interned once
regardless of how many times they appear in the forest, so sharing in
the input forest is preserved (and newly-discovered sharing is added)
rather than expanded.

# Custom Node Types

Callers whose tree type is richer than *node.Node (for example, one
that tracks source spans) can plug in their own construction by
implementing node.Factory and passing it via Options.Factory. The
identifier parameter threaded through every ReadFile call is an opaque
label handed to every node the factory builds; it has no on-disk
representation.

# Extending the Literal Set

The built-in encoding kinds cover every primitive BLT defines (spec
§4.1, §6). A caller that needs an additional literal representation
registers it by Go runtime type through Options.Kinds/Encoders/Decoders
before calling WriteFile/ReadFile; an unregistered runtime type fails
encoding with an *errs.Error of kind ErrKindUnsupportedLiteral rather
than silently truncating data.

# Error Handling

Every format failure this package raises is an *errs.Error carrying one
of the ErrKind values; callers should branch on kind with errors.Is
against the exported sentinels (errs.ErrBadMagic, errs.ErrUnsupportedVersion,
and so on) rather than matching error text. Errors from the underlying
io.Writer are returned as they are, and ReadFilePath/WriteFilePath wrap
file-system errors with fmt.Errorf and %w; those carry no ErrKind.
*/
package blt
