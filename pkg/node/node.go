// Package node provides the host-side tree algebra that the BLT codec
// persists: identifiers, literals, and calls, each optionally decorated
// with an ordered list of attribute nodes.
//
// The codec itself treats nodes as an external collaborator (it never
// constructs node values except through a Factory supplied by the
// caller); this package is the reference implementation a caller wires
// in, generalized from a Windows-registry-specific key/value tree to the
// identifier/literal/call algebra BLT persists.
package node

import "math/big"

// Void is the literal value carried by a node whose source ecosystem
// distinguishes an explicit "no value" from the null literal. A literal
// node wrapping Void{} is distinct from one wrapping nil.
type Void struct{}

// Char is a raw UCS-2/UTF-16 code unit, stored exactly as produced —
// including an unpaired surrogate half. It is a distinct type from
// uint16 so the literal registry can tell a character apart from an
// unsigned 16-bit integer literal.
type Char uint16

// Decimal is a 128-bit fixed-point decimal, laid out the way its source
// ecosystem's canonical decimal type lays out its four 32-bit words: a
// low/mid/high mantissa and a flags word carrying sign and scale.
type Decimal struct {
	Lo, Mid, Hi, Flags uint32
}

// Kind distinguishes the three node variants.
type Kind int

const (
	// Identifier carries a symbolic name.
	Identifier Kind = iota
	// Literal carries a typed primitive value, or nil for the null literal.
	Literal
	// Call carries a target node and an ordered list of argument nodes.
	Call
)

// Node is an immutable tree node: an identifier, a literal, or a call,
// decorated with an ordered (possibly empty) list of attribute nodes.
//
// Nodes are compared and hashed by value identity at the object level
// (two distinct *Node values may be structurally Equal without being the
// same pointer) — see internal/classify for the structural comparator
// the codec builds on top of this identity.
type Node struct {
	kind  Kind
	name  string // Identifier name
	value any    // Literal value; nil means the null literal

	target *Node   // Call target
	args   []*Node // Call arguments, in order

	attrs []*Node // Attribute list, in order; nil/empty means none
}

// NewIdentifier creates an identifier node named name.
func NewIdentifier(name string) *Node {
	return &Node{kind: Identifier, name: name}
}

// NewLiteral creates a literal node wrapping value. Pass nil for the null literal.
func NewLiteral(value any) *Node {
	return &Node{kind: Literal, value: value}
}

// NewCall creates a call node applying target to args, in order.
func NewCall(target *Node, args ...*Node) *Node {
	return &Node{kind: Call, target: target, args: args}
}

// WithAttrs returns a copy of n carrying attrs as its attribute list.
// n itself is left unmodified (nodes are immutable).
func (n *Node) WithAttrs(attrs ...*Node) *Node {
	cp := *n
	cp.attrs = attrs
	return &cp
}

// WithoutAttrs returns a node equal to n in every respect except that its
// attribute list is empty.
func (n *Node) WithoutAttrs() *Node {
	if len(n.attrs) == 0 {
		return n
	}
	cp := *n
	cp.attrs = nil
	return &cp
}

// Kind reports which of Identifier, Literal, or Call n is.
func (n *Node) Kind() Kind { return n.kind }

// IsIdentifier reports whether n is an identifier node.
func (n *Node) IsIdentifier() bool { return n.kind == Identifier }

// IsLiteral reports whether n is a literal node.
func (n *Node) IsLiteral() bool { return n.kind == Literal }

// IsCall reports whether n is a call node.
func (n *Node) IsCall() bool { return n.kind == Call }

// Name returns the identifier's name. Only meaningful when IsIdentifier.
func (n *Node) Name() string { return n.name }

// Value returns the literal's value (nil for the null literal). Only meaningful when IsLiteral.
func (n *Node) Value() any { return n.value }

// Target returns the call's target node. Only meaningful when IsCall.
func (n *Node) Target() *Node { return n.target }

// Args returns the call's arguments, in order. Only meaningful when IsCall.
func (n *Node) Args() []*Node { return n.args }

// Attrs returns n's attribute list, in order. May be empty.
func (n *Node) Attrs() []*Node { return n.attrs }

// HasAttrs reports whether n carries any attributes.
func (n *Node) HasAttrs() bool { return len(n.attrs) > 0 }

// Equal reports whether a and b are structurally equal: same kind, same
// name/value/target/args/attrs, recursively. Unlike internal/classify's
// comparator, this does no memoization or union-find — it is the
// reference definition those optimizations must agree with.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	if !equalSlice(a.attrs, b.attrs) {
		return false
	}
	switch a.kind {
	case Identifier:
		return a.name == b.name
	case Literal:
		return equalValue(a.value, b.value)
	case Call:
		if !Equal(a.target, b.target) {
			return false
		}
		return equalSlice(a.args, b.args)
	default:
		return false
	}
}

func equalSlice(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ab, aok := a.([]byte)
	bb, bok := b.([]byte)
	if aok || bok {
		if !aok || !bok || len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	}
	aBig, aok := a.(*big.Int)
	bBig, bok := b.(*big.Int)
	if aok || bok {
		return aok && bok && aBig.Cmp(bBig) == 0
	}
	return a == b
}
