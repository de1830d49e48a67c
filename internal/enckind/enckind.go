// Package enckind enumerates the per-run encoding kind tag, the single
// byte that precedes every node-table run and tells the decoder how to
// interpret the run's body (spec §6's "Encoding kind tag values").
//
// The tag values are fixed by the on-disk format; renumbering any of
// them is a breaking format change.
package enckind

// Kind is the one-byte tag identifying a node-table run's encoding.
type Kind uint8

const (
	// TemplatedNode runs share one template across the whole run; the
	// template index is written once, up front.
	TemplatedNode Kind = 0
	// IdNode runs hold bare identifiers, one symbol reference each.
	IdNode Kind = 1
	// String runs hold string literals, one symbol reference each.
	String Kind = 2
	Int8   Kind = 3
	Int16  Kind = 4
	Int32  Kind = 5
	Int64  Kind = 6
	UInt8  Kind = 7
	UInt16 Kind = 8
	UInt32 Kind = 9
	UInt64 Kind = 10
	Float32 Kind = 11
	Float64 Kind = 12
	Char    Kind = 13
	Boolean Kind = 14
	// Void and Null carry zero bytes per entry; they are self-identifying
	// from the run's kind tag alone.
	Void Kind = 15
	Null Kind = 16
	// Decimal is the 128-bit fixed-point lane layout (spec §4.1).
	Decimal Kind = 17
	// BigInteger is a length-prefixed two's-complement byte sequence.
	BigInteger Kind = 18
	// VariablyTemplatedNode is the escape hatch for a run whose members
	// don't all share one template: each entry carries its own template
	// reference (spec §9, "shared vs. distinct template per run").
	VariablyTemplatedNode Kind = 19
)

// IsTemplated reports whether k's run body is built from template slot
// references rather than a fixed-shape literal or symbol reference.
func (k Kind) IsTemplated() bool {
	return k == TemplatedNode || k == VariablyTemplatedNode
}

func (k Kind) String() string {
	switch k {
	case TemplatedNode:
		return "TemplatedNode"
	case IdNode:
		return "IdNode"
	case String:
		return "String"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case UInt8:
		return "UInt8"
	case UInt16:
		return "UInt16"
	case UInt32:
		return "UInt32"
	case UInt64:
		return "UInt64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Char:
		return "Char"
	case Boolean:
		return "Boolean"
	case Void:
		return "Void"
	case Null:
		return "Null"
	case Decimal:
		return "Decimal"
	case BigInteger:
		return "BigInteger"
	case VariablyTemplatedNode:
		return "VariablyTemplatedNode"
	default:
		return "Unknown"
	}
}
