package node

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print writes n to w in a compact s-expression form: identifiers print
// bare, literals print in fmt's %v form (strings Go-quoted, byte slices
// as hex, the null literal as "null"), calls print as
// "target(arg1, arg2)", and attributes print as a leading "@(a1, a2) "
// prefix. This is a debugging/CLI aid, not part of the on-disk format.
func Print(w io.Writer, n *Node) error {
	_, err := io.WriteString(w, Sprint(n))
	return err
}

// Sprint renders n the way Print does, returning a string.
func Sprint(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	if n.HasAttrs() {
		b.WriteString("@(")
		for i, a := range n.attrs {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, a)
		}
		b.WriteString(") ")
	}
	switch n.kind {
	case Identifier:
		b.WriteString(n.name)
	case Literal:
		writeValue(b, n.value)
	case Call:
		writeNode(b, n.target)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, a)
		}
		b.WriteByte(')')
	}
}

func writeValue(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strconv.Quote(x))
	case []byte:
		fmt.Fprintf(b, "%x", x)
	default:
		fmt.Fprintf(b, "%v", x)
	}
}
