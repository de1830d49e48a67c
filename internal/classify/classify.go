// Package classify implements the classifying node comparator: structural
// equality over the node algebra with memoized hashing and union-find
// equivalence classes, so that any two structurally-equal nodes are
// proven equal at most once.
//
// The union-find side table is grounded on the identity-keyed side-table
// precedent in pkg/ast.Node (lazy-loading fields keyed by the node's own
// identity rather than its content), and the iterative, explicit-stack
// traversal discipline is grounded on hive/walker/core.go's Bitmap-backed
// iterative walker — both exist so that neither hashing nor equality
// testing assumes a shallow tree.
package classify

import (
	"hash/fnv"
	"math"
	"math/big"

	"github.com/jonathanvdc/blt/pkg/node"
)

// Comparator owns the memoized-hash and union-find side tables for one
// encode session. It is not safe for concurrent use (spec: "a single
// encode or decode session owns its builder/reader state exclusively").
type Comparator struct {
	hash   map[*node.Node]uint64
	parent map[*node.Node]*node.Node
	rank   map[*node.Node]int
}

// New creates an empty Comparator.
func New() *Comparator {
	return &Comparator{
		hash:   make(map[*node.Node]uint64),
		parent: make(map[*node.Node]*node.Node),
		rank:   make(map[*node.Node]int),
	}
}

// Hash returns n's memoized structural hash, computing it (iteratively,
// children before parents) on first request.
//
// Hash rule (spec §4.5): identifier -> hash(name); literal -> hash(value)
// (0 if nil); call -> fold argument hashes into the target hash via
// h' = ((h<<1)+h) ^ argHash. Attributes fold into the result the same way.
func (c *Comparator) Hash(n *node.Node) uint64 {
	if n == nil {
		return 0
	}
	if h, ok := c.hash[n]; ok {
		return h
	}

	type frame struct {
		n     *node.Node
		after bool
	}
	stack := []frame{{n: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if _, done := c.hash[top.n]; done {
			stack = stack[:len(stack)-1]
			continue
		}
		if !top.after {
			stack[len(stack)-1].after = true
			if top.n.IsCall() {
				if _, ok := c.hash[top.n.Target()]; !ok {
					stack = append(stack, frame{n: top.n.Target()})
				}
				for _, a := range top.n.Args() {
					if _, ok := c.hash[a]; !ok {
						stack = append(stack, frame{n: a})
					}
				}
			}
			for _, a := range top.n.Attrs() {
				if _, ok := c.hash[a]; !ok {
					stack = append(stack, frame{n: a})
				}
			}
			continue
		}

		var h uint64
		switch {
		case top.n.IsIdentifier():
			h = hashString(top.n.Name())
		case top.n.IsLiteral():
			h = hashValue(top.n.Value())
		case top.n.IsCall():
			h = c.hash[top.n.Target()]
			for _, a := range top.n.Args() {
				h = fold(h, c.hash[a])
			}
		}
		for _, a := range top.n.Attrs() {
			h = fold(h, c.hash[a])
		}
		c.hash[top.n] = h
		stack = stack[:len(stack)-1]
	}
	return c.hash[n]
}

func fold(h, argHash uint64) uint64 {
	return ((h << 1) + h) ^ argHash
}

func hashString(s string) uint64 {
	hh := fnv.New64a()
	_, _ = hh.Write([]byte(s))
	return hh.Sum64()
}

func hashValue(v any) uint64 {
	if v == nil {
		return 0
	}
	hh := fnv.New64a()
	switch x := v.(type) {
	case string:
		_, _ = hh.Write([]byte{'s'})
		_, _ = hh.Write([]byte(x))
	case []byte:
		_, _ = hh.Write([]byte{'b'})
		_, _ = hh.Write(x)
	case bool:
		_, _ = hh.Write([]byte{'B'})
		if x {
			_, _ = hh.Write([]byte{1})
		} else {
			_, _ = hh.Write([]byte{0})
		}
	case float32:
		_, _ = hh.Write([]byte{'f'})
		writeUint64(hh, uint64(math.Float32bits(x)))
	case float64:
		_, _ = hh.Write([]byte{'d'})
		writeUint64(hh, math.Float64bits(x))
	case node.Char:
		_, _ = hh.Write([]byte{'c'})
		writeUint64(hh, uint64(x))
	case node.Void:
		_, _ = hh.Write([]byte{'v'})
	case node.Decimal:
		_, _ = hh.Write([]byte{'D'})
		writeUint64(hh, uint64(x.Lo)|uint64(x.Mid)<<32)
		writeUint64(hh, uint64(x.Hi)|uint64(x.Flags)<<32)
	case *big.Int:
		_, _ = hh.Write([]byte{'I'})
		_, _ = hh.Write(x.Bytes())
	default:
		_, _ = hh.Write([]byte{'i'})
		writeUint64(hh, uint64(toInt64(v)))
	}
	return hh.Sum64()
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case int:
		return int64(x)
	default:
		return 0
	}
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

// find returns the union-find root of n, path-compressing along the way.
// Nodes never explicitly added to the union-find tables are their own root.
func (c *Comparator) find(n *node.Node) *node.Node {
	root := n
	for {
		p, ok := c.parent[root]
		if !ok {
			break
		}
		root = p
	}
	for n != root {
		next := c.parent[n]
		c.parent[n] = root
		n = next
	}
	return root
}

// union merges a and b's equivalence classes by rank.
func (c *Comparator) union(a, b *node.Node) {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return
	}
	if c.rank[ra] < c.rank[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	if c.rank[ra] == c.rank[rb] {
		c.rank[ra]++
	}
}

// Equal reports whether a and b are structurally equal, consulting (and
// updating) the union-find classes so that a given pair is proven equal
// at most once. Hash mismatches short-circuit without descending.
// Traversal is iterative to tolerate arbitrarily deep trees.
func (c *Comparator) Equal(a, b *node.Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	type pair struct{ a, b *node.Node }
	stack := []pair{{a, b}}
	proven := make([]pair, 0, 8)

	for len(stack) > 0 {
		n := len(stack) - 1
		p := stack[n]
		stack = stack[:n]

		if p.a == p.b {
			continue
		}
		if c.find(p.a) == c.find(p.b) {
			continue
		}
		if c.Hash(p.a) != c.Hash(p.b) {
			return false
		}
		if p.a.Kind() != p.b.Kind() {
			return false
		}
		if !sameLen(p.a.Attrs(), p.b.Attrs()) {
			return false
		}
		for i := range p.a.Attrs() {
			stack = append(stack, pair{p.a.Attrs()[i], p.b.Attrs()[i]})
		}

		switch {
		case p.a.IsIdentifier():
			if p.a.Name() != p.b.Name() {
				return false
			}
		case p.a.IsLiteral():
			if !equalLiteral(p.a.Value(), p.b.Value()) {
				return false
			}
		case p.a.IsCall():
			if !sameLen(p.a.Args(), p.b.Args()) {
				return false
			}
			stack = append(stack, pair{p.a.Target(), p.b.Target()})
			for i := range p.a.Args() {
				stack = append(stack, pair{p.a.Args()[i], p.b.Args()[i]})
			}
		}

		proven = append(proven, p)
	}

	for _, p := range proven {
		c.union(p.a, p.b)
	}
	return true
}

func sameLen(a, b []*node.Node) bool { return len(a) == len(b) }

func equalLiteral(a, b any) bool {
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
