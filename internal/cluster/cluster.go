// Package cluster implements the clustering pre-pass: before any
// top-level node is interned, the forest is walked once and every
// descendant leaf (identifier, literal, or null literal) is registered
// up front, grouped as nulls, then identifiers, then literals by runtime
// type in first-sighting order. This front-loads homogeneous runs in the
// node table, minimizing per-run headers (spec §4.7).
//
// The walk uses an explicit work stack rather than the native call
// stack, grounded on hive/walker/core.go's iterative, Bitmap-tracked
// traversal, so a forest nested thousands deep never exhausts the Go
// call stack (spec §9, "deep recursion").
package cluster

import (
	"reflect"

	"github.com/jonathanvdc/blt/pkg/node"
)

// Run walks forest and registers every descendant leaf via intern, in
// the order nulls, identifiers, then literals grouped by runtime type
// (group order is insertion order of types under a deterministic walk).
// It never descends into a node's synthetic non-leaf shape beyond its
// children: a node with attributes or a call contributes only its
// attrs/target/args to the walk, never itself.
func Run(forest []*node.Node, intern func(*node.Node)) {
	var nulls, ids []*node.Node
	var litOrder []reflect.Type
	litGroups := make(map[reflect.Type][]*node.Node)

	stack := make([]*node.Node, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, forest[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}

		if isLeaf(n) {
			switch {
			case n.IsLiteral() && n.Value() == nil:
				nulls = append(nulls, n)
			case n.IsIdentifier():
				ids = append(ids, n)
			default:
				t := reflect.TypeOf(n.Value())
				if _, seen := litGroups[t]; !seen {
					litOrder = append(litOrder, t)
				}
				litGroups[t] = append(litGroups[t], n)
			}
			continue
		}

		// Not a leaf: push children in the same order the node-table
		// builder itself would visit them (spec §4.4), so a node-without-
		// attributes that is itself a leaf still gets discovered here.
		var children []*node.Node
		if n.HasAttrs() {
			children = append(children, n.Attrs()...)
			children = append(children, n.WithoutAttrs())
		} else if n.IsCall() {
			children = append(children, n.Target())
			children = append(children, n.Args()...)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	for _, n := range nulls {
		intern(n)
	}
	for _, n := range ids {
		intern(n)
	}
	for _, t := range litOrder {
		for _, n := range litGroups[t] {
			intern(n)
		}
	}
}

// isLeaf reports whether n is leaf-eligible for the clustering pre-pass:
// an identifier or literal carrying no attributes. A call, or any node
// decorated with attributes, is never a leaf regardless of its own shape.
func isLeaf(n *node.Node) bool {
	return !n.IsCall() && !n.HasAttrs()
}
