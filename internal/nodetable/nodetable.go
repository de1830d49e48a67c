// Package nodetable builds the flat, run-clustered node table the
// encoder emits: the "WriterState" that owns getIndex(node) (spec §4.4),
// node classification into an encoding kind and template (spec §4.6),
// and run management across kind and template changes (spec §4.6, §9).
//
// The three-layer dedup — symbols, templates, node table — and the
// getIndex(node) shape mirror hive/edit/skedit.go's getOrCreateSKCell,
// which looks up an existing SK cell by content before allocating a new
// one and interning it, generalized from hive cell offsets to node-table
// slot indices.
package nodetable

import (
	"fmt"

	"github.com/jonathanvdc/blt/internal/classify"
	"github.com/jonathanvdc/blt/internal/cluster"
	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/internal/literal"
	"github.com/jonathanvdc/blt/internal/symtab"
	"github.com/jonathanvdc/blt/internal/template"
	"github.com/jonathanvdc/blt/pkg/errs"
	"github.com/jonathanvdc/blt/pkg/node"
)

// Entry is one flat node-table slot's resolved encoding. Exactly the
// fields relevant to Kind are populated; the rest are zero.
type Entry struct {
	Kind enckind.Kind

	// TemplateIndex and Slots are populated when Kind == TemplatedNode.
	TemplateIndex int
	Slots         []int

	// SymbolIndex is populated when Kind == IdNode or Kind == String.
	SymbolIndex int

	// Value is populated for every other literal kind (Int8..BigInteger,
	// Boolean, Char, Decimal); nil for Null and Void.
	Value any
}

// Run is a contiguous span of node-table entries sharing Kind (and, for
// TemplatedNode, TemplateIndex). Indices refers into the Builder's flat
// entry table.
type Run struct {
	Kind          enckind.Kind
	TemplateIndex int // meaningful only when Kind == enckind.TemplatedNode
	Indices       []int
}

type candidate struct {
	node  *node.Node
	index int
}

// Builder is the node-table WriterState for one encode session. It owns
// the symbol table, template registry, and classifying comparator that
// session needs, and is not safe for concurrent use (spec §5).
type Builder struct {
	cmp       *classify.Comparator
	symbols   *symtab.Builder
	templates *template.Registry
	kinds     literal.KindRegistry
	maxDepth  int

	entries  []Entry
	runs     []Run
	resolved map[*node.Node]int
	byHash   map[uint64][]candidate
}

// New creates an empty Builder. kinds classifies literal values by Go
// runtime type into an on-disk encoding kind (literal.DefaultKindRegistry
// unless the caller has registered custom types). maxDepth caps the depth
// GetIndex's explicit work stack is allowed to grow to before it gives up
// on a pathologically deep forest; 0 means unlimited.
func New(kinds literal.KindRegistry, maxDepth int) *Builder {
	return &Builder{
		cmp:       classify.New(),
		symbols:   symtab.NewBuilder(),
		templates: template.NewRegistry(),
		kinds:     kinds,
		maxDepth:  maxDepth,
		resolved:  make(map[*node.Node]int),
		byHash:    make(map[uint64][]candidate),
	}
}

// Symbols returns the builder's symbol table.
func (b *Builder) Symbols() *symtab.Builder { return b.symbols }

// Templates returns the builder's template registry.
func (b *Builder) Templates() *template.Registry { return b.templates }

// Entries returns the flat node table in index order.
func (b *Builder) Entries() []Entry { return b.entries }

// Runs returns the node table's runs, in emission order.
func (b *Builder) Runs() []Run { return b.runs }

// Build runs the clustering pre-pass (spec §4.7) over forest, then
// interns each top-level node, returning their node-table indices in
// order.
func (b *Builder) Build(forest []*node.Node) ([]int, error) {
	var prepassErr error
	cluster.Run(forest, func(n *node.Node) {
		if prepassErr != nil {
			return
		}
		if _, err := b.GetIndex(n); err != nil {
			prepassErr = err
		}
	})
	if prepassErr != nil {
		return nil, prepassErr
	}

	tops := make([]int, len(forest))
	for i, n := range forest {
		idx, err := b.GetIndex(n)
		if err != nil {
			return nil, err
		}
		tops[i] = idx
	}
	return tops, nil
}

// GetIndex interns n and returns its node-table index, recursively
// interning any children it needs first (spec §4.4). Traversal uses an
// explicit work stack rather than native recursion so arbitrarily deep
// trees never exhaust the call stack (spec §9).
func (b *Builder) GetIndex(n *node.Node) (int, error) {
	if idx, ok := b.resolved[n]; ok {
		return idx, nil
	}

	type frame struct {
		n     *node.Node
		after bool
	}
	stack := []frame{{n: n}}
	for len(stack) > 0 {
		if b.maxDepth > 0 && len(stack) > b.maxDepth {
			return 0, errs.New(errs.ErrKindMalformedInput, fmt.Sprintf("forest nesting exceeds MaxDepth=%d", b.maxDepth), nil)
		}
		top := len(stack) - 1
		f := stack[top]
		if _, ok := b.resolved[f.n]; ok {
			stack = stack[:top]
			continue
		}

		if !f.after {
			if idx, ok := b.findStructural(f.n); ok {
				b.resolved[f.n] = idx
				stack = stack[:top]
				continue
			}
			stack[top].after = true
			children := nodeTableChildren(f.n)
			for i := len(children) - 1; i >= 0; i-- {
				c := children[i]
				if _, ok := b.resolved[c]; !ok {
					stack = append(stack, frame{n: c})
				}
			}
			continue
		}

		idx, err := b.intern(f.n)
		if err != nil {
			return 0, err
		}
		b.resolved[f.n] = idx
		stack = stack[:top]
	}
	return b.resolved[n], nil
}

// findStructural reports whether some previously-interned node is
// structurally equal to n, returning its index if so. Candidates are
// bucketed by hash so this stays close to O(1) amortized rather than
// scanning the whole table.
func (b *Builder) findStructural(n *node.Node) (int, bool) {
	h := b.cmp.Hash(n)
	for _, cand := range b.byHash[h] {
		if b.cmp.Equal(n, cand.node) {
			return cand.index, true
		}
	}
	return 0, false
}

// nodeTableChildren returns n's children that themselves need a
// node-table index, in the exact order spec §4.4 requires: attributes
// then the attribute-stripped node; or (for a call whose target is not a
// bare attribute-free identifier) the target then the arguments; a call
// with a bare identifier target contributes only its arguments, since
// the target is resolved via the symbol table instead.
func nodeTableChildren(n *node.Node) []*node.Node {
	if n.HasAttrs() {
		children := make([]*node.Node, 0, len(n.Attrs())+1)
		children = append(children, n.Attrs()...)
		children = append(children, n.WithoutAttrs())
		return children
	}
	if !n.IsCall() {
		return nil
	}
	target := n.Target()
	children := make([]*node.Node, 0, len(n.Args())+1)
	if !isBareIdentifier(target) {
		children = append(children, target)
	}
	children = append(children, n.Args()...)
	return children
}

func isBareIdentifier(n *node.Node) bool {
	return n.IsIdentifier() && !n.HasAttrs()
}

// intern classifies n (its children already interned) and allocates its
// node-table entry, appending it to the current run or starting a new
// one.
func (b *Builder) intern(n *node.Node) (int, error) {
	entry, err := b.classify(n)
	if err != nil {
		return 0, err
	}

	idx := len(b.entries)
	b.entries = append(b.entries, entry)
	b.appendToRun(idx, entry)

	h := b.cmp.Hash(n)
	b.byHash[h] = append(b.byHash[h], candidate{node: n, index: idx})
	return idx, nil
}

func (b *Builder) classify(n *node.Node) (Entry, error) {
	if n.HasAttrs() {
		tpl := template.NewAttribute(len(n.Attrs()))
		slots := make([]int, 0, tpl.SlotCount())
		// WithoutAttrs returns a fresh pointer on every call, so the
		// stripped node is found by structure rather than by identity.
		stripped, _ := b.findStructural(n.WithoutAttrs())
		slots = append(slots, stripped)
		for _, a := range n.Attrs() {
			slots = append(slots, b.resolved[a])
		}
		return Entry{
			Kind:          enckind.TemplatedNode,
			TemplateIndex: b.templates.GetIndex(tpl),
			Slots:         slots,
		}, nil
	}

	if n.IsCall() {
		target := n.Target()
		var tpl template.Template
		slots := make([]int, 0, len(n.Args())+1)
		if isBareIdentifier(target) {
			tpl = template.NewCallID(b.symbols.GetIndex(target.Name()), len(n.Args()))
		} else {
			tpl = template.NewCall(len(n.Args()))
			slots = append(slots, b.resolved[target])
		}
		for _, a := range n.Args() {
			slots = append(slots, b.resolved[a])
		}
		return Entry{
			Kind:          enckind.TemplatedNode,
			TemplateIndex: b.templates.GetIndex(tpl),
			Slots:         slots,
		}, nil
	}

	if n.IsIdentifier() {
		return Entry{Kind: enckind.IdNode, SymbolIndex: b.symbols.GetIndex(n.Name())}, nil
	}

	// Literal.
	v := n.Value()
	if v == nil {
		return Entry{Kind: enckind.Null}, nil
	}
	if s, ok := v.(string); ok {
		return Entry{Kind: enckind.String, SymbolIndex: b.symbols.GetIndex(s)}, nil
	}
	kind, ok := b.kinds.KindOf(v)
	if !ok {
		return Entry{}, errs.New(errs.ErrKindUnsupportedLiteral, fmt.Sprintf("no encoder registered for literal type %T", v), nil)
	}
	if kind == enckind.Null || kind == enckind.Void {
		return Entry{Kind: kind}, nil
	}
	return Entry{Kind: kind, Value: v}, nil
}

// appendToRun appends idx to the current run if it matches the run's
// kind (and, for TemplatedNode, its template); otherwise it starts a new
// run. This is strategy (a) from spec §9: the encoder always starts a
// fresh run on a template change rather than ever emitting
// VariablyTemplatedNode, which the decoder must still be able to parse
// for files produced elsewhere.
func (b *Builder) appendToRun(idx int, e Entry) {
	if n := len(b.runs); n > 0 {
		last := &b.runs[n-1]
		if last.Kind == e.Kind && (e.Kind != enckind.TemplatedNode || last.TemplateIndex == e.TemplateIndex) {
			last.Indices = append(last.Indices, idx)
			return
		}
	}
	b.runs = append(b.runs, Run{Kind: e.Kind, TemplateIndex: e.TemplateIndex, Indices: []int{idx}})
}
