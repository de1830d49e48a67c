// Package template canonicalizes the repeated call/attribute "shapes"
// BLT factors out so that many nodes sharing a shape reference one
// template instead of repeating arity/target information per node.
//
// Template is a tagged variant the way spec.md §9 prescribes ("a tagged
// variant NodeTemplate = Call(arity) | CallId(sym,arity) |
// Attribute(attrCount); dispatch is a match"), generalized from the
// per-variant registry-cell tag dispatch the teacher uses throughout
// internal/format (NK/VK/SK/DB tag bytes) and hive/builder/encode.go's
// per-kind encode functions.
package template

import "github.com/jonathanvdc/blt/pkg/errs"

// Variant distinguishes the three template shapes.
type Variant int

const (
	// VariantCall is a plain call: slot 0 is the target, the rest are arguments.
	VariantCall Variant = iota
	// VariantCallID is a call whose target is a fixed, attribute-free identifier
	// stored by symbol index; slots are arguments only.
	VariantCallID
	// VariantAttribute wraps a node with attrs: slot 0 is the attribute-stripped
	// node, the rest are attributes.
	VariantAttribute
)

// Template is an immutable, comparable description of a non-leaf node's
// shape. Two templates are equal iff their Variant and fields match,
// which is exactly Go struct equality here since every field is itself
// comparable.
type Template struct {
	Variant  Variant
	Arity    int // Call: argument count. CallID: argument count. Attribute: unused (use AttrCnt).
	SymbolID int // CallID only: the fixed target's symbol-table index.
	AttrCnt  int // Attribute only: attribute count.
}

// NewCall builds a CallTemplate(arity); slot count is arity+1 (target + args).
func NewCall(arity int) Template { return Template{Variant: VariantCall, Arity: arity} }

// NewCallID builds a CallIdTemplate(symbolID, arity); slot count is arity (args only).
func NewCallID(symbolID, arity int) Template {
	return Template{Variant: VariantCallID, Arity: arity, SymbolID: symbolID}
}

// NewAttribute builds an AttributeTemplate(attrCount); slot count is attrCount+1
// (wrapped node + attrs).
func NewAttribute(attrCount int) Template {
	return Template{Variant: VariantAttribute, AttrCnt: attrCount}
}

// SlotCount returns the total number of node-table references a node
// instantiating this template carries.
func (t Template) SlotCount() int {
	switch t.Variant {
	case VariantCall:
		return t.Arity + 1
	case VariantCallID:
		return t.Arity
	case VariantAttribute:
		return t.AttrCnt + 1
	default:
		return 0
	}
}

// Registry interns templates by structural equality in first-sighting order.
type Registry struct {
	templates []Template
	index     map[Template]int
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[Template]int)}
}

// GetIndex returns t's existing index, or appends t and returns its new index.
func (reg *Registry) GetIndex(t Template) int {
	if idx, ok := reg.index[t]; ok {
		return idx
	}
	idx := len(reg.templates)
	reg.templates = append(reg.templates, t)
	reg.index[t] = idx
	return idx
}

// Len returns the number of interned templates.
func (reg *Registry) Len() int { return len(reg.templates) }

// Templates returns the interned templates in insertion order.
func (reg *Registry) Templates() []Template { return reg.templates }

// Reader resolves decoded template indices back to Template values.
type Reader struct {
	templates []Template
}

// NewReader wraps an already-decoded template array.
func NewReader(templates []Template) *Reader { return &Reader{templates: templates} }

// Len returns the number of templates in the table.
func (r *Reader) Len() int { return len(r.templates) }

// Get resolves idx to its Template, failing with ErrKindOutOfBoundsIndex
// when idx is not a valid index into the table.
func (r *Reader) Get(idx int) (Template, error) {
	if idx < 0 || idx >= len(r.templates) {
		return Template{}, errs.New(errs.ErrKindOutOfBoundsIndex, "template index out of range", nil)
	}
	return r.templates[idx], nil
}
