// Package symtab interns strings into a dense, order-preserving index
// space: the symbol table every BLT file carries for identifier names
// and string literal values.
//
// The get-or-append pattern here is grounded on hive/index's
// content-keyed, offset-valued maps (StringIndex/UniqueIndex): both
// intern a string once and hand back a stable small index for every
// subsequent sighting. Symbols differ from that registry-hive index in
// one respect the spec requires: insertion order must be preserved
// exactly (determinism), so lookups never reorder existing entries the
// way an LRU would.
package symtab

import "github.com/jonathanvdc/blt/pkg/errs"

// Builder interns strings in first-sighting order.
type Builder struct {
	symbols []string
	index   map[string]int
}

// NewBuilder creates an empty symbol table builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// GetIndex returns s's existing index, or appends s and returns its new
// index. First-insertion order is preserved across calls.
func (b *Builder) GetIndex(s string) int {
	if idx, ok := b.index[s]; ok {
		return idx
	}
	idx := len(b.symbols)
	b.symbols = append(b.symbols, s)
	b.index[s] = idx
	return idx
}

// Len returns the number of interned symbols.
func (b *Builder) Len() int { return len(b.symbols) }

// Symbols returns the interned strings in insertion order. The caller
// must not mutate the returned slice.
func (b *Builder) Symbols() []string { return b.symbols }

// Reader resolves decoded symbol-table indices back to strings.
type Reader struct {
	symbols []string
}

// NewReader wraps an already-decoded symbol array.
func NewReader(symbols []string) *Reader {
	return &Reader{symbols: symbols}
}

// Len returns the number of symbols in the table.
func (r *Reader) Len() int { return len(r.symbols) }

// Get resolves idx to its string, failing with ErrKindOutOfBoundsIndex
// when idx is not a valid index into the table.
func (r *Reader) Get(idx int) (string, error) {
	if idx < 0 || idx >= len(r.symbols) {
		return "", errs.New(errs.ErrKindOutOfBoundsIndex, "symbol index out of range", nil)
	}
	return r.symbols[idx], nil
}
