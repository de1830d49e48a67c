package nodetable

import (
	"errors"
	"testing"

	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/internal/literal"
	"github.com/jonathanvdc/blt/internal/template"
	"github.com/jonathanvdc/blt/pkg/errs"
	"github.com/jonathanvdc/blt/pkg/node"
)

func TestBuild_SingleIdentifier(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	foo := node.NewIdentifier("foo")
	tops, err := b.Build([]*node.Node{foo})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tops) != 1 {
		t.Fatalf("got %d top-level indices, want 1", len(tops))
	}
	if b.Symbols().Len() != 1 || b.Symbols().Symbols()[0] != "foo" {
		t.Fatalf("symbols = %v, want [foo]", b.Symbols().Symbols())
	}
	if len(b.Runs()) != 1 || b.Runs()[0].Kind != enckind.IdNode {
		t.Fatalf("runs = %+v, want a single IdNode run", b.Runs())
	}
}

func TestBuild_CallWithBareIdentifierTargetUsesCallID(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	call := node.NewCall(node.NewIdentifier("foo"), node.NewLiteral(int32(1)), node.NewLiteral(int32(2)))
	tops, err := b.Build([]*node.Node{call})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	callEntry := b.Entries()[tops[0]]
	if callEntry.Kind != enckind.TemplatedNode {
		t.Fatalf("call entry kind = %v, want TemplatedNode", callEntry.Kind)
	}
	tpl := b.Templates().Templates()[callEntry.TemplateIndex]
	want := template.NewCallID(0, 2)
	if tpl != want {
		t.Fatalf("template = %+v, want %+v", tpl, want)
	}
	if len(callEntry.Slots) != 2 {
		t.Fatalf("slots = %v, want 2 argument refs only (no target ref)", callEntry.Slots)
	}
}

func TestBuild_CallWithNonIdentifierTargetUsesCallTemplate(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	inner := node.NewCall(node.NewIdentifier("f"))
	call := node.NewCall(inner, node.NewLiteral(int32(9)))
	tops, err := b.Build([]*node.Node{call})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	callEntry := b.Entries()[tops[0]]
	tpl := b.Templates().Templates()[callEntry.TemplateIndex]
	if tpl.Variant != template.VariantCall || tpl.Arity != 1 {
		t.Fatalf("template = %+v, want Call(arity=1)", tpl)
	}
	if len(callEntry.Slots) != 2 {
		t.Fatalf("slots = %v, want target ref + 1 argument ref", callEntry.Slots)
	}
}

func TestBuild_SharedSubtreeInternsOnce(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	x := node.NewCall(node.NewIdentifier("baz"))
	bar1 := node.NewCall(node.NewIdentifier("bar"), x, x)
	bar2 := node.NewCall(node.NewIdentifier("bar"), x, x)

	tops, err := b.Build([]*node.Node{bar1, bar2})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tops[0] != tops[1] {
		t.Fatalf("expected both top-level bar(x,x) calls to collapse to one index, got %v", tops)
	}
	barEntry := b.Entries()[tops[0]]
	if barEntry.Slots[0] != barEntry.Slots[1] {
		t.Fatalf("expected bar's two x arguments to reference the same node-table index, got %v", barEntry.Slots)
	}
}

func TestBuild_StructurallyEqualDistinctPointersCollapse(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	a := node.NewCall(node.NewIdentifier("f"), node.NewLiteral(int32(1)))
	c := node.NewCall(node.NewIdentifier("f"), node.NewLiteral(int32(1)))
	tops, err := b.Build([]*node.Node{a, c})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tops[0] != tops[1] {
		t.Fatalf("expected structurally-equal distinct-pointer calls to collapse, got %v", tops)
	}
}

func TestBuild_Attributes(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	// The wrapped node and the attribute are deliberately different kinds
	// (identifier vs. Int32 literal) so that a slot swap between them
	// fails this test instead of passing vacuously.
	attributed := node.NewIdentifier("foo").WithAttrs(node.NewLiteral(int32(1)))
	tops, err := b.Build([]*node.Node{attributed})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	entry := b.Entries()[tops[0]]
	if entry.Kind != enckind.TemplatedNode {
		t.Fatalf("kind = %v, want TemplatedNode", entry.Kind)
	}
	tpl := b.Templates().Templates()[entry.TemplateIndex]
	if tpl != template.NewAttribute(1) {
		t.Fatalf("template = %+v, want Attribute(1)", tpl)
	}
	if len(entry.Slots) != 2 {
		t.Fatalf("slots = %v, want [strippedNode, attr]", entry.Slots)
	}

	stripped := b.Entries()[entry.Slots[0]]
	if stripped.Kind != enckind.IdNode {
		t.Fatalf("slot 0 kind = %v, want IdNode (the attribute-stripped foo)", stripped.Kind)
	}
	if name := b.Symbols().Symbols()[stripped.SymbolIndex]; name != "foo" {
		t.Fatalf("slot 0 = %q, want the attribute-stripped identifier %q", name, "foo")
	}

	attr := b.Entries()[entry.Slots[1]]
	if attr.Kind != enckind.Int32 {
		t.Fatalf("slot 1 kind = %v, want Int32 (the attribute)", attr.Kind)
	}
	if attr.Value.(int32) != 1 {
		t.Fatalf("slot 1 value = %v, want 1", attr.Value)
	}
}

func TestBuild_RunsSplitOnKindChange(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	forest := []*node.Node{
		node.NewIdentifier("a"),
		node.NewLiteral(int32(1)),
		node.NewIdentifier("b"),
	}
	if _, err := b.Build(forest); err != nil {
		t.Fatalf("Build: %v", err)
	}
	kinds := make([]enckind.Kind, len(b.Runs()))
	for i, r := range b.Runs() {
		kinds[i] = r.Kind
	}
	// The clustering pre-pass front-loads identifiers before literals
	// regardless of forest order, so expect IdNode run(s) then Int32.
	foundInt32 := -1
	for i, k := range kinds {
		if k == enckind.Int32 {
			foundInt32 = i
		}
	}
	if foundInt32 == -1 {
		t.Fatalf("expected an Int32 run, got %v", kinds)
	}
	for i := 0; i < foundInt32; i++ {
		if kinds[i] != enckind.IdNode {
			t.Fatalf("expected only IdNode runs before the Int32 run, got %v", kinds)
		}
	}
}

func TestBuild_UnsupportedLiteralFails(t *testing.T) {
	b := New(literal.DefaultKindRegistry(), 0)
	bad := node.NewLiteral(struct{ X int }{1})
	_, err := b.Build([]*node.Node{bad})
	if err == nil {
		t.Fatal("expected an error for an unregistered literal type")
	}
	if !errors.Is(err, errs.ErrUnsupportedLiteral) {
		t.Fatalf("expected ErrKindUnsupportedLiteral, got %v", err)
	}
}

func TestBuild_RejectsForestDeeperThanMaxDepth(t *testing.T) {
	n := node.NewLiteral(int32(0))
	for i := 0; i < 50; i++ {
		n = node.NewCall(node.NewIdentifier("wrap"), n)
	}

	b := New(literal.DefaultKindRegistry(), 10)
	if _, err := b.Build([]*node.Node{n}); !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrKindMalformedInput for a forest deeper than MaxDepth, got %v", err)
	}

	unbounded := New(literal.DefaultKindRegistry(), 0)
	if _, err := unbounded.Build([]*node.Node{n}); err != nil {
		t.Fatalf("MaxDepth=0 should allow arbitrary nesting, got %v", err)
	}
}
