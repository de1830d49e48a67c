package sexpr

import (
	"testing"

	"github.com/jonathanvdc/blt/pkg/node"
)

func TestParse_Identifier(t *testing.T) {
	forest, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(forest) != 1 || !node.Equal(forest[0], node.NewIdentifier("foo")) {
		t.Fatalf("got %v, want [foo]", forest)
	}
}

func TestParse_StringLiteral(t *testing.T) {
	forest, err := Parse(`"hello, world"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewLiteral("hello, world")
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_EscapedString(t *testing.T) {
	forest, err := Parse(`"a\nb\"c"`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewLiteral("a\nb\"c")
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_NumberLiteral(t *testing.T) {
	forest, err := Parse("-42")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewLiteral(int64(-42))
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_Call(t *testing.T) {
	forest, err := Parse("(add 1 2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewCall(node.NewIdentifier("add"), node.NewLiteral(int64(1)), node.NewLiteral(int64(2)))
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_NestedCall(t *testing.T) {
	forest, err := Parse("(f (g 1) 2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewCall(node.NewIdentifier("f"),
		node.NewCall(node.NewIdentifier("g"), node.NewLiteral(int64(1))),
		node.NewLiteral(int64(2)))
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_Attributes(t *testing.T) {
	forest, err := Parse("@(a) foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewIdentifier("foo").WithAttrs(node.NewIdentifier("a"))
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_MultipleAttributes(t *testing.T) {
	forest, err := Parse("@(a, b) foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := node.NewIdentifier("foo").WithAttrs(node.NewIdentifier("a"), node.NewIdentifier("b"))
	if len(forest) != 1 || !node.Equal(forest[0], want) {
		t.Fatalf("got %v, want %v", forest, want)
	}
}

func TestParse_MultipleTopLevelNodes(t *testing.T) {
	forest, err := Parse("foo bar 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(forest) != 3 {
		t.Fatalf("got %d top-level nodes, want 3", len(forest))
	}
}

func TestParse_Comment(t *testing.T) {
	forest, err := Parse("; a comment\nfoo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(forest) != 1 || !node.Equal(forest[0], node.NewIdentifier("foo")) {
		t.Fatalf("got %v, want [foo]", forest)
	}
}

func TestParse_UnterminatedCallFails(t *testing.T) {
	if _, err := Parse("(foo 1"); err == nil {
		t.Fatal("expected an error for an unterminated call")
	}
}

func TestParse_EmptyCallFails(t *testing.T) {
	if _, err := Parse("()"); err == nil {
		t.Fatal("expected an error for a call with no target")
	}
}
