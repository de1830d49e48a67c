package symtab

import "testing"

func TestBuilder_GetIndex_Interns(t *testing.T) {
	b := NewBuilder()
	if idx := b.GetIndex("foo"); idx != 0 {
		t.Fatalf("first insertion index = %d, want 0", idx)
	}
	if idx := b.GetIndex("bar"); idx != 1 {
		t.Fatalf("second insertion index = %d, want 1", idx)
	}
	if idx := b.GetIndex("foo"); idx != 0 {
		t.Fatalf("re-sighting foo index = %d, want 0 (no duplicate)", idx)
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBuilder_PreservesInsertionOrder(t *testing.T) {
	b := NewBuilder()
	for _, s := range []string{"c", "a", "b", "a", "c"} {
		b.GetIndex(s)
	}
	want := []string{"c", "a", "b"}
	got := b.Symbols()
	if len(got) != len(want) {
		t.Fatalf("Symbols() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Symbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReader_Get_OutOfBounds(t *testing.T) {
	r := NewReader([]string{"a", "b"})
	if _, err := r.Get(1); err != nil {
		t.Fatalf("Get(1) unexpected error: %v", err)
	}
	if _, err := r.Get(2); err == nil {
		t.Fatal("Get(2) expected out-of-bounds error")
	}
	if _, err := r.Get(-1); err == nil {
		t.Fatal("Get(-1) expected out-of-bounds error")
	}
}
