package literal

import (
	"bufio"
	"bytes"
	"math/big"
	"testing"

	"github.com/jonathanvdc/blt/internal/enckind"
	"github.com/jonathanvdc/blt/pkg/node"
)

func TestDefaultKindRegistry_ClassifiesBuiltinTypes(t *testing.T) {
	reg := DefaultKindRegistry()
	cases := []struct {
		value any
		want  enckind.Kind
	}{
		{int32(1), enckind.Int32},
		{uint64(1), enckind.UInt64},
		{"x", enckind.String},
		{node.Char(1), enckind.Char},
		{node.Void{}, enckind.Void},
		{node.Decimal{}, enckind.Decimal},
		{big.NewInt(1), enckind.BigInteger},
	}
	for _, c := range cases {
		got, ok := reg.KindOf(c.value)
		if !ok || got != c.want {
			t.Fatalf("KindOf(%#v) = (%v, %v), want (%v, true)", c.value, got, ok, c.want)
		}
	}
}

func TestDefaultKindRegistry_UnregisteredTypeMisses(t *testing.T) {
	reg := DefaultKindRegistry()
	if _, ok := reg.KindOf(struct{ X int }{1}); ok {
		t.Fatal("expected an unregistered struct type to miss")
	}
}

func roundTrip(t *testing.T, kind enckind.Kind, value any) any {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := DefaultEncoders()[kind](w, value); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	got, err := DefaultDecoders()[kind](bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return got
}

func TestBigInteger_RoundTripsPositiveNegativeAndZero(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 127, -128, 1 << 40, -(1 << 40)} {
		got := roundTrip(t, enckind.BigInteger, big.NewInt(v))
		gotBig := got.(*big.Int)
		if gotBig.Cmp(big.NewInt(v)) != 0 {
			t.Fatalf("BigInteger round trip of %d got %v", v, gotBig)
		}
	}
}

func TestDecimal_RoundTrips(t *testing.T) {
	d := node.Decimal{Lo: 1, Mid: 2, Hi: 3, Flags: 0x80000000}
	got := roundTrip(t, enckind.Decimal, d)
	if got.(node.Decimal) != d {
		t.Fatalf("Decimal round trip = %+v, want %+v", got, d)
	}
}

func TestChar_PreservesUnpairedSurrogate(t *testing.T) {
	c := node.Char(0xD800) // lone high surrogate half
	got := roundTrip(t, enckind.Char, c)
	if got.(node.Char) != c {
		t.Fatalf("Char round trip = %#x, want %#x", got, c)
	}
}

func TestVoid_RoundTripsZeroBytes(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := DefaultEncoders()[enckind.Void](w, node.Void{}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Void wrote %d bytes, want 0", buf.Len())
	}
}
