package template

import "testing"

func TestRegistry_CollapsesEqualTemplates(t *testing.T) {
	reg := NewRegistry()
	a := reg.GetIndex(NewCall(3))
	b := reg.GetIndex(NewCall(3))
	if a != b {
		t.Fatalf("two CallTemplate(3) got distinct indices %d, %d", a, b)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistry_DistinguishesVariants(t *testing.T) {
	reg := NewRegistry()
	call := reg.GetIndex(NewCall(2))
	callID := reg.GetIndex(NewCallID(5, 2))
	attr := reg.GetIndex(NewAttribute(2))
	if call == callID || call == attr || callID == attr {
		t.Fatalf("distinct variants collided: call=%d callID=%d attr=%d", call, callID, attr)
	}
}

func TestSlotCount(t *testing.T) {
	cases := []struct {
		tpl  Template
		want int
	}{
		{NewCall(0), 1},
		{NewCall(3), 4},
		{NewCallID(7, 2), 2},
		{NewAttribute(0), 1},
		{NewAttribute(3), 4},
	}
	for _, c := range cases {
		if got := c.tpl.SlotCount(); got != c.want {
			t.Fatalf("SlotCount(%+v) = %d, want %d", c.tpl, got, c.want)
		}
	}
}

func TestReader_RoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.GetIndex(NewCall(1))
	reg.GetIndex(NewCallID(0, 2))

	r := NewReader(reg.Templates())
	got, err := r.Get(1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if got != NewCallID(0, 2) {
		t.Fatalf("Get(1) = %+v, want %+v", got, NewCallID(0, 2))
	}
	if _, err := r.Get(2); err == nil {
		t.Fatal("Get(2) expected out-of-bounds error")
	}
}
