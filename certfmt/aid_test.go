package certfmt

import (
	"bytes"
	"testing"
)

func TestCheckAid(t *testing.T) {
	if err := CheckAid([]byte{0xA0, 0x00, 0x00, 0x02, 0x91}); err != nil {
		t.Fatalf("5-byte AID: %v", err)
	}
	if err := CheckAid(bytes.Repeat([]byte{0x42}, AidMaxSize)); err != nil {
		t.Fatalf("16-byte AID: %v", err)
	}
	if err := CheckAid([]byte{0xA0, 0x00, 0x00, 0x02}); err == nil {
		t.Fatalf("expected 4-byte AID to fail")
	}
	if err := CheckAid(bytes.Repeat([]byte{0x42}, AidMaxSize+1)); err == nil {
		t.Fatalf("expected 17-byte AID to fail")
	}
	err := CheckAid(make([]byte, 8))
	if err == nil {
		t.Fatalf("expected all-zero AID to fail")
	}
	if !IsKind(err, KindConsistency) {
		t.Fatalf("expected consistency error, got %v", err)
	}
}

func TestMatchAid(t *testing.T) {
	target := []byte{0xA0, 0x00, 0x00, 0x02, 0x91}
	longer := []byte{0xA0, 0x00, 0x00, 0x02, 0x91, 0x10, 0x01}
	other := []byte{0xA0, 0x00, 0x00, 0x02, 0x92}

	cases := []struct {
		name       string
		target     []byte
		truncation bool
		card       []byte
		want       bool
	}{
		{"exact equal", target, false, target, true},
		{"exact longer rejected", target, false, longer, false},
		{"exact different rejected", target, false, other, false},
		{"truncated equal", target, true, target, true},
		{"truncated prefix accepted", target, true, longer, true},
		{"truncated shorter rejected", target, true, target[:4], false},
		{"truncated different rejected", target, true, other, false},
		{"no target unconstrained", nil, false, longer, true},
	}
	for _, c := range cases {
		if got := MatchAid(c.target, c.truncation, c.card); got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
