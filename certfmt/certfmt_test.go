package certfmt

import (
	"bytes"
	"testing"
)

func TestNewKeyReference(t *testing.T) {
	src := bytes.Repeat([]byte{0xAB}, KeyReferenceSize)
	ref, err := NewKeyReference(src)
	if err != nil {
		t.Fatalf("NewKeyReference: %v", err)
	}
	if !bytes.Equal(ref.Bytes(), src) {
		t.Fatalf("reference bytes mismatch")
	}

	for _, n := range []int{0, 28, 30} {
		_, err := NewKeyReference(make([]byte, n))
		if err == nil {
			t.Fatalf("length %d: expected error", n)
		}
		if !IsKind(err, KindArgument) {
			t.Fatalf("length %d: expected argument error, got %v", n, err)
		}
	}
}

func TestError_KindAndRule(t *testing.T) {
	err := NewError(KindUntrusted, "CERT-TRUST-002", "bad signature")
	if !IsKind(err, KindUntrusted) {
		t.Fatalf("IsKind: expected match")
	}
	if IsKind(err, KindParse) {
		t.Fatalf("IsKind: unexpected match")
	}
	if RuleID(err) != "CERT-TRUST-002" {
		t.Fatalf("RuleID: got %q", RuleID(err))
	}

	wrapped := WrapError(KindSigning, "CERT-SIGN-001", "signing failed", err)
	if !IsKind(wrapped, KindSigning) {
		t.Fatalf("wrapped kind lost")
	}
	if RuleID(nil) != "" {
		t.Fatalf("RuleID(nil) must be empty")
	}
}
