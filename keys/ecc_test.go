package keys

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"calypsonet.org/certkit/certfmt"
)

func testCardPoint(t *testing.T) []byte {
	t.Helper()
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	raw := make([]byte, certfmt.ECCPublicKeySize)
	k.X.FillBytes(raw[:32])
	k.Y.FillBytes(raw[32:])
	return raw
}

func TestCheckCardPublicKey(t *testing.T) {
	raw := testCardPoint(t)
	if err := CheckCardPublicKey(raw); err != nil {
		t.Fatalf("valid point rejected: %v", err)
	}

	if err := CheckCardPublicKey(raw[:63]); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("short key: got %v", err)
	}

	offCurve := append([]byte(nil), raw...)
	offCurve[63] ^= 0x01
	err := CheckCardPublicKey(offCurve)
	if err == nil {
		t.Fatalf("expected off-curve point to fail")
	}
	if certfmt.RuleID(err) != "CERT-ARG-007" {
		t.Fatalf("unexpected error: %v", err)
	}
}
