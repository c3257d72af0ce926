package certid

import (
	"strings"
	"testing"
)

func TestForCertificate_StableAndDistinct(t *testing.T) {
	a := ForCertificate([]byte("certificate-a"))
	b := ForCertificate([]byte("certificate-a"))
	c := ForCertificate([]byte("certificate-b"))
	if a == "" {
		t.Fatalf("expected a CID string")
	}
	if a != b {
		t.Fatalf("same bytes must yield the same CID")
	}
	if a == c {
		t.Fatalf("different bytes must yield different CIDs")
	}
	if !strings.HasPrefix(a, "bafkrei") {
		t.Fatalf("expected CIDv1 raw sha2-256, got %s", a)
	}
}

func TestForCertificateCID_MatchesString(t *testing.T) {
	raw := []byte("certificate-a")
	id, err := ForCertificateCID(raw)
	if err != nil {
		t.Fatalf("ForCertificateCID: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if id.String() != ForCertificate(raw) {
		t.Fatalf("string forms must agree")
	}
}
