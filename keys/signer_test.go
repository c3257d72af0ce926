package keys

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"

	"calypsonet.org/certkit/certfmt"
)

func TestInternalSigner_SignsAndCloses(t *testing.T) {
	// Close wipes the key material, so this test owns its key.
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub := priv.PublicKey
	ref := bytes.Repeat([]byte{0x33}, certfmt.KeyReferenceSize)

	signer, err := NewInternalSigner(priv, ref)
	if err != nil {
		t.Fatalf("NewInternalSigner: %v", err)
	}
	if !bytes.Equal(signer.IssuerPublicKeyReference(), ref) {
		t.Fatalf("issuer reference mismatch")
	}

	data, recoverable := testParts()
	raw, err := signer.GenerateSignedCertificate(data, recoverable)
	if err != nil {
		t.Fatalf("GenerateSignedCertificate: %v", err)
	}
	if len(raw) != len(data)+certfmt.SignatureSize {
		t.Fatalf("unexpected output size %d", len(raw))
	}
	if !bytes.Equal(raw[:len(data)], data) {
		t.Fatalf("clear part must be carried unchanged")
	}
	got, err := RecoverMessage(&pub, data, raw[len(data):])
	if err != nil {
		t.Fatalf("RecoverMessage: %v", err)
	}
	if !bytes.Equal(got, recoverable) {
		t.Fatalf("recovered part mismatch")
	}

	signer.Close()
	signer.Close() // idempotent
	_, err = signer.GenerateSignedCertificate(data, recoverable)
	if !certfmt.IsKind(err, certfmt.KindState) {
		t.Fatalf("signing after Close: got %v", err)
	}
	if certfmt.RuleID(err) != "CERT-STATE-001" {
		t.Fatalf("unexpected rule: %v", err)
	}
}

func TestNewInternalSigner_RejectsBadInput(t *testing.T) {
	priv := testKey(t, 0)
	if _, err := NewInternalSigner(nil, bytes.Repeat([]byte{1}, certfmt.KeyReferenceSize)); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("nil key: got %v", err)
	}
	if _, err := NewInternalSigner(priv, make([]byte, 5)); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("short reference: got %v", err)
	}
}

func TestModulusHelpers(t *testing.T) {
	priv := testKey(t, 0)
	modulus, err := ModulusBytes(&priv.PublicKey)
	if err != nil {
		t.Fatalf("ModulusBytes: %v", err)
	}
	pub, err := PublicKeyFromModulus(modulus[:])
	if err != nil {
		t.Fatalf("PublicKeyFromModulus: %v", err)
	}
	if pub.N.Cmp(priv.N) != 0 || pub.E != priv.E {
		t.Fatalf("rebuilt key mismatch")
	}
	if _, err := PublicKeyFromModulus(modulus[:100]); err == nil {
		t.Fatalf("expected error for short modulus")
	}
	if _, err := PublicKeyFromModulus(make([]byte, certfmt.RSAModulusSize)); err == nil {
		t.Fatalf("expected error for zero modulus")
	}
}

func TestParseRSAPrivateKeyPEM(t *testing.T) {
	priv := testKey(t, 0)
	block := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(priv),
	})
	got, err := ParseRSAPrivateKeyPEM(block)
	if err != nil {
		t.Fatalf("ParseRSAPrivateKeyPEM: %v", err)
	}
	if got.N.Cmp(priv.N) != 0 {
		t.Fatalf("parsed key mismatch")
	}
	if _, err := ParseRSAPrivateKeyPEM([]byte("not pem")); !certfmt.IsKind(err, certfmt.KindArgument) {
		t.Fatalf("garbage input: got %v", err)
	}
}

func TestParseRSAPublicKeyPEM(t *testing.T) {
	priv := testKey(t, 0)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}
	block := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	got, err := ParseRSAPublicKeyPEM(block)
	if err != nil {
		t.Fatalf("ParseRSAPublicKeyPEM: %v", err)
	}
	if got.N.Cmp(priv.N) != 0 {
		t.Fatalf("parsed key mismatch")
	}
}
